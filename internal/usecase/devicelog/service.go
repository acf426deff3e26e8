package devicelog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	domainLog "device-checkout/internal/domain/devicelog"
	appErrors "device-checkout/pkg/errors"
)

// Service exposes the audit trail. The trail itself is append-only;
// this service only filters and exports it.
type Service struct {
	logRepo domainLog.Repository
}

// NewService creates a new device log service
func NewService(logRepo domainLog.Repository) *Service {
	return &Service{logRepo: logRepo}
}

func (s *Service) List(ctx context.Context, req *ListLogsRequest) ([]*LogEntryResponse, error) {
	filter, err := toDomainFilter(req)
	if err != nil {
		return nil, err
	}

	entries, err := s.logRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]*LogEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToLogEntryResponse(e))
	}
	return out, nil
}

// ExportCSV writes the filtered trail as CSV, one row per entry.
func (s *Service) ExportCSV(ctx context.Context, req *ListLogsRequest, w io.Writer) error {
	filter, err := toDomainFilter(req)
	if err != nil {
		return err
	}

	entries, err := s.logRepo.List(ctx, filter)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"timestamp", "action", "asset_tag", "user_name", "reason", "homeroom_teacher", "school_id"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, e := range entries {
		row := []string{
			e.CreatedAt.Format(time.RFC3339),
			string(e.Action),
			e.AssetTag,
			e.UserName,
			deref(e.Reason),
			deref(e.HomeroomTeacher),
			e.SchoolID,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func toDomainFilter(req *ListLogsRequest) (*domainLog.Filter, error) {
	filter := &domainLog.Filter{
		SchoolID:  req.SchoolID,
		Search:    req.Search,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}

	switch req.Action {
	case "":
	case string(domainLog.ActionCheckout), string(domainLog.ActionCheckin):
		action := domainLog.Action(req.Action)
		filter.Action = &action
	default:
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid action filter", nil)
	}

	start, err := ParseDate(req.StartDate)
	if err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid start date", err)
	}
	filter.StartDate = start

	end, err := ParseDate(req.EndDate)
	if err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid end date", err)
	}
	filter.EndDate = end

	return filter, nil
}

// ParseDate accepts a date-only or RFC3339 value; empty means unset.
func ParseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
