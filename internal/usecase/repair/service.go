package repair

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	domainRepair "device-checkout/internal/domain/repair"
	"device-checkout/internal/logger"
	"device-checkout/internal/usecase/devicelog"
	appErrors "device-checkout/pkg/errors"
	"device-checkout/pkg/opshero"
	"device-checkout/pkg/utils"

	"go.uber.org/zap"
)

// TicketSubmitter submits a repair request to the external helpdesk.
type TicketSubmitter interface {
	CreateRequest(ctx context.Context, in *opshero.TicketInput) (*opshero.TicketResult, error)
}

// Service is the repair ticket gateway: it forwards requests to the
// helpdesk and mirrors only the accepted ones locally. There is no
// retry; a failed submission is reported to the caller for manual
// resubmission.
type Service struct {
	repairRepo domainRepair.Repository
	submitter  TicketSubmitter
}

// NewService creates a new repair ticket service
func NewService(repairRepo domainRepair.Repository, submitter TicketSubmitter) *Service {
	return &Service{
		repairRepo: repairRepo,
		submitter:  submitter,
	}
}

func (s *Service) CreateTicket(ctx context.Context, req *CreateTicketRequest) (*CreateTicketResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	notes := ""
	if req.Notes != nil {
		notes = utils.SanitizeString(*req.Notes)
	}

	input := &opshero.TicketInput{
		SchoolID:      req.SchoolID,
		DeviceType:    req.DeviceType,
		FullName:      utils.SanitizeString(req.FullName),
		IssueType:     req.IssueType,
		DeviceBarcode: utils.SanitizeString(req.DeviceBarcode),
		Notes:         notes,
		IsStaff:       req.IsStaff,
	}

	result, err := s.submitter.CreateRequest(ctx, input)
	if err != nil {
		var locErr *opshero.UnknownLocationError
		if errors.As(err, &locErr) {
			return nil, appErrors.NewAppError("VALIDATION_ERROR", locErr.Error(), domainRepair.ErrUnknownSchoolLocation)
		}
		var apiErr *opshero.APIError
		if errors.As(err, &apiErr) {
			logger.Error("Helpdesk rejected repair ticket",
				zap.Int("status", apiErr.StatusCode),
				zap.String("school_id", req.SchoolID),
				zap.String("event", "repair_ticket_rejected"),
			)
			return nil, appErrors.NewAppError("UPSTREAM_ERROR", apiErr.Error(), domainRepair.ErrSubmissionFailed)
		}
		return nil, appErrors.NewAppError("UPSTREAM_ERROR", err.Error(), domainRepair.ErrSubmissionFailed)
	}

	// Local mirror only exists once the upstream has accepted the ticket.
	ticket := &domainRepair.Ticket{
		SchoolID:         req.SchoolID,
		DeviceType:       req.DeviceType,
		FullName:         input.FullName,
		IssueType:        req.IssueType,
		DeviceBarcode:    input.DeviceBarcode,
		IsStaff:          req.IsStaff,
		OperationsHeroID: result.ID,
		Status:           domainRepair.StatusOpen,
	}
	if notes != "" {
		ticket.Notes = &notes
	}
	if err := s.repairRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	logger.Info("Repair ticket created",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("operations_hero_id", result.ID),
		zap.String("school_id", req.SchoolID),
		zap.String("event", "repair_ticket_created"),
	)

	return &CreateTicketResponse{
		ID:               ticket.ID.String(),
		OperationsHeroID: result.ID,
	}, nil
}

func (s *Service) ListTickets(ctx context.Context, req *ListTicketsRequest) ([]*TicketResponse, error) {
	filter, err := toDomainFilter(req)
	if err != nil {
		return nil, err
	}

	tickets, err := s.repairRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]*TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, ToTicketResponse(t))
	}
	return out, nil
}

// ExportCSV writes the filtered tickets as CSV.
func (s *Service) ExportCSV(ctx context.Context, req *ListTicketsRequest, w io.Writer) error {
	filter, err := toDomainFilter(req)
	if err != nil {
		return err
	}

	tickets, err := s.repairRepo.List(ctx, filter)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"created_at", "school_id", "device_type", "device_barcode", "full_name", "issue_type", "is_staff", "status", "operations_hero_id", "notes"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, t := range tickets {
		notes := ""
		if t.Notes != nil {
			notes = *t.Notes
		}
		row := []string{
			t.CreatedAt.Format(time.RFC3339),
			t.SchoolID,
			t.DeviceType,
			t.DeviceBarcode,
			t.FullName,
			t.IssueType,
			strconv.FormatBool(t.IsStaff),
			string(t.Status),
			t.OperationsHeroID,
			notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func toDomainFilter(req *ListTicketsRequest) (*domainRepair.Filter, error) {
	filter := &domainRepair.Filter{
		SchoolID:      req.SchoolID,
		DeviceBarcode: req.DeviceBarcode,
		FullName:      req.FullName,
		IssueType:     req.IssueType,
	}

	if req.IsStaff != "" {
		isStaff, err := strconv.ParseBool(req.IsStaff)
		if err != nil {
			return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid isStaff filter", err)
		}
		filter.IsStaff = &isStaff
	}

	switch req.Status {
	case "":
	case string(domainRepair.StatusOpen), string(domainRepair.StatusClosed):
		status := domainRepair.Status(req.Status)
		filter.Status = &status
	default:
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid status filter", nil)
	}

	start, err := devicelog.ParseDate(req.StartDate)
	if err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid start date", err)
	}
	filter.StartDate = start

	end, err := devicelog.ParseDate(req.EndDate)
	if err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid end date", err)
	}
	filter.EndDate = end

	return filter, nil
}
