package postgres

import (
	"context"
	"fmt"
	"strings"

	"device-checkout/internal/domain/devicelog"
	"device-checkout/internal/infrastructure/database/postgres/models"
)

// DeviceLogRepository implements the read side of the audit trail.
// Writes happen inside the device repository's lifecycle transactions.
type DeviceLogRepository struct {
	db *DB
}

// NewDeviceLogRepository creates a new device log repository
func NewDeviceLogRepository(db *DB) devicelog.Repository {
	return &DeviceLogRepository{db: db}
}

var logSortColumns = map[string]string{
	"created_at": "created_at",
	"asset_tag":  "asset_tag",
	"user_name":  "user_name",
	"action":     "action",
}

func (r *DeviceLogRepository) List(ctx context.Context, filter *devicelog.Filter) ([]*devicelog.Entry, error) {
	db := r.db.DB.WithContext(ctx).Model(&models.DeviceLogModel{})

	if filter.SchoolID != "" {
		db = db.Where("school_id = ?", filter.SchoolID)
	}
	if filter.Action != nil {
		db = db.Where("action = ?", string(*filter.Action))
	}
	if filter.StartDate != nil {
		db = db.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		db = db.Where("created_at <= ?", *filter.EndDate)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		db = db.Where(
			"LOWER(asset_tag) LIKE ? OR LOWER(user_name) LIKE ? OR LOWER(COALESCE(reason, '')) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	sortColumn, ok := logSortColumns[filter.SortBy]
	if !ok {
		sortColumn = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		direction = "ASC"
	}
	db = db.Order(sortColumn + " " + direction)

	var dbModels []models.DeviceLogModel
	if err := db.Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list device logs: %w", err)
	}

	entries := make([]*devicelog.Entry, 0, len(dbModels))
	for i := range dbModels {
		entries = append(entries, toLogEntry(&dbModels[i]))
	}
	return entries, nil
}

func toLogEntry(m *models.DeviceLogModel) *devicelog.Entry {
	return &devicelog.Entry{
		ID:              m.ID,
		DeviceID:        m.DeviceID,
		AssetTag:        m.AssetTag,
		Action:          devicelog.Action(m.Action),
		UserName:        m.UserName,
		Reason:          m.Reason,
		HomeroomTeacher: m.HomeroomTeacher,
		SchoolID:        m.SchoolID,
		CreatedAt:       m.CreatedAt,
	}
}
