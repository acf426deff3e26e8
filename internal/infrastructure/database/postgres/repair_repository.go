package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	domainRepair "device-checkout/internal/domain/repair"
	"device-checkout/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
)

// RepairTicketRepository implements the repair ticket domain repository.
type RepairTicketRepository struct {
	db *DB
}

// NewRepairTicketRepository creates a new repair ticket repository
func NewRepairTicketRepository(db *DB) domainRepair.Repository {
	return &RepairTicketRepository{db: db}
}

func (r *RepairTicketRepository) Create(ctx context.Context, t *domainRepair.Ticket) error {
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()
	if t.Status == "" {
		t.Status = domainRepair.StatusOpen
	}

	dbModel := toRepairTicketModel(t)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create repair ticket: %w", err)
	}

	return nil
}

func (r *RepairTicketRepository) List(ctx context.Context, filter *domainRepair.Filter) ([]*domainRepair.Ticket, error) {
	db := r.db.DB.WithContext(ctx).Model(&models.RepairTicketModel{})

	if filter.SchoolID != "" {
		db = db.Where("school_id = ?", filter.SchoolID)
	}
	if filter.DeviceBarcode != "" {
		db = db.Where("LOWER(device_barcode) LIKE ?", "%"+strings.ToLower(filter.DeviceBarcode)+"%")
	}
	if filter.FullName != "" {
		db = db.Where("LOWER(full_name) LIKE ?", "%"+strings.ToLower(filter.FullName)+"%")
	}
	if filter.IssueType != "" {
		db = db.Where("issue_type = ?", filter.IssueType)
	}
	if filter.IsStaff != nil {
		db = db.Where("is_staff = ?", *filter.IsStaff)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", string(*filter.Status))
	}
	if filter.StartDate != nil {
		db = db.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		db = db.Where("created_at <= ?", *filter.EndDate)
	}

	var dbModels []models.RepairTicketModel
	if err := db.Order("created_at DESC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list repair tickets: %w", err)
	}

	tickets := make([]*domainRepair.Ticket, 0, len(dbModels))
	for i := range dbModels {
		tickets = append(tickets, toRepairTicketEntity(&dbModels[i]))
	}
	return tickets, nil
}

func toRepairTicketModel(t *domainRepair.Ticket) *models.RepairTicketModel {
	return &models.RepairTicketModel{
		ID:               t.ID,
		SchoolID:         t.SchoolID,
		DeviceType:       t.DeviceType,
		FullName:         t.FullName,
		IssueType:        t.IssueType,
		DeviceBarcode:    t.DeviceBarcode,
		Notes:            t.Notes,
		IsStaff:          t.IsStaff,
		OperationsHeroID: t.OperationsHeroID,
		Status:           string(t.Status),
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

func toRepairTicketEntity(m *models.RepairTicketModel) *domainRepair.Ticket {
	return &domainRepair.Ticket{
		ID:               m.ID,
		SchoolID:         m.SchoolID,
		DeviceType:       m.DeviceType,
		FullName:         m.FullName,
		IssueType:        m.IssueType,
		DeviceBarcode:    m.DeviceBarcode,
		Notes:            m.Notes,
		IsStaff:          m.IsStaff,
		OperationsHeroID: m.OperationsHeroID,
		Status:           domainRepair.Status(m.Status),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
