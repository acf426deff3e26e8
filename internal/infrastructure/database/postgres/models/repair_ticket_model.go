package models

import (
	"time"

	"github.com/google/uuid"
)

// RepairTicketModel represents the database model for local mirrors of
// helpdesk tickets.
type RepairTicketModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key"`
	SchoolID         string    `gorm:"type:varchar(50);not null;index"`
	DeviceType       string    `gorm:"type:varchar(50);not null"`
	FullName         string    `gorm:"type:varchar(255);not null"`
	IssueType        string    `gorm:"type:varchar(100);not null"`
	DeviceBarcode    string    `gorm:"type:varchar(100);not null;index"`
	Notes            *string   `gorm:"type:text"`
	IsStaff          bool      `gorm:"not null;default:false"`
	OperationsHeroID string    `gorm:"type:varchar(100);not null"`
	Status           string    `gorm:"type:varchar(20);not null;default:'open'"`
	CreatedAt        time.Time `gorm:"not null;index"`
	UpdatedAt        time.Time `gorm:"not null"`
}

func (RepairTicketModel) TableName() string {
	return "repair_tickets"
}
