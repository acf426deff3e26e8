package models

import (
	"time"

	"github.com/google/uuid"
)

// DeviceModel represents the database model for devices.
type DeviceModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key"`
	AssetTag        string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	Serial          *string    `gorm:"type:varchar(100)"`
	Model           string     `gorm:"type:varchar(50);not null"`
	Status          string     `gorm:"type:varchar(20);not null;default:'available'"`
	SchoolID        string     `gorm:"type:varchar(50);not null;index"`
	AssignedToName  *string    `gorm:"type:varchar(255)"`
	AssignedAt      *time.Time `gorm:"type:timestamp"`
	AssignedReason  *string    `gorm:"type:varchar(100)"`
	HomeroomTeacher *string    `gorm:"type:varchar(255)"`
	CreatedAt       time.Time  `gorm:"not null"`
	UpdatedAt       time.Time  `gorm:"not null"`
}

func (DeviceModel) TableName() string {
	return "devices"
}
