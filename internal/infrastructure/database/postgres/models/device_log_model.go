package models

import (
	"time"

	"github.com/google/uuid"
)

// DeviceLogModel represents the database model for the append-only audit
// trail. DeviceID is a plain column, not a foreign key: log rows outlive
// device deletion and the reference is allowed to dangle.
type DeviceLogModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	DeviceID        uuid.UUID `gorm:"type:uuid;index"`
	AssetTag        string    `gorm:"type:varchar(100);not null;index"`
	Action          string    `gorm:"type:varchar(20);not null"`
	UserName        string    `gorm:"type:varchar(255);not null"`
	Reason          *string   `gorm:"type:varchar(100)"`
	HomeroomTeacher *string   `gorm:"type:varchar(255)"`
	SchoolID        string    `gorm:"type:varchar(50);not null;index"`
	CreatedAt       time.Time `gorm:"not null;index"`
}

func (DeviceLogModel) TableName() string {
	return "device_logs"
}
