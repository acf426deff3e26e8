package models

import "time"

// SchoolModel represents the database model for schools. The primary key
// is the district slug (e.g. "kossman"), matching the helpdesk location
// mapping keys.
type SchoolModel struct {
	ID              string    `gorm:"type:varchar(50);primary_key"`
	Name            string    `gorm:"type:varchar(255);not null"`
	AllowNewDevices bool      `gorm:"not null;default:false"`
	LogoURL         *string   `gorm:"type:varchar(500)"`
	Address         *string   `gorm:"type:varchar(500)"`
	Contact         *string   `gorm:"type:varchar(255)"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

func (SchoolModel) TableName() string {
	return "schools"
}
