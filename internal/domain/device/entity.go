package device

import (
	"time"

	"github.com/google/uuid"
)

// Device represents one physical loaner asset owned by a school.
type Device struct {
	ID       uuid.UUID
	AssetTag string
	Serial   *string
	Model    string
	Status   Status
	SchoolID string

	// Assignment fields are set only while the device is checked out.
	AssignedToName  *string
	AssignedAt      *time.Time
	AssignedReason  *string
	HomeroomTeacher *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Status is the lifecycle state of a device. There are exactly two states;
// repair flow is handled as a side-channel ticket plus a loaner checkout,
// never as a device state.
type Status string

const (
	StatusAvailable  Status = "available"
	StatusCheckedOut Status = "checked_out"
)

// Assignment captures who holds a device and why.
type Assignment struct {
	HolderName      string
	Reason          string
	HomeroomTeacher string
}

// IsCheckedOut reports whether the device is currently held by someone.
func (d *Device) IsCheckedOut() bool {
	return d.Status == StatusCheckedOut
}
