package devicelog

import (
	"time"

	"github.com/google/uuid"
)

// Entry is an immutable audit record of one checkout or check-in. The
// asset tag is denormalized so the trail survives device deletion; the
// device reference is a weak id that may dangle.
type Entry struct {
	ID              uuid.UUID
	DeviceID        uuid.UUID
	AssetTag        string
	Action          Action
	UserName        string
	Reason          *string
	HomeroomTeacher *string
	SchoolID        string
	CreatedAt       time.Time
}

// Action is the transition the entry records.
type Action string

const (
	ActionCheckout Action = "checkout"
	ActionCheckin  Action = "checkin"
)
