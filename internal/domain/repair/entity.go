package repair

import (
	"time"

	"github.com/google/uuid"
)

// Ticket is the local mirror of a repair request accepted by the external
// helpdesk. A row exists only for submissions the upstream confirmed; the
// status is written once as "open" and never flipped locally; closing
// happens in the external system and is not synced back.
type Ticket struct {
	ID               uuid.UUID
	SchoolID         string
	DeviceType       string
	FullName         string
	IssueType        string
	DeviceBarcode    string
	Notes            *string
	IsStaff          bool
	OperationsHeroID string
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)
