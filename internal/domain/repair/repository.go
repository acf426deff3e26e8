package repair

import (
	"context"
	"time"
)

// Repository defines the interface for repair ticket repository operations.
type Repository interface {
	Create(ctx context.Context, ticket *Ticket) error
	List(ctx context.Context, filter *Filter) ([]*Ticket, error)
}

// Filter narrows the ticket listing. Barcode and name match as
// case-insensitive substrings; the rest are exact.
type Filter struct {
	SchoolID      string
	DeviceBarcode string
	FullName      string
	IssueType     string
	IsStaff       *bool
	Status        *Status
	StartDate     *time.Time
	EndDate       *time.Time
}
