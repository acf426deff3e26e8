package devicelog

import (
	"context"
	"time"
)

// Repository is read-only: log rows are appended by the device repository
// inside the lifecycle transactions and are never mutated afterwards.
type Repository interface {
	List(ctx context.Context, filter *Filter) ([]*Entry, error)
}

// Filter narrows the audit trail. Search matches asset tag, user name and
// reason as a case-insensitive substring.
type Filter struct {
	SchoolID  string
	Action    *Action
	StartDate *time.Time
	EndDate   *time.Time
	Search    string
	SortBy    string
	SortOrder string
}
