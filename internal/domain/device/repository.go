package device

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for device repository operations.
// CheckOut and CheckIn are atomic: the status mutation and the paired
// audit-log row are committed in one transaction or not at all.
type Repository interface {
	Create(ctx context.Context, device *Device) error
	GetByID(ctx context.Context, deviceID uuid.UUID) (*Device, error)
	GetByAssetTag(ctx context.Context, assetTag string) (*Device, error)
	ListBySchool(ctx context.Context, schoolID string) ([]*Device, error)
	CheckOut(ctx context.Context, assetTag string, assignment Assignment) (*Device, error)
	CheckIn(ctx context.Context, assetTag string) (*Device, error)
	Delete(ctx context.Context, deviceID uuid.UUID) error
}
