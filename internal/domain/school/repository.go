package school

import "context"

// Repository defines the interface for school repository operations.
type Repository interface {
	GetByID(ctx context.Context, id string) (*School, error)
	List(ctx context.Context) ([]*School, error)
	Update(ctx context.Context, s *School) error
	UpdateLogo(ctx context.Context, id string, logoURL string) error
}
