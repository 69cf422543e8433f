package location

import "context"

// WorkLocationRepository defines data access for work locations.
type WorkLocationRepository interface {
	Create(ctx context.Context, loc WorkLocation) (WorkLocation, error)
	GetByID(ctx context.Context, id string) (WorkLocation, error)
	List(ctx context.Context) ([]WorkLocation, error)
	Update(ctx context.Context, loc WorkLocation) error
	Delete(ctx context.Context, id string) error
}
