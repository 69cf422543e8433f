package employee

import "context"

// EmployeeRepository defines data access for employees. GetByID and
// GetByUsername return the employee with shift and allowed locations
// resolved; the evaluation core receives fully-loaded entities.
type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUsername(ctx context.Context, username string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)

	// ListActiveWithShift returns active employees with their shift and
	// allowed locations resolved, ordered by username. Used by reporting.
	ListActiveWithShift(ctx context.Context) ([]Employee, error)

	Update(ctx context.Context, e Employee) error
	UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error
	UpdateFaceEmbedding(ctx context.Context, id string, embedding []float64) error
	SetAllowedLocations(ctx context.Context, id string, locationIDs []string) error
}
