package employee

import "context"

// EmployeeService defines business logic for employee administration.
type EmployeeService interface {
	// Create registers a new employee with the default password and
	// optionally enrolls a face image in the same request.
	Create(ctx context.Context, req CreateEmployeeRequest, faceImage []byte) (EmployeeResponse, error)

	Get(ctx context.Context, id string) (EmployeeResponse, error)
	List(ctx context.Context) ([]EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// ToggleActive flips the active flag (deactivated employees cannot
	// clock in and drop out of reports).
	ToggleActive(ctx context.Context, id string) (EmployeeResponse, error)

	// EnrollFace extracts an embedding from the image and stores it as the
	// employee's reference. Degenerate detector outcomes are surfaced as-is.
	EnrollFace(ctx context.Context, id string, imageBytes []byte) error

	// ResetPassword sets the account back to the default password.
	ResetPassword(ctx context.Context, id string) error

	// Profile operations for the authenticated employee.
	GetProfile(ctx context.Context) (EmployeeResponse, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (EmployeeResponse, error)
}
