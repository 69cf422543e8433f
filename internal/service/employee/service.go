package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/timekeep/attendance-backend-go/internal/domain/employee"
	"github.com/timekeep/attendance-backend-go/internal/pkg/database"
	"github.com/timekeep/attendance-backend-go/internal/pkg/face"
	"github.com/timekeep/attendance-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	db *database.DB
	employee.EmployeeRepository

	extractor       face.Extractor
	defaultPassword string
}

func NewEmployeeService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
	extractor face.Extractor,
	defaultPassword string,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:                 db,
		EmployeeRepository: employeeRepo,
		extractor:          extractor,
		defaultPassword:    defaultPassword,
	}
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest, faceImage []byte) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	role := employee.Role(req.Role)
	if role == "" {
		role = employee.RoleEmployee
	}

	now := time.Now()
	emp := employee.Employee{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         role,
		ShiftID:      req.ShiftID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if len(faceImage) > 0 {
		if s.extractor == nil {
			return employee.EmployeeResponse{}, face.ErrCapabilityUnavailable
		}
		embedding, err := s.extractor.Extract(ctx, faceImage)
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		emp.FaceEmbedding = embedding
	}

	err = postgresql.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		created, err := s.EmployeeRepository.Create(ctx, emp)
		if err != nil {
			return err
		}
		emp = created

		if len(req.AllowedLocationIDs) > 0 {
			if err := s.EmployeeRepository.SetAllowedLocations(ctx, created.ID, req.AllowedLocationIDs); err != nil {
				return fmt.Errorf("failed to set allowed locations: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return s.Get(ctx, emp.ID)
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.EmployeeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.ToResponse(emp))
	}
	return responses, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.FullName != nil {
		emp.FullName = *req.FullName
	}
	if req.Email != nil {
		emp.Email = *req.Email
	}
	if req.Phone != nil {
		emp.Phone = *req.Phone
	}
	if req.Role != nil {
		emp.Role = employee.Role(*req.Role)
	}
	if req.ShiftID != nil {
		if *req.ShiftID == "" {
			emp.ShiftID = nil
		} else {
			emp.ShiftID = req.ShiftID
		}
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}
	emp.UpdatedAt = time.Now()

	err = postgresql.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		if err := s.EmployeeRepository.Update(ctx, emp); err != nil {
			return err
		}
		if req.AllowedLocationIDs != nil {
			if err := s.EmployeeRepository.SetAllowedLocations(ctx, id, req.AllowedLocationIDs); err != nil {
				return fmt.Errorf("failed to set allowed locations: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return s.Get(ctx, id)
}

// ToggleActive implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ToggleActive(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp.IsActive = !emp.IsActive
	emp.UpdatedAt = time.Now()

	if err := s.EmployeeRepository.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

// EnrollFace implements employee.EmployeeService.
func (s *EmployeeServiceImpl) EnrollFace(ctx context.Context, id string, imageBytes []byte) error {
	if len(imageBytes) == 0 {
		return face.ErrNoFaceDetected
	}
	if s.extractor == nil {
		return face.ErrCapabilityUnavailable
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, id); err != nil {
		return err
	}

	embedding, err := s.extractor.Extract(ctx, imageBytes)
	if err != nil {
		return err
	}

	if err := s.EmployeeRepository.UpdateFaceEmbedding(ctx, id, embedding); err != nil {
		return fmt.Errorf("failed to store face embedding: %w", err)
	}
	return nil
}

// ResetPassword implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ResetPassword(ctx context.Context, id string) error {
	if _, err := s.EmployeeRepository.GetByID(ctx, id); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.EmployeeRepository.UpdatePasswordHash(ctx, id, string(hash)); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	return nil
}

func (s *EmployeeServiceImpl) claimsEmployeeID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}
	return employeeID, nil
}

// GetProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetProfile(ctx context.Context) (employee.EmployeeResponse, error) {
	employeeID, err := s.claimsEmployeeID(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return s.Get(ctx, employeeID)
}

// UpdateProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateProfile(ctx context.Context, req employee.UpdateProfileRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	employeeID, err := s.claimsEmployeeID(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.FullName != nil {
		emp.FullName = *req.FullName
	}
	if req.Email != nil {
		emp.Email = *req.Email
	}
	if req.Phone != nil {
		emp.Phone = *req.Phone
	}
	emp.UpdatedAt = time.Now()

	if err := s.EmployeeRepository.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}
