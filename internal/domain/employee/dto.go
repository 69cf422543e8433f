package employee

import (
	"github.com/timekeep/attendance-backend-go/internal/domain/location"
	"github.com/timekeep/attendance-backend-go/internal/domain/shift"
	"github.com/timekeep/attendance-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Username           string   `json:"username"`
	FullName           string   `json:"full_name"`
	Email              string   `json:"email"`
	Phone              string   `json:"phone"`
	Role               string   `json:"role"`
	ShiftID            *string  `json:"shift_id"`
	AllowedLocationIDs []string `json:"allowed_location_ids"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "username must be 3-50 chars of letters, digits, '.', '_' or '-'"})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full_name is required"})
	}
	if r.Email != "" && !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email address"})
	}
	if r.Role != "" && !validator.IsInSlice(r.Role, []string{
		string(RoleAdmin), string(RoleHR), string(RoleManager), string(RoleEmployee),
	}) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "unknown role"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	FullName           *string  `json:"full_name"`
	Email              *string  `json:"email"`
	Phone              *string  `json:"phone"`
	Role               *string  `json:"role"`
	ShiftID            *string  `json:"shift_id"`
	AllowedLocationIDs []string `json:"allowed_location_ids"`
	IsActive           *bool    `json:"is_active"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email address"})
	}
	if r.Role != nil && !validator.IsInSlice(*r.Role, []string{
		string(RoleAdmin), string(RoleHR), string(RoleManager), string(RoleEmployee),
	}) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "unknown role"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
}

func (r *UpdateProfileRequest) Validate() error {
	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		return validator.ValidationErrors{
			{Field: "email", Message: "invalid email address"},
		}
	}
	return nil
}

type EmployeeResponse struct {
	ID               string                      `json:"id"`
	Username         string                      `json:"username"`
	FullName         string                      `json:"full_name"`
	Email            string                      `json:"email"`
	Phone            string                      `json:"phone"`
	Role             string                      `json:"role"`
	IsActive         bool                        `json:"is_active"`
	FaceEnrolled     bool                        `json:"face_enrolled"`
	Shift            *shift.ShiftResponse        `json:"shift,omitempty"`
	AllowedLocations []location.LocationResponse `json:"allowed_locations"`
}

func ToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:               e.ID,
		Username:         e.Username,
		FullName:         e.FullName,
		Email:            e.Email,
		Phone:            e.Phone,
		Role:             string(e.Role),
		IsActive:         e.IsActive,
		FaceEnrolled:     e.IsEnrolled(),
		AllowedLocations: []location.LocationResponse{},
	}
	if e.Shift != nil {
		s := shift.ToResponse(*e.Shift)
		resp.Shift = &s
	}
	for _, loc := range e.AllowedLocations {
		resp.AllowedLocations = append(resp.AllowedLocations, location.ToResponse(loc))
	}
	return resp
}
