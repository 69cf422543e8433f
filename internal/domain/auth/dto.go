package auth

import (
	"github.com/timekeep/attendance-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "username is required"})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
	EmployeeID   string `json:"employee_id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	NewPassword1 string `json:"new_password1"`
	NewPassword2 string `json:"new_password2"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.NewPassword1) < 8 {
		errs = append(errs, validator.ValidationError{Field: "new_password1", Message: "password must be at least 8 characters"})
	}
	if r.NewPassword1 != r.NewPassword2 {
		errs = append(errs, validator.ValidationError{Field: "new_password2", Message: "password confirmation does not match"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
