package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrUsernameExists   = errors.New("username already exists")
	ErrEmployeeInactive = errors.New("employee account is deactivated")

	// Face enrollment
	ErrNotEnrolled = errors.New("employee has no enrolled face embedding")
)
