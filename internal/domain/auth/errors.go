package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidToken        = errors.New("invalid or missing token")
	ErrTokenExpired        = errors.New("token expired")
	ErrPasswordMismatch    = errors.New("password confirmation does not match")
	ErrAccountDeactivated  = errors.New("account is deactivated")
)
