package auth

import (
	"context"
	"testing"

	"github.com/timekeep/attendance-backend-go/internal/domain/auth"
	"github.com/timekeep/attendance-backend-go/internal/domain/employee"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubEmployeeRepo struct {
	employee.EmployeeRepository
	byUsername map[string]employee.Employee
	byID       map[string]employee.Employee
	passwords  map[string]string
}

func (s *stubEmployeeRepo) GetByUsername(ctx context.Context, username string) (employee.Employee, error) {
	emp, ok := s.byUsername[username]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *stubEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := s.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *stubEmployeeRepo) UpdatePasswordHash(ctx context.Context, id string, passwordHash string) (err error) {
	if s.passwords == nil {
		s.passwords = map[string]string{}
	}
	s.passwords[id] = passwordHash
	return nil
}

type stubJWT struct{}

func (s *stubJWT) GenerateAccessToken(employeeID, username, role string) (string, int64, error) {
	return "access-" + employeeID, 1234567890, nil
}

func (s *stubJWT) GenerateRefreshToken(employeeID string) (string, int64, error) {
	return "refresh-" + employeeID, 1234567890, nil
}

func (s *stubJWT) ValidateRefreshToken(tokenString string) (string, error) {
	if tokenString == "refresh-emp-1" {
		return "emp-1", nil
	}
	return "", auth.ErrInvalidToken
}

func (s *stubJWT) JWTAuth() *jwtauth.JWTAuth {
	return jwtauth.New("HS256", []byte("test-secret"), nil)
}

func testEmployee(t *testing.T, password string) employee.Employee {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return employee.Employee{
		ID:           "emp-1",
		Username:     "alice",
		PasswordHash: string(hash),
		Role:         employee.RoleEmployee,
		IsActive:     true,
	}
}

func TestLogin_Success(t *testing.T) {
	emp := testEmployee(t, "12345678")
	svc := NewAuthService(&stubEmployeeRepo{
		byUsername: map[string]employee.Employee{"alice": emp},
	}, &stubJWT{})

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Username: "alice", Password: "12345678"})

	require.NoError(t, err)
	assert.Equal(t, "access-emp-1", resp.AccessToken)
	assert.Equal(t, "refresh-emp-1", resp.RefreshToken)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "employee", resp.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	emp := testEmployee(t, "12345678")
	svc := NewAuthService(&stubEmployeeRepo{
		byUsername: map[string]employee.Employee{"alice": emp},
	}, &stubJWT{})

	_, err := svc.Login(context.Background(), auth.LoginRequest{Username: "alice", Password: "wrong"})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownUsername(t *testing.T) {
	svc := NewAuthService(&stubEmployeeRepo{byUsername: map[string]employee.Employee{}}, &stubJWT{})

	_, err := svc.Login(context.Background(), auth.LoginRequest{Username: "ghost", Password: "12345678"})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	emp := testEmployee(t, "12345678")
	emp.IsActive = false
	svc := NewAuthService(&stubEmployeeRepo{
		byUsername: map[string]employee.Employee{"alice": emp},
	}, &stubJWT{})

	_, err := svc.Login(context.Background(), auth.LoginRequest{Username: "alice", Password: "12345678"})

	assert.ErrorIs(t, err, auth.ErrAccountDeactivated)
}

func TestRefresh(t *testing.T) {
	emp := testEmployee(t, "12345678")
	repo := &stubEmployeeRepo{byID: map[string]employee.Employee{"emp-1": emp}}
	svc := NewAuthService(repo, &stubJWT{})

	resp, err := svc.Refresh(context.Background(), auth.RefreshRequest{RefreshToken: "refresh-emp-1"})
	require.NoError(t, err)
	assert.Equal(t, "emp-1", resp.EmployeeID)

	_, err = svc.Refresh(context.Background(), auth.RefreshRequest{RefreshToken: "bogus"})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestChangePassword_RejectsShortAndMismatched(t *testing.T) {
	svc := NewAuthService(&stubEmployeeRepo{}, &stubJWT{})

	err := svc.ChangePassword(context.Background(), auth.ChangePasswordRequest{
		NewPassword1: "short",
		NewPassword2: "short",
	})
	assert.Error(t, err)

	err = svc.ChangePassword(context.Background(), auth.ChangePasswordRequest{
		NewPassword1: "longenough1",
		NewPassword2: "longenough2",
	})
	assert.Error(t, err)
}
