package middleware

import (
	"net/http"

	"github.com/timekeep/attendance-backend-go/internal/domain/employee"
	"github.com/timekeep/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func claimsRole(r *http.Request) (employee.Role, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return "", false
	}
	return employee.Role(roleStr), true
}

// RequireAttendanceManager allows admin, hr and manager roles: the ones
// that may record, edit or delete attendance on behalf of others and read
// cross-employee reports.
func RequireAttendanceManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := claimsRole(r)
		if !ok || !role.CanManageAttendance() {
			response.Forbidden(w, "Attendance management access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireEmployeeAdmin allows admin and hr roles, which administer
// employee accounts and master data.
func RequireEmployeeAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := claimsRole(r)
		if !ok || !role.CanManageEmployees() {
			response.Forbidden(w, "Employee administration access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
