package response

import (
	"errors"
	"net/http"

	"github.com/timekeep/attendance-backend-go/internal/domain/attendance"
	"github.com/timekeep/attendance-backend-go/internal/domain/auth"
	"github.com/timekeep/attendance-backend-go/internal/domain/employee"
	"github.com/timekeep/attendance-backend-go/internal/domain/location"
	"github.com/timekeep/attendance-backend-go/internal/domain/shift"
	"github.com/timekeep/attendance-backend-go/internal/pkg/face"
	"github.com/timekeep/attendance-backend-go/internal/pkg/geo"
	"github.com/timekeep/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Face verification rejections carry the measured distance
	var mismatch *attendance.IdentityMismatchError
	if errors.As(err, &mismatch) {
		Forbidden(w, mismatch.Error())
		return
	}

	var extraction *face.ExtractionError
	if errors.As(err, &extraction) {
		BadRequest(w, extraction.Error(), nil)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrAccountDeactivated):
		Forbidden(w, "Account is deactivated")
	case errors.Is(err, auth.ErrPasswordMismatch):
		BadRequest(w, "Password confirmation does not match", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrUsernameExists):
		Conflict(w, "Username already exists")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee account is deactivated")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrNotEnrolled):
		BadRequest(w, "No face embedding enrolled for this account", nil)
	case errors.Is(err, attendance.ErrNoLocationConfigured):
		BadRequest(w, "No clock-in location configured for this account", nil)
	case errors.Is(err, attendance.ErrLocationNotAllowed):
		Forbidden(w, "Work location is not in the allowed set")
	case errors.Is(err, attendance.ErrEventNotFound):
		NotFound(w, "Attendance event not found")
	case errors.Is(err, attendance.ErrInvalidKind):
		BadRequest(w, "Event type must be IN or OUT", nil)

	// Face pipeline errors
	case errors.Is(err, face.ErrCapabilityUnavailable):
		ServiceUnavailable(w, "Face verification is not available")
	case errors.Is(err, face.ErrNoFaceDetected):
		BadRequest(w, "No face detected in the submitted image", nil)
	case errors.Is(err, face.ErrMultipleFacesDetected):
		BadRequest(w, "More than one face detected in the submitted image", nil)
	case errors.Is(err, face.ErrInvalidEmbedding):
		BadRequest(w, "Face embedding could not be compared", nil)

	// Geo errors
	case errors.Is(err, geo.ErrInvalidCoordinate):
		BadRequest(w, "Coordinates are out of range", nil)

	// Master data errors
	case errors.Is(err, location.ErrLocationNotFound):
		NotFound(w, "Work location not found")
	case errors.Is(err, location.ErrLocationInUse):
		Conflict(w, "Work location is referenced by attendance records")
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrShiftNameExists):
		Conflict(w, "Shift name already exists")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
