package location

import (
	"github.com/timekeep/attendance-backend-go/internal/pkg/validator"
)

type UpsertLocationRequest struct {
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters int     `json:"radius_meters"`
}

func (r *UpsertLocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}
	if r.RadiusMeters < 0 {
		errs = append(errs, validator.ValidationError{Field: "radius_meters", Message: "radius_meters must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LocationResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters int     `json:"radius_meters"`
}

func ToResponse(loc WorkLocation) LocationResponse {
	return LocationResponse{
		ID:           loc.ID,
		Name:         loc.Name,
		Latitude:     loc.Coordinate.Latitude,
		Longitude:    loc.Coordinate.Longitude,
		RadiusMeters: loc.RadiusMeters,
	}
}
