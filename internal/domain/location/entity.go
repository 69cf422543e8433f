package location

import (
	"time"

	"github.com/timekeep/attendance-backend-go/internal/pkg/geo"
)

// DefaultRadiusMeters is applied when a work location is created without an
// explicit geofence radius.
const DefaultRadiusMeters = 150

type WorkLocation struct {
	ID           string
	Name         string
	Coordinate   geo.Coordinate
	RadiusMeters int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
