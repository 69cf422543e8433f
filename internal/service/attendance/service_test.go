package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/timekeep/attendance-backend-go/internal/domain/attendance"
	"github.com/timekeep/attendance-backend-go/internal/domain/employee"
	"github.com/timekeep/attendance-backend-go/internal/domain/location"
	"github.com/timekeep/attendance-backend-go/internal/pkg/face"
	"github.com/timekeep/attendance-backend-go/internal/pkg/geo"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventRepo struct {
	attendance.EventRepository
	events []attendance.Event
}

func (f *fakeEventRepo) Create(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeEventRepo) LatestOfKind(ctx context.Context, employeeID string, kind attendance.EventKind, from, to time.Time) (*attendance.Event, error) {
	var latest *attendance.Event
	for i := range f.events {
		ev := f.events[i]
		if ev.EmployeeID != employeeID || ev.Kind != kind {
			continue
		}
		if ev.Timestamp.Before(from) || !ev.Timestamp.Before(to) {
			continue
		}
		if latest == nil || ev.Timestamp.After(latest.Timestamp) {
			latest = &f.events[i]
		}
	}
	return latest, nil
}

func (f *fakeEventRepo) ListRecent(ctx context.Context, limit int) ([]attendance.Event, error) {
	if len(f.events) > limit {
		return f.events[len(f.events)-limit:], nil
	}
	return f.events, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

type fakeExtractor struct {
	embedding []float64
	err       error
}

func (f *fakeExtractor) Extract(ctx context.Context, imageBytes []byte) ([]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.embedding, nil
}

var testAuth = jwtauth.New("HS256", []byte("test-secret"), nil)

func authedContext(t *testing.T, employeeID, username string) context.Context {
	t.Helper()
	token, _, err := testAuth.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"username":    username,
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func officeLocation() location.WorkLocation {
	return location.WorkLocation{
		ID:   "loc-1",
		Name: "HQ",
		Coordinate: geo.Coordinate{
			Latitude:  10.762622,
			Longitude: 106.660172,
		},
		RadiusMeters: 150,
	}
}

func enrolledEmployee() employee.Employee {
	return employee.Employee{
		ID:               "emp-1",
		Username:         "alice",
		FullName:         "Alice Tran",
		Role:             employee.RoleEmployee,
		IsActive:         true,
		FaceEmbedding:    []float64{1, 0, 0},
		AllowedLocations: []location.WorkLocation{officeLocation()},
	}
}

func newTestService(events *fakeEventRepo, emp employee.Employee, extractor face.Extractor) attendance.AttendanceService {
	return NewAttendanceService(
		nil,
		events,
		nil,
		&fakeEmployeeRepo{employees: map[string]employee.Employee{emp.ID: emp}},
		nil,
		extractor,
		face.NewMatcher(0.40),
		time.UTC,
	)
}

func clockRequest() attendance.ClockRequest {
	office := officeLocation()
	return attendance.ClockRequest{
		Latitude:  office.Coordinate.Latitude,
		Longitude: office.Coordinate.Longitude,
		FaceImage: []byte("jpeg-bytes"),
	}
}

func TestClock_FirstOfDayIsIn(t *testing.T) {
	events := &fakeEventRepo{}
	svc := newTestService(events, enrolledEmployee(), &fakeExtractor{embedding: []float64{1, 0, 0}})

	resp, err := svc.Clock(authedContext(t, "emp-1", "alice"), clockRequest())

	require.NoError(t, err)
	assert.Equal(t, attendance.KindIn, resp.Kind)
	assert.True(t, resp.WithinGeofence)
	assert.InDelta(t, 0.0, resp.FaceDistance, 1e-9)
	assert.Equal(t, "loc-1", resp.WorkLocation.ID)
	require.Len(t, events.events, 1)
}

func TestClock_TogglesToOutAfterIn(t *testing.T) {
	events := &fakeEventRepo{}
	svc := newTestService(events, enrolledEmployee(), &fakeExtractor{embedding: []float64{1, 0, 0}})
	ctx := authedContext(t, "emp-1", "alice")

	first, err := svc.Clock(ctx, clockRequest())
	require.NoError(t, err)
	require.Equal(t, attendance.KindIn, first.Kind)

	second, err := svc.Clock(ctx, clockRequest())
	require.NoError(t, err)
	assert.Equal(t, attendance.KindOut, second.Kind)

	third, err := svc.Clock(ctx, clockRequest())
	require.NoError(t, err)
	assert.Equal(t, attendance.KindIn, third.Kind)
}

func TestClock_ExplicitKindSkipsInference(t *testing.T) {
	events := &fakeEventRepo{}
	svc := newTestService(events, enrolledEmployee(), &fakeExtractor{embedding: []float64{1, 0, 0}})

	req := clockRequest()
	req.Kind = attendance.KindOut

	resp, err := svc.Clock(authedContext(t, "emp-1", "alice"), req)

	require.NoError(t, err)
	assert.Equal(t, attendance.KindOut, resp.Kind)
}

func TestClock_OutsideGeofenceRecordedAndFlagged(t *testing.T) {
	events := &fakeEventRepo{}
	svc := newTestService(events, enrolledEmployee(), &fakeExtractor{embedding: []float64{1, 0, 0}})

	req := clockRequest()
	req.Latitude += 0.01 // roughly 1.1 km north

	resp, err := svc.Clock(authedContext(t, "emp-1", "alice"), req)

	require.NoError(t, err)
	assert.False(t, resp.WithinGeofence)
	assert.Greater(t, resp.DistanceMeters, 150.0)
	require.Len(t, events.events, 1, "out-of-fence events must still be recorded")
}

func TestClock_FaceMismatch(t *testing.T) {
	events := &fakeEventRepo{}
	svc := newTestService(events, enrolledEmployee(), &fakeExtractor{embedding: []float64{0, 1, 0}})

	_, err := svc.Clock(authedContext(t, "emp-1", "alice"), clockRequest())

	var mismatch *attendance.IdentityMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.InDelta(t, 1.0, mismatch.Distance, 1e-9)
	assert.Empty(t, events.events, "rejected clocks must not be persisted")
}

func TestClock_NotEnrolled(t *testing.T) {
	emp := enrolledEmployee()
	emp.FaceEmbedding = nil
	svc := newTestService(&fakeEventRepo{}, emp, &fakeExtractor{embedding: []float64{1, 0, 0}})

	_, err := svc.Clock(authedContext(t, "emp-1", "alice"), clockRequest())

	assert.ErrorIs(t, err, attendance.ErrNotEnrolled)
}

func TestClock_InactiveEmployee(t *testing.T) {
	emp := enrolledEmployee()
	emp.IsActive = false
	svc := newTestService(&fakeEventRepo{}, emp, &fakeExtractor{embedding: []float64{1, 0, 0}})

	_, err := svc.Clock(authedContext(t, "emp-1", "alice"), clockRequest())

	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestClock_NoExtractorConfigured(t *testing.T) {
	svc := newTestService(&fakeEventRepo{}, enrolledEmployee(), nil)

	_, err := svc.Clock(authedContext(t, "emp-1", "alice"), clockRequest())

	assert.ErrorIs(t, err, face.ErrCapabilityUnavailable)
}

func TestClock_ExtractorErrorsPassThrough(t *testing.T) {
	svc := newTestService(&fakeEventRepo{}, enrolledEmployee(), &fakeExtractor{err: face.ErrNoFaceDetected})

	_, err := svc.Clock(authedContext(t, "emp-1", "alice"), clockRequest())

	assert.ErrorIs(t, err, face.ErrNoFaceDetected)
}

func TestClock_NoLocationConfigured(t *testing.T) {
	emp := enrolledEmployee()
	emp.AllowedLocations = nil
	svc := newTestService(&fakeEventRepo{}, emp, &fakeExtractor{embedding: []float64{1, 0, 0}})

	_, err := svc.Clock(authedContext(t, "emp-1", "alice"), clockRequest())

	assert.ErrorIs(t, err, attendance.ErrNoLocationConfigured)
}

func TestClock_ExplicitLocationMustBeAllowed(t *testing.T) {
	svc := newTestService(&fakeEventRepo{}, enrolledEmployee(), &fakeExtractor{embedding: []float64{1, 0, 0}})

	req := clockRequest()
	req.WorkLocationID = "loc-other"

	_, err := svc.Clock(authedContext(t, "emp-1", "alice"), req)

	assert.ErrorIs(t, err, attendance.ErrLocationNotAllowed)
}

func TestClock_RejectsMissingFaceImage(t *testing.T) {
	svc := newTestService(&fakeEventRepo{}, enrolledEmployee(), &fakeExtractor{embedding: []float64{1, 0, 0}})

	req := clockRequest()
	req.FaceImage = nil

	_, err := svc.Clock(authedContext(t, "emp-1", "alice"), req)

	assert.Error(t, err)
}
