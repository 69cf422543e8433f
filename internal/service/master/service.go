package master

import (
	"context"
	"fmt"
	"time"

	"github.com/timekeep/attendance-backend-go/internal/domain/location"
	"github.com/timekeep/attendance-backend-go/internal/domain/shift"
	"github.com/timekeep/attendance-backend-go/internal/pkg/geo"
	"github.com/google/uuid"
)

type MasterService interface {
	// Work location operations
	CreateLocation(ctx context.Context, req location.UpsertLocationRequest) (location.LocationResponse, error)
	GetLocation(ctx context.Context, id string) (location.LocationResponse, error)
	ListLocations(ctx context.Context) ([]location.LocationResponse, error)
	UpdateLocation(ctx context.Context, id string, req location.UpsertLocationRequest) (location.LocationResponse, error)
	DeleteLocation(ctx context.Context, id string) error

	// Shift operations
	CreateShift(ctx context.Context, req shift.UpsertShiftRequest) (shift.ShiftResponse, error)
	GetShift(ctx context.Context, id string) (shift.ShiftResponse, error)
	ListShifts(ctx context.Context) ([]shift.ShiftResponse, error)
	UpdateShift(ctx context.Context, id string, req shift.UpsertShiftRequest) (shift.ShiftResponse, error)
	DeleteShift(ctx context.Context, id string) error
}

type masterServiceImpl struct {
	locationRepo location.WorkLocationRepository
	shiftRepo    shift.ShiftRepository
}

func NewMasterService(
	locationRepo location.WorkLocationRepository,
	shiftRepo shift.ShiftRepository,
) MasterService {
	return &masterServiceImpl{
		locationRepo: locationRepo,
		shiftRepo:    shiftRepo,
	}
}

// CreateLocation implements MasterService.
func (m *masterServiceImpl) CreateLocation(ctx context.Context, req location.UpsertLocationRequest) (location.LocationResponse, error) {
	if err := req.Validate(); err != nil {
		return location.LocationResponse{}, err
	}

	radius := req.RadiusMeters
	if radius == 0 {
		radius = location.DefaultRadiusMeters
	}

	now := time.Now()
	loc, err := m.locationRepo.Create(ctx, location.WorkLocation{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Coordinate:   geo.Coordinate{Latitude: req.Latitude, Longitude: req.Longitude},
		RadiusMeters: radius,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return location.LocationResponse{}, fmt.Errorf("failed to create work location: %w", err)
	}
	return location.ToResponse(loc), nil
}

// GetLocation implements MasterService.
func (m *masterServiceImpl) GetLocation(ctx context.Context, id string) (location.LocationResponse, error) {
	loc, err := m.locationRepo.GetByID(ctx, id)
	if err != nil {
		return location.LocationResponse{}, err
	}
	return location.ToResponse(loc), nil
}

// ListLocations implements MasterService.
func (m *masterServiceImpl) ListLocations(ctx context.Context) ([]location.LocationResponse, error) {
	locations, err := m.locationRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list work locations: %w", err)
	}

	responses := make([]location.LocationResponse, 0, len(locations))
	for _, loc := range locations {
		responses = append(responses, location.ToResponse(loc))
	}
	return responses, nil
}

// UpdateLocation implements MasterService.
func (m *masterServiceImpl) UpdateLocation(ctx context.Context, id string, req location.UpsertLocationRequest) (location.LocationResponse, error) {
	if err := req.Validate(); err != nil {
		return location.LocationResponse{}, err
	}

	loc, err := m.locationRepo.GetByID(ctx, id)
	if err != nil {
		return location.LocationResponse{}, err
	}

	loc.Name = req.Name
	loc.Coordinate = geo.Coordinate{Latitude: req.Latitude, Longitude: req.Longitude}
	if req.RadiusMeters > 0 {
		loc.RadiusMeters = req.RadiusMeters
	}
	loc.UpdatedAt = time.Now()

	if err := m.locationRepo.Update(ctx, loc); err != nil {
		return location.LocationResponse{}, fmt.Errorf("failed to update work location: %w", err)
	}
	return location.ToResponse(loc), nil
}

// DeleteLocation implements MasterService.
func (m *masterServiceImpl) DeleteLocation(ctx context.Context, id string) error {
	if _, err := m.locationRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return m.locationRepo.Delete(ctx, id)
}

// CreateShift implements MasterService.
func (m *masterServiceImpl) CreateShift(ctx context.Context, req shift.UpsertShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	s := req.ToShift()
	s.ID = uuid.NewString()
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	created, err := m.shiftRepo.Create(ctx, s)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return shift.ToResponse(created), nil
}

// GetShift implements MasterService.
func (m *masterServiceImpl) GetShift(ctx context.Context, id string) (shift.ShiftResponse, error) {
	s, err := m.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return shift.ToResponse(s), nil
}

// ListShifts implements MasterService.
func (m *masterServiceImpl) ListShifts(ctx context.Context) ([]shift.ShiftResponse, error) {
	shifts, err := m.shiftRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, s := range shifts {
		responses = append(responses, shift.ToResponse(s))
	}
	return responses, nil
}

// UpdateShift implements MasterService.
func (m *masterServiceImpl) UpdateShift(ctx context.Context, id string, req shift.UpsertShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	existing, err := m.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	updated := req.ToShift()
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()

	if err := m.shiftRepo.Update(ctx, updated); err != nil {
		return shift.ShiftResponse{}, err
	}
	return shift.ToResponse(updated), nil
}

// DeleteShift implements MasterService.
func (m *masterServiceImpl) DeleteShift(ctx context.Context, id string) error {
	if _, err := m.shiftRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return m.shiftRepo.Delete(ctx, id)
}
