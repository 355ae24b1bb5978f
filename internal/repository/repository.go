// Package repository is the only layer that touches vehicle storage.
//
// VehicleGateway is implemented three times: PostgresVehicleRepository
// for production, MemoryVehicleRepository for local runs and tests, and
// CachedVehicleRepository, which puts Redis in front of either.
package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/vehicle-information/internal/model/vehicle"
)

var (
	// ErrMissingDetails is returned by Save for a vehicle without details.
	ErrMissingDetails = errors.New("vehicle has no details")

	// ErrBuildingQuery wraps goqu ToSQL failures.
	ErrBuildingQuery = errors.New("building query failed")
)

// VehicleGateway reads and writes vehicle aggregates.
//
// Save persists the whole aggregate, fills in every generated id on v and
// returns the vehicle id. Finders return an empty, non-nil slice when
// nothing matches. Result order is by vehicle id but callers must not rely
// on it.
type VehicleGateway interface {
	Save(ctx context.Context, v *vehicle.Vehicle) (int64, error)
	FindAll(ctx context.Context) ([]vehicle.Vehicle, error)
	FindByModel(ctx context.Context, name string) ([]vehicle.Vehicle, error)
	FindByFinalPriceBetween(ctx context.Context, low, high float64) ([]vehicle.Vehicle, error)
	FindByExteriorContainingAndInteriorContaining(ctx context.Context, exterior, interior string) ([]vehicle.Vehicle, error)
}
