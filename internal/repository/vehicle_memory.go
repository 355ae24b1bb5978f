package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/deppfellow/vehicle-information/internal/model/vehicle"
)

// MemoryVehicleRepository keeps vehicles in process memory. It is used
// when the database driver is "memory" and in tests. Stored aggregates are
// cloned on the way in and out so callers never share them.
type MemoryVehicleRepository struct {
	mu       sync.RWMutex
	vehicles []vehicle.Vehicle
	seq      memorySequences
}

// memorySequences mirrors the per-table identity columns of the postgres
// schema, so vehicle ids run 1, 2, 3 regardless of aggregate size.
type memorySequences struct {
	vehicle, details, feature, exterior, interior, price int64
}

func nextID(counter *int64) int64 {
	*counter++
	return *counter
}

func NewMemoryVehicleRepository() *MemoryVehicleRepository {
	return &MemoryVehicleRepository{}
}

func (r *MemoryVehicleRepository) Save(ctx context.Context, v *vehicle.Vehicle) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if v == nil || v.Details == nil {
		return 0, ErrMissingDetails
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	v.ID = nextID(&r.seq.vehicle)
	v.Details.ID = nextID(&r.seq.details)
	if v.Details.Feature == nil {
		v.Details.Feature = &vehicle.Feature{Exterior: []vehicle.Exterior{}, Interior: []vehicle.Interior{}}
	}
	v.Details.Feature.ID = nextID(&r.seq.feature)
	for i := range v.Details.Feature.Exterior {
		v.Details.Feature.Exterior[i].ID = nextID(&r.seq.exterior)
	}
	for i := range v.Details.Feature.Interior {
		v.Details.Feature.Interior[i].ID = nextID(&r.seq.interior)
	}
	for i := range v.Details.Prices {
		v.Details.Prices[i].ID = nextID(&r.seq.price)
	}

	r.vehicles = append(r.vehicles, cloneVehicle(*v))
	return v.ID, nil
}

func (r *MemoryVehicleRepository) FindAll(ctx context.Context) ([]vehicle.Vehicle, error) {
	return r.filter(ctx, func(vehicle.Vehicle) bool { return true })
}

func (r *MemoryVehicleRepository) FindByModel(ctx context.Context, name string) ([]vehicle.Vehicle, error) {
	return r.filter(ctx, func(v vehicle.Vehicle) bool {
		return v.Details.Model == name
	})
}

func (r *MemoryVehicleRepository) FindByFinalPriceBetween(ctx context.Context, low, high float64) ([]vehicle.Vehicle, error) {
	return r.filter(ctx, func(v vehicle.Vehicle) bool {
		for _, p := range v.Details.Prices {
			if p.FinalPrice >= low && p.FinalPrice <= high {
				return true
			}
		}
		return false
	})
}

func (r *MemoryVehicleRepository) FindByExteriorContainingAndInteriorContaining(ctx context.Context, exterior, interior string) ([]vehicle.Vehicle, error) {
	exterior = strings.ToLower(exterior)
	interior = strings.ToLower(interior)

	return r.filter(ctx, func(v vehicle.Vehicle) bool {
		f := v.Details.Feature
		extMatch := false
		for _, e := range f.Exterior {
			if strings.Contains(strings.ToLower(e.Value), exterior) {
				extMatch = true
				break
			}
		}
		if !extMatch {
			return false
		}
		for _, i := range f.Interior {
			if strings.Contains(strings.ToLower(i.Value), interior) {
				return true
			}
		}
		return false
	})
}

// Len reports how many vehicles are stored.
func (r *MemoryVehicleRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.vehicles)
}

func (r *MemoryVehicleRepository) filter(ctx context.Context, keep func(vehicle.Vehicle) bool) ([]vehicle.Vehicle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vehicle.Vehicle, 0)
	for _, v := range r.vehicles {
		if keep(v) {
			out = append(out, cloneVehicle(v))
		}
	}
	return out, nil
}

func cloneVehicle(v vehicle.Vehicle) vehicle.Vehicle {
	if v.Details == nil {
		return v
	}

	d := *v.Details
	if d.Feature != nil {
		f := *d.Feature
		f.Exterior = append([]vehicle.Exterior{}, f.Exterior...)
		f.Interior = append([]vehicle.Interior{}, f.Interior...)
		d.Feature = &f
	}
	d.Prices = append([]vehicle.Price{}, d.Prices...)
	v.Details = &d
	return v
}
