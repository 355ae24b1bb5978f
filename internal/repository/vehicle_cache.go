package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/deppfellow/vehicle-information/internal/model/vehicle"
)

const (
	cacheKeyPrefix     = "vehicle:"
	cacheGenerationKey = cacheKeyPrefix + "generation"
)

// Floats must survive the round trip exactly, which rules out ConfigFastest.
var cacheJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// CachedVehicleRepository serves reads from Redis and falls back to the
// wrapped gateway on a miss.
//
// Keys embed a generation number that Save bumps, so a write makes every
// cached read stale at once without scanning keys. Redis failures are
// logged and the call goes straight to the wrapped gateway.
type CachedVehicleRepository struct {
	next   VehicleGateway
	client redis.Cmdable
	ttl    time.Duration
	logger *zerolog.Logger
}

func NewCachedVehicleRepository(next VehicleGateway, client redis.Cmdable, ttl time.Duration, logger *zerolog.Logger) *CachedVehicleRepository {
	return &CachedVehicleRepository{next: next, client: client, ttl: ttl, logger: logger}
}

func (r *CachedVehicleRepository) Save(ctx context.Context, v *vehicle.Vehicle) (int64, error) {
	id, err := r.next.Save(ctx, v)
	if err != nil {
		return 0, err
	}

	if err := r.client.Incr(ctx, cacheGenerationKey).Err(); err != nil {
		r.logger.Warn().Err(err).Int64("vehicle_id", id).Msg("failed to invalidate vehicle cache")
	}
	return id, nil
}

func (r *CachedVehicleRepository) FindAll(ctx context.Context) ([]vehicle.Vehicle, error) {
	return r.cached(ctx, allKey(), func() ([]vehicle.Vehicle, error) {
		return r.next.FindAll(ctx)
	})
}

func (r *CachedVehicleRepository) FindByModel(ctx context.Context, name string) ([]vehicle.Vehicle, error) {
	return r.cached(ctx, modelKey(name), func() ([]vehicle.Vehicle, error) {
		return r.next.FindByModel(ctx, name)
	})
}

func (r *CachedVehicleRepository) FindByFinalPriceBetween(ctx context.Context, low, high float64) ([]vehicle.Vehicle, error) {
	return r.cached(ctx, priceKey(low, high), func() ([]vehicle.Vehicle, error) {
		return r.next.FindByFinalPriceBetween(ctx, low, high)
	})
}

func (r *CachedVehicleRepository) FindByExteriorContainingAndInteriorContaining(ctx context.Context, exterior, interior string) ([]vehicle.Vehicle, error) {
	return r.cached(ctx, featureKey(exterior, interior), func() ([]vehicle.Vehicle, error) {
		return r.next.FindByExteriorContainingAndInteriorContaining(ctx, exterior, interior)
	})
}

func (r *CachedVehicleRepository) cached(ctx context.Context, suffix string, load func() ([]vehicle.Vehicle, error)) ([]vehicle.Vehicle, error) {
	gen, err := r.generation(ctx)
	if err != nil {
		r.logger.Warn().Err(err).Msg("vehicle cache unavailable, reading from storage")
		return load()
	}
	key := cacheKey(gen, suffix)

	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var vehicles []vehicle.Vehicle
		if err := cacheJSON.Unmarshal(raw, &vehicles); err == nil {
			r.logger.Debug().Str("key", key).Msg("vehicle cache hit")
			return vehicles, nil
		}
		r.logger.Warn().Str("key", key).Msg("discarding unreadable vehicle cache entry")
	case !errors.Is(err, redis.Nil):
		r.logger.Warn().Err(err).Str("key", key).Msg("vehicle cache read failed")
	}

	vehicles, err := load()
	if err != nil {
		return nil, err
	}

	encoded, err := cacheJSON.Marshal(vehicles)
	if err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("failed to encode vehicles for cache")
		return vehicles, nil
	}
	if err := r.client.Set(ctx, key, encoded, r.ttl).Err(); err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("vehicle cache write failed")
	}
	return vehicles, nil
}

// generation reads the current cache generation; a missing key is 0.
func (r *CachedVehicleRepository) generation(ctx context.Context) (int64, error) {
	gen, err := r.client.Get(ctx, cacheGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func cacheKey(gen int64, suffix string) string {
	return fmt.Sprintf("%sv%d:%s", cacheKeyPrefix, gen, suffix)
}

func allKey() string {
	return "all"
}

func modelKey(name string) string {
	return "model:" + name
}

func priceKey(low, high float64) string {
	return "price:" + strconv.FormatFloat(low, 'g', -1, 64) + ":" + strconv.FormatFloat(high, 'g', -1, 64)
}

// featureKey lowercases both terms since matching ignores case. The length
// prefix keeps "a:b"+"c" apart from "a"+"b:c".
func featureKey(exterior, interior string) string {
	exterior = strings.ToLower(exterior)
	interior = strings.ToLower(interior)
	return fmt.Sprintf("feature:%d:%s:%s", len(exterior), exterior, interior)
}
