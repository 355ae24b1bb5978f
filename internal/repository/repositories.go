package repository

import (
	"github.com/deppfellow/vehicle-information/internal/server"
)

// Repositories holds the gateways the services depend on.
type Repositories struct {
	Vehicle VehicleGateway
}

// NewRepositories picks the vehicle gateway from what the server has
// connected: Postgres when a pool exists, memory otherwise, with the Redis
// cache in front when it is enabled.
func NewRepositories(s *server.Server) *Repositories {
	var gateway VehicleGateway
	if s.DB != nil {
		gateway = NewPostgresVehicleRepository(s.DB.Pool, s.Logger, s.Config.Observability.Logging.SlowQueryThreshold)
	} else {
		gateway = NewMemoryVehicleRepository()
	}

	if s.Redis != nil && s.Config.Redis.CacheEnabled {
		gateway = NewCachedVehicleRepository(gateway, s.Redis, s.Config.Redis.CacheTTL, s.Logger)
	}

	return &Repositories{Vehicle: gateway}
}
