package handler

import (
	"github.com/deppfellow/vehicle-information/internal/server"
	"github.com/deppfellow/vehicle-information/internal/service"
)

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Vehicle *VehicleHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Vehicle: NewVehicleHandler(s, services.Vehicle),
	}
}
