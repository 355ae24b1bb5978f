package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/vehicle-information/internal/model/vehicle"
	"github.com/deppfellow/vehicle-information/internal/server"
	"github.com/deppfellow/vehicle-information/internal/service"
)

// VehicleHandler serves the five vehicle endpoints.
type VehicleHandler struct {
	Handler
	vehicleService *service.VehicleService
}

func NewVehicleHandler(s *server.Server, vehicleService *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{
		Handler:        NewHandler(s),
		vehicleService: vehicleService,
	}
}

func (h *VehicleHandler) SubmitVehicle(c echo.Context, req *vehicle.RequestData) (vehicle.ResponseData, error) {
	return h.vehicleService.SubmitVehicle(c.Request().Context(), req), nil
}

func (h *VehicleHandler) GetVehicleInformation(c echo.Context, _ *vehicle.GetAllRequest) (vehicle.ResponseData, error) {
	return h.vehicleService.GetVehicleInformation(c.Request().Context()), nil
}

func (h *VehicleHandler) GetVehicleModelName(c echo.Context, req *vehicle.GetByModelRequest) (vehicle.ResponseData, error) {
	return h.vehicleService.GetVehicleInformationByModelName(c.Request().Context(), req.ModelName), nil
}

func (h *VehicleHandler) GetVehiclePrice(c echo.Context, req *vehicle.GetByPriceRequest) (vehicle.ResponseData, error) {
	return h.vehicleService.GetVehicleInformationByPriceRange(c.Request().Context(), req.From, req.To), nil
}

// GetVehicleFeature answers short search terms with a "fail" envelope
// before the service is called.
func (h *VehicleHandler) GetVehicleFeature(c echo.Context, req *vehicle.GetByFeatureRequest) (vehicle.ResponseData, error) {
	if rejected := service.CheckFeatureTerms(req.Exterior, req.Interior); rejected != nil {
		return *rejected, nil
	}
	return h.vehicleService.GetVehicleInformationByFeatures(c.Request().Context(), req.Exterior, req.Interior), nil
}
