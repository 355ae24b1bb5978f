package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/vehicle-information/internal/handler"
)

func registerVehicleRoutes(r *echo.Echo, h *handler.Handlers) {
	v := h.Vehicle

	r.POST("/vehicleInformation/submitVehicle", handler.HandleEnvelope(v.Handler, v.SubmitVehicle))

	r.GET("/getVehicleInformation", handler.HandleEnvelope(v.Handler, v.GetVehicleInformation))
	r.GET("/getVehicleModelName/:modelName", handler.HandleEnvelope(v.Handler, v.GetVehicleModelName))
	r.GET("/getVehiclePrice/:from/:to", handler.HandleEnvelope(v.Handler, v.GetVehiclePrice))
	r.GET("/getVehicleFeature/:exterior/:interior", handler.HandleEnvelope(v.Handler, v.GetVehicleFeature))
}
