package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/vehicle-information/internal/handler"
)

// registerSystemRoutes adds the health check and the API reference.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.Static("/static", handler.StaticDir)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
