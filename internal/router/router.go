// Package router builds the echo instance: the middleware chain, the
// system routes and the vehicle routes.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/vehicle-information/internal/handler"
	"github.com/deppfellow/vehicle-information/internal/middleware"
	"github.com/deppfellow/vehicle-information/internal/server"
)

// NewRouter wires the middleware and every route. The order matters:
// request ids and the enriched logger must exist before anything logs, and
// Recover sits right after RequestID so a panic in any later middleware is
// still answered with a 500 carrying the request id.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Global.Recover(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.RateLimit.Limit(),
	)

	registerSystemRoutes(router, h)
	registerVehicleRoutes(router, h)

	return router
}
