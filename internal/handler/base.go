package handler

import (
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/vehicle-information/internal/middleware"
	"github.com/deppfellow/vehicle-information/internal/model/vehicle"
	"github.com/deppfellow/vehicle-information/internal/server"
	"github.com/deppfellow/vehicle-information/internal/service"
	"github.com/deppfellow/vehicle-information/internal/validation"
)

// Handler holds the shared application container.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// Payload is satisfied by a pointer to a request struct that validates
// itself. The pipeline allocates a fresh T for every request.
type Payload[T any] interface {
	*T
	validation.Validatable
}

// HandlerFunc is a typed endpoint receiving a bound and validated request.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// ResponseHandler writes a successful handler result and decorates the
// New Relic transaction for it.
type ResponseHandler interface {
	Handle(c echo.Context, result any) error
	GetOperation() string
	AddAttributes(txn *newrelic.Transaction, result any)
}

// EnvelopeResponseHandler writes a vehicle.ResponseData. ERROR envelopes
// are sent with 500, every other envelope with 200 and its own statusCode
// in the body.
type EnvelopeResponseHandler struct{}

func (h EnvelopeResponseHandler) Handle(c echo.Context, result any) error {
	envelope := result.(vehicle.ResponseData)
	return c.JSON(EnvelopeHTTPStatus(envelope), envelope)
}

func (h EnvelopeResponseHandler) GetOperation() string {
	return "handler_envelope"
}

func (h EnvelopeResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {
	envelope, ok := result.(vehicle.ResponseData)
	if txn == nil || !ok {
		return
	}
	txn.AddAttribute("envelope.status", envelope.Status)
	txn.AddAttribute("envelope.status_code", envelope.StatusCode)
	if envelope.Vehicles != nil {
		txn.AddAttribute("envelope.vehicle_count", len(envelope.Vehicles.Vehicle))
	}
}

// EnvelopeHTTPStatus is the transport status for an envelope.
func EnvelopeHTTPStatus(envelope vehicle.ResponseData) int {
	if envelope.Status == vehicle.StatusError {
		return http.StatusInternalServerError
	}
	return http.StatusOK
}

// handleRequest binds and validates req, runs handler and writes the
// result, logging and tracing each phase.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	handler func(c echo.Context, req Req) (any, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	validationStart := time.Now()
	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}
		return err
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		}
		return err
	}

	totalDuration := time.Since(start)
	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Info().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed")

	return responseHandler.Handle(c, result)
}

// HandleEnvelope turns a typed envelope endpoint into an echo.HandlerFunc.
//
//	router.GET("/getVehicleInformation", handler.HandleEnvelope(h, h.GetVehicleInformation))
func HandleEnvelope[T any, Req Payload[T]](
	h Handler,
	handler HandlerFunc[Req, vehicle.ResponseData],
) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := unescapePathParams(c); err != nil {
			middleware.GetLogger(c).Warn().Err(err).Str("route", c.Path()).Msg("rejecting malformed path parameters")
			return EnvelopeResponseHandler{}.Handle(c, service.RejectPathParams())
		}
		return handleRequest(c, Req(new(T)), func(c echo.Context, req Req) (any, error) {
			return handler(c, req)
		}, EnvelopeResponseHandler{})
	}
}

// unescapePathParams decodes the route parameters in place. Echo matches
// against the raw path whenever the request carries escapes that differ
// from the default encoding (%2F for instance), which leaves the bound
// values percent-encoded. Without a raw path they are already decoded.
func unescapePathParams(c echo.Context) error {
	if c.Request().URL.RawPath == "" {
		return nil
	}

	values := c.ParamValues()
	decoded := make([]string, len(values))
	for i, v := range values {
		d, err := url.PathUnescape(v)
		if err != nil {
			return err
		}
		decoded[i] = d
	}
	c.SetParamValues(decoded...)
	return nil
}
