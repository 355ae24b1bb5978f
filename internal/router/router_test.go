package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/vehicle-information/internal/config"
	"github.com/deppfellow/vehicle-information/internal/errs"
	"github.com/deppfellow/vehicle-information/internal/handler"
	"github.com/deppfellow/vehicle-information/internal/lib/testutil"
	"github.com/deppfellow/vehicle-information/internal/model/vehicle"
	"github.com/deppfellow/vehicle-information/internal/repository"
	"github.com/deppfellow/vehicle-information/internal/server"
	"github.com/deppfellow/vehicle-information/internal/service"
)

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	return newTestRouterWithLogger(t, zerolog.Nop())
}

func newTestRouterWithLogger(t *testing.T, logger zerolog.Logger) *echo.Echo {
	t.Helper()

	s := &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server: config.ServerConfig{
				Port:               "0",
				CORSAllowedOrigins: []string{"*"},
			},
			Database:      config.DatabaseConfig{Driver: config.DriverMemory},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}

	services := service.NewServices(s, repository.NewRepositories(s))
	return NewRouter(s, handler.NewHandlers(s, services))
}

func do(t *testing.T, e *echo.Echo, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	if payload != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func envelope(t *testing.T, rec *httptest.ResponseRecorder) vehicle.ResponseData {
	t.Helper()
	var res vehicle.ResponseData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func submit(t *testing.T, e *echo.Echo, vehicles ...vehicle.VehicleDTO) vehicle.ResponseData {
	t.Helper()
	rec := do(t, e, http.MethodPost, "/vehicleInformation/submitVehicle", testutil.Request(vehicles...))
	require.Equal(t, http.StatusOK, rec.Code)
	return envelope(t, rec)
}

func Test_SubmitVehicle_AssignsSequentialIDs(t *testing.T) {
	e := newTestRouter(t)

	first := submit(t, e, testutil.FordEdgeDTO())
	assert.Equal(t, vehicle.StatusSuccess, first.Status)
	assert.Equal(t, 200, first.StatusCode)
	assert.Equal(t, "{1}submitted to database successfully", first.Message)

	second := submit(t, e, testutil.HondaCityDTO(), testutil.FordEdgeDTO())
	assert.Equal(t, "{2,3}submitted to database successfully", second.Message)
}

func Test_SubmitVehicle_EmptyBodies(t *testing.T) {
	e := newTestRouter(t)

	for name, body := range map[string]any{
		"no_vehicles":  `{}`,
		"empty_list":   `{"vehicles":{"vehicle":[]}}`,
		"null_list":    `{"vehicles":{"vehicle":null}}`,
		"no_body_json": nil,
	} {
		t.Run(name, func(t *testing.T) {
			rec := do(t, e, http.MethodPost, "/vehicleInformation/submitVehicle", body)

			assert.Equal(t, http.StatusOK, rec.Code)
			res := envelope(t, rec)
			assert.Equal(t, vehicle.StatusFailed, res.Status)
			assert.Equal(t, 204, res.StatusCode)
			assert.Equal(t, service.MsgEmptySubmission, res.Message)
		})
	}
}

func Test_SubmitVehicle_MalformedJSONIsBadRequest(t *testing.T) {
	e := newTestRouter(t)

	rec := do(t, e, http.MethodPost, "/vehicleInformation/submitVehicle", `{"vehicles":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "BAD_REQUEST", body.Code)
}

func Test_GetVehicleInformation_ReturnsSubmittedVehicle(t *testing.T) {
	e := newTestRouter(t)

	empty := envelope(t, do(t, e, http.MethodGet, "/getVehicleInformation", nil))
	assert.Equal(t, vehicle.StatusSuccess, empty.Status)
	require.NotNil(t, empty.Vehicles)
	assert.Empty(t, empty.Vehicles.Vehicle)

	submit(t, e, testutil.FordEdgeDTO())

	res := envelope(t, do(t, e, http.MethodGet, "/getVehicleInformation", nil))
	assert.Equal(t, service.MsgFetched, res.Message)
	require.Len(t, res.Vehicles.Vehicle, 1)

	want := testutil.FordEdgeDTO()
	got := res.Vehicles.Vehicle[0]
	assert.Equal(t, int64(1), got.VehicleID)
	assert.Equal(t, want.VehicleDetails, got.VehicleDetails)
}

func Test_GetVehicleModelName_ExactMatch(t *testing.T) {
	e := newTestRouter(t)
	submit(t, e, testutil.FordEdgeDTO(), testutil.HondaCityDTO())

	res := envelope(t, do(t, e, http.MethodGet, "/getVehicleModelName/Edge", nil))
	require.Len(t, res.Vehicles.Vehicle, 1)
	assert.Equal(t, "Ford", res.Vehicles.Vehicle[0].VehicleDetails.Make)

	res = envelope(t, do(t, e, http.MethodGet, "/getVehicleModelName/edge", nil))
	assert.Equal(t, vehicle.StatusSuccess, res.Status)
	assert.Empty(t, res.Vehicles.Vehicle)
}

func Test_GetVehiclePrice(t *testing.T) {
	e := newTestRouter(t)
	submit(t, e, testutil.FordEdgeDTO(), testutil.HondaCityDTO())

	tests := []struct {
		name   string
		target string
		status string
		code   int
		models []string
	}{
		{name: "inclusive_bounds", target: "/getVehiclePrice/16499.5/30000", status: vehicle.StatusSuccess, code: 200, models: []string{"Edge", "City"}},
		{name: "only_ford", target: "/getVehiclePrice/29999/30001", status: vehicle.StatusSuccess, code: 200, models: []string{"Edge"}},
		{name: "msrp_is_not_final_price", target: "/getVehiclePrice/49000/51000", status: vehicle.StatusSuccess, code: 200, models: []string{}},
		{name: "not_a_number", target: "/getVehiclePrice/cheap/30000", status: vehicle.StatusFailed, code: 400},
		{name: "inverted", target: "/getVehiclePrice/30000/100", status: vehicle.StatusFailed, code: 400},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, e, http.MethodGet, tc.target, nil)
			assert.Equal(t, http.StatusOK, rec.Code)

			res := envelope(t, rec)
			assert.Equal(t, tc.status, res.Status)
			assert.Equal(t, tc.code, res.StatusCode)

			if tc.models == nil {
				assert.Nil(t, res.Vehicles)
				return
			}
			models := []string{}
			for _, v := range res.Vehicles.Vehicle {
				models = append(models, v.VehicleDetails.Model)
			}
			assert.Equal(t, tc.models, models)
		})
	}
}

func Test_GetVehicleFeature(t *testing.T) {
	e := newTestRouter(t)
	submit(t, e, testutil.FordEdgeDTO(), testutil.HondaCityDTO())

	res := envelope(t, do(t, e, http.MethodGet, "/getVehicleFeature/GRILLE/cruise", nil))
	require.Len(t, res.Vehicles.Vehicle, 1)
	assert.Equal(t, "Edge", res.Vehicles.Vehicle[0].VehicleDetails.Model)

	res = envelope(t, do(t, e, http.MethodGet, "/getVehicleFeature/Grille/Leather", nil))
	assert.Equal(t, vehicle.StatusSuccess, res.Status)
	assert.Empty(t, res.Vehicles.Vehicle)

	rec := do(t, e, http.MethodGet, "/getVehicleFeature/Gr/Cruise", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	res = envelope(t, rec)
	assert.Equal(t, vehicle.StatusFail, res.Status)
	assert.Equal(t, 400, res.StatusCode)
	assert.Equal(t, service.MsgExteriorTooShort, res.Message)

	res = envelope(t, do(t, e, http.MethodGet, "/getVehicleFeature/Grille/Cr", nil))
	assert.Equal(t, service.MsgInteriorTooShort, res.Message)
}

func Test_GetVehicleFeature_EscapedSegments(t *testing.T) {
	e := newTestRouter(t)
	submit(t, e, testutil.FordEdgeDTO(), testutil.HondaCityDTO())

	for _, target := range []string{
		"/getVehicleFeature/Beltline%20Molding/60%2F40",
		"/getVehicleFeature/Beltline%20Molding%20-%20Black/60%2F40%20Split%20Fold%20Rear%20Seat",
	} {
		res := envelope(t, do(t, e, http.MethodGet, target, nil))
		assert.Equal(t, vehicle.StatusSuccess, res.Status, target)
		require.Len(t, res.Vehicles.Vehicle, 1, target)
		assert.Equal(t, "Ford", res.Vehicles.Vehicle[0].VehicleDetails.Make)
	}
}

func Test_GetVehicleModelName_EscapedSlash(t *testing.T) {
	e := newTestRouter(t)
	raptor := testutil.FordEdgeDTO()
	raptor.VehicleDetails.Model = "F-150/Raptor"
	submit(t, e, raptor, testutil.HondaCityDTO())

	res := envelope(t, do(t, e, http.MethodGet, "/getVehicleModelName/F-150%2FRaptor", nil))

	require.Len(t, res.Vehicles.Vehicle, 1)
	assert.Equal(t, "F-150/Raptor", res.Vehicles.Vehicle[0].VehicleDetails.Model)
}

func Test_UnknownRoute(t *testing.T) {
	e := newTestRouter(t)

	rec := do(t, e, http.MethodGet, "/getVehicleColor/black", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_PanicIsRecoveredWithRequestID(t *testing.T) {
	var logs bytes.Buffer
	e := newTestRouterWithLogger(t, zerolog.New(&logs))
	e.GET("/explode", func(c echo.Context) error {
		panic("exploded mid-request")
	})

	req := httptest.NewRequest(http.MethodGet, "/explode", nil)
	req.Header.Set("X-Request-ID", "req-panic-1")
	rec := httptest.NewRecorder()
	require.NotPanics(t, func() { e.ServeHTTP(rec, req) })

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "req-panic-1", rec.Header().Get("X-Request-ID"))
	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusInternalServerError, body.Status)

	assert.Contains(t, logs.String(), "recovered from panic")
	assert.Contains(t, logs.String(), `"request_id":"req-panic-1"`)
}

func Test_Status(t *testing.T) {
	e := newTestRouter(t)

	rec := do(t, e, http.MethodGet, "/status", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
