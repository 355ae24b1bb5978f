package vehicle

import (
	"github.com/go-playground/validator/v10"
)

// Envelope statuses. StatusFail is the lower-case variant used by the
// feature length check on the HTTP boundary.
const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
	StatusFail    = "fail"
	StatusError   = "ERROR"
)

// RequestData is the body of a submission.
type RequestData struct {
	Vehicles *VehicleList `json:"vehicles"`
}

// Validate accepts any shape. Missing or empty vehicle lists are answered
// with a FAILED envelope by the service, not with a validation error.
func (r *RequestData) Validate() error {
	return nil
}

// VehicleList wraps the vehicles under the "vehicle" key, both in requests
// and in responses.
type VehicleList struct {
	Vehicle []VehicleDTO `json:"vehicle"`
}

type VehicleDTO struct {
	VehicleID      int64       `json:"vehicleId"`
	VehicleDetails *DetailsDTO `json:"vehicleDetails"`
}

type DetailsDTO struct {
	Make           string      `json:"make"`
	Model          string      `json:"model"`
	ModelYear      string      `json:"modelYear"`
	BodyStyle      string      `json:"bodyStyle"`
	Engine         string      `json:"engine"`
	Drivetype      string      `json:"drivetype"`
	Color          string      `json:"color"`
	Mpg            string      `json:"mpg"`
	VehicleFeature *FeatureDTO `json:"vehicleFeature"`
	VehiclePrice   []PriceDTO  `json:"vehiclePrice"`
}

type FeatureDTO struct {
	Exterior []string `json:"exterior"`
	Interior []string `json:"interior"`
}

type PriceDTO struct {
	MSRP       float64 `json:"msrp"`
	Savings    float64 `json:"savings"`
	FinalPrice float64 `json:"finalPrice"`
}

// ResponseData is the uniform envelope returned by every vehicle endpoint.
type ResponseData struct {
	Status     string       `json:"status"`
	StatusCode int          `json:"statusCode"`
	Message    string       `json:"message"`
	Vehicles   *VehicleList `json:"vehicles,omitempty"`
}

// ---------------------------------------------------------------------------
// Path parameter payloads. They are bound by echo from the route and only
// checked for presence here.

type GetAllRequest struct{}

func (r *GetAllRequest) Validate() error {
	return nil
}

type GetByModelRequest struct {
	ModelName string `param:"modelName" validate:"required"`
}

func (r *GetByModelRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// GetByPriceRequest keeps both bounds as strings; parsing them is part of
// the service contract so that bad numbers become a FAILED envelope.
type GetByPriceRequest struct {
	From string `param:"from" validate:"required"`
	To   string `param:"to" validate:"required"`
}

func (r *GetByPriceRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

type GetByFeatureRequest struct {
	Exterior string `param:"exterior" validate:"required"`
	Interior string `param:"interior" validate:"required"`
}

func (r *GetByFeatureRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
