package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/deppfellow/vehicle-information/internal/mapper"
	"github.com/deppfellow/vehicle-information/internal/model/vehicle"
	"github.com/deppfellow/vehicle-information/internal/repository"
	"github.com/deppfellow/vehicle-information/internal/sqlerr"
)

const (
	MsgSubmitted        = "submitted to database successfully"
	MsgFetched          = "Fetched all vehicles from database successfully"
	MsgEmptySubmission  = "No vehicles found in the request"
	MsgMissingDetails   = "Vehicle details are required for every submitted vehicle"
	MsgInvalidPrice     = "Price range bounds must be numbers"
	MsgInvertedPrice    = "Price range start must not be greater than its end"
	MsgExteriorTooShort = "Exterior value length should be greater than 3."
	MsgInteriorTooShort = "Interior value length should be greater than 3."
	MsgInvalidPathParam = "Path parameters must be valid URL escapes"

	// MinFeatureLength is the shortest exterior or interior search term.
	MinFeatureLength = 3
)

// SubmissionNotifier is told about every vehicle that was saved.
type SubmissionNotifier interface {
	NotifyVehicleSubmitted(ctx context.Context, v vehicle.Vehicle) error
}

// VehicleService answers the five vehicle operations. Every method returns
// an envelope; none of them returns an error.
type VehicleService struct {
	gateway  repository.VehicleGateway
	notifier SubmissionNotifier
	logger   *zerolog.Logger
}

// NewVehicleService builds the service. notifier may be nil.
func NewVehicleService(gateway repository.VehicleGateway, notifier SubmissionNotifier, logger *zerolog.Logger) *VehicleService {
	return &VehicleService{
		gateway:  gateway,
		notifier: notifier,
		logger:   logger,
	}
}

// SubmitVehicle saves each submitted vehicle in order. Saves are
// independent: if one fails, the ones before it stay saved and the
// envelope names them.
func (s *VehicleService) SubmitVehicle(ctx context.Context, req *vehicle.RequestData) vehicle.ResponseData {
	if req == nil || req.Vehicles == nil || len(req.Vehicles.Vehicle) == 0 {
		return failed(204, MsgEmptySubmission)
	}

	for _, dto := range req.Vehicles.Vehicle {
		if dto.VehicleDetails == nil {
			return failed(400, MsgMissingDetails)
		}
	}

	ids := make([]int64, 0, len(req.Vehicles.Vehicle))
	for i, dto := range req.Vehicles.Vehicle {
		entity := mapper.ToEntity(dto)

		id, err := s.gateway.Save(ctx, &entity)
		if err != nil {
			s.log(ctx).Error().
				Err(err).
				Int("index", i).
				Ints64("saved_ids", ids).
				Msg("failed to save vehicle")

			message := storageMessage(err)
			if len(ids) > 0 {
				message = fmt.Sprintf("%ssubmitted before failure: %s", joinIDs(ids), message)
			}
			return vehicle.ResponseData{Status: vehicle.StatusError, StatusCode: 500, Message: message}
		}

		ids = append(ids, id)
		s.notify(ctx, entity)
	}

	s.log(ctx).Info().Ints64("vehicle_ids", ids).Msg("vehicles submitted")

	return vehicle.ResponseData{
		Status:     vehicle.StatusSuccess,
		StatusCode: 200,
		Message:    joinIDs(ids) + MsgSubmitted,
	}
}

// GetVehicleInformation returns every stored vehicle.
func (s *VehicleService) GetVehicleInformation(ctx context.Context) vehicle.ResponseData {
	vehicles, err := s.gateway.FindAll(ctx)
	return s.fetched(ctx, "find_all", vehicles, err)
}

// GetVehicleInformationByModelName returns vehicles whose model equals
// modelName exactly.
func (s *VehicleService) GetVehicleInformationByModelName(ctx context.Context, modelName string) vehicle.ResponseData {
	vehicles, err := s.gateway.FindByModel(ctx, modelName)
	return s.fetched(ctx, "find_by_model", vehicles, err)
}

// GetVehicleInformationByPriceRange returns vehicles with at least one
// final price in [from, to]. Bounds that are not finite numbers, or a
// start above the end, give a FAILED envelope without querying storage.
func (s *VehicleService) GetVehicleInformationByPriceRange(ctx context.Context, from, to string) vehicle.ResponseData {
	low, lowErr := parsePrice(from)
	high, highErr := parsePrice(to)
	if lowErr != nil || highErr != nil {
		return failed(400, MsgInvalidPrice)
	}
	if low > high {
		return failed(400, MsgInvertedPrice)
	}

	vehicles, err := s.gateway.FindByFinalPriceBetween(ctx, low, high)
	return s.fetched(ctx, "find_by_final_price_between", vehicles, err)
}

// GetVehicleInformationByFeatures returns vehicles with an exterior entry
// containing exterior and an interior entry containing interior, ignoring
// case. Term length is checked by the caller with CheckFeatureTerms.
func (s *VehicleService) GetVehicleInformationByFeatures(ctx context.Context, exterior, interior string) vehicle.ResponseData {
	vehicles, err := s.gateway.FindByExteriorContainingAndInteriorContaining(ctx, exterior, interior)
	return s.fetched(ctx, "find_by_feature", vehicles, err)
}

// CheckFeatureTerms returns a "fail" envelope when a search term is too
// short, and nil otherwise. Length counts characters, not bytes.
func CheckFeatureTerms(exterior, interior string) *vehicle.ResponseData {
	if len([]rune(exterior)) < MinFeatureLength {
		return &vehicle.ResponseData{Status: vehicle.StatusFail, StatusCode: 400, Message: MsgExteriorTooShort}
	}
	if len([]rune(interior)) < MinFeatureLength {
		return &vehicle.ResponseData{Status: vehicle.StatusFail, StatusCode: 400, Message: MsgInteriorTooShort}
	}
	return nil
}

func (s *VehicleService) fetched(ctx context.Context, operation string, vehicles []vehicle.Vehicle, err error) vehicle.ResponseData {
	if err != nil {
		s.log(ctx).Error().Err(err).Str("operation", operation).Msg("failed to read vehicles")
		return vehicle.ResponseData{Status: vehicle.StatusError, StatusCode: 500, Message: storageMessage(err)}
	}

	return vehicle.ResponseData{
		Status:     vehicle.StatusSuccess,
		StatusCode: 200,
		Message:    MsgFetched,
		Vehicles:   &vehicle.VehicleList{Vehicle: mapper.ToDTOs(vehicles)},
	}
}

func (s *VehicleService) notify(ctx context.Context, v vehicle.Vehicle) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyVehicleSubmitted(ctx, v); err != nil {
		s.log(ctx).Warn().Err(err).Int64("vehicle_id", v.ID).Msg("failed to queue submission notice")
	}
}

// log prefers the request-scoped logger placed on ctx by the HTTP layer.
func (s *VehicleService) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return s.logger
}

// RejectPathParams is the envelope for a request whose path segments
// cannot be unescaped.
func RejectPathParams() vehicle.ResponseData {
	return failed(400, MsgInvalidPathParam)
}

func failed(code int, message string) vehicle.ResponseData {
	return vehicle.ResponseData{Status: vehicle.StatusFailed, StatusCode: code, Message: message}
}

// storageMessage keeps driver details out of the envelope.
func storageMessage(err error) string {
	return sqlerr.HandleError(err).Error()
}

func parsePrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}

// joinIDs renders ids as {1,2,3}.
func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return "{" + strings.Join(parts, ",") + "}"
}
