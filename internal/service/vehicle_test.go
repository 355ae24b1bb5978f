package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/vehicle-information/internal/lib/testutil"
	"github.com/deppfellow/vehicle-information/internal/mapper"
	"github.com/deppfellow/vehicle-information/internal/model/vehicle"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Save(ctx context.Context, v *vehicle.Vehicle) (int64, error) {
	args := m.Called(ctx, v)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockGateway) FindAll(ctx context.Context) ([]vehicle.Vehicle, error) {
	args := m.Called(ctx)
	return vehicles(args.Get(0)), args.Error(1)
}

func (m *mockGateway) FindByModel(ctx context.Context, name string) ([]vehicle.Vehicle, error) {
	args := m.Called(ctx, name)
	return vehicles(args.Get(0)), args.Error(1)
}

func (m *mockGateway) FindByFinalPriceBetween(ctx context.Context, low, high float64) ([]vehicle.Vehicle, error) {
	args := m.Called(ctx, low, high)
	return vehicles(args.Get(0)), args.Error(1)
}

func (m *mockGateway) FindByExteriorContainingAndInteriorContaining(ctx context.Context, exterior, interior string) ([]vehicle.Vehicle, error) {
	args := m.Called(ctx, exterior, interior)
	return vehicles(args.Get(0)), args.Error(1)
}

func vehicles(v any) []vehicle.Vehicle {
	if v == nil {
		return nil
	}
	return v.([]vehicle.Vehicle)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyVehicleSubmitted(ctx context.Context, v vehicle.Vehicle) error {
	return m.Called(ctx, v.ID).Error(0)
}

func newService(gw *mockGateway, notifier SubmissionNotifier) *VehicleService {
	logger := zerolog.Nop()
	return NewVehicleService(gw, notifier, &logger)
}

// stored returns the Ford Edge as it would come back from storage.
func stored(id int64) vehicle.Vehicle {
	v := mapper.ToEntity(testutil.FordEdgeDTO())
	v.ID = id
	return v
}

func Test_SubmitVehicle_RejectsEmptySubmissions(t *testing.T) {
	tests := []struct {
		name string
		req  *vehicle.RequestData
	}{
		{name: "nil_request", req: nil},
		{name: "nil_vehicles", req: &vehicle.RequestData{}},
		{name: "nil_list", req: &vehicle.RequestData{Vehicles: &vehicle.VehicleList{}}},
		{name: "empty_list", req: &vehicle.RequestData{Vehicles: &vehicle.VehicleList{Vehicle: []vehicle.VehicleDTO{}}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gw := &mockGateway{}
			res := newService(gw, nil).SubmitVehicle(context.Background(), tc.req)

			assert.Equal(t, vehicle.StatusFailed, res.Status)
			assert.Equal(t, 204, res.StatusCode)
			gw.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func Test_SubmitVehicle_SingleVehicle(t *testing.T) {
	gw := &mockGateway{}
	var saved *vehicle.Vehicle
	gw.On("Save", mock.Anything, mock.AnythingOfType("*vehicle.Vehicle")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*vehicle.Vehicle) }).
		Return(int64(42), nil).Once()

	dto := testutil.FordEdgeDTO()
	res := newService(gw, nil).SubmitVehicle(context.Background(), testutil.Request(dto))

	assert.Equal(t, vehicle.StatusSuccess, res.Status)
	assert.Equal(t, 200, res.StatusCode)
	assert.Equal(t, "{42}submitted to database successfully", res.Message)
	gw.AssertExpectations(t)

	require.NotNil(t, saved)
	roundTrip := mapper.ToDTO(*saved)
	roundTrip.VehicleID = dto.VehicleID
	assert.Equal(t, dto, roundTrip)
}

func Test_SubmitVehicle_MultipleVehiclesJoinIDsWithComma(t *testing.T) {
	gw := &mockGateway{}
	gw.On("Save", mock.Anything, mock.Anything).Return(int64(1), nil).Once()
	gw.On("Save", mock.Anything, mock.Anything).Return(int64(2), nil).Once()

	res := newService(gw, nil).SubmitVehicle(context.Background(),
		testutil.Request(testutil.FordEdgeDTO(), testutil.HondaCityDTO()))

	assert.Equal(t, "{1,2}submitted to database successfully", res.Message)
	gw.AssertNumberOfCalls(t, "Save", 2)
}

func Test_SubmitVehicle_MissingDetailsIsRejectedBeforeSaving(t *testing.T) {
	gw := &mockGateway{}

	res := newService(gw, nil).SubmitVehicle(context.Background(),
		testutil.Request(testutil.FordEdgeDTO(), vehicle.VehicleDTO{}))

	assert.Equal(t, vehicle.StatusFailed, res.Status)
	assert.Equal(t, 400, res.StatusCode)
	assert.Equal(t, MsgMissingDetails, res.Message)
	gw.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func Test_SubmitVehicle_PartialFailureReportsSavedIDs(t *testing.T) {
	gw := &mockGateway{}
	gw.On("Save", mock.Anything, mock.Anything).Return(int64(7), nil).Once()
	gw.On("Save", mock.Anything, mock.Anything).Return(int64(0), &pgconn.PgError{Code: "08006"}).Once()

	res := newService(gw, nil).SubmitVehicle(context.Background(),
		testutil.Request(testutil.FordEdgeDTO(), testutil.HondaCityDTO(), testutil.FordEdgeDTO()))

	assert.Equal(t, vehicle.StatusError, res.Status)
	assert.Equal(t, 500, res.StatusCode)
	assert.Equal(t, "{7}submitted before failure: The vehicle database is currently unavailable", res.Message)
	gw.AssertNumberOfCalls(t, "Save", 2)
}

func Test_SubmitVehicle_NotifiesEachSavedVehicle(t *testing.T) {
	gw := &mockGateway{}
	gw.On("Save", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { args.Get(1).(*vehicle.Vehicle).ID = 5 }).
		Return(int64(5), nil)

	notifier := &mockNotifier{}
	notifier.On("NotifyVehicleSubmitted", mock.Anything, int64(5)).Return(errors.New("queue down")).Once()

	res := newService(gw, notifier).SubmitVehicle(context.Background(), testutil.Request(testutil.HondaCityDTO()))

	assert.Equal(t, vehicle.StatusSuccess, res.Status)
	notifier.AssertExpectations(t)
}

func Test_GetVehicleInformation(t *testing.T) {
	gw := &mockGateway{}
	gw.On("FindAll", mock.Anything).Return([]vehicle.Vehicle{stored(1), stored(2)}, nil)

	res := newService(gw, nil).GetVehicleInformation(context.Background())

	assert.Equal(t, vehicle.StatusSuccess, res.Status)
	assert.Equal(t, MsgFetched, res.Message)
	require.NotNil(t, res.Vehicles)
	require.Len(t, res.Vehicles.Vehicle, 2)
	assert.Equal(t, int64(2), res.Vehicles.Vehicle[1].VehicleID)
	assert.Equal(t, testutil.FordEdgeDTO().VehicleDetails, res.Vehicles.Vehicle[0].VehicleDetails)
}

func Test_GetVehicleInformation_EmptyIsSuccess(t *testing.T) {
	gw := &mockGateway{}
	gw.On("FindAll", mock.Anything).Return(nil, nil)

	res := newService(gw, nil).GetVehicleInformation(context.Background())

	assert.Equal(t, vehicle.StatusSuccess, res.Status)
	require.NotNil(t, res.Vehicles)
	assert.NotNil(t, res.Vehicles.Vehicle)
	assert.Empty(t, res.Vehicles.Vehicle)
}

func Test_GetVehicleInformation_StorageErrorBecomesErrorEnvelope(t *testing.T) {
	gw := &mockGateway{}
	gw.On("FindAll", mock.Anything).Return(nil, errors.New("dial tcp: connection refused"))

	res := newService(gw, nil).GetVehicleInformation(context.Background())

	assert.Equal(t, vehicle.StatusError, res.Status)
	assert.Equal(t, 500, res.StatusCode)
	assert.Equal(t, "Internal Server Error", res.Message)
	assert.Nil(t, res.Vehicles)
}

func Test_GetVehicleInformationByModelName(t *testing.T) {
	gw := &mockGateway{}
	gw.On("FindByModel", mock.Anything, "City").Return([]vehicle.Vehicle{stored(1)}, nil).Once()

	res := newService(gw, nil).GetVehicleInformationByModelName(context.Background(), "City")

	assert.Equal(t, MsgFetched, res.Message)
	require.Len(t, res.Vehicles.Vehicle, 1)
	gw.AssertExpectations(t)
}

func Test_GetVehicleInformationByPriceRange_ParsesBounds(t *testing.T) {
	gw := &mockGateway{}
	gw.On("FindByFinalPriceBetween", mock.Anything, 20000.0, 50000.0).Return([]vehicle.Vehicle{stored(1)}, nil).Once()

	res := newService(gw, nil).GetVehicleInformationByPriceRange(context.Background(), "20000.00", "50000.00")

	assert.Equal(t, vehicle.StatusSuccess, res.Status)
	assert.Equal(t, MsgFetched, res.Message)
	require.Len(t, res.Vehicles.Vehicle, 1)
	assert.Equal(t, 30000.0, res.Vehicles.Vehicle[0].VehicleDetails.VehiclePrice[0].FinalPrice)
	gw.AssertExpectations(t)
}

func Test_GetVehicleInformationByPriceRange_RejectsBadBounds(t *testing.T) {
	tests := []struct {
		name, from, to, message string
	}{
		{name: "not_a_number", from: "cheap", to: "50000", message: MsgInvalidPrice},
		{name: "empty_upper", from: "1", to: "", message: MsgInvalidPrice},
		{name: "nan", from: "NaN", to: "1", message: MsgInvalidPrice},
		{name: "infinite", from: "0", to: "Inf", message: MsgInvalidPrice},
		{name: "inverted", from: "50000", to: "20000", message: MsgInvertedPrice},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gw := &mockGateway{}
			res := newService(gw, nil).GetVehicleInformationByPriceRange(context.Background(), tc.from, tc.to)

			assert.Equal(t, vehicle.StatusFailed, res.Status)
			assert.Equal(t, 400, res.StatusCode)
			assert.Equal(t, tc.message, res.Message)
			gw.AssertNotCalled(t, "FindByFinalPriceBetween", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func Test_GetVehicleInformationByFeatures(t *testing.T) {
	exterior, interior := "Beltline Molding - Black", "60/40 Split Fold Rear Seat"

	gw := &mockGateway{}
	gw.On("FindByExteriorContainingAndInteriorContaining", mock.Anything, exterior, interior).
		Return([]vehicle.Vehicle{stored(1)}, nil).Once()

	res := newService(gw, nil).GetVehicleInformationByFeatures(context.Background(), exterior, interior)

	assert.Equal(t, MsgFetched, res.Message)
	require.Len(t, res.Vehicles.Vehicle, 1)
	assert.Equal(t, testutil.FordEdgeDTO().VehicleDetails, res.Vehicles.Vehicle[0].VehicleDetails)
}

func Test_GetVehicleInformationByFeatures_NoMatchIsSuccess(t *testing.T) {
	gw := &mockGateway{}
	gw.On("FindByExteriorContainingAndInteriorContaining", mock.Anything, mock.Anything, mock.Anything).
		Return([]vehicle.Vehicle{}, nil)

	res := newService(gw, nil).GetVehicleInformationByFeatures(context.Background(), "Beltline Molding - Black", "60/40 Split Fold Rear Seat")

	assert.Equal(t, vehicle.StatusSuccess, res.Status)
	assert.Equal(t, MsgFetched, res.Message)
	assert.Empty(t, res.Vehicles.Vehicle)
}

func Test_CheckFeatureTerms(t *testing.T) {
	tests := []struct {
		name, exterior, interior string
		message                  string
	}{
		{name: "short_exterior", exterior: "ab", interior: "valid-interior", message: MsgExteriorTooShort},
		{name: "short_interior", exterior: "valid", interior: "ab", message: MsgInteriorTooShort},
		{name: "both_short_names_exterior", exterior: "", interior: "", message: MsgExteriorTooShort},
		{name: "multibyte_counts_characters", exterior: "äöü", interior: "abc"},
		{name: "minimum_length", exterior: "abc", interior: "abc"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := CheckFeatureTerms(tc.exterior, tc.interior)
			if tc.message == "" {
				assert.Nil(t, res)
				return
			}
			require.NotNil(t, res)
			assert.Equal(t, vehicle.StatusFail, res.Status)
			assert.Equal(t, tc.message, res.Message)
		})
	}
}
