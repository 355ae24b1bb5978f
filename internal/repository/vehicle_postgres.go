package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/deppfellow/vehicle-information/internal/model/vehicle"
)

// PgxDB is the part of *pgxpool.Pool the Postgres gateway uses.
type PgxDB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresVehicleRepository stores each vehicle aggregate across the six
// vehicle tables. Every Save runs in its own transaction.
type PostgresVehicleRepository struct {
	db            PgxDB
	logger        *zerolog.Logger
	slowThreshold time.Duration
}

// NewPostgresVehicleRepository builds the gateway. Reads slower than
// slowThreshold are logged at warn level; zero turns that off.
func NewPostgresVehicleRepository(db PgxDB, logger *zerolog.Logger, slowThreshold time.Duration) *PostgresVehicleRepository {
	return &PostgresVehicleRepository{db: db, logger: logger, slowThreshold: slowThreshold}
}

// savedIDs collects generated ids so v is only touched after commit.
type savedIDs struct {
	vehicle   int64
	details   int64
	feature   int64
	exteriors []int64
	interiors []int64
	prices    []int64
}

func (r *PostgresVehicleRepository) Save(ctx context.Context, v *vehicle.Vehicle) (int64, error) {
	if v == nil || v.Details == nil {
		return 0, ErrMissingDetails
	}

	var ids savedIDs
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		ids, err = insertVehicle(ctx, tx, v.Details)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("saving vehicle: %w", err)
	}

	applyIDs(v, ids)

	r.logger.Debug().
		Int64("vehicle_id", ids.vehicle).
		Int("exteriors", len(ids.exteriors)).
		Int("interiors", len(ids.interiors)).
		Int("prices", len(ids.prices)).
		Msg("vehicle saved")

	return ids.vehicle, nil
}

func insertVehicle(ctx context.Context, tx pgx.Tx, d *vehicle.Details) (savedIDs, error) {
	var ids savedIDs

	q, err := buildInsertVehicleQuery()
	if err != nil {
		return ids, err
	}
	if err := tx.QueryRow(ctx, q.sql, q.args...).Scan(&ids.vehicle); err != nil {
		return ids, fmt.Errorf("table:%s: %w", tableVehicle, err)
	}

	if q, err = buildInsertDetailsQuery(ids.vehicle, d); err != nil {
		return ids, err
	}
	if err := tx.QueryRow(ctx, q.sql, q.args...).Scan(&ids.details); err != nil {
		return ids, fmt.Errorf("table:%s: %w", tableDetails, err)
	}

	if q, err = buildInsertFeatureQuery(ids.details); err != nil {
		return ids, err
	}
	if err := tx.QueryRow(ctx, q.sql, q.args...).Scan(&ids.feature); err != nil {
		return ids, fmt.Errorf("table:%s: %w", tableFeature, err)
	}

	var exteriors, interiors []string
	if d.Feature != nil {
		for _, e := range d.Feature.Exterior {
			exteriors = append(exteriors, e.Value)
		}
		for _, i := range d.Feature.Interior {
			interiors = append(interiors, i.Value)
		}
	}

	if ids.exteriors, err = insertFeatureValues(ctx, tx, tableExterior, colExteriorID, ids.feature, exteriors); err != nil {
		return ids, err
	}
	if ids.interiors, err = insertFeatureValues(ctx, tx, tableInterior, colInteriorID, ids.feature, interiors); err != nil {
		return ids, err
	}

	ids.prices = make([]int64, len(d.Prices))
	for pos, p := range d.Prices {
		q, err := buildInsertPriceQuery(ids.details, pos, p)
		if err != nil {
			return ids, err
		}
		if err := tx.QueryRow(ctx, q.sql, q.args...).Scan(&ids.prices[pos]); err != nil {
			return ids, fmt.Errorf("table:%s: %w", tablePrice, err)
		}
	}

	return ids, nil
}

func insertFeatureValues(ctx context.Context, tx pgx.Tx, table, idCol string, featureID int64, values []string) ([]int64, error) {
	ids := make([]int64, len(values))
	for pos, value := range values {
		q, err := buildInsertFeatureValueQuery(table, idCol, featureID, pos, value)
		if err != nil {
			return nil, err
		}
		if err := tx.QueryRow(ctx, q.sql, q.args...).Scan(&ids[pos]); err != nil {
			return nil, fmt.Errorf("table:%s: %w", table, err)
		}
	}
	return ids, nil
}

func applyIDs(v *vehicle.Vehicle, ids savedIDs) {
	v.ID = ids.vehicle
	v.Details.ID = ids.details

	if v.Details.Feature == nil {
		v.Details.Feature = &vehicle.Feature{Exterior: []vehicle.Exterior{}, Interior: []vehicle.Interior{}}
	}
	v.Details.Feature.ID = ids.feature
	for i := range v.Details.Feature.Exterior {
		v.Details.Feature.Exterior[i].ID = ids.exteriors[i]
	}
	for i := range v.Details.Feature.Interior {
		v.Details.Feature.Interior[i].ID = ids.interiors[i]
	}
	for i := range v.Details.Prices {
		v.Details.Prices[i].ID = ids.prices[i]
	}
}

func (r *PostgresVehicleRepository) FindAll(ctx context.Context) ([]vehicle.Vehicle, error) {
	return r.find(ctx, "find_all", buildSelectAllIDsQuery)
}

func (r *PostgresVehicleRepository) FindByModel(ctx context.Context, name string) ([]vehicle.Vehicle, error) {
	return r.find(ctx, "find_by_model", func() (sqlQuery, error) {
		return buildSelectIDsByModelQuery(name)
	})
}

func (r *PostgresVehicleRepository) FindByFinalPriceBetween(ctx context.Context, low, high float64) ([]vehicle.Vehicle, error) {
	return r.find(ctx, "find_by_final_price_between", func() (sqlQuery, error) {
		return buildSelectIDsByPriceQuery(low, high)
	})
}

func (r *PostgresVehicleRepository) FindByExteriorContainingAndInteriorContaining(ctx context.Context, exterior, interior string) ([]vehicle.Vehicle, error) {
	return r.find(ctx, "find_by_feature", func() (sqlQuery, error) {
		return buildSelectIDsByFeatureQuery(exterior, interior)
	})
}

// find runs an id query and then loads the matching aggregates.
func (r *PostgresVehicleRepository) find(ctx context.Context, operation string, idQuery func() (sqlQuery, error)) ([]vehicle.Vehicle, error) {
	start := time.Now()

	q, err := idQuery()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, q.sql, q.args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	vehicles, err := r.load(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	if elapsed := time.Since(start); r.slowThreshold > 0 && elapsed > r.slowThreshold {
		r.logger.Warn().
			Str("operation", operation).
			Dur("duration", elapsed).
			Int("vehicles", len(vehicles)).
			Msg("slow vehicle query")
	}

	return vehicles, nil
}

// load assembles full aggregates for vehicleIDs, keeping their order.
func (r *PostgresVehicleRepository) load(ctx context.Context, vehicleIDs []int64) ([]vehicle.Vehicle, error) {
	if len(vehicleIDs) == 0 {
		return []vehicle.Vehicle{}, nil
	}

	detailsByVehicle := make(map[int64]*vehicle.Details, len(vehicleIDs))
	detailsByID := make(map[int64]*vehicle.Details, len(vehicleIDs))
	detailsIDs := make([]int64, 0, len(vehicleIDs))

	q, err := buildSelectDetailsQuery(vehicleIDs)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, q.sql, q.args...)
	if err != nil {
		return nil, err
	}
	var (
		d         vehicle.Details
		vehicleID int64
	)
	_, err = pgx.ForEachRow(rows,
		[]any{&d.ID, &vehicleID, &d.Make, &d.Model, &d.ModelYear, &d.BodyStyle, &d.Engine, &d.Drivetype, &d.Color, &d.Mpg},
		func() error {
			details := d
			details.Feature = &vehicle.Feature{Exterior: []vehicle.Exterior{}, Interior: []vehicle.Interior{}}
			details.Prices = []vehicle.Price{}
			detailsByVehicle[vehicleID] = &details
			detailsByID[details.ID] = &details
			detailsIDs = append(detailsIDs, details.ID)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("table:%s: %w", tableDetails, err)
	}

	if len(detailsIDs) > 0 {
		if err := r.loadFeatures(ctx, detailsIDs, detailsByID); err != nil {
			return nil, err
		}
		if err := r.loadPrices(ctx, detailsIDs, detailsByID); err != nil {
			return nil, err
		}
	}

	vehicles := make([]vehicle.Vehicle, 0, len(vehicleIDs))
	for _, id := range vehicleIDs {
		vehicles = append(vehicles, vehicle.Vehicle{ID: id, Details: detailsByVehicle[id]})
	}
	return vehicles, nil
}

func (r *PostgresVehicleRepository) loadFeatures(ctx context.Context, detailsIDs []int64, detailsByID map[int64]*vehicle.Details) error {
	q, err := buildSelectFeaturesQuery(detailsIDs)
	if err != nil {
		return err
	}
	rows, err := r.db.Query(ctx, q.sql, q.args...)
	if err != nil {
		return err
	}

	featureByID := make(map[int64]*vehicle.Feature, len(detailsIDs))
	featureIDs := make([]int64, 0, len(detailsIDs))
	var featureID, detailsID int64
	_, err = pgx.ForEachRow(rows, []any{&featureID, &detailsID}, func() error {
		if d, ok := detailsByID[detailsID]; ok {
			d.Feature.ID = featureID
			featureByID[featureID] = d.Feature
			featureIDs = append(featureIDs, featureID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("table:%s: %w", tableFeature, err)
	}
	if len(featureIDs) == 0 {
		return nil
	}

	err = r.loadFeatureValues(ctx, tableExterior, colExteriorID, featureIDs, func(id, featureID int64, value string) {
		if f, ok := featureByID[featureID]; ok {
			f.Exterior = append(f.Exterior, vehicle.Exterior{ID: id, Value: value})
		}
	})
	if err != nil {
		return err
	}

	return r.loadFeatureValues(ctx, tableInterior, colInteriorID, featureIDs, func(id, featureID int64, value string) {
		if f, ok := featureByID[featureID]; ok {
			f.Interior = append(f.Interior, vehicle.Interior{ID: id, Value: value})
		}
	})
}

func (r *PostgresVehicleRepository) loadFeatureValues(ctx context.Context, table, idCol string, featureIDs []int64, add func(id, featureID int64, value string)) error {
	q, err := buildSelectFeatureValuesQuery(table, idCol, featureIDs)
	if err != nil {
		return err
	}
	rows, err := r.db.Query(ctx, q.sql, q.args...)
	if err != nil {
		return err
	}

	var (
		id, featureID int64
		value         string
	)
	_, err = pgx.ForEachRow(rows, []any{&id, &featureID, &value}, func() error {
		add(id, featureID, value)
		return nil
	})
	if err != nil {
		return fmt.Errorf("table:%s: %w", table, err)
	}
	return nil
}

func (r *PostgresVehicleRepository) loadPrices(ctx context.Context, detailsIDs []int64, detailsByID map[int64]*vehicle.Details) error {
	q, err := buildSelectPricesQuery(detailsIDs)
	if err != nil {
		return err
	}
	rows, err := r.db.Query(ctx, q.sql, q.args...)
	if err != nil {
		return err
	}

	var (
		p         vehicle.Price
		detailsID int64
	)
	_, err = pgx.ForEachRow(rows, []any{&p.ID, &detailsID, &p.MSRP, &p.Savings, &p.FinalPrice}, func() error {
		if d, ok := detailsByID[detailsID]; ok {
			d.Prices = append(d.Prices, p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("table:%s: %w", tablePrice, err)
	}
	return nil
}
