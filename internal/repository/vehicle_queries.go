package repository

import (
	"errors"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // registers the dialect

	"github.com/deppfellow/vehicle-information/internal/model/vehicle"
)

const (
	dialectPostgres = "postgres"

	tableVehicle  = "vehicle"
	tableDetails  = "vehicle_details"
	tableFeature  = "vehicle_feature"
	tableExterior = "vehicle_feature_exterior"
	tableInterior = "vehicle_feature_interior"
	tablePrice    = "vehicle_price"

	colVehicleID  = "vehicle_id"
	colDetailsID  = "details_id"
	colFeatureID  = "feature_id"
	colExteriorID = "exterior_id"
	colInteriorID = "interior_id"
	colPriceID    = "price_id"
	colPosition   = "position"
	colValue      = "value"
	colMake       = "make"
	colModel      = "model"
	colModelYear  = "model_year"
	colBodyStyle  = "body_style"
	colEngine     = "engine"
	colDrivetype  = "drivetype"
	colColor      = "color"
	colMpg        = "mpg"
	colMSRP       = "msrp"
	colSavings    = "savings"
	colFinalPrice = "final_price"

	aliasDetails  = "d"
	aliasFeature  = "f"
	aliasExterior = "e"
	aliasInterior = "i"
	aliasPrice    = "p"
)

// sqlQuery is a rendered statement with its positional arguments.
type sqlQuery struct {
	sql  string
	args []any
}

var builder = goqu.Dialect(dialectPostgres)

type toSQLer interface {
	ToSQL() (string, []any, error)
}

func render(ds toSQLer) (sqlQuery, error) {
	sql, args, err := ds.ToSQL()
	if err != nil {
		return sqlQuery{}, errors.Join(ErrBuildingQuery, err)
	}
	return sqlQuery{sql: sql, args: args}, nil
}

func buildInsertVehicleQuery() (sqlQuery, error) {
	return render(builder.Insert(tableVehicle).Prepared(true).Returning(colVehicleID))
}

func buildInsertDetailsQuery(vehicleID int64, d *vehicle.Details) (sqlQuery, error) {
	return render(builder.Insert(tableDetails).Prepared(true).
		Cols(colVehicleID, colMake, colModel, colModelYear, colBodyStyle, colEngine, colDrivetype, colColor, colMpg).
		Vals(goqu.Vals{vehicleID, d.Make, d.Model, d.ModelYear, d.BodyStyle, d.Engine, d.Drivetype, d.Color, d.Mpg}).
		Returning(colDetailsID))
}

func buildInsertFeatureQuery(detailsID int64) (sqlQuery, error) {
	return render(builder.Insert(tableFeature).Prepared(true).
		Cols(colDetailsID).
		Vals(goqu.Vals{detailsID}).
		Returning(colFeatureID))
}

// buildInsertFeatureValueQuery inserts one exterior or interior entry.
// position keeps the submitted order.
func buildInsertFeatureValueQuery(table, idCol string, featureID int64, position int, value string) (sqlQuery, error) {
	return render(builder.Insert(table).Prepared(true).
		Cols(colFeatureID, colPosition, colValue).
		Vals(goqu.Vals{featureID, position, value}).
		Returning(idCol))
}

func buildInsertPriceQuery(detailsID int64, position int, p vehicle.Price) (sqlQuery, error) {
	return render(builder.Insert(tablePrice).Prepared(true).
		Cols(colDetailsID, colPosition, colMSRP, colSavings, colFinalPrice).
		Vals(goqu.Vals{detailsID, position, p.MSRP, p.Savings, p.FinalPrice}).
		Returning(colPriceID))
}

func buildSelectAllIDsQuery() (sqlQuery, error) {
	return render(builder.From(tableVehicle).Prepared(true).
		Select(colVehicleID).
		Order(goqu.I(colVehicleID).Asc()))
}

func buildSelectIDsByModelQuery(name string) (sqlQuery, error) {
	return render(builder.From(tableDetails).Prepared(true).
		Select(colVehicleID).
		Where(goqu.Ex{colModel: name}).
		Order(goqu.I(colVehicleID).Asc()))
}

// buildSelectIDsByPriceQuery matches vehicles with any price whose final
// price lies in [low, high].
func buildSelectIDsByPriceQuery(low, high float64) (sqlQuery, error) {
	detailsVehicleID := goqu.T(aliasDetails).Col(colVehicleID)

	return render(builder.From(goqu.T(tableDetails).As(aliasDetails)).Prepared(true).
		Select(detailsVehicleID).
		Distinct().
		Join(goqu.T(tablePrice).As(aliasPrice), goqu.On(
			goqu.T(aliasPrice).Col(colDetailsID).Eq(goqu.T(aliasDetails).Col(colDetailsID)),
		)).
		Where(goqu.T(aliasPrice).Col(colFinalPrice).Between(goqu.Range(low, high))).
		Order(detailsVehicleID.Asc()))
}

// buildSelectIDsByFeatureQuery needs one matching exterior AND one matching
// interior entry on the same vehicle. Matching is a case-insensitive
// substring test.
func buildSelectIDsByFeatureQuery(exterior, interior string) (sqlQuery, error) {
	detailsVehicleID := goqu.T(aliasDetails).Col(colVehicleID)
	featureID := goqu.T(aliasFeature).Col(colFeatureID)

	return render(builder.From(goqu.T(tableDetails).As(aliasDetails)).Prepared(true).
		Select(detailsVehicleID).
		Distinct().
		Join(goqu.T(tableFeature).As(aliasFeature), goqu.On(
			goqu.T(aliasFeature).Col(colDetailsID).Eq(goqu.T(aliasDetails).Col(colDetailsID)),
		)).
		Join(goqu.T(tableExterior).As(aliasExterior), goqu.On(
			goqu.T(aliasExterior).Col(colFeatureID).Eq(featureID),
		)).
		Join(goqu.T(tableInterior).As(aliasInterior), goqu.On(
			goqu.T(aliasInterior).Col(colFeatureID).Eq(featureID),
		)).
		Where(
			goqu.T(aliasExterior).Col(colValue).ILike(containsPattern(exterior)),
			goqu.T(aliasInterior).Col(colValue).ILike(containsPattern(interior)),
		).
		Order(detailsVehicleID.Asc()))
}

func buildSelectDetailsQuery(vehicleIDs []int64) (sqlQuery, error) {
	return render(builder.From(tableDetails).Prepared(true).
		Select(colDetailsID, colVehicleID, colMake, colModel, colModelYear, colBodyStyle, colEngine, colDrivetype, colColor, colMpg).
		Where(goqu.Ex{colVehicleID: vehicleIDs}))
}

func buildSelectFeaturesQuery(detailsIDs []int64) (sqlQuery, error) {
	return render(builder.From(tableFeature).Prepared(true).
		Select(colFeatureID, colDetailsID).
		Where(goqu.Ex{colDetailsID: detailsIDs}))
}

func buildSelectFeatureValuesQuery(table, idCol string, featureIDs []int64) (sqlQuery, error) {
	return render(builder.From(table).Prepared(true).
		Select(idCol, colFeatureID, colValue).
		Where(goqu.Ex{colFeatureID: featureIDs}).
		Order(goqu.I(colFeatureID).Asc(), goqu.I(colPosition).Asc()))
}

func buildSelectPricesQuery(detailsIDs []int64) (sqlQuery, error) {
	return render(builder.From(tablePrice).Prepared(true).
		Select(colPriceID, colDetailsID, colMSRP, colSavings, colFinalPrice).
		Where(goqu.Ex{colDetailsID: detailsIDs}).
		Order(goqu.I(colDetailsID).Asc(), goqu.I(colPosition).Asc()))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns s into an ILIKE pattern that matches s literally
// anywhere in the value.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
