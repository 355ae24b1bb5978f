// Package mapper converts vehicles between their transfer (JSON) and entity
// (storage) shapes.
//
// The conversion is purely structural: values are copied as-is and list
// order is kept. Storage ids never flow from a transfer object into an
// entity; only the vehicle id is echoed back on the way out.
package mapper

import (
	"github.com/deppfellow/vehicle-information/internal/model/vehicle"
)

// ToEntity converts a submitted vehicle into an unsaved entity.
func ToEntity(dto vehicle.VehicleDTO) vehicle.Vehicle {
	return vehicle.Vehicle{
		Details: toDetailsEntity(dto.VehicleDetails),
	}
}

// ToEntities converts a list of transfer vehicles, keeping their order.
func ToEntities(dtos []vehicle.VehicleDTO) []vehicle.Vehicle {
	entities := make([]vehicle.Vehicle, 0, len(dtos))
	for _, dto := range dtos {
		entities = append(entities, ToEntity(dto))
	}
	return entities
}

// ToDTO converts a stored vehicle into its transfer shape.
func ToDTO(entity vehicle.Vehicle) vehicle.VehicleDTO {
	return vehicle.VehicleDTO{
		VehicleID:      entity.ID,
		VehicleDetails: toDetailsDTO(entity.Details),
	}
}

// ToDTOs converts stored vehicles, keeping their order. The result is never
// nil so an empty result serializes as [].
func ToDTOs(entities []vehicle.Vehicle) []vehicle.VehicleDTO {
	dtos := make([]vehicle.VehicleDTO, 0, len(entities))
	for _, entity := range entities {
		dtos = append(dtos, ToDTO(entity))
	}
	return dtos
}

func toDetailsEntity(dto *vehicle.DetailsDTO) *vehicle.Details {
	if dto == nil {
		return nil
	}

	prices := make([]vehicle.Price, 0, len(dto.VehiclePrice))
	for _, p := range dto.VehiclePrice {
		prices = append(prices, vehicle.Price{
			MSRP:       p.MSRP,
			Savings:    p.Savings,
			FinalPrice: p.FinalPrice,
		})
	}

	return &vehicle.Details{
		Make:      dto.Make,
		Model:     dto.Model,
		ModelYear: dto.ModelYear,
		BodyStyle: dto.BodyStyle,
		Engine:    dto.Engine,
		Drivetype: dto.Drivetype,
		Color:     dto.Color,
		Mpg:       dto.Mpg,
		Feature:   toFeatureEntity(dto.VehicleFeature),
		Prices:    prices,
	}
}

// toFeatureEntity always returns a feature: a vehicle owns one even when the
// payload leaves it out.
func toFeatureEntity(dto *vehicle.FeatureDTO) *vehicle.Feature {
	feature := &vehicle.Feature{
		Exterior: []vehicle.Exterior{},
		Interior: []vehicle.Interior{},
	}
	if dto == nil {
		return feature
	}

	for _, value := range dto.Exterior {
		feature.Exterior = append(feature.Exterior, vehicle.Exterior{Value: value})
	}
	for _, value := range dto.Interior {
		feature.Interior = append(feature.Interior, vehicle.Interior{Value: value})
	}
	return feature
}

func toDetailsDTO(entity *vehicle.Details) *vehicle.DetailsDTO {
	if entity == nil {
		return nil
	}

	prices := make([]vehicle.PriceDTO, 0, len(entity.Prices))
	for _, p := range entity.Prices {
		prices = append(prices, vehicle.PriceDTO{
			MSRP:       p.MSRP,
			Savings:    p.Savings,
			FinalPrice: p.FinalPrice,
		})
	}

	return &vehicle.DetailsDTO{
		Make:           entity.Make,
		Model:          entity.Model,
		ModelYear:      entity.ModelYear,
		BodyStyle:      entity.BodyStyle,
		Engine:         entity.Engine,
		Drivetype:      entity.Drivetype,
		Color:          entity.Color,
		Mpg:            entity.Mpg,
		VehicleFeature: toFeatureDTO(entity.Feature),
		VehiclePrice:   prices,
	}
}

func toFeatureDTO(entity *vehicle.Feature) *vehicle.FeatureDTO {
	dto := &vehicle.FeatureDTO{
		Exterior: []string{},
		Interior: []string{},
	}
	if entity == nil {
		return dto
	}

	for _, ext := range entity.Exterior {
		dto.Exterior = append(dto.Exterior, ext.Value)
	}
	for _, in := range entity.Interior {
		dto.Interior = append(dto.Interior, in.Value)
	}
	return dto
}
