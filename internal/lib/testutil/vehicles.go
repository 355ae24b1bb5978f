// Package testutil contains fixtures shared by the package tests.
package testutil

import (
	"github.com/deppfellow/vehicle-information/internal/model/vehicle"
)

// FordEdgeDTO returns the reference submission used across tests: a 2019
// Ford Edge with four exterior and four interior features and three price
// entries.
func FordEdgeDTO() vehicle.VehicleDTO {
	price := vehicle.PriceDTO{MSRP: 50000.00, Savings: 20000.00, FinalPrice: 30000.00}

	return vehicle.VehicleDTO{
		VehicleID: 1,
		VehicleDetails: &vehicle.DetailsDTO{
			Make:      "Ford",
			Model:     "Edge",
			ModelYear: "2019",
			BodyStyle: "4D Sport Utility",
			Engine:    "Twin-Scroll 2.0L EcoBoost",
			Drivetype: "AWD",
			Color:     "Agate Black",
			Mpg:       "28",
			VehicleFeature: &vehicle.FeatureDTO{
				Exterior: []string{
					"Beltline Molding - Black",
					"Door Handles - Body Color",
					"Grille - Chrome",
					"Taillamps-Led",
				},
				Interior: []string{
					"60/40 Split Fold Rear Seat",
					"Cruise Control",
					"Dual Illum Vis Vanity Mirr",
					"Rotary Gear Shift Dial",
				},
			},
			VehiclePrice: []vehicle.PriceDTO{price, price, price},
		},
	}
}

// HondaCityDTO returns a second, cheaper vehicle with different features.
func HondaCityDTO() vehicle.VehicleDTO {
	return vehicle.VehicleDTO{
		VehicleDetails: &vehicle.DetailsDTO{
			Make:      "Honda",
			Model:     "City",
			ModelYear: "2021",
			BodyStyle: "4D Sedan",
			Engine:    "1.5L i-VTEC",
			Drivetype: "FWD",
			Color:     "Lunar Silver",
			Mpg:       "35",
			VehicleFeature: &vehicle.FeatureDTO{
				Exterior: []string{"LED Headlamps", "Chrome Door Handles"},
				Interior: []string{"Leather Seats", "Push Button Start"},
			},
			VehiclePrice: []vehicle.PriceDTO{
				{MSRP: 18000.00, Savings: 1500.50, FinalPrice: 16499.50},
			},
		},
	}
}

// Request wraps the given vehicles into a submission body.
func Request(vehicles ...vehicle.VehicleDTO) *vehicle.RequestData {
	return &vehicle.RequestData{
		Vehicles: &vehicle.VehicleList{Vehicle: vehicles},
	}
}
