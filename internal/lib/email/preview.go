package email

// PreviewData holds sample values for every template, keyed by template
// name, for rendering previews locally.
var PreviewData = map[Template]map[string]string{
	TemplateVehicleSubmitted: {
		"VehicleID":  "1",
		"Make":       "Ford",
		"Model":      "Edge",
		"ModelYear":  "2019",
		"Color":      "Agate Black",
		"FinalPrice": "30000.00",
	},
}
