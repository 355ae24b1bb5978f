// Package vehicle holds the vehicle records in their two shapes.
//
// The entity shape (this file) is what the repository persists and reads
// back; ids are assigned by storage and are zero until the record is saved.
// The transfer shape (dto.go) is what travels over HTTP as JSON.
package vehicle

// Vehicle is the aggregate root. It always owns exactly one Details value.
type Vehicle struct {
	ID      int64
	Details *Details
}

// Details carries the descriptive fields of a vehicle. All of them are free
// text; nothing checks their format.
type Details struct {
	ID        int64
	Make      string
	Model     string
	ModelYear string
	BodyStyle string
	Engine    string
	Drivetype string
	Color     string
	Mpg       string
	Feature   *Feature
	Prices    []Price
}

// Feature groups the exterior and interior equipment lists.
type Feature struct {
	ID       int64
	Exterior []Exterior
	Interior []Interior
}

type Exterior struct {
	ID    int64
	Value string
}

type Interior struct {
	ID    int64
	Value string
}

// Price is one entry of the price history. FinalPrice is stored as given,
// it is not derived from MSRP and Savings.
type Price struct {
	ID         int64
	MSRP       float64
	Savings    float64
	FinalPrice float64
}
