package email

import (
	"context"
	"fmt"
)

// VehicleSubmitted is the data shown in a submission notice.
type VehicleSubmitted struct {
	VehicleID  int64
	Make       string
	Model      string
	ModelYear  string
	Color      string
	FinalPrice string
}

// SendVehicleSubmittedEmail tells the inventory inbox about a new vehicle.
func (c *Client) SendVehicleSubmittedEmail(ctx context.Context, to string, v VehicleSubmitted) error {
	return c.SendEmail(
		ctx,
		to,
		fmt.Sprintf("Vehicle #%d submitted: %s %s", v.VehicleID, v.Make, v.Model),
		TemplateVehicleSubmitted,
		v.templateData(),
	)
}

func (v VehicleSubmitted) templateData() map[string]string {
	return map[string]string{
		"VehicleID":  fmt.Sprintf("%d", v.VehicleID),
		"Make":       v.Make,
		"Model":      v.Model,
		"ModelYear":  v.ModelYear,
		"Color":      v.Color,
		"FinalPrice": v.FinalPrice,
	}
}
