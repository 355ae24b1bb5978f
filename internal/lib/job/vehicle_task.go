package job

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"github.com/deppfellow/vehicle-information/internal/model/vehicle"
)

const (
	// TaskVehicleSubmitted is queued once for every saved vehicle.
	TaskVehicleSubmitted = "vehicle:submitted"
)

var payloadJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// VehicleSubmittedPayload is the task body stored in Redis.
type VehicleSubmittedPayload struct {
	VehicleID  int64    `json:"vehicle_id"`
	Make       string   `json:"make"`
	Model      string   `json:"model"`
	ModelYear  string   `json:"model_year"`
	Color      string   `json:"color"`
	FinalPrice *float64 `json:"final_price,omitempty"`
}

// NewVehicleSubmittedPayload summarises a saved vehicle. FinalPrice is the
// last entry of the price list, when there is one.
func NewVehicleSubmittedPayload(v vehicle.Vehicle) VehicleSubmittedPayload {
	p := VehicleSubmittedPayload{VehicleID: v.ID}
	if v.Details == nil {
		return p
	}

	p.Make = v.Details.Make
	p.Model = v.Details.Model
	p.ModelYear = v.Details.ModelYear
	p.Color = v.Details.Color
	if n := len(v.Details.Prices); n > 0 {
		final := v.Details.Prices[n-1].FinalPrice
		p.FinalPrice = &final
	}
	return p
}

// NewVehicleSubmittedTask builds the task. It is retried three times on the
// low queue; notices are not urgent.
func NewVehicleSubmittedTask(p VehicleSubmittedPayload) (*asynq.Task, error) {
	payload, err := payloadJSON.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskVehicleSubmitted,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NotifyVehicleSubmitted queues a submission notice for v.
func (j *JobService) NotifyVehicleSubmitted(ctx context.Context, v vehicle.Vehicle) error {
	task, err := NewVehicleSubmittedTask(NewVehicleSubmittedPayload(v))
	if err != nil {
		return fmt.Errorf("building %s task: %w", TaskVehicleSubmitted, err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueueing %s task: %w", TaskVehicleSubmitted, err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Int64("vehicle_id", v.ID).
		Msg("queued submission notice")
	return nil
}

func formatPrice(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', 2, 64)
}
