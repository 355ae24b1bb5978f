package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/vehicle-information/internal/config"
	"github.com/deppfellow/vehicle-information/internal/lib/email"
)

// Mailer sends the submission notice email.
type Mailer interface {
	SendVehicleSubmittedEmail(ctx context.Context, to string, v email.VehicleSubmitted) error
}

// InitHandlers wires the dependencies the task handlers need. Without a
// Resend key or a notification address, notices are logged and dropped.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.notifyTo = cfg.Integration.NotificationEmail
	if cfg.Integration.ResendAPIKey != "" {
		j.mailer = email.NewClient(cfg, logger)
	}
}

func (j *JobService) handleVehicleSubmittedTask(ctx context.Context, t *asynq.Task) error {
	var p VehicleSubmittedPayload
	if err := payloadJSON.Unmarshal(t.Payload(), &p); err != nil {
		// A malformed payload will never succeed, so skip retries.
		return fmt.Errorf("failed to unmarshal %s payload: %v: %w", TaskVehicleSubmitted, err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", TaskVehicleSubmitted).
		Int64("vehicle_id", p.VehicleID).
		Logger()

	if j.mailer == nil || j.notifyTo == "" {
		log.Info().Msg("Email notifications disabled, dropping submission notice")
		return nil
	}

	log.Info().Str("to", j.notifyTo).Msg("Processing submission notice")

	err := j.mailer.SendVehicleSubmittedEmail(ctx, j.notifyTo, email.VehicleSubmitted{
		VehicleID:  p.VehicleID,
		Make:       p.Make,
		Model:      p.Model,
		ModelYear:  p.ModelYear,
		Color:      p.Color,
		FinalPrice: formatPrice(p.FinalPrice),
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to send submission notice")
		return err
	}

	log.Info().Msg("Successfully sent submission notice")
	return nil
}
