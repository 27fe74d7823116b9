package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
)

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var payload WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return errors.Wrap(err, "unmarshal welcome email payload")
	}

	j.logger.Info().
		Str("task", t.Type()).
		Str("email", payload.Email).
		Msg("Sending welcome email")

	return j.emailClient.SendWelcomeEmail(payload.Email, payload.Name)
}

func (j *JobService) handleBookingConfirmationTask(ctx context.Context, t *asynq.Task) error {
	var payload BookingConfirmationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return errors.Wrap(err, "unmarshal booking confirmation payload")
	}

	j.logger.Info().
		Str("task", t.Type()).
		Str("email", payload.Email).
		Msg("Sending booking confirmation email")

	return j.emailClient.SendBookingConfirmation(
		payload.Email,
		payload.LocationTitle,
		payload.StartTime.Format("Monday, 2 January 2006 at 15:04 MST"),
		fmt.Sprintf("$%.2f", payload.TotalAmount),
	)
}

func (j *JobService) handleChallengeStatusSweepTask(ctx context.Context, t *asynq.Task) error {
	if j.challenges == nil {
		return errors.New("challenge syncer not initialized")
	}

	updated, err := j.challenges.SyncStatuses(ctx)
	if err != nil {
		return errors.Wrap(err, "sync challenge statuses")
	}

	if updated > 0 {
		j.logger.Info().
			Int64("updated", updated).
			Msg("Challenge statuses synced")
	}

	return nil
}
