package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskWelcome              = "email:welcome"
	TaskBookingConfirmation  = "email:booking_confirmation"
	TaskChallengeStatusSweep = "challenge:status_sweep"
)

type WelcomeEmailPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type BookingConfirmationPayload struct {
	Email         string    `json:"email"`
	LocationTitle string    `json:"locationTitle"`
	StartTime     time.Time `json:"startTime"`
	TotalAmount   float64   `json:"totalAmount"`
}

// NewWelcomeEmailTask builds a welcome email task for a freshly
// registered user.
func NewWelcomeEmailTask(email, name string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{Email: email, Name: name})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NewBookingConfirmationTask builds a booking confirmation email task.
func NewBookingConfirmationTask(email, locationTitle string, startTime time.Time, totalAmount float64) (*asynq.Task, error) {
	payload, err := json.Marshal(BookingConfirmationPayload{
		Email:         email,
		LocationTitle: locationTitle,
		StartTime:     startTime,
		TotalAmount:   totalAmount,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskBookingConfirmation,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue("critical"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NewChallengeStatusSweepTask builds the periodic task that moves
// challenges between upcoming, active and ended.
func NewChallengeStatusSweepTask() *asynq.Task {
	return asynq.NewTask(
		TaskChallengeStatusSweep,
		nil,
		asynq.MaxRetry(1),
		asynq.Queue("low"),
		asynq.Timeout(time.Minute),
	)
}
