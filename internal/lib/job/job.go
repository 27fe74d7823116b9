// Package job provides background processing using Asynq.
//
// The API enqueues tasks (emails, sweeps) through asynq.Client; a worker
// server embedded in the same process pulls them from Redis and runs the
// handlers below. A scheduler periodically enqueues the challenge status
// sweep.
package job

import (
	"context"

	"github.com/shutterspot/api/internal/config"
	"github.com/shutterspot/api/internal/lib/email"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// ChallengeStatusSyncer updates stored challenge statuses from their
// start/end dates. Implemented by the challenge repository; declared here
// so the job package doesn't depend on the storage layer.
type ChallengeStatusSyncer interface {
	SyncStatuses(ctx context.Context) (int64, error)
}

// JobService holds the Asynq client (enqueue), server (workers) and
// scheduler (periodic tasks).
type JobService struct {
	Client *asynq.Client

	server    *asynq.Server
	scheduler *asynq.Scheduler
	logger    *zerolog.Logger

	emailClient *email.Client
	challenges  ChallengeStatusSyncer
}

// NewJobService creates a JobService backed by the Redis instance from
// config.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	client := asynq.NewClient(redisOpt)

	// Queue weights: out of 10 workers, ~6 serve critical, ~3 default,
	// ~1 low.
	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{})

	return &JobService{
		Client:    client,
		server:    server,
		scheduler: scheduler,
		logger:    logger,
	}
}

// InitHandlers wires the dependencies handlers need. Must be called
// before Start.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger, challenges ChallengeStatusSyncer) {
	j.emailClient = email.NewClient(cfg, logger)
	j.challenges = challenges
}

// Start registers task handlers, starts the worker server, and schedules
// the periodic challenge sweep. Both Start calls are non-blocking.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)
	mux.HandleFunc(TaskBookingConfirmation, j.handleBookingConfirmationTask)
	mux.HandleFunc(TaskChallengeStatusSweep, j.handleChallengeStatusSweepTask)

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	sweep := NewChallengeStatusSweepTask()
	if _, err := j.scheduler.Register("@every 10m", sweep); err != nil {
		return err
	}

	return j.scheduler.Start()
}

// Stop gracefully stops the scheduler and worker server and closes the
// enqueue client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.scheduler.Shutdown()
	j.server.Shutdown()
	j.Client.Close()
}
