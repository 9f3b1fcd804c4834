// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - tasks are enqueued (producer) with asynq.Client.
//   - a server runs workers that process them (consumer) with asynq.Server.
package job

import (
	"context"
	"fmt"

	"github.com/deppfellow/nutri-api/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// WelcomeEmailSender delivers the welcome email.
type WelcomeEmailSender interface {
	SendWelcomeEmail(ctx context.Context, to, name, lang string) error
}

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	Client *asynq.Client

	server *asynq.Server
	emails WelcomeEmailSender
	logger *zerolog.Logger
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// Queue weights give "critical" tasks the larger share of the 10 workers.
func NewJobService(logger *zerolog.Logger, cfg *config.Config, emails WelcomeEmailSender) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client: client,
		server: server,
		emails: emails,
		logger: logger,
	}
}

// Start registers task handlers and starts the worker server in the background.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// EnqueueWelcomeEmail schedules the welcome email of a new user.
func (j *JobService) EnqueueWelcomeEmail(ctx context.Context, to, name, lang string) error {
	task, err := NewWelcomeEmailTask(to, name, lang)
	if err != nil {
		return fmt.Errorf("building welcome email task: %w", err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueueing welcome email task: %w", err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Msg("welcome email task enqueued")
	return nil
}

// Stop stops the workers, waiting for running tasks, and closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}
