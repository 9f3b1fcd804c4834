// Package server defines the core Server struct that composes the app's main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - database pool and gorm session
//   - redis client
//   - background job worker server (asynq), when enabled
//   - prometheus metrics
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/deppfellow/nutri-api/internal/config"
	"github.com/deppfellow/nutri-api/internal/database"
	"github.com/deppfellow/nutri-api/internal/lib/email"
	"github.com/deppfellow/nutri-api/internal/lib/job"
	"github.com/deppfellow/nutri-api/internal/metrics"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/nutri-api/internal/logger"
)

const redisPingTimeout = 5 * time.Second

// Server is the application container that holds shared resources.
// It is not the HTTP server itself.
type Server struct {
	Config *config.Config
	Logger *zerolog.Logger

	// LoggerService holds the New Relic application, nil inside when disabled.
	LoggerService *loggerPkg.LoggerService

	DB      *database.Database
	Redis   *redis.Client
	Metrics *metrics.Manager

	// Job is nil when integration.jobs_enabled is false.
	Job *job.JobService

	httpServer *http.Server
}

// New constructs a Server and initializes core dependencies.
//
// A database failure aborts startup. Redis is optional: a failed ping is
// logged and the service keeps running, with jobs still enqueued lazily.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("Failed to connect to Redis, continuing without Redis")
	}

	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Redis:         redisClient,
		Metrics: metrics.NewManager(
			metrics.WithConstLabels(map[string]string{"environment": cfg.Primary.Env}),
		),
	}

	if cfg.Integration.JobsEnabled {
		jobService := job.NewJobService(logger, cfg, email.NewClient(cfg, logger))
		if err := startOrRelease(jobService, redisClient, db); err != nil {
			return nil, err
		}
		server.Job = jobService
	}

	return server, nil
}

type starter interface {
	Start() error
}

// startOrRelease starts svc. When it fails, every resource opened before it
// is closed, so a failed startup leaks no connections.
func startOrRelease(svc starter, opened ...io.Closer) error {
	if err := svc.Start(); err != nil {
		for _, c := range opened {
			_ = c.Close()
		}
		return fmt.Errorf("failed to start job server: %w", err)
	}
	return nil
}

// SetupHTTPServer configures the internal net/http server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. It blocks until the server stops;
// http.ErrServerClosed is returned after Shutdown.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown stops the HTTP server, waiting for in-flight requests until ctx
// expires, then releases the jobs, redis and database.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			s.Logger.Warn().Err(err).Msg("failed to close redis client")
		}
	}

	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	return nil
}
