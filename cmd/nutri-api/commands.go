package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/nutri-api/internal/config"
	"github.com/deppfellow/nutri-api/internal/database"
	"github.com/deppfellow/nutri-api/internal/handler"
	"github.com/deppfellow/nutri-api/internal/logger"
	"github.com/deppfellow/nutri-api/internal/repository"
	"github.com/deppfellow/nutri-api/internal/router"
	"github.com/deppfellow/nutri-api/internal/server"
	"github.com/deppfellow/nutri-api/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "nutri-api",
		Short:         "Food catalog and user registry HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCommand(), newMigrateCommand())
	return root
}

func newServeCommand() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return bootstrap(func(cfg *config.Config, log *zerolog.Logger, ls *logger.LoggerService) error {
				if migrate {
					cfg.Server.MigrateOnStart = true
				}
				return serve(cmd.Context(), cfg, log, ls)
			})
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return bootstrap(func(cfg *config.Config, log *zerolog.Logger, _ *logger.LoggerService) error {
				return database.Migrate(cmd.Context(), log, cfg)
			})
		},
	}
}

// bootstrap loads the configuration and the logger, runs fn and logs its error.
func bootstrap(fn func(*config.Config, *zerolog.Logger, *logger.LoggerService) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	if err := fn(cfg, &log, loggerService); err != nil {
		log.Error().Err(err).Msg("command failed")
		return err
	}
	return nil
}

func serve(parent context.Context, cfg *config.Config, log *zerolog.Logger, loggerService *logger.LoggerService) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Server.MigrateOnStart {
		if err := database.Migrate(ctx, log, cfg); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		return err
	}

	repos := repository.NewRepositories(srv)
	services, err := service.NewService(srv, repos)
	if err != nil {
		return fmt.Errorf("failed to create services: %w", err)
	}

	srv.SetupHTTPServer(router.NewRouter(srv, handler.NewHandlers(srv, services)))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("server stopped")
	return nil
}
