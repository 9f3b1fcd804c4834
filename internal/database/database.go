// Package database contains the logic for establishing
// connections to the PostgreSQL database.
//
// It handles:
//   - creating a pgx connection pool (pgxpool)
//   - wiring query tracing/logging (pgx tracelog)
//   - optional New Relic instrumentation (nrpgx5)
//   - opening the gorm session used by repositories on top of that same pool
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/nutri-api/internal/config"
	loggerConfig "github.com/deppfellow/nutri-api/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database wraps the pgx connection pool and the gorm session built on it.
//
// Pool serves health checks and migrations-adjacent work; Gorm serves the
// repositories. Both share the same connections and tracers.
type Database struct {
	Pool *pgxpool.Pool
	Gorm *gorm.DB
	log  *zerolog.Logger
}

// multiTracer allows chaining multiple tracers.
//
// pgx supports a single Tracer in ConnConfig, this adapter runs the New
// Relic tracer, the local tracelog and the slow query log side by side.
type multiTracer struct {
	tracers []pgx.QueryTracer
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, t := range mt.tracers {
		ctx = t.TraceQueryStart(ctx, conn, data)
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, t := range mt.tracers {
		t.TraceQueryEnd(ctx, conn, data)
	}
}

// DatabasePingTimeout is how long startup waits for the first ping.
const DatabasePingTimeout = 10 * time.Second

// New creates a PostgreSQL connection pool with instrumentation and opens
// gorm on top of it.
//
//   - New Relic tracer when the agent runs
//   - SQL tracelog in the local environment
//   - a warning for every query slower than logging.slow_query_threshold
//   - pool tuning from config
//   - ping with a timeout so startup fails fast when the database is down
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	pgxPoolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	pgxPoolConfig.MinConns = int32(min(cfg.Database.MaxIdleConns, cfg.Database.MaxOpenConns))
	pgxPoolConfig.MaxConnLifetime = time.Duration(cfg.Database.ConnMaxLifetime) * time.Second
	pgxPoolConfig.MaxConnIdleTime = time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second

	var tracers []pgx.QueryTracer
	if loggerService.GetApplication() != nil {
		tracers = append(tracers, nrpgx5.NewTracer())
	}

	// SQL logging is noisy, so only in local.
	if cfg.Primary.Env == "local" {
		globalLevel := logger.GetLevel()
		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(loggerConfig.NewPgxLogger(globalLevel)),
			LogLevel: loggerConfig.GetPgxTraceLogLevel(globalLevel),
		})
	}

	if threshold := slowQueryThreshold(cfg); threshold > 0 {
		tracers = append(tracers, &slowQueryTracer{threshold: threshold, logger: logger})
	}

	switch len(tracers) {
	case 0:
	case 1:
		pgxPoolConfig.ConnConfig.Tracer = tracers[0]
	default:
		pgxPoolConfig.ConnConfig.Tracer = &multiTracer{tracers: tracers}
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout)
	defer cancel()
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	gormDB, err := OpenGorm(pool)
	if err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info().Msg("connected to the database")

	return &Database{
		Pool: pool,
		Gorm: gormDB,
		log:  logger,
	}, nil
}

// OpenGorm opens a gorm session backed by pool.
//
// Query logging stays with the pgx tracers, so gorm's own logger is silenced.
// Errors are not translated: repositories and sqlerr inspect the raw
// *pgconn.PgError.
func OpenGorm(pool *pgxpool.Pool) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn: stdlib.OpenDBFromPool(pool),
	}), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}
	return db, nil
}

// Close closes the gorm handle and the pool.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")

	if db.Gorm != nil {
		if sqlDB, err := db.Gorm.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	db.Pool.Close()
	return nil
}
