package database

import (
	"context"
	"time"

	"github.com/deppfellow/nutri-api/internal/config"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type slowQueryKey struct{}

type queryStart struct {
	sql string
	at  time.Time
}

// slowQueryTracer logs a warning for queries running at least threshold.
type slowQueryTracer struct {
	threshold time.Duration
	logger    *zerolog.Logger
	now       func() time.Time
}

func slowQueryThreshold(cfg *config.Config) time.Duration {
	if cfg.Observability == nil {
		return 0
	}
	return cfg.Observability.Logging.SlowQueryThreshold
}

func (t *slowQueryTracer) clock() time.Time {
	if t.now != nil {
		return t.now()
	}
	return time.Now()
}

func (t *slowQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, slowQueryKey{}, queryStart{sql: data.SQL, at: t.clock()})
}

func (t *slowQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(slowQueryKey{}).(queryStart)
	if !ok {
		return
	}

	elapsed := t.clock().Sub(start.at)
	if elapsed < t.threshold {
		return
	}

	event := t.logger.Warn().
		Dur("duration", elapsed).
		Dur("threshold", t.threshold).
		Str("sql", start.sql)
	if data.Err != nil {
		event = event.Err(data.Err)
	}
	event.Msg("slow query")
}
