// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated payloads from the handler, performs
// business operations, and calls the stores to persist data.
// Every error it returns is an *errs.HTTPError with a localized message.
package service

import (
	"context"
	"errors"

	"github.com/deppfellow/nutri-api/internal/errs"
	"github.com/deppfellow/nutri-api/internal/i18n"
	"github.com/deppfellow/nutri-api/internal/repository"
	"github.com/deppfellow/nutri-api/internal/sqlerr"
	"github.com/rs/zerolog"
)

// storeErrorKeys names the messages used when a store call fails.
type storeErrorKeys struct {
	notFound     string
	notFoundCode string
	failed       string
}

// storeError converts a store failure into a localized HTTP error.
//
// Not found becomes 404. Constraint violations keep the status chosen by
// sqlerr. Anything else is a 500 with a generic message; the raw error is
// kept as the cause and logged, never sent.
func storeError(ctx context.Context, err error, keys storeErrorKeys) error {
	if errors.Is(err, repository.ErrNotFound) || sqlerr.IsNotFound(err) {
		return errs.NewNotFoundError(i18n.FromContext(ctx, keys.notFound), true, &keys.notFoundCode).WithCause(err)
	}

	var httpErr *errs.HTTPError
	if !errors.As(sqlerr.HandleError(err), &httpErr) {
		httpErr = errs.NewStoreError("", err)
	}

	switch httpErr.Kind {
	case errs.KindNotFound:
		return errs.NewNotFoundError(i18n.FromContext(ctx, keys.notFound), true, &keys.notFoundCode).WithCause(err)
	case errs.KindStore, errs.KindInternal:
		zerolog.Ctx(ctx).Error().Err(err).Msg("store operation failed")
		return errs.NewStoreError(i18n.FromContext(ctx, keys.failed), err)
	default:
		return httpErr
	}
}
