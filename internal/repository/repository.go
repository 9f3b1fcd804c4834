// Package repository handles all interactions with the database.
//
// Repositories run gorm queries with the request context and report a
// missing record as ErrNotFound, never as a nil result.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/deppfellow/nutri-api/internal/metrics"
	"github.com/deppfellow/nutri-api/internal/sqlerr"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when no record matches the given id.
var ErrNotFound = errors.New("record not found")

// parseID converts a textual id. Anything that is not a UUID cannot match a
// row, so it is reported as not found without a round trip.
func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, ErrNotFound
	}
	return parsed, nil
}

// store holds what every gorm repository shares.
type store struct {
	db      *gorm.DB
	metrics *metrics.Manager
	entity  string
}

func (s store) observe(operation string, start time.Time, err error) {
	outcome := metrics.OutcomeSuccess
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		outcome = metrics.OutcomeNotFound
	case sqlerr.IsUniqueViolation(err):
		outcome = metrics.OutcomeConflict
	default:
		outcome = metrics.OutcomeError
	}
	s.metrics.RecordStoreOperation(s.entity, operation, outcome, time.Since(start))
}

func normalize(err error) error {
	if sqlerr.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}

func create[T any](ctx context.Context, s store, record *T) (err error) {
	defer func(start time.Time) { s.observe("create", start, err) }(time.Now())

	return s.db.WithContext(ctx).Create(record).Error
}

func list[T any](ctx context.Context, s store) (records []T, err error) {
	defer func(start time.Time) { s.observe("list", start, err) }(time.Now())

	records = []T{}
	if err = s.db.WithContext(ctx).Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// update loads the row under a row lock, applies mutate and saves it, all in
// one transaction.
func update[T any](ctx context.Context, s store, id string, mutate func(*T)) (_ *T, err error) {
	defer func(start time.Time) { s.observe("update", start, err) }(time.Now())

	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var record T
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&record, "id = ?", uid).Error; err != nil {
			return normalize(err)
		}

		mutate(&record)

		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// remove deletes the row and returns it as it was.
func remove[T any](ctx context.Context, s store, id string) (_ *T, err error) {
	defer func(start time.Time) { s.observe("delete", start, err) }(time.Now())

	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var record T
	result := s.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", uid).
		Delete(&record)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &record, nil
}
