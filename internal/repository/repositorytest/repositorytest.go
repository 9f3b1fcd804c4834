// Package repositorytest provides in-memory stores with the same contract
// as the gorm repositories, for service and handler tests.
package repositorytest

import (
	"context"
	"sync"
	"time"

	"github.com/deppfellow/nutri-api/internal/model"
	"github.com/deppfellow/nutri-api/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Calls counts every store method invocation.
type Calls struct {
	Create, List, Update, Delete int
}

// Total is the number of calls of any kind.
func (c Calls) Total() int {
	return c.Create + c.List + c.Update + c.Delete
}

// table is a generic in-memory table keyed by id, keeping insertion order.
type table[T any] struct {
	mu    sync.Mutex
	order []uuid.UUID
	rows  map[uuid.UUID]T
	calls Calls

	// Err, when set, is returned by every method.
	Err error

	base func(*T) *model.Base
}

func newTable[T any](base func(*T) *model.Base) *table[T] {
	return &table[T]{rows: map[uuid.UUID]T{}, base: base}
}

func (t *table[T]) Calls() Calls {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}

func (t *table[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}

func (t *table[T]) insert(record *T) {
	now := time.Now().UTC()
	b := t.base(record)
	b.ID = uuid.New()
	b.CreatedAt = now
	b.UpdatedAt = now

	t.rows[b.ID] = *record
	t.order = append(t.order, b.ID)
}

func (t *table[T]) create(_ context.Context, record *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls.Create++
	if t.Err != nil {
		return t.Err
	}
	t.insert(record)
	return nil
}

func (t *table[T]) list(_ context.Context) ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls.List++
	if t.Err != nil {
		return nil, t.Err
	}

	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out, nil
}

func (t *table[T]) lookup(id string) (uuid.UUID, T, error) {
	var zero T
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, zero, repository.ErrNotFound
	}
	record, ok := t.rows[uid]
	if !ok {
		return uuid.Nil, zero, repository.ErrNotFound
	}
	return uid, record, nil
}

func (t *table[T]) update(_ context.Context, id string, mutate func(*T)) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls.Update++
	if t.Err != nil {
		return nil, t.Err
	}

	uid, record, err := t.lookup(id)
	if err != nil {
		return nil, err
	}
	mutate(&record)
	t.base(&record).UpdatedAt = time.Now().UTC()
	t.rows[uid] = record
	return &record, nil
}

func (t *table[T]) remove(_ context.Context, id string) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls.Delete++
	if t.Err != nil {
		return nil, t.Err
	}

	uid, record, err := t.lookup(id)
	if err != nil {
		return nil, err
	}
	delete(t.rows, uid)
	for i, candidate := range t.order {
		if candidate == uid {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return &record, nil
}

// FoodStore is an in-memory food store.
type FoodStore struct {
	*table[model.Food]
}

func NewFoodStore() *FoodStore {
	return &FoodStore{newTable(func(f *model.Food) *model.Base { return &f.Base })}
}

func (s *FoodStore) Create(ctx context.Context, food *model.Food) error {
	return s.create(ctx, food)
}

func (s *FoodStore) List(ctx context.Context) ([]model.Food, error) {
	return s.list(ctx)
}

func (s *FoodStore) Update(ctx context.Context, id string, mutate func(*model.Food)) (*model.Food, error) {
	return s.update(ctx, id, mutate)
}

func (s *FoodStore) Delete(ctx context.Context, id string) (*model.Food, error) {
	return s.remove(ctx, id)
}

// UserStore is an in-memory user store enforcing a unique email the way
// the users_email index does.
type UserStore struct {
	*table[model.User]
}

func NewUserStore() *UserStore {
	return &UserStore{newTable(func(u *model.User) *model.Base { return &u.Base })}
}

// UniqueViolation is the error the fake returns for a taken email.
func UniqueViolation() error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "idx_users_email"`,
		TableName:      "users",
		ConstraintName: "idx_users_email",
	}
}

func (s *UserStore) Create(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.Create++
	if s.Err != nil {
		return s.Err
	}
	for _, existing := range s.rows {
		if existing.Email == user.Email {
			return UniqueViolation()
		}
	}
	s.insert(user)
	return nil
}

func (s *UserStore) List(ctx context.Context) ([]model.User, error) {
	return s.list(ctx)
}

func (s *UserStore) Update(ctx context.Context, id string, mutate func(*model.User)) (*model.User, error) {
	return s.update(ctx, id, mutate)
}

func (s *UserStore) Delete(ctx context.Context, id string) (*model.User, error) {
	return s.remove(ctx, id)
}
