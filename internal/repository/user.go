package repository

import (
	"context"

	"github.com/deppfellow/nutri-api/internal/metrics"
	"github.com/deppfellow/nutri-api/internal/model"
	"gorm.io/gorm"
)

type UserRepository struct {
	store
}

func NewUserRepository(db *gorm.DB, m *metrics.Manager) *UserRepository {
	return &UserRepository{store{db: db, metrics: m, entity: "user"}}
}

// Create inserts user. A taken email surfaces as a unique violation.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return create(ctx, r.store, user)
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	return list[model.User](ctx, r.store)
}

func (r *UserRepository) Update(ctx context.Context, id string, mutate func(*model.User)) (*model.User, error) {
	return update(ctx, r.store, id, mutate)
}

func (r *UserRepository) Delete(ctx context.Context, id string) (*model.User, error) {
	return remove[model.User](ctx, r.store, id)
}
