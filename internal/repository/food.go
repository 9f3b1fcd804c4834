package repository

import (
	"context"

	"github.com/deppfellow/nutri-api/internal/metrics"
	"github.com/deppfellow/nutri-api/internal/model"
	"gorm.io/gorm"
)

type FoodRepository struct {
	store
}

func NewFoodRepository(db *gorm.DB, m *metrics.Manager) *FoodRepository {
	return &FoodRepository{store{db: db, metrics: m, entity: "food"}}
}

// Create inserts food; the database fills ID and timestamps.
func (r *FoodRepository) Create(ctx context.Context, food *model.Food) error {
	return create(ctx, r.store, food)
}

// List returns every food, oldest first. The slice is empty, never nil.
func (r *FoodRepository) List(ctx context.Context) ([]model.Food, error) {
	return list[model.Food](ctx, r.store)
}

func (r *FoodRepository) Update(ctx context.Context, id string, mutate func(*model.Food)) (*model.Food, error) {
	return update(ctx, r.store, id, mutate)
}

func (r *FoodRepository) Delete(ctx context.Context, id string) (*model.Food, error) {
	return remove[model.Food](ctx, r.store, id)
}
