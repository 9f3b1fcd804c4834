package service

import (
	"context"

	"github.com/deppfellow/nutri-api/internal/i18n"
	"github.com/deppfellow/nutri-api/internal/model"
)

// FoodStore persists foods. Missing records are reported as repository.ErrNotFound.
type FoodStore interface {
	Create(ctx context.Context, food *model.Food) error
	List(ctx context.Context) ([]model.Food, error)
	Update(ctx context.Context, id string, mutate func(*model.Food)) (*model.Food, error)
	Delete(ctx context.Context, id string) (*model.Food, error)
}

type FoodService struct {
	store FoodStore
}

func NewFoodService(store FoodStore) *FoodService {
	return &FoodService{store: store}
}

func foodKeys(failed string) storeErrorKeys {
	return storeErrorKeys{
		notFound:     i18n.MsgFoodNotFound,
		notFoundCode: "FOOD_NOT_FOUND",
		failed:       failed,
	}
}

// Create stores a new food. The id is generated by the store.
func (s *FoodService) Create(ctx context.Context, payload *model.CreateFoodPayload) (*model.Food, error) {
	food := &model.Food{}
	payload.Apply(food)

	if err := s.store.Create(ctx, food); err != nil {
		return nil, storeError(ctx, err, foodKeys(i18n.MsgFoodCreateFailed))
	}
	return food, nil
}

// List returns every food. An empty store yields an empty slice, not an error.
func (s *FoodService) List(ctx context.Context) ([]model.Food, error) {
	foods, err := s.store.List(ctx)
	if err != nil {
		return nil, storeError(ctx, err, foodKeys(i18n.MsgFoodListFailed))
	}
	if foods == nil {
		foods = []model.Food{}
	}
	return foods, nil
}

// Update replaces every field of an existing food. Applying the same payload
// twice leaves the same state.
func (s *FoodService) Update(ctx context.Context, payload *model.UpdateFoodPayload) (*model.Food, error) {
	food, err := s.store.Update(ctx, payload.ID, payload.Apply)
	if err != nil {
		return nil, storeError(ctx, err, foodKeys(i18n.MsgFoodUpdateFailed))
	}
	return food, nil
}

// Delete removes a food and returns it as it was.
func (s *FoodService) Delete(ctx context.Context, payload *model.DeleteFoodPayload) (*model.Food, error) {
	food, err := s.store.Delete(ctx, payload.ID)
	if err != nil {
		return nil, storeError(ctx, err, foodKeys(i18n.MsgFoodDeleteFailed))
	}
	return food, nil
}
