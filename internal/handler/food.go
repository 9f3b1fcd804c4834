package handler

import (
	"github.com/deppfellow/nutri-api/internal/i18n"
	"github.com/deppfellow/nutri-api/internal/model"
	"github.com/deppfellow/nutri-api/internal/server"
	"github.com/deppfellow/nutri-api/internal/service"
	"github.com/labstack/echo/v4"
)

// FoodResponse carries a single food.
type FoodResponse struct {
	Message string      `json:"message"`
	Food    *model.Food `json:"food"`
}

// FoodsResponse carries every food; Foods is [] when there are none.
type FoodsResponse struct {
	Message string       `json:"message"`
	Foods   []model.Food `json:"foods"`
}

// MessageResponse is a confirmation without payload.
type MessageResponse struct {
	Message string `json:"message"`
}

type FoodHandler struct {
	Handler
	foods *service.FoodService
}

func NewFoodHandler(s *server.Server, foods *service.FoodService) *FoodHandler {
	return &FoodHandler{
		Handler: NewHandler(s),
		foods:   foods,
	}
}

func (h *FoodHandler) CreateFood(c echo.Context, payload *model.CreateFoodPayload) (*FoodResponse, error) {
	ctx := c.Request().Context()

	food, err := h.foods.Create(ctx, payload)
	if err != nil {
		return nil, err
	}

	return &FoodResponse{
		Message: i18n.FromContext(ctx, i18n.MsgFoodCreated),
		Food:    food,
	}, nil
}

func (h *FoodHandler) ListFoods(c echo.Context, _ *model.ListFoodsPayload) (*FoodsResponse, error) {
	ctx := c.Request().Context()

	foods, err := h.foods.List(ctx)
	if err != nil {
		return nil, err
	}

	key := i18n.MsgFoodListed
	if len(foods) == 0 {
		key = i18n.MsgFoodEmpty
	}

	return &FoodsResponse{
		Message: i18n.FromContext(ctx, key),
		Foods:   foods,
	}, nil
}

func (h *FoodHandler) UpdateFood(c echo.Context, payload *model.UpdateFoodPayload) (*FoodResponse, error) {
	ctx := c.Request().Context()

	food, err := h.foods.Update(ctx, payload)
	if err != nil {
		return nil, err
	}

	return &FoodResponse{
		Message: i18n.FromContext(ctx, i18n.MsgFoodUpdated),
		Food:    food,
	}, nil
}

func (h *FoodHandler) DeleteFood(c echo.Context, payload *model.DeleteFoodPayload) (*MessageResponse, error) {
	ctx := c.Request().Context()

	food, err := h.foods.Delete(ctx, payload)
	if err != nil {
		return nil, err
	}

	return &MessageResponse{
		Message: i18n.FromContext(ctx, i18n.MsgFoodDeleted, food.NameFood),
	}, nil
}
