package handler

import (
	"github.com/deppfellow/nutri-api/internal/server"
	"github.com/deppfellow/nutri-api/internal/service"
)

// Handlers groups all HTTP handlers so routing receives a single value.
type Handlers struct {
	Food    *FoodHandler
	User    *UserHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Food:    NewFoodHandler(s, services.Food),
		User:    NewUserHandler(s, services.User),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
