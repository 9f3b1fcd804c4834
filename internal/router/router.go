// Package router builds the Echo instance: the middleware chain, the error
// handler and every route.
package router

import (
	"net/http"

	"github.com/deppfellow/nutri-api/internal/handler"
	"github.com/deppfellow/nutri-api/internal/i18n"
	"github.com/deppfellow/nutri-api/internal/middleware"
	"github.com/deppfellow/nutri-api/internal/model"
	"github.com/deppfellow/nutri-api/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter wires middlewares and routes.
//
// Locale runs before the limiter and the error handler so that rejected
// requests are answered in the caller's language too.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	fallback, ok := i18n.ParseTag(s.Config.Primary.DefaultLocale)
	if !ok {
		fallback = i18n.Portuguese
	}

	router.Use(
		middleware.RequestID(),
		middleware.Locale(fallback),
		middlewares.RateLimit.Limit(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Metrics.Record(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, s, h)
	registerFoodRoutes(router, h.Food)
	registerUserRoutes(router, h.User)

	return router
}

func registerFoodRoutes(r *echo.Echo, h *handler.FoodHandler) {
	food := r.Group("/food")

	food.POST("", handler.Handle(h.Handler, h.CreateFood, http.StatusCreated, &model.CreateFoodPayload{}))
	food.GET("", handler.Handle(h.Handler, h.ListFoods, http.StatusOK, &model.ListFoodsPayload{}))

	update := handler.Handle(h.Handler, h.UpdateFood, http.StatusOK, &model.UpdateFoodPayload{})
	food.PUT("", update)
	food.PUT("/:id", update)

	remove := handler.Handle(h.Handler, h.DeleteFood, http.StatusOK, &model.DeleteFoodPayload{})
	food.DELETE("", remove)
	food.DELETE("/:id", remove)
}

func registerUserRoutes(r *echo.Echo, h *handler.UserHandler) {
	user := r.Group("/user")

	user.POST("", handler.Handle(h.Handler, h.CreateUser, http.StatusCreated, &model.CreateUserPayload{}))
	user.GET("", handler.Handle(h.Handler, h.ListUsers, http.StatusOK, &model.ListUsersPayload{}))

	update := handler.Handle(h.Handler, h.UpdateUser, http.StatusOK, &model.UpdateUserPayload{})
	user.PUT("", update)
	user.PUT("/:id", update)

	remove := handler.Handle(h.Handler, h.DeleteUser, http.StatusOK, &model.DeleteUserPayload{})
	user.DELETE("", remove)
	user.DELETE("/:id", remove)
}
