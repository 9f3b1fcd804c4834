package handler

import (
	"github.com/deppfellow/nutri-api/internal/i18n"
	"github.com/deppfellow/nutri-api/internal/model"
	"github.com/deppfellow/nutri-api/internal/server"
	"github.com/deppfellow/nutri-api/internal/service"
	"github.com/labstack/echo/v4"
)

// UserResponse carries a single user. Users never expose a password.
type UserResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

type UsersResponse struct {
	Message string       `json:"message"`
	Users   []model.User `json:"users"`
}

type UserHandler struct {
	Handler
	users *service.UserService
}

func NewUserHandler(s *server.Server, users *service.UserService) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
	}
}

func (h *UserHandler) CreateUser(c echo.Context, payload *model.CreateUserPayload) (*UserResponse, error) {
	ctx := c.Request().Context()

	user, err := h.users.Create(ctx, payload)
	if err != nil {
		return nil, err
	}

	return &UserResponse{
		Message: i18n.FromContext(ctx, i18n.MsgUserCreated),
		User:    user,
	}, nil
}

func (h *UserHandler) ListUsers(c echo.Context, _ *model.ListUsersPayload) (*UsersResponse, error) {
	ctx := c.Request().Context()

	users, err := h.users.List(ctx)
	if err != nil {
		return nil, err
	}

	key := i18n.MsgUserListed
	if len(users) == 0 {
		key = i18n.MsgUserEmpty
	}

	return &UsersResponse{
		Message: i18n.FromContext(ctx, key),
		Users:   users,
	}, nil
}

func (h *UserHandler) UpdateUser(c echo.Context, payload *model.UpdateUserPayload) (*UserResponse, error) {
	ctx := c.Request().Context()

	user, err := h.users.Update(ctx, payload)
	if err != nil {
		return nil, err
	}

	return &UserResponse{
		Message: i18n.FromContext(ctx, i18n.MsgUserUpdated),
		User:    user,
	}, nil
}

func (h *UserHandler) DeleteUser(c echo.Context, payload *model.DeleteUserPayload) (*MessageResponse, error) {
	ctx := c.Request().Context()

	user, err := h.users.Delete(ctx, payload)
	if err != nil {
		return nil, err
	}

	return &MessageResponse{
		Message: i18n.FromContext(ctx, i18n.MsgUserDeleted, user.Name),
	}, nil
}
