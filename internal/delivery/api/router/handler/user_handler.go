package handler

import (
	"net/http"

	"hbnb/internal/delivery/api/response"
	"hbnb/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
}

// UserHandler serves user accounts. Password hashes are never rendered.
type UserHandler struct {
	userUC usecase.UserUsecase
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{userUC: params.UserUC}
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userUC.ListUsers(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, publicList(users))
}

// GetUser handles GET /users/:user_id
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userUC.GetUser(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return ok(c, user)
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c echo.Context) error {
	attrs, err := bindAttrs(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.userUC.CreateUser(c.Request().Context(), attrs)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return created(c, user)
}

// UpdateUser handles PUT /users/:user_id
func (h *UserHandler) UpdateUser(c echo.Context) error {
	attrs, err := bindAttrs(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.userUC.UpdateUser(c.Request().Context(), c.Param("user_id"), attrs)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return ok(c, user)
}

// DeleteUser handles DELETE /users/:user_id
func (h *UserHandler) DeleteUser(c echo.Context) error {
	if err := h.userUC.DeleteUser(c.Request().Context(), c.Param("user_id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return deleted(c)
}
