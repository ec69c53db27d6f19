package handler

import (
	"log/slog"
	"net/http"

	"hbnb/internal/delivery/api/response"
	"hbnb/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// LocationHandlerParams holds dependencies for LocationHandler, injected by Fx.
type LocationHandlerParams struct {
	fx.In

	LocationUC usecase.LocationUsecase
	Logger     *slog.Logger
}

// LocationHandler serves states and their cities
type LocationHandler struct {
	locationUC usecase.LocationUsecase
	logger     *slog.Logger
}

// NewLocationHandler is the constructor for LocationHandler
func NewLocationHandler(params LocationHandlerParams) *LocationHandler {
	return &LocationHandler{
		locationUC: params.LocationUC,
		logger:     params.Logger,
	}
}

// ListStates handles GET /states
func (h *LocationHandler) ListStates(c echo.Context) error {
	states, err := h.locationUC.ListStates(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, publicList(states))
}

// GetState handles GET /states/:state_id
func (h *LocationHandler) GetState(c echo.Context) error {
	state, err := h.locationUC.GetState(c.Request().Context(), c.Param("state_id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return ok(c, state)
}

// CreateState handles POST /states
func (h *LocationHandler) CreateState(c echo.Context) error {
	attrs, err := bindAttrs(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	state, err := h.locationUC.CreateState(c.Request().Context(), attrs)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return created(c, state)
}

// UpdateState handles PUT /states/:state_id
func (h *LocationHandler) UpdateState(c echo.Context) error {
	attrs, err := bindAttrs(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	state, err := h.locationUC.UpdateState(c.Request().Context(), c.Param("state_id"), attrs)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return ok(c, state)
}

// DeleteState handles DELETE /states/:state_id
func (h *LocationHandler) DeleteState(c echo.Context) error {
	if err := h.locationUC.DeleteState(c.Request().Context(), c.Param("state_id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return deleted(c)
}

// ListCities handles GET /states/:state_id/cities
func (h *LocationHandler) ListCities(c echo.Context) error {
	cities, err := h.locationUC.ListCities(c.Request().Context(), c.Param("state_id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, publicList(cities))
}

// GetCity handles GET /cities/:city_id
func (h *LocationHandler) GetCity(c echo.Context) error {
	city, err := h.locationUC.GetCity(c.Request().Context(), c.Param("city_id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return ok(c, city)
}

// CreateCity handles POST /states/:state_id/cities
func (h *LocationHandler) CreateCity(c echo.Context) error {
	ctx := c.Request().Context()
	stateID := c.Param("state_id")

	// An unknown state is reported before a malformed body.
	if _, err := h.locationUC.GetState(ctx, stateID); err != nil {
		return response.HandleAppError(c, err)
	}

	attrs, err := bindAttrs(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	city, err := h.locationUC.CreateCity(ctx, stateID, attrs)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return created(c, city)
}

// UpdateCity handles PUT /cities/:city_id
func (h *LocationHandler) UpdateCity(c echo.Context) error {
	attrs, err := bindAttrs(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	city, err := h.locationUC.UpdateCity(c.Request().Context(), c.Param("city_id"), attrs)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return ok(c, city)
}

// DeleteCity handles DELETE /cities/:city_id
func (h *LocationHandler) DeleteCity(c echo.Context) error {
	if err := h.locationUC.DeleteCity(c.Request().Context(), c.Param("city_id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return deleted(c)
}
