package handler

import (
	"net/http"

	"hbnb/internal/delivery/api/response"
	"hbnb/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// IndexHandlerParams holds dependencies for IndexHandler, injected by Fx.
type IndexHandlerParams struct {
	fx.In

	StatsUC usecase.StatsUsecase
}

// IndexHandler serves the status, stats and filters page
type IndexHandler struct {
	statsUC usecase.StatsUsecase
}

// NewIndexHandler is the constructor for IndexHandler
func NewIndexHandler(params IndexHandlerParams) *IndexHandler {
	return &IndexHandler{statsUC: params.StatsUC}
}

// HealthCheck handles GET /health
func HealthCheck(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// Status handles GET /status
func (h *IndexHandler) Status(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "OK"})
}

// Stats handles GET /stats
func (h *IndexHandler) Stats(c echo.Context) error {
	counts, err := h.statsUC.Counts(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, counts)
}

// FiltersPage handles GET /hbnb
func (h *IndexHandler) FiltersPage(c echo.Context) error {
	page, err := h.statsUC.FiltersPage(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Render(http.StatusOK, "filters.html", page)
}
