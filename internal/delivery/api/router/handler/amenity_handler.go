package handler

import (
	"net/http"

	"hbnb/internal/delivery/api/response"
	"hbnb/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AmenityHandlerParams holds dependencies for AmenityHandler, injected by Fx.
type AmenityHandlerParams struct {
	fx.In

	AmenityUC usecase.AmenityUsecase
}

// AmenityHandler serves amenities
type AmenityHandler struct {
	amenityUC usecase.AmenityUsecase
}

// NewAmenityHandler is the constructor for AmenityHandler
func NewAmenityHandler(params AmenityHandlerParams) *AmenityHandler {
	return &AmenityHandler{amenityUC: params.AmenityUC}
}

// ListAmenities handles GET /amenities
func (h *AmenityHandler) ListAmenities(c echo.Context) error {
	amenities, err := h.amenityUC.ListAmenities(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, publicList(amenities))
}

// GetAmenity handles GET /amenities/:amenity_id
func (h *AmenityHandler) GetAmenity(c echo.Context) error {
	amenity, err := h.amenityUC.GetAmenity(c.Request().Context(), c.Param("amenity_id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return ok(c, amenity)
}

// CreateAmenity handles POST /amenities
func (h *AmenityHandler) CreateAmenity(c echo.Context) error {
	attrs, err := bindAttrs(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	amenity, err := h.amenityUC.CreateAmenity(c.Request().Context(), attrs)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return created(c, amenity)
}

// UpdateAmenity handles PUT /amenities/:amenity_id
func (h *AmenityHandler) UpdateAmenity(c echo.Context) error {
	attrs, err := bindAttrs(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	amenity, err := h.amenityUC.UpdateAmenity(c.Request().Context(), c.Param("amenity_id"), attrs)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return ok(c, amenity)
}

// DeleteAmenity handles DELETE /amenities/:amenity_id
func (h *AmenityHandler) DeleteAmenity(c echo.Context) error {
	if err := h.amenityUC.DeleteAmenity(c.Request().Context(), c.Param("amenity_id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return deleted(c)
}
