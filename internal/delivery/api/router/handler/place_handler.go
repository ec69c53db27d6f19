package handler

import (
	"net/http"

	"hbnb/internal/delivery/api/response"
	"hbnb/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PlaceHandlerParams holds dependencies for PlaceHandler, injected by Fx.
type PlaceHandlerParams struct {
	fx.In

	PlaceUC    usecase.PlaceUsecase
	LocationUC usecase.LocationUsecase
}

// PlaceHandler serves places, their amenity links and place search
type PlaceHandler struct {
	placeUC    usecase.PlaceUsecase
	locationUC usecase.LocationUsecase
}

// NewPlaceHandler is the constructor for PlaceHandler
func NewPlaceHandler(params PlaceHandlerParams) *PlaceHandler {
	return &PlaceHandler{
		placeUC:    params.PlaceUC,
		locationUC: params.LocationUC,
	}
}

// ListPlaces handles GET /cities/:city_id/places
func (h *PlaceHandler) ListPlaces(c echo.Context) error {
	places, err := h.placeUC.ListPlaces(c.Request().Context(), c.Param("city_id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, publicList(places))
}

// GetPlace handles GET /places/:place_id
func (h *PlaceHandler) GetPlace(c echo.Context) error {
	place, err := h.placeUC.GetPlace(c.Request().Context(), c.Param("place_id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return ok(c, place)
}

// CreatePlace handles POST /cities/:city_id/places
func (h *PlaceHandler) CreatePlace(c echo.Context) error {
	ctx := c.Request().Context()
	cityID := c.Param("city_id")

	if _, err := h.locationUC.GetCity(ctx, cityID); err != nil {
		return response.HandleAppError(c, err)
	}

	attrs, err := bindAttrs(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	place, err := h.placeUC.CreatePlace(ctx, cityID, attrs)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return created(c, place)
}

// UpdatePlace handles PUT /places/:place_id
func (h *PlaceHandler) UpdatePlace(c echo.Context) error {
	attrs, err := bindAttrs(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	place, err := h.placeUC.UpdatePlace(c.Request().Context(), c.Param("place_id"), attrs)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return ok(c, place)
}

// DeletePlace handles DELETE /places/:place_id
func (h *PlaceHandler) DeletePlace(c echo.Context) error {
	if err := h.placeUC.DeletePlace(c.Request().Context(), c.Param("place_id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return deleted(c)
}

// ListPlaceAmenities handles GET /places/:place_id/amenities
func (h *PlaceHandler) ListPlaceAmenities(c echo.Context) error {
	amenities, err := h.placeUC.ListPlaceAmenities(c.Request().Context(), c.Param("place_id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, publicList(amenities))
}

// LinkAmenity handles POST /places/:place_id/amenities/:amenity_id.
// An existing link answers 200, a new one 201.
func (h *PlaceHandler) LinkAmenity(c echo.Context) error {
	amenity, linked, err := h.placeUC.LinkAmenity(c.Request().Context(), c.Param("place_id"), c.Param("amenity_id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if linked {
		return created(c, amenity)
	}

	return ok(c, amenity)
}

// UnlinkAmenity handles DELETE /places/:place_id/amenities/:amenity_id
func (h *PlaceHandler) UnlinkAmenity(c echo.Context) error {
	if err := h.placeUC.UnlinkAmenity(c.Request().Context(), c.Param("place_id"), c.Param("amenity_id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return deleted(c)
}

// SearchPlaces handles POST /places_search
func (h *PlaceHandler) SearchPlaces(c echo.Context) error {
	var input usecase.PlaceSearchInput
	if err := bindJSON(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	if valid, err := validate(c, &input); !valid {
		return err
	}

	places, err := h.placeUC.SearchPlaces(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, publicList(places))
}
