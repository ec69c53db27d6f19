package handler

import (
	"net/http"

	"hbnb/internal/delivery/api/response"
	"hbnb/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ReviewHandlerParams holds dependencies for ReviewHandler, injected by Fx.
type ReviewHandlerParams struct {
	fx.In

	ReviewUC usecase.ReviewUsecase
	PlaceUC  usecase.PlaceUsecase
}

// ReviewHandler serves reviews of places
type ReviewHandler struct {
	reviewUC usecase.ReviewUsecase
	placeUC  usecase.PlaceUsecase
}

// NewReviewHandler is the constructor for ReviewHandler
func NewReviewHandler(params ReviewHandlerParams) *ReviewHandler {
	return &ReviewHandler{
		reviewUC: params.ReviewUC,
		placeUC:  params.PlaceUC,
	}
}

// ListReviews handles GET /places/:place_id/reviews
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	reviews, err := h.reviewUC.ListReviews(c.Request().Context(), c.Param("place_id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, publicList(reviews))
}

// GetReview handles GET /reviews/:review_id
func (h *ReviewHandler) GetReview(c echo.Context) error {
	review, err := h.reviewUC.GetReview(c.Request().Context(), c.Param("review_id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return ok(c, review)
}

// CreateReview handles POST /places/:place_id/reviews
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	ctx := c.Request().Context()
	placeID := c.Param("place_id")

	if _, err := h.placeUC.GetPlace(ctx, placeID); err != nil {
		return response.HandleAppError(c, err)
	}

	attrs, err := bindAttrs(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	review, err := h.reviewUC.CreateReview(ctx, placeID, attrs)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return created(c, review)
}

// UpdateReview handles PUT /reviews/:review_id
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	attrs, err := bindAttrs(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	review, err := h.reviewUC.UpdateReview(c.Request().Context(), c.Param("review_id"), attrs)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return ok(c, review)
}

// DeleteReview handles DELETE /reviews/:review_id
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	if err := h.reviewUC.DeleteReview(c.Request().Context(), c.Param("review_id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return deleted(c)
}
