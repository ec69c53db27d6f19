package usecase

import (
	"context"

	"hbnb/internal/domain/entity"
)

// ReviewUsecase defines the interface for review management use cases
type ReviewUsecase interface {
	ListReviews(ctx context.Context, placeID string) ([]*entity.Review, error)
	GetReview(ctx context.Context, reviewID string) (*entity.Review, error)
	CreateReview(ctx context.Context, placeID string, attrs Attrs) (*entity.Review, error)
	UpdateReview(ctx context.Context, reviewID string, attrs Attrs) (*entity.Review, error)
	DeleteReview(ctx context.Context, reviewID string) error
}
