package impl

import (
	"context"
	"log/slog"

	deliverycontext "hbnb/internal/delivery/context"
	"hbnb/internal/domain/entity"
	"hbnb/internal/domain/repository"
	"hbnb/internal/usecase"

	"go.uber.org/fx"
)

type reviewService struct {
	storage repository.Storage
	logger  *slog.Logger
}

// ReviewServiceParams holds dependencies for ReviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	Storage repository.Storage
	Logger  *slog.Logger
}

// NewReviewService creates a new review service instance
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		storage: params.Storage,
		logger:  params.Logger,
	}
}

func (s *reviewService) ListReviews(_ context.Context, placeID string) ([]*entity.Review, error) {
	if _, err := repository.GetAs[*entity.Place](s.storage, placeID); err != nil {
		return nil, err
	}

	reviews, err := repository.AllAs[*entity.Review](s.storage)
	if err != nil {
		return nil, err
	}

	return filter(reviews, func(r *entity.Review) bool { return r.PlaceID == placeID }), nil
}

func (s *reviewService) GetReview(_ context.Context, reviewID string) (*entity.Review, error) {
	return repository.GetAs[*entity.Review](s.storage, reviewID)
}

// CreateReview requires the place, an existing author and a text, checked in that order.
func (s *reviewService) CreateReview(ctx context.Context, placeID string, attrs usecase.Attrs) (*entity.Review, error) {
	if _, err := repository.GetAs[*entity.Place](s.storage, placeID); err != nil {
		return nil, err
	}

	attrs = sanitize(attrs, "place_id")
	userID, err := requireString(attrs, "user_id")
	if err != nil {
		return nil, err
	}
	if _, err := repository.GetAs[*entity.User](s.storage, userID); err != nil {
		return nil, err
	}
	if _, err := requireString(attrs, "text"); err != nil {
		return nil, err
	}
	attrs["place_id"] = placeID

	review, err := create[*entity.Review](ctx, s.storage, attrs)
	if err != nil {
		return nil, err
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("Review created",
		slog.String("review_id", review.ID),
		slog.String("place_id", placeID),
	)

	return review, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, reviewID string, attrs usecase.Attrs) (*entity.Review, error) {
	return update[*entity.Review](ctx, s.storage, reviewID, attrs, "user_id", "place_id")
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID string) error {
	return remove[*entity.Review](ctx, s.storage, reviewID)
}
