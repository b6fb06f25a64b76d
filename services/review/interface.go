package review

import (
	"context"

	bookingRepo "panditseva/database/repository/booking"
	reviewRepo "panditseva/database/repository/review"
	userRepo "panditseva/database/repository/user"
	"panditseva/models"
	"panditseva/services/notification"

	"go.uber.org/zap"
)

// ReviewService manages post-completion ratings of pandits.
type ReviewService interface {
	// AddReview records the requester's rating of a pandit for a completed
	// booking. One review per requester per booking.
	AddReview(ctx context.Context, userID string, input models.ReviewInput) (*models.Review, error)
	// PanditReviews returns a pandit's reviews, newest first, with the total count.
	PanditReviews(ctx context.Context, panditID string, page, limit int) ([]models.Review, int64, error)
	// AverageRating aggregates the pandit's reviews. Zero reviews yields {0, 0}.
	AverageRating(ctx context.Context, panditID string) (models.RatingSummary, error)
	// TopPandits ranks pandits by average rating, then review count.
	TopPandits(ctx context.Context, n int) ([]models.PanditRating, error)
}

// DefaultReviewService is the production implementation.
type DefaultReviewService struct {
	Repo         reviewRepo.ReviewRepository
	BookingRepo  bookingRepo.BookingRepository
	UserRepo     userRepo.UserRepository
	Notification notification.NotificationService
	Logger       *zap.Logger
}
