package reviewRepo

import (
	"context"

	"panditseva/models"
)

// ReviewRepository defines data access for reviews and their aggregates.
type ReviewRepository interface {
	// Create inserts a new review.
	Create(ctx context.Context, review *models.Review) error
	// GetByID retrieves a review by its unique ID. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*models.Review, error)
	// GetByBookingAndUser retrieves the review a user left for a booking.
	// Returns (nil, nil) when absent.
	GetByBookingAndUser(ctx context.Context, bookingID, userID string) (*models.Review, error)
	// ListByPandit returns a pandit's reviews, newest first, with the total count.
	ListByPandit(ctx context.Context, panditID string, page, limit int) ([]models.Review, int64, error)
	// AverageForPandit aggregates the pandit's reviews. Zero reviews yields {0, 0}.
	AverageForPandit(ctx context.Context, panditID string) (models.RatingSummary, error)
	// TopPandits ranks pandits by average rating, then review count.
	TopPandits(ctx context.Context, n int) ([]models.PanditRating, error)
}
