package review

import (
	"context"
	"fmt"
	"time"

	"panditseva/models"
	"panditseva/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddReview validates the requester's claim on the booking before recording
// the rating. The booking must be completed and the reviewed pandit must be
// one of its selected pandits.
func (s *DefaultReviewService) AddReview(ctx context.Context, userID string, input models.ReviewInput) (*models.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, utils.ValidationError("rating must be between 1 and 5")
	}

	booking, err := s.BookingRepo.GetByID(ctx, input.BookingID)
	if err != nil {
		return nil, utils.UnavailableError("failed to fetch booking", err)
	}
	if booking == nil {
		return nil, utils.NotFoundError("booking not found")
	}
	if booking.UserID != userID {
		return nil, utils.ForbiddenError("you did not create this booking")
	}
	if booking.Status != models.BookingStatusCompleted {
		return nil, utils.InvalidStateError("booking is not completed yet")
	}
	if !selectedFor(booking, input.PanditID) {
		return nil, utils.InvalidStateError("pandit was not selected for this booking")
	}

	pandit, err := s.UserRepo.GetByID(ctx, input.PanditID)
	if err != nil {
		return nil, utils.UnavailableError("failed to fetch pandit", err)
	}
	if pandit == nil || !pandit.IsPandit {
		return nil, utils.NotFoundError("pandit not found")
	}

	existing, err := s.Repo.GetByBookingAndUser(ctx, input.BookingID, userID)
	if err != nil {
		return nil, utils.UnavailableError("failed to check existing review", err)
	}
	if existing != nil {
		return nil, utils.ConflictError("you have already reviewed this booking")
	}

	rec := &models.Review{
		ID:         uuid.New().String(),
		UserID:     userID,
		PanditID:   input.PanditID,
		PujaID:     booking.PujaID,
		BookingID:  booking.ID,
		Rating:     input.Rating,
		ReviewText: input.ReviewText,
		CreatedAt:  time.Now(),
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		return nil, utils.UnavailableError("failed to save review", err)
	}

	if _, err := s.Notification.Send(ctx, &models.Notification{
		SenderID:   userID,
		ReceiverID: input.PanditID,
		Message:    fmt.Sprintf("You received a %d-star review", input.Rating),
		Type:       models.NotificationTypeReview,
		Related:    models.RelatedRef{Kind: models.RelatedReview, ID: rec.ID},
	}); err != nil {
		s.Logger.Warn("review notification failed",
			zap.String("reviewID", rec.ID),
			zap.String("panditID", input.PanditID),
			zap.Error(err))
	}

	return rec, nil
}

func (s *DefaultReviewService) PanditReviews(ctx context.Context, panditID string, page, limit int) ([]models.Review, int64, error) {
	reviews, total, err := s.Repo.ListByPandit(ctx, panditID, page, limit)
	if err != nil {
		return nil, 0, utils.UnavailableError("failed to list reviews", err)
	}
	return reviews, total, nil
}

func (s *DefaultReviewService) AverageRating(ctx context.Context, panditID string) (models.RatingSummary, error) {
	summary, err := s.Repo.AverageForPandit(ctx, panditID)
	if err != nil {
		return models.RatingSummary{}, utils.UnavailableError("failed to aggregate reviews", err)
	}
	return summary, nil
}

func (s *DefaultReviewService) TopPandits(ctx context.Context, n int) ([]models.PanditRating, error) {
	if n <= 0 {
		n = 10
	}
	ranked, err := s.Repo.TopPandits(ctx, n)
	if err != nil {
		return nil, utils.UnavailableError("failed to rank pandits", err)
	}
	return ranked, nil
}

func selectedFor(booking *models.Booking, panditID string) bool {
	for _, id := range booking.SelectedPandits {
		if id == panditID {
			return true
		}
	}
	return false
}
