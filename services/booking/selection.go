package booking

import (
	"context"

	"panditseva/models"
	"panditseva/utils"

	"go.uber.org/zap"
)

// AcceptedPandits returns the pandits currently in the booking's accepted
// set, each with their public profile and KYP documents.
func (s *DefaultWorkflowService) AcceptedPandits(ctx context.Context, userID, bookingID string) ([]models.AcceptedPandit, error) {
	booking, err := s.ownedBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	result := make([]models.AcceptedPandit, 0, len(booking.AcceptedPandits))
	for _, panditID := range booking.AcceptedPandits {
		pandit, err := s.UserRepo.GetByID(ctx, panditID)
		if err != nil || pandit == nil {
			s.Logger.Warn("failed to resolve accepted pandit",
				zap.String("panditId", panditID), zap.Error(err))
			continue
		}
		docs, err := s.KYPRepo.ListByPandit(ctx, panditID)
		if err != nil {
			s.Logger.Warn("failed to load KYP documents",
				zap.String("panditId", panditID), zap.Error(err))
		}
		result = append(result, models.AcceptedPandit{
			Pandit:    pandit.PublicProfile(),
			Documents: docs,
		})
	}
	return result, nil
}

// SelectPandit moves the pandit from the accepted set to the selected set.
// Both membership changes happen in one conditional update; a miss is
// disambiguated with a follow-up read so the caller gets the precise failure.
func (s *DefaultWorkflowService) SelectPandit(ctx context.Context, userID, bookingID, panditID string) error {
	booking, err := s.ownedBooking(ctx, userID, bookingID)
	if err != nil {
		return err
	}
	if booking.Status == models.BookingStatusCancelled || booking.Status == models.BookingStatusCompleted {
		return utils.InvalidStateError("booking is closed")
	}

	moved, err := s.BookingRepo.SelectPandit(ctx, bookingID, userID, panditID)
	if err != nil {
		return utils.UnavailableError("failed to select pandit", err)
	}
	if !moved {
		current, err := s.BookingRepo.GetByID(ctx, bookingID)
		if err != nil || current == nil {
			return utils.UnavailableError("failed to re-read booking after selection miss", err)
		}
		if contains(current.SelectedPandits, panditID) {
			return utils.ConflictError("pandit has already been selected for this booking")
		}
		if !contains(current.AcceptedPandits, panditID) {
			return utils.InvalidStateError("pandit has not accepted this booking")
		}
		return utils.ConflictError("booking changed concurrently, please retry")
	}

	selection := &models.Notification{
		SenderID:   userID,
		ReceiverID: panditID,
		Message:    "You have been selected for a booking.",
		Type:       models.NotificationTypeBookingSelection,
		Related:    models.RelatedRef{Kind: models.RelatedBooking, ID: bookingID},
	}
	if _, err := s.Notification.Send(ctx, selection); err != nil {
		s.Logger.Warn("failed to notify selected pandit",
			zap.String("bookingId", bookingID),
			zap.String("panditId", panditID),
			zap.Error(err))
	}
	return nil
}

// RejectAcceptedPandit removes the pandit from the accepted set, provided
// they have not been selected.
func (s *DefaultWorkflowService) RejectAcceptedPandit(ctx context.Context, userID, bookingID, panditID string) error {
	if _, err := s.ownedBooking(ctx, userID, bookingID); err != nil {
		return err
	}

	removed, err := s.BookingRepo.RemoveAcceptedPandit(ctx, bookingID, panditID)
	if err != nil {
		return utils.UnavailableError("failed to reject pandit", err)
	}
	if !removed {
		current, err := s.BookingRepo.GetByID(ctx, bookingID)
		if err != nil || current == nil {
			return utils.UnavailableError("failed to re-read booking after rejection miss", err)
		}
		if contains(current.SelectedPandits, panditID) {
			return utils.ConflictError("pandit has already been selected")
		}
		return utils.InvalidStateError("pandit is not in the accepted set")
	}
	return nil
}

// ownedBooking loads the booking and checks the caller owns it.
func (s *DefaultWorkflowService) ownedBooking(ctx context.Context, userID, bookingID string) (*models.Booking, error) {
	booking, err := s.BookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, utils.UnavailableError("failed to fetch booking", err)
	}
	if booking == nil {
		return nil, utils.NotFoundError("booking not found")
	}
	if booking.UserID != userID {
		return nil, utils.ForbiddenError("booking belongs to another user")
	}
	return booking, nil
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
