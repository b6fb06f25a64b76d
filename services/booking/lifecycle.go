package booking

import (
	"context"

	"panditseva/models"
	"panditseva/utils"

	"go.uber.org/zap"
)

// CompleteBooking marks the booking Completed. The conditional update only
// matches an Accepted booking, which requires at least one prior selection —
// a deliberate tightening over marking arbitrary bookings complete. The
// caller must be the requester or a selected pandit.
func (s *DefaultWorkflowService) CompleteBooking(ctx context.Context, callerID, bookingID string) (*models.Booking, error) {
	booking, err := s.BookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, utils.UnavailableError("failed to fetch booking", err)
	}
	if booking == nil {
		return nil, utils.NotFoundError("booking not found")
	}
	if callerID != booking.UserID && !contains(booking.SelectedPandits, callerID) {
		return nil, utils.ForbiddenError("only the requester or a selected pandit can complete a booking")
	}

	completed, err := s.BookingRepo.Complete(ctx, bookingID)
	if err != nil {
		return nil, utils.UnavailableError("failed to complete booking", err)
	}
	if !completed {
		current, err := s.BookingRepo.GetByID(ctx, bookingID)
		if err != nil || current == nil {
			return nil, utils.UnavailableError("failed to re-read booking after completion miss", err)
		}
		switch current.Status {
		case models.BookingStatusCompleted:
			return nil, utils.ConflictError("booking is already completed")
		case models.BookingStatusCancelled:
			return nil, utils.ConflictError("booking has been cancelled")
		default:
			return nil, utils.InvalidStateError("booking has no selected pandit yet")
		}
	}

	updated, err := s.BookingRepo.GetByID(ctx, bookingID)
	if err != nil || updated == nil {
		return nil, utils.UnavailableError("failed to re-read completed booking", err)
	}
	return updated, nil
}

// CancelBooking moves the booking to the terminal Cancelled status. Only the
// requester may cancel, and only from Pending or Accepted. By default already
// sent provider notifications are not retracted.
func (s *DefaultWorkflowService) CancelBooking(ctx context.Context, userID, bookingID string) (*models.Booking, error) {
	booking, err := s.ownedBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	cancelled, err := s.BookingRepo.TransitionStatus(ctx, bookingID, models.BookingStatusCancelled,
		models.BookingStatusPending, models.BookingStatusAccepted)
	if err != nil {
		return nil, utils.UnavailableError("failed to cancel booking", err)
	}
	if !cancelled {
		switch booking.Status {
		case models.BookingStatusCancelled:
			return nil, utils.ConflictError("booking is already cancelled")
		default:
			return nil, utils.InvalidStateError("a completed booking cannot be cancelled")
		}
	}

	if s.Policy.RetractOnCancel {
		s.retractFromPandits(ctx, booking)
	}

	updated, err := s.BookingRepo.GetByID(ctx, bookingID)
	if err != nil || updated == nil {
		return nil, utils.UnavailableError("failed to re-read cancelled booking", err)
	}
	return updated, nil
}

// retractFromPandits tells every accepted and selected pandit that the
// booking is gone. Opt-in behavior.
func (s *DefaultWorkflowService) retractFromPandits(ctx context.Context, booking *models.Booking) {
	notified := make(map[string]bool)
	for _, panditID := range append(append([]string{}, booking.AcceptedPandits...), booking.SelectedPandits...) {
		if notified[panditID] {
			continue
		}
		notified[panditID] = true
		n := &models.Notification{
			SenderID:   booking.UserID,
			ReceiverID: panditID,
			Message:    "The booking you responded to has been cancelled.",
			Type:       models.NotificationTypeBookingCancellation,
			Related:    models.RelatedRef{Kind: models.RelatedBooking, ID: booking.ID},
		}
		if _, err := s.Notification.Send(ctx, n); err != nil {
			s.Logger.Warn("failed to notify pandit of cancellation",
				zap.String("bookingId", booking.ID),
				zap.String("panditId", panditID),
				zap.Error(err))
		}
	}
}
