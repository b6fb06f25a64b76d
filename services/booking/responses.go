package booking

import (
	"context"
	"fmt"

	"panditseva/models"
	"panditseva/utils"

	"go.uber.org/zap"
)

// AcceptRequest records the pandit's acceptance: the Booking Request
// notification transitions Pending → Accepted (at most once), the pandit
// enters the booking's accepted set through a guarded update, and the
// requester is told.
func (s *DefaultWorkflowService) AcceptRequest(ctx context.Context, panditID, notificationID string) (*models.Notification, error) {
	n, err := s.respondToRequest(ctx, panditID, notificationID, models.NotificationStatusAccepted)
	if err != nil {
		return nil, err
	}

	bookingID := n.Related.ID
	booking, err := s.BookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, utils.UnavailableError("failed to fetch booking", err)
	}
	if booking == nil {
		return nil, utils.NotFoundError("booking not found")
	}

	added, err := s.BookingRepo.AddAcceptedPandit(ctx, bookingID, panditID)
	if err != nil {
		return nil, utils.UnavailableError("failed to record acceptance", err)
	}
	if !added {
		// The guarded update refused: the booking closed or the pandit was
		// selected in the meantime. The notification answer stands either way.
		return nil, utils.InvalidStateError("booking is no longer open for acceptance")
	}

	pandit, err := s.UserRepo.GetByID(ctx, panditID)
	if err != nil || pandit == nil {
		s.Logger.Warn("failed to resolve accepting pandit for requester notification",
			zap.String("panditId", panditID), zap.Error(err))
		return n, nil
	}

	ack := &models.Notification{
		SenderID:   panditID,
		ReceiverID: booking.UserID,
		Message:    fmt.Sprintf("Pandit %s has accepted your booking request.", pandit.FirstName),
		Type:       models.NotificationTypeBookingAcceptance,
		Related:    models.RelatedRef{Kind: models.RelatedBooking, ID: booking.ID},
	}
	if _, err := s.Notification.Send(ctx, ack); err != nil {
		s.Logger.Warn("failed to notify requester of acceptance",
			zap.String("bookingId", booking.ID), zap.Error(err))
	}

	return n, nil
}

// DeclineRequest records the pandit's refusal. Candidate sets stay untouched.
// Whether the requester hears about it is a policy knob, silent by default.
func (s *DefaultWorkflowService) DeclineRequest(ctx context.Context, panditID, notificationID string) (*models.Notification, error) {
	n, err := s.respondToRequest(ctx, panditID, notificationID, models.NotificationStatusDeclined)
	if err != nil {
		return nil, err
	}

	if s.Policy.NotifyOnDecline {
		booking, err := s.BookingRepo.GetByID(ctx, n.Related.ID)
		if err != nil || booking == nil {
			s.Logger.Warn("failed to resolve booking for decline notification",
				zap.String("notificationId", notificationID), zap.Error(err))
			return n, nil
		}
		decline := &models.Notification{
			SenderID:   panditID,
			ReceiverID: booking.UserID,
			Message:    "A pandit has declined your booking request.",
			Type:       models.NotificationTypeGeneral,
			Related:    models.RelatedRef{Kind: models.RelatedBooking, ID: booking.ID},
		}
		if _, err := s.Notification.Send(ctx, decline); err != nil {
			s.Logger.Warn("failed to notify requester of decline",
				zap.String("bookingId", booking.ID), zap.Error(err))
		}
	}

	return n, nil
}

// respondToRequest applies the pandit's answer to a Booking Request
// notification after checking it really is one. The answer itself is a
// conditional update, so the Pending check cannot be raced past.
func (s *DefaultWorkflowService) respondToRequest(ctx context.Context, panditID, notificationID, status string) (*models.Notification, error) {
	existing, err := s.Notification.Get(ctx, panditID, notificationID)
	if err != nil {
		return nil, err
	}
	if existing.Type != models.NotificationTypeBookingRequest {
		return nil, utils.InvalidStateError("notification is not a booking request")
	}
	if existing.Related.Kind != models.RelatedBooking || existing.Related.ID == "" {
		return nil, utils.InvalidStateError("notification has no booking reference")
	}
	return s.Notification.Respond(ctx, panditID, notificationID, status)
}
