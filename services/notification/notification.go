package notification

import (
	"context"
	"fmt"
	"time"

	bookingRepo "panditseva/database/repository/booking"
	notificationRepo "panditseva/database/repository/notification"
	pujaRepo "panditseva/database/repository/puja"
	reviewRepo "panditseva/database/repository/review"
	userRepo "panditseva/database/repository/user"
	"panditseva/models"
	"panditseva/services/realtime"
	"panditseva/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// deliveryTimeout bounds the background push so a hung transport cannot pin a
// goroutine forever.
const deliveryTimeout = 10 * time.Second

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo        notificationRepo.NotificationRepository
	BookingRepo bookingRepo.BookingRepository
	ReviewRepo  reviewRepo.ReviewRepository
	UserRepo    userRepo.UserRepository
	PujaRepo    pujaRepo.PujaRepository
	Registry    *realtime.Registry
	Logger      *zap.Logger
}

// Send persists the notification, then pushes it to the receiver in the
// background. The workflow engine never blocks a state transition on
// delivery, and delivery failures are logged rather than surfaced: the store
// is the durable path, a poll picks the notification up later.
func (s *DefaultNotificationService) Send(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.Status == "" {
		n.Status = models.NotificationStatusPending
	}
	n.IsRead = false

	if err := s.Repo.Create(ctx, n); err != nil {
		return nil, utils.UnavailableError("failed to persist notification", err)
	}

	stored := *n
	go func() {
		dctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		defer cancel()
		view := s.enrich(dctx, stored)
		s.Registry.Deliver(stored.ReceiverID, view)
	}()

	return n, nil
}

// Get fetches a notification, enforcing that the caller is its receiver.
func (s *DefaultNotificationService) Get(ctx context.Context, receiverID, notificationID string) (*models.Notification, error) {
	existing, err := s.Repo.GetByID(ctx, notificationID)
	if err != nil {
		return nil, utils.UnavailableError("failed to fetch notification", err)
	}
	if existing == nil {
		return nil, utils.NotFoundError("notification not found")
	}
	if existing.ReceiverID != receiverID {
		return nil, utils.ForbiddenError("notification is addressed to another user")
	}
	return existing, nil
}

// Respond applies the receiver's answer. The repository update is conditional
// on status Pending, so the transition happens at most once even under
// concurrent responses.
func (s *DefaultNotificationService) Respond(ctx context.Context, receiverID, notificationID, status string) (*models.Notification, error) {
	if status != models.NotificationStatusAccepted && status != models.NotificationStatusDeclined {
		return nil, utils.ValidationError(fmt.Sprintf("invalid response status %q", status))
	}

	if _, err := s.Get(ctx, receiverID, notificationID); err != nil {
		return nil, err
	}

	updated, err := s.Repo.Respond(ctx, notificationID, status)
	if err != nil {
		return nil, utils.UnavailableError("failed to update notification", err)
	}
	if updated == nil {
		// The conditional update missed: the notification exists but was
		// answered already.
		return nil, utils.InvalidStateError("notification already accepted or declined")
	}
	return updated, nil
}

// MarkAllRead marks every unread notification of the receiver as read.
func (s *DefaultNotificationService) MarkAllRead(ctx context.Context, receiverID string) (int64, error) {
	count, err := s.Repo.MarkAllRead(ctx, receiverID)
	if err != nil {
		return 0, utils.UnavailableError("failed to mark notifications read", err)
	}
	return count, nil
}

// List returns the receiver's notifications, newest first, each enriched on
// read. Enrichment failure for one item never fails the page.
func (s *DefaultNotificationService) List(ctx context.Context, receiverID string, page, limit int) ([]models.NotificationView, int64, error) {
	items, total, err := s.Repo.ListByReceiver(ctx, receiverID, page, limit)
	if err != nil {
		return nil, 0, utils.UnavailableError("failed to list notifications", err)
	}

	views := make([]models.NotificationView, 0, len(items))
	for _, n := range items {
		views = append(views, s.enrich(ctx, n))
	}
	return views, total, nil
}

// enrich resolves the related entity and sender profile for one notification.
// The related reference is a tagged kind, so resolution is an exhaustive
// switch rather than string-keyed model dispatch.
func (s *DefaultNotificationService) enrich(ctx context.Context, n models.Notification) models.NotificationView {
	view := models.NotificationView{Notification: n}

	switch n.Related.Kind {
	case models.RelatedBooking:
		booking, err := s.BookingRepo.GetByID(ctx, n.Related.ID)
		if err != nil {
			s.Logger.Warn("failed to enrich notification with booking",
				zap.String("notificationId", n.ID), zap.Error(err))
		} else if booking != nil {
			view.BookingDetails = booking
			if puja, err := s.PujaRepo.GetByID(ctx, booking.PujaID); err != nil {
				s.Logger.Warn("failed to enrich notification with puja",
					zap.String("notificationId", n.ID), zap.Error(err))
			} else {
				view.PujaDetails = puja
			}
		}
	case models.RelatedReview:
		review, err := s.ReviewRepo.GetByID(ctx, n.Related.ID)
		if err != nil {
			s.Logger.Warn("failed to enrich notification with review",
				zap.String("notificationId", n.ID), zap.Error(err))
		} else {
			view.ReviewDetails = review
		}
	case models.RelatedNone:
		// Nothing to resolve.
	}

	sender, err := s.UserRepo.GetByID(ctx, n.SenderID)
	if err != nil {
		s.Logger.Warn("failed to enrich notification with sender",
			zap.String("notificationId", n.ID), zap.Error(err))
	} else if sender != nil {
		profile := sender.PublicProfile()
		view.SenderDetails = &profile
	}

	return view
}
