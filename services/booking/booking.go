package booking

import (
	"context"
	"fmt"

	"panditseva/models"
	"panditseva/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking persists the booking, then fans out one Booking Request
// notification per eligible pandit. Eligibility is every registered pandit
// except the requester. Fan-out is best effort: a pandit the store or the
// transport misses does not fail the create; the caller only learns of
// booking persistence failures.
func (s *DefaultWorkflowService) CreateBooking(ctx context.Context, userID, pujaID string, input models.BookingInput) (*models.Booking, error) {
	if input.Time == "" {
		return nil, utils.ValidationError("please provide all the required fields")
	}
	if input.Date.Day == 0 || input.Date.Month == 0 || input.Date.Year == 0 {
		return nil, utils.ValidationError("please provide a valid date")
	}
	if input.Location.Province == "" || input.Location.District == "" ||
		input.Location.Municipality == "" || input.Location.TollAddress == "" {
		return nil, utils.ValidationError("please provide a complete location")
	}

	user, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, utils.UnavailableError("failed to fetch user", err)
	}
	if user == nil {
		return nil, utils.NotFoundError("user not found")
	}

	puja, err := s.PujaRepo.GetByID(ctx, pujaID)
	if err != nil {
		return nil, utils.UnavailableError("failed to fetch puja", err)
	}
	if puja == nil {
		return nil, utils.NotFoundError("puja not found")
	}

	if s.Policy.DuplicateBookingGuard {
		exists, err := s.BookingRepo.HasActiveBooking(ctx, userID, pujaID)
		if err != nil {
			return nil, utils.UnavailableError("failed to check existing bookings", err)
		}
		if exists {
			return nil, utils.ConflictError("you have already booked this puja")
		}
	}

	booking := &models.Booking{
		ID:            uuid.New().String(),
		UserID:        userID,
		PujaID:        pujaID,
		Date:          input.Date,
		Time:          input.Time,
		Location:      input.Location,
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		Amount:        puja.BaseFare,
	}
	if err := s.BookingRepo.Create(ctx, booking); err != nil {
		return nil, utils.UnavailableError("failed to create booking", err)
	}

	pandits, err := s.UserRepo.GetByRole(ctx, true)
	if err != nil {
		// The booking is already durable; surface the fan-out failure so the
		// requester knows nobody was asked yet.
		return nil, utils.UnavailableError("failed to enumerate pandits", err)
	}

	message := fmt.Sprintf("New booking request for %s by %s on %d-%02d-%02d at %s.",
		puja.Name, user.FirstName, input.Date.Year, input.Date.Month, input.Date.Day, input.Time)

	for _, pandit := range pandits {
		if pandit.ID == userID {
			continue
		}
		n := &models.Notification{
			SenderID:   userID,
			ReceiverID: pandit.ID,
			Message:    message,
			Type:       models.NotificationTypeBookingRequest,
			Related:    models.RelatedRef{Kind: models.RelatedBooking, ID: booking.ID},
		}
		if _, err := s.Notification.Send(ctx, n); err != nil {
			// Store-backed durability is per pandit; one miss must not starve
			// the rest of the fan-out.
			s.Logger.Warn("failed to notify pandit of booking request",
				zap.String("bookingId", booking.ID),
				zap.String("panditId", pandit.ID),
				zap.Error(err))
		}
	}

	return booking, nil
}

// UserBookings lists the requester's bookings, newest first.
func (s *DefaultWorkflowService) UserBookings(ctx context.Context, userID string, page, limit int) ([]models.Booking, int64, error) {
	bookings, total, err := s.BookingRepo.ListByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, utils.UnavailableError("failed to list bookings", err)
	}
	return bookings, total, nil
}

// PanditBookings lists bookings the pandit was selected for, newest first.
func (s *DefaultWorkflowService) PanditBookings(ctx context.Context, panditID string, page, limit int) ([]models.Booking, int64, error) {
	bookings, total, err := s.BookingRepo.ListBySelectedPandit(ctx, panditID, page, limit)
	if err != nil {
		return nil, 0, utils.UnavailableError("failed to list bookings", err)
	}
	return bookings, total, nil
}
