package bookingRepo

import (
	"context"

	"panditseva/models"
)

// BookingRepository defines data access for booking records.
//
// Candidate-set mutations are conditional single-document updates so that
// concurrent accept/select/reject calls serialize through MongoDB instead of
// racing through stale in-process copies. Mutators return whether the
// condition matched; callers disambiguate a miss with a follow-up read.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// HasActiveBooking reports whether the user already has a non-cancelled
	// booking for the puja.
	HasActiveBooking(ctx context.Context, userID, pujaID string) (bool, error)

	// AddAcceptedPandit adds the pandit to acceptedPandits if the booking is
	// still open and the pandit is not already selected.
	AddAcceptedPandit(ctx context.Context, bookingID, panditID string) (bool, error)
	// SelectPandit moves the pandit from acceptedPandits to selectedPandits in
	// one update, increments the selection counter and marks the booking
	// Accepted. Matches only when the pandit is currently accepted and not yet
	// selected and the caller owns the booking.
	SelectPandit(ctx context.Context, bookingID, userID, panditID string) (bool, error)
	// RemoveAcceptedPandit removes the pandit from acceptedPandits unless the
	// pandit has already been selected.
	RemoveAcceptedPandit(ctx context.Context, bookingID, panditID string) (bool, error)
	// TransitionStatus moves the booking status to "to" if the current status
	// is one of "from".
	TransitionStatus(ctx context.Context, bookingID, to string, from ...string) (bool, error)
	// Complete marks the booking Completed if it is currently Accepted.
	Complete(ctx context.Context, bookingID string) (bool, error)

	// ListByUser returns the requester's bookings, newest first, with the total count.
	ListByUser(ctx context.Context, userID string, page, limit int) ([]models.Booking, int64, error)
	// ListBySelectedPandit returns bookings the pandit was selected for, newest
	// first, with the total count.
	ListBySelectedPandit(ctx context.Context, panditID string, page, limit int) ([]models.Booking, int64, error)
}
