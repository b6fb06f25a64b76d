package booking

import (
	"context"

	bookingRepo "panditseva/database/repository/booking"
	kypRepo "panditseva/database/repository/kyp"
	pujaRepo "panditseva/database/repository/puja"
	userRepo "panditseva/database/repository/user"
	"panditseva/models"
	"panditseva/services/notification"

	"go.uber.org/zap"
)

// WorkflowService orchestrates the booking state machine: create, fan-out,
// pandit responses, requester selection, completion and cancellation. Every
// transition persists synchronously before any live push goes out.
type WorkflowService interface {
	// CreateBooking persists a new booking and fans out one Booking Request
	// notification per eligible pandit.
	CreateBooking(ctx context.Context, userID, pujaID string, input models.BookingInput) (*models.Booking, error)
	// AcceptRequest records a pandit's acceptance of a Booking Request
	// notification and adds them to the booking's accepted set.
	AcceptRequest(ctx context.Context, panditID, notificationID string) (*models.Notification, error)
	// DeclineRequest records a pandit's refusal. The accepted set stays
	// untouched; the requester is only notified when the deployment opts in.
	DeclineRequest(ctx context.Context, panditID, notificationID string) (*models.Notification, error)
	// AcceptedPandits lists the pandits who accepted the booking, with their
	// KYP documents, for the requester's review.
	AcceptedPandits(ctx context.Context, userID, bookingID string) ([]models.AcceptedPandit, error)
	// SelectPandit moves a pandit from accepted to selected and notifies them.
	SelectPandit(ctx context.Context, userID, bookingID, panditID string) error
	// RejectAcceptedPandit drops a pandit from the accepted set, provided they
	// have not been selected yet.
	RejectAcceptedPandit(ctx context.Context, userID, bookingID, panditID string) error
	// CompleteBooking marks the booking Completed. Requires a prior selection.
	CompleteBooking(ctx context.Context, callerID, bookingID string) (*models.Booking, error)
	// CancelBooking terminally cancels a Pending or Accepted booking.
	CancelBooking(ctx context.Context, userID, bookingID string) (*models.Booking, error)
	// UserBookings lists the requester's bookings, newest first.
	UserBookings(ctx context.Context, userID string, page, limit int) ([]models.Booking, int64, error)
	// PanditBookings lists bookings the pandit was selected for, newest first.
	PanditBookings(ctx context.Context, panditID string, page, limit int) ([]models.Booking, int64, error)
}

// Policy carries the configurable behavior the source system left ambiguous.
type Policy struct {
	// NotifyOnDecline sends the requester a notification when a pandit
	// declines. Default false: declines are silent.
	NotifyOnDecline bool
	// RetractOnCancel fans out Booking Cancellation notifications to accepted
	// and selected pandits when a booking is cancelled. Default false.
	RetractOnCancel bool
	// DuplicateBookingGuard rejects a second non-cancelled booking for the
	// same puja by the same requester. Default true.
	DuplicateBookingGuard bool
}

// DefaultWorkflowService is the production implementation.
type DefaultWorkflowService struct {
	BookingRepo  bookingRepo.BookingRepository
	UserRepo     userRepo.UserRepository
	PujaRepo     pujaRepo.PujaRepository
	KYPRepo      kypRepo.KYPRepository
	Notification notification.NotificationService
	Policy       Policy
	Logger       *zap.Logger
}
