package notificationRepo

import (
	"context"

	"panditseva/models"
)

// NotificationRepository defines data access for notification records.
type NotificationRepository interface {
	// Create persists a notification with a server-assigned creation
	// timestamp. The caller provides the ID.
	Create(ctx context.Context, n *models.Notification) error
	// GetByID retrieves a notification by its unique ID. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	// Respond sets the status to Accepted or Declined only while the current
	// status is Pending, and returns the updated record. Returns (nil, nil)
	// when the conditional update matched nothing; the caller disambiguates
	// missing from already-answered with GetByID.
	Respond(ctx context.Context, id, status string) (*models.Notification, error)
	// MarkAllRead sets isRead on every unread notification of the receiver and
	// returns the count affected.
	MarkAllRead(ctx context.Context, receiverID string) (int64, error)
	// ListByReceiver returns the receiver's notifications, newest first, with
	// the total count.
	ListByReceiver(ctx context.Context, receiverID string, page, limit int) ([]models.Notification, int64, error)
}
