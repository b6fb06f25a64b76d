package notification

import (
	"context"

	"panditseva/models"
)

// NotificationService persists notifications and pushes them to connected
// receivers. Persistence is synchronous; live delivery is fire-and-forget.
type NotificationService interface {
	// Send persists the notification and attempts live delivery to the
	// receiver. Only persistence failures surface to the caller.
	Send(ctx context.Context, n *models.Notification) (*models.Notification, error)
	// Get fetches a notification, enforcing that the caller is its receiver.
	Get(ctx context.Context, receiverID, notificationID string) (*models.Notification, error)
	// Respond records the receiver's Accepted/Declined answer on a pending
	// notification. A notification can be answered at most once.
	Respond(ctx context.Context, receiverID, notificationID, status string) (*models.Notification, error)
	// MarkAllRead marks every unread notification of the receiver as read and
	// returns the count affected.
	MarkAllRead(ctx context.Context, receiverID string) (int64, error)
	// List returns the receiver's notifications, newest first, enriched with
	// related entities and sender profiles.
	List(ctx context.Context, receiverID string, page, limit int) ([]models.NotificationView, int64, error)
}
