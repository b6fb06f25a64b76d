package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"panditseva/models"
	"panditseva/services/realtime"
	"panditseva/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memNotificationRepo mirrors the Pending-only Respond guard of the Mongo
// repository.
type memNotificationRepo struct {
	mu    sync.Mutex
	items []*models.Notification
	byID  map[string]*models.Notification
}

func newMemNotificationRepo() *memNotificationRepo {
	return &memNotificationRepo{byID: make(map[string]*models.Notification)}
}

func (r *memNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n.CreatedAt = time.Now()
	cp := *n
	r.items = append(r.items, &cp)
	r.byID[cp.ID] = &cp
	return nil
}

func (r *memNotificationRepo) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

func (r *memNotificationRepo) Respond(ctx context.Context, id, status string) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.byID[id]
	if !ok || n.Status != models.NotificationStatusPending {
		return nil, nil
	}
	n.Status = status
	cp := *n
	return &cp, nil
}

func (r *memNotificationRepo) MarkAllRead(ctx context.Context, receiverID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.items {
		if n.ReceiverID == receiverID && !n.IsRead {
			n.IsRead = true
			count++
		}
	}
	return count, nil
}

func (r *memNotificationRepo) ListByReceiver(ctx context.Context, receiverID string, page, limit int) ([]models.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].ReceiverID == receiverID {
			out = append(out, *r.items[i])
		}
	}
	return out, int64(len(out)), nil
}

// stubBookingRepo serves only reads; the notification service never mutates
// bookings.
type stubBookingRepo struct {
	bookings map[string]*models.Booking
	err      error
}

func (r *stubBookingRepo) Create(ctx context.Context, b *models.Booking) error { return nil }
func (r *stubBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.bookings[id], nil
}
func (r *stubBookingRepo) HasActiveBooking(ctx context.Context, userID, pujaID string) (bool, error) {
	return false, nil
}
func (r *stubBookingRepo) AddAcceptedPandit(ctx context.Context, bookingID, panditID string) (bool, error) {
	return false, nil
}
func (r *stubBookingRepo) SelectPandit(ctx context.Context, bookingID, userID, panditID string) (bool, error) {
	return false, nil
}
func (r *stubBookingRepo) RemoveAcceptedPandit(ctx context.Context, bookingID, panditID string) (bool, error) {
	return false, nil
}
func (r *stubBookingRepo) TransitionStatus(ctx context.Context, bookingID, to string, from ...string) (bool, error) {
	return false, nil
}
func (r *stubBookingRepo) Complete(ctx context.Context, bookingID string) (bool, error) {
	return false, nil
}
func (r *stubBookingRepo) ListByUser(ctx context.Context, userID string, page, limit int) ([]models.Booking, int64, error) {
	return nil, 0, nil
}
func (r *stubBookingRepo) ListBySelectedPandit(ctx context.Context, panditID string, page, limit int) ([]models.Booking, int64, error) {
	return nil, 0, nil
}

type stubUserRepo struct {
	users map[string]*models.User
}

func (r *stubUserRepo) Create(ctx context.Context, u *models.User) error { return nil }
func (r *stubUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.users[id], nil
}
func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, nil
}
func (r *stubUserRepo) GetByRole(ctx context.Context, isPandit bool) ([]models.User, error) {
	return nil, nil
}

type stubPujaRepo struct {
	pujas map[string]*models.Puja
}

func (r *stubPujaRepo) Create(ctx context.Context, p *models.Puja) error { return nil }
func (r *stubPujaRepo) GetByID(ctx context.Context, id string) (*models.Puja, error) {
	return r.pujas[id], nil
}
func (r *stubPujaRepo) GetAll(ctx context.Context) ([]models.Puja, error) { return nil, nil }
func (r *stubPujaRepo) UpdateSet(ctx context.Context, id string, doc map[string]interface{}) error {
	return nil
}
func (r *stubPujaRepo) Delete(ctx context.Context, id string) error { return nil }

type stubReviewRepo struct {
	reviews map[string]*models.Review
}

func (r *stubReviewRepo) Create(ctx context.Context, rec *models.Review) error { return nil }
func (r *stubReviewRepo) GetByID(ctx context.Context, id string) (*models.Review, error) {
	return r.reviews[id], nil
}
func (r *stubReviewRepo) GetByBookingAndUser(ctx context.Context, bookingID, userID string) (*models.Review, error) {
	return nil, nil
}
func (r *stubReviewRepo) ListByPandit(ctx context.Context, panditID string, page, limit int) ([]models.Review, int64, error) {
	return nil, 0, nil
}
func (r *stubReviewRepo) AverageForPandit(ctx context.Context, panditID string) (models.RatingSummary, error) {
	return models.RatingSummary{}, nil
}
func (r *stubReviewRepo) TopPandits(ctx context.Context, n int) ([]models.PanditRating, error) {
	return nil, nil
}

// chanConn signals each delivered payload on a channel.
type chanConn struct {
	payloads chan interface{}
}

func newChanConn() *chanConn {
	return &chanConn{payloads: make(chan interface{}, 4)}
}

func (c *chanConn) WriteJSON(v interface{}) error {
	c.payloads <- v
	return nil
}

func (c *chanConn) Close() error { return nil }

func newTestService(repo *memNotificationRepo, registry *realtime.Registry) *DefaultNotificationService {
	booking := &models.Booking{ID: "booking-1", UserID: "user-1", PujaID: "puja-1", Status: models.BookingStatusPending}
	return &DefaultNotificationService{
		Repo:        repo,
		BookingRepo: &stubBookingRepo{bookings: map[string]*models.Booking{"booking-1": booking}},
		ReviewRepo:  &stubReviewRepo{reviews: map[string]*models.Review{}},
		UserRepo: &stubUserRepo{users: map[string]*models.User{
			"user-1": {ID: "user-1", FirstName: "Asha"},
		}},
		PujaRepo: &stubPujaRepo{pujas: map[string]*models.Puja{
			"puja-1": {ID: "puja-1", Name: "Griha Pravesh"},
		}},
		Registry: registry,
		Logger:   zap.NewNop(),
	}
}

func bookingRequest(receiverID string) *models.Notification {
	return &models.Notification{
		SenderID:   "user-1",
		ReceiverID: receiverID,
		Message:    "New booking request",
		Type:       models.NotificationTypeBookingRequest,
		Related:    models.RelatedRef{Kind: models.RelatedBooking, ID: "booking-1"},
	}
}

func TestSendPersistsAndDefaults(t *testing.T) {
	repo := newMemNotificationRepo()
	svc := newTestService(repo, realtime.NewRegistry(zap.NewNop()))

	sent, err := svc.Send(context.Background(), bookingRequest("pandit-1"))
	require.NoError(t, err)
	assert.NotEmpty(t, sent.ID)
	assert.Equal(t, models.NotificationStatusPending, sent.Status)
	assert.False(t, sent.IsRead)

	stored, err := repo.GetByID(context.Background(), sent.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestSendDeliversToConnectedReceiver(t *testing.T) {
	repo := newMemNotificationRepo()
	registry := realtime.NewRegistry(zap.NewNop())
	svc := newTestService(repo, registry)

	conn := newChanConn()
	registry.Register("pandit-1", conn)

	_, err := svc.Send(context.Background(), bookingRequest("pandit-1"))
	require.NoError(t, err)

	select {
	case payload := <-conn.payloads:
		view, ok := payload.(models.NotificationView)
		require.True(t, ok)
		assert.Equal(t, "booking-1", view.Related.ID)
		require.NotNil(t, view.BookingDetails)
		assert.Equal(t, "booking-1", view.BookingDetails.ID)
		require.NotNil(t, view.PujaDetails)
		assert.Equal(t, "Griha Pravesh", view.PujaDetails.Name)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a live delivery")
	}
}

func awaitDelivery(t *testing.T, conn *chanConn) {
	t.Helper()
	select {
	case <-conn.payloads:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a live delivery")
	}
}

func TestReconnectPreservesStoredNotifications(t *testing.T) {
	repo := newMemNotificationRepo()
	registry := realtime.NewRegistry(zap.NewNop())
	svc := newTestService(repo, registry)

	conn := newChanConn()
	registry.Register("pandit-1", conn)

	first, err := svc.Send(context.Background(), bookingRequest("pandit-1"))
	require.NoError(t, err)
	awaitDelivery(t, conn)

	registry.Unregister("pandit-1", conn)

	// Stored while the pandit is offline, nothing to deliver to.
	offline, err := svc.Send(context.Background(), bookingRequest("pandit-1"))
	require.NoError(t, err)

	reconn := newChanConn()
	registry.Register("pandit-1", reconn)

	latest, err := svc.Send(context.Background(), bookingRequest("pandit-1"))
	require.NoError(t, err)
	awaitDelivery(t, reconn)

	select {
	case <-conn.payloads:
		t.Fatal("stale connection received a delivery")
	default:
	}

	views, total, err := svc.List(context.Background(), "pandit-1", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	ids := make([]string, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []string{latest.ID, offline.ID, first.ID}, ids)
}

func TestRespondOnce(t *testing.T) {
	repo := newMemNotificationRepo()
	svc := newTestService(repo, realtime.NewRegistry(zap.NewNop()))
	ctx := context.Background()

	sent, err := svc.Send(ctx, bookingRequest("pandit-1"))
	require.NoError(t, err)

	updated, err := svc.Respond(ctx, "pandit-1", sent.ID, models.NotificationStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.NotificationStatusAccepted, updated.Status)

	_, err = svc.Respond(ctx, "pandit-1", sent.ID, models.NotificationStatusDeclined)
	assert.Equal(t, utils.KindInvalidState, utils.KindOf(err))
}

func TestRespondGuards(t *testing.T) {
	repo := newMemNotificationRepo()
	svc := newTestService(repo, realtime.NewRegistry(zap.NewNop()))
	ctx := context.Background()

	sent, err := svc.Send(ctx, bookingRequest("pandit-1"))
	require.NoError(t, err)

	_, err = svc.Respond(ctx, "pandit-1", sent.ID, "Maybe")
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	_, err = svc.Respond(ctx, "pandit-2", sent.ID, models.NotificationStatusAccepted)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))

	_, err = svc.Respond(ctx, "pandit-1", "no-such-id", models.NotificationStatusAccepted)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestMarkAllRead(t *testing.T) {
	repo := newMemNotificationRepo()
	svc := newTestService(repo, realtime.NewRegistry(zap.NewNop()))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Send(ctx, bookingRequest("pandit-1"))
		require.NoError(t, err)
	}
	_, err := svc.Send(ctx, bookingRequest("pandit-2"))
	require.NoError(t, err)

	count, err := svc.MarkAllRead(ctx, "pandit-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// Idempotent: nothing left unread.
	count, err = svc.MarkAllRead(ctx, "pandit-1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestListEnrichesAndToleratesFailures(t *testing.T) {
	repo := newMemNotificationRepo()
	svc := newTestService(repo, realtime.NewRegistry(zap.NewNop()))
	ctx := context.Background()

	sent, err := svc.Send(ctx, bookingRequest("pandit-1"))
	require.NoError(t, err)

	views, total, err := svc.List(ctx, "pandit-1", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, views, 1)
	assert.Equal(t, sent.ID, views[0].ID)
	require.NotNil(t, views[0].BookingDetails)
	require.NotNil(t, views[0].SenderDetails)
	assert.Equal(t, "Asha", views[0].SenderDetails.FirstName)

	// A failing booking lookup degrades the view instead of failing the page.
	degraded := newTestService(repo, realtime.NewRegistry(zap.NewNop()))
	degraded.BookingRepo = &stubBookingRepo{err: errors.New("store down")}
	views, _, err = degraded.List(ctx, "pandit-1", 1, 10)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Nil(t, views[0].BookingDetails)
}
