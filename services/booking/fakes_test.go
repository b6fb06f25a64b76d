package booking

import (
	"context"
	"sync"
	"time"

	"panditseva/models"
)

// In-memory repositories mirroring the conditional-update semantics of the
// Mongo implementations, so workflow tests exercise the same guarded
// transitions without a live store.

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func copyBooking(b *models.Booking) *models.Booking {
	cp := *b
	cp.AcceptedPandits = append([]string(nil), b.AcceptedPandits...)
	cp.SelectedPandits = append([]string(nil), b.SelectedPandits...)
	return &cp
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	r.bookings[booking.ID] = copyBooking(booking)
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	return copyBooking(b), nil
}

func (r *fakeBookingRepo) HasActiveBooking(ctx context.Context, userID, pujaID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.UserID == userID && b.PujaID == pujaID && b.Status != models.BookingStatusCancelled {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) AddAcceptedPandit(ctx context.Context, bookingID, panditID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return false, nil
	}
	if contains(b.SelectedPandits, panditID) {
		return false, nil
	}
	if b.Status != models.BookingStatusPending && b.Status != models.BookingStatusAccepted {
		return false, nil
	}
	if !contains(b.AcceptedPandits, panditID) {
		b.AcceptedPandits = append(b.AcceptedPandits, panditID)
	}
	b.UpdatedAt = time.Now()
	return true, nil
}

func (r *fakeBookingRepo) SelectPandit(ctx context.Context, bookingID, userID, panditID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok || b.UserID != userID {
		return false, nil
	}
	if !contains(b.AcceptedPandits, panditID) || contains(b.SelectedPandits, panditID) {
		return false, nil
	}
	if b.Status != models.BookingStatusPending && b.Status != models.BookingStatusAccepted {
		return false, nil
	}
	kept := b.AcceptedPandits[:0]
	for _, id := range b.AcceptedPandits {
		if id != panditID {
			kept = append(kept, id)
		}
	}
	b.AcceptedPandits = kept
	b.SelectedPandits = append(b.SelectedPandits, panditID)
	b.SelectionCount++
	b.Status = models.BookingStatusAccepted
	b.UpdatedAt = time.Now()
	return true, nil
}

func (r *fakeBookingRepo) RemoveAcceptedPandit(ctx context.Context, bookingID, panditID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return false, nil
	}
	if !contains(b.AcceptedPandits, panditID) || contains(b.SelectedPandits, panditID) {
		return false, nil
	}
	kept := b.AcceptedPandits[:0]
	for _, id := range b.AcceptedPandits {
		if id != panditID {
			kept = append(kept, id)
		}
	}
	b.AcceptedPandits = kept
	b.UpdatedAt = time.Now()
	return true, nil
}

func (r *fakeBookingRepo) TransitionStatus(ctx context.Context, bookingID, to string, from ...string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok || !contains(from, b.Status) {
		return false, nil
	}
	b.Status = to
	b.UpdatedAt = time.Now()
	return true, nil
}

func (r *fakeBookingRepo) Complete(ctx context.Context, bookingID string) (bool, error) {
	return r.TransitionStatus(ctx, bookingID, models.BookingStatusCompleted, models.BookingStatusAccepted)
}

func (r *fakeBookingRepo) ListByUser(ctx context.Context, userID string, page, limit int) ([]models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *copyBooking(b))
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) ListBySelectedPandit(ctx context.Context, panditID string, page, limit int) ([]models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if contains(b.SelectedPandits, panditID) {
			out = append(out, *copyBooking(b))
		}
	}
	return out, int64(len(out)), nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByRole(ctx context.Context, isPandit bool) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, u := range r.users {
		if u.IsPandit == isPandit {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakePujaRepo struct {
	mu    sync.Mutex
	pujas map[string]*models.Puja
}

func newFakePujaRepo(pujas ...*models.Puja) *fakePujaRepo {
	r := &fakePujaRepo{pujas: make(map[string]*models.Puja)}
	for _, p := range pujas {
		r.pujas[p.ID] = p
	}
	return r
}

func (r *fakePujaRepo) Create(ctx context.Context, puja *models.Puja) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pujas[puja.ID] = puja
	return nil
}

func (r *fakePujaRepo) GetByID(ctx context.Context, id string) (*models.Puja, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pujas[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePujaRepo) GetAll(ctx context.Context) ([]models.Puja, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Puja
	for _, p := range r.pujas {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePujaRepo) UpdateSet(ctx context.Context, id string, doc map[string]interface{}) error {
	return nil
}

func (r *fakePujaRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pujas, id)
	return nil
}

type fakeKYPRepo struct {
	mu   sync.Mutex
	docs map[string][]models.KYP
}

func newFakeKYPRepo() *fakeKYPRepo {
	return &fakeKYPRepo{docs: make(map[string][]models.KYP)}
}

func (r *fakeKYPRepo) Create(ctx context.Context, kyp *models.KYP) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[kyp.PanditID] = append(r.docs[kyp.PanditID], *kyp)
	return nil
}

func (r *fakeKYPRepo) ListByPandit(ctx context.Context, panditID string) ([]models.KYP, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.KYP(nil), r.docs[panditID]...), nil
}

// fakeNotificationRepo keeps insertion order and applies the same
// Pending-only guard as the Mongo Respond.
type fakeNotificationRepo struct {
	mu    sync.Mutex
	items []*models.Notification
	byID  map[string]*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{byID: make(map[string]*models.Notification)}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n.CreatedAt = time.Now()
	cp := *n
	r.items = append(r.items, &cp)
	r.byID[cp.ID] = &cp
	return nil
}

func (r *fakeNotificationRepo) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

func (r *fakeNotificationRepo) Respond(ctx context.Context, id, status string) (*models.Notification, error) {
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

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, receiverID string) (int64, error) {
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

func (r *fakeNotificationRepo) ListByReceiver(ctx context.Context, receiverID string, page, limit int) ([]models.Notification, int64, error) {
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

// forReceiver returns the receiver's notifications of the given type, for
// test assertions.
func (r *fakeNotificationRepo) forReceiver(receiverID, notificationType string) []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for _, n := range r.items {
		if n.ReceiverID == receiverID && n.Type == notificationType {
			out = append(out, *n)
		}
	}
	return out
}
