package review

import (
	"context"
	"sort"
	"sync"
	"testing"

	"panditseva/models"
	"panditseva/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memReviewRepo struct {
	mu      sync.Mutex
	reviews []*models.Review
}

func (r *memReviewRepo) Create(ctx context.Context, rec *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rec
	r.reviews = append(r.reviews, &cp)
	return nil
}

func (r *memReviewRepo) GetByID(ctx context.Context, id string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.reviews {
		if rec.ID == id {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memReviewRepo) GetByBookingAndUser(ctx context.Context, bookingID, userID string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.reviews {
		if rec.BookingID == bookingID && rec.UserID == userID {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memReviewRepo) ListByPandit(ctx context.Context, panditID string, page, limit int) ([]models.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Review
	for _, rec := range r.reviews {
		if rec.PanditID == panditID {
			out = append(out, *rec)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memReviewRepo) AverageForPandit(ctx context.Context, panditID string) (models.RatingSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum, count int64
	for _, rec := range r.reviews {
		if rec.PanditID == panditID {
			sum += int64(rec.Rating)
			count++
		}
	}
	if count == 0 {
		return models.RatingSummary{}, nil
	}
	return models.RatingSummary{
		AverageRating: float64(sum) / float64(count),
		TotalReviews:  count,
	}, nil
}

func (r *memReviewRepo) TopPandits(ctx context.Context, n int) ([]models.PanditRating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	agg := make(map[string]*models.PanditRating)
	sums := make(map[string]int64)
	for _, rec := range r.reviews {
		row, ok := agg[rec.PanditID]
		if !ok {
			row = &models.PanditRating{PanditID: rec.PanditID}
			agg[rec.PanditID] = row
		}
		row.TotalReviews++
		sums[rec.PanditID] += int64(rec.Rating)
	}
	var out []models.PanditRating
	for id, row := range agg {
		row.AverageRating = float64(sums[id]) / float64(row.TotalReviews)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AverageRating != out[j].AverageRating {
			return out[i].AverageRating > out[j].AverageRating
		}
		return out[i].TotalReviews > out[j].TotalReviews
	})
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

type stubBookingRepo struct {
	bookings map[string]*models.Booking
}

func (r *stubBookingRepo) Create(ctx context.Context, b *models.Booking) error { return nil }
func (r *stubBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
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

// recordingNotifier captures sent notifications.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []*models.Notification
}

func (n *recordingNotifier) Send(ctx context.Context, rec *models.Notification) (*models.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, rec)
	return rec, nil
}

func (n *recordingNotifier) Get(ctx context.Context, receiverID, notificationID string) (*models.Notification, error) {
	return nil, utils.NotFoundError("notification not found")
}

func (n *recordingNotifier) Respond(ctx context.Context, receiverID, notificationID, status string) (*models.Notification, error) {
	return nil, utils.NotFoundError("notification not found")
}

func (n *recordingNotifier) MarkAllRead(ctx context.Context, receiverID string) (int64, error) {
	return 0, nil
}

func (n *recordingNotifier) List(ctx context.Context, receiverID string, page, limit int) ([]models.NotificationView, int64, error) {
	return nil, 0, nil
}

func newTestService() (*DefaultReviewService, *memReviewRepo, *recordingNotifier) {
	repo := &memReviewRepo{}
	notifier := &recordingNotifier{}
	svc := &DefaultReviewService{
		Repo: repo,
		BookingRepo: &stubBookingRepo{bookings: map[string]*models.Booking{
			"booking-1": {
				ID:              "booking-1",
				UserID:          "user-1",
				PujaID:          "puja-1",
				SelectedPandits: []string{"pandit-1"},
				Status:          models.BookingStatusCompleted,
			},
			"booking-open": {
				ID:              "booking-open",
				UserID:          "user-1",
				PujaID:          "puja-1",
				SelectedPandits: []string{"pandit-1"},
				Status:          models.BookingStatusAccepted,
			},
		}},
		UserRepo: &stubUserRepo{users: map[string]*models.User{
			"user-1":   {ID: "user-1", FirstName: "Asha"},
			"pandit-1": {ID: "pandit-1", FirstName: "Ram", IsPandit: true},
		}},
		Notification: notifier,
		Logger:       zap.NewNop(),
	}
	return svc, repo, notifier
}

func validReview() models.ReviewInput {
	return models.ReviewInput{
		PanditID:   "pandit-1",
		PujaID:     "puja-1",
		BookingID:  "booking-1",
		Rating:     4,
		ReviewText: "Very thorough ceremony.",
	}
}

func TestAddReviewHappyPath(t *testing.T) {
	svc, _, notifier := newTestService()

	rec, err := svc.AddReview(context.Background(), "user-1", validReview())
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "pandit-1", rec.PanditID)
	assert.Equal(t, "puja-1", rec.PujaID)
	assert.Equal(t, 4, rec.Rating)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, models.NotificationTypeReview, notifier.sent[0].Type)
	assert.Equal(t, "pandit-1", notifier.sent[0].ReceiverID)
	assert.Equal(t, models.RelatedReview, notifier.sent[0].Related.Kind)
}

func TestAddReviewGuards(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	input := validReview()
	input.Rating = 6
	_, err := svc.AddReview(ctx, "user-1", input)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	input = validReview()
	input.BookingID = "no-such-booking"
	_, err = svc.AddReview(ctx, "user-1", input)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	// Only the requester may review.
	_, err = svc.AddReview(ctx, "pandit-1", validReview())
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))

	// The booking must be completed first.
	input = validReview()
	input.BookingID = "booking-open"
	_, err = svc.AddReview(ctx, "user-1", input)
	assert.Equal(t, utils.KindInvalidState, utils.KindOf(err))

	// The reviewed pandit must have been selected for the booking.
	input = validReview()
	input.PanditID = "user-1"
	_, err = svc.AddReview(ctx, "user-1", input)
	assert.Equal(t, utils.KindInvalidState, utils.KindOf(err))
}

func TestAddReviewOncePerBooking(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddReview(ctx, "user-1", validReview())
	require.NoError(t, err)

	_, err = svc.AddReview(ctx, "user-1", validReview())
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))
}

func TestAverageRatingZeroReviews(t *testing.T) {
	svc, _, _ := newTestService()

	summary, err := svc.AverageRating(context.Background(), "pandit-1")
	require.NoError(t, err)
	assert.Zero(t, summary.AverageRating)
	assert.Zero(t, summary.TotalReviews)
}

func TestTopPanditsRanking(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	seed := []struct {
		panditID string
		ratings  []int
	}{
		{"pandit-a", []int{5, 5, 4}},
		{"pandit-b", []int{5, 5}},
		{"pandit-c", []int{3}},
	}
	for _, s := range seed {
		for i, rating := range s.ratings {
			err := repo.Create(ctx, &models.Review{
				ID:        s.panditID + "-r" + string(rune('0'+i)),
				UserID:    "user-1",
				PanditID:  s.panditID,
				BookingID: s.panditID + "-b" + string(rune('0'+i)),
				Rating:    rating,
			})
			require.NoError(t, err)
		}
	}

	ranked, err := svc.TopPandits(ctx, 2)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	// pandit-b has the perfect average; pandit-a outranks pandit-c.
	assert.Equal(t, "pandit-b", ranked[0].PanditID)
	assert.Equal(t, "pandit-a", ranked[1].PanditID)
}
