package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"panditseva/database"
	"panditseva/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	coll := database.Collection("bookings")
	repo := &MongoBookingRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := withTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "selectedPandits", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new booking record.
func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	if booking.AcceptedPandits == nil {
		booking.AcceptedPandits = []string{}
	}
	if booking.SelectedPandits == nil {
		booking.SelectedPandits = []string{}
	}

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// HasActiveBooking reports whether the user already has a non-cancelled
// booking for the puja.
func (r *MongoBookingRepo) HasActiveBooking(ctx context.Context, userID, pujaID string) (bool, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"userId": userID,
		"pujaId": pujaID,
		"status": bson.M{"$ne": models.BookingStatusCancelled},
	}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check existing booking: %w", err)
	}
	return count > 0, nil
}

// AddAcceptedPandit adds the pandit to acceptedPandits with a guarded
// $addToSet. The filter keeps out selected pandits and closed bookings so a
// late accept cannot corrupt the candidate sets.
func (r *MongoBookingRepo) AddAcceptedPandit(ctx context.Context, bookingID, panditID string) (bool, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":              bookingID,
		"selectedPandits": bson.M{"$ne": panditID},
		"status":          bson.M{"$in": bson.A{models.BookingStatusPending, models.BookingStatusAccepted}},
	}
	update := bson.M{
		"$addToSet": bson.M{"acceptedPandits": panditID},
		"$set":      bson.M{"updatedAt": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to add accepted pandit on booking %s: %w", bookingID, err)
	}
	return result.MatchedCount > 0, nil
}

// SelectPandit applies the accepted-to-selected move as one conditional
// update: $pull and $addToSet together, so both membership changes happen or
// neither does.
func (r *MongoBookingRepo) SelectPandit(ctx context.Context, bookingID, userID, panditID string) (bool, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":              bookingID,
		"userId":          userID,
		"acceptedPandits": panditID,
		"selectedPandits": bson.M{"$ne": panditID},
		"status":          bson.M{"$in": bson.A{models.BookingStatusPending, models.BookingStatusAccepted}},
	}
	update := bson.M{
		"$pull":     bson.M{"acceptedPandits": panditID},
		"$addToSet": bson.M{"selectedPandits": panditID},
		"$inc":      bson.M{"selectionCount": 1},
		"$set": bson.M{
			"status":    models.BookingStatusAccepted,
			"updatedAt": time.Now(),
		},
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to select pandit on booking %s: %w", bookingID, err)
	}
	return result.ModifiedCount > 0, nil
}

// RemoveAcceptedPandit removes the pandit from acceptedPandits unless already
// selected.
func (r *MongoBookingRepo) RemoveAcceptedPandit(ctx context.Context, bookingID, panditID string) (bool, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":              bookingID,
		"acceptedPandits": panditID,
		"selectedPandits": bson.M{"$ne": panditID},
	}
	update := bson.M{
		"$pull": bson.M{"acceptedPandits": panditID},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to remove accepted pandit on booking %s: %w", bookingID, err)
	}
	return result.ModifiedCount > 0, nil
}

// TransitionStatus moves the booking status to "to" when the current status
// is one of "from".
func (r *MongoBookingRepo) TransitionStatus(ctx context.Context, bookingID, to string, from ...string) (bool, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":     bookingID,
		"status": bson.M{"$in": from},
	}
	update := bson.M{
		"$set": bson.M{
			"status":    to,
			"updatedAt": time.Now(),
		},
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to transition booking %s to %s: %w", bookingID, to, err)
	}
	return result.ModifiedCount > 0, nil
}

// Complete marks the booking Completed. Only an Accepted booking qualifies,
// which implies at least one pandit has been selected.
func (r *MongoBookingRepo) Complete(ctx context.Context, bookingID string) (bool, error) {
	return r.TransitionStatus(ctx, bookingID, models.BookingStatusCompleted, models.BookingStatusAccepted)
}

// ListByUser returns the requester's bookings, newest first.
func (r *MongoBookingRepo) ListByUser(ctx context.Context, userID string, page, limit int) ([]models.Booking, int64, error) {
	return r.list(ctx, bson.M{"userId": userID}, page, limit)
}

// ListBySelectedPandit returns bookings the pandit was selected for, newest first.
func (r *MongoBookingRepo) ListBySelectedPandit(ctx context.Context, panditID string, page, limit int) ([]models.Booking, int64, error) {
	return r.list(ctx, bson.M{"selectedPandits": panditID}, page, limit)
}

func (r *MongoBookingRepo) list(ctx context.Context, filter bson.M, page, limit int) ([]models.Booking, int64, error) {
	ctx, cancel := withTimeout(ctx, 10*time.Second)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, 0, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, total, nil
}
