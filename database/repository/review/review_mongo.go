package reviewRepo

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

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo creates a new instance of ReviewRepository using MongoDB.
func NewMongoReviewRepo() ReviewRepository {
	coll := database.Collection("reviews")
	repo := &MongoReviewRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

func (r *MongoReviewRepo) ensureIndexes() error {
	ctx, cancel := withTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "panditId", Value: 1}}},
		{Keys: bson.D{{Key: "bookingId", Value: 1}, {Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new review.
func (r *MongoReviewRepo) Create(ctx context.Context, review *models.Review) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	review.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// GetByID retrieves a review by its unique ID.
func (r *MongoReviewRepo) GetByID(ctx context.Context, id string) (*models.Review, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	var review models.Review
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&review); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch review with id %s: %w", id, err)
	}
	return &review, nil
}

// GetByBookingAndUser retrieves the review a user left for a booking.
func (r *MongoReviewRepo) GetByBookingAndUser(ctx context.Context, bookingID, userID string) (*models.Review, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	var review models.Review
	filter := bson.M{"bookingId": bookingID, "userId": userID}
	if err := r.coll.FindOne(ctx, filter).Decode(&review); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch review for booking %s: %w", bookingID, err)
	}
	return &review, nil
}

// ListByPandit returns a pandit's reviews, newest first.
func (r *MongoReviewRepo) ListByPandit(ctx context.Context, panditID string, page, limit int) ([]models.Review, int64, error) {
	ctx, cancel := withTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"panditId": panditID}
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	for cursor.Next(ctx) {
		var rev models.Review
		if err := cursor.Decode(&rev); err != nil {
			return nil, 0, fmt.Errorf("failed to decode review: %w", err)
		}
		reviews = append(reviews, rev)
	}
	return reviews, total, nil
}

// AverageForPandit aggregates the pandit's reviews with $group.
func (r *MongoReviewRepo) AverageForPandit(ctx context.Context, panditID string) (models.RatingSummary, error) {
	ctx, cancel := withTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"panditId": panditID}}},
		{{Key: "$group", Value: bson.M{
			"_id":           "$panditId",
			"averageRating": bson.M{"$avg": "$rating"},
			"totalReviews":  bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return models.RatingSummary{}, fmt.Errorf("failed to aggregate reviews: %w", err)
	}
	defer cursor.Close(ctx)

	if cursor.Next(ctx) {
		var summary models.RatingSummary
		if err := cursor.Decode(&summary); err != nil {
			return models.RatingSummary{}, fmt.Errorf("failed to decode rating summary: %w", err)
		}
		return summary, nil
	}
	// No reviews is a valid result, not an error.
	return models.RatingSummary{AverageRating: 0, TotalReviews: 0}, nil
}

// TopPandits ranks pandits by average rating descending, ties broken by
// review count descending.
func (r *MongoReviewRepo) TopPandits(ctx context.Context, n int) ([]models.PanditRating, error) {
	ctx, cancel := withTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":           "$panditId",
			"averageRating": bson.M{"$avg": "$rating"},
			"totalReviews":  bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "averageRating", Value: -1},
			{Key: "totalReviews", Value: -1},
		}}},
		{{Key: "$limit", Value: n}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to rank pandits: %w", err)
	}
	defer cursor.Close(ctx)

	var rankings []models.PanditRating
	for cursor.Next(ctx) {
		var row models.PanditRating
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode pandit rating: %w", err)
		}
		rankings = append(rankings, row)
	}
	return rankings, nil
}
