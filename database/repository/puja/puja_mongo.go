package pujaRepo

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

// MongoPujaRepo implements PujaRepository using MongoDB.
type MongoPujaRepo struct {
	coll *mongo.Collection
}

// NewMongoPujaRepo creates a new instance of PujaRepository using MongoDB.
func NewMongoPujaRepo() PujaRepository {
	coll := database.Collection("pujas")
	repo := &MongoPujaRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

func (r *MongoPujaRepo) ensureIndexes() error {
	ctx, cancel := withTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new catalog listing.
func (r *MongoPujaRepo) Create(ctx context.Context, puja *models.Puja) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	puja.CreatedAt = now
	puja.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, puja); err != nil {
		return fmt.Errorf("failed to create puja: %w", err)
	}
	return nil
}

// GetByID retrieves a listing by its unique ID.
func (r *MongoPujaRepo) GetByID(ctx context.Context, id string) (*models.Puja, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	var puja models.Puja
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&puja); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch puja with id %s: %w", id, err)
	}
	return &puja, nil
}

// GetAll retrieves the full catalog.
func (r *MongoPujaRepo) GetAll(ctx context.Context) ([]models.Puja, error) {
	ctx, cancel := withTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve pujas: %w", err)
	}
	defer cursor.Close(ctx)

	var pujas []models.Puja
	for cursor.Next(ctx) {
		var p models.Puja
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode puja: %w", err)
		}
		pujas = append(pujas, p)
	}
	return pujas, nil
}

// UpdateSet applies a $set document to a listing.
func (r *MongoPujaRepo) UpdateSet(ctx context.Context, id string, doc map[string]interface{}) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	doc["updatedAt"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": doc})
	if err != nil {
		return fmt.Errorf("failed to update puja with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("puja with id %s not found", id)
	}
	return nil
}

// Delete removes a listing by its ID.
func (r *MongoPujaRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete puja with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("puja with id %s not found", id)
	}
	return nil
}
