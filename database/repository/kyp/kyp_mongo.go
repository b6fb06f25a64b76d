package kypRepo

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

// MongoKYPRepo implements KYPRepository using MongoDB.
type MongoKYPRepo struct {
	coll *mongo.Collection
}

// NewMongoKYPRepo creates a new instance of KYPRepository using MongoDB.
func NewMongoKYPRepo() KYPRepository {
	coll := database.Collection("kyps")
	repo := &MongoKYPRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

func (r *MongoKYPRepo) ensureIndexes() error {
	ctx, cancel := withTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "panditId", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new document record.
func (r *MongoKYPRepo) Create(ctx context.Context, kyp *models.KYP) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	kyp.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, kyp); err != nil {
		return fmt.Errorf("failed to create KYP record: %w", err)
	}
	return nil
}

// ListByPandit returns all documents uploaded by the pandit.
func (r *MongoKYPRepo) ListByPandit(ctx context.Context, panditID string) ([]models.KYP, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"panditId": panditID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve KYP records: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.KYP
	for cursor.Next(ctx) {
		var d models.KYP
		if err := cursor.Decode(&d); err != nil {
			return nil, fmt.Errorf("failed to decode KYP record: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, nil
}
