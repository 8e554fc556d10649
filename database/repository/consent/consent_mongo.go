package consentRepo

import (
	"context"
	"fmt"
	"time"

	"voltpath/database"
	"voltpath/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoConsentRepo implements ConsentRepository using MongoDB.
type MongoConsentRepo struct {
	coll *mongo.Collection
}

// NewMongoConsentRepo creates a new instance of ConsentRepository using MongoDB.
func NewMongoConsentRepo() ConsentRepository {
	coll := database.MongoClient.Database("voltpath").Collection("consents")
	repo := &MongoConsentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoConsentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "acceptedAt", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Insert stores a new consent record.
func (r *MongoConsentRepo) Insert(record *models.ConsentRecord) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to insert consent record: %w", err)
	}
	return nil
}
