package profileRepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"voltpath/database"
	"voltpath/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProfileRepo implements ProfileRepository using MongoDB.
type MongoProfileRepo struct {
	coll *mongo.Collection
}

// NewMongoProfileRepo creates a new instance of ProfileRepository using MongoDB.
func NewMongoProfileRepo() ProfileRepository {
	coll := database.MongoClient.Database("voltpath").Collection("profiles")
	repo := &MongoProfileRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// NormalizeEmail trims surrounding whitespace and lowercases an email so that
// lookups and stored rows agree on a single form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GetByID retrieves a profile by its unique ID.
func (r *MongoProfileRepo) GetByID(id string) (*models.Profile, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var profile models.Profile
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to fetch profile with id %s: %w", id, err)
	}
	return &profile, nil
}

// FindByEmail retrieves a profile by its email address. The lookup is
// case-insensitive via normalization; a missing row is not an error.
func (r *MongoProfileRepo) FindByEmail(email string) (*models.Profile, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var profile models.Profile
	err := r.coll.FindOne(ctx, bson.M{"email": NormalizeEmail(email)}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch profile with email %s: %w", email, err)
	}
	return &profile, nil
}

// Create inserts a new profile document.
func (r *MongoProfileRepo) Create(profile *models.Profile) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	profile.Email = NormalizeEmail(profile.Email)
	profile.CreatedAt = now
	profile.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, profile)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// UpsertOnboarding writes the onboarding outcome onto the profile row. The
// row may not exist yet when the provisioning hook lags account creation, so
// identity fields are set on insert only.
func (r *MongoProfileRepo) UpsertOnboarding(profile *models.Profile) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": profile.ID}
	update := bson.M{
		"$set": bson.M{
			"role":                profile.Role,
			"onboardingCompleted": profile.OnboardingCompleted,
			"updatedAt":           time.Now(),
		},
		"$setOnInsert": bson.M{
			"id":         profile.ID,
			"email":      NormalizeEmail(profile.Email),
			"fullName":   profile.FullName,
			"subscribed": false,
			"createdAt":  time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to apply onboarding to profile %s: %w", profile.ID, err)
	}
	return nil
}
