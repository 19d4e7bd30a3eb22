package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/fitnesshub/fitnesshub-api/internal/domain"
	"github.com/fitnesshub/fitnesshub-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const subscriberCollectionName = "subscribers"

// mongoSubscriberRepository implements repository.SubscriberRepository using
// MongoDB.
type mongoSubscriberRepository struct {
	collection *mongo.Collection
}

// NewMongoSubscriberRepository creates a new subscriber repository.
func NewMongoSubscriberRepository(db *mongo.Database) repository.SubscriberRepository {
	return &mongoSubscriberRepository{
		collection: db.Collection(subscriberCollectionName),
	}
}

// Create inserts a subscriber; a duplicate email maps to ErrConflict.
func (r *mongoSubscriberRepository) Create(ctx context.Context, sub *domain.Subscriber) (primitive.ObjectID, error) {
	if sub.Name == "" || sub.Email == "" {
		return primitive.NilObjectID, errors.New("subscriber name and email are required")
	}

	sub.ID = primitive.NewObjectID()
	sub.SubscribedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, sub)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrConflict
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByEmail retrieves a subscriber by email.
func (r *mongoSubscriberRepository) GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error) {
	var sub domain.Subscriber
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&sub)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// EnsureSubscriberIndexes creates the unique email index for subscribers.
func EnsureSubscriberIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
