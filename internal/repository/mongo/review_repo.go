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

const reviewCollectionName = "reviews"

// mongoReviewRepository implements repository.ReviewRepository using MongoDB.
type mongoReviewRepository struct {
	collection *mongo.Collection
}

// NewMongoReviewRepository creates a new instance of mongoReviewRepository.
func NewMongoReviewRepository(db *mongo.Database) repository.ReviewRepository {
	return &mongoReviewRepository{
		collection: db.Collection(reviewCollectionName),
	}
}

// Create inserts a review. The unique (trainerId, userEmail) index is the
// authoritative guard against duplicate reviews; a duplicate-key error maps
// to ErrConflict.
func (r *mongoReviewRepository) Create(ctx context.Context, review *domain.Review) (primitive.ObjectID, error) {
	if review.TrainerID == "" || review.UserEmail == "" {
		return primitive.NilObjectID, errors.New("review trainer id and user email are required")
	}

	review.ID = primitive.NewObjectID()
	review.Status = domain.ReviewStatusActive
	now := time.Now().UTC()
	review.CreatedAt = now
	review.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, review)
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

// ExistsForPair reports whether the user has already reviewed the trainer.
// Kept as a fast path; the unique index closes the check-then-insert window.
func (r *mongoReviewRepository) ExistsForPair(ctx context.Context, trainerID, userEmail string) (bool, error) {
	filter := bson.M{"trainerId": trainerID, "userEmail": userEmail}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByTrainer retrieves all reviews for a trainer, for average computation.
func (r *mongoReviewRepository) ListByTrainer(ctx context.Context, trainerID string) ([]domain.Review, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"trainerId": trainerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []domain.Review
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListActive retrieves all active reviews, newest first.
func (r *mongoReviewRepository) ListActive(ctx context.Context) ([]domain.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"status": domain.ReviewStatusActive}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []domain.Review
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// EnsureReviewIndexes creates indexes for the reviews collection, including
// the unique compound key that enforces one review per (trainer, user) pair.
func EnsureReviewIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "trainerId", Value: 1},
				{Key: "userEmail", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
