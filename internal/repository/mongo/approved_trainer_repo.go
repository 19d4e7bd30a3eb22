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

const approvedTrainerCollectionName = "approvedTrainers"

// mongoApprovedTrainerRepository implements
// repository.ApprovedTrainerRepository using MongoDB.
type mongoApprovedTrainerRepository struct {
	collection *mongo.Collection
}

// NewMongoApprovedTrainerRepository creates a new approved trainer repository.
func NewMongoApprovedTrainerRepository(db *mongo.Database) repository.ApprovedTrainerRepository {
	return &mongoApprovedTrainerRepository{
		collection: db.Collection(approvedTrainerCollectionName),
	}
}

// Create inserts an approved trainer record with a freshly generated identity,
// distinct from the application's id.
func (r *mongoApprovedTrainerRepository) Create(ctx context.Context, trainer *domain.ApprovedTrainer) (primitive.ObjectID, error) {
	if trainer.OriginalApplicationID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("original application id is required")
	}

	trainer.ID = primitive.NewObjectID()
	trainer.Status = domain.ApprovedTrainerStatus
	if trainer.ApprovedAt.IsZero() {
		trainer.ApprovedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, trainer)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves an approved trainer by its ObjectID.
func (r *mongoApprovedTrainerRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ApprovedTrainer, error) {
	var trainer domain.ApprovedTrainer
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&trainer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &trainer, nil
}

// GetByEmail retrieves an approved trainer by email.
func (r *mongoApprovedTrainerRepository) GetByEmail(ctx context.Context, email string) (*domain.ApprovedTrainer, error) {
	var trainer domain.ApprovedTrainer
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&trainer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &trainer, nil
}

// List retrieves all approved trainers.
func (r *mongoApprovedTrainerRepository) List(ctx context.Context) ([]domain.ApprovedTrainer, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var trainers []domain.ApprovedTrainer
	if err = cursor.All(ctx, &trainers); err != nil {
		return nil, err
	}
	return trainers, nil
}

// SetSelectedClass records the trainer's class selection.
func (r *mongoApprovedTrainerRepository) SetSelectedClass(ctx context.Context, email, selectedClass string) error {
	update := bson.M{"$set": bson.M{"selectedClass": selectedClass}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the approved trainer record. Used by demotion; the
// application history is not reconstructed.
func (r *mongoApprovedTrainerRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureApprovedTrainerIndexes creates indexes for the approved trainers
// collection.
func EnsureApprovedTrainerIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "originalApplicationId", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
