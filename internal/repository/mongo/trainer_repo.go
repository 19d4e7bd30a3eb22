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

const (
	trainerCollectionName  = "trainers"
	rejectedCollectionName = "rejectedTrainers"
)

// mongoTrainerApplicationRepository implements
// repository.TrainerApplicationRepository using MongoDB.
type mongoTrainerApplicationRepository struct {
	collection *mongo.Collection
}

// NewMongoTrainerApplicationRepository creates a new application repository.
func NewMongoTrainerApplicationRepository(db *mongo.Database) repository.TrainerApplicationRepository {
	return &mongoTrainerApplicationRepository{
		collection: db.Collection(trainerCollectionName),
	}
}

// Create inserts a new trainer application with pending status. There is no
// duplicate-application check; repeated submissions from the same identity
// create multiple pending records.
func (r *mongoTrainerApplicationRepository) Create(ctx context.Context, app *domain.TrainerApplication) (primitive.ObjectID, error) {
	if app.Email == "" {
		return primitive.NilObjectID, errors.New("application email is required")
	}

	app.ID = primitive.NewObjectID()
	app.Status = domain.ApplicationPending
	app.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, app)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves an application by its ObjectID.
func (r *mongoTrainerApplicationRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainerApplication, error) {
	var app domain.TrainerApplication
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&app)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// GetByEmail retrieves an application by applicant email, regardless of status.
func (r *mongoTrainerApplicationRepository) GetByEmail(ctx context.Context, email string) (*domain.TrainerApplication, error) {
	var app domain.TrainerApplication
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&app)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// ListByStatus retrieves all applications with the given status.
func (r *mongoTrainerApplicationRepository) ListByStatus(ctx context.Context, status domain.ApplicationStatus) ([]domain.TrainerApplication, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"status": status})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var apps []domain.TrainerApplication
	if err = cursor.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// MarkApproved flips the application status to trainer and records the
// back-reference to the approved trainer document.
func (r *mongoTrainerApplicationRepository) MarkApproved(ctx context.Context, id, approvedTrainerID primitive.ObjectID) error {
	update := bson.M{
		"$set": bson.M{
			"status":            domain.ApplicationApproved,
			"approvedAt":        time.Now().UTC(),
			"approvedTrainerId": approvedTrainerID,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// MarkRejected moves the application to rejected status with feedback attached.
func (r *mongoTrainerApplicationRepository) MarkRejected(ctx context.Context, id primitive.ObjectID, feedback string) error {
	update := bson.M{
		"$set": bson.M{
			"status":            domain.ApplicationRejected,
			"rejectionFeedback": feedback,
			"rejectedAt":        time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// mongoRejectedTrainerRepository implements the append-only rejection archive.
type mongoRejectedTrainerRepository struct {
	collection *mongo.Collection
}

// NewMongoRejectedTrainerRepository creates a new rejection archive repository.
func NewMongoRejectedTrainerRepository(db *mongo.Database) repository.RejectedTrainerRepository {
	return &mongoRejectedTrainerRepository{
		collection: db.Collection(rejectedCollectionName),
	}
}

// Archive appends a rejection entry. Entries are never updated or removed.
func (r *mongoRejectedTrainerRepository) Archive(ctx context.Context, entry *domain.RejectedTrainer) error {
	entry.ID = primitive.NewObjectID()
	if entry.RejectedAt.IsZero() {
		entry.RejectedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// EnsureTrainerIndexes creates indexes for the trainer applications collection.
func EnsureTrainerIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
