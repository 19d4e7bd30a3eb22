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

const slotCollectionName = "slots"

// mongoSlotRepository implements repository.SlotRepository using MongoDB.
type mongoSlotRepository struct {
	collection *mongo.Collection
}

// NewMongoSlotRepository creates a new instance of mongoSlotRepository.
func NewMongoSlotRepository(db *mongo.Database) repository.SlotRepository {
	return &mongoSlotRepository{
		collection: db.Collection(slotCollectionName),
	}
}

// Create inserts a slot document. Beyond requiring the trainer reference the
// document is stored as submitted; there is no schema validation here.
func (r *mongoSlotRepository) Create(ctx context.Context, slot *domain.Slot) (primitive.ObjectID, error) {
	if slot.TrainerID == "" {
		return primitive.NilObjectID, errors.New("slot trainer id is required")
	}

	slot.ID = primitive.NewObjectID()
	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, slot)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// List retrieves all slots.
func (r *mongoSlotRepository) List(ctx context.Context) ([]domain.Slot, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var slots []domain.Slot
	if err = cursor.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// GetByTrainerID retrieves the slot offered by the given trainer.
func (r *mongoSlotRepository) GetByTrainerID(ctx context.Context, trainerID string) (*domain.Slot, error) {
	var slot domain.Slot
	err := r.collection.FindOne(ctx, bson.M{"trainerId": trainerID}).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &slot, nil
}

// ListByEmail retrieves all slots owned by the trainer with the given email.
func (r *mongoSlotRepository) ListByEmail(ctx context.Context, email string) ([]domain.Slot, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"trainerEmail": email})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var slots []domain.Slot
	if err = cursor.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// AppendCustomer atomically appends a booking to the slot's customer list via
// $push. Concurrent bookings each append; no fetch-then-overwrite, no lost
// updates. Capacity against maxParticipants is still not enforced.
func (r *mongoSlotRepository) AppendCustomer(ctx context.Context, trainerID string, customer domain.CustomerInfo) error {
	update := bson.M{"$push": bson.M{"customers": customer}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"trainerId": trainerID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a slot by id.
func (r *mongoSlotRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureSlotIndexes creates indexes for the slots collection.
func EnsureSlotIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "trainerEmail", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
