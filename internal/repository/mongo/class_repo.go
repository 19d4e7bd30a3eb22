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

const classCollectionName = "classes"

// mongoClassRepository implements repository.ClassRepository using MongoDB.
type mongoClassRepository struct {
	collection *mongo.Collection
}

// NewMongoClassRepository creates a new instance of mongoClassRepository.
func NewMongoClassRepository(db *mongo.Database) repository.ClassRepository {
	return &mongoClassRepository{
		collection: db.Collection(classCollectionName),
	}
}

// Create inserts a new class.
func (r *mongoClassRepository) Create(ctx context.Context, class *domain.Class) (primitive.ObjectID, error) {
	if class.ClassName == "" {
		return primitive.NilObjectID, errors.New("class name is required")
	}

	class.ID = primitive.NewObjectID()
	class.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, class)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// List retrieves one page of classes plus the total document count.
func (r *mongoClassRepository) List(ctx context.Context, page, limit int) ([]domain.Class, int64, error) {
	return r.findPage(ctx, bson.M{}, page, limit)
}

// ListAll retrieves every class without pagination.
func (r *mongoClassRepository) ListAll(ctx context.Context) ([]domain.Class, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var classes []domain.Class
	if err = cursor.All(ctx, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// Search performs a case-insensitive substring match on className, paginated.
func (r *mongoClassRepository) Search(ctx context.Context, query string, page, limit int) ([]domain.Class, int64, error) {
	filter := bson.M{
		"className": bson.M{"$regex": query, "$options": "i"},
	}
	return r.findPage(ctx, filter, page, limit)
}

// Featured retrieves the most-booked classes, descending by bookingCount.
func (r *mongoClassRepository) Featured(ctx context.Context, limit int) ([]domain.Class, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "bookingCount", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var classes []domain.Class
	if err = cursor.All(ctx, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// AssignTrainer merges the assignment into the class's trainer set.
// $addToSet keeps the list duplicate-free by value.
func (r *mongoClassRepository) AssignTrainer(ctx context.Context, classID primitive.ObjectID, update *domain.Class, assignment domain.TrainerAssignment) error {
	now := time.Now().UTC()
	mongoUpdate := bson.M{
		"$set": bson.M{
			"className":         update.ClassName,
			"details":           update.Details,
			"additionalInfo":    update.AdditionalInfo,
			"image":             update.Image,
			"trainerAssignedAt": now,
			"lastUpdated":       now,
		},
		"$addToSet": bson.M{
			"trainer": assignment,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": classID}, mongoUpdate)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// IncrementBookingCount atomically bumps the class's booking counter. This is
// deliberately independent of slot customer lists; nothing reconciles the two.
func (r *mongoClassRepository) IncrementBookingCount(ctx context.Context, classID primitive.ObjectID) error {
	update := bson.M{"$inc": bson.M{"bookingCount": 1}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": classID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// findPage runs a paged Find plus CountDocuments for the same filter.
func (r *mongoClassRepository) findPage(ctx context.Context, filter bson.M, page, limit int) ([]domain.Class, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 6
	}
	skip := int64((page - 1) * limit)

	opts := options.Find().SetSkip(skip).SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var classes []domain.Class
	if err = cursor.All(ctx, &classes); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return classes, total, nil
}

// EnsureClassIndexes creates indexes for the classes collection.
func EnsureClassIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "bookingCount", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "className", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
