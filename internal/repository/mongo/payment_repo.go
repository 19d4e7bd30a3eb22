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

const paymentCollectionName = "payments"

// mongoPaymentRepository implements repository.PaymentRepository using
// MongoDB. The collection is append-only.
type mongoPaymentRepository struct {
	collection *mongo.Collection
}

// NewMongoPaymentRepository creates a new instance of mongoPaymentRepository.
func NewMongoPaymentRepository(db *mongo.Database) repository.PaymentRepository {
	return &mongoPaymentRepository{
		collection: db.Collection(paymentCollectionName),
	}
}

// Create persists a payment record. There is no idempotency key; re-recording
// a confirmed payment inserts a second document.
func (r *mongoPaymentRepository) Create(ctx context.Context, payment *domain.Payment) (primitive.ObjectID, error) {
	if payment.TransactionID == "" || payment.UserEmail == "" {
		return primitive.NilObjectID, errors.New("payment transaction id and user email are required")
	}

	payment.ID = primitive.NewObjectID()
	if payment.PaidAt.IsZero() {
		payment.PaidAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, payment)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// ListByEmail retrieves a user's payment history, most recent first.
func (r *mongoPaymentRepository) ListByEmail(ctx context.Context, email string) ([]domain.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "paidAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userEmail": email}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var payments []domain.Payment
	if err = cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// ListAll retrieves every payment record, most recent first.
func (r *mongoPaymentRepository) ListAll(ctx context.Context) ([]domain.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "paidAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var payments []domain.Payment
	if err = cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// EnsurePaymentIndexes creates indexes for the payments collection.
func EnsurePaymentIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "userEmail", Value: 1},
				{Key: "paidAt", Value: -1},
			},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
