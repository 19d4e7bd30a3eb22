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

const postCollectionName = "postsForum"

// mongoForumPostRepository implements repository.ForumPostRepository using
// MongoDB.
type mongoForumPostRepository struct {
	collection *mongo.Collection
}

// NewMongoForumPostRepository creates a new instance of
// mongoForumPostRepository.
func NewMongoForumPostRepository(db *mongo.Database) repository.ForumPostRepository {
	return &mongoForumPostRepository{
		collection: db.Collection(postCollectionName),
	}
}

// Create inserts a new forum post.
func (r *mongoForumPostRepository) Create(ctx context.Context, post *domain.ForumPost) (primitive.ObjectID, error) {
	if post.Title == "" || post.Content == "" {
		return primitive.NilObjectID, errors.New("post title and content are required")
	}

	post.ID = primitive.NewObjectID()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, post)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// List retrieves one page of posts plus the total post count.
func (r *mongoForumPostRepository) List(ctx context.Context, page, limit int) ([]domain.ForumPost, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 6
	}
	skip := int64((page - 1) * limit)

	opts := options.Find().SetSkip(skip).SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var posts []domain.ForumPost
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Latest retrieves the most recent posts, newest first.
func (r *mongoForumPostRepository) Latest(ctx context.Context, limit int) ([]domain.ForumPost, error) {
	if limit < 1 {
		limit = 6
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []domain.ForumPost
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetByID retrieves a post by its ObjectID.
func (r *mongoForumPostRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ForumPost, error) {
	var post domain.ForumPost
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// IncrementVote atomically bumps the named counter and returns the updated
// post with fresh totals.
func (r *mongoForumPostRepository) IncrementVote(ctx context.Context, postID primitive.ObjectID, vote domain.VoteType) (*domain.ForumPost, error) {
	field := "downvotes"
	if vote == domain.VoteUp {
		field = "upvotes"
	}

	update := bson.M{"$inc": bson.M{field: 1}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post domain.ForumPost
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": postID}, update, opts).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}
