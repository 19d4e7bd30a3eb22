package service

import (
	"context"
	"errors"
	"time"

	"github.com/fitnesshub/fitnesshub-api/internal/domain"
	"github.com/fitnesshub/fitnesshub-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPostNotFound   = errors.New("forum post not found")
	ErrInvalidVote    = errors.New("vote type must be upvote or downvote")
	ErrPostIncomplete = errors.New("title, content and author are required")
)

// Default number of posts on the latest-posts strip.
const DefaultLatestPostsLimit = 6

// ForumService owns community posts and their vote counters.
type ForumService interface {
	CreatePost(ctx context.Context, post *domain.ForumPost) (*domain.ForumPost, error)
	ListPosts(ctx context.Context, page, limit int) ([]domain.ForumPost, int, error)
	LatestPosts(ctx context.Context, limit int) ([]domain.ForumPost, error)
	GetPost(ctx context.Context, id string) (*domain.ForumPost, error)
	Vote(ctx context.Context, postID string, vote domain.VoteType) (*domain.ForumPost, error)
}

// forumService implements the ForumService interface.
type forumService struct {
	postRepo repository.ForumPostRepository
}

// NewForumService creates a new instance of forumService.
func NewForumService(postRepo repository.ForumPostRepository) ForumService {
	return &forumService{postRepo: postRepo}
}

// CreatePost inserts a new community post with zeroed vote counters.
func (s *forumService) CreatePost(ctx context.Context, post *domain.ForumPost) (*domain.ForumPost, error) {
	if post.Title == "" || post.Content == "" || post.Author == "" {
		return nil, ErrPostIncomplete
	}
	post.Upvotes = 0
	post.Downvotes = 0
	post.CreatedAt = time.Now()

	postID, err := s.postRepo.Create(ctx, post)
	if err != nil {
		return nil, err
	}
	post.ID = postID
	return post, nil
}

// ListPosts returns one page of posts plus the total page count.
func (s *forumService) ListPosts(ctx context.Context, page, limit int) ([]domain.ForumPost, int, error) {
	page, limit = normalizePaging(page, limit)
	posts, total, err := s.postRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return posts, totalPages(total, limit), nil
}

// LatestPosts returns the newest posts, newest first.
func (s *forumService) LatestPosts(ctx context.Context, limit int) ([]domain.ForumPost, error) {
	if limit < 1 {
		limit = DefaultLatestPostsLimit
	}
	return s.postRepo.Latest(ctx, limit)
}

// GetPost fetches one post by its hex id.
func (s *forumService) GetPost(ctx context.Context, id string) (*domain.ForumPost, error) {
	postID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidObjectID
	}
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// Vote atomically increments the named counter and returns updated totals.
func (s *forumService) Vote(ctx context.Context, postID string, vote domain.VoteType) (*domain.ForumPost, error) {
	id, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, ErrInvalidObjectID
	}
	if vote != domain.VoteUp && vote != domain.VoteDown {
		return nil, ErrInvalidVote
	}

	post, err := s.postRepo.IncrementVote(ctx, id, vote)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}
