package service

import (
	"context"
	"errors"
	"time"

	"github.com/fitnesshub/fitnesshub-api/internal/domain"
	"github.com/fitnesshub/fitnesshub-api/internal/repository"
)

// --- Error Definitions ---
var (
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
	ErrReviewIncomplete = errors.New("trainerId, userEmail and review are required")
	ErrAlreadyReviewed  = errors.New("you have already reviewed this trainer")
)

// ReviewService owns trainer reviews and their average rating.
type ReviewService interface {
	// SubmitReview stores the review and returns it together with the
	// trainer's recomputed average rating.
	SubmitReview(ctx context.Context, review *domain.Review) (*domain.Review, float64, error)
	ListActive(ctx context.Context) ([]domain.Review, error)
	AverageForTrainer(ctx context.Context, trainerID string) (float64, error)
}

// reviewService implements the ReviewService interface.
type reviewService struct {
	reviewRepo repository.ReviewRepository
}

// NewReviewService creates a new instance of reviewService.
func NewReviewService(reviewRepo repository.ReviewRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo}
}

// SubmitReview validates and stores a review. One active review per
// (trainer, user) pair: the pre-insert check is a fast path only, the unique
// index behind Create is what actually closes the race.
func (s *reviewService) SubmitReview(ctx context.Context, review *domain.Review) (*domain.Review, float64, error) {
	if review.TrainerID == "" || review.UserEmail == "" || review.Review == "" {
		return nil, 0, ErrReviewIncomplete
	}
	if review.Rating < domain.MinRating || review.Rating > domain.MaxRating {
		return nil, 0, ErrRatingOutOfRange
	}

	exists, err := s.reviewRepo.ExistsForPair(ctx, review.TrainerID, review.UserEmail)
	if err != nil {
		return nil, 0, err
	}
	if exists {
		return nil, 0, ErrAlreadyReviewed
	}

	now := time.Now()
	review.Status = domain.ReviewStatusActive
	review.CreatedAt = now
	review.UpdatedAt = now

	reviewID, err := s.reviewRepo.Create(ctx, review)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, 0, ErrAlreadyReviewed
		}
		return nil, 0, err
	}
	review.ID = reviewID

	average, err := s.AverageForTrainer(ctx, review.TrainerID)
	if err != nil {
		// The review is stored; a failed average read should not fail the
		// submission.
		return review, 0, nil
	}
	return review, average, nil
}

// ListActive returns every active review.
func (s *reviewService) ListActive(ctx context.Context) ([]domain.Review, error) {
	return s.reviewRepo.ListActive(ctx)
}

// AverageForTrainer recomputes the trainer's average rating by reading all
// of their reviews. Linear per call; acceptable at current review volumes.
func (s *reviewService) AverageForTrainer(ctx context.Context, trainerID string) (float64, error) {
	reviews, err := s.reviewRepo.ListByTrainer(ctx, trainerID)
	if err != nil {
		return 0, err
	}
	if len(reviews) == 0 {
		return 0, nil
	}

	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews)), nil
}
