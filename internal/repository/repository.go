package repository

import (
	"context"

	"github.com/fitnesshub/fitnesshub-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrConflict     = RepositoryError("conflict: document already exists")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// TxnRunner runs fn inside a multi-document transaction when the deployment
// supports one (replica set / mongos). On standalone servers it falls back to
// running fn without a transaction, so callers keep their compensating writes.
type TxnRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdateRole(ctx context.Context, email string, role domain.Role) error
}

// TrainerApplicationRepository manages pending trainer applications.
type TrainerApplicationRepository interface {
	Create(ctx context.Context, app *domain.TrainerApplication) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainerApplication, error)
	GetByEmail(ctx context.Context, email string) (*domain.TrainerApplication, error)
	ListByStatus(ctx context.Context, status domain.ApplicationStatus) ([]domain.TrainerApplication, error)
	MarkApproved(ctx context.Context, id, approvedTrainerID primitive.ObjectID) error
	MarkRejected(ctx context.Context, id primitive.ObjectID, feedback string) error
}

// ApprovedTrainerRepository manages the records created on approval.
type ApprovedTrainerRepository interface {
	Create(ctx context.Context, trainer *domain.ApprovedTrainer) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ApprovedTrainer, error)
	GetByEmail(ctx context.Context, email string) (*domain.ApprovedTrainer, error)
	List(ctx context.Context) ([]domain.ApprovedTrainer, error)
	SetSelectedClass(ctx context.Context, email, selectedClass string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// RejectedTrainerRepository is the append-only rejection archive.
type RejectedTrainerRepository interface {
	Archive(ctx context.Context, entry *domain.RejectedTrainer) error
}

// ClassRepository defines the interface for interacting with class data.
type ClassRepository interface {
	Create(ctx context.Context, class *domain.Class) (primitive.ObjectID, error)
	List(ctx context.Context, page, limit int) ([]domain.Class, int64, error)
	ListAll(ctx context.Context) ([]domain.Class, error)
	Search(ctx context.Context, query string, page, limit int) ([]domain.Class, int64, error)
	Featured(ctx context.Context, limit int) ([]domain.Class, error)
	AssignTrainer(ctx context.Context, classID primitive.ObjectID, update *domain.Class, assignment domain.TrainerAssignment) error
	IncrementBookingCount(ctx context.Context, classID primitive.ObjectID) error
}

// SlotRepository defines the interface for interacting with slot data.
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.Slot) (primitive.ObjectID, error)
	List(ctx context.Context) ([]domain.Slot, error)
	GetByTrainerID(ctx context.Context, trainerID string) (*domain.Slot, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Slot, error)
	AppendCustomer(ctx context.Context, trainerID string, customer domain.CustomerInfo) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ForumPostRepository defines the interface for interacting with forum posts.
type ForumPostRepository interface {
	Create(ctx context.Context, post *domain.ForumPost) (primitive.ObjectID, error)
	List(ctx context.Context, page, limit int) ([]domain.ForumPost, int64, error)
	Latest(ctx context.Context, limit int) ([]domain.ForumPost, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ForumPost, error)
	IncrementVote(ctx context.Context, postID primitive.ObjectID, vote domain.VoteType) (*domain.ForumPost, error)
}

// ReviewRepository defines the interface for interacting with reviews.
// Create returns ErrConflict when an active review already exists for the
// (trainerId, userEmail) pair; the unique compound index is authoritative.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (primitive.ObjectID, error)
	ExistsForPair(ctx context.Context, trainerID, userEmail string) (bool, error)
	ListByTrainer(ctx context.Context, trainerID string) ([]domain.Review, error)
	ListActive(ctx context.Context) ([]domain.Review, error)
}

// PaymentRepository is the append-only payment record store.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (primitive.ObjectID, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Payment, error)
	ListAll(ctx context.Context) ([]domain.Payment, error)
}

// SubscriberRepository manages newsletter signups.
type SubscriberRepository interface {
	Create(ctx context.Context, sub *domain.Subscriber) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error)
}
