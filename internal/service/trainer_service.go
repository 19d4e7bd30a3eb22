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
	ErrInvalidObjectID    = errors.New("invalid id format")
	ErrApplicationMissing = errors.New("trainer application not found")
	ErrTrainerNotFound    = errors.New("approved trainer not found")
)

// TrainerService orchestrates the trainer membership lifecycle:
// application -> approval/rejection -> demotion, plus class selection.
type TrainerService interface {
	SubmitApplication(ctx context.Context, app *domain.TrainerApplication) (*domain.TrainerApplication, error)
	ListPending(ctx context.Context) ([]domain.TrainerApplication, error)
	GetApplication(ctx context.Context, id string) (*domain.TrainerApplication, error)
	GetApplicationByEmail(ctx context.Context, email string) (*domain.TrainerApplication, error)

	Approve(ctx context.Context, applicationID string) (*domain.ApprovedTrainer, error)
	Reject(ctx context.Context, applicationID, feedback string) error
	Demote(ctx context.Context, approvedTrainerID string) error

	ListApproved(ctx context.Context) ([]domain.ApprovedTrainer, error)
	GetApproved(ctx context.Context, id string) (*domain.ApprovedTrainer, error)
	GetApprovedByEmail(ctx context.Context, email string) (*domain.ApprovedTrainer, error)
	SelectClass(ctx context.Context, email, selectedClass string) error
}

// trainerService implements the TrainerService interface.
type trainerService struct {
	appRepo      repository.TrainerApplicationRepository
	approvedRepo repository.ApprovedTrainerRepository
	rejectedRepo repository.RejectedTrainerRepository
	userRepo     repository.UserRepository
	txn          repository.TxnRunner
}

// NewTrainerService creates a new instance of trainerService.
func NewTrainerService(
	appRepo repository.TrainerApplicationRepository,
	approvedRepo repository.ApprovedTrainerRepository,
	rejectedRepo repository.RejectedTrainerRepository,
	userRepo repository.UserRepository,
	txn repository.TxnRunner,
) TrainerService {
	return &trainerService{
		appRepo:      appRepo,
		approvedRepo: approvedRepo,
		rejectedRepo: rejectedRepo,
		userRepo:     userRepo,
		txn:          txn,
	}
}

// SubmitApplication records a new pending application. Repeated submissions
// from the same email each create their own pending record.
func (s *trainerService) SubmitApplication(ctx context.Context, app *domain.TrainerApplication) (*domain.TrainerApplication, error) {
	if app.Name == "" || app.Email == "" {
		return nil, errors.New("name and email are required")
	}

	app.Status = domain.ApplicationPending
	app.CreatedAt = time.Now()
	app.ApprovedTrainerID = nil
	app.ApprovedAt = nil
	app.RejectionFeedback = ""
	app.RejectedAt = nil

	appID, err := s.appRepo.Create(ctx, app)
	if err != nil {
		return nil, err
	}
	app.ID = appID
	return app, nil
}

// ListPending returns applications still awaiting an admin decision.
func (s *trainerService) ListPending(ctx context.Context) ([]domain.TrainerApplication, error) {
	return s.appRepo.ListByStatus(ctx, domain.ApplicationPending)
}

// GetApplication fetches one application by its hex id.
func (s *trainerService) GetApplication(ctx context.Context, id string) (*domain.TrainerApplication, error) {
	appID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidObjectID
	}
	app, err := s.appRepo.GetByID(ctx, appID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrApplicationMissing
		}
		return nil, err
	}
	return app, nil
}

// GetApplicationByEmail fetches the most recent application for an email.
func (s *trainerService) GetApplicationByEmail(ctx context.Context, email string) (*domain.TrainerApplication, error) {
	app, err := s.appRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrApplicationMissing
		}
		return nil, err
	}
	return app, nil
}

// Approve promotes a pending application: it creates an approved-trainer
// record with a fresh identity, flips the account role to trainer, and stamps
// the application with a back-reference to the new record.
//
// The whole sequence runs inside the transaction runner. On replica sets the
// writes commit or abort together and the compensating deletes below never
// take effect; on standalone deployments the runner degrades to plain
// sequential execution and the compensation is the recovery path.
func (s *trainerService) Approve(ctx context.Context, applicationID string) (*domain.ApprovedTrainer, error) {
	appID, err := primitive.ObjectIDFromHex(applicationID)
	if err != nil {
		return nil, ErrInvalidObjectID
	}

	var approved *domain.ApprovedTrainer
	err = s.txn.Run(ctx, func(ctx context.Context) error {
		app, err := s.appRepo.GetByID(ctx, appID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrApplicationMissing
			}
			return err
		}

		candidate := &domain.ApprovedTrainer{
			OriginalApplicationID: app.ID,
			Name:                  app.Name,
			Email:                 app.Email,
			ProfileImage:          app.ProfileImage,
			Skills:                app.Skills,
			AvailableDays:         app.AvailableDays,
			AvailableTime:         app.AvailableTime,
			Experience:            app.Experience,
			Biography:             app.Biography,
			Status:                domain.ApprovedTrainerStatus,
			ApprovedAt:            time.Now(),
		}

		approvedID, err := s.approvedRepo.Create(ctx, candidate)
		if err != nil {
			return err
		}
		candidate.ID = approvedID

		if err := s.userRepo.UpdateRole(ctx, app.Email, domain.RoleTrainer); err != nil {
			_ = s.approvedRepo.Delete(ctx, approvedID)
			return err
		}

		if err := s.appRepo.MarkApproved(ctx, app.ID, approvedID); err != nil {
			_ = s.approvedRepo.Delete(ctx, approvedID)
			_ = s.userRepo.UpdateRole(ctx, app.Email, domain.RoleUser)
			return err
		}

		approved = candidate
		return nil
	})
	if err != nil {
		return nil, err
	}
	return approved, nil
}

// Reject archives the admin feedback and marks the application rejected.
// This stays a two-write sequence; a crash between the writes can leave an
// archive entry without the matching status update.
func (s *trainerService) Reject(ctx context.Context, applicationID, feedback string) error {
	appID, err := primitive.ObjectIDFromHex(applicationID)
	if err != nil {
		return ErrInvalidObjectID
	}

	app, err := s.appRepo.GetByID(ctx, appID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrApplicationMissing
		}
		return err
	}

	entry := &domain.RejectedTrainer{
		TrainerID:    app.ID,
		TrainerEmail: app.Email,
		Feedback:     feedback,
		RejectedAt:   time.Now(),
	}
	if err := s.rejectedRepo.Archive(ctx, entry); err != nil {
		return err
	}

	return s.appRepo.MarkRejected(ctx, appID, feedback)
}

// Demote removes an approved trainer and returns the account to a plain user.
// History is not reconstructed: no application record is re-inserted.
func (s *trainerService) Demote(ctx context.Context, approvedTrainerID string) error {
	trainerID, err := primitive.ObjectIDFromHex(approvedTrainerID)
	if err != nil {
		return ErrInvalidObjectID
	}

	trainer, err := s.approvedRepo.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTrainerNotFound
		}
		return err
	}

	if err := s.userRepo.UpdateRole(ctx, trainer.Email, domain.RoleUser); err != nil {
		return err
	}

	return s.approvedRepo.Delete(ctx, trainerID)
}

// ListApproved returns every approved trainer.
func (s *trainerService) ListApproved(ctx context.Context) ([]domain.ApprovedTrainer, error) {
	return s.approvedRepo.List(ctx)
}

// GetApproved fetches one approved trainer by its hex id.
func (s *trainerService) GetApproved(ctx context.Context, id string) (*domain.ApprovedTrainer, error) {
	trainerID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidObjectID
	}
	trainer, err := s.approvedRepo.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	return trainer, nil
}

// GetApprovedByEmail fetches one approved trainer by email.
func (s *trainerService) GetApprovedByEmail(ctx context.Context, email string) (*domain.ApprovedTrainer, error) {
	trainer, err := s.approvedRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	return trainer, nil
}

// SelectClass records the class an approved trainer wants to teach.
func (s *trainerService) SelectClass(ctx context.Context, email, selectedClass string) error {
	if selectedClass == "" {
		return errors.New("selected class cannot be empty")
	}
	err := s.approvedRepo.SetSelectedClass(ctx, email, selectedClass)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTrainerNotFound
	}
	return err
}
