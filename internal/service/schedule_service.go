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
	ErrClassNotFound       = errors.New("class not found")
	ErrClassPayloadInvalid = errors.New("className and trainer are required")
	ErrSlotNotFound        = errors.New("slot not found")
)

// Listing defaults. The storefront shows six classes per page and six
// featured cards.
const (
	DefaultPageLimit     = 6
	FeaturedClassesLimit = 6
)

// ScheduleService owns classes and bookable slots.
type ScheduleService interface {
	CreateClass(ctx context.Context, class *domain.Class) (*domain.Class, error)
	ListClasses(ctx context.Context, page, limit int) ([]domain.Class, int, error)
	ListAllClasses(ctx context.Context) ([]domain.Class, error)
	SearchClasses(ctx context.Context, query string, page, limit int) ([]domain.Class, int, error)
	FeaturedClasses(ctx context.Context) ([]domain.Class, error)
	AssignTrainer(ctx context.Context, classID string, update *domain.Class, assignment domain.TrainerAssignment) error
	IncrementBookingCount(ctx context.Context, classID string) error

	CreateSlot(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
	ListSlots(ctx context.Context) ([]domain.Slot, error)
	SlotByTrainer(ctx context.Context, trainerID string) (*domain.Slot, error)
	SlotsByEmail(ctx context.Context, email string) ([]domain.Slot, error)
	BookSlot(ctx context.Context, trainerID string, customer domain.CustomerInfo) error
	DeleteSlot(ctx context.Context, slotID string) error
}

// scheduleService implements the ScheduleService interface.
type scheduleService struct {
	classRepo repository.ClassRepository
	slotRepo  repository.SlotRepository
}

// NewScheduleService creates a new instance of scheduleService.
func NewScheduleService(classRepo repository.ClassRepository, slotRepo repository.SlotRepository) ScheduleService {
	return &scheduleService{
		classRepo: classRepo,
		slotRepo:  slotRepo,
	}
}

// CreateClass inserts a new class.
func (s *scheduleService) CreateClass(ctx context.Context, class *domain.Class) (*domain.Class, error) {
	if class.ClassName == "" {
		return nil, errors.New("className is required")
	}
	class.CreatedAt = time.Now()

	classID, err := s.classRepo.Create(ctx, class)
	if err != nil {
		return nil, err
	}
	class.ID = classID
	return class, nil
}

// normalizePaging clamps page/limit to sane values.
func normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	return page, limit
}

// totalPages is the page count for a listing: ceil(total/limit).
func totalPages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// ListClasses returns one page of classes plus the total page count.
func (s *scheduleService) ListClasses(ctx context.Context, page, limit int) ([]domain.Class, int, error) {
	page, limit = normalizePaging(page, limit)
	classes, total, err := s.classRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return classes, totalPages(total, limit), nil
}

// ListAllClasses returns every class without pagination.
func (s *scheduleService) ListAllClasses(ctx context.Context) ([]domain.Class, error) {
	return s.classRepo.ListAll(ctx)
}

// SearchClasses filters classes by a case-insensitive name match, paginated.
func (s *scheduleService) SearchClasses(ctx context.Context, query string, page, limit int) ([]domain.Class, int, error) {
	page, limit = normalizePaging(page, limit)
	classes, total, err := s.classRepo.Search(ctx, query, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return classes, totalPages(total, limit), nil
}

// FeaturedClasses returns the most-booked classes for the landing page.
func (s *scheduleService) FeaturedClasses(ctx context.Context) ([]domain.Class, error) {
	return s.classRepo.Featured(ctx, FeaturedClassesLimit)
}

// AssignTrainer merges a trainer assignment into the class's trainer set.
// Assignments are deduplicated by value; re-assigning the same trainer is a
// no-op on the set.
func (s *scheduleService) AssignTrainer(ctx context.Context, classID string, update *domain.Class, assignment domain.TrainerAssignment) error {
	id, err := primitive.ObjectIDFromHex(classID)
	if err != nil {
		return ErrInvalidObjectID
	}
	if update.ClassName == "" || assignment.TrainerID == "" {
		return ErrClassPayloadInvalid
	}

	err = s.classRepo.AssignTrainer(ctx, id, update, assignment)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrClassNotFound
	}
	return err
}

// IncrementBookingCount bumps the class's booking counter. The counter is a
// standalone metric; it is not reconciled against slot customer lists.
func (s *scheduleService) IncrementBookingCount(ctx context.Context, classID string) error {
	id, err := primitive.ObjectIDFromHex(classID)
	if err != nil {
		return ErrInvalidObjectID
	}
	err = s.classRepo.IncrementBookingCount(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrClassNotFound
	}
	return err
}

// CreateSlot inserts a slot as submitted by the trainer.
func (s *scheduleService) CreateSlot(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	if slot.TrainerID == "" || slot.TrainerEmail == "" {
		return nil, errors.New("trainerId and trainerEmail are required")
	}
	slot.CreatedAt = time.Now()

	slotID, err := s.slotRepo.Create(ctx, slot)
	if err != nil {
		return nil, err
	}
	slot.ID = slotID
	return slot, nil
}

// ListSlots returns every slot.
func (s *scheduleService) ListSlots(ctx context.Context) ([]domain.Slot, error) {
	return s.slotRepo.List(ctx)
}

// SlotByTrainer returns the trainer's slot.
func (s *scheduleService) SlotByTrainer(ctx context.Context, trainerID string) (*domain.Slot, error) {
	slot, err := s.slotRepo.GetByTrainerID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return slot, nil
}

// SlotsByEmail returns the slots a trainer owns.
func (s *scheduleService) SlotsByEmail(ctx context.Context, email string) ([]domain.Slot, error) {
	return s.slotRepo.ListByEmail(ctx, email)
}

// BookSlot appends the customer to the slot's customer list with a single
// atomic array push; concurrent bookings on the same slot all land. There is
// no capacity check against maxParticipants.
func (s *scheduleService) BookSlot(ctx context.Context, trainerID string, customer domain.CustomerInfo) error {
	if customer.Name == "" || customer.Email == "" {
		return errors.New("customer name and email are required")
	}
	if customer.BookedAt == "" {
		customer.BookedAt = time.Now().Format(time.RFC3339)
	}

	err := s.slotRepo.AppendCustomer(ctx, trainerID, customer)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSlotNotFound
	}
	return err
}

// DeleteSlot removes a slot.
func (s *scheduleService) DeleteSlot(ctx context.Context, slotID string) error {
	id, err := primitive.ObjectIDFromHex(slotID)
	if err != nil {
		return ErrInvalidObjectID
	}
	err = s.slotRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrDeleteFailed) {
		return ErrSlotNotFound
	}
	return err
}
