package service

import (
	"context"
	"sync"

	"github.com/fitnesshub/fitnesshub-api/internal/domain"
	"github.com/fitnesshub/fitnesshub-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory fakes implementing the repository interfaces. Write paths that
// can run concurrently take the struct mutex, mirroring the atomicity the
// mongo implementations get from single-document updates.

type noopTxnRunner struct{}

func (noopTxnRunner) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// --- users ---

type fakeUserRepo struct {
	mu             sync.Mutex
	users          map[string]*domain.User // keyed by email
	failUpdateRole bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.Email]; ok {
		return primitive.NilObjectID, repository.ErrConflict
	}
	u := *user
	u.ID = primitive.NewObjectID()
	f.users[u.Email] = &u
	return u.ID, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, email string, role domain.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdateRole {
		return repository.ErrUpdateFailed
	}
	u, ok := f.users[email]
	if !ok {
		return repository.ErrNotFound
	}
	u.Role = role
	return nil
}

// --- trainer applications ---

type fakeApplicationRepo struct {
	mu               sync.Mutex
	apps             map[primitive.ObjectID]*domain.TrainerApplication
	failMarkApproved bool
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: map[primitive.ObjectID]*domain.TrainerApplication{}}
}

func (f *fakeApplicationRepo) Create(ctx context.Context, app *domain.TrainerApplication) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := *app
	a.ID = primitive.NewObjectID()
	f.apps[a.ID] = &a
	return a.ID, nil
}

func (f *fakeApplicationRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainerApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.apps[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeApplicationRepo) GetByEmail(ctx context.Context, email string) (*domain.TrainerApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.apps {
		if a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeApplicationRepo) ListByStatus(ctx context.Context, status domain.ApplicationStatus) ([]domain.TrainerApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.TrainerApplication
	for _, a := range f.apps {
		if a.Status == status {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) MarkApproved(ctx context.Context, id, approvedTrainerID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failMarkApproved {
		return repository.ErrUpdateFailed
	}
	a, ok := f.apps[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.Status = domain.ApplicationApproved
	a.ApprovedTrainerID = &approvedTrainerID
	return nil
}

func (f *fakeApplicationRepo) MarkRejected(ctx context.Context, id primitive.ObjectID, feedback string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.apps[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.Status = domain.ApplicationRejected
	a.RejectionFeedback = feedback
	return nil
}

// --- approved trainers ---

type fakeApprovedRepo struct {
	mu       sync.Mutex
	trainers map[primitive.ObjectID]*domain.ApprovedTrainer
}

func newFakeApprovedRepo() *fakeApprovedRepo {
	return &fakeApprovedRepo{trainers: map[primitive.ObjectID]*domain.ApprovedTrainer{}}
}

func (f *fakeApprovedRepo) Create(ctx context.Context, trainer *domain.ApprovedTrainer) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := *trainer
	t.ID = primitive.NewObjectID()
	f.trainers[t.ID] = &t
	return t.ID, nil
}

func (f *fakeApprovedRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ApprovedTrainer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.trainers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeApprovedRepo) GetByEmail(ctx context.Context, email string) (*domain.ApprovedTrainer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.trainers {
		if t.Email == email {
			copied := *t
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeApprovedRepo) List(ctx context.Context) ([]domain.ApprovedTrainer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.ApprovedTrainer, 0, len(f.trainers))
	for _, t := range f.trainers {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeApprovedRepo) SetSelectedClass(ctx context.Context, email, selectedClass string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.trainers {
		if t.Email == email {
			t.SelectedClass = selectedClass
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeApprovedRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.trainers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.trainers, id)
	return nil
}

// --- rejection archive ---

type fakeRejectedRepo struct {
	mu      sync.Mutex
	entries []domain.RejectedTrainer
}

func (f *fakeRejectedRepo) Archive(ctx context.Context, entry *domain.RejectedTrainer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e := *entry
	e.ID = primitive.NewObjectID()
	f.entries = append(f.entries, e)
	return nil
}

// --- classes ---

type fakeClassRepo struct {
	mu      sync.Mutex
	classes []*domain.Class
}

func (f *fakeClassRepo) Create(ctx context.Context, class *domain.Class) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := *class
	c.ID = primitive.NewObjectID()
	f.classes = append(f.classes, &c)
	return c.ID, nil
}

func (f *fakeClassRepo) List(ctx context.Context, page, limit int) ([]domain.Class, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := int64(len(f.classes))
	start := (page - 1) * limit
	if start >= len(f.classes) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(f.classes) {
		end = len(f.classes)
	}
	out := make([]domain.Class, 0, end-start)
	for _, c := range f.classes[start:end] {
		out = append(out, *c)
	}
	return out, total, nil
}

func (f *fakeClassRepo) ListAll(ctx context.Context) ([]domain.Class, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Class, 0, len(f.classes))
	for _, c := range f.classes {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeClassRepo) Search(ctx context.Context, query string, page, limit int) ([]domain.Class, int64, error) {
	return f.List(ctx, page, limit)
}

func (f *fakeClassRepo) Featured(ctx context.Context, limit int) ([]domain.Class, error) {
	out, _, err := f.List(ctx, 1, limit)
	return out, err
}

func (f *fakeClassRepo) AssignTrainer(ctx context.Context, classID primitive.ObjectID, update *domain.Class, assignment domain.TrainerAssignment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.classes {
		if c.ID == classID {
			for _, t := range c.Trainer {
				if t == assignment {
					return nil
				}
			}
			c.Trainer = append(c.Trainer, assignment)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeClassRepo) IncrementBookingCount(ctx context.Context, classID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.classes {
		if c.ID == classID {
			c.BookingCount++
			return nil
		}
	}
	return repository.ErrNotFound
}

// --- slots ---

type fakeSlotRepo struct {
	mu    sync.Mutex
	slots map[string]*domain.Slot // keyed by trainerId
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: map[string]*domain.Slot{}}
}

func (f *fakeSlotRepo) Create(ctx context.Context, slot *domain.Slot) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := *slot
	s.ID = primitive.NewObjectID()
	f.slots[s.TrainerID] = &s
	return s.ID, nil
}

func (f *fakeSlotRepo) List(ctx context.Context) ([]domain.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Slot, 0, len(f.slots))
	for _, s := range f.slots {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSlotRepo) GetByTrainerID(ctx context.Context, trainerID string) (*domain.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[trainerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *s
	copied.Customers = append([]domain.CustomerInfo(nil), s.Customers...)
	return &copied, nil
}

func (f *fakeSlotRepo) ListByEmail(ctx context.Context, email string) ([]domain.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Slot
	for _, s := range f.slots {
		if s.TrainerEmail == email {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) AppendCustomer(ctx context.Context, trainerID string, customer domain.CustomerInfo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[trainerID]
	if !ok {
		return repository.ErrNotFound
	}
	s.Customers = append(s.Customers, customer)
	return nil
}

func (f *fakeSlotRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for trainerID, s := range f.slots {
		if s.ID == id {
			delete(f.slots, trainerID)
			return nil
		}
	}
	return repository.ErrNotFound
}

// --- forum posts ---

type fakePostRepo struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]*domain.ForumPost
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[primitive.ObjectID]*domain.ForumPost{}}
}

func (f *fakePostRepo) Create(ctx context.Context, post *domain.ForumPost) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := *post
	p.ID = primitive.NewObjectID()
	f.posts[p.ID] = &p
	return p.ID, nil
}

func (f *fakePostRepo) List(ctx context.Context, page, limit int) ([]domain.ForumPost, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.ForumPost, 0, len(f.posts))
	for _, p := range f.posts {
		out = append(out, *p)
	}
	return out, int64(len(f.posts)), nil
}

func (f *fakePostRepo) Latest(ctx context.Context, limit int) ([]domain.ForumPost, error) {
	out, _, err := f.List(ctx, 1, limit)
	return out, err
}

func (f *fakePostRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ForumPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakePostRepo) IncrementVote(ctx context.Context, postID primitive.ObjectID, vote domain.VoteType) (*domain.ForumPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[postID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if vote == domain.VoteUp {
		p.Upvotes++
	} else {
		p.Downvotes++
	}
	copied := *p
	return &copied, nil
}

// --- reviews ---

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*domain.Review // keyed by trainerId+"|"+userEmail
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[string]*domain.Review{}}
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *domain.Review) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := review.TrainerID + "|" + review.UserEmail
	if _, ok := f.reviews[key]; ok {
		return primitive.NilObjectID, repository.ErrConflict
	}
	r := *review
	r.ID = primitive.NewObjectID()
	f.reviews[key] = &r
	return r.ID, nil
}

func (f *fakeReviewRepo) ExistsForPair(ctx context.Context, trainerID, userEmail string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.reviews[trainerID+"|"+userEmail]
	return ok, nil
}

func (f *fakeReviewRepo) ListByTrainer(ctx context.Context, trainerID string) ([]domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Review
	for _, r := range f.reviews {
		if r.TrainerID == trainerID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) ListActive(ctx context.Context) ([]domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Review
	for _, r := range f.reviews {
		if r.Status == domain.ReviewStatusActive {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reviews)
}

// --- payments ---

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments []domain.Payment
}

func (f *fakePaymentRepo) Create(ctx context.Context, payment *domain.Payment) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := *payment
	p.ID = primitive.NewObjectID()
	f.payments = append(f.payments, p)
	return p.ID, nil
}

func (f *fakePaymentRepo) ListByEmail(ctx context.Context, email string) ([]domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Payment
	for _, p := range f.payments {
		if p.UserEmail == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) ListAll(ctx context.Context) ([]domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Payment(nil), f.payments...), nil
}

// --- subscribers ---

type fakeSubscriberRepo struct {
	mu   sync.Mutex
	subs map[string]*domain.Subscriber
}

func newFakeSubscriberRepo() *fakeSubscriberRepo {
	return &fakeSubscriberRepo{subs: map[string]*domain.Subscriber{}}
}

func (f *fakeSubscriberRepo) Create(ctx context.Context, sub *domain.Subscriber) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.subs[sub.Email]; ok {
		return primitive.NilObjectID, repository.ErrConflict
	}
	s := *sub
	s.ID = primitive.NewObjectID()
	f.subs[s.Email] = &s
	return s.ID, nil
}

func (f *fakeSubscriberRepo) GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.subs[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

// --- payment gateway ---

type fakeGateway struct {
	mu         sync.Mutex
	calls      int
	lastAmount int64
	secret     string
	err        error
}

func (f *fakeGateway) CreateIntent(ctx context.Context, amountCents int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastAmount = amountCents
	if f.err != nil {
		return "", f.err
	}
	if f.secret == "" {
		return "pi_test_secret", nil
	}
	return f.secret, nil
}
