package service

import (
	"context"
	"errors"
	"testing"

	"github.com/fitnesshub/fitnesshub-api/internal/domain"
)

type lifecycleFixture struct {
	svc      TrainerService
	users    *fakeUserRepo
	apps     *fakeApplicationRepo
	approved *fakeApprovedRepo
	rejected *fakeRejectedRepo
}

func newLifecycleFixture() *lifecycleFixture {
	users := newFakeUserRepo()
	apps := newFakeApplicationRepo()
	approved := newFakeApprovedRepo()
	rejected := &fakeRejectedRepo{}
	return &lifecycleFixture{
		svc:      NewTrainerService(apps, approved, rejected, users, noopTxnRunner{}),
		users:    users,
		apps:     apps,
		approved: approved,
		rejected: rejected,
	}
}

func (fx *lifecycleFixture) seedApplicant(t *testing.T, email string) *domain.TrainerApplication {
	t.Helper()
	ctx := context.Background()
	if _, err := fx.users.Create(ctx, &domain.User{Name: "Applicant", Email: email, Role: domain.RoleUser}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	app, err := fx.svc.SubmitApplication(ctx, &domain.TrainerApplication{Name: "Applicant", Email: email})
	if err != nil {
		t.Fatalf("submit application: %v", err)
	}
	return app
}

func TestSubmitApplicationStartsPending(t *testing.T) {
	fx := newLifecycleFixture()
	app := fx.seedApplicant(t, "new@trainer.io")

	if app.Status != domain.ApplicationPending {
		t.Errorf("status = %q, want %q", app.Status, domain.ApplicationPending)
	}
	if app.ID.IsZero() {
		t.Error("application id not assigned")
	}

	// Repeated submissions are allowed and each create a new pending record.
	if _, err := fx.svc.SubmitApplication(context.Background(), &domain.TrainerApplication{Name: "Applicant", Email: "new@trainer.io"}); err != nil {
		t.Fatalf("second submission: %v", err)
	}
	pending, err := fx.svc.ListPending(context.Background())
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("pending count = %d, want 2", len(pending))
	}
}

func TestApprovePromotesApplication(t *testing.T) {
	fx := newLifecycleFixture()
	ctx := context.Background()
	app := fx.seedApplicant(t, "pending@trainer.io")

	approved, err := fx.svc.Approve(ctx, app.ID.Hex())
	if err != nil {
		t.Fatalf("approve: %v", err)
	}

	if approved.OriginalApplicationID != app.ID {
		t.Errorf("originalApplicationId = %s, want %s", approved.OriginalApplicationID.Hex(), app.ID.Hex())
	}
	if approved.Status != domain.ApprovedTrainerStatus {
		t.Errorf("approved status = %q, want %q", approved.Status, domain.ApprovedTrainerStatus)
	}

	// Exactly one approved record.
	all, err := fx.approved.List(ctx)
	if err != nil {
		t.Fatalf("list approved: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("approved records = %d, want 1", len(all))
	}

	// Application carries the back-reference and the new status.
	stored, err := fx.apps.GetByID(ctx, app.ID)
	if err != nil {
		t.Fatalf("get application: %v", err)
	}
	if stored.Status != domain.ApplicationApproved {
		t.Errorf("application status = %q, want %q", stored.Status, domain.ApplicationApproved)
	}
	if stored.ApprovedTrainerID == nil || *stored.ApprovedTrainerID != approved.ID {
		t.Error("application missing approvedTrainerId back-reference")
	}

	// Account role flipped.
	user, err := fx.users.GetByEmail(ctx, "pending@trainer.io")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.Role != domain.RoleTrainer {
		t.Errorf("user role = %q, want %q", user.Role, domain.RoleTrainer)
	}
}

func TestApproveCompensatesWhenRoleUpdateFails(t *testing.T) {
	fx := newLifecycleFixture()
	ctx := context.Background()
	app := fx.seedApplicant(t, "doomed@trainer.io")
	fx.users.failUpdateRole = true

	if _, err := fx.svc.Approve(ctx, app.ID.Hex()); err == nil {
		t.Fatal("approve succeeded despite role update failure")
	}

	// The just-inserted approved record must be compensated away.
	all, _ := fx.approved.List(ctx)
	if len(all) != 0 {
		t.Errorf("approved records after failed approve = %d, want 0", len(all))
	}
	stored, _ := fx.apps.GetByID(ctx, app.ID)
	if stored.Status != domain.ApplicationPending {
		t.Errorf("application status = %q, want pending", stored.Status)
	}
}

func TestApproveCompensatesWhenStatusUpdateFails(t *testing.T) {
	fx := newLifecycleFixture()
	ctx := context.Background()
	app := fx.seedApplicant(t, "half@trainer.io")
	fx.apps.failMarkApproved = true

	if _, err := fx.svc.Approve(ctx, app.ID.Hex()); err == nil {
		t.Fatal("approve succeeded despite status update failure")
	}

	all, _ := fx.approved.List(ctx)
	if len(all) != 0 {
		t.Errorf("approved records after failed approve = %d, want 0", len(all))
	}
	user, _ := fx.users.GetByEmail(ctx, "half@trainer.io")
	if user.Role != domain.RoleUser {
		t.Errorf("user role = %q, want reverted to user", user.Role)
	}
}

func TestApproveErrors(t *testing.T) {
	fx := newLifecycleFixture()
	ctx := context.Background()

	if _, err := fx.svc.Approve(ctx, "not-a-hex-id"); !errors.Is(err, ErrInvalidObjectID) {
		t.Errorf("invalid id: err = %v, want ErrInvalidObjectID", err)
	}
	if _, err := fx.svc.Approve(ctx, "65a000000000000000000000"); !errors.Is(err, ErrApplicationMissing) {
		t.Errorf("missing application: err = %v, want ErrApplicationMissing", err)
	}
}

func TestRejectNeverLeavesPending(t *testing.T) {
	fx := newLifecycleFixture()
	ctx := context.Background()
	app := fx.seedApplicant(t, "rejected@trainer.io")

	if err := fx.svc.Reject(ctx, app.ID.Hex(), "not enough experience"); err != nil {
		t.Fatalf("reject: %v", err)
	}

	stored, _ := fx.apps.GetByID(ctx, app.ID)
	if stored.Status == domain.ApplicationPending {
		t.Error("application still pending after reject")
	}
	if stored.Status != domain.ApplicationRejected {
		t.Errorf("application status = %q, want %q", stored.Status, domain.ApplicationRejected)
	}
	if stored.RejectionFeedback != "not enough experience" {
		t.Errorf("feedback = %q", stored.RejectionFeedback)
	}

	// Archive always carries a matching entry.
	if len(fx.rejected.entries) != 1 {
		t.Fatalf("archive entries = %d, want 1", len(fx.rejected.entries))
	}
	entry := fx.rejected.entries[0]
	if entry.TrainerID != app.ID || entry.TrainerEmail != app.Email {
		t.Errorf("archive entry = %+v, want trainerId %s email %s", entry, app.ID.Hex(), app.Email)
	}
}

func TestDemoteRestoresUserRole(t *testing.T) {
	fx := newLifecycleFixture()
	ctx := context.Background()
	app := fx.seedApplicant(t, "demoted@trainer.io")

	approved, err := fx.svc.Approve(ctx, app.ID.Hex())
	if err != nil {
		t.Fatalf("approve: %v", err)
	}

	if err := fx.svc.Demote(ctx, approved.ID.Hex()); err != nil {
		t.Fatalf("demote: %v", err)
	}

	user, _ := fx.users.GetByEmail(ctx, "demoted@trainer.io")
	if user.Role != domain.RoleUser {
		t.Errorf("user role = %q, want user", user.Role)
	}
	all, _ := fx.approved.List(ctx)
	if len(all) != 0 {
		t.Errorf("approved records after demote = %d, want 0", len(all))
	}

	if err := fx.svc.Demote(ctx, approved.ID.Hex()); !errors.Is(err, ErrTrainerNotFound) {
		t.Errorf("second demote: err = %v, want ErrTrainerNotFound", err)
	}
}

func TestSelectClass(t *testing.T) {
	fx := newLifecycleFixture()
	ctx := context.Background()
	app := fx.seedApplicant(t, "picker@trainer.io")

	if _, err := fx.svc.Approve(ctx, app.ID.Hex()); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if err := fx.svc.SelectClass(ctx, "picker@trainer.io", "Yoga"); err != nil {
		t.Fatalf("select class: %v", err)
	}
	trainer, err := fx.svc.GetApprovedByEmail(ctx, "picker@trainer.io")
	if err != nil {
		t.Fatalf("get approved: %v", err)
	}
	if trainer.SelectedClass != "Yoga" {
		t.Errorf("selectedClass = %q, want Yoga", trainer.SelectedClass)
	}

	if err := fx.svc.SelectClass(ctx, "nobody@trainer.io", "Yoga"); !errors.Is(err, ErrTrainerNotFound) {
		t.Errorf("select class for unknown trainer: err = %v, want ErrTrainerNotFound", err)
	}
}
