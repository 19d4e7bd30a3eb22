package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/fitnesshub/fitnesshub-api/internal/domain"
)

func seedClasses(t *testing.T, svc ScheduleService, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if _, err := svc.CreateClass(context.Background(), &domain.Class{ClassName: fmt.Sprintf("Class %02d", i)}); err != nil {
			t.Fatalf("seed class %d: %v", i, err)
		}
	}
}

func TestListClassesPagination(t *testing.T) {
	svc := NewScheduleService(&fakeClassRepo{}, newFakeSlotRepo())
	seedClasses(t, svc, 13)

	tests := []struct {
		name      string
		page      int
		limit     int
		wantLen   int
		wantPages int
	}{
		{"first page", 1, 6, 6, 3},
		{"second page", 2, 6, 6, 3},
		{"last partial page", 3, 6, 1, 3},
		{"past the end", 4, 6, 0, 3},
		{"defaults applied", 0, 0, 6, 3},
		{"exact division", 1, 13, 13, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classes, pages, err := svc.ListClasses(context.Background(), tt.page, tt.limit)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(classes) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(classes), tt.wantLen)
			}
			if pages != tt.wantPages {
				t.Errorf("totalPages = %d, want %d", pages, tt.wantPages)
			}
		})
	}
}

func TestListClassesEmpty(t *testing.T) {
	svc := NewScheduleService(&fakeClassRepo{}, newFakeSlotRepo())
	classes, pages, err := svc.ListClasses(context.Background(), 1, 6)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(classes) != 0 || pages != 0 {
		t.Errorf("len = %d pages = %d, want 0/0", len(classes), pages)
	}
}

func TestAssignTrainerValidation(t *testing.T) {
	classRepo := &fakeClassRepo{}
	svc := NewScheduleService(classRepo, newFakeSlotRepo())
	ctx := context.Background()

	class, err := svc.CreateClass(ctx, &domain.Class{ClassName: "Spin"})
	if err != nil {
		t.Fatalf("create class: %v", err)
	}
	assignment := domain.TrainerAssignment{TrainerID: "t-1", Name: "Jo", Email: "jo@mail.io"}

	if err := svc.AssignTrainer(ctx, "bogus", &domain.Class{ClassName: "Spin"}, assignment); !errors.Is(err, ErrInvalidObjectID) {
		t.Errorf("invalid id: err = %v, want ErrInvalidObjectID", err)
	}
	if err := svc.AssignTrainer(ctx, class.ID.Hex(), &domain.Class{}, assignment); !errors.Is(err, ErrClassPayloadInvalid) {
		t.Errorf("missing className: err = %v, want ErrClassPayloadInvalid", err)
	}
	if err := svc.AssignTrainer(ctx, class.ID.Hex(), &domain.Class{ClassName: "Spin"}, domain.TrainerAssignment{}); !errors.Is(err, ErrClassPayloadInvalid) {
		t.Errorf("missing trainer: err = %v, want ErrClassPayloadInvalid", err)
	}

	if err := svc.AssignTrainer(ctx, class.ID.Hex(), &domain.Class{ClassName: "Spin"}, assignment); err != nil {
		t.Fatalf("assign: %v", err)
	}
	// Assignments are a set: repeating the same one must not duplicate it.
	if err := svc.AssignTrainer(ctx, class.ID.Hex(), &domain.Class{ClassName: "Spin"}, assignment); err != nil {
		t.Fatalf("re-assign: %v", err)
	}
	all, _ := svc.ListAllClasses(ctx)
	if len(all[0].Trainer) != 1 {
		t.Errorf("trainer assignments = %d, want 1", len(all[0].Trainer))
	}
}

func TestIncrementBookingCount(t *testing.T) {
	classRepo := &fakeClassRepo{}
	svc := NewScheduleService(classRepo, newFakeSlotRepo())
	ctx := context.Background()

	class, err := svc.CreateClass(ctx, &domain.Class{ClassName: "HIIT"})
	if err != nil {
		t.Fatalf("create class: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := svc.IncrementBookingCount(ctx, class.ID.Hex()); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}
	all, _ := svc.ListAllClasses(ctx)
	if all[0].BookingCount != 3 {
		t.Errorf("bookingCount = %d, want 3", all[0].BookingCount)
	}

	if err := svc.IncrementBookingCount(ctx, "65a000000000000000000000"); !errors.Is(err, ErrClassNotFound) {
		t.Errorf("unknown class: err = %v, want ErrClassNotFound", err)
	}
}

func TestBookSlot(t *testing.T) {
	slotRepo := newFakeSlotRepo()
	svc := NewScheduleService(&fakeClassRepo{}, slotRepo)
	ctx := context.Background()

	if _, err := svc.CreateSlot(ctx, &domain.Slot{TrainerID: "t-1", TrainerEmail: "t1@mail.io", MaxParticipants: 1}); err != nil {
		t.Fatalf("create slot: %v", err)
	}

	if err := svc.BookSlot(ctx, "t-1", domain.CustomerInfo{Name: "Ann", Email: "ann@mail.io"}); err != nil {
		t.Fatalf("book: %v", err)
	}
	if err := svc.BookSlot(ctx, "nobody", domain.CustomerInfo{Name: "Ann", Email: "ann@mail.io"}); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("unknown trainer: err = %v, want ErrSlotNotFound", err)
	}
	if err := svc.BookSlot(ctx, "t-1", domain.CustomerInfo{}); err == nil {
		t.Error("booking without customer details succeeded")
	}

	// Capacity is intentionally not enforced: a second booking on a
	// one-participant slot still lands.
	if err := svc.BookSlot(ctx, "t-1", domain.CustomerInfo{Name: "Ben", Email: "ben@mail.io"}); err != nil {
		t.Fatalf("overbook: %v", err)
	}
	slot, _ := svc.SlotByTrainer(ctx, "t-1")
	if len(slot.Customers) != 2 {
		t.Errorf("customers = %d, want 2", len(slot.Customers))
	}
	if slot.Customers[0].BookedAt == "" {
		t.Error("bookedAt not stamped")
	}
}

func TestConcurrentSlotBookingsAllLand(t *testing.T) {
	slotRepo := newFakeSlotRepo()
	svc := NewScheduleService(&fakeClassRepo{}, slotRepo)
	ctx := context.Background()

	if _, err := svc.CreateSlot(ctx, &domain.Slot{TrainerID: "t-1", TrainerEmail: "t1@mail.io"}); err != nil {
		t.Fatalf("create slot: %v", err)
	}

	const bookings = 32
	var wg sync.WaitGroup
	var failures int64
	for i := 0; i < bookings; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			customer := domain.CustomerInfo{
				Name:  fmt.Sprintf("Customer %d", i),
				Email: fmt.Sprintf("c%d@mail.io", i),
			}
			if err := svc.BookSlot(ctx, "t-1", customer); err != nil {
				atomic.AddInt64(&failures, 1)
			}
		}(i)
	}
	wg.Wait()

	if failures != 0 {
		t.Fatalf("%d bookings failed", failures)
	}
	slot, err := svc.SlotByTrainer(ctx, "t-1")
	if err != nil {
		t.Fatalf("get slot: %v", err)
	}
	// The append is a single atomic array push, so no booking may be lost.
	if len(slot.Customers) != bookings {
		t.Errorf("customers = %d, want %d (lost updates)", len(slot.Customers), bookings)
	}
}

func TestDeleteSlot(t *testing.T) {
	svc := NewScheduleService(&fakeClassRepo{}, newFakeSlotRepo())
	ctx := context.Background()

	slot, err := svc.CreateSlot(ctx, &domain.Slot{TrainerID: "t-1", TrainerEmail: "t1@mail.io"})
	if err != nil {
		t.Fatalf("create slot: %v", err)
	}

	if err := svc.DeleteSlot(ctx, slot.ID.Hex()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteSlot(ctx, slot.ID.Hex()); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("second delete: err = %v, want ErrSlotNotFound", err)
	}
	if err := svc.DeleteSlot(ctx, "bogus"); !errors.Is(err, ErrInvalidObjectID) {
		t.Errorf("invalid id: err = %v, want ErrInvalidObjectID", err)
	}
}
