package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/fitnesshub/fitnesshub-api/internal/domain"
	"github.com/fitnesshub/fitnesshub-api/internal/payments"
	"github.com/fitnesshub/fitnesshub-api/internal/repository"
)

// --- Error Definitions ---
var (
	ErrInvalidPrice      = errors.New("invalid price amount")
	ErrPaymentGateway    = errors.New("payment gateway error")
	ErrPaymentIncomplete = errors.New("transactionId and userEmail are required")
)

// PaymentService mints payment intents with the external gateway and keeps
// the append-only payment ledger.
type PaymentService interface {
	CreateIntent(ctx context.Context, price float64) (string, error)
	RecordPayment(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	HistoryByEmail(ctx context.Context, email string) ([]domain.Payment, error)
	ListAll(ctx context.Context) ([]domain.Payment, error)
}

// paymentService implements the PaymentService interface.
type paymentService struct {
	paymentRepo repository.PaymentRepository
	gateway     payments.Gateway
}

// NewPaymentService creates a new instance of paymentService.
func NewPaymentService(paymentRepo repository.PaymentRepository, gateway payments.Gateway) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		gateway:     gateway,
	}
}

// CreateIntent asks the gateway for a client secret covering the price.
// Prices arrive in whole currency units and are charged in cents.
func (s *paymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return "", ErrInvalidPrice
	}

	amountCents := int64(math.Round(price * 100))
	clientSecret, err := s.gateway.CreateIntent(ctx, amountCents)
	if err != nil {
		return "", ErrPaymentGateway
	}
	return clientSecret, nil
}

// RecordPayment persists a confirmed payment verbatim. There is no
// idempotency key: re-submitting the same confirmation creates a duplicate
// ledger entry.
func (s *paymentService) RecordPayment(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	if payment.TransactionID == "" || payment.UserEmail == "" {
		return nil, ErrPaymentIncomplete
	}

	now := time.Now()
	payment.CreatedAt = now
	if payment.PaidAt.IsZero() {
		payment.PaidAt = now
	}

	paymentID, err := s.paymentRepo.Create(ctx, payment)
	if err != nil {
		return nil, err
	}
	payment.ID = paymentID
	return payment, nil
}

// HistoryByEmail returns a user's payments, most recent first.
func (s *paymentService) HistoryByEmail(ctx context.Context, email string) ([]domain.Payment, error) {
	return s.paymentRepo.ListByEmail(ctx, email)
}

// ListAll returns the full payment ledger.
func (s *paymentService) ListAll(ctx context.Context) ([]domain.Payment, error) {
	return s.paymentRepo.ListAll(ctx)
}
