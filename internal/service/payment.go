package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/surveymaster/server/internal/models"
	"github.com/surveymaster/server/internal/repository"
)

// IntentCreator abstracts the payment processor. Amount is in minor currency
// units.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount int64) (clientSecret string, err error)
}

type PaymentService struct {
	payments repository.Payments
	intents  IntentCreator
}

func NewPaymentService(payments repository.Payments, intents IntentCreator) *PaymentService {
	return &PaymentService{payments: payments, intents: intents}
}

// CreateIntent converts the client-supplied price into minor units and asks
// the processor for a payment intent. Rounding, not truncation: 19.99 is
// 1998.99... in float64 and must still charge 1999 cents.
func (s *PaymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	if price <= 0 {
		return "", ErrInvalidAmount
	}
	amount := int64(math.Round(price * 100))
	return s.intents.CreateIntent(ctx, amount)
}

// Record stores a confirmed client-side payment as pending. Approval is a
// separate admin action.
func (s *PaymentService) Record(ctx context.Context, payment *models.Payment) (string, error) {
	if payment.TransactionID == "" {
		payment.TransactionID = uuid.NewString()
	}
	payment.Status = models.PaymentPending
	if payment.PaidAt.IsZero() {
		payment.PaidAt = time.Now().UTC()
	}
	return s.payments.Insert(ctx, payment)
}

func (s *PaymentService) ByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	return s.payments.FindByEmail(ctx, email)
}

func (s *PaymentService) All(ctx context.Context) ([]models.Payment, error) {
	return s.payments.FindAll(ctx)
}

func (s *PaymentService) Approve(ctx context.Context, id string) error {
	err := s.payments.SetStatus(ctx, id, models.PaymentApproved)
	if err == repository.ErrNotFound {
		return ErrNotFound
	}
	return err
}
