package paymentmock

import (
	"context"

	"github.com/shopspring/decimal"

	domain "microlend-backend/internal/domain/payment"
)

// Repo is a function-backed mock satisfying payment.Repository.
type Repo struct {
	CreateFn                 func(ctx context.Context, p *domain.Payment) error
	SaveFn                   func(ctx context.Context, p *domain.Payment) error
	GetByPaymentIDFn         func(ctx context.Context, paymentID string) (*domain.Payment, error)
	GetByGatewayRefFn        func(ctx context.Context, gatewayRef string) (*domain.Payment, error)
	ListByLoanIDFn           func(ctx context.Context, loanNumericID uint64) ([]domain.Payment, error)
	SumCompletedRepaymentsFn func(ctx context.Context, loanNumericID uint64) (decimal.Decimal, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, p *domain.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, p *domain.Payment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByPaymentID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if m.GetByPaymentIDFn != nil {
		return m.GetByPaymentIDFn(ctx, paymentID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByGatewayRef(ctx context.Context, gatewayRef string) (*domain.Payment, error) {
	if m.GetByGatewayRefFn != nil {
		return m.GetByGatewayRefFn(ctx, gatewayRef)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByLoanID(ctx context.Context, loanNumericID uint64) ([]domain.Payment, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanNumericID)
	}
	return nil, context.Canceled
}

func (m *Repo) SumCompletedRepayments(ctx context.Context, loanNumericID uint64) (decimal.Decimal, error) {
	if m.SumCompletedRepaymentsFn != nil {
		return m.SumCompletedRepaymentsFn(ctx, loanNumericID)
	}
	return decimal.Zero, nil
}
