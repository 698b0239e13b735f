package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	Save(ctx context.Context, p *Payment) error
	GetByPaymentID(ctx context.Context, paymentID string) (*Payment, error)
	GetByGatewayRef(ctx context.Context, gatewayRef string) (*Payment, error)
	ListByLoanID(ctx context.Context, loanNumericID uint64) ([]Payment, error)
	// SumCompletedRepayments totals the completed repayment rows for a loan.
	// Callers computing an outstanding balance must hold the loan row lock.
	SumCompletedRepayments(ctx context.Context, loanNumericID uint64) (decimal.Decimal, error)
}
