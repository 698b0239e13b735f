// Package payment applies repayments to active loans: outstanding-balance
// math, overpayment protection and close-on-zero, all under one row-locked
// transaction per attempt.
package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	loanDomain "microlend-backend/internal/domain/loan"
	paymentDomain "microlend-backend/internal/domain/payment"
	"microlend-backend/internal/domain/uow"
	"microlend-backend/pkg/money"
)

// GatewayVirtualAccount funds the repayment from the borrower's virtual
// account balance instead of external money.
const GatewayVirtualAccount = "virtual_account"

type Notifier interface {
	LoanStatusChanged(ctx context.Context, loanID, borrowerID, status string)
}

type Usecase struct {
	loans    loanDomain.Repository
	payments paymentDomain.Repository
	uow      uow.UnitOfWork
	notifier Notifier
	log      *zap.SugaredLogger
}

func NewUsecase(loans loanDomain.Repository, payments paymentDomain.Repository, tx uow.UnitOfWork, notifier Notifier, log *zap.SugaredLogger) *Usecase {
	return &Usecase{loans: loans, payments: payments, uow: tx, notifier: notifier, log: log}
}

type RepayInput struct {
	LoanID     string
	Amount     money.Amount
	Gateway    string
	GatewayRef string
}

type RepayResult struct {
	Payment     *paymentDomain.Payment `json:"payment"`
	Outstanding money.Amount           `json:"outstanding"`
	LoanClosed  bool                   `json:"loan_closed"`
	Replayed    bool                   `json:"replayed"`

	borrowerID string
}

// Repay applies one repayment to a loan.
//
// A gateway ref that was already processed replays the original payment
// instead of charging twice: the fast path is a lookup, and the unique index
// on gateway_ref converts a lost insert race into the same replay.
func (u *Usecase) Repay(ctx context.Context, in RepayInput) (*RepayResult, error) {
	if !money.IsPositive(in.Amount) {
		return nil, fmt.Errorf("repayment amount must be positive, got %s", in.Amount)
	}
	if in.GatewayRef == "" {
		return nil, fmt.Errorf("gateway ref is required")
	}

	if res, err := u.replayByRef(ctx, in.LoanID, in.GatewayRef); err != nil {
		return nil, err
	} else if res != nil {
		return res, nil
	}

	var res *RepayResult
	attempt := 0
	err := uow.RetrySerialization(uow.MaxConflictRetries, func() error {
		attempt++
		out, err := u.apply(ctx, in)
		if err != nil {
			if errors.Is(err, uow.ErrSerialization) {
				u.log.Warnw("repayment lost a lock race, retrying",
					"loan_id", in.LoanID, "gateway_ref", in.GatewayRef, "attempt", attempt)
			}
			return err
		}
		res = out
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the insert race against a concurrent retry of the same
		// gateway ref: the winner's row is the answer.
		return u.mustReplayByRef(ctx, in.LoanID, in.GatewayRef)
	}
	if err != nil {
		return nil, err
	}
	if res.LoanClosed {
		u.notifier.LoanStatusChanged(ctx, in.LoanID, res.borrowerID, string(loanDomain.StatusClosed))
	}
	return res, nil
}

func (u *Usecase) apply(ctx context.Context, in RepayInput) (*RepayResult, error) {
	var out RepayResult
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.Status != loanDomain.StatusActive {
			return fmt.Errorf("%w: loan %s is %s", loanDomain.ErrLoanNotActive, l.LoanID, l.Status)
		}

		// Balance math under the row lock: a concurrent repayment either
		// committed before our lock (and is in this sum) or is blocked
		// behind it.
		paid, err := r.Payments.SumCompletedRepayments(ctx, l.ID)
		if err != nil {
			return err
		}
		outstanding := l.TotalAmount.Sub(paid)
		if in.Amount.GreaterThan(outstanding) {
			return fmt.Errorf("%w: amount %s, outstanding %s",
				paymentDomain.ErrOverpayment, in.Amount, outstanding)
		}

		now := time.Now().UTC()
		p := &paymentDomain.Payment{
			PaymentID:  uuid.NewString(),
			LoanRef:    &l.ID,
			Type:       paymentDomain.TypeRepayment,
			Status:     paymentDomain.StatusPending,
			Direction:  paymentDomain.DirectionDebit,
			Amount:     in.Amount,
			Gateway:    in.Gateway,
			GatewayRef: in.GatewayRef,
		}

		if in.Gateway == GatewayVirtualAccount {
			acct, err := r.Accounts.GetByUserIDForUpdate(ctx, l.BorrowerID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("borrower %s has no virtual account", l.BorrowerID)
				}
				return err
			}
			if err := acct.Debit(in.Amount); err != nil {
				return err
			}
			if err := r.Accounts.Save(ctx, acct); err != nil {
				return err
			}
			p.AccountRef = &acct.ID
		}

		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}
		if err := p.Complete(now); err != nil {
			return err
		}
		if err := r.Payments.Save(ctx, p); err != nil {
			return err
		}

		remaining := outstanding.Sub(in.Amount)
		if remaining.IsZero() {
			if err := l.Close(now); err != nil {
				return err
			}
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
			out.LoanClosed = true
		}

		out.Payment = p
		out.Outstanding = remaining
		out.borrowerID = l.BorrowerID
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Infow("repayment applied",
		"loan_id", in.LoanID, "amount", in.Amount, "outstanding", out.Outstanding, "closed", out.LoanClosed)
	return &out, nil
}

// replayByRef reconstructs the original result for a gateway ref that was
// already processed, or returns nil when the ref is new. The outstanding
// figure is recomputed so a retried client sees the same balance the first
// response carried, not a zero.
func (u *Usecase) replayByRef(ctx context.Context, loanID, gatewayRef string) (*RepayResult, error) {
	p, err := u.payments.GetByGatewayRef(ctx, gatewayRef)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if p.Type != paymentDomain.TypeRepayment {
		return nil, fmt.Errorf("%w: ref %s belongs to a %s payment",
			paymentDomain.ErrGatewayRefInUse, gatewayRef, p.Type)
	}

	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loanDomain.ErrNotFound
		}
		return nil, err
	}
	if p.LoanRef == nil || *p.LoanRef != l.ID {
		return nil, fmt.Errorf("%w: ref %s was processed for another loan",
			paymentDomain.ErrGatewayRefInUse, gatewayRef)
	}

	paid, err := u.payments.SumCompletedRepayments(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	return &RepayResult{
		Payment:     p,
		Outstanding: l.TotalAmount.Sub(paid),
		LoanClosed:  l.Status == loanDomain.StatusClosed,
		Replayed:    true,
	}, nil
}

func (u *Usecase) mustReplayByRef(ctx context.Context, loanID, gatewayRef string) (*RepayResult, error) {
	res, err := u.replayByRef(ctx, loanID, gatewayRef)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("gateway ref %s hit the unique index but cannot be read back", gatewayRef)
	}
	return res, nil
}
