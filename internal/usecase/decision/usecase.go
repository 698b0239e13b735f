// Package decision implements the review step of the loan lifecycle:
// approving (which computes the schedule and disburses in one transaction)
// or rejecting a pending application.
package decision

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	accountDomain "microlend-backend/internal/domain/account"
	loanDomain "microlend-backend/internal/domain/loan"
	paymentDomain "microlend-backend/internal/domain/payment"
	"microlend-backend/internal/domain/uow"
	"microlend-backend/pkg/id"
)

// Scorer is the credit-scoring collaborator. It returns an underwriting
// score and the suggested flat interest rate for the application.
type Scorer interface {
	Score(ctx context.Context, borrowerID string, principal decimal.Decimal, termMonths int) (score int, rate decimal.Decimal, err error)
}

// Notifier receives status changes fire-and-forget; failures are the
// dispatcher's problem, never the transaction's.
type Notifier interface {
	LoanStatusChanged(ctx context.Context, loanID, borrowerID, status string)
}

const disbursementGateway = "internal_float"

type Usecase struct {
	loans    loanDomain.Repository
	uow      uow.UnitOfWork
	scorer   Scorer
	notifier Notifier
	log      *zap.SugaredLogger
}

func NewUsecase(loans loanDomain.Repository, tx uow.UnitOfWork, scorer Scorer, notifier Notifier, log *zap.SugaredLogger) *Usecase {
	return &Usecase{loans: loans, uow: tx, scorer: scorer, notifier: notifier, log: log}
}

type DecideInput struct {
	LoanID     string
	ApproverID string
	Approve    bool
	Reason     string
}

// Decide approves or rejects a pending loan. Approval computes the schedule,
// credits the borrower's virtual account with the principal and records the
// disbursement payment — all inside the transaction that flips the status,
// so a loan can never be active without its disbursement on the ledger.
func (u *Usecase) Decide(ctx context.Context, in DecideInput) (*loanDomain.Loan, error) {
	if in.ApproverID == "" {
		return nil, fmt.Errorf("approver id is required")
	}

	var score int
	var rate decimal.Decimal
	if in.Approve {
		// Score outside the transaction: the collaborator may be slow and
		// must not hold row locks. The state guard inside re-checks pending.
		l, err := u.loans.GetByLoanID(ctx, in.LoanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, loanDomain.ErrNotFound
			}
			return nil, err
		}
		score, rate, err = u.scorer.Score(ctx, l.BorrowerID, l.Principal, l.TermMonths)
		if err != nil {
			return nil, fmt.Errorf("credit scoring: %w", err)
		}
	}

	var decided *loanDomain.Loan
	err := uow.RetrySerialization(uow.MaxConflictRetries, func() error {
		return u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loanDomain.Loan) error {
			now := time.Now().UTC()
			if !in.Approve {
				if err := l.Reject(in.Reason, now); err != nil {
					return err
				}
				if err := r.Loans.Save(ctx, l); err != nil {
					return err
				}
				decided = l
				return nil
			}

			if err := l.Approve(in.ApproverID, score, rate, now); err != nil {
				return err
			}
			if err := u.disburse(ctx, r, l, now); err != nil {
				return err
			}
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
			decided = l
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	u.notifier.LoanStatusChanged(ctx, decided.LoanID, decided.BorrowerID, string(decided.Status))
	u.log.Infow("loan decided",
		"loan_id", decided.LoanID, "status", decided.Status, "approver_id", in.ApproverID)
	return decided, nil
}

// disburse credits the borrower's account with the principal and writes the
// matching completed disbursement row. The per-loan gateway ref plus the
// unique index on it make a second disbursement for the same loan impossible
// even if two approvals race past the state guard.
func (u *Usecase) disburse(ctx context.Context, r uow.Repos, l *loanDomain.Loan, now time.Time) error {
	acct, err := r.Accounts.GetByUserIDForUpdate(ctx, l.BorrowerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		acct = accountDomain.NewForUser(l.BorrowerID, id.NewID32())
		if err := r.Accounts.Create(ctx, acct); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	if err := acct.Credit(l.Principal); err != nil {
		return err
	}

	p := &paymentDomain.Payment{
		PaymentID:  uuid.NewString(),
		LoanRef:    &l.ID,
		AccountRef: &acct.ID,
		Type:       paymentDomain.TypeDisbursement,
		Status:     paymentDomain.StatusPending,
		Direction:  paymentDomain.DirectionCredit,
		Amount:     l.Principal,
		Gateway:    disbursementGateway,
		GatewayRef: "disb-" + l.LoanID,
	}
	if err := p.Complete(now); err != nil {
		return err
	}
	if err := r.Payments.Create(ctx, p); err != nil {
		return err
	}
	return r.Accounts.Save(ctx, acct)
}
