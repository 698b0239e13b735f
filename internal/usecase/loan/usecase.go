package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"microlend-backend/internal/domain/loan"
	"microlend-backend/internal/domain/payment"
	"microlend-backend/pkg/id"
)

type Usecase struct {
	loans    loan.Repository
	payments payment.Repository
	log      *zap.SugaredLogger
}

func NewUsecase(loans loan.Repository, payments payment.Repository, log *zap.SugaredLogger) *Usecase {
	return &Usecase{loans: loans, payments: payments, log: log}
}

// Submit creates a loan application in pending. Amount and term are vetted
// through the schedule calculator so a loan that could never produce a valid
// repayment plan is rejected before anything is written.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*LoanDTO, error) {
	if in.BorrowerID == "" || len(in.BorrowerID) != 32 {
		return nil, fmt.Errorf("invalid borrower id %q", in.BorrowerID)
	}
	if _, err := loan.ComputeSchedule(in.Principal, decimal.Zero, in.TermMonths); err != nil {
		return nil, err
	}

	// One pending application per borrower at a time.
	pending, err := u.loans.GetPendingByBorrowerID(ctx, in.BorrowerID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("borrower %s already has a pending application: %s", in.BorrowerID, pending.LoanID)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	l := &loan.Loan{
		LoanID:         id.NewID32(),
		BorrowerID:     in.BorrowerID,
		Principal:      in.Principal,
		Purpose:        in.Purpose,
		TermMonths:     in.TermMonths,
		Status:         loan.StatusPending,
		StateUpdatedAt: time.Now().UTC(),
	}
	if err := u.loans.Create(ctx, l); err != nil {
		return nil, err
	}
	u.log.Infow("loan application submitted", "loan_id", l.LoanID, "borrower_id", l.BorrowerID)
	return toLoanDTO(l), nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	return toLoanDTO(l), nil
}

func (u *Usecase) ListForUser(ctx context.Context, borrowerID string) ([]LoanDTO, error) {
	ls, err := u.loans.ListByBorrowerID(ctx, borrowerID)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, *toLoanDTO(&ls[i]))
	}
	return out, nil
}

// Statement returns the payment ledger of a loan, oldest first. Display
// read: no transaction, may trail an in-flight repayment briefly.
func (u *Usecase) Statement(ctx context.Context, loanID string) ([]StatementEntry, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	ps, err := u.payments.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	out := make([]StatementEntry, 0, len(ps))
	for i := range ps {
		out = append(out, toStatementEntry(&ps[i]))
	}
	return out, nil
}
