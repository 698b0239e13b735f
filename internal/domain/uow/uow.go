package uow

import (
	"context"
	"errors"

	"microlend-backend/internal/domain/account"
	"microlend-backend/internal/domain/loan"
	"microlend-backend/internal/domain/payment"
)

// ErrSerialization marks a transaction that lost a concurrency race
// (deadlock, lock wait timeout). Callers may retry a bounded number of
// times before surfacing the failure.
var ErrSerialization = errors.New("transaction serialization conflict")

// MaxConflictRetries bounds how often a mutating usecase re-runs its
// transaction after losing a lock race before the conflict surfaces.
const MaxConflictRetries = 3

// RetrySerialization runs fn, re-running it up to retries extra times while
// it keeps failing with ErrSerialization. Any other outcome returns as is.
func RetrySerialization(retries int, fn func() error) error {
	var err error
	for attempt := 0; attempt <= retries; attempt++ {
		if err = fn(); !errors.Is(err, ErrSerialization) {
			return err
		}
	}
	return err
}

type Repos struct {
	Loans    loan.Repository
	Payments payment.Repository
	Accounts account.Repository
}

type UnitOfWork interface {
	// WithinTx runs fn in one db transaction; all repos in r are bound to it.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row first, then passes it in. Everything the
	// callback reads or writes commits or rolls back with the balance change.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
