// Package account is the virtual account manager: opening per-user cash
// accounts and moving money on them with a paired ledger entry per mutation.
package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	accountDomain "microlend-backend/internal/domain/account"
	paymentDomain "microlend-backend/internal/domain/payment"
	"microlend-backend/internal/domain/uow"
	"microlend-backend/pkg/id"
	"microlend-backend/pkg/money"
)

type Usecase struct {
	accounts accountDomain.Repository
	uow      uow.UnitOfWork
	log      *zap.SugaredLogger
}

func NewUsecase(accounts accountDomain.Repository, tx uow.UnitOfWork, log *zap.SugaredLogger) *Usecase {
	return &Usecase{accounts: accounts, uow: tx, log: log}
}

// Open returns the user's account, creating it on first use. Safe to call
// repeatedly; the unique index on user_id keeps it one per user.
func (u *Usecase) Open(ctx context.Context, userID string) (*accountDomain.VirtualAccount, error) {
	if userID == "" || len(userID) != 32 {
		return nil, fmt.Errorf("invalid user id %q", userID)
	}
	acct, err := u.accounts.GetByUserID(ctx, userID)
	if err == nil {
		return acct, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	acct = accountDomain.NewForUser(userID, id.NewID32())
	if err := u.accounts.Create(ctx, acct); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return u.accounts.GetByUserID(ctx, userID)
		}
		return nil, err
	}
	u.log.Infow("virtual account opened", "user_id", userID, "account_id", acct.AccountID)
	return acct, nil
}

func (u *Usecase) Get(ctx context.Context, userID string) (*accountDomain.VirtualAccount, error) {
	acct, err := u.accounts.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, accountDomain.ErrNotFound
		}
		return nil, err
	}
	return acct, nil
}

// Credit adds external money to an account, writing the fee-type ledger row
// in the same transaction as the balance change.
func (u *Usecase) Credit(ctx context.Context, userID string, amount money.Amount, ref string) (*accountDomain.VirtualAccount, error) {
	return u.mutate(ctx, userID, amount, ref, paymentDomain.DirectionCredit)
}

// Debit withdraws from an account; the row lock plus the balance guard make
// overdraft impossible under concurrent debits.
func (u *Usecase) Debit(ctx context.Context, userID string, amount money.Amount, ref string) (*accountDomain.VirtualAccount, error) {
	return u.mutate(ctx, userID, amount, ref, paymentDomain.DirectionDebit)
}

func (u *Usecase) mutate(ctx context.Context, userID string, amount money.Amount, ref string, dir paymentDomain.Direction) (*accountDomain.VirtualAccount, error) {
	if ref == "" {
		return nil, fmt.Errorf("reference is required")
	}
	var out *accountDomain.VirtualAccount
	var balance money.Amount
	err := uow.RetrySerialization(uow.MaxConflictRetries, func() error {
		return u.uow.WithinTx(ctx, func(r uow.Repos) error {
			acct, err := r.Accounts.GetByUserIDForUpdate(ctx, userID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return accountDomain.ErrNotFound
				}
				return err
			}
			if dir == paymentDomain.DirectionCredit {
				err = acct.Credit(amount)
			} else {
				err = acct.Debit(amount)
			}
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			p := &paymentDomain.Payment{
				PaymentID:  uuid.NewString(),
				AccountRef: &acct.ID,
				Type:       paymentDomain.TypeFee,
				Status:     paymentDomain.StatusPending,
				Direction:  dir,
				Amount:     amount,
				Gateway:    "manual",
				GatewayRef: ref,
			}
			if err := p.Complete(now); err != nil {
				return err
			}
			if err := r.Payments.Create(ctx, p); err != nil {
				return err
			}
			if err := r.Accounts.Save(ctx, acct); err != nil {
				return err
			}
			// Snapshot under the row lock: a concurrent mutation may move
			// the balance before the log line below runs.
			out, balance = acct, acct.Balance
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	u.log.Infow("account balance changed",
		"user_id", userID, "direction", dir, "amount", amount, "balance", balance)
	return out, nil
}

// Reconcile replays the completed payment ledger for the account and
// reports the replayed balance next to the cached one.
func (u *Usecase) Reconcile(ctx context.Context, userID string) (stored, replayed money.Amount, err error) {
	acct, err := u.accounts.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return money.Zero, money.Zero, accountDomain.ErrNotFound
		}
		return money.Zero, money.Zero, err
	}
	replayed, err = u.accounts.ReplayBalance(ctx, acct.ID)
	if err != nil {
		return money.Zero, money.Zero, err
	}
	if !replayed.Equal(acct.Balance) {
		u.log.Errorw("account balance drift detected",
			"user_id", userID, "stored", acct.Balance, "replayed", replayed)
	}
	return acct.Balance, replayed, nil
}
