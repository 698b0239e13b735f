package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	accountDomain "microlend-backend/internal/domain/account"
	paymentDomain "microlend-backend/internal/domain/payment"
	"microlend-backend/pkg/id"
	"microlend-backend/pkg/money"
)

func makeFundedAccount(t *testing.T, repo *AccountRepository, userID string, balance int64) *accountDomain.VirtualAccount {
	t.Helper()
	a := accountDomain.NewForUser(userID, id.NewID32())
	if balance > 0 {
		if err := a.Credit(money.FromInt(balance)); err != nil {
			t.Fatalf("Credit: %v", err)
		}
	}
	if err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("Create account: %v", err)
	}
	return a
}

func TestAccountCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	user := id.NewID32()
	a := accountDomain.NewForUser(user, id.NewID32())
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByUserID(ctx, user)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if got.AccountID != a.AccountID || !got.Balance.IsZero() {
		t.Fatalf("got %+v", got)
	}

	byAcc, err := repo.GetByAccountID(ctx, a.AccountID)
	if err != nil {
		t.Fatalf("GetByAccountID: %v", err)
	}
	if byAcc.UserID != user {
		t.Fatalf("got user %s", byAcc.UserID)
	}
}

// Replaying the completed ledger rows must reproduce the stored balance:
// credits add, debits subtract, pending and failed rows are invisible.
func TestAccountReplayBalance(t *testing.T) {
	db := openTestDB(t)
	accounts := NewAccountRepository(db)
	payments := NewPaymentRepository(db)
	ctx := context.Background()

	a := accountDomain.NewForUser(id.NewID32(), id.NewID32())
	if err := accounts.Create(ctx, a); err != nil {
		t.Fatalf("Create account: %v", err)
	}

	now := time.Now().UTC()
	mk := func(amount int64, dir paymentDomain.Direction, status paymentDomain.Status) *paymentDomain.Payment {
		p := &paymentDomain.Payment{
			PaymentID:  uuid.NewString(),
			AccountRef: &a.ID,
			Type:       paymentDomain.TypeFee,
			Status:     status,
			Direction:  dir,
			Amount:     money.FromInt(amount),
			Gateway:    "manual",
			GatewayRef: uuid.NewString(),
		}
		if status == paymentDomain.StatusCompleted {
			p.ProcessedAt = &now
		}
		return p
	}

	rows := []*paymentDomain.Payment{
		mk(1_000_000, paymentDomain.DirectionCredit, paymentDomain.StatusCompleted),
		mk(250_000, paymentDomain.DirectionDebit, paymentDomain.StatusCompleted),
		mk(50_000, paymentDomain.DirectionDebit, paymentDomain.StatusCompleted),
		mk(777, paymentDomain.DirectionDebit, paymentDomain.StatusPending),
		mk(888, paymentDomain.DirectionCredit, paymentDomain.StatusFailed),
	}
	for _, p := range rows {
		if err := payments.Create(ctx, p); err != nil {
			t.Fatalf("Create payment: %v", err)
		}
	}

	replayed, err := accounts.ReplayBalance(ctx, a.ID)
	if err != nil {
		t.Fatalf("ReplayBalance: %v", err)
	}
	if !replayed.Equal(money.FromInt(700_000)) {
		t.Fatalf("replayed = %s, want 700000", replayed)
	}
}

func TestAccountReplayBalance_EmptyIsZero(t *testing.T) {
	db := openTestDB(t)
	repo := NewAccountRepository(db)

	replayed, err := repo.ReplayBalance(context.Background(), 12345)
	if err != nil {
		t.Fatalf("ReplayBalance: %v", err)
	}
	if !replayed.IsZero() {
		t.Fatalf("replayed = %s", replayed)
	}
}
