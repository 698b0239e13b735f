package account

import (
	"errors"
	"testing"

	"microlend-backend/pkg/money"
)

func TestCreditDebit(t *testing.T) {
	a := NewForUser("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	if !a.Balance.IsZero() {
		t.Fatalf("new account balance = %s", a.Balance)
	}

	if err := a.Credit(money.FromInt(500)); err != nil {
		t.Fatalf("Credit: %v", err)
	}
	if err := a.Debit(money.FromInt(200)); err != nil {
		t.Fatalf("Debit: %v", err)
	}
	if !a.Balance.Equal(money.FromInt(300)) {
		t.Fatalf("balance = %s, want 300", a.Balance)
	}
}

func TestDebit_InsufficientFunds(t *testing.T) {
	a := NewForUser("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	_ = a.Credit(money.FromInt(100))

	if err := a.Debit(money.FromInt(101)); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("got %v, want ErrInsufficientFunds", err)
	}
	if !a.Balance.Equal(money.FromInt(100)) {
		t.Fatalf("failed debit mutated balance: %s", a.Balance)
	}

	// draining to exactly zero is allowed
	if err := a.Debit(money.FromInt(100)); err != nil {
		t.Fatalf("exact debit: %v", err)
	}
	if !a.Balance.IsZero() {
		t.Fatalf("balance = %s", a.Balance)
	}
}

func TestCreditDebit_RejectNonPositive(t *testing.T) {
	a := NewForUser("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	if err := a.Credit(money.FromInt(0)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("Credit(0): %v", err)
	}
	if err := a.Debit(money.FromInt(-5)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("Debit(-5): %v", err)
	}
}
