package loan

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"microlend-backend/pkg/money"
)

func pendingLoan() *Loan {
	return &Loan{
		LoanID:     "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		BorrowerID: "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		Principal:  money.FromInt(100_000),
		TermMonths: 12,
		Status:     StatusPending,
	}
}

func TestApprove_StampsScheduleAndAudit(t *testing.T) {
	l := pendingLoan()
	now := time.Now().UTC()

	if err := l.Approve("cccccccccccccccccccccccccccccccc", 640, decimal.RequireFromString("0.15"), now); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if l.Status != StatusActive {
		t.Fatalf("status = %s", l.Status)
	}
	if !l.TotalAmount.Equal(money.FromInt(115_000)) {
		t.Fatalf("total = %s", l.TotalAmount)
	}
	if l.ApprovedBy == nil || *l.ApprovedBy != "cccccccccccccccccccccccccccccccc" {
		t.Fatalf("approver not stamped: %v", l.ApprovedBy)
	}
	if l.ApprovedAt == nil || !l.ApprovedAt.Equal(now) {
		t.Fatalf("approval time not stamped: %v", l.ApprovedAt)
	}
	if l.Score != 640 {
		t.Fatalf("score = %d", l.Score)
	}
}

func TestApprove_OnlyFromPending(t *testing.T) {
	for _, st := range []Status{StatusActive, StatusRejected, StatusClosed} {
		l := pendingLoan()
		l.Status = st
		err := l.Approve("cccccccccccccccccccccccccccccccc", 600, decimal.Zero, time.Now().UTC())
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("Approve from %s: got %v, want ErrInvalidTransition", st, err)
		}
	}
}

func TestApprove_InvalidRateLeavesLoanUntouched(t *testing.T) {
	l := pendingLoan()
	err := l.Approve("cccccccccccccccccccccccccccccccc", 600, decimal.RequireFromString("2"), time.Now().UTC())
	if !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("got %v", err)
	}
	if l.Status != StatusPending {
		t.Fatalf("status mutated on failed approve: %s", l.Status)
	}
}

func TestReject(t *testing.T) {
	l := pendingLoan()
	if err := l.Reject("income unverifiable", time.Now().UTC()); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if l.Status != StatusRejected {
		t.Fatalf("status = %s", l.Status)
	}
	if l.RejectReason == nil || *l.RejectReason != "income unverifiable" {
		t.Fatalf("reason not stamped")
	}
}

func TestReject_RequiresReason(t *testing.T) {
	l := pendingLoan()
	if err := l.Reject("", time.Now().UTC()); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("got %v", err)
	}
	if l.Status != StatusPending {
		t.Fatalf("status mutated: %s", l.Status)
	}
}

func TestClose_OnlyFromActive(t *testing.T) {
	l := pendingLoan()
	if err := l.Close(time.Now().UTC()); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Close from pending: got %v", err)
	}

	l.Status = StatusActive
	if err := l.Close(time.Now().UTC()); err != nil {
		t.Fatalf("Close from active: %v", err)
	}
	if l.Status != StatusClosed {
		t.Fatalf("status = %s", l.Status)
	}

	// terminal states reach nothing
	if err := l.Close(time.Now().UTC()); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Close from closed: got %v", err)
	}
	if err := l.Reject("x", time.Now().UTC()); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Reject from closed: got %v", err)
	}
}

func TestStatusTerminal(t *testing.T) {
	if StatusPending.Terminal() || StatusActive.Terminal() {
		t.Fatal("pending/active must not be terminal")
	}
	if !StatusRejected.Terminal() || !StatusClosed.Terminal() {
		t.Fatal("rejected/closed must be terminal")
	}
}
