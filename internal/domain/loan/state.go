package loan

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transitions live here, not in handlers or repositories: Status, the
// schedule fields and the approval audit trail are never written except
// through these methods.

// Approve moves a pending loan to active, stamping the underwriting score,
// the approver and the computed repayment schedule in one step. Disbursement
// is recorded by the caller in the same transaction.
func (l *Loan) Approve(approverID string, score int, rate decimal.Decimal, now time.Time) error {
	if l.Status != StatusPending {
		return transitionErr(l.Status, StatusActive)
	}
	sched, err := ComputeSchedule(l.Principal, rate, l.TermMonths)
	if err != nil {
		return err
	}
	l.Rate = rate
	l.Score = score
	l.Installment = sched.Installment
	l.FinalInstallment = sched.FinalInstallment
	l.TotalAmount = sched.TotalAmount
	l.ApprovedBy = &approverID
	l.ApprovedAt = &now
	l.Status = StatusActive
	l.StateUpdatedAt = now
	return nil
}

// Reject moves a pending loan to the terminal rejected state.
func (l *Loan) Reject(reason string, now time.Time) error {
	if l.Status != StatusPending {
		return transitionErr(l.Status, StatusRejected)
	}
	if reason == "" {
		return fmt.Errorf("%w: rejection requires a reason", ErrInvalidTransition)
	}
	l.RejectReason = &reason
	l.Status = StatusRejected
	l.StateUpdatedAt = now
	return nil
}

// Close marks a fully repaid loan. Only the payment processor calls this,
// inside the transaction that brought the outstanding balance to zero.
func (l *Loan) Close(now time.Time) error {
	if l.Status != StatusActive {
		return transitionErr(l.Status, StatusClosed)
	}
	l.Status = StatusClosed
	l.StateUpdatedAt = now
	return nil
}
