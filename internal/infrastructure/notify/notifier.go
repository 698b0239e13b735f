// Package notify is the status-change dispatcher seam. Delivery (email,
// push) belongs to another service; the default implementation records the
// event and returns immediately so callers never block on it.
package notify

import (
	"context"

	"go.uber.org/zap"
)

type LogNotifier struct {
	log *zap.SugaredLogger
}

func NewLogNotifier(log *zap.SugaredLogger) *LogNotifier { return &LogNotifier{log: log} }

func (n *LogNotifier) LoanStatusChanged(ctx context.Context, loanID, borrowerID, status string) {
	n.log.Infow("loan status changed",
		"loan_id", loanID, "borrower_id", borrowerID, "status", status)
}
