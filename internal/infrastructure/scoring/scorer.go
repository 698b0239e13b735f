// Package scoring provides the default credit-scoring collaborator. The
// real model lives in a separate service; this implementation applies the
// product's fallback rate card so the ledger can run without it.
package scoring

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	baseRate    = decimal.RequireFromString("0.15")
	reducedRate = decimal.RequireFromString("0.12")
)

// principal at or above this gets the reduced rate tier
var reducedRateFloor = decimal.NewFromInt(10_000_000)

type RateCardScorer struct {
	log *zap.SugaredLogger
}

func NewRateCardScorer(log *zap.SugaredLogger) *RateCardScorer {
	return &RateCardScorer{log: log}
}

func (s *RateCardScorer) Score(ctx context.Context, borrowerID string, principal decimal.Decimal, termMonths int) (int, decimal.Decimal, error) {
	rate := baseRate
	score := 600
	if principal.GreaterThanOrEqual(reducedRateFloor) {
		rate = reducedRate
		score = 650
	}
	s.log.Debugw("rate card applied",
		"borrower_id", borrowerID, "principal", principal, "term", termMonths, "score", score, "rate", rate)
	return score, rate, nil
}
