package loan

import (
	"github.com/shopspring/decimal"

	"microlend-backend/pkg/money"
)

// Schedule is the repayment plan for an approved loan under the flat-rate
// model: total = principal * (1 + rate), split evenly with the rounding
// remainder attributed to the final installment.
type Schedule struct {
	Installment      decimal.Decimal
	FinalInstallment decimal.Decimal
	TotalAmount      decimal.Decimal
}

var one = decimal.NewFromInt(1)

// ComputeSchedule derives the installment plan from principal, rate and term.
// It is pure; approval stamps the result onto the loan inside a transaction.
func ComputeSchedule(principal, rate decimal.Decimal, termPeriods int) (Schedule, error) {
	if !money.IsPositive(principal) {
		return Schedule{}, ErrInvalidAmount
	}
	if termPeriods <= 0 {
		return Schedule{}, ErrInvalidTerm
	}
	if rate.IsNegative() || rate.GreaterThan(one) {
		return Schedule{}, ErrInvalidRate
	}

	total := money.RoundMinor(principal.Mul(one.Add(rate)))
	even, final, err := money.SplitInstallments(total, termPeriods)
	if err != nil {
		return Schedule{}, err
	}
	return Schedule{Installment: even, FinalInstallment: final, TotalAmount: total}, nil
}
