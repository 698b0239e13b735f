package loan

import (
	"time"

	"github.com/shopspring/decimal"

	"microlend-backend/internal/domain/loan"
	"microlend-backend/internal/domain/payment"
)

type SubmitInput struct {
	BorrowerID string
	Principal  decimal.Decimal
	Purpose    string
	TermMonths int
}

type LoanDTO struct {
	LoanID           string          `json:"loan_id"`
	BorrowerID       string          `json:"borrower_id"`
	Principal        decimal.Decimal `json:"principal"`
	Purpose          string          `json:"purpose"`
	TermMonths       int             `json:"term_months"`
	Rate             decimal.Decimal `json:"rate"`
	Installment      decimal.Decimal `json:"installment"`
	FinalInstallment decimal.Decimal `json:"final_installment"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Score            int             `json:"score"`
	Status           string          `json:"status"`
	ApprovedBy       *string         `json:"approved_by,omitempty"`
	ApprovedAt       *time.Time      `json:"approved_at,omitempty"`
	RejectReason     *string         `json:"reject_reason,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

type StatementEntry struct {
	PaymentID   string          `json:"payment_id"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	Amount      decimal.Decimal `json:"amount"`
	Gateway     string          `json:"gateway"`
	GatewayRef  string          `json:"gateway_ref"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toLoanDTO(l *loan.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:           l.LoanID,
		BorrowerID:       l.BorrowerID,
		Principal:        l.Principal,
		Purpose:          l.Purpose,
		TermMonths:       l.TermMonths,
		Rate:             l.Rate,
		Installment:      l.Installment,
		FinalInstallment: l.FinalInstallment,
		TotalAmount:      l.TotalAmount,
		Score:            l.Score,
		Status:           string(l.Status),
		ApprovedBy:       l.ApprovedBy,
		ApprovedAt:       l.ApprovedAt,
		RejectReason:     l.RejectReason,
		CreatedAt:        l.CreatedAt,
	}
}

func toStatementEntry(p *payment.Payment) StatementEntry {
	return StatementEntry{
		PaymentID:   p.PaymentID,
		Type:        string(p.Type),
		Status:      string(p.Status),
		Amount:      p.Amount,
		Gateway:     p.Gateway,
		GatewayRef:  p.GatewayRef,
		ProcessedAt: p.ProcessedAt,
		CreatedAt:   p.CreatedAt,
	}
}
