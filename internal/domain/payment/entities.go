package payment

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Type string

const (
	TypeRepayment    Type = "repayment"
	TypeDisbursement Type = "disbursement"
	TypeFee          Type = "fee"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Direction is relative to the virtual account the payment touches, if any.
type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

// Payment is one immutable money movement. Once completed it is never edited;
// corrections are new compensating rows. The table is the append-only audit
// trail that account balances must replay to.
type Payment struct {
	ID        uint64 `gorm:"primaryKey;column:id" json:"-"`
	PaymentID string `gorm:"type:char(36);uniqueIndex:ux_payments_payment_id" json:"payment_id"`

	// Numeric FKs; either may be nil (a pure account operation has no loan,
	// an externally funded repayment touches no account).
	LoanRef    *uint64 `gorm:"column:loan_id;index:idx_payments_loan" json:"-"`
	AccountRef *uint64 `gorm:"column:account_id;index:idx_payments_account" json:"-"`

	Type      Type            `gorm:"type:enum('repayment','disbursement','fee')" json:"type"`
	Status    Status          `gorm:"type:enum('pending','completed','failed');default:'pending'" json:"status"`
	Direction Direction       `gorm:"type:enum('credit','debit')" json:"direction"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,0)" json:"amount"`

	Gateway     string     `gorm:"size:32" json:"gateway"`
	GatewayRef  string     `gorm:"size:64;uniqueIndex:ux_payments_gateway_ref" json:"gateway_ref"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Payment) TableName() string { return "payments" }

// Complete stamps the terminal success state. Guarded so a completed row can
// never be re-stamped with a new timestamp.
func (p *Payment) Complete(now time.Time) error {
	if p.Status != StatusPending {
		return ErrNotPending
	}
	p.Status = StatusCompleted
	p.ProcessedAt = &now
	return nil
}

// Fail stamps the terminal failure state.
func (p *Payment) Fail(now time.Time) error {
	if p.Status != StatusPending {
		return ErrNotPending
	}
	p.Status = StatusFailed
	p.ProcessedAt = &now
	return nil
}
