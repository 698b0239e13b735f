package account

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"microlend-backend/pkg/money"
)

// VirtualAccount is a per-user cash balance used for disbursement and
// repayment funding. Balance is a cache over the payment ledger: replaying
// every completed credit minus every completed debit must reproduce it.
type VirtualAccount struct {
	ID            uint64          `gorm:"primaryKey;column:id" json:"-"`
	AccountID     string          `gorm:"size:32;uniqueIndex:ux_accounts_account_id" json:"account_id"`
	UserID        string          `gorm:"size:32;uniqueIndex:ux_accounts_user_id" json:"user_id"`
	AccountNumber string          `gorm:"size:20" json:"account_number"`
	BankName      string          `gorm:"size:64" json:"bank_name"`
	Balance       decimal.Decimal `gorm:"type:decimal(18,0)" json:"balance"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (VirtualAccount) TableName() string { return "virtual_accounts" }

// NewForUser builds a zero-balance account with a derived display number.
func NewForUser(userID, accountID string) *VirtualAccount {
	return &VirtualAccount{
		AccountID:     accountID,
		UserID:        userID,
		AccountNumber: "88" + accountID[:10],
		BankName:      "Microlend Virtual",
	}
}

// Credit adds amount to the balance. Must run inside the transaction that
// writes the paired payment row.
func (a *VirtualAccount) Credit(amount decimal.Decimal) error {
	if !money.IsPositive(amount) {
		return ErrInvalidAmount
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

// Debit subtracts amount, refusing to let the balance go negative. The row
// lock held by the caller makes the check-then-apply atomic under
// concurrent debits.
func (a *VirtualAccount) Debit(amount decimal.Decimal) error {
	if !money.IsPositive(amount) {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(a.Balance) {
		return ErrInsufficientFunds
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}
