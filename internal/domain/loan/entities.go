package loan

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusRejected Status = "rejected"
	StatusClosed   Status = "closed"
)

// Terminal reports whether no further transition is reachable from s.
func (s Status) Terminal() bool { return s == StatusRejected || s == StatusClosed }

type Loan struct {
	ID         uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID     string          `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	BorrowerID string          `gorm:"size:32;index:idx_loans_borrower_active" json:"borrower_id"`
	Principal  decimal.Decimal `gorm:"type:decimal(18,0)" json:"principal"`
	Purpose    string          `gorm:"type:text" json:"purpose"`
	TermMonths int             `json:"term_months"`
	Rate       decimal.Decimal `gorm:"type:decimal(6,4)" json:"rate"`

	// Schedule fields stay zero until approval stamps them.
	Installment      decimal.Decimal `gorm:"type:decimal(18,0)" json:"installment"`
	FinalInstallment decimal.Decimal `gorm:"type:decimal(18,0)" json:"final_installment"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(18,0)" json:"total_amount"`

	Score        int        `json:"score"`
	Status       Status     `gorm:"type:enum('pending','active','rejected','closed');default:'pending'" json:"status"`
	ApprovedBy   *string    `gorm:"size:32" json:"approved_by,omitempty"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`
	RejectReason *string    `gorm:"type:text" json:"reject_reason,omitempty"`

	StateUpdatedAt time.Time      `gorm:"autoCreateTime" json:"state_updated_at"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }
