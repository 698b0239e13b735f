package mysql

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schemas only for tests (no ENUM columns) ---

type loanSQLite struct {
	ID               uint64          `gorm:"primaryKey;column:id"`
	LoanID           string          `gorm:"size:32;column:loan_id;uniqueIndex"`
	BorrowerID       string          `gorm:"size:32;column:borrower_id"`
	Principal        decimal.Decimal `gorm:"type:numeric;column:principal"`
	Purpose          string          `gorm:"column:purpose"`
	TermMonths       int             `gorm:"column:term_months"`
	Rate             decimal.Decimal `gorm:"type:numeric;column:rate"`
	Installment      decimal.Decimal `gorm:"type:numeric;column:installment"`
	FinalInstallment decimal.Decimal `gorm:"type:numeric;column:final_installment"`
	TotalAmount      decimal.Decimal `gorm:"type:numeric;column:total_amount"`
	Score            int             `gorm:"column:score"`
	Status           string          `gorm:"type:text;column:status"`
	ApprovedBy       *string         `gorm:"column:approved_by"`
	ApprovedAt       *time.Time      `gorm:"column:approved_at"`
	RejectReason     *string         `gorm:"column:reject_reason"`
	StateUpdatedAt   time.Time       `gorm:"column:state_updated_at"`
	CreatedAt        time.Time       `gorm:"column:created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"column:deleted_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type paymentSQLite struct {
	ID          uint64          `gorm:"primaryKey;column:id"`
	PaymentID   string          `gorm:"size:36;column:payment_id;uniqueIndex"`
	LoanRef     *uint64         `gorm:"column:loan_id"`
	AccountRef  *uint64         `gorm:"column:account_id"`
	Type        string          `gorm:"type:text;column:type"`
	Status      string          `gorm:"type:text;column:status"`
	Direction   string          `gorm:"type:text;column:direction"`
	Amount      decimal.Decimal `gorm:"type:numeric;column:amount"`
	Gateway     string          `gorm:"column:gateway"`
	GatewayRef  string          `gorm:"size:64;column:gateway_ref;uniqueIndex"`
	ProcessedAt *time.Time      `gorm:"column:processed_at"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"column:deleted_at"`
}

func (paymentSQLite) TableName() string { return "payments" }

type accountSQLite struct {
	ID            uint64          `gorm:"primaryKey;column:id"`
	AccountID     string          `gorm:"size:32;column:account_id;uniqueIndex"`
	UserID        string          `gorm:"size:32;column:user_id;uniqueIndex"`
	AccountNumber string          `gorm:"column:account_number"`
	BankName      string          `gorm:"column:bank_name"`
	Balance       decimal.Decimal `gorm:"type:numeric;column:balance"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"column:deleted_at"`
}

func (accountSQLite) TableName() string { return "virtual_accounts" }

// openTestDB creates an in-memory sqlite DB and migrates the sqlite-safe
// schemas, NOT the domain models.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&loanSQLite{}, &paymentSQLite{}, &accountSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
