package mysql

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	accountDomain "microlend-backend/internal/domain/account"
	paymentDomain "microlend-backend/internal/domain/payment"
)

type AccountRepository struct{ db *gorm.DB }

func NewAccountRepository(db *gorm.DB) *AccountRepository { return &AccountRepository{db: db} }

func (r *AccountRepository) Create(ctx context.Context, a *accountDomain.VirtualAccount) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AccountRepository) Save(ctx context.Context, a *accountDomain.VirtualAccount) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AccountRepository) GetByAccountID(ctx context.Context, accountID string) (*accountDomain.VirtualAccount, error) {
	var out accountDomain.VirtualAccount
	res := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&out)
	return &out, res.Error
}

func (r *AccountRepository) GetByUserID(ctx context.Context, userID string) (*accountDomain.VirtualAccount, error) {
	var out accountDomain.VirtualAccount
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out)
	return &out, res.Error
}

func (r *AccountRepository) GetByUserIDForUpdate(ctx context.Context, userID string) (*accountDomain.VirtualAccount, error) {
	var out accountDomain.VirtualAccount
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&out)
	return &out, res.Error
}

// ReplayBalance folds the completed payment rows touching the account back
// into a balance: credits add, debits subtract. The stored Balance column
// must always equal this sum.
func (r *AccountRepository) ReplayBalance(ctx context.Context, accountNumericID uint64) (decimal.Decimal, error) {
	var raw decimal.NullDecimal
	res := r.db.WithContext(ctx).
		Model(&paymentDomain.Payment{}).
		Select("SUM(CASE WHEN direction = ? THEN amount ELSE -amount END)", paymentDomain.DirectionCredit).
		Where("account_id = ? AND status = ?", accountNumericID, paymentDomain.StatusCompleted).
		Scan(&raw)
	if res.Error != nil {
		return decimal.Zero, res.Error
	}
	if !raw.Valid {
		return decimal.Zero, nil
	}
	return raw.Decimal, nil
}
