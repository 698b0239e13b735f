package account

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, a *VirtualAccount) error
	Save(ctx context.Context, a *VirtualAccount) error
	GetByAccountID(ctx context.Context, accountID string) (*VirtualAccount, error)
	GetByUserID(ctx context.Context, userID string) (*VirtualAccount, error)
	// GetByUserIDForUpdate locks the account row; balance mutations must read
	// through this so concurrent debits serialize.
	GetByUserIDForUpdate(ctx context.Context, userID string) (*VirtualAccount, error)
	// ReplayBalance recomputes the balance from completed payments touching
	// the account, ignoring the cached column. Used for reconciliation.
	ReplayBalance(ctx context.Context, accountNumericID uint64) (decimal.Decimal, error)
}
