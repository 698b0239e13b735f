package accountmock

import (
	"context"

	"github.com/shopspring/decimal"

	domain "microlend-backend/internal/domain/account"
)

// Repo is a function-backed mock satisfying account.Repository.
type Repo struct {
	CreateFn               func(ctx context.Context, a *domain.VirtualAccount) error
	SaveFn                 func(ctx context.Context, a *domain.VirtualAccount) error
	GetByAccountIDFn       func(ctx context.Context, accountID string) (*domain.VirtualAccount, error)
	GetByUserIDFn          func(ctx context.Context, userID string) (*domain.VirtualAccount, error)
	GetByUserIDForUpdateFn func(ctx context.Context, userID string) (*domain.VirtualAccount, error)
	ReplayBalanceFn        func(ctx context.Context, accountNumericID uint64) (decimal.Decimal, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, a *domain.VirtualAccount) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, a *domain.VirtualAccount) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByAccountID(ctx context.Context, accountID string) (*domain.VirtualAccount, error) {
	if m.GetByAccountIDFn != nil {
		return m.GetByAccountIDFn(ctx, accountID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*domain.VirtualAccount, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByUserIDForUpdate(ctx context.Context, userID string) (*domain.VirtualAccount, error) {
	if m.GetByUserIDForUpdateFn != nil {
		return m.GetByUserIDForUpdateFn(ctx, userID)
	}
	return nil, context.Canceled
}

func (m *Repo) ReplayBalance(ctx context.Context, accountNumericID uint64) (decimal.Decimal, error) {
	if m.ReplayBalanceFn != nil {
		return m.ReplayBalanceFn(ctx, accountNumericID)
	}
	return decimal.Zero, nil
}
