package account

import "errors"

var (
	ErrNotFound          = errors.New("virtual account not found")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
)
