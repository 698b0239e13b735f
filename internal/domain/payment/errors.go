package payment

import "errors"

var (
	ErrNotFound        = errors.New("payment not found")
	ErrNotPending      = errors.New("payment already in a terminal status")
	ErrOverpayment     = errors.New("amount exceeds outstanding balance")
	ErrGatewayRefInUse = errors.New("gateway ref already used by a different payment")
)
