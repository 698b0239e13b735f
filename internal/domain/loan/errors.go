package loan

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("loan not found")
	ErrInvalidTransition = errors.New("invalid loan state transition")
	ErrLoanNotActive     = errors.New("loan is not active")

	ErrInvalidAmount = errors.New("principal must be positive")
	ErrInvalidTerm   = errors.New("term must be a positive number of periods")
	ErrInvalidRate   = errors.New("rate must be within [0,1]")
)

func transitionErr(from, to Status) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
