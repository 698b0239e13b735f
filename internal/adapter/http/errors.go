package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	accountDomain "microlend-backend/internal/domain/account"
	loanDomain "microlend-backend/internal/domain/loan"
	paymentDomain "microlend-backend/internal/domain/payment"
	"microlend-backend/internal/domain/uow"
)

// writeDomainErr maps ledger errors to distinct statuses so API clients can
// tell a business rejection from a race from a bad request. Unknown errors
// become opaque 500s; the message is never leaked.
func writeDomainErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, loanDomain.ErrNotFound),
		errors.Is(err, accountDomain.ErrNotFound),
		errors.Is(err, paymentDomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})

	case errors.Is(err, loanDomain.ErrInvalidAmount),
		errors.Is(err, loanDomain.ErrInvalidTerm),
		errors.Is(err, loanDomain.ErrInvalidRate),
		errors.Is(err, accountDomain.ErrInvalidAmount):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	case errors.Is(err, loanDomain.ErrLoanNotActive),
		errors.Is(err, loanDomain.ErrInvalidTransition),
		errors.Is(err, paymentDomain.ErrGatewayRefInUse):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	case errors.Is(err, paymentDomain.ErrOverpayment),
		errors.Is(err, accountDomain.ErrInsufficientFunds):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})

	case errors.Is(err, uow.ErrSerialization):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "concurrent update, retry the request"})

	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
