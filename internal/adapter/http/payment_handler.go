package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	paymentUC "microlend-backend/internal/usecase/payment"
	"microlend-backend/pkg/money"
)

type PaymentHandler struct{ uc *paymentUC.Usecase }

func NewPaymentHandler(uc *paymentUC.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type repayReq struct {
	Amount     float64 `json:"amount"      validate:"required,gt=0,intlike"`
	Gateway    string  `json:"gateway"     validate:"required,oneof=virtual_account bank_transfer mobile_money"`
	GatewayRef string  `json:"gateway_ref" validate:"required,min=6,max=64"`
}

func (h *PaymentHandler) Repay(c echo.Context) error {
	loanID := c.Param("loan_id")
	if loanID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing loan_id path param"})
	}
	var req repayReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	res, err := h.uc.Repay(c.Request().Context(), paymentUC.RepayInput{
		LoanID:     loanID,
		Amount:     money.FromFloat(req.Amount),
		Gateway:    req.Gateway,
		GatewayRef: req.GatewayRef,
	})
	if err != nil {
		return writeDomainErr(c, err)
	}
	// replayed payment beats a duplicate charge; same body, same 200
	if res.Replayed {
		return c.JSON(http.StatusOK, res)
	}
	return c.JSON(http.StatusCreated, res)
}
