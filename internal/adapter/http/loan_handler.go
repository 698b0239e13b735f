package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	loanUC "microlend-backend/internal/usecase/loan"
	"microlend-backend/pkg/money"
)

type LoanHandler struct{ uc *loanUC.Usecase }

func NewLoanHandler(uc *loanUC.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	BorrowerID string  `json:"borrower_id" validate:"required,hex32"`
	Principal  float64 `json:"principal"   validate:"required,gt=0,intlike"`
	Purpose    string  `json:"purpose"     validate:"required,max=255"`
	TermMonths int     `json:"term_months" validate:"required,gte=1,lte=60"`
}

func (h *LoanHandler) SubmitApplication(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Submit(c.Request().Context(), loanUC.SubmitInput{
		BorrowerID: req.BorrowerID,
		Principal:  money.FromFloat(req.Principal),
		Purpose:    req.Purpose,
		TermMonths: req.TermMonths,
	})
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListLoansForUser(c echo.Context) error {
	dtos, err := h.uc.ListForUser(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *LoanHandler) GetStatement(c echo.Context) error {
	entries, err := h.uc.Statement(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}
