package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	accountUC "microlend-backend/internal/usecase/account"
)

type AccountHandler struct{ uc *accountUC.Usecase }

func NewAccountHandler(uc *accountUC.Usecase) *AccountHandler { return &AccountHandler{uc: uc} }

func (h *AccountHandler) GetAccount(c echo.Context) error {
	acct, err := h.uc.Get(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, acct)
}

// Reconcile exposes the replayed-vs-stored balance for support tooling.
func (h *AccountHandler) Reconcile(c echo.Context) error {
	stored, replayed, err := h.uc.Reconcile(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"stored":     stored,
		"replayed":   replayed,
		"reconciled": stored.Equal(replayed),
	})
}
