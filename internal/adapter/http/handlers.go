package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler serves the endpoints that belong to no single usecase.
type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

// Health is the liveness probe target.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "microlend-backend",
		"time":    time.Now().UTC().Format(time.RFC3339Nano),
	})
}
