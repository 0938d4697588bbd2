package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler serves process-level endpoints.
type Handler struct{ backend string }

func NewHandler(backend string) *Handler { return &Handler{backend: backend} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"ledger": h.backend,
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}
