package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	ping func(ctx context.Context) error
}

func NewHealthHandler(ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{
		ping: ping,
	}
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status, database, code := "ok", "connected", http.StatusOK
	if err := h.ping(ctx); err != nil {
		status, database, code = "degraded", err.Error(), http.StatusServiceUnavailable
	}

	return c.JSON(code, map[string]string{
		"status":   status,
		"database": database,
		"time":     time.Now().Format(time.RFC3339),
	})
}
