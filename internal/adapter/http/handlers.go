package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct{ store Pinger }

// NewHandler builds the liveness handler; a nil store skips the store check.
func NewHandler(store Pinger) *Handler { return &Handler{store: store} }

func (h *Handler) Health(c echo.Context) error {
	status, store := http.StatusOK, "ok"
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := h.store.PingContext(ctx); err != nil {
			status, store = http.StatusServiceUnavailable, "unavailable"
		}
	}
	body := map[string]any{
		"status": "ok",
		"store":  store,
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	return c.JSON(status, body)
}
