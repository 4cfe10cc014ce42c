package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/appointment-booking/internal/slot"
)

// HealthHandler reports liveness along with the inventory summary so an
// operator can tell which generated inventory a process is serving.
type HealthHandler struct {
	Slots *slot.Service
}

// Health returns 200 with {"status":"ok", "inventory": {...}}.
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "inventory": h.Slots.Stats()})
}
