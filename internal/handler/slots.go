package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/appointment-booking/internal/slot"
)

type SlotHandler struct {
	Slots *slot.Service
	Log   *zap.Logger
}

// Search handles GET /v1/slots/search?branch=&start=&end=&services=a,b.
// An unknown branch or an unusable range is not an error: the response
// simply carries empty lists.
func (h *SlotHandler) Search(c echo.Context) error {
	crit := slot.Criteria{
		BranchID:  strings.TrimSpace(c.QueryParam("branch")),
		StartDate: strings.TrimSpace(c.QueryParam("start")),
		EndDate:   strings.TrimSpace(c.QueryParam("end")),
		Services:  splitList(c.QueryParam("services")),
	}
	if crit.BranchID == "" || crit.StartDate == "" || crit.EndDate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "branch, start and end are required"})
	}

	res, err := h.Slots.SearchWithAlternatives(c.Request().Context(), crit)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "search cancelled"})
		}
		h.Log.Error("handler.Search failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	return c.JSON(http.StatusOK, res)
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
