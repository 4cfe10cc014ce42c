package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/appointment-booking/internal/booking"
	"github.com/iliyamo/appointment-booking/internal/session"
)

type SessionHandler struct {
	Issuer *session.Issuer
	Log    *zap.Logger
}

type startSessionRequest struct {
	IDKind    string `json:"id_kind" validate:"required,oneof=sa_id passport"`
	IDNumber  string `json:"id_number" validate:"required"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
}

// Start validates the applicant's identity document and issues a session
// token carrying it to the booking step.
func (h *SessionHandler) Start(c echo.Context) error {
	var req startSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid applicant", "message": err.Error()})
	}
	kind := booking.IDKind(req.IDKind)
	number := booking.NormalizeIdentity(kind, req.IDNumber)
	if err := booking.ValidateIdentity(kind, number); err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, booking.ErrUnknownIDKind) {
			status = http.StatusBadRequest
		}
		return c.JSON(status, echo.Map{"error": err.Error()})
	}

	tok, err := h.Issuer.Issue(session.Identity{
		IDKind:    string(kind),
		IDNumber:  number,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.Log.Error("handler.Start issue token failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
	}
	return c.JSON(http.StatusCreated, tok)
}
