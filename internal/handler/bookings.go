package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/appointment-booking/internal/booking"
	"github.com/iliyamo/appointment-booking/internal/middleware"
)

type BookingHandler struct {
	Bookings *booking.Service
	Log      *zap.Logger
}

type createBookingRequest struct {
	SlotID   int      `json:"slot_id" validate:"required,gt=0"`
	Services []string `json:"services" validate:"required,min=1"`
	Email    string   `json:"email" validate:"required,email"`
	Phone    string   `json:"phone" validate:"required,e164"`
}

// Create books a slot for the applicant named in the session token.
func (h *BookingHandler) Create(c echo.Context) error {
	claims, ok := middleware.SessionClaims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing session"})
	}
	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking", "message": err.Error()})
	}

	b, err := h.Bookings.Book(c.Request().Context(), booking.Request{
		Applicant: booking.Applicant{
			IDKind:    booking.IDKind(claims.IDKind),
			IDNumber:  claims.IDNumber,
			FirstName: claims.FirstName,
			LastName:  claims.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
		},
		SlotID:   req.SlotID,
		Services: req.Services,
	})
	if err != nil {
		return h.bookingError(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

// Get returns a booking to the applicant who made it. Bookings of other
// applicants are reported as not found.
func (h *BookingHandler) Get(c echo.Context) error {
	claims, ok := middleware.SessionClaims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing session"})
	}
	b, err := h.Bookings.Get(c.Param("reference"))
	if err != nil || b.Applicant.IDNumber != claims.IDNumber || string(b.Applicant.IDKind) != claims.IDKind {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	return c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) bookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrSlotNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "slot not found"})
	case errors.Is(err, booking.ErrSlotTaken):
		return c.JSON(http.StatusConflict, echo.Map{"error": "slot already booked"})
	case errors.Is(err, booking.ErrUnknownService):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown service", "message": err.Error()})
	case errors.Is(err, booking.ErrInvalidApplicant),
		errors.Is(err, booking.ErrInvalidIDNumber),
		errors.Is(err, booking.ErrInvalidPassport),
		errors.Is(err, booking.ErrUnknownIDKind):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid applicant", "message": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "booking cancelled"})
	default:
		h.Log.Error("handler.Create booking failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}
}
