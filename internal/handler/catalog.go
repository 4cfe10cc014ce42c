// Package handler exposes the HTTP handlers of the appointment API. The
// catalog handlers serve the location picker; slot, session and booking
// handlers drive the booking flow.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/appointment-booking/internal/booking"
	"github.com/iliyamo/appointment-booking/internal/geo"
	"github.com/iliyamo/appointment-booking/internal/slot"
)

// CatalogHandler serves provinces, cities, branches and services.
type CatalogHandler struct {
	Slots *slot.Service
}

func (h *CatalogHandler) catalog() *geo.Catalog { return h.Slots.Catalog() }

// ListProvinces returns every province in display order.
func (h *CatalogHandler) ListProvinces(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": h.catalog().Provinces()})
}

// ListProvincesWithSlots returns the ids of provinces that have at least one
// bookable slot.
func (h *CatalogHandler) ListProvincesWithSlots(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": h.Slots.ProvincesWithSlots()})
}

func (h *CatalogHandler) ListCitiesOfProvince(c echo.Context) error {
	id := c.Param("id")
	if _, ok := h.catalog().Province(id); !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "province not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": h.catalog().CitiesOfProvince(id)})
}

// BranchForProvince picks the branch the province card links to: the first
// branch of the province that has slots.
func (h *CatalogHandler) BranchForProvince(c echo.Context) error {
	id := c.Param("id")
	if _, ok := h.catalog().Province(id); !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "province not found"})
	}
	branchID, ok := h.Slots.BranchForProvince(id)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no branch with available slots"})
	}
	b, _ := h.catalog().Branch(branchID)
	return c.JSON(http.StatusOK, b)
}

func (h *CatalogHandler) ListBranchesOfCity(c echo.Context) error {
	id := c.Param("id")
	if _, ok := h.catalog().City(id); !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "city not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": h.catalog().BranchesOfCity(id)})
}

func (h *CatalogHandler) ListServices(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": booking.Services})
}
