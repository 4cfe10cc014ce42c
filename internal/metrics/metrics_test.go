package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSlotMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSlotMetrics(reg)

	m.ObserveSearch("empty", 0.5)
	m.ObserveSearch("empty", 0.2)
	m.ObserveSearch("found", 0.1)
	m.ObserveAlternatives("same-city", 2)
	m.ObserveBooking("confirmed")
	m.SetInventory(420, 28)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.searchTotal.WithLabelValues("empty")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.searchTotal.WithLabelValues("found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingsTotal.WithLabelValues("confirmed")))
	assert.Equal(t, 420.0, testutil.ToFloat64(m.inventorySlots))
	assert.Equal(t, 28.0, testutil.ToFloat64(m.activeBranches))
}

func TestSlotMetricsNilSafe(t *testing.T) {
	var m *SlotMetrics
	m.ObserveSearch("found", 0.1)
	m.ObserveAlternatives("same-city", 1)
	m.ObserveBooking("confirmed")
	m.SetInventory(1, 1)
}
