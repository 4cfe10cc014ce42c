package metrics

import "github.com/prometheus/client_golang/prometheus"

// SlotMetrics exposes counters/histograms for slot searches and bookings.
type SlotMetrics struct {
	searchTotal    *prometheus.CounterVec
	searchLatency  *prometheus.HistogramVec
	alternatives   *prometheus.HistogramVec
	bookingsTotal  *prometheus.CounterVec
	inventorySlots prometheus.Gauge
	activeBranches prometheus.Gauge
}

func NewSlotMetrics(reg prometheus.Registerer) *SlotMetrics {
	m := &SlotMetrics{
		searchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "appointments",
			Subsystem: "slots",
			Name:      "search_total",
			Help:      "Slot searches by outcome (found, empty, cancelled)",
		}, []string{"outcome"}),
		searchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "appointments",
			Subsystem: "slots",
			Name:      "search_latency_seconds",
			Help:      "Latency of slot searches including simulated delay",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		alternatives: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "appointments",
			Subsystem: "slots",
			Name:      "alternatives_per_tier",
			Help:      "Alternative branches found per proximity tier before truncation",
			Buckets:   []float64{0, 1, 2, 3, 5, 8},
		}, []string{"tier"}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "appointments",
			Subsystem: "bookings",
			Name:      "total",
			Help:      "Booking attempts by status",
		}, []string{"status"}),
		inventorySlots: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "appointments",
			Subsystem: "slots",
			Name:      "inventory_size",
			Help:      "Number of slots generated for this process",
		}),
		activeBranches: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "appointments",
			Subsystem: "slots",
			Name:      "active_branches",
			Help:      "Branches holding at least one slot",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.searchTotal, m.searchLatency, m.alternatives, m.bookingsTotal, m.inventorySlots, m.activeBranches)
	return m
}

func (m *SlotMetrics) ObserveSearch(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.searchTotal.WithLabelValues(outcome).Inc()
	m.searchLatency.WithLabelValues(outcome).Observe(seconds)
}

func (m *SlotMetrics) ObserveAlternatives(tier string, n int) {
	if m == nil {
		return
	}
	m.alternatives.WithLabelValues(tier).Observe(float64(n))
}

func (m *SlotMetrics) ObserveBooking(status string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(status).Inc()
}

func (m *SlotMetrics) SetInventory(slots, branches int) {
	if m == nil {
		return
	}
	m.inventorySlots.Set(float64(slots))
	m.activeBranches.Set(float64(branches))
}
