package slot

import (
	"math"
	"sort"
	"time"

	"github.com/iliyamo/appointment-booking/internal/geo"
)

// Rand is the randomness the generator needs. *math/rand/v2.Rand satisfies
// it; tests pass a seeded source to make generation reproducible.
type Rand interface {
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// GeneratorConfig holds the tuning constants of the synthetic inventory.
// The defaults reproduce the demo data the booking UI was built against;
// they are knobs, not business rules.
type GeneratorConfig struct {
	// SelectionRatio is the share of each province's branches that get
	// slots. The count is rounded up, so a province with at least one
	// branch always has an active branch when the ratio is positive.
	SelectionRatio float64
	// WindowDays is the number of calendar days, starting today, covered
	// by the inventory.
	WindowDays int
	// SlotsPerDayWeights[i] is the probability of i+1 slots on an active
	// weekday. Any remainder below 1 falls to the last bucket.
	SlotsPerDayWeights []float64
	// TimePalette lists the HH:MM start times a day can draw from.
	TimePalette []string
}

// DefaultGeneratorConfig returns the standard tuning.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		SelectionRatio:     0.6,
		WindowDays:         30,
		SlotsPerDayWeights: []float64{0.10, 0.20, 0.30, 0.25, 0.10, 0.05},
		TimePalette:        []string{"08:00", "09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00"},
	}
}

func (g GeneratorConfig) withDefaults() GeneratorConfig {
	def := DefaultGeneratorConfig()
	if g.SelectionRatio <= 0 || g.SelectionRatio > 1 {
		g.SelectionRatio = def.SelectionRatio
	}
	if g.WindowDays <= 0 {
		g.WindowDays = def.WindowDays
	}
	if len(g.SlotsPerDayWeights) == 0 {
		g.SlotsPerDayWeights = def.SlotsPerDayWeights
	}
	if len(g.TimePalette) == 0 {
		g.TimePalette = def.TimePalette
	}
	return g
}

// Generate builds the inventory for the window starting at today's calendar
// date. Only the year, month and day of today are used.
func Generate(catalog *geo.Catalog, cfg GeneratorConfig, rnd Rand, today time.Time) []Slot {
	cfg = cfg.withDefaults()
	day0 := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	var out []Slot
	nextID := 1
	for _, p := range catalog.Provinces() {
		for _, b := range pickActive(catalog.BranchesOfProvince(p.ID), cfg.SelectionRatio, rnd) {
			for d := 0; d < cfg.WindowDays; d++ {
				day := day0.AddDate(0, 0, d)
				if !isWeekday(day) {
					continue
				}
				n := slotsPerDay(cfg.SlotsPerDayWeights, rnd.Float64())
				date := day.Format(DateLayout)
				for _, tm := range pickTimes(cfg.TimePalette, n, rnd) {
					out = append(out, Slot{ID: nextID, Date: date, Time: tm, BranchID: b.ID})
					nextID++
				}
			}
		}
	}
	return out
}

// pickActive shuffles the branches and keeps ceil(ratio × len) of them.
func pickActive(branches []geo.Branch, ratio float64, rnd Rand) []geo.Branch {
	if len(branches) == 0 {
		return nil
	}
	// 1e-9 keeps float noise (0.6*5 = 3.0000000000000004) from rounding up.
	n := int(math.Ceil(ratio*float64(len(branches)) - 1e-9))
	if n > len(branches) {
		n = len(branches)
	}
	shuffled := append([]geo.Branch(nil), branches...)
	rnd.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	return shuffled[:n]
}

// slotsPerDay maps one uniform draw onto the cumulative weight table.
// Partial sums are rounded so a draw equal to a bucket boundary, such as
// 0.30 after 0.10+0.20, falls into the upper bucket.
func slotsPerDay(weights []float64, r float64) int {
	cum := 0.0
	for i, w := range weights {
		cum = math.Round((cum+w)*1e12) / 1e12
		if r < cum {
			return i + 1
		}
	}
	return len(weights)
}

// pickTimes returns n distinct palette entries in clock order.
func pickTimes(palette []string, n int, rnd Rand) []string {
	times := append([]string(nil), palette...)
	rnd.Shuffle(len(times), func(i, j int) { times[i], times[j] = times[j], times[i] })
	if n > len(times) {
		n = len(times)
	}
	times = times[:n]
	sort.Strings(times)
	return times
}

func isWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
