package slot

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/appointment-booking/internal/geo"
)

var monday = time.Date(2025, time.January, 6, 9, 30, 0, 0, time.UTC)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestGenerateStructuralInvariants(t *testing.T) {
	catalog := geo.Default()
	windowEnd := monday.AddDate(0, 0, 29).Format(DateLayout)
	today := monday.Format(DateLayout)

	for seed := uint64(1); seed <= 20; seed++ {
		slots := Generate(catalog, DefaultGeneratorConfig(), seeded(seed), monday)
		require.NotEmpty(t, slots)

		type key struct{ branch, date, time string }
		seen := map[key]bool{}
		perDay := map[[2]string]int{}
		for i, s := range slots {
			assert.Equal(t, i+1, s.ID, "ids are sequential")

			d, err := time.Parse(DateLayout, s.Date)
			require.NoError(t, err)
			assert.NotEqual(t, time.Saturday, d.Weekday())
			assert.NotEqual(t, time.Sunday, d.Weekday())
			assert.GreaterOrEqual(t, s.Date, today)
			assert.LessOrEqual(t, s.Date, windowEnd)

			k := key{s.BranchID, s.Date, s.Time}
			assert.False(t, seen[k], "duplicate slot %+v", k)
			seen[k] = true
			perDay[[2]string{s.BranchID, s.Date}]++
		}
		for k, n := range perDay {
			assert.True(t, n >= 1 && n <= 6, "%v has %d slots", k, n)
		}
	}
}

func TestGenerateSelectsCeilingShareOfEachProvince(t *testing.T) {
	catalog := geo.Default()
	for seed := uint64(1); seed <= 50; seed++ {
		slots := Generate(catalog, DefaultGeneratorConfig(), seeded(seed), monday)
		active := map[string]bool{}
		for _, s := range slots {
			active[s.BranchID] = true
		}
		for _, p := range catalog.Provinces() {
			branches := catalog.BranchesOfProvince(p.ID)
			n := 0
			for _, b := range branches {
				if active[b.ID] {
					n++
				}
			}
			want := int(math.Ceil(0.6*float64(len(branches)) - 1e-9))
			assert.Equal(t, want, n, "province %s seed %d", p.ID, seed)
			assert.GreaterOrEqual(t, n, 1, "province %s has no active branch", p.ID)
		}
	}
}

func TestGenerateIsReproducibleWithSeed(t *testing.T) {
	catalog := geo.Default()
	a := Generate(catalog, DefaultGeneratorConfig(), seeded(7), monday)
	b := Generate(catalog, DefaultGeneratorConfig(), seeded(7), monday)
	assert.Equal(t, a, b)
}

func TestGenerateHonoursWindowDays(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.WindowDays = 5
	slots := Generate(geo.Default(), cfg, seeded(3), monday)
	for _, s := range slots {
		assert.LessOrEqual(t, s.Date, "2025-01-10")
	}
}

func TestGenerateSkipsWeekendOnlyWindow(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.WindowDays = 2
	saturday := time.Date(2025, time.January, 11, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, Generate(geo.Default(), cfg, seeded(3), saturday))
}

func TestSlotsPerDayThresholds(t *testing.T) {
	w := DefaultGeneratorConfig().SlotsPerDayWeights
	cases := []struct {
		r    float64
		want int
	}{
		{0, 1}, {0.0999, 1},
		{0.10, 2}, {0.2999, 2},
		{0.30, 3}, {0.5999, 3},
		{0.60, 4}, {0.8499, 4},
		{0.85, 5}, {0.9499, 5},
		{0.95, 6}, {0.9999, 6},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, slotsPerDay(w, tc.r), "r=%v", tc.r)
	}
}

func TestPickTimesDistinctAndOrdered(t *testing.T) {
	palette := DefaultGeneratorConfig().TimePalette
	rnd := seeded(11)
	for n := 1; n <= 6; n++ {
		got := pickTimes(palette, n, rnd)
		require.Len(t, got, n)
		for i := 1; i < len(got); i++ {
			assert.Less(t, got[i-1], got[i])
		}
	}
	assert.Len(t, pickTimes(palette, 20, rnd), len(palette))
}

func TestWithDefaultsRepairsInvalidConfig(t *testing.T) {
	cfg := GeneratorConfig{SelectionRatio: 3}.withDefaults()
	assert.Equal(t, DefaultGeneratorConfig(), cfg)
}

func TestSlotsPerDayBoundaryAfterFloatDrift(t *testing.T) {
	// 0.1+0.2 sums to 0.30000000000000004 without rounding.
	w := []float64{0.1, 0.2, 0.7}
	assert.Equal(t, 2, slotsPerDay(w, 0.2999))
	assert.Equal(t, 3, slotsPerDay(w, 0.3))
	assert.Equal(t, 3, slotsPerDay(w, 0.9999))
}
