package slot

import (
	"context"
	"math/rand/v2"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/appointment-booking/internal/geo"
)

// Sleeper waits for d or until ctx is done, whichever comes first.
type Sleeper func(ctx context.Context, d time.Duration) error

// ContextSleep is the production Sleeper.
func ContextSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Recorder receives search observations. metrics.SlotMetrics implements it.
type Recorder interface {
	ObserveSearch(outcome string, seconds float64)
	ObserveAlternatives(tier string, n int)
}

// Options configures a Service. Zero values select production defaults.
type Options struct {
	Generator GeneratorConfig
	Rand      Rand
	Now       func() time.Time
	// Delay emulates the network round trip of a remote booking API.
	Delay time.Duration
	Sleep Sleeper

	MaxSuggestions          int
	MaxNeighbourSuggestions int

	Logger  *zap.Logger
	Metrics Recorder
}

// Service answers slot queries over an inventory generated once at
// construction. It holds no mutable state after NewService returns, so a
// single instance can be shared by concurrent request handlers.
type Service struct {
	catalog  *geo.Catalog
	slots    []Slot
	byBranch map[string][]Slot
	byID     map[int]int

	generatedAt time.Time
	delay       time.Duration
	sleep       Sleeper
	maxTotal    int
	maxNeighbor int

	log     *zap.Logger
	metrics Recorder
}

// NewService generates the session inventory and returns the service that
// serves it.
func NewService(catalog *geo.Catalog, opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	now := opts.Now()
	slots := Generate(catalog, opts.Generator, opts.Rand, now)
	s := newService(catalog, slots, now, opts)
	st := s.Stats()
	s.log.Info("slot.NewService generated inventory",
		zap.Int("slots", st.Slots),
		zap.Int("active_branches", st.ActiveBranches),
		zap.String("from", now.Format(DateLayout)),
	)
	return s
}

func newService(catalog *geo.Catalog, slots []Slot, generatedAt time.Time, opts Options) *Service {
	s := &Service{
		catalog:     catalog,
		slots:       slots,
		byBranch:    make(map[string][]Slot),
		byID:        make(map[int]int, len(slots)),
		generatedAt: generatedAt,
		delay:       opts.Delay,
		sleep:       opts.Sleep,
		maxTotal:    opts.MaxSuggestions,
		maxNeighbor: opts.MaxNeighbourSuggestions,
		log:         opts.Logger,
		metrics:     opts.Metrics,
	}
	if s.sleep == nil {
		s.sleep = ContextSleep
	}
	if s.maxTotal <= 0 {
		s.maxTotal = 5
	}
	if s.maxNeighbor <= 0 {
		s.maxNeighbor = 2
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.metrics == nil {
		s.metrics = nopRecorder{}
	}
	for i, sl := range slots {
		s.byID[sl.ID] = i
		s.byBranch[sl.BranchID] = append(s.byBranch[sl.BranchID], sl)
	}
	for _, list := range s.byBranch {
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].Date != list[j].Date {
				return list[i].Date < list[j].Date
			}
			return list[i].Time < list[j].Time
		})
	}
	return s
}

// Search returns the slots of c.BranchID dated within [StartDate, EndDate]
// after the simulated latency. An unknown branch, malformed dates or an
// inverted range yield an empty slice. The only error is ctx ending while
// the latency is being simulated.
func (s *Service) Search(ctx context.Context, c Criteria) ([]Slot, error) {
	began := time.Now()
	if err := s.sleep(ctx, s.delay); err != nil {
		s.metrics.ObserveSearch("cancelled", time.Since(began).Seconds())
		return nil, err
	}
	out := s.filter(c)
	outcome := "found"
	if len(out) == 0 {
		outcome = "empty"
	}
	s.metrics.ObserveSearch(outcome, time.Since(began).Seconds())
	s.log.Debug("slot.Search completed",
		zap.String("branch_id", c.BranchID),
		zap.String("start", c.StartDate),
		zap.String("end", c.EndDate),
		zap.Int("count", len(out)),
	)
	return out, nil
}

// SearchWithAlternatives runs Search and, only when it finds nothing,
// attaches ranked alternative branches.
func (s *Service) SearchWithAlternatives(ctx context.Context, c Criteria) (Result, error) {
	slots, err := s.Search(ctx, c)
	if err != nil {
		return Result{}, err
	}
	res := Result{Slots: slots, Alternatives: []Suggestion{}}
	if len(slots) == 0 {
		res.Alternatives = s.Alternatives(c)
	}
	return res, nil
}

func (s *Service) filter(c Criteria) []Slot {
	out := []Slot{}
	start, end, ok := c.dateRange()
	if !ok {
		return out
	}
	for _, sl := range s.byBranch[c.BranchID] {
		if sl.Date >= start && sl.Date <= end {
			out = append(out, sl)
		}
	}
	return out
}

// BranchForProvince returns the first branch of the province, in catalog
// order, that has at least one slot.
func (s *Service) BranchForProvince(provinceID string) (string, bool) {
	for _, b := range s.catalog.BranchesOfProvince(provinceID) {
		if len(s.byBranch[b.ID]) > 0 {
			return b.ID, true
		}
	}
	return "", false
}

// ProvincesWithSlots lists every province. Generation guarantees an active
// branch in each province that has branches.
func (s *Service) ProvincesWithSlots() []string {
	ps := s.catalog.Provinces()
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

// Slot looks up a slot by id.
func (s *Service) Slot(id int) (Slot, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Slot{}, false
	}
	return s.slots[i], true
}

// Catalog returns the catalog the inventory was generated from.
func (s *Service) Catalog() *geo.Catalog { return s.catalog }

// Stats summarises the generated inventory.
func (s *Service) Stats() Stats {
	return Stats{Slots: len(s.slots), ActiveBranches: len(s.byBranch), GeneratedAt: s.generatedAt}
}

type nopRecorder struct{}

func (nopRecorder) ObserveSearch(string, float64)   {}
func (nopRecorder) ObserveAlternatives(string, int) {}
