// Package slot owns the session's appointment inventory: it generates the
// synthetic slot set once, answers branch/date-range searches over that
// frozen snapshot and, when a search comes back empty, ranks nearby branches
// that do have availability.
package slot

import "time"

// DateLayout is the calendar date format used for slot dates and search
// bounds. Dates in this layout compare correctly as strings.
const DateLayout = "2006-01-02"

// Slot is a bookable (date, time) pair at a branch.
//
// Fields:
//
//	ID       – sequential identifier, unique within the process.
//	Date     – calendar date in DateLayout, always Monday to Friday.
//	Time     – HH:MM start time taken from the generator's time palette.
//	BranchID – geo.Branch the slot belongs to.
type Slot struct {
	ID       int    `json:"id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	BranchID string `json:"branch_id"`
}

// Criteria describes one search request. Services is carried so callers
// can echo the selection back; it does not narrow the result.
type Criteria struct {
	BranchID  string   `json:"branch_id"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Services  []string `json:"services,omitempty"`
}

// Tier classifies how far an alternative branch is from the requested one.
type Tier string

const (
	TierSameCity            Tier = "same-city"
	TierSameProvince        Tier = "same-province"
	TierNeighboringProvince Tier = "neighboring-province"
)

// Suggestion is an alternative branch offered after an empty search.
type Suggestion struct {
	BranchID            string `json:"branch_id"`
	BranchName          string `json:"branch_name"`
	CityName            string `json:"city_name"`
	ProvinceName        string `json:"province_name"`
	Tier                Tier   `json:"distance_tier"`
	AvailableSlotsCount int    `json:"available_slots_count"`
	NextAvailableDate   string `json:"next_available_date,omitempty"`
}

// Result pairs the slots of a search with the alternatives computed when
// the slot list is empty.
type Result struct {
	Slots        []Slot       `json:"slots"`
	Alternatives []Suggestion `json:"alternatives"`
}

// Stats summarises the generated inventory.
type Stats struct {
	Slots          int       `json:"slots"`
	ActiveBranches int       `json:"active_branches"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// dateRange parses the criteria bounds. ok is false for malformed dates and
// for a start after the end; both are treated as "nothing matches".
func (c Criteria) dateRange() (start, end string, ok bool) {
	s, err := time.Parse(DateLayout, c.StartDate)
	if err != nil {
		return "", "", false
	}
	e, err := time.Parse(DateLayout, c.EndDate)
	if err != nil {
		return "", "", false
	}
	if s.After(e) {
		return "", "", false
	}
	return s.Format(DateLayout), e.Format(DateLayout), true
}
