package slot

import (
	"sort"

	"go.uber.org/zap"

	"github.com/iliyamo/appointment-booking/internal/geo"
)

// Alternatives ranks branches near c.BranchID that have slots in the
// requested range. Tiers are concatenated in proximity order (same city,
// same province, neighbouring provinces) and each tier is ordered by
// descending slot count, ties keeping catalog order. The neighbouring tier
// stops after MaxNeighbourSuggestions entries and the whole list is cut at
// MaxSuggestions. An unknown branch or an invalid range returns an empty
// list.
func (s *Service) Alternatives(c Criteria) []Suggestion {
	out := []Suggestion{}
	start, end, ok := c.dateRange()
	if !ok {
		return out
	}
	branch, ok := s.catalog.Branch(c.BranchID)
	if !ok {
		return out
	}
	city, _ := s.catalog.City(branch.CityID)
	province, _ := s.catalog.Province(city.ProvinceID)

	var sameCity []Suggestion
	for _, b := range s.catalog.BranchesOfCity(city.ID) {
		if b.ID == branch.ID {
			continue
		}
		if sg, ok := s.suggest(b, city, province, TierSameCity, start, end); ok {
			sameCity = append(sameCity, sg)
		}
	}

	var sameProvince []Suggestion
	for _, other := range s.catalog.CitiesOfProvince(province.ID) {
		if other.ID == city.ID {
			continue
		}
		for _, b := range s.catalog.BranchesOfCity(other.ID) {
			if sg, ok := s.suggest(b, other, province, TierSameProvince, start, end); ok {
				sameProvince = append(sameProvince, sg)
			}
		}
	}

	var neighbouring []Suggestion
neighbours:
	for _, pid := range s.catalog.Neighbours(province.ID) {
		np, ok := s.catalog.Province(pid)
		if !ok {
			continue
		}
		for _, nc := range s.catalog.CitiesOfProvince(np.ID) {
			for _, b := range s.catalog.BranchesOfCity(nc.ID) {
				if sg, ok := s.suggest(b, nc, np, TierNeighboringProvince, start, end); ok {
					neighbouring = append(neighbouring, sg)
					if len(neighbouring) >= s.maxNeighbor {
						break neighbours
					}
				}
			}
		}
	}

	for _, tier := range [][]Suggestion{sameCity, sameProvince, neighbouring} {
		byCountDesc(tier)
		out = append(out, tier...)
	}
	if len(out) > s.maxTotal {
		out = out[:s.maxTotal]
	}

	s.metrics.ObserveAlternatives(string(TierSameCity), len(sameCity))
	s.metrics.ObserveAlternatives(string(TierSameProvince), len(sameProvince))
	s.metrics.ObserveAlternatives(string(TierNeighboringProvince), len(neighbouring))
	s.log.Debug("slot.Alternatives ranked",
		zap.String("branch_id", branch.ID),
		zap.Int("same_city", len(sameCity)),
		zap.Int("same_province", len(sameProvince)),
		zap.Int("neighbouring", len(neighbouring)),
		zap.Int("returned", len(out)),
	)
	return out
}

// suggest reports b as an alternative when it has slots in [start, end].
func (s *Service) suggest(b geo.Branch, city geo.City, province geo.Province, tier Tier, start, end string) (Suggestion, bool) {
	count := 0
	next := ""
	for _, sl := range s.byBranch[b.ID] {
		if sl.Date >= start && sl.Date <= end {
			count++
		}
		// Strictly after the requested start and not bounded by the end,
		// so the hint may point past the window the user asked for.
		if next == "" && sl.Date > start {
			next = sl.Date
		}
	}
	if count == 0 {
		return Suggestion{}, false
	}
	return Suggestion{
		BranchID:            b.ID,
		BranchName:          b.Name,
		CityName:            city.Name,
		ProvinceName:        province.Name,
		Tier:                tier,
		AvailableSlotsCount: count,
		NextAvailableDate:   next,
	}, true
}

func byCountDesc(list []Suggestion) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].AvailableSlotsCount > list[j].AvailableSlotsCount
	})
}
