// Package geo holds the static province → city → branch hierarchy used to
// place appointment slots and to rank alternative branches. The catalog is
// built once at startup and never mutated afterwards; every accessor returns
// copies so callers cannot change the shared tables.
package geo

import (
	"errors"
	"fmt"
)

// ErrDanglingReference is returned by New when a city, branch or adjacency
// entry points at an identifier that is not part of the catalog.
var ErrDanglingReference = errors.New("dangling catalog reference")

// Province is a top level administrative region.
type Province struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// City belongs to exactly one province.
type City struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ProvinceID string `json:"province_id"`
}

// Branch is a physical service location inside a city.
type Branch struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	CityID string `json:"city_id"`
}

// Catalog indexes the hierarchy for constant time lookups while keeping the
// listing order of the source tables. Listing order matters: the suggestion
// ranker walks cities and branches in the order they were declared.
type Catalog struct {
	provinces []Province
	cities    []City
	branches  []Branch

	provinceByID map[string]int
	cityByID     map[string]int
	branchByID   map[string]int

	citiesOf   map[string][]int // province id -> city indexes
	branchesOf map[string][]int // city id -> branch indexes
	adjacency  map[string][]string
}

// New validates the tables and builds a Catalog. Every city must reference a
// known province, every branch a known city, and every adjacency entry (key
// and neighbours) a known province.
func New(provinces []Province, cities []City, branches []Branch, adjacency map[string][]string) (*Catalog, error) {
	c := &Catalog{
		provinces:    append([]Province(nil), provinces...),
		cities:       append([]City(nil), cities...),
		branches:     append([]Branch(nil), branches...),
		provinceByID: make(map[string]int, len(provinces)),
		cityByID:     make(map[string]int, len(cities)),
		branchByID:   make(map[string]int, len(branches)),
		citiesOf:     make(map[string][]int, len(provinces)),
		branchesOf:   make(map[string][]int, len(cities)),
		adjacency:    make(map[string][]string, len(adjacency)),
	}

	for i, p := range c.provinces {
		if _, dup := c.provinceByID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate province %q", p.ID)
		}
		c.provinceByID[p.ID] = i
	}
	for i, city := range c.cities {
		if _, dup := c.cityByID[city.ID]; dup {
			return nil, fmt.Errorf("duplicate city %q", city.ID)
		}
		if _, ok := c.provinceByID[city.ProvinceID]; !ok {
			return nil, fmt.Errorf("city %q -> province %q: %w", city.ID, city.ProvinceID, ErrDanglingReference)
		}
		c.cityByID[city.ID] = i
		c.citiesOf[city.ProvinceID] = append(c.citiesOf[city.ProvinceID], i)
	}
	for i, b := range c.branches {
		if _, dup := c.branchByID[b.ID]; dup {
			return nil, fmt.Errorf("duplicate branch %q", b.ID)
		}
		if _, ok := c.cityByID[b.CityID]; !ok {
			return nil, fmt.Errorf("branch %q -> city %q: %w", b.ID, b.CityID, ErrDanglingReference)
		}
		c.branchByID[b.ID] = i
		c.branchesOf[b.CityID] = append(c.branchesOf[b.CityID], i)
	}
	for from, to := range adjacency {
		if _, ok := c.provinceByID[from]; !ok {
			return nil, fmt.Errorf("adjacency key %q: %w", from, ErrDanglingReference)
		}
		for _, n := range to {
			if _, ok := c.provinceByID[n]; !ok {
				return nil, fmt.Errorf("adjacency %q -> %q: %w", from, n, ErrDanglingReference)
			}
		}
		c.adjacency[from] = append([]string(nil), to...)
	}
	return c, nil
}

// Default returns the catalog built from the package tables. The tables are
// checked by tests, so a failure here is a programming error.
func Default() *Catalog {
	c, err := New(Provinces, Cities, Branches, Adjacency)
	if err != nil {
		panic("geo: invalid default catalog: " + err.Error())
	}
	return c
}

// Provinces lists every province in declaration order.
func (c *Catalog) Provinces() []Province {
	return append([]Province(nil), c.provinces...)
}

// Province looks up a province by id.
func (c *Catalog) Province(id string) (Province, bool) {
	i, ok := c.provinceByID[id]
	if !ok {
		return Province{}, false
	}
	return c.provinces[i], true
}

// City looks up a city by id.
func (c *Catalog) City(id string) (City, bool) {
	i, ok := c.cityByID[id]
	if !ok {
		return City{}, false
	}
	return c.cities[i], true
}

// Branch looks up a branch by id.
func (c *Catalog) Branch(id string) (Branch, bool) {
	i, ok := c.branchByID[id]
	if !ok {
		return Branch{}, false
	}
	return c.branches[i], true
}

// CitiesOfProvince returns the cities of a province, empty when unknown.
func (c *Catalog) CitiesOfProvince(provinceID string) []City {
	idx := c.citiesOf[provinceID]
	out := make([]City, 0, len(idx))
	for _, i := range idx {
		out = append(out, c.cities[i])
	}
	return out
}

// BranchesOfCity returns the branches of a city, empty when unknown.
func (c *Catalog) BranchesOfCity(cityID string) []Branch {
	idx := c.branchesOf[cityID]
	out := make([]Branch, 0, len(idx))
	for _, i := range idx {
		out = append(out, c.branches[i])
	}
	return out
}

// BranchesOfProvince flattens the branches of every city in the province,
// city by city in listing order.
func (c *Catalog) BranchesOfProvince(provinceID string) []Branch {
	var out []Branch
	for _, ci := range c.citiesOf[provinceID] {
		out = append(out, c.BranchesOfCity(c.cities[ci].ID)...)
	}
	return out
}

func (c *Catalog) ProvinceOfCity(cityID string) (Province, bool) {
	city, ok := c.City(cityID)
	if !ok {
		return Province{}, false
	}
	return c.Province(city.ProvinceID)
}

func (c *Catalog) CityOfBranch(branchID string) (City, bool) {
	b, ok := c.Branch(branchID)
	if !ok {
		return City{}, false
	}
	return c.City(b.CityID)
}

// Neighbours returns the provinces listed as adjacent to provinceID, in the
// order the adjacency table declares them.
func (c *Catalog) Neighbours(provinceID string) []string {
	return append([]string(nil), c.adjacency[provinceID]...)
}
