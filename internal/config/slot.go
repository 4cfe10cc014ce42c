package config

import "time"

// SlotConfig tunes inventory generation, the simulated latency of the
// search and booking calls, and the size of the alternatives list.
type SlotConfig struct {
	SelectionRatio          float64
	WindowDays              int
	SearchDelay             time.Duration
	BookDelay               time.Duration
	MaxSuggestions          int
	MaxNeighbourSuggestions int
}

func LoadSlotConfig() SlotConfig {
	cfg := SlotConfig{
		SelectionRatio:          envFloat("SLOT_SELECTION_RATIO", 0.6),
		WindowDays:              envInt("SLOT_WINDOW_DAYS", 30),
		SearchDelay:             envDur("SLOT_SEARCH_DELAY", time.Second),
		BookDelay:               envDur("SLOT_BOOK_DELAY", time.Second),
		MaxSuggestions:          envInt("SLOT_MAX_SUGGESTIONS", 5),
		MaxNeighbourSuggestions: envInt("SLOT_MAX_NEIGHBOUR_SUGGESTIONS", 2),
	}
	if cfg.SelectionRatio <= 0 || cfg.SelectionRatio > 1 {
		cfg.SelectionRatio = 0.6
	}
	if cfg.WindowDays < 1 {
		cfg.WindowDays = 30
	}
	if cfg.SearchDelay < 0 {
		cfg.SearchDelay = 0
	}
	if cfg.BookDelay < 0 {
		cfg.BookDelay = 0
	}
	return cfg
}
