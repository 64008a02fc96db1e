package events

import (
	"time"

	"go-gia/types"
)

// Fallback modes.
const (
	ModeUnavailable = "unavailable"
	ModeSamples     = "samples"
)

// unavailableEvent is served when the live feed cannot be used.
func unavailableEvent(now time.Time) []types.Event {
	return []types.Event{
		{
			ID:          1,
			Title:       "Global News Service Unavailable",
			Description: "Live news feed is temporarily unavailable. Showing placeholder data.",
			Severity:    types.Medium,
			Date:        now.Format(time.DateOnly),
			Regions:     []string{globalRegion},
			Source:      "System",
		},
	}
}

// sampleEvents is the offline demo list of historical events.
func sampleEvents() []types.Event {
	return []types.Event{
		{
			ID:          1,
			Title:       "Middle East Oil Crisis",
			Description: "Tensions disrupt 15% of global oil supply",
			Severity:    types.High,
			Date:        "2026-01-05",
			Regions:     []string{"Middle East", "Global"},
		},
		{
			ID:          2,
			Title:       "Ukraine Grain Blockade",
			Description: "Black Sea exports halted affecting food prices",
			Severity:    types.High,
			Date:        "2026-01-04",
			Regions:     []string{"Europe", "Global"},
		},
		{
			ID:          3,
			Title:       "US-China Tech Tariffs",
			Description: "New 25% tariffs on electronics imports",
			Severity:    types.Medium,
			Date:        "2026-01-03",
			Regions:     []string{"USA", "China", "Global"},
		},
	}
}
