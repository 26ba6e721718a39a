package pokedexstore

import (
	"time"

	"github.com/Jose-https1/pokedex-api/pkg/models"
)

// ComputeStats aggregates an already-listed collection: totals, completion
// percentage and the longest run of consecutive capture days. Taking the
// entries lets the caller reuse one listing for several aggregations. The
// most-common-type figure needs species data and is filled in by the
// caller.
func ComputeStats(entries []models.PokedexEntry) *models.PokedexStats {
	stats := &models.PokedexStats{TotalPokemon: len(entries)}

	captureDays := map[time.Time]bool{}
	for _, e := range entries {
		if e.IsCaptured {
			stats.Captured++
		}
		if e.Favorite {
			stats.Favorites++
		}
		if e.CaptureDate != nil {
			day := e.CaptureDate.UTC().Truncate(24 * time.Hour)
			captureDays[day] = true
		}
	}

	if stats.TotalPokemon > 0 {
		pct := float64(stats.Captured) * 100.0 / float64(stats.TotalPokemon)
		// one decimal place, matching the API contract
		stats.CompletionPercentage = float64(int(pct*10+0.5)) / 10
	}

	stats.CaptureStreakDays = longestDailyStreak(captureDays)
	return stats
}

// longestDailyStreak returns the length of the longest run of consecutive
// days present in the set.
func longestDailyStreak(days map[time.Time]bool) int {
	longest := 0
	for day := range days {
		// Only count from the start of a run.
		if days[day.AddDate(0, 0, -1)] {
			continue
		}
		length := 1
		for next := day.AddDate(0, 0, 1); days[next]; next = next.AddDate(0, 0, 1) {
			length++
		}
		if length > longest {
			longest = length
		}
	}
	return longest
}
