package engine

import (
	"github.com/girify/streetquiz/models"
)

const (
	// MinStreets is the number of targets in a full daily challenge.
	MinStreets = 10

	exclusionDays          = 7
	presentationSeedOffset = 1000

	tier1Count = 3
	tier2Count = 3
	tier3Count = 2
	tier4Count = 2
)

// SelectDaily picks the day's target streets from the pool. The result is a
// pure function of (pool, seed): every client computing today's challenge gets
// the same ordered list.
//
// Streets that would have been selected on any of the previous seven days are
// excluded, unless that filter leaves fewer than MinStreets candidates, in
// which case the full pool is used (availability over strict novelty). The
// exclusion is an approximation: it simulates past days against the current
// full pool rather than reconstructing what was actually available then.
//
// Pools smaller than MinStreets yield short results; callers must handle a
// short daily list.
func SelectDaily(pool []models.Street, seed int64) []models.Street {
	excluded := exclusionSet(pool, seed)

	available := make([]models.Street, 0, len(pool))
	for _, s := range pool {
		if _, ok := excluded[s.ID]; !ok {
			available = append(available, s)
		}
	}
	candidates := pool
	if len(available) >= MinStreets {
		candidates = available
	}

	selected := rawSelection(candidates, seed)

	// Reshuffle with a distinct offset so presentation order is independent
	// of selection order.
	return SeededShuffle(selected, seed+presentationSeedOffset)
}

// rawSelection shuffles the pool and takes quota slices per tier: 3/3/2/2 for
// tiers 1 through 4. If sparse tiers leave the quota result short, the quota
// result is discarded and the first MinStreets of the shuffle are used.
func rawSelection(pool []models.Street, seed int64) []models.Street {
	shuffled := SeededShuffle(pool, seed)

	selected := make([]models.Street, 0, MinStreets)
	selected = append(selected, takeTier(shuffled, 1, tier1Count)...)
	selected = append(selected, takeTier(shuffled, 2, tier2Count)...)
	selected = append(selected, takeTier(shuffled, 3, tier3Count)...)
	selected = append(selected, takeTier(shuffled, 4, tier4Count)...)

	if len(selected) < MinStreets {
		if len(shuffled) <= MinStreets {
			return shuffled
		}
		return shuffled[:MinStreets]
	}
	return selected
}

func takeTier(streets []models.Street, tier, count int) []models.Street {
	taken := make([]models.Street, 0, count)
	for _, s := range streets {
		if s.Tier != tier {
			continue
		}
		taken = append(taken, s)
		if len(taken) == count {
			break
		}
	}
	return taken
}

// exclusionSet unions the ids that rawSelection would have produced on each of
// the previous exclusionDays calendar days.
func exclusionSet(pool []models.Street, seed int64) map[string]struct{} {
	day := dateFromSeed(seed)
	excluded := make(map[string]struct{})
	for i := 1; i <= exclusionDays; i++ {
		pastSeed := SeedForDate(day.AddDate(0, 0, -i))
		for _, s := range rawSelection(pool, pastSeed) {
			excluded[s.ID] = struct{}{}
		}
	}
	return excluded
}
