package engine

import (
	"math"
	"time"

	"github.com/girify/streetquiz/models"
)

// The generator is a trigonometric hash: the fractional part of
// sin(seed) * seedScale. It is deliberately cheap and reproducible across
// platforms, not cryptographically secure. Daily challenges depend on every
// client producing the same sequence for the same calendar day, so the
// algorithm itself is a wire contract and must not change.
const seedScale = 10000

// SeededRandom returns a pseudo-random value in [0, 1) for the given seed.
func SeededRandom(seed int64) float64 {
	x := math.Sin(float64(seed)) * seedScale
	return x - math.Floor(x)
}

// SeededShuffle returns a shuffled copy of streets. Standard Fisher-Yates from
// the last index down to 1, one draw per swap, incrementing the seed after
// each draw. The same (streets, seed) pair always yields the same permutation.
func SeededShuffle(streets []models.Street, seed int64) []models.Street {
	shuffled := make([]models.Street, len(streets))
	copy(shuffled, streets)

	current := seed
	for i := len(shuffled) - 1; i > 0; i-- {
		j := int(SeededRandom(current) * float64(i+1))
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		current++
	}
	return shuffled
}

// DailySeed returns the seed for now's calendar day as YYYYMMDD.
// The process-local timezone is used; pre-generation tooling must run in the
// same zone as the clients it generates for.
func DailySeed(now time.Time) int64 {
	return SeedForDate(now)
}

// SeedForDate returns the YYYYMMDD seed for an arbitrary date.
func SeedForDate(t time.Time) int64 {
	return int64(t.Year())*10000 + int64(t.Month())*100 + int64(t.Day())
}

// dateFromSeed parses a YYYYMMDD seed back into a local-time date.
func dateFromSeed(seed int64) time.Time {
	year := int(seed / 10000)
	month := time.Month((seed / 100) % 100)
	day := int(seed % 100)
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}
