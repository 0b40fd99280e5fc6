package engine

import (
	"math"
	"regexp"
	"strings"

	"github.com/girify/streetquiz/models"
)

const (
	// DistractorCount is the number of wrong options per question.
	DistractorCount = 3

	// nearbyThreshold is the lat/lng delta under which two streets count as
	// geographic neighbors, roughly one kilometer.
	nearbyThreshold = 0.01
)

// streetTypePattern matches the Catalan street-type word a name starts with,
// optionally followed by an article fragment ("Carrer de", "Plaça dels", ...).
var streetTypePattern = regexp.MustCompile(
	`^(?i)(Carrer|Avinguda|Plaça|Passeig|Passatge|Ronda|Via|Camí|Jardins|Parc|Rambla|Travessera)(\s+d(e|els|es|el|ala))?`)

// namePrefix returns the street-type prefix of a name, or "" when the name
// does not start with a known type word.
func namePrefix(name string) string {
	return strings.TrimSpace(streetTypePattern.FindString(name))
}

// SelectDistractors deterministically picks three plausible wrong answers for
// the target. Candidates sharing the target's street-type prefix are preferred
// (same road type reads as plausible); when fewer than three exist the whole
// pool minus the target is used. If the target has geographic neighbors within
// nearbyThreshold, exactly one of them is included, chosen by seed modulo the
// neighbor count, and the remaining slots are filled from the seed-shuffled
// prefix pool.
func SelectDistractors(pool []models.Street, target models.Street, seed int64) []models.Street {
	prefix := namePrefix(target.Name)

	candidates := make([]models.Street, 0, len(pool))
	for _, s := range pool {
		if s.ID != target.ID && namePrefix(s.Name) == prefix {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) < DistractorCount {
		candidates = candidates[:0]
		for _, s := range pool {
			if s.ID != target.ID {
				candidates = append(candidates, s)
			}
		}
	}

	neighbors := make([]models.Street, 0)
	for _, s := range pool {
		latDiff := math.Abs(s.Lat - target.Lat)
		lngDiff := math.Abs(s.Lng - target.Lng)
		if latDiff < nearbyThreshold && lngDiff < nearbyThreshold && s.Name != target.Name {
			neighbors = append(neighbors, s)
		}
	}

	if len(neighbors) > 0 {
		neighbor := neighbors[int(seed%int64(len(neighbors)))]
		remaining := make([]models.Street, 0, len(candidates))
		for _, s := range candidates {
			if s.ID != neighbor.ID {
				remaining = append(remaining, s)
			}
		}
		shuffled := SeededShuffle(remaining, seed+1)
		distractors := append([]models.Street{neighbor}, firstN(shuffled, DistractorCount-1)...)
		return distractors
	}

	return firstN(SeededShuffle(candidates, seed), DistractorCount)
}

func firstN(streets []models.Street, n int) []models.Street {
	if len(streets) < n {
		return streets
	}
	return streets[:n]
}
