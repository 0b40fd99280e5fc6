// Package streets loads and sanitizes the immutable street reference pool.
package streets

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/girify/streetquiz/models"
)

// LoadPool reads the street dataset from a JSON file and returns the sanitized
// pool. Called once at process start; the result is shared read-only.
func LoadPool(path string) ([]models.Street, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read streets file: %w", err)
	}

	var pool []models.Street
	if err := json.Unmarshal(raw, &pool); err != nil {
		return nil, fmt.Errorf("parse streets file: %w", err)
	}

	return Sanitize(pool), nil
}

// Sanitize filters out streets that make bad quiz questions and deduplicates
// by name. Highways and ring-road segments (autopista, autovia, B-1x/B-2x
// codes) are excluded, as are entries without geometry. When several entries
// share a name, the one with the most geometry points wins.
func Sanitize(pool []models.Street) []models.Street {
	byName := make(map[string]models.Street)
	order := make([]string, 0, len(pool))

	for _, s := range pool {
		if !isQuizzable(s.Name) || len(s.Geometry) == 0 {
			continue
		}
		existing, ok := byName[s.Name]
		if !ok {
			byName[s.Name] = s
			order = append(order, s.Name)
			continue
		}
		if geometryPoints(s) > geometryPoints(existing) {
			byName[s.Name] = s
		}
	}

	sanitized := make([]models.Street, 0, len(order))
	for _, name := range order {
		sanitized = append(sanitized, byName[name])
	}
	return sanitized
}

func isQuizzable(name string) bool {
	if name == "" {
		return false
	}
	lower := strings.ToLower(name)
	return !strings.Contains(lower, "autopista") &&
		!strings.Contains(lower, "autovia") &&
		!strings.Contains(lower, "b-1") &&
		!strings.Contains(lower, "b-2")
}

func geometryPoints(s models.Street) int {
	total := 0
	for _, line := range s.Geometry {
		total += len(line)
	}
	return total
}
