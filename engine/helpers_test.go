package engine

import (
	"fmt"

	"github.com/girify/streetquiz/models"
)

// testPool builds n streets with tiers cycling 1..4 and coordinates spread
// far enough apart that no two are geographic neighbors.
func testPool(n int) []models.Street {
	prefixes := []string{"Carrer de", "Avinguda de", "Plaça de", "Passeig de"}
	pool := make([]models.Street, 0, n)
	for i := 0; i < n; i++ {
		lat := 41.0 + float64(i)*0.1
		lng := 2.0 + float64(i)*0.1
		pool = append(pool, models.Street{
			ID:   fmt.Sprintf("s%03d", i),
			Name: fmt.Sprintf("%s Prova %d", prefixes[i%len(prefixes)], i),
			Tier: i%4 + 1,
			Lat:  lat,
			Lng:  lng,
		})
	}
	return pool
}

func tierCounts(streets []models.Street) map[int]int {
	counts := make(map[int]int)
	for _, s := range streets {
		counts[s.Tier]++
	}
	return counts
}
