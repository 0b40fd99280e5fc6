package streets

import (
	"math"
	"sort"

	"github.com/girify/streetquiz/models"
)

// MaxHints is the number of hint streets computed per target.
const MaxHints = 3

const earthRadiusKm = 6371.0

// HintStreets returns up to MaxHints streets related to the target: streets
// whose polylines cross the target's first, topped up with the nearest streets
// by centroid distance. Deterministic for a fixed pool order, so every client
// shows the same hints.
func HintStreets(pool []models.Street, target models.Street) []models.Street {
	if len(target.Geometry) == 0 {
		return nil
	}

	hints := make([]models.Street, 0, MaxHints)
	for _, s := range pool {
		if s.ID == target.ID || len(s.Geometry) == 0 {
			continue
		}
		if geometriesCross(target.Geometry, s.Geometry) {
			hints = append(hints, s)
			if len(hints) == MaxHints {
				return hints
			}
		}
	}

	// Not enough intersecting streets; fall back to nearest by distance from
	// the target's centroid to the candidate's first point.
	taken := make(map[string]struct{}, len(hints))
	for _, h := range hints {
		taken[h.ID] = struct{}{}
	}
	centLat, centLng := centroid(target.Geometry)

	type candidate struct {
		street models.Street
		dist   float64
	}
	candidates := make([]candidate, 0, len(pool))
	for _, s := range pool {
		if s.ID == target.ID || len(s.Geometry) == 0 || len(s.Geometry[0]) == 0 {
			continue
		}
		if _, ok := taken[s.ID]; ok {
			continue
		}
		p := s.Geometry[0][0]
		candidates = append(candidates, candidate{
			street: s,
			dist:   haversineKm(centLat, centLng, p[0], p[1]),
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})

	for _, c := range candidates {
		hints = append(hints, c.street)
		if len(hints) == MaxHints {
			break
		}
	}
	return hints
}

// geometriesCross reports whether any segment of a crosses any segment of b.
// Points are [lat, lng]; at city scale the planar test is accurate enough.
func geometriesCross(a, b [][][]float64) bool {
	for _, lineA := range a {
		for i := 0; i+1 < len(lineA); i++ {
			for _, lineB := range b {
				for j := 0; j+1 < len(lineB); j++ {
					if segmentsIntersect(lineA[i], lineA[i+1], lineB[j], lineB[j+1]) {
						return true
					}
				}
			}
		}
	}
	return false
}

// segmentsIntersect uses the orientation test for proper and collinear
// intersections of segments p1-p2 and q1-q2.
func segmentsIntersect(p1, p2, q1, q2 []float64) bool {
	d1 := cross(q1, q2, p1)
	d2 := cross(q1, q2, p2)
	d3 := cross(p1, p2, q1)
	d4 := cross(p1, p2, q2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	return (d1 == 0 && onSegment(q1, q2, p1)) ||
		(d2 == 0 && onSegment(q1, q2, p2)) ||
		(d3 == 0 && onSegment(p1, p2, q1)) ||
		(d4 == 0 && onSegment(p1, p2, q2))
}

func cross(a, b, c []float64) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

func onSegment(a, b, p []float64) bool {
	return math.Min(a[0], b[0]) <= p[0] && p[0] <= math.Max(a[0], b[0]) &&
		math.Min(a[1], b[1]) <= p[1] && p[1] <= math.Max(a[1], b[1])
}

func centroid(geometry [][][]float64) (lat, lng float64) {
	count := 0
	for _, line := range geometry {
		for _, p := range line {
			lat += p[0]
			lng += p[1]
			count++
		}
	}
	if count == 0 {
		return 0, 0
	}
	return lat / float64(count), lng / float64(count)
}

func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLng := (lng2 - lng1) * rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
