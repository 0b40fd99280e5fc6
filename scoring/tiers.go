package scoring

// Performance tier thresholds, shared by per-question points and summary
// accuracy percentages.
const (
	tierPerfect = 90
	tierGreat   = 75
	tierGood    = 50
	tierOkay    = 30
)

// Tier returns the label for a per-question score.
func Tier(points int) string {
	switch {
	case points >= tierPerfect:
		return "Perfect!"
	case points >= tierGreat:
		return "Excellent"
	case points >= tierGood:
		return "Good"
	case points >= tierOkay:
		return "Fair"
	case points > 0:
		return "Slow"
	default:
		return "Wrong"
	}
}

// AccuracyStars maps a summary accuracy percentage to 0-3 stars.
func AccuracyStars(percentage float64) int {
	switch {
	case percentage >= tierPerfect:
		return 3
	case percentage >= tierGreat:
		return 2
	case percentage >= tierGood:
		return 1
	default:
		return 0
	}
}
