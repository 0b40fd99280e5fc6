package engine

import (
	"time"

	"github.com/girify/streetquiz/models"
)

// DailyPlan is the complete pre-computed challenge for one date: targets in
// play order with their options. Serving this payload and computing questions
// client-side must agree, which holds because both run the same seed schedule.
type DailyPlan struct {
	Seed      int64                 `json:"seed"`
	Date      string                `json:"date"`
	Questions []models.QuizQuestion `json:"questions"`
}

// BuildDailyPlan generates the plan for the date encoded in seed.
func BuildDailyPlan(pool []models.Street, seed int64) DailyPlan {
	targets := SelectDaily(pool, seed)

	questions := make([]models.QuizQuestion, 0, len(targets))
	for i, target := range targets {
		questions = append(questions, BuildQuestion(pool, target, i, seed))
	}

	return DailyPlan{
		Seed:      seed,
		Date:      dateFromSeed(seed).Format(time.DateOnly),
		Questions: questions,
	}
}

// Targets returns the plan's streets in play order.
func (p DailyPlan) Targets() []models.Street {
	targets := make([]models.Street, 0, len(p.Questions))
	for _, q := range p.Questions {
		targets = append(targets, q.Target)
	}
	return targets
}
