// models/models.go
package models

import (
	"time"
)

// Street is one entry of the immutable reference pool. Tier encodes the road
// classification (1 = major thoroughfare, 4 = residential); quota-based daily
// selection keys off it. IDs are unique within the pool.
type Street struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Tier     int           `json:"tier"`
	Geometry [][][]float64 `json:"geometry"`
	Lat      float64       `json:"lat,omitempty"`
	Lng      float64       `json:"lng,omitempty"`
}

// QuizQuestion is a generated question: the target street plus three
// distractors, already in presentation order. The target appears in Options
// exactly once.
type QuizQuestion struct {
	Target  Street   `json:"target"`
	Options []Street `json:"options"`
}

// AnswerStatus values for QuizResult.
const (
	AnswerCorrect = "correct"
	AnswerFailed  = "failed"
)

// QuizResult records one answered question. Appended to the session's result
// list and never mutated afterwards.
type QuizResult struct {
	Street     Street  `json:"street"`
	UserAnswer string  `json:"user_answer"`
	Status     string  `json:"status"`
	Time       float64 `json:"time"`
	Points     int     `json:"points"`
	HintsUsed  int     `json:"hints_used"`
}

// EphemeralGameSession is the short-lived reservation written at game start.
// It lives in the TTL store keyed by the game id and is advisory only; the
// durable game_results row is the source of truth.
type EphemeralGameSession struct {
	UserID    string    `json:"user_id"`
	StartTime time.Time `json:"start_time"`
	Score     int       `json:"score"`
	Round     int       `json:"round"`
}

// FinalResult carries the locally-held end-of-game totals into the
// persistence protocol.
type FinalResult struct {
	UserID         string `json:"user_id"`
	Score          int    `json:"score"`
	TimeTaken      int    `json:"time_taken"`
	CorrectAnswers int    `json:"correct_answers"`
	QuestionCount  int    `json:"question_count"`
	Platform       string `json:"platform"`
	IsBonus        bool   `json:"is_bonus"`
}

// PlayerStats aggregates a player's durable history.
type PlayerStats struct {
	TotalGames   int     `json:"total_games"`
	BestScore    int     `json:"best_score"`
	AverageScore float64 `json:"average_score"`
	TotalCorrect int     `json:"total_correct"`
}
