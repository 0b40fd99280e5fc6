package quiz

import (
	"time"

	"github.com/girify/streetquiz/models"
	"github.com/girify/streetquiz/scoring"
)

// ProcessAnswer scores the player's choice against the current question and
// returns the submission action. The second return is false when no answer
// can be accepted right now: input still locked, no active question, or the
// previous answer still transitioning. The lock check matters for scoring,
// not just UI flow: before UnlockInput the question timer has not started,
// so a submission here would earn the full time bonus regardless of how long
// the client actually waited.
func ProcessAnswer(state State, selected models.Street, now time.Time) (AnswerSubmitted, bool) {
	if state.InputLocked || state.Feedback == FeedbackTransitioning {
		return AnswerSubmitted{}, false
	}
	target, ok := state.CurrentTarget()
	if !ok {
		return AnswerSubmitted{}, false
	}

	elapsed := 0.0
	if !state.QuestionStart.IsZero() {
		elapsed = now.Sub(state.QuestionStart).Seconds()
	}

	isCorrect := selected.ID == target.ID
	points := scoring.Score(elapsed, isCorrect, state.HintsRevealed)

	status := models.AnswerFailed
	if isCorrect {
		status = models.AnswerCorrect
	}

	return AnswerSubmitted{
		Result: models.QuizResult{
			Street:     target,
			UserAnswer: selected.Name,
			Status:     status,
			Time:       elapsed,
			Points:     points,
			HintsUsed:  state.HintsRevealed,
		},
		Points:   points,
		Selected: selected,
	}, true
}

// FinalResult summarizes a finished session for the persistence protocol.
func FinalResult(state State, platform string) models.FinalResult {
	timeTaken := 0
	if !state.StartTime.IsZero() {
		for _, r := range state.Results {
			timeTaken += int(r.Time)
		}
	}
	return models.FinalResult{
		UserID:         state.Username,
		Score:          state.Score,
		TimeTaken:      timeTaken,
		CorrectAnswers: state.Correct,
		QuestionCount:  len(state.QuizStreets),
		Platform:       platform,
	}
}
