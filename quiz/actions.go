package quiz

import (
	"time"

	"github.com/girify/streetquiz/models"
)

// Action is the closed set of messages the reducer consumes. The unexported
// marker method seals the set so Reduce's type switch stays exhaustive.
type Action interface {
	isAction()
}

// SetUsername records the player identity after registration.
type SetUsername struct {
	Username string
}

// StartGame enters the playing phase with the day's target streets, the first
// question's options, and optionally the full pre-built question plan. Resets
// score, correct and hint counters, and locks input until the UI is ready.
type StartGame struct {
	Streets        []models.Street
	InitialOptions []models.Street
	Planned        []models.QuizQuestion
	Now            time.Time
}

// SetOptions installs the current question's answer options.
type SetOptions struct {
	Options []models.Street
}

// SetHintStreets installs the current question's hint streets and resets the
// reveal counter.
type SetHintStreets struct {
	Streets []models.Street
}

// RevealHint counts one hint reveal for the current question.
type RevealHint struct{}

// SelectAnswer records the pending choice. Scoring happens on
// AnswerSubmitted, not here.
type SelectAnswer struct {
	Street models.Street
}

// AnswerSubmitted appends the scored result, adds points to the clamped
// session score, and moves feedback to transitioning.
type AnswerSubmitted struct {
	Result   models.QuizResult
	Points   int
	Selected models.Street
}

// NextQuestion advances to the next question, or to the summary phase when
// the list is exhausted.
type NextQuestion struct {
	Options []models.Street
}

// SetAutoAdvance toggles automatic advancing after an answer.
type SetAutoAdvance struct {
	Enabled bool
}

// SetGameID correlates the state with the ephemeral session record.
type SetGameID struct {
	GameID string
}

// UnlockInput opens answer submission and starts the per-question timer.
type UnlockInput struct {
	Now time.Time
}

// Logout clears identity-bound fields and returns to the intro phase.
type Logout struct{}

func (SetUsername) isAction()     {}
func (StartGame) isAction()       {}
func (SetOptions) isAction()      {}
func (SetHintStreets) isAction()  {}
func (RevealHint) isAction()      {}
func (SelectAnswer) isAction()    {}
func (AnswerSubmitted) isAction() {}
func (NextQuestion) isAction()    {}
func (SetAutoAdvance) isAction()  {}
func (SetGameID) isAction()       {}
func (UnlockInput) isAction()     {}
func (Logout) isAction()          {}
