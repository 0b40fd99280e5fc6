// Package quiz is the client-session state machine: a pure reducer over a
// closed action set. It performs no I/O and cannot fail; transitions that are
// not legal in the current phase leave the state unchanged.
package quiz

import (
	"time"

	"github.com/girify/streetquiz/models"
)

// Phase is the linear session lifecycle.
type Phase string

const (
	PhaseRegister Phase = "register"
	PhaseIntro    Phase = "intro"
	PhasePlaying  Phase = "playing"
	PhaseSummary  Phase = "summary"
)

// Feedback tracks the answer UI cycle within a question.
type Feedback string

const (
	FeedbackIdle          Feedback = "idle"
	FeedbackSelected      Feedback = "selected"
	FeedbackTransitioning Feedback = "transitioning"
)

// MaxScore caps the cumulative session score.
const MaxScore = 1000

// State holds one play session. Mutated exclusively through Reduce; treat all
// slices as immutable once stored.
type State struct {
	Phase    Phase
	Username string

	QuizStreets     []models.Street
	CurrentQuestion int
	Score           int
	Correct         int
	Feedback        Feedback
	Options         []models.Street
	AutoAdvance     bool
	HintStreets     []models.Street
	HintsRevealed   int
	StartTime       time.Time
	QuestionStart   time.Time
	Results         []models.QuizResult
	Selected        *models.Street
	Planned         []models.QuizQuestion
	InputLocked     bool
	GameID          string

	// Generation increments whenever the current question changes, so a
	// pending auto-advance timer scheduled against an older generation can
	// detect it is stale and do nothing.
	Generation uint64
}

// NewState returns the initial pre-game state.
func NewState() State {
	return State{
		Phase:       PhaseIntro,
		Feedback:    FeedbackIdle,
		AutoAdvance: true,
	}
}

// Reduce applies one action and returns the next state. Pure: no clock, no
// I/O; timestamps arrive inside the actions that need them.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case SetUsername:
		state.Username = a.Username

	case StartGame:
		state.Phase = PhasePlaying
		state.QuizStreets = a.Streets
		state.CurrentQuestion = 0
		state.Score = 0
		state.Correct = 0
		state.Feedback = FeedbackIdle
		state.HintsRevealed = 0
		state.StartTime = a.Now
		state.QuestionStart = time.Time{}
		state.Results = nil
		state.Options = a.InitialOptions
		state.InputLocked = true
		state.Selected = nil
		state.Planned = a.Planned
		state.Generation++

	case SetOptions:
		state.Options = a.Options

	case SetHintStreets:
		state.HintStreets = a.Streets
		state.HintsRevealed = 0

	case RevealHint:
		if state.Phase == PhasePlaying && state.HintsRevealed < len(state.HintStreets) {
			state.HintsRevealed++
		}

	case SelectAnswer:
		if state.Phase != PhasePlaying || state.InputLocked || state.Feedback == FeedbackTransitioning {
			return state
		}
		selected := a.Street
		state.Selected = &selected
		state.Feedback = FeedbackSelected

	case AnswerSubmitted:
		if state.Phase != PhasePlaying || state.Feedback == FeedbackTransitioning {
			return state
		}
		score := state.Score + a.Points
		if score > MaxScore {
			score = MaxScore
		}
		state.Score = score
		if a.Result.Status == models.AnswerCorrect {
			state.Correct++
		}
		results := make([]models.QuizResult, len(state.Results), len(state.Results)+1)
		copy(results, state.Results)
		state.Results = append(results, a.Result)
		selected := a.Selected
		state.Selected = &selected
		state.Feedback = FeedbackTransitioning

	case NextQuestion:
		if state.Phase != PhasePlaying || state.Feedback != FeedbackTransitioning {
			return state
		}
		next := state.CurrentQuestion + 1
		state.Generation++
		if next >= len(state.QuizStreets) {
			state.Phase = PhaseSummary
			state.Feedback = FeedbackIdle
			return state
		}
		state.CurrentQuestion = next
		state.Feedback = FeedbackIdle
		state.Selected = nil
		state.HintsRevealed = 0
		state.QuestionStart = time.Time{}
		state.InputLocked = true
		state.Options = a.Options

	case SetAutoAdvance:
		state.AutoAdvance = a.Enabled

	case SetGameID:
		state.GameID = a.GameID

	case UnlockInput:
		state.InputLocked = false
		state.QuestionStart = a.Now

	case Logout:
		state.Username = ""
		state.GameID = ""
		state.Phase = PhaseIntro
		state.Generation++
	}

	return state
}

// CurrentTarget returns the street being asked about, or false outside a
// question.
func (s State) CurrentTarget() (models.Street, bool) {
	if s.Phase != PhasePlaying || s.CurrentQuestion >= len(s.QuizStreets) {
		return models.Street{}, false
	}
	return s.QuizStreets[s.CurrentQuestion], true
}

// Finished reports whether the session reached the summary.
func (s State) Finished() bool {
	return s.Phase == PhaseSummary
}
