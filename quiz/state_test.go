package quiz

import (
	"testing"
	"time"

	"github.com/girify/streetquiz/models"
)

func quizStreets(n int) []models.Street {
	streets := make([]models.Street, 0, n)
	for i := 0; i < n; i++ {
		streets = append(streets, models.Street{
			ID:   string(rune('a' + i)),
			Name: "Carrer " + string(rune('A'+i)),
		})
	}
	return streets
}

func startedState(n int, now time.Time) State {
	streets := quizStreets(n)
	state := Reduce(NewState(), SetUsername{Username: "anna"})
	state = Reduce(state, StartGame{
		Streets:        streets,
		InitialOptions: streets,
		Now:            now,
	})
	return Reduce(state, UnlockInput{Now: now})
}

func TestNewState(t *testing.T) {
	state := NewState()
	if state.Phase != PhaseIntro {
		t.Errorf("initial phase = %q, want intro", state.Phase)
	}
	if state.Feedback != FeedbackIdle {
		t.Errorf("initial feedback = %q, want idle", state.Feedback)
	}
	if !state.AutoAdvance {
		t.Error("auto-advance should default on")
	}
}

func TestReduce_StartGameResetsSession(t *testing.T) {
	now := time.Now()
	state := startedState(3, now)
	state.Score = 400
	state.Correct = 4
	state.Results = []models.QuizResult{{Points: 100}}

	state = Reduce(state, StartGame{Streets: quizStreets(2), Now: now})

	if state.Phase != PhasePlaying {
		t.Errorf("phase = %q, want playing", state.Phase)
	}
	if state.Score != 0 || state.Correct != 0 || len(state.Results) != 0 {
		t.Error("session counters not reset by a fresh start")
	}
	if state.CurrentQuestion != 0 {
		t.Errorf("current question = %d, want 0", state.CurrentQuestion)
	}
	if !state.InputLocked {
		t.Error("input should start locked until the question is prepared")
	}
}

func TestReduce_FullGame(t *testing.T) {
	now := time.Date(2025, 1, 13, 9, 0, 0, 0, time.UTC)
	state := startedState(2, now)

	// First question, answered correctly and instantly.
	target, ok := state.CurrentTarget()
	if !ok {
		t.Fatal("no current target after start")
	}
	state = Reduce(state, SelectAnswer{Street: target})
	if state.Feedback != FeedbackSelected {
		t.Fatalf("feedback = %q after selection, want selected", state.Feedback)
	}

	submit, ok := ProcessAnswer(state, target, now)
	if !ok {
		t.Fatal("ProcessAnswer rejected a legal answer")
	}
	if submit.Points != 150 {
		t.Errorf("instant correct answer scored %d, want 150", submit.Points)
	}
	state = Reduce(state, submit)
	if state.Feedback != FeedbackTransitioning {
		t.Fatalf("feedback = %q after submission, want transitioning", state.Feedback)
	}
	if state.Score != 150 || state.Correct != 1 {
		t.Errorf("score/correct = %d/%d, want 150/1", state.Score, state.Correct)
	}

	// Second question, answered wrong.
	state = Reduce(state, NextQuestion{})
	if state.CurrentQuestion != 1 || state.Feedback != FeedbackIdle || !state.InputLocked {
		t.Fatal("next question did not reset per-question state")
	}
	state = Reduce(state, UnlockInput{Now: now})

	target, _ = state.CurrentTarget()
	wrong := state.QuizStreets[0]
	submit, ok = ProcessAnswer(state, wrong, now)
	if !ok {
		t.Fatal("ProcessAnswer rejected a legal answer")
	}
	if submit.Points != 0 {
		t.Errorf("wrong answer scored %d, want 0", submit.Points)
	}
	if submit.Result.Status != models.AnswerFailed {
		t.Errorf("wrong answer status = %q", submit.Result.Status)
	}
	state = Reduce(state, submit)

	state = Reduce(state, NextQuestion{})
	if !state.Finished() {
		t.Fatalf("phase = %q after last question, want summary", state.Phase)
	}
	if len(state.Results) != 2 {
		t.Errorf("recorded %d results, want 2", len(state.Results))
	}
}

func TestReduce_ScoreClamp(t *testing.T) {
	now := time.Now()
	state := startedState(10, now)

	for i := 0; i < 8; i++ {
		state = Reduce(state, AnswerSubmitted{
			Result: models.QuizResult{Status: models.AnswerCorrect, Points: 150},
			Points: 150,
		})
		state = Reduce(state, NextQuestion{})
		state = Reduce(state, UnlockInput{Now: now})
	}

	if state.Score != MaxScore {
		t.Errorf("score = %d, want clamped to %d", state.Score, MaxScore)
	}
}

func TestReduce_SelectAnswerGuards(t *testing.T) {
	now := time.Now()

	// Locked input.
	state := startedState(2, now)
	state.InputLocked = true
	next := Reduce(state, SelectAnswer{Street: state.QuizStreets[0]})
	if next.Selected != nil || next.Feedback != FeedbackIdle {
		t.Error("selection accepted while input was locked")
	}

	// Transitioning feedback.
	state = startedState(2, now)
	state.Feedback = FeedbackTransitioning
	next = Reduce(state, SelectAnswer{Street: state.QuizStreets[0]})
	if next.Selected != nil {
		t.Error("selection accepted during transition")
	}

	// Outside the playing phase.
	state = NewState()
	next = Reduce(state, SelectAnswer{Street: models.Street{ID: "x"}})
	if next.Selected != nil {
		t.Error("selection accepted before the game started")
	}
}

func TestReduce_DoubleSubmissionIgnored(t *testing.T) {
	now := time.Now()
	state := startedState(2, now)

	submit := AnswerSubmitted{
		Result: models.QuizResult{Status: models.AnswerCorrect, Points: 150},
		Points: 150,
	}
	state = Reduce(state, submit)
	again := Reduce(state, submit)

	if again.Score != state.Score || len(again.Results) != len(state.Results) {
		t.Error("second submission for the same question was not ignored")
	}
}

func TestReduce_NextQuestionRequiresTransition(t *testing.T) {
	now := time.Now()
	state := startedState(3, now)

	next := Reduce(state, NextQuestion{})
	if next.CurrentQuestion != 0 {
		t.Error("advanced without a submitted answer")
	}
}

func TestReduce_SummaryIsTerminal(t *testing.T) {
	now := time.Now()
	state := startedState(1, now)
	state = Reduce(state, AnswerSubmitted{
		Result: models.QuizResult{Status: models.AnswerCorrect, Points: 150},
		Points: 150,
	})
	state = Reduce(state, NextQuestion{})
	if !state.Finished() {
		t.Fatal("one-question game did not reach the summary")
	}

	after := Reduce(state, NextQuestion{})
	if after.Phase != PhaseSummary {
		t.Error("summary phase left without a fresh start")
	}
	after = Reduce(state, AnswerSubmitted{Points: 150})
	if after.Score != state.Score {
		t.Error("submission accepted in the summary phase")
	}

	// Only a fresh start leaves the summary.
	restarted := Reduce(state, StartGame{Streets: quizStreets(2), Now: now})
	if restarted.Phase != PhasePlaying || restarted.Score != 0 {
		t.Error("fresh start did not begin a new session")
	}
}

func TestReduce_RevealHintBounded(t *testing.T) {
	now := time.Now()
	state := startedState(2, now)
	state = Reduce(state, SetHintStreets{Streets: quizStreets(2)})

	for i := 0; i < 5; i++ {
		state = Reduce(state, RevealHint{})
	}
	if state.HintsRevealed != 2 {
		t.Errorf("hints revealed = %d, want capped at 2", state.HintsRevealed)
	}
}

func TestReduce_GenerationAdvances(t *testing.T) {
	now := time.Now()
	state := startedState(2, now)
	gen := state.Generation

	state = Reduce(state, AnswerSubmitted{Points: 100, Result: models.QuizResult{}})
	if state.Generation != gen {
		t.Error("submission must not change the generation")
	}
	state = Reduce(state, NextQuestion{})
	if state.Generation != gen+1 {
		t.Errorf("generation = %d after next question, want %d", state.Generation, gen+1)
	}
}

func TestReduce_Logout(t *testing.T) {
	now := time.Now()
	state := startedState(2, now)
	state = Reduce(state, SetGameID{GameID: "abc12345"})

	state = Reduce(state, Logout{})
	if state.Username != "" || state.GameID != "" {
		t.Error("logout did not clear identity")
	}
	if state.Phase != PhaseIntro {
		t.Errorf("phase = %q after logout, want intro", state.Phase)
	}
}

func TestProcessAnswer_HintPenalty(t *testing.T) {
	now := time.Now()
	state := startedState(2, now)
	state = Reduce(state, SetHintStreets{Streets: quizStreets(3)})
	state = Reduce(state, RevealHint{})
	state = Reduce(state, RevealHint{})

	target, _ := state.CurrentTarget()
	submit, ok := ProcessAnswer(state, target, now)
	if !ok {
		t.Fatal("ProcessAnswer rejected a legal answer")
	}
	if submit.Points != 110 {
		t.Errorf("two-hint instant answer scored %d, want 110", submit.Points)
	}
	if submit.Result.HintsUsed != 2 {
		t.Errorf("recorded %d hints, want 2", submit.Result.HintsUsed)
	}
}

func TestProcessAnswer_RejectsLockedInput(t *testing.T) {
	start := time.Date(2025, 1, 13, 9, 0, 0, 0, time.UTC)
	streets := quizStreets(2)
	state := Reduce(NewState(), StartGame{
		Streets:        streets,
		InitialOptions: streets,
		Now:            start,
	})

	// Input is still locked, so the question timer has not started. An
	// answer accepted here would score as instant no matter the real wait.
	if _, ok := ProcessAnswer(state, streets[0], start.Add(90*time.Second)); ok {
		t.Fatal("answer accepted while input was locked")
	}

	state = Reduce(state, UnlockInput{Now: start})
	submit, ok := ProcessAnswer(state, streets[0], start.Add(90*time.Second))
	if !ok {
		t.Fatal("answer rejected after unlock")
	}
	if submit.Points != 100 {
		t.Errorf("90s answer scored %d, want base points only", submit.Points)
	}
}

func TestProcessAnswer_UsesElapsedTime(t *testing.T) {
	start := time.Date(2025, 1, 13, 9, 0, 0, 0, time.UTC)
	state := startedState(2, start)

	target, _ := state.CurrentTarget()
	submit, ok := ProcessAnswer(state, target, start.Add(15*time.Second))
	if !ok {
		t.Fatal("ProcessAnswer rejected a legal answer")
	}
	if submit.Points != 125 {
		t.Errorf("15s answer scored %d, want 125", submit.Points)
	}
	if submit.Result.Time != 15 {
		t.Errorf("recorded time %v, want 15", submit.Result.Time)
	}
}

func TestFinalResult(t *testing.T) {
	now := time.Now()
	state := startedState(2, now)
	state.Username = "anna"
	state = Reduce(state, AnswerSubmitted{
		Result: models.QuizResult{Status: models.AnswerCorrect, Points: 150, Time: 4},
		Points: 150,
	})
	state = Reduce(state, NextQuestion{})
	state = Reduce(state, UnlockInput{Now: now})
	state = Reduce(state, AnswerSubmitted{
		Result: models.QuizResult{Status: models.AnswerFailed, Time: 9},
	})
	state = Reduce(state, NextQuestion{})

	final := FinalResult(state, "web")
	if final.UserID != "anna" {
		t.Errorf("user id = %q", final.UserID)
	}
	if final.Score != 150 || final.CorrectAnswers != 1 || final.QuestionCount != 2 {
		t.Errorf("summary = %+v", final)
	}
	if final.TimeTaken != 13 {
		t.Errorf("time taken = %d, want 13", final.TimeTaken)
	}
	if final.Platform != "web" {
		t.Errorf("platform = %q", final.Platform)
	}
}
