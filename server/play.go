package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/girify/streetquiz/engine"
	"github.com/girify/streetquiz/logger"
	"github.com/girify/streetquiz/models"
	"github.com/girify/streetquiz/quiz"
	"github.com/girify/streetquiz/streets"
)

// playMessage is one inbound action on the play channel.
type playMessage struct {
	Type        string `json:"type"`
	UserID      string `json:"user_id,omitempty"`
	StreetID    string `json:"street_id,omitempty"`
	AutoAdvance *bool  `json:"auto_advance,omitempty"`
}

// stateView is the snapshot pushed after every transition.
type stateView struct {
	Phase         string              `json:"phase"`
	Question      int                 `json:"question"`
	QuestionCount int                 `json:"question_count"`
	Score         int                 `json:"score"`
	Correct       int                 `json:"correct"`
	Feedback      string              `json:"feedback"`
	Options       []models.Street     `json:"options"`
	HintStreets   []models.Street     `json:"hint_streets,omitempty"`
	HintsRevealed int                 `json:"hints_revealed"`
	InputLocked   bool                `json:"input_locked"`
	GameID        string              `json:"game_id,omitempty"`
	Results       []models.QuizResult `json:"results,omitempty"`
}

// playChannel hosts one client's reducer on the server. The connection id is
// only for logging; game correlation uses the session's game id.
type playChannel struct {
	id      string
	conn    *websocket.Conn
	writeMu sync.Mutex
	machine *quiz.Machine
	server  *GameServer
	plan    engine.DailyPlan

	mu           sync.Mutex
	lastPrepared int
	saved        bool
}

// handlePlay upgrades to a websocket and runs the play loop: JSON action
// messages in, state snapshots out.
func (s *GameServer) handlePlay(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("failed to upgrade connection: %v", err)
		return
	}

	if s.mon != nil {
		s.mon.Metrics().ActiveChannels.Inc()
		defer s.mon.Metrics().ActiveChannels.Dec()
	}

	ch := &playChannel{
		id:           uuid.NewString(),
		conn:         conn,
		machine:      quiz.NewMachine(s.timers, s.game.AutoAdvanceDelay),
		server:       s,
		lastPrepared: -1,
	}
	ch.machine.OnChange = ch.onChange
	defer ch.close()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			logger.Log.Debugf("play channel %s closed: %v", ch.id, err)
			return
		}
		var msg playMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			ch.pushError("invalid message")
			continue
		}
		ch.handle(msg)
	}
}

func (ch *playChannel) handle(msg playMessage) {
	switch msg.Type {
	case "start":
		ch.start(msg.UserID)
	case "hint":
		ch.machine.Dispatch(quiz.RevealHint{})
	case "answer":
		ch.answer(msg.StreetID)
	case "next":
		state := ch.machine.State()
		ch.machine.Dispatch(quiz.NextQuestion{Options: ch.optionsFor(state.CurrentQuestion + 1)})
	case "auto_advance":
		if msg.AutoAdvance != nil {
			ch.machine.Dispatch(quiz.SetAutoAdvance{Enabled: *msg.AutoAdvance})
		}
	case "logout":
		ch.machine.Dispatch(quiz.Logout{})
	default:
		ch.pushError("unknown message type: " + msg.Type)
	}
}

func (ch *playChannel) start(userID string) {
	s := ch.server
	ch.plan = engine.BuildDailyPlan(s.pool, engine.DailySeed(time.Now()))
	if len(ch.plan.Questions) == 0 {
		ch.pushError("no challenge available")
		return
	}
	ch.mu.Lock()
	ch.saved = false
	ch.lastPrepared = -1
	ch.mu.Unlock()
	ch.machine.OptionsFor = ch.optionsFor

	if userID != "" {
		ch.machine.Dispatch(quiz.SetUsername{Username: userID})
	}

	gameID, err := s.sessions.StartGame(context.Background(), userID)
	if err != nil {
		logger.Log.Warnf("play channel %s starting without session: %v", ch.id, err)
	}
	ch.machine.Dispatch(quiz.SetGameID{GameID: gameID})

	ch.machine.Dispatch(quiz.StartGame{
		Streets:        ch.plan.Targets(),
		InitialOptions: ch.plan.Questions[0].Options,
		Planned:        ch.plan.Questions,
		Now:            time.Now(),
	})
}

func (ch *playChannel) answer(streetID string) {
	state := ch.machine.State()

	var selected *models.Street
	for i := range state.Options {
		if state.Options[i].ID == streetID {
			selected = &state.Options[i]
			break
		}
	}
	if selected == nil {
		ch.pushError("street not among options")
		return
	}

	ch.machine.Dispatch(quiz.SelectAnswer{Street: *selected})
	submitted, ok := quiz.ProcessAnswer(ch.machine.State(), *selected, time.Now())
	if !ok {
		return
	}
	ch.machine.Dispatch(submitted)
}

func (ch *playChannel) optionsFor(questionIndex int) []models.Street {
	if questionIndex >= len(ch.plan.Questions) {
		return nil
	}
	return ch.plan.Questions[questionIndex].Options
}

// onChange streams the snapshot, prepares each question exactly once (hints
// plus input unlock), and finishes the persistence protocol at the summary.
func (ch *playChannel) onChange(state quiz.State) {
	ch.push(state)

	if state.Phase == quiz.PhasePlaying && state.InputLocked && state.Feedback == quiz.FeedbackIdle {
		ch.mu.Lock()
		prepare := ch.lastPrepared != state.CurrentQuestion
		if prepare {
			ch.lastPrepared = state.CurrentQuestion
		}
		ch.mu.Unlock()

		if prepare {
			target := state.QuizStreets[state.CurrentQuestion]
			// Off the dispatch path: OnChange runs inside Dispatch's caller.
			go func() {
				ch.machine.Dispatch(quiz.SetHintStreets{Streets: streets.HintStreets(ch.server.pool, target)})
				ch.machine.Dispatch(quiz.UnlockInput{Now: time.Now()})
			}()
		}
	}

	if state.Finished() {
		ch.mu.Lock()
		save := !ch.saved
		if save {
			ch.saved = true
		}
		ch.mu.Unlock()

		if save {
			outcome := ch.server.sessions.Finish(context.Background(), state.GameID, quiz.FinalResult(state, "web"))
			ch.write(map[string]interface{}{
				"type":      "saved",
				"persisted": outcome.Persisted,
				"fallback":  outcome.Fallback,
				"degraded":  outcome.Degraded,
			})
		}
	}
}

func (ch *playChannel) push(state quiz.State) {
	view := stateView{
		Phase:         string(state.Phase),
		Question:      state.CurrentQuestion,
		QuestionCount: len(state.QuizStreets),
		Score:         state.Score,
		Correct:       state.Correct,
		Feedback:      string(state.Feedback),
		Options:       state.Options,
		HintStreets:   state.HintStreets,
		HintsRevealed: state.HintsRevealed,
		InputLocked:   state.InputLocked,
		GameID:        state.GameID,
	}
	if state.Finished() {
		view.Results = state.Results
	}
	ch.write(map[string]interface{}{"type": "state", "state": view})
}

func (ch *playChannel) pushError(message string) {
	ch.write(map[string]interface{}{"type": "error", "error": message})
}

func (ch *playChannel) write(payload interface{}) {
	ch.writeMu.Lock()
	defer ch.writeMu.Unlock()
	if err := ch.conn.WriteJSON(payload); err != nil {
		logger.Log.Debugf("play channel %s write: %v", ch.id, err)
	}
}

func (ch *playChannel) close() {
	ch.machine.Close()
	_ = ch.conn.Close()
}
