package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	netrpc "net/rpc"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/girify/streetquiz/config"
	"github.com/girify/streetquiz/engine"
	"github.com/girify/streetquiz/logger"
	"github.com/girify/streetquiz/models"
	"github.com/girify/streetquiz/monitor"
	quizrpc "github.com/girify/streetquiz/rpc"
	"github.com/girify/streetquiz/services"
	"github.com/girify/streetquiz/session"
	"github.com/girify/streetquiz/timer"
)

type GameServer struct {
	addr        string
	pool        []models.Street
	sessions    *session.Service
	leaderboard *services.LeaderboardService
	mon         *monitor.Monitor
	timers      *timer.Manager
	game        config.GameConfig
	upgrader    websocket.Upgrader
	rpcServer   *quizrpc.Server
	httpServer  *http.Server
}

func NewGameServer(addr, rpcAddr string, pool []models.Street, sessions *session.Service,
	leaderboard *services.LeaderboardService, mon *monitor.Monitor, game config.GameConfig) (*GameServer, error) {

	s := &GameServer{
		addr:        addr,
		pool:        pool,
		sessions:    sessions,
		leaderboard: leaderboard,
		mon:         mon,
		timers:      timer.NewManager(),
		game:        game,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	rpcServer, err := quizrpc.NewServer(rpcAddr)
	if err != nil {
		return nil, err
	}
	s.rpcServer = rpcServer
	if err := netrpc.Register(quizrpc.NewQuizService(leaderboard)); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /daily", s.handleDaily)
	mux.HandleFunc("POST /games", s.handleStartGame)
	mux.HandleFunc("POST /games/end", s.handleEndGame)
	mux.HandleFunc("GET /leaderboard", s.handleLeaderboard)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /ws/play", s.handlePlay)
	mux.Handle("GET /metrics", mon.Handler())

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	return s, nil
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()

	logger.Log.Infof("Game server listening on %s", s.addr)
	if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *GameServer) Shutdown(ctx context.Context) {
	s.rpcServer.Stop()
	s.timers.Stop()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		logger.Log.Errorf("HTTP shutdown: %v", err)
	}
}

// handleDaily serves today's full pre-computed challenge.
func (s *GameServer) handleDaily(w http.ResponseWriter, r *http.Request) {
	seed := engine.DailySeed(time.Now())
	if q := r.URL.Query().Get("date"); q != "" {
		date, err := time.ParseInLocation(time.DateOnly, q, time.Local)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
			return
		}
		seed = engine.SeedForDate(date)
	}
	writeJSON(w, http.StatusOK, engine.BuildDailyPlan(s.pool, seed))
}

type startGameRequest struct {
	UserID string `json:"user_id"`
}

type startGameResponse struct {
	GameID  string `json:"game_id,omitempty"`
	Session string `json:"session"`
}

func (s *GameServer) handleStartGame(w http.ResponseWriter, r *http.Request) {
	var req startGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	gameID, err := s.sessions.StartGame(r.Context(), req.UserID)
	if err != nil {
		// The client plays on without a game id; the end-game save will use
		// the fallback path.
		writeJSON(w, http.StatusOK, startGameResponse{Session: "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, startGameResponse{GameID: gameID, Session: "active"})
}

type endGameRequest struct {
	GameID string `json:"game_id"`
	models.FinalResult
}

type endGameResponse struct {
	Persisted bool   `json:"persisted"`
	Fallback  bool   `json:"fallback"`
	Degraded  bool   `json:"degraded"`
	GameID    string `json:"game_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (s *GameServer) handleEndGame(w http.ResponseWriter, r *http.Request) {
	var req endGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.QuestionCount <= 0 {
		writeError(w, http.StatusBadRequest, "question_count required")
		return
	}

	outcome := s.sessions.Finish(r.Context(), req.GameID, req.FinalResult)

	resp := endGameResponse{
		Persisted: outcome.Persisted,
		Fallback:  outcome.Fallback,
		Degraded:  outcome.Degraded,
		GameID:    outcome.GameID,
	}
	if outcome.Err != nil {
		resp.Error = outcome.Err.Error()
	}
	status := http.StatusOK
	if outcome.Degraded {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

func (s *GameServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "all"
	}
	limit := 50
	if q := r.URL.Query().Get("limit"); q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	results, err := s.leaderboard.TopScores(period, limit)
	if err != nil {
		logger.Log.Errorf("leaderboard query: %v", err)
		writeError(w, http.StatusInternalServerError, "leaderboard unavailable")
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *GameServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Log.Errorf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
