// session/session.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/girify/streetquiz/logger"
	"github.com/girify/streetquiz/models"
	"github.com/girify/streetquiz/monitor"
	"github.com/girify/streetquiz/persistence"
)

var (
	// ErrSessionNotFound means the ephemeral record expired, was evicted, or
	// was never created. Recoverable: the caller saves through the fallback
	// path.
	ErrSessionNotFound = errors.New("session not found or expired")

	// ErrSessionUnavailable means the session write did not resolve within
	// the start timeout. Gameplay proceeds without a game id.
	ErrSessionUnavailable = errors.New("session store unavailable")
)

// EndGameResult is the typed outcome of one EndGame attempt.
type EndGameResult struct {
	Success bool
	GameID  string
	Err     error
}

// Outcome is the result of the full Finish protocol, fallback included.
// Degraded means the score could not be persisted anywhere; callers should
// surface a save-failed indicator rather than pretend the game saved.
type Outcome struct {
	Persisted bool
	Fallback  bool
	Degraded  bool
	GameID    string
	Err       error
}

// Service manages the two-tier game session lifecycle: an ephemeral TTL
// reservation during play and a durable game_results commit at the end. The
// ephemeral record is a reservation only; the durable insert is the commit,
// and the reservation is deleted strictly after the commit succeeds. A crash
// in between leaves an orphaned reservation for the TTL to reap, never a lost
// score.
type Service struct {
	ephemeral    persistence.EphemeralStore
	db           persistence.Database
	metrics      *monitor.Metrics
	ttl          time.Duration
	startTimeout time.Duration
	now          func() time.Time
}

// NewService wires the two stores. metrics may be nil.
func NewService(ephemeral persistence.EphemeralStore, db persistence.Database, ttl, startTimeout time.Duration, metrics *monitor.Metrics) *Service {
	return &Service{
		ephemeral:    ephemeral,
		db:           db,
		metrics:      metrics,
		ttl:          ttl,
		startTimeout: startTimeout,
		now:          time.Now,
	}
}

func sessionKey(gameID string) string {
	return "game:" + gameID
}

func newGameID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// StartGame writes the ephemeral reservation and returns its id. The write
// races the start timeout: if it does not resolve in time the caller gets
// ErrSessionUnavailable and proceeds without a game id, while the write keeps
// running in the background and its result is ignored. Gameplay is never
// blocked on session-store availability.
func (s *Service) StartGame(ctx context.Context, userID string) (string, error) {
	if s.metrics != nil {
		s.metrics.GamesStarted.Inc()
	}

	gameID := newGameID()
	payload, err := json.Marshal(models.EphemeralGameSession{
		UserID:    userID,
		StartTime: s.now(),
	})
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	done := make(chan error, 1)
	go func() {
		// Deliberately not the caller's context: an abandoned write is
		// allowed to complete in the background.
		wctx, cancel := context.WithTimeout(context.Background(), s.ttl)
		defer cancel()
		done <- s.ephemeral.SetEx(wctx, sessionKey(gameID), s.ttl, payload)
	}()

	select {
	case err := <-done:
		if err != nil {
			return "", fmt.Errorf("write session: %w", err)
		}
		return gameID, nil
	case <-time.After(s.startTimeout):
		logger.Log.Warnw("session write timed out, continuing without game id", "game_id", gameID)
		return "", ErrSessionUnavailable
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// UpdateScore refreshes the advisory mid-game snapshot. Read-modify-write
// without locking: acceptable because the record is advisory, never
// authoritative.
func (s *Service) UpdateScore(ctx context.Context, gameID string, score, round int) error {
	raw, err := s.ephemeral.Get(ctx, sessionKey(gameID))
	if err != nil {
		if errors.Is(err, persistence.ErrKeyNotFound) {
			return ErrSessionNotFound
		}
		return err
	}

	var sess models.EphemeralGameSession
	if err := json.Unmarshal(raw, &sess); err != nil {
		return fmt.Errorf("decode session: %w", err)
	}
	sess.Score = score
	sess.Round = round

	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.ephemeral.SetEx(ctx, sessionKey(gameID), s.ttl, payload)
}

// EndGame commits the durable record for a game whose reservation is still
// present. Absent reservation: typed failure, store untouched, caller falls
// back. Durable write failure: typed failure and the reservation is kept so a
// retry remains possible. Success: the reservation is deleted after the
// commit.
func (s *Service) EndGame(ctx context.Context, gameID string, final models.FinalResult) EndGameResult {
	raw, err := s.ephemeral.Get(ctx, sessionKey(gameID))
	if err != nil {
		if errors.Is(err, persistence.ErrKeyNotFound) {
			if s.metrics != nil {
				s.metrics.SessionMisses.Inc()
			}
			return EndGameResult{GameID: gameID, Err: ErrSessionNotFound}
		}
		return EndGameResult{GameID: gameID, Err: fmt.Errorf("read session: %w", err)}
	}

	var sess models.EphemeralGameSession
	if err := json.Unmarshal(raw, &sess); err != nil {
		// A corrupt reservation is as good as a missing one.
		logger.Log.Warnw("discarding undecodable session", "game_id", gameID, "error", err)
		return EndGameResult{GameID: gameID, Err: ErrSessionNotFound}
	}

	record := recordFrom(final, s.now())
	if sess.UserID != "" {
		// The server-side identity wins over whatever the client sent.
		userID := sess.UserID
		record.UserID = &userID
	}

	if err := s.db.SaveGameResult(&record); err != nil {
		// Keep the reservation: it is the retry token.
		return EndGameResult{GameID: gameID, Err: fmt.Errorf("save game result: %w", err)}
	}

	if err := s.ephemeral.Del(ctx, sessionKey(gameID)); err != nil {
		// Harmless orphan; the TTL reaps it.
		logger.Log.Warnw("failed to delete committed session", "game_id", gameID, "error", err)
	}
	return EndGameResult{Success: true, GameID: gameID}
}

// SaveDirect is the fallback path: write the durable record straight from
// locally-held game state, without the reservation's identity cross-check.
func (s *Service) SaveDirect(_ context.Context, final models.FinalResult) error {
	record := recordFrom(final, s.now())
	return s.db.SaveGameResult(&record)
}

// Finish drives the whole end-game protocol: primary commit first, fallback
// insert when the reservation is gone or the commit failed. The returned
// Outcome always says where the record ended up; a Degraded outcome means
// both paths failed and the score is lost unless the caller retries.
func (s *Service) Finish(ctx context.Context, gameID string, final models.FinalResult) Outcome {
	start := s.now()
	defer func() {
		if s.metrics != nil {
			s.metrics.SaveLatency.Observe(time.Since(start).Seconds())
			s.metrics.GamesCompleted.Inc()
		}
	}()

	if gameID != "" {
		result := s.EndGame(ctx, gameID, final)
		if result.Success {
			if s.metrics != nil {
				s.metrics.DurableSaves.Inc()
			}
			return Outcome{Persisted: true, GameID: gameID}
		}
		logger.Log.Warnw("primary commit failed, trying fallback",
			"game_id", gameID, "error", result.Err)
	}

	if err := s.SaveDirect(ctx, final); err != nil {
		if s.metrics != nil {
			s.metrics.SaveFailures.Inc()
		}
		logger.Log.Errorw("fallback insert failed, score not persisted",
			"game_id", gameID, "user_id", final.UserID, "error", err)
		return Outcome{Degraded: true, GameID: gameID, Err: err}
	}

	if s.metrics != nil {
		s.metrics.FallbackWrites.Inc()
	}
	return Outcome{Persisted: true, Fallback: true, GameID: gameID}
}

func recordFrom(final models.FinalResult, playedAt time.Time) models.GameResultModel {
	record := models.GameResultModel{
		Score:          final.Score,
		TimeTaken:      final.TimeTaken,
		CorrectAnswers: final.CorrectAnswers,
		QuestionCount:  final.QuestionCount,
		PlayedAt:       playedAt,
		Platform:       final.Platform,
		IsBonus:        final.IsBonus,
	}
	if record.Platform == "" {
		record.Platform = "web"
	}
	if final.UserID != "" {
		userID := final.UserID
		record.UserID = &userID
	}
	return record
}
