// persistence/interface.go
package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/girify/streetquiz/models"
)

// Database is the durable relational store: the append-only game_results
// table plus the read queries built on it. Constructed once at process start
// and shared.
type Database interface {
	SaveGameResult(record *models.GameResultModel) error
	Leaderboard(period string, limit int) ([]models.GameResultModel, error)
	PlayerStats(userID string) (*models.PlayerStats, error)
	RecentResults(userID string, since time.Time) ([]models.GameResultModel, error)
	Transaction(fn func(tx *gorm.DB) error) error
	Close() error
}

// EphemeralStore is the TTL key-value store holding in-flight game sessions.
// Records are advisory: losing one only routes the end-game save through the
// fallback path.
type EphemeralStore interface {
	SetEx(ctx context.Context, key string, ttl time.Duration, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Close() error
}

// Leaderboard periods.
const (
	PeriodAll     = "all"
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrKeyNotFound    = errors.New("key not found")
)
