// persistence/gorm_postgresql.go
package persistence

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/girify/streetquiz/models"
)

// GormPostgreSQL is the gorm-backed Database implementation.
type GormPostgreSQL struct {
	db *gorm.DB
}

// NewGormPostgreSQL opens the connection, tunes the pool, and migrates the
// game_results table.
func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&models.GameResultModel{}); err != nil {
		return nil, err
	}

	return &GormPostgreSQL{db: db}, nil
}

// SaveGameResult appends one completed game. Single-row insert; no update
// path exists because the table is append-only.
func (p *GormPostgreSQL) SaveGameResult(record *models.GameResultModel) error {
	return p.db.Create(record).Error
}

// Leaderboard returns the top scores for a period, newest scores winning ties
// by played_at.
func (p *GormPostgreSQL) Leaderboard(period string, limit int) ([]models.GameResultModel, error) {
	query := p.db.Model(&models.GameResultModel{})

	if cutoff, ok := periodCutoff(period, time.Now().UTC()); ok {
		query = query.Where("played_at >= ?", cutoff)
	}

	var rows []models.GameResultModel
	err := query.Order("score DESC, played_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

// PlayerStats aggregates a player's history with one raw query.
func (p *GormPostgreSQL) PlayerStats(userID string) (*models.PlayerStats, error) {
	var stats models.PlayerStats
	err := p.db.Raw(
		`
        SELECT
            COUNT(*) AS total_games,
            COALESCE(MAX(score), 0) AS best_score,
            COALESCE(AVG(score), 0) AS average_score,
            COALESCE(SUM(correct_answers), 0) AS total_correct
        FROM game_results
        WHERE user_id = ?`,
		userID,
	).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// RecentResults returns a player's games since the cutoff, newest first.
func (p *GormPostgreSQL) RecentResults(userID string, since time.Time) ([]models.GameResultModel, error) {
	var rows []models.GameResultModel
	err := p.db.
		Where("user_id = ? AND played_at >= ?", userID, since).
		Order("played_at DESC").
		Find(&rows).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return rows, nil
}

func (p *GormPostgreSQL) Transaction(fn func(tx *gorm.DB) error) error {
	return p.db.Transaction(fn)
}

func (p *GormPostgreSQL) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func periodCutoff(period string, now time.Time) (time.Time, bool) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch period {
	case PeriodDaily:
		return startOfDay, true
	case PeriodWeekly:
		weekday := int(startOfDay.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		return startOfDay.AddDate(0, 0, -(weekday - 1)), true
	case PeriodMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), true
	default:
		return time.Time{}, false
	}
}
