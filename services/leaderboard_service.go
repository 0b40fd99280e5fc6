// services/leaderboard_service.go
package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/girify/streetquiz/models"
	"github.com/girify/streetquiz/persistence"
)

type LeaderboardService struct {
	db persistence.Database
}

func NewLeaderboardService(db persistence.Database) *LeaderboardService {
	return &LeaderboardService{db: db}
}

// TopScores returns the leaderboard for a period ("all", "daily", "weekly",
// "monthly").
func (s *LeaderboardService) TopScores(period string, limit int) ([]models.GameResultModel, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.db.Leaderboard(period, limit)
}

// PlayerSummary returns a player's aggregate stats together with their games
// from the last thirty days. Both reads run inside one transaction so the
// summary is self-consistent.
func (s *LeaderboardService) PlayerSummary(userID string) (*models.PlayerStats, []models.GameResultModel, error) {
	var (
		stats  *models.PlayerStats
		recent []models.GameResultModel
	)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		stats, err = s.db.PlayerStats(userID)
		if err != nil {
			return err
		}
		recent, err = s.db.RecentResults(userID, time.Now().AddDate(0, 0, -30))
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return stats, recent, nil
}
