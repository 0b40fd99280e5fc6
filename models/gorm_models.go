// models/gorm_models.go
package models

import (
	"time"
)

// GameResultModel is the append-only game_results row. One row per completed
// game; leaderboards and history read from here.
type GameResultModel struct {
	ID             uint      `gorm:"primaryKey"`
	UserID         *string   `gorm:"index"` // nil for anonymous fallback writes
	Score          int       `gorm:"not null"`
	TimeTaken      int       `gorm:"not null"` // seconds
	CorrectAnswers int       `gorm:"not null"`
	QuestionCount  int       `gorm:"not null"`
	PlayedAt       time.Time `gorm:"index;not null"`
	Platform       string    `gorm:"not null;default:web"`
	IsBonus        bool      `gorm:"not null;default:false"`
}

func (GameResultModel) TableName() string {
	return "game_results"
}
