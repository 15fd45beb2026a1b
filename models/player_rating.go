package models

import (
	"time"
)

// PlayerRating is the mutable per-(player, time category) rating row. Exactly
// one row exists per pair; both rows are created together with the player.
// The match recording transaction is the only writer.
type PlayerRating struct {
	ID           uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	PlayerID     uint         `gorm:"not null;uniqueIndex:idx_player_time_category" json:"player_id"`
	TimeCategory TimeCategory `gorm:"size:10;not null;uniqueIndex:idx_player_time_category" json:"time_category"`
	CurrentElo   int          `gorm:"not null;default:1000" json:"current_elo"`
	PeakElo      int          `gorm:"not null;default:1000" json:"peak_elo"`
	GamesPlayed  int          `gorm:"not null;default:0" json:"games_played"`
	Wins         int          `gorm:"not null;default:0" json:"wins"`
	Losses       int          `gorm:"not null;default:0" json:"losses"`
	Draws        int          `gorm:"not null;default:0" json:"draws"`
	UpdatedAt    time.Time    `json:"updated_at"`

	Player *Player `gorm:"foreignKey:PlayerID;references:ID" json:"player,omitempty"`
}

func (PlayerRating) TableName() string {
	return "player_ratings"
}
