package models

import (
	"time"
)

// EloHistory is one player's rating snapshot for one match, kept for
// time-series charting. Two entries are written per match, one per
// participant, in the same transaction as the match itself.
type EloHistory struct {
	ID           uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	PlayerID     uint         `gorm:"not null;index:idx_history_player_category" json:"player_id"`
	MatchID      uint         `gorm:"not null" json:"match_id"`
	TimeCategory TimeCategory `gorm:"size:10;not null;index:idx_history_player_category" json:"time_category"`
	EloBefore    int          `gorm:"not null" json:"elo_before"`
	EloAfter     int          `gorm:"not null" json:"elo_after"`
	EloChange    int          `gorm:"not null" json:"elo_change"`
	RecordedAt   time.Time    `gorm:"not null;index" json:"recorded_at"`

	// Relationships
	Player *Player `gorm:"foreignKey:PlayerID;references:ID" json:"player,omitempty"`
	Match  *Match  `gorm:"foreignKey:MatchID;references:ID" json:"match,omitempty"`
}

func (EloHistory) TableName() string {
	return "elo_history"
}
