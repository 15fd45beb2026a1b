package models

import (
	"time"
)

type Player struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Ratings      []PlayerRating `gorm:"foreignKey:PlayerID" json:"ratings,omitempty"`
	WhiteMatches []Match        `gorm:"foreignKey:WhitePlayerID" json:"white_matches,omitempty"`
	BlackMatches []Match        `gorm:"foreignKey:BlackPlayerID" json:"black_matches,omitempty"`
	EloHistory   []EloHistory   `gorm:"foreignKey:PlayerID" json:"elo_history,omitempty"`
}

func (Player) TableName() string {
	return "players"
}

type CreatePlayerRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// LeaderboardEntry is one row of the ranked player list for a time category.
// Rank is the 1-based position ordered by current ELO descending, ties broken
// by player id so the ordering is stable.
type LeaderboardEntry struct {
	Rank   int          `json:"rank"`
	Player Player       `json:"player"`
	Rating PlayerRating `json:"rating"`
}

// PlayerDetail is the payload for the player detail endpoint: the player with
// nested ratings, their most recent matches and a capped rating time series
// per time category for charting.
type PlayerDetail struct {
	Player        Player                        `json:"player"`
	RecentMatches []Match                       `json:"recent_matches"`
	EloHistory    map[TimeCategory][]EloHistory `json:"elo_history"`
}
