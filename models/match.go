package models

import (
	"time"
)

// TimeCategory is one of the two supported game-speed buckets. Ratings are
// tracked independently per category.
type TimeCategory string

const (
	TimeCategory5Min  TimeCategory = "5min"
	TimeCategory10Min TimeCategory = "10min"
)

// TimeCategories lists every supported category; player rating rows are
// initialized for all of them on player creation.
var TimeCategories = []TimeCategory{TimeCategory5Min, TimeCategory10Min}

func (tc TimeCategory) Valid() bool {
	return tc == TimeCategory5Min || tc == TimeCategory10Min
}

// Result is the outcome tag of a completed match.
type Result string

const (
	ResultWhiteWin Result = "white_win"
	ResultBlackWin Result = "black_win"
	ResultDraw     Result = "draw"
)

func (r Result) Valid() bool {
	return r == ResultWhiteWin || r == ResultBlackWin || r == ResultDraw
}

// Match is the immutable record of one completed game, including the rating
// snapshot of both sides. Never updated or deleted after creation.
type Match struct {
	ID             uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	TimeCategory   TimeCategory `gorm:"size:10;not null;index" json:"time_category"`
	WhitePlayerID  uint         `gorm:"not null;index" json:"white_player_id"`
	BlackPlayerID  uint         `gorm:"not null;index" json:"black_player_id"`
	Result         Result       `gorm:"size:20;not null" json:"result"`
	WhiteEloBefore int          `gorm:"not null" json:"white_elo_before"`
	BlackEloBefore int          `gorm:"not null" json:"black_elo_before"`
	WhiteEloAfter  int          `gorm:"not null" json:"white_elo_after"`
	BlackEloAfter  int          `gorm:"not null" json:"black_elo_after"`
	WhiteEloChange int          `gorm:"not null" json:"white_elo_change"`
	BlackEloChange int          `gorm:"not null" json:"black_elo_change"`
	PlayedAt       time.Time    `gorm:"not null;index" json:"played_at"`
	Notes          string       `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`

	// Relationships
	WhitePlayer Player `gorm:"foreignKey:WhitePlayerID;references:ID" json:"white_player,omitempty"`
	BlackPlayer Player `gorm:"foreignKey:BlackPlayerID;references:ID" json:"black_player,omitempty"`
}

func (Match) TableName() string {
	return "matches"
}

type CreateMatchRequest struct {
	TimeCategory  TimeCategory `json:"time_category" binding:"required,oneof=5min 10min"`
	WhitePlayerID uint         `json:"white_player_id" binding:"required"`
	BlackPlayerID uint         `json:"black_player_id" binding:"required"`
	Result        Result       `json:"result" binding:"required,oneof=white_win black_win draw"`
	PlayedAt      time.Time    `json:"played_at" binding:"required"`
	Notes         string       `json:"notes" binding:"omitempty,max=500"`
}

type PaginatedMatchResponse struct {
	Data       []Match `json:"data"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}
