package services

import (
	"errors"
	"fmt"
	"time"

	"chess-ladder-api/models"
	"chess-ladder-api/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MatchService struct {
	db *gorm.DB
}

func NewMatchService(db *gorm.DB) *MatchService {
	return &MatchService{
		db: db,
	}
}

// MatchFilters narrows and paginates the match list. Limit defaults to 20
// and is capped at 100; Offset defaults to 0.
type MatchFilters struct {
	TimeCategory *models.TimeCategory
	PlayerID     *uint
	Limit        int
	Offset       int
}

// CreateMatch records a completed match and updates both players' ratings as
// one atomic unit: the match row, both rating-row updates and both history
// rows all commit together or not at all.
//
// Both rating rows are read with SELECT ... FOR UPDATE inside the
// transaction, so two concurrent recordings touching the same player
// serialize instead of racing on stale pre-match ratings.
func (s *MatchService) CreateMatch(req models.CreateMatchRequest) (*models.Match, error) {
	if req.WhitePlayerID == req.BlackPlayerID {
		return nil, ErrSamePlayer
	}

	// Validate that both players exist before opening the transaction.
	var player models.Player
	if err := s.db.First(&player, req.WhitePlayerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("white player: %w", ErrPlayerNotFound)
		}
		return nil, err
	}
	// A fresh struct is required: gorm treats a populated primary key on the
	// destination as an additional query condition.
	player = models.Player{}
	if err := s.db.First(&player, req.BlackPlayerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("black player: %w", ErrPlayerNotFound)
		}
		return nil, err
	}

	// Start transaction
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	whiteRating, blackRating, err := lockRatings(tx, req.TimeCategory, req.WhitePlayerID, req.BlackPlayerID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	eloResult := utils.ProcessMatchResult(
		utils.PlayerSnapshot{Elo: whiteRating.CurrentElo, GamesPlayed: whiteRating.GamesPlayed},
		utils.PlayerSnapshot{Elo: blackRating.CurrentElo, GamesPlayed: blackRating.GamesPlayed},
		req.Result,
	)

	match := models.Match{
		TimeCategory:   req.TimeCategory,
		WhitePlayerID:  req.WhitePlayerID,
		BlackPlayerID:  req.BlackPlayerID,
		Result:         req.Result,
		WhiteEloBefore: eloResult.White.EloBefore,
		BlackEloBefore: eloResult.Black.EloBefore,
		WhiteEloAfter:  eloResult.White.EloAfter,
		BlackEloAfter:  eloResult.Black.EloAfter,
		WhiteEloChange: eloResult.White.EloChange,
		BlackEloChange: eloResult.Black.EloChange,
		PlayedAt:       req.PlayedAt,
		Notes:          req.Notes,
	}

	if err := tx.Create(&match).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := applyRatingUpdate(tx, whiteRating, eloResult.White, req.Result, true); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := applyRatingUpdate(tx, blackRating, eloResult.Black, req.Result, false); err != nil {
		tx.Rollback()
		return nil, err
	}

	history := []models.EloHistory{
		{
			PlayerID:     req.WhitePlayerID,
			MatchID:      match.ID,
			TimeCategory: req.TimeCategory,
			EloBefore:    eloResult.White.EloBefore,
			EloAfter:     eloResult.White.EloAfter,
			EloChange:    eloResult.White.EloChange,
			RecordedAt:   req.PlayedAt,
		},
		{
			PlayerID:     req.BlackPlayerID,
			MatchID:      match.ID,
			TimeCategory: req.TimeCategory,
			EloBefore:    eloResult.Black.EloBefore,
			EloAfter:     eloResult.Black.EloAfter,
			EloChange:    eloResult.Black.EloChange,
			RecordedAt:   req.PlayedAt,
		},
	}

	if err := tx.Create(&history).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// Commit transaction
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	// Load the created match with relationships
	if err := s.db.Preload("WhitePlayer").Preload("BlackPlayer").First(&match, match.ID).Error; err != nil {
		return nil, err
	}

	return &match, nil
}

// lockRatings reads both participants' rating rows for the match's time
// category with a row-level lock, using a single query so two concurrent
// transactions on overlapping players cannot deadlock on lock order.
// SQLite has no FOR UPDATE and serializes writers on its own, so the locking
// clause is only applied on postgres.
func lockRatings(tx *gorm.DB, category models.TimeCategory, whiteID, blackID uint) (white, black *models.PlayerRating, err error) {
	query := tx
	if tx.Dialector.Name() == "postgres" {
		query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var rows []models.PlayerRating
	if err := query.
		Where("time_category = ? AND player_id IN ?", category, []uint{whiteID, blackID}).
		Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	for i := range rows {
		switch rows[i].PlayerID {
		case whiteID:
			white = &rows[i]
		case blackID:
			black = &rows[i]
		}
	}
	if white == nil || black == nil {
		return nil, nil, ErrRatingNotFound
	}
	return white, black, nil
}

// outcomeCounters returns the (wins, losses, draws) increments for one side
// of a result. Defined over the same three-case enumeration as the score
// mapping so the two cannot drift apart: a draw increments both draw
// counters, a decisive result increments the winner's wins and the loser's
// losses.
func outcomeCounters(result models.Result, isWhite bool) (wins, losses, draws int) {
	if result == models.ResultDraw {
		return 0, 0, 1
	}
	won := (result == models.ResultWhiteWin) == isWhite
	if won {
		return 1, 0, 0
	}
	return 0, 1, 0
}

// applyRatingUpdate writes one side's post-match rating row. The row is
// already locked, so the new values are computed from the loaded state.
// Peak is a monotonic high-water mark.
func applyRatingUpdate(tx *gorm.DB, rating *models.PlayerRating, side utils.SideResult, result models.Result, isWhite bool) error {
	wins, losses, draws := outcomeCounters(result, isWhite)

	peak := rating.PeakElo
	if side.EloAfter > peak {
		peak = side.EloAfter
	}

	return tx.Model(&models.PlayerRating{}).Where("id = ?", rating.ID).Updates(map[string]interface{}{
		"current_elo":  side.EloAfter,
		"peak_elo":     peak,
		"games_played": rating.GamesPlayed + 1,
		"wins":         rating.Wins + wins,
		"losses":       rating.Losses + losses,
		"draws":        rating.Draws + draws,
		"updated_at":   time.Now(),
	}).Error
}

// GetMatches lists matches most-recent-first with optional time category and
// participant filters.
func (s *MatchService) GetMatches(filters MatchFilters) ([]models.Match, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := filters.Offset
	if offset < 0 {
		offset = 0
	}

	query := s.db.Model(&models.Match{})
	if filters.TimeCategory != nil {
		query = query.Where("time_category = ?", *filters.TimeCategory)
	}
	if filters.PlayerID != nil {
		query = query.Where("white_player_id = ? OR black_player_id = ?", *filters.PlayerID, *filters.PlayerID)
	}

	var matches []models.Match
	result := query.Order("played_at DESC, id DESC").
		Preload("WhitePlayer").
		Preload("BlackPlayer").
		Offset(offset).
		Limit(limit).
		Find(&matches)

	if result.Error != nil {
		return nil, result.Error
	}

	return matches, nil
}

func (s *MatchService) GetRecentMatches(limit int) ([]models.Match, error) {
	var matches []models.Match

	result := s.db.Order("played_at DESC, id DESC").
		Limit(limit).
		Preload("WhitePlayer").
		Preload("BlackPlayer").
		Find(&matches)

	if result.Error != nil {
		return nil, result.Error
	}

	return matches, nil
}
