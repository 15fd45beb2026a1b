package services

import (
	"errors"

	"chess-ladder-api/models"
	"chess-ladder-api/utils"

	"gorm.io/gorm"
)

// recentMatchesWindow and historyWindow cap the player detail payload.
const (
	recentMatchesWindow = 10
	historyWindow       = 50
)

type PlayerService struct {
	db *gorm.DB
}

func NewPlayerService(db *gorm.DB) *PlayerService {
	return &PlayerService{
		db: db,
	}
}

// CreatePlayer registers a player and initializes one rating row per time
// category, all in one transaction. Every rating row starts at
// StartingElo/StartingElo with zeroed counters.
func (s *PlayerService) CreatePlayer(name string) (*models.Player, error) {
	player := &models.Player{
		Name: name,
	}

	// Start transaction
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(player).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, category := range models.TimeCategories {
		rating := models.PlayerRating{
			PlayerID:     player.ID,
			TimeCategory: category,
			CurrentElo:   utils.StartingElo,
			PeakElo:      utils.StartingElo,
		}
		if err := tx.Create(&rating).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("Ratings").First(player, player.ID).Error; err != nil {
		return nil, err
	}

	return player, nil
}

func (s *PlayerService) GetPlayerByID(id uint) (*models.Player, error) {
	var player models.Player

	result := s.db.Preload("Ratings").First(&player, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, result.Error
	}

	return &player, nil
}

// GetPlayerDetail returns the player with nested ratings, their most recent
// matches and a capped chronological rating series per time category.
func (s *PlayerService) GetPlayerDetail(id uint) (*models.PlayerDetail, error) {
	player, err := s.GetPlayerByID(id)
	if err != nil {
		return nil, err
	}

	var recentMatches []models.Match
	if err := s.db.Where("white_player_id = ? OR black_player_id = ?", id, id).
		Order("played_at DESC, id DESC").
		Limit(recentMatchesWindow).
		Preload("WhitePlayer").
		Preload("BlackPlayer").
		Find(&recentMatches).Error; err != nil {
		return nil, err
	}

	history := make(map[models.TimeCategory][]models.EloHistory, len(models.TimeCategories))
	for _, category := range models.TimeCategories {
		var entries []models.EloHistory
		if err := s.db.Where("player_id = ? AND time_category = ?", id, category).
			Order("recorded_at ASC, id ASC").
			Limit(historyWindow).
			Find(&entries).Error; err != nil {
			return nil, err
		}
		history[category] = entries
	}

	return &models.PlayerDetail{
		Player:        *player,
		RecentMatches: recentMatches,
		EloHistory:    history,
	}, nil
}

// ListPlayers returns all players with their nested ratings, ordered by
// name.
func (s *PlayerService) ListPlayers() ([]models.Player, error) {
	var players []models.Player

	result := s.db.Preload("Ratings").
		Order("name ASC").
		Find(&players)

	if result.Error != nil {
		return nil, result.Error
	}

	return players, nil
}

// GetLeaderboard returns the ranked player list for one time category,
// ordered by current ELO descending. Ties break on player id so the ranking
// is deterministic.
func (s *PlayerService) GetLeaderboard(category models.TimeCategory) ([]models.LeaderboardEntry, error) {
	var ratings []models.PlayerRating

	result := s.db.Where("time_category = ?", category).
		Order("current_elo DESC, player_id ASC").
		Preload("Player").
		Find(&ratings)

	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]models.LeaderboardEntry, len(ratings))
	for i := range ratings {
		player := ratings[i].Player
		ratings[i].Player = nil
		entries[i] = models.LeaderboardEntry{
			Rank:   i + 1,
			Player: *player,
			Rating: ratings[i],
		}
	}

	return entries, nil
}

// GetPlayerMatches returns one player's matches, newest first, paginated.
// filter may be "wins" or "losses" to narrow to decisive results from that
// player's perspective.
func (s *PlayerService) GetPlayerMatches(playerID uint, filter string, page int, pageSize int) (*models.PaginatedMatchResponse, error) {
	var matches []models.Match
	var total int64

	baseQuery := s.db.Model(&models.Match{}).Where("white_player_id = ? OR black_player_id = ?", playerID, playerID)

	switch filter {
	case "wins":
		baseQuery = baseQuery.Where(
			"(white_player_id = ? AND result = ?) OR (black_player_id = ? AND result = ?)",
			playerID, models.ResultWhiteWin, playerID, models.ResultBlackWin,
		)
	case "losses":
		baseQuery = baseQuery.Where(
			"(white_player_id = ? AND result = ?) OR (black_player_id = ? AND result = ?)",
			playerID, models.ResultBlackWin, playerID, models.ResultWhiteWin,
		)
	}

	// Count total records
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize

	query := baseQuery.Order("played_at DESC, id DESC").
		Preload("WhitePlayer").
		Preload("BlackPlayer").
		Offset(offset).
		Limit(pageSize)

	if err := query.Find(&matches).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &models.PaginatedMatchResponse{
		Data:       matches,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}
