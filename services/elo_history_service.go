package services

import (
	"chess-ladder-api/models"

	"gorm.io/gorm"
)

type EloHistoryService struct {
	db *gorm.DB
}

func NewEloHistoryService(db *gorm.DB) *EloHistoryService {
	return &EloHistoryService{
		db: db,
	}
}

// GetPlayerHistory returns one player's rating series, chronological, capped
// at limit points. A nil category returns entries across both categories.
func (s *EloHistoryService) GetPlayerHistory(playerID uint, category *models.TimeCategory, limit int) ([]models.EloHistory, error) {
	if limit <= 0 || limit > historyWindow {
		limit = historyWindow
	}

	query := s.db.Where("player_id = ?", playerID)
	if category != nil {
		query = query.Where("time_category = ?", *category)
	}

	var entries []models.EloHistory
	result := query.Order("recorded_at ASC, id ASC").
		Limit(limit).
		Preload("Match").
		Find(&entries)

	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

func (s *EloHistoryService) GetRecentEloChanges(limit int) ([]models.EloHistory, error) {
	var entries []models.EloHistory

	result := s.db.Order("recorded_at DESC, id DESC").
		Limit(limit).
		Preload("Player").
		Preload("Match").
		Find(&entries)

	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}
