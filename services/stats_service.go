package services

import (
	"time"

	"chess-ladder-api/models"

	"gorm.io/gorm"
)

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{
		db: db,
	}
}

func (s *StatsService) GetStats() (*models.Stats, error) {
	var totalPlayers int64
	var totalMatches int64
	var matchesLast7Days int64
	var matchesPrevious7Days int64

	if err := s.db.Model(&models.Player{}).Count(&totalPlayers).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Match{}).Count(&totalMatches).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	last7DaysStart := now.AddDate(0, 0, -7)
	previous7DaysStart := now.AddDate(0, 0, -14)

	if err := s.db.Model(&models.Match{}).
		Where("played_at >= ?", last7DaysStart).
		Count(&matchesLast7Days).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Match{}).
		Where("played_at >= ? AND played_at < ?", previous7DaysStart, last7DaysStart).
		Count(&matchesPrevious7Days).Error; err != nil {
		return nil, err
	}

	return &models.Stats{
		TotalPlayers:         totalPlayers,
		TotalMatches:         totalMatches,
		MatchesLast7Days:     matchesLast7Days,
		MatchesPrevious7Days: matchesPrevious7Days,
	}, nil
}
