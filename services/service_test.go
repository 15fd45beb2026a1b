package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"chess-ladder-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database per test. A single pooled
// connection keeps the shared-cache memory database alive for the test's
// lifetime.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(
		&models.Player{},
		&models.PlayerRating{},
		&models.Match{},
		&models.EloHistory{},
	); err != nil {
		t.Fatal(err)
	}

	return db
}

func createTestPlayer(t *testing.T, db *gorm.DB, name string) *models.Player {
	t.Helper()

	player, err := NewPlayerService(db).CreatePlayer(name)
	if err != nil {
		t.Fatal(err)
	}
	return player
}

// setRating overwrites one rating row so tests can stage established or
// uneven players.
func setRating(t *testing.T, db *gorm.DB, playerID uint, category models.TimeCategory, elo, gamesPlayed int) {
	t.Helper()

	err := db.Model(&models.PlayerRating{}).
		Where("player_id = ? AND time_category = ?", playerID, category).
		Updates(map[string]interface{}{
			"current_elo":  elo,
			"peak_elo":     elo,
			"games_played": gamesPlayed,
		}).Error
	if err != nil {
		t.Fatal(err)
	}
}

func getRating(t *testing.T, db *gorm.DB, playerID uint, category models.TimeCategory) *models.PlayerRating {
	t.Helper()

	var rating models.PlayerRating
	if err := db.Where("player_id = ? AND time_category = ?", playerID, category).
		First(&rating).Error; err != nil {
		t.Fatal(err)
	}
	return &rating
}

func matchRequest(whiteID, blackID uint, result models.Result) models.CreateMatchRequest {
	return models.CreateMatchRequest{
		TimeCategory:  models.TimeCategory5Min,
		WhitePlayerID: whiteID,
		BlackPlayerID: blackID,
		Result:        result,
		PlayedAt:      time.Date(2025, 6, 15, 18, 30, 0, 0, time.UTC),
	}
}
