package fixtures

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"chess-ladder-api/models"
	"chess-ladder-api/services"

	"gorm.io/gorm"
)

// teamRoster is the default set of players seeded for a fresh ladder.
var teamRoster = []string{
	"John Mern",
	"Anthony Corso",
	"Luke Ren",
	"Markus Zechner",
	"Arec Jamgochian",
	"William Davis",
	"Alex Bryk",
	"John Godlewski",
	"Danny Donahue",
	"Kyle Clark",
	"Richard Rex",
	"Brandon Bowersox-Johnson",
	"Jake Popham",
	"Harrison Delecki",
}

const matchesToGenerate = 60

type Fixtures struct {
	db            *gorm.DB
	playerService *services.PlayerService
	matchService  *services.MatchService
}

func NewFixtures(db *gorm.DB) *Fixtures {
	return &Fixtures{
		db:            db,
		playerService: services.NewPlayerService(db),
		matchService:  services.NewMatchService(db),
	}
}

// GenerateTestData seeds the roster and plays out random matches through the
// real recording path, so ratings, counters and history stay consistent.
func (f *Fixtures) GenerateTestData() error {
	log.Println("Starting fixtures generation...")

	players, err := f.seedPlayers()
	if err != nil {
		return fmt.Errorf("failed to seed players: %w", err)
	}

	matchCount, err := f.generateMatches(players)
	if err != nil {
		return fmt.Errorf("failed to generate matches: %w", err)
	}

	log.Printf("Fixtures generated: %d players, %d matches", len(players), matchCount)
	return nil
}

func (f *Fixtures) seedPlayers() ([]models.Player, error) {
	players := make([]models.Player, 0, len(teamRoster))
	for _, name := range teamRoster {
		player, err := f.playerService.CreatePlayer(name)
		if err != nil {
			return nil, err
		}
		players = append(players, *player)
	}
	log.Printf("Seeded %d players", len(players))
	return players, nil
}

func (f *Fixtures) generateMatches(players []models.Player) (int, error) {
	results := []models.Result{models.ResultWhiteWin, models.ResultBlackWin, models.ResultDraw}

	// Spread played-at timestamps over the last 90 days, oldest first.
	start := time.Now().AddDate(0, 0, -90)

	for i := 0; i < matchesToGenerate; i++ {
		white := players[rand.Intn(len(players))]
		black := players[rand.Intn(len(players))]
		for black.ID == white.ID {
			black = players[rand.Intn(len(players))]
		}

		playedAt := start.Add(time.Duration(i) * (90 * 24 * time.Hour / matchesToGenerate))

		req := models.CreateMatchRequest{
			TimeCategory:  models.TimeCategories[rand.Intn(len(models.TimeCategories))],
			WhitePlayerID: white.ID,
			BlackPlayerID: black.ID,
			Result:        results[rand.Intn(len(results))],
			PlayedAt:      playedAt,
		}

		if _, err := f.matchService.CreateMatch(req); err != nil {
			return i, err
		}
	}

	return matchesToGenerate, nil
}

// ClearAllData removes all ladder data, children first.
func (f *Fixtures) ClearAllData() error {
	log.Println("Clearing all fixture data...")

	tables := []string{"elo_history", "matches", "player_ratings", "players"}
	for _, table := range tables {
		if err := f.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	log.Println("All fixture data cleared")
	return nil
}
