package app

import (
	"log"

	"chess-ladder-api/cron"
	"chess-ladder-api/handlers"
	"chess-ladder-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Module wires the ladder's services and handlers together.
type Module struct {
	PlayerHandler     *handlers.PlayerHandler
	PlayerService     *services.PlayerService
	MatchHandler      *handlers.MatchHandler
	MatchService      *services.MatchService
	EloHistoryHandler *handlers.EloHistoryHandler
	EloHistoryService *services.EloHistoryService
	StatsHandler      *handlers.StatsHandler
	StatsService      *services.StatsService
	Scheduler         *cron.Scheduler
	db                *gorm.DB
}

func NewModule(db *gorm.DB) *Module {
	playerService := services.NewPlayerService(db)
	matchService := services.NewMatchService(db)
	eloHistoryService := services.NewEloHistoryService(db)
	statsService := services.NewStatsService(db)

	playerHandler := handlers.NewPlayerHandler(playerService, eloHistoryService)
	matchHandler := handlers.NewMatchHandler(matchService)
	eloHistoryHandler := handlers.NewEloHistoryHandler(eloHistoryService)
	statsHandler := handlers.NewStatsHandler(statsService)

	scheduler := cron.NewScheduler(statsService)

	return &Module{
		PlayerHandler:     playerHandler,
		PlayerService:     playerService,
		MatchHandler:      matchHandler,
		MatchService:      matchService,
		EloHistoryHandler: eloHistoryHandler,
		EloHistoryService: eloHistoryService,
		StatsHandler:      statsHandler,
		StatsService:      statsService,
		Scheduler:         scheduler,
		db:                db,
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	players := r.Group("/players")
	{
		players.POST("", m.PlayerHandler.CreatePlayer)
		players.GET("", m.PlayerHandler.GetPlayers)
		players.GET("/:id", m.PlayerHandler.GetPlayer)
		players.GET("/:id/elo-history", m.PlayerHandler.GetEloHistory)
		players.GET("/:id/matches", m.PlayerHandler.GetPlayerMatches)
	}

	matches := r.Group("/matches")
	{
		matches.POST("", m.MatchHandler.CreateMatch)
		matches.GET("", m.MatchHandler.GetMatches)
		matches.GET("/recent", m.MatchHandler.GetRecentMatches)
	}

	eloHistory := r.Group("/elo-history")
	{
		eloHistory.GET("/recent", m.EloHistoryHandler.GetRecentEloChanges)
	}

	r.GET("/stats", m.StatsHandler.GetStats)
}

// StartScheduler starts the cron scheduler for the daily activity report.
func (m *Module) StartScheduler() error {
	log.Println("Starting ladder module scheduler...")
	return m.Scheduler.Start()
}

// StopScheduler stops the cron scheduler.
func (m *Module) StopScheduler() {
	log.Println("Stopping ladder module scheduler...")
	m.Scheduler.Stop()
}
