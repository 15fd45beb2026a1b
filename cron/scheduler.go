package cron

import (
	"log"

	"chess-ladder-api/services"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron         *cron.Cron
	statsService *services.StatsService
}

func NewScheduler(statsService *services.StatsService) *Scheduler {
	// Create cron with seconds precision and logging
	c := cron.New(cron.WithSeconds(), cron.WithLogger(cron.VerbosePrintfLogger(log.Default())))

	return &Scheduler{
		cron:         c,
		statsService: statsService,
	}
}

// Start schedules the daily activity report.
func (s *Scheduler) Start() error {
	log.Println("Starting cron scheduler...")

	// Every day at 08:00
	_, err := s.cron.AddFunc("0 0 8 * * *", s.runActivityReport)
	if err != nil {
		log.Printf("Error scheduling activity report job: %v", err)
		return err
	}

	s.cron.Start()
	log.Println("Cron scheduler started successfully")

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	log.Println("Stopping cron scheduler...")
	s.cron.Stop()
	log.Println("Cron scheduler stopped")
}

// RunNow triggers the activity report immediately (useful for testing).
func (s *Scheduler) RunNow() {
	s.runActivityReport()
}

func (s *Scheduler) runActivityReport() {
	stats, err := s.statsService.GetStats()
	if err != nil {
		log.Printf("Activity report failed: %v", err)
		return
	}

	log.Printf("Activity report: %d players, %d matches total, %d matches in the last 7 days (%d the week before)",
		stats.TotalPlayers, stats.TotalMatches, stats.MatchesLast7Days, stats.MatchesPrevious7Days)
}
