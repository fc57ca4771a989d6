// Command timeclock-seed wipes the store and loads a demo user with a few
// weeks of punch pairs, for local development against the front end.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ilumeo/timeclock/internal/config"
	"github.com/ilumeo/timeclock/internal/database"
	"github.com/ilumeo/timeclock/internal/logger"
	"github.com/ilumeo/timeclock/internal/models"
	"github.com/ilumeo/timeclock/internal/repository"
)

type punch struct {
	monthOffset int // months before the current one
	day         int
	hour        int
	minute      int
	kind        models.EventKind
}

var punches = []punch{
	{0, 8, 9, 0, models.ClockIn},
	{0, 8, 17, 0, models.ClockOut},
	{0, 9, 8, 30, models.ClockIn},
	{0, 9, 17, 0, models.ClockOut},
	{0, 10, 9, 15, models.ClockIn},
	{0, 10, 17, 0, models.ClockOut},
	{0, 11, 8, 0, models.ClockIn},
	{0, 11, 17, 0, models.ClockOut},
	{1, 25, 9, 0, models.ClockIn},
	{1, 25, 17, 15, models.ClockOut},
	{1, 28, 9, 0, models.ClockIn},
	{1, 28, 17, 0, models.ClockOut},
	{2, 15, 10, 0, models.ClockIn},
	{2, 15, 17, 0, models.ClockOut},
}

func main() {
	configPath := flag.String("config", "config/local.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("Failed to load timezone", zap.Error(err))
	}

	db, err := database.New(cfg.StoragePath, log.Logger)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Start from a clean slate; events cascade with the users.
	if _, err := db.Exec("DELETE FROM users"); err != nil {
		log.Fatal("Failed to clear existing data", zap.Error(err))
	}

	users := repository.NewUserRepository(db.DB)
	events := repository.NewEventRepository(db.DB)

	user, err := users.Create(&models.User{
		ID:       uuid.NewString(),
		Name:     "Colaborador Ilumeo",
		Email:    "colaborador@ilumeo.com",
		UserCode: "ILUMEO123",
	})
	if err != nil {
		log.Fatal("Failed to create demo user", zap.Error(err))
	}

	now := time.Now().In(loc)
	for _, p := range punches {
		ts := time.Date(now.Year(), now.Month(), p.day, p.hour, p.minute, 0, 0, loc).
			AddDate(0, -p.monthOffset, 0)
		if ts.After(now) {
			// Skip punches that would land in the future this early in the month.
			continue
		}

		_, err := events.Insert(&models.TimeEvent{
			ID:        uuid.NewString(),
			UserID:    user.ID,
			Timestamp: ts.UTC(),
			Kind:      p.kind,
		}, ts.Format("2006-01-02"))
		if err != nil {
			log.Fatal("Failed to insert seed event", zap.Error(err), zap.Time("timestamp", ts))
		}
	}

	log.Info("Seed data inserted",
		zap.String("user_id", user.ID),
		zap.String("user_code", user.UserCode),
	)
}
