package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ilumeo/timeclock/internal/config"
	"github.com/ilumeo/timeclock/internal/database"
	"github.com/ilumeo/timeclock/internal/handler"
	"github.com/ilumeo/timeclock/internal/logger"
	"github.com/ilumeo/timeclock/internal/repository"
	"github.com/ilumeo/timeclock/internal/server"
	"github.com/ilumeo/timeclock/internal/service"
)

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

	log.Info("Starting timeclock server",
		zap.String("env", cfg.Env),
		zap.String("config_path", *configPath),
		zap.String("timezone", cfg.Timezone),
	)

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("Failed to load timezone", zap.Error(err))
	}

	db, err := database.New(cfg.StoragePath, log.Logger)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	userRepo := repository.NewUserRepository(db.DB)
	eventRepo := repository.NewEventRepository(db.DB)

	userService := service.NewUserService(userRepo, log.Logger)
	clockService := service.NewTimeclockService(eventRepo, userRepo, loc, log.Logger)

	userHandler := handler.NewUserHandler(userService, log.Logger)
	clockHandler := handler.NewTimeclockHandler(clockService, log.Logger)

	srv := server.New(userHandler, clockHandler, log.Logger)

	go func() {
		if err := srv.Start(cfg.HTTP.Addr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Info("Received shutdown signal", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("HTTP server shutdown error", zap.Error(err))
	}

	log.Info("Timeclock server stopped")
}
