package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DavidWhitehead8808/Purley-Padel-App/config"
	"github.com/DavidWhitehead8808/Purley-Padel-App/db"
	"github.com/DavidWhitehead8808/Purley-Padel-App/handlers"
	"github.com/DavidWhitehead8808/Purley-Padel-App/repositories"
	api "github.com/DavidWhitehead8808/Purley-Padel-App/routes"
	"github.com/DavidWhitehead8808/Purley-Padel-App/schedule"
	"github.com/DavidWhitehead8808/Purley-Padel-App/scoring"
	"github.com/DavidWhitehead8808/Purley-Padel-App/services"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	if cfg.RunMigrations {
		if err := db.RunMigrations(dbConn); err != nil {
			logger.Error("failed to run migrations", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("database migrations applied")
	}

	divisionRepo := repositories.NewPostgresDivisionRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	fixtureRepo := repositories.NewPostgresFixtureRepository(dbConn)
	logger.Info("repositories initialized")

	divisionService := services.NewDivisionService(dbConn, divisionRepo, playerRepo, fixtureRepo)
	playerService := services.NewPlayerService(playerRepo, divisionRepo)
	fixtureService := services.NewFixtureService(dbConn, divisionRepo, playerRepo, fixtureRepo, schedule.NewRoundRobinGenerator())
	resultService := services.NewResultService(dbConn, fixtureRepo, playerRepo, scoring.DefaultRules())
	logger.Info("services initialized")

	healthHandler := handlers.NewHealthHandler(dbConn)
	divisionHandler := handlers.NewDivisionHandler(divisionService)
	playerHandler := handlers.NewPlayerHandler(playerService)
	fixtureHandler := handlers.NewFixtureHandler(fixtureService, resultService)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.CORSAllowedOrigins,
		healthHandler,
		divisionHandler,
		playerHandler,
		fixtureHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
