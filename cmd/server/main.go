package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "leaguehq-backend/internal/api/http"
	"leaguehq-backend/internal/config"
	"leaguehq-backend/internal/logger"
	"leaguehq-backend/internal/repository/postgres"
	"leaguehq-backend/internal/security"
	"leaguehq-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting LeagueHQ backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// Initialize Email Service
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)

	// Initialize Services
	authSvc := service.NewAuthService(store.Users, tokenManager)
	userSvc := service.NewUserService(store.Users)
	leagueSvc := service.NewLeagueService(store, store.Leagues, store.Members)
	membershipSvc := service.NewMembershipService(store, store.Leagues, store.Members)
	invitationSvc := service.NewInvitationService(
		store,
		store.Leagues,
		store.Members,
		store.Invitations,
		store.Users,
		store.Overrides,
		emailSvc,
		logger.WithService("invitation"),
	)
	placeholderSvc := service.NewPlaceholderService(store.Placeholders, store.Members)
	teamSvc := service.NewTeamService(store, store.Teams, store.Members, store.Placeholders)
	moderationSvc := service.NewModerationService(
		store,
		store.Members,
		store.Reports,
		store.Actions,
		store.Users,
		store.Leagues,
		emailSvc,
		logger.WithService("moderation"),
	)
	gameTypeSvc := service.NewGameTypeService(store.GameTypes, store.Members, store.Overrides)
	limitSvc := service.NewLimitService(store.Members, store.GameTypes, store.Overrides)

	// Initialize HTTP API
	handler := httpapi.NewHandler(
		authSvc,
		userSvc,
		leagueSvc,
		membershipSvc,
		invitationSvc,
		placeholderSvc,
		teamSvc,
		moderationSvc,
		gameTypeSvc,
		limitSvc,
		tokenManager,
	)

	addr := cfg.GetServerAddress()
	logger.Info("HTTP server listening", "address", addr)
	if err := http.ListenAndServe(addr, handler.Router()); err != nil {
		logger.Error("HTTP server stopped", "error", err)
		log.Fatalf("HTTP server stopped: %v", err)
	}
}
