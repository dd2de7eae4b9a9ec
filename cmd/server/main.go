package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "minjec-portal-backend/internal/api/http"
	"minjec-portal-backend/internal/config"
	"minjec-portal-backend/internal/identity"
	"minjec-portal-backend/internal/logger"
	"minjec-portal-backend/internal/notification"
	"minjec-portal-backend/internal/repository/postgres"
	"minjec-portal-backend/internal/security"
	"minjec-portal-backend/internal/service"
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
	logger.Info("Starting MINJEC Portal Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	linkSigner := security.NewLinkSigner(cfg.Approval.LinkSecret)

	// Initialize Identity Provider
	identityProvider, err := identity.NewFirebaseProvider(
		context.Background(),
		cfg.Identity.CredentialsFile,
		time.Duration(cfg.Identity.TimeoutSeconds)*time.Second,
	)
	if err != nil {
		logger.Error("Failed to initialize identity provider", "error", err)
		log.Fatalf("Failed to initialize identity provider: %v", err)
	}

	// Initialize Notification Dispatcher
	var providers []notification.Provider
	if cfg.SendGrid.APIKey != "" {
		providers = append(providers, notification.NewSendGridProvider(cfg.SendGrid.APIKey, cfg.SendGrid.From, cfg.SendGrid.FromName))
	}
	if cfg.SMTP.Host != "" {
		providers = append(providers, notification.NewSMTPProvider(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From))
	}
	dispatcher := notification.NewDispatcher(providers...)

	// Initialize Services
	otpSvc := service.NewOTPService(
		store.CodeRepository,
		dispatcher,
		time.Duration(cfg.OTP.ExpiryMinutes)*time.Minute,
	)
	approvalSvc := service.NewApprovalService(
		store.RegistrationRepository,
		store.ProfileRepository,
		store.ActivityLogRepository,
		identityProvider,
		otpSvc,
		dispatcher,
		cfg.Identity.TempPassword,
	)
	registrationSvc := service.NewRegistrationService(
		store.RegistrationRepository,
		dispatcher,
		linkSigner,
		cfg.Approval.AdminEmail,
		cfg.Approval.PublicBaseURL,
		cfg.Approval.AdminPanelURL,
	)
	authSvc := service.NewAuthService(store.AdminRepository, tokenManager)

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.Services{
		Registrations: registrationSvc,
		Approvals:     approvalSvc,
		OTP:           otpSvc,
		Auth:          authSvc,
		Links:         linkSigner,
		Tokens:        tokenManager,
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
