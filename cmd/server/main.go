package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	httpapi "smartschool-backend/internal/api/http"
	"smartschool-backend/internal/config"
	"smartschool-backend/internal/logger"
	"smartschool-backend/internal/repository/postgres"
	"smartschool-backend/internal/security"
	"smartschool-backend/internal/service"
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
	logger.Info("Starting SmartSchool Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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

	// Initialize Store
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	// Initialize Email Service
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	// Initialize Services
	codeGen := service.NewQRCodeGenerator()
	finePerDay := decimal.NewFromFloat(cfg.Library.FinePerDay)
	authSvc := service.NewAuthService(store, tokenManager)
	bookSvc := service.NewBookService(store, codeGen)
	lendingSvc := service.NewLendingService(store, cfg.Library.MaxActiveLoans, finePerDay)
	attendanceSvc := service.NewAttendanceService(store)
	donationSvc := service.NewDonationService(store, emailSvc)
	studentSvc := service.NewStudentService(store)
	teacherSvc := service.NewTeacherService(store)
	classSvc := service.NewClassService(store)

	// Set up HTTP server
	handlers := httpapi.NewHandlers(authSvc, bookSvc, lendingSvc, attendanceSvc,
		donationSvc, studentSvc, teacherSvc, classSvc)
	router := httpapi.NewRouter(handlers, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
