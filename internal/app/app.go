package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goaltracker/internal/config"
	"github.com/templui/goaltracker/internal/db"
	"github.com/templui/goaltracker/internal/repository"
	"github.com/templui/goaltracker/internal/service"
	"github.com/templui/goaltracker/internal/storage"
)

type App struct {
	Cfg                 *config.Config
	DB                  *sqlx.DB
	GoalService         *service.GoalService
	AchievementService  *service.AchievementService
	NotificationService *service.NotificationService
	ReportService       *service.ReportService
	AuthService         *service.AdminAuthService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		_ = db.Close(database)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Repositories
	goalRepository := repository.NewGoalRepository(database)
	progressEntryRepository := repository.NewProgressEntryRepository(database)
	achievementRepository := repository.NewAchievementRepository(database)

	// Storage
	fileStorage, err := storage.New(cfg)
	if err != nil {
		_ = db.Close(database)
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Services
	notificationService := service.NewNotificationService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.NotifyEmailTo,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	achievementService := service.NewAchievementService(achievementRepository, goalRepository, notificationService)
	err = achievementService.Initialize()
	if err != nil {
		_ = db.Close(database)
		return nil, fmt.Errorf("failed to initialize achievements: %w", err)
	}
	if cfg.SeedTemplates {
		_, err = achievementService.SeedDefaultTemplates()
		if err != nil {
			_ = db.Close(database)
			return nil, fmt.Errorf("failed to seed achievement templates: %w", err)
		}
	}

	goalService := service.NewGoalService(goalRepository, progressEntryRepository, achievementService, cfg.Timezone)
	reportService := service.NewReportService(goalService, achievementService, fileStorage)
	authService := service.NewAdminAuthService(cfg.AdminJWTSecret, cfg.AdminJWTExpiry)

	return &App{
		Cfg:                 cfg,
		DB:                  database,
		GoalService:         goalService,
		AchievementService:  achievementService,
		NotificationService: notificationService,
		ReportService:       reportService,
		AuthService:         authService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return db.Close(a.DB)
	}
	return nil
}
