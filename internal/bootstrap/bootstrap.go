package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/unischedule/internal/app/controllers"
	appMigrations "github.com/yigit/unischedule/internal/app/migrations"
	appRepos "github.com/yigit/unischedule/internal/app/repositories"
	appRoutes "github.com/yigit/unischedule/internal/app/routes"
	appServices "github.com/yigit/unischedule/internal/app/services"
	"github.com/yigit/unischedule/internal/config"
	"github.com/yigit/unischedule/internal/db"
	appMiddleware "github.com/yigit/unischedule/internal/middleware"
	pkgAuth "github.com/yigit/unischedule/internal/pkg/auth"
	"github.com/yigit/unischedule/internal/pkg/helpers"
	"github.com/yigit/unischedule/internal/pkg/logger"
	"github.com/yigit/unischedule/internal/seed"
)

// ConfigPathEnv overrides the default config file location
const ConfigPathEnv = "UNISCHEDULE_CONFIG"

// Dependencies holds all the application dependencies
type Dependencies struct {
	SectionService      *appServices.SectionService
	EnrollmentService   *appServices.EnrollmentService
	PrerequisiteService *appServices.PrerequisiteService
	Controllers         appRoutes.Controllers
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	Logger              zerolog.Logger
}

// ConfigPath returns the config file to load
func ConfigPath() string {
	if path := os.Getenv(ConfigPathEnv); path != "" {
		return path
	}
	return filepath.Join("configs", "config.yaml")
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and, when
// configured, seeds the demo catalog.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr)
	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if cfg.Database.SeedDemoData {
		if err := seed.CreateDemoData(context.Background(), dbPool, lgr); err != nil {
			// The API is usable without the demo rows
			lgr.Error().Err(err).Msg("Failed to create demo data, proceeding anyway...")
		}
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.SectionService = appServices.NewSectionService(
		deps.Repos.Store,
		deps.Repos.AuditLogRepository,
		cfg.Scheduling,
		lgr,
	)
	deps.PrerequisiteService = appServices.NewPrerequisiteService(deps.Repos.Store, cfg.Scheduling.FailingGrades)
	deps.EnrollmentService = appServices.NewEnrollmentService(
		deps.Repos.Store,
		deps.PrerequisiteService,
		deps.Repos.NotificationRepository,
		deps.Repos.AuditLogRepository,
		cfg.Scheduling,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = appRoutes.Controllers{
		Sections:      appControllers.NewSectionController(deps.SectionService, cfg.Scheduling),
		Enrollment:    appControllers.NewEnrollmentController(deps.EnrollmentService, deps.PrerequisiteService),
		Notifications: appControllers.NewNotificationController(deps.Repos.NotificationRepository),
	}

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := appMiddleware.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("registering validators: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router, nil
}
