package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/emre/smartportal/internal/app/auth"
	appControllers "github.com/emre/smartportal/internal/app/controllers"
	appMigrations "github.com/emre/smartportal/internal/app/migrations"
	appRepos "github.com/emre/smartportal/internal/app/repositories"
	appRoutes "github.com/emre/smartportal/internal/app/routes"
	appServices "github.com/emre/smartportal/internal/app/services"
	"github.com/emre/smartportal/internal/config"
	"github.com/emre/smartportal/internal/db"
	appMiddleware "github.com/emre/smartportal/internal/middleware"
	pkgAuth "github.com/emre/smartportal/internal/pkg/auth"
	"github.com/emre/smartportal/internal/pkg/helpers"
	"github.com/emre/smartportal/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	AuthzService         *appAuth.AuthorizationService
	LectureService       *appServices.LectureService
	AttendanceService    *appServices.AttendanceService
	ReportService        *appServices.ReportService
	LectureController    *appControllers.LectureController
	AttendanceController *appControllers.AttendanceController
	ReportController     *appControllers.ReportController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	RateLimiter          *appMiddleware.RateLimiter
	RedisClient          *redis.Client
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return dbPool, nil
}

// SetupRedis connects the Redis client used by the rate limiter. A
// failed ping is logged but not fatal; the limiter fails open.
func SetupRedis(cfg *config.Config, lgr zerolog.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		lgr.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable, rate limiting degraded")
	} else {
		lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connection established")
	}

	return client
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	params, err := cfg.AttendanceParams()
	if err != nil {
		return nil, fmt.Errorf("invalid attendance configuration: %w", err)
	}

	deps.AuthzService = appAuth.NewAuthorizationService(
		deps.Repos.UserRepository,
		deps.Repos.CourseRepository,
	)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.LectureService = appServices.NewLectureService(
		deps.Repos.LectureRepository,
		deps.Repos.AttendanceRepository,
		deps.Repos.CourseRepository,
		deps.AuthzService,
		params,
	)
	deps.AttendanceService = appServices.NewAttendanceService(
		deps.Repos.LectureRepository,
		deps.Repos.AttendanceRepository,
		deps.Repos.EnrollmentRepository,
		deps.AuthzService,
		params,
	)
	deps.ReportService = appServices.NewReportService(
		deps.Repos.CourseRepository,
		deps.Repos.LectureRepository,
		deps.Repos.EnrollmentRepository,
		deps.Repos.AttendanceRepository,
		params,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.RedisClient = SetupRedis(cfg, lgr)
	deps.RateLimiter = appMiddleware.NewRateLimiter(deps.RedisClient, cfg.RateLimit.MarkingPerMinute)

	deps.LectureController = appControllers.NewLectureController(deps.LectureService)
	deps.AttendanceController = appControllers.NewAttendanceController(deps.AttendanceService)
	deps.ReportController = appControllers.NewReportController(deps.ReportService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.LectureController,
		deps.AttendanceController,
		deps.ReportController,
		deps.AuthMiddleware,
		deps.RateLimiter,
	)

	return router
}
