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
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/mkowalczyk/campushub/internal/app/controllers"
	appMigrations "github.com/mkowalczyk/campushub/internal/app/migrations"
	appRepos "github.com/mkowalczyk/campushub/internal/app/repositories"
	appRoutes "github.com/mkowalczyk/campushub/internal/app/routes"
	appServices "github.com/mkowalczyk/campushub/internal/app/services"
	"github.com/mkowalczyk/campushub/internal/config"
	"github.com/mkowalczyk/campushub/internal/db"
	appMiddleware "github.com/mkowalczyk/campushub/internal/middleware"
	pkgAuth "github.com/mkowalczyk/campushub/internal/pkg/auth"
	"github.com/mkowalczyk/campushub/internal/pkg/helpers"
	"github.com/mkowalczyk/campushub/internal/pkg/logger"
	"github.com/mkowalczyk/campushub/internal/pkg/ratelimit"
	"github.com/mkowalczyk/campushub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                   *appRepos.Repositories
	Services                *appServices.Services
	JWTService              *pkgAuth.JWTService
	LoginLimiter            ratelimit.Limiter
	AuthController          *appControllers.AuthController
	UserController          *appControllers.UserController
	OrganizationController  *appControllers.OrganizationController
	EventController         *appControllers.EventController
	ParticipationController *appControllers.ParticipationController
	AuthMiddleware          *appMiddleware.AuthMiddleware
	Logger                  zerolog.Logger
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

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
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

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, controllers and
// middleware.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.LoginLimiter = buildLoginLimiter(cfg, lgr)

	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService, deps.LoginLimiter)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.Services.AuthService, lgr)
	deps.UserController = appControllers.NewUserController(deps.Services.UserService, lgr)
	deps.OrganizationController = appControllers.NewOrganizationController(deps.Services.OrganizationService, lgr)
	deps.EventController = appControllers.NewEventController(deps.Services.EventService, lgr)
	deps.ParticipationController = appControllers.NewParticipationController(deps.Services.ParticipationService, lgr)

	return deps, nil
}

// buildLoginLimiter picks the rate limit store: Redis when configured, an
// in-process limiter otherwise.
func buildLoginLimiter(cfg *config.Config, lgr zerolog.Logger) ratelimit.Limiter {
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			lgr.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable, falling back to in-memory rate limiter")
		} else {
			lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Using Redis-backed rate limiter")
			return ratelimit.NewRedisLimiter(client, "ratelimit")
		}
	}

	limiter := ratelimit.NewMemoryLimiter()
	limiter.StartPruning(time.Minute)
	return limiter
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(appMiddleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(appMiddleware.Instrument())
	router.Use(appMiddleware.Throttle(cfg.Server.ThrottlePerSecond, cfg.Server.ThrottleBurst))

	appMiddleware.RegisterMetrics()
	router.GET("/metrics", appMiddleware.MetricsHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.OrganizationController,
		deps.EventController,
		deps.ParticipationController,
		deps.AuthMiddleware,
	)

	return router
}
