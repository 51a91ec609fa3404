package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/welearn/internal/app/controllers"
	appMigrations "github.com/yigit/welearn/internal/app/migrations"
	appRepos "github.com/yigit/welearn/internal/app/repositories"
	"github.com/yigit/welearn/internal/app/repositories/memory"
	appRoutes "github.com/yigit/welearn/internal/app/routes"
	appServices "github.com/yigit/welearn/internal/app/services"
	"github.com/yigit/welearn/internal/config"
	"github.com/yigit/welearn/internal/db"
	appMiddleware "github.com/yigit/welearn/internal/middleware"
	pkgAuth "github.com/yigit/welearn/internal/pkg/auth"
	"github.com/yigit/welearn/internal/pkg/logger"
	"github.com/yigit/welearn/internal/pkg/validation"
	"github.com/yigit/welearn/internal/seed"
	"github.com/yigit/welearn/migrations"
)

// DefaultConfigPath is read when no other path is given
var DefaultConfigPath = filepath.Join("configs", "config.yaml")

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services             *appServices.Services
	PostController       *appControllers.PostController
	TeacherController    *appControllers.TeacherController
	StudentController    *appControllers.StudentController
	DisciplineController *appControllers.DisciplineController
	ClassController      *appControllers.ClassController
	AuthController       *appControllers.AuthController
	HealthController     *appControllers.HealthController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase opens the configured storage driver. For postgres it
// connects and applies the embedded migrations; the returned database is
// nil for the memory driver.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, *appRepos.Repositories, error) {
	if cfg.Database.Driver == config.DriverMemory {
		lgr.Warn().Msg("Using in-memory storage; data is lost on restart")
		return nil, memory.New().Repositories(), nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := database.Ping(pingCtx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFS(ctx, migrations.Files); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, appRepos.NewRepositories(database.Pool), nil
}

// SeedData creates the default records. Failures are logged and do not
// stop startup.
func SeedData(ctx context.Context, cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) {
	if err := seed.CreateDefaultData(ctx, repos, cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
}

// BuildDependencies initializes services, controllers and middleware on
// top of repos. database is nil for the memory driver.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, database *db.PostgresDB, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr, Repos: repos}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenTTL(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(repos, deps.JWTService)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.PostController = appControllers.NewPostController(deps.Services.Posts)
	deps.TeacherController = appControllers.NewTeacherController(deps.Services.Teachers)
	deps.StudentController = appControllers.NewStudentController(deps.Services.Students, deps.Services.Auth)
	deps.DisciplineController = appControllers.NewDisciplineController(deps.Services.Disciplines)
	deps.ClassController = appControllers.NewClassController(deps.Services.Classes)
	deps.AuthController = appControllers.NewAuthController(deps.Services.Auth)

	var pinger appControllers.Pinger
	if database != nil {
		pinger = database
	}
	deps.HealthController = appControllers.NewHealthController(pinger)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch strings.ToLower(cfg.Server.Mode) {
	case "production", gin.ReleaseMode:
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	lgr.Info().Str("mode", gin.Mode()).Msg("Gin mode set")

	validation.RegisterGinValidator()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(appMiddleware.CORS(cfg.CORS.AllowedOrigins))

	appRoutes.SetupSwagger(router, "")

	appRoutes.SetupRouter(router,
		deps.PostController,
		deps.TeacherController,
		deps.StudentController,
		deps.DisciplineController,
		deps.ClassController,
		deps.AuthController,
		deps.HealthController,
		deps.AuthMiddleware,
	)

	return router
}
