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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/blackstanton/punchclock/internal/app/controllers"
	appMigrations "github.com/blackstanton/punchclock/internal/app/migrations"
	appRepos "github.com/blackstanton/punchclock/internal/app/repositories"
	"github.com/blackstanton/punchclock/internal/app/repositories/memory"
	appRoutes "github.com/blackstanton/punchclock/internal/app/routes"
	appServices "github.com/blackstanton/punchclock/internal/app/services"
	"github.com/blackstanton/punchclock/internal/config"
	"github.com/blackstanton/punchclock/internal/db"
	appMiddleware "github.com/blackstanton/punchclock/internal/middleware"
	"github.com/blackstanton/punchclock/internal/pkg/filestorage"
	"github.com/blackstanton/punchclock/internal/pkg/logger"
	"github.com/blackstanton/punchclock/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	TeacherService *appServices.TeacherService
	StudentService *appServices.StudentService
	TaskService    *appServices.TaskService
	PunchService   *appServices.PunchService

	TeacherController *appControllers.TeacherController
	StudentController *appControllers.StudentController
	TaskController    *appControllers.TaskController
	PunchController   *appControllers.PunchController

	FileStorage *filestorage.LocalStorage
	Logger      zerolog.Logger
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

// SetupDatabase establishes the PostgreSQL connection and runs migrations.
// Callers using the memory driver skip this entirely.
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

// BuildDependencies initializes repositories, services, and controllers.
// dbPool is nil when the memory driver is configured; the in-memory store
// is wired in its place.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	var (
		teacherRepo appServices.TeacherRepository
		studentRepo appServices.StudentRepository
		taskRepo    appServices.TaskRepository
		punchRepo   appServices.PunchRepository
	)

	if dbPool != nil {
		repos := appRepos.NewRepositories(dbPool)
		teacherRepo = repos.TeacherRepository
		studentRepo = repos.StudentRepository
		taskRepo = repos.TaskRepository
		punchRepo = repos.PunchRepository
	} else {
		lgr.Info().Msg("Using in-memory store")
		store := memory.NewStore()
		teacherRepo = store.Teachers
		studentRepo = store.Students
		taskRepo = store.Tasks
		punchRepo = store.Punches
	}

	// File storage base URL must match the static file serving endpoint
	var err error
	baseURL := "http://localhost:" + cfg.Server.Port + "/uploads"
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.TeacherService = appServices.NewTeacherService(teacherRepo, studentRepo)
	deps.StudentService = appServices.NewStudentService(studentRepo, teacherRepo)
	deps.TaskService = appServices.NewTaskService(taskRepo)
	deps.PunchService = appServices.NewPunchService(punchRepo, studentRepo, taskRepo)

	deps.TeacherController = appControllers.NewTeacherController(deps.TeacherService, deps.FileStorage)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, deps.PunchService)
	deps.TaskController = appControllers.NewTaskController(deps.TaskService)
	deps.PunchController = appControllers.NewPunchController(deps.PunchService)

	if cfg.Server.SeedDemoData {
		if err := seed.CreateDemoData(context.Background(), teacherRepo, studentRepo, taskRepo, lgr); err != nil {
			// Log but keep starting up
			lgr.Error().Err(err).Msg("Failed to create demo data, proceeding anyway...")
		}
	}

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

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(appMiddleware.Metrics())

	appRoutes.SetupRouter(router,
		deps.TeacherController,
		deps.StudentController,
		deps.TaskController,
		deps.PunchController,
	)

	return router
}
