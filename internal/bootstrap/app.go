package bootstrap

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/UrielYanez/ms-users/internal/address"
	"github.com/UrielYanez/ms-users/internal/applications"
	"github.com/UrielYanez/ms-users/internal/cv"
	"github.com/UrielYanez/ms-users/internal/profiles"
	"github.com/UrielYanez/ms-users/internal/shared/config"
	"github.com/UrielYanez/ms-users/internal/shared/server"
	"github.com/UrielYanez/ms-users/internal/shared/storage/db"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Redis  *redis.Client

	ProfileRepo     profiles.Repo
	CVRepo          cv.Repo
	ApplicationRepo applications.Repo

	ProfileService *profiles.Service
	CVService      *cv.Service

	ProfileHandler     *profiles.Handler
	CVHandler          *cv.Handler
	ApplicationHandler *applications.Handler
	AddressHandler     *address.Handler
}

// Build prepares shared dependencies and the wired router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Redis:  buildRedis(cfg),
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:             app.Config,
		DB:                 app.DB,
		ProfileHandler:     app.ProfileHandler,
		CVHandler:          app.CVHandler,
		ApplicationHandler: app.ApplicationHandler,
		AddressHandler:     app.AddressHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, errMissingDatabaseURL
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Printf("bootstrap: migrations failed: %v", err)
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

func buildRedis(cfg config.Config) *redis.Client {
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
}

func buildServices(app *App) {
	if app.DB != nil {
		app.ProfileRepo = &profiles.PGRepo{DB: app.DB}
		app.CVRepo = &cv.PGRepo{DB: app.DB}
		app.ApplicationRepo = &applications.PGRepo{DB: app.DB}
	} else {
		app.ProfileRepo = profiles.NewMemoryRepo()
		app.CVRepo = cv.NewMemoryRepo()
		app.ApplicationRepo = applications.NewMemoryRepo()
	}

	app.ProfileService = profiles.NewService(app.ProfileRepo)
	app.CVService = cv.NewService(app.ProfileRepo, app.CVRepo)

	var addressCache address.Cache
	if app.Redis != nil {
		addressCache = address.NewRedisCache(app.Redis, app.Config.AddressCacheTTL)
	}
	dipomex := address.NewClient(app.Config.DipomexBaseURL, app.Config.DipomexToken)

	app.ProfileHandler = profiles.NewHandler(app.ProfileService)
	app.CVHandler = cv.NewHandler(app.CVService)
	app.ApplicationHandler = applications.NewHandler(app.ApplicationRepo)
	app.AddressHandler = address.NewHandler(dipomex, addressCache)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

type missingDatabaseURLError struct{}

func (missingDatabaseURLError) Error() string { return "DATABASE_URL is required" }

var errMissingDatabaseURL = missingDatabaseURLError{}
