package container

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	gocache "github.com/patrickmn/go-cache"

	database "github.com/bboom-app/bboom-api/app/db"
	"github.com/bboom-app/bboom-api/config"
	"github.com/bboom-app/bboom-api/internal/api/auth"
	"github.com/bboom-app/bboom-api/internal/api/post"
	"github.com/bboom-app/bboom-api/internal/api/user"
	"github.com/bboom-app/bboom-api/internal/ui"
)

// Container holds all application dependencies.
type Container struct {
	Config      *config.Config
	Logger      *slog.Logger
	Pool        *pgxpool.Pool
	AuthHandler *auth.HandlerImpl
	UserHandler *user.HandlerImpl
	PostHandler *post.HandlerImpl
	UIHandler   *ui.HandlerImpl

	dbConfig *database.DatabaseConfig
}

// NewContainer initializes the database pool and wires repositories, services
// and handlers.
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		return nil, err
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		return nil, err
	}

	authRepo := auth.NewPostgresAuthRepo(pool, logger)
	authService := auth.NewAuthService(authRepo, cfg, logger)
	authHandler := auth.NewHandlerImpl(authService, logger)

	userRepo := user.NewPostgresUserRepo(pool, logger)
	userService := user.NewUserService(userRepo, logger)
	userHandler := user.NewHandlerImpl(userService, logger)

	postRepo := post.NewPostgresPostRepo(pool, logger)
	postService := post.NewPostService(postRepo, logger)
	postHandler := post.NewHandlerImpl(postService, logger)

	uiHandler := ui.NewHandlerImpl(authService, userService, postService, cfg.Session, logger)

	return &Container{
		Config:      cfg,
		Logger:      logger,
		Pool:        pool,
		AuthHandler: authHandler,
		UserHandler: userHandler,
		PostHandler: postHandler,
		UIHandler:   uiHandler,
		dbConfig:    dbConfig,
	}, nil
}

// AuthenticateMiddleware builds the bearer-token middleware backed by a fresh
// claims cache.
func (c *Container) AuthenticateMiddleware(claimsCache *gocache.Cache) func(http.Handler) http.Handler {
	return auth.Authenticate(c.Logger, c.Config.JWT, claimsCache)
}

// Close releases all resources held by the container.
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}

// WaitForDB waits for the database to be ready.
func (c *Container) WaitForDB(ctx context.Context) bool {
	return database.WaitForDB(ctx, c.Pool, c.Logger)
}

// RunMigrations applies the embedded database migrations.
func (c *Container) RunMigrations() error {
	return database.RunMigrations(c.dbConfig.ConnectionURL, c.Logger)
}
