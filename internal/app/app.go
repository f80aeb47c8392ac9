package app

import (
	"context"
	"database/sql"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"parkdesk/internal/cache"
	"parkdesk/internal/config"
	"parkdesk/internal/db"
	httpserver "parkdesk/internal/http"
	"parkdesk/internal/http/handlers"
	"parkdesk/internal/http/middleware"
	"parkdesk/internal/password"
	"parkdesk/internal/repository"
	"parkdesk/internal/service"
	"parkdesk/internal/ws"
)

// App wires parkdesk dependencies.
type App struct {
	server      *httpserver.Server
	db          *sql.DB
	redisClient *redis.Client
	logger      *zap.Logger
}

// New constructs the application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	redisClient, err := cache.NewClient(cfg.Redis.Addr, cfg.Redis.Password)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	store := repository.NewPostgres(sqlDB)
	activeStore := cache.NewStore(redisClient, cfg.ActiveSessionTTL())

	hub := ws.NewHub(logger)
	wsServer := ws.NewServer(hub, 0, logger)

	tokens := service.NewTokenService(cfg.Auth.Secret, cfg.TokenTTL())
	hasher := password.NewBcryptHasher(0)
	authService := service.NewAuthService(store, hasher, tokens, logger)

	parkingService := service.NewParkingService(store, activeStore, hub, cfg.FacilityZone(), logger)

	parkingHandlers := handlers.NewParkingHandlers(parkingService, logger)
	slotHandlers := handlers.NewSlotHandlers(parkingService, logger)

	routes := httpserver.Routes{
		Login:        handlers.NewLoginHandler(authService),
		AuthCheck:    handlers.NewAuthCheckHandler(),
		Entry:        parkingHandlers.HandleEntry,
		Exit:         parkingHandlers.HandleExit,
		ActiveLookup: parkingHandlers.HandleActiveLookup,
		ListSlots:    slotHandlers.HandleList,
		SlotStatus:   slotHandlers.HandleSetStatus,
		CorrectTime:  slotHandlers.HandleCorrectTime,
		Stats:        handlers.NewStatsHandler(parkingService),
		SlotsFeed:    wsServer.HandleWS,
		Health:       handlers.NewHealthHandler(),
		Auth:         middleware.Auth(tokens),
	}

	router := httpserver.NewRouter(routes)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server:      server,
		db:          sqlDB,
		redisClient: redisClient,
		logger:      logger,
	}, nil
}

// Run starts the HTTP server.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
