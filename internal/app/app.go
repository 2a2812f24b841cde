package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/daybook-app/daybook-backend/internal/bus"
	"github.com/daybook-app/daybook-backend/internal/db"
	"github.com/daybook-app/daybook-backend/internal/platform/logger"
	"github.com/daybook-app/daybook-backend/internal/sse"
)

type App struct {
	Log      *logger.Logger
	LocalDB  *gorm.DB
	RemoteDB *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Unified  *Unified
	Services Services
	Bus      *bus.Hub
	SSEHub   *sse.Hub

	forwarder *bus.RedisForwarder
	cancel    context.CancelFunc
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	local, err := db.NewLocalService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init local store: %w", err)
	}
	if err := local.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("local automigrate: %w", err)
	}
	localDB := local.DB()

	// The cloud tier is best-effort at boot. Offline devices still run;
	// remote calls report the outage per operation.
	var remoteDB *gorm.DB
	remote, err := db.NewRemoteService(log)
	if err != nil {
		log.Warn("Cloud store unavailable, starting local-only", "error", err)
	} else if err := remote.AutoMigrateAll(); err != nil {
		log.Warn("Cloud automigrate failed, starting local-only", "error", err)
	} else {
		remoteDB = remote.DB()
	}

	hub := bus.NewHub(log)

	// Cross-instance fanout only runs when Redis is configured.
	var forwarder *bus.RedisForwarder
	if os.Getenv("REDIS_ADDR") != "" {
		forwarder, err = bus.NewRedisForwarder(log, uuid.NewString())
		if err != nil {
			log.Warn("Redis forwarder unavailable", "error", err)
			forwarder = nil
		}
	}

	reposet := wireRepos(localDB, remoteDB, log)

	ctx := context.Background()
	unifiedset, err := wireUnified(ctx, reposet, log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	serviceset := wireServices(localDB, remoteDB, log, cfg, reposet, unifiedset, hub, forwarder)

	sseHub := sse.NewHub(log)
	hub.Subscribe(func(evt bus.Event) {
		sseHub.Broadcast(evt)
	})

	handlerset := wireHandlers(serviceset, unifiedset, sseHub)
	middlewareset := wireMiddleware(log, serviceset)
	router := wireRouter(handlerset, middlewareset)

	return &App{
		Log:       log,
		LocalDB:   localDB,
		RemoteDB:  remoteDB,
		Router:    router,
		Cfg:       cfg,
		Repos:     reposet,
		Unified:   unifiedset,
		Services:  serviceset,
		Bus:       hub,
		SSEHub:    sseHub,
		forwarder: forwarder,
	}, nil
}

// Start launches the background pieces: the session orchestrator loop
// and, when configured, the Redis event relay.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	a.Services.Orchestrator.Start(ctx)

	if a.forwarder != nil {
		if err := a.forwarder.Start(ctx, a.Bus); err != nil {
			a.Log.Warn("Redis relay failed to start", "error", err)
		}
	}
}

func (a *App) Run(addr string) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.forwarder != nil {
		_ = a.forwarder.Close()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
