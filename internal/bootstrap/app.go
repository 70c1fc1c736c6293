package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/NotionPet_Go/internal/auth"
	"github.com/osse101/NotionPet_Go/internal/config"
	"github.com/osse101/NotionPet_Go/internal/cooldown"
	"github.com/osse101/NotionPet_Go/internal/database"
	"github.com/osse101/NotionPet_Go/internal/eventlog"
	"github.com/osse101/NotionPet_Go/internal/notion"
	"github.com/osse101/NotionPet_Go/internal/pet"
	"github.com/osse101/NotionPet_Go/internal/server"
	"github.com/osse101/NotionPet_Go/internal/settings"
	"github.com/osse101/NotionPet_Go/internal/sse"
	"github.com/osse101/NotionPet_Go/internal/worker"
)

// Run wires every component from cfg, serves HTTP and blocks until SIGINT or
// SIGTERM, then shuts down gracefully.
func Run(cfg *config.Config) error {
	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
	}
	defer dbPool.Close()

	if err := database.Migrate(context.Background(), dbPool); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
	}
	slog.Info(LogMsgMigrationsApplied)

	if !cfg.NotionConfigured() {
		slog.Warn(LogMsgNotionNotConfigured)
	}

	repos := InitializeRepositories(dbPool)
	bus := InitializeEventSystem()

	notionClient := notion.NewHTTPClient(notion.Config{
		BaseURL:      cfg.NotionAPIURL,
		Version:      cfg.NotionVersion,
		ClientID:     cfg.NotionClientID,
		ClientSecret: cfg.NotionClientSecret,
		RedirectURI:  cfg.NotionRedirectURI,
	})

	settingsService := settings.NewService(repos.Settings, repos.Token, notionClient, bus, cfg.PropertyCacheSize, cfg.PropertyCacheTTL)
	petService := pet.NewService(
		repos.Pet,
		repos.Settings,
		repos.Token,
		notionClient,
		settingsService,
		bus,
		cfg.CompletedStatuses,
		cfg.SyncConcurrency,
	)
	historyService := eventlog.NewService(repos.EventLog)

	hub := sse.NewHub()
	hub.Start()

	refreshWorker := worker.NewRefreshWorker(petService, cfg.RefreshDebounce)
	if err := RegisterEventHandlers(EventHandlerDependencies{
		EventBus:        bus,
		EventLogService: historyService,
		Hub:             hub,
		RefreshWorker:   refreshWorker,
		Config:          cfg,
	}); err != nil {
		hub.Stop()
		return err
	}

	pool, sched, err := StartBackgroundJobs(cfg, petService, historyService)
	if err != nil {
		hub.Stop()
		_ = refreshWorker.Shutdown(context.Background())
		return err
	}

	cooldowns := cooldown.NewPostgresService(dbPool, cooldown.Config{
		Disabled:  cfg.RefreshCooldown <= 0,
		Cooldowns: map[string]time.Duration{cooldown.ActionRefresh: cfg.RefreshCooldown},
	})

	authenticator := auth.NewAuthenticator(cfg.JWTSecret, cfg.JWTIssuer)
	srv := server.NewServer(cfg.Port, server.Deps{
		Tokens:            authenticator,
		TrustedProxies:    cfg.TrustedProxies,
		NotionRedirectURI: cfg.NotionRedirectURI,
		DB:                dbPool,
		Pets:              petService,
		Settings:          settingsService,
		History:           historyService,
		Cooldowns:         cooldowns,
		Hub:               hub,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case sig := <-stop:
		slog.Info(LogMsgShutdownSignal, "signal", sig.String())
	case err, ok := <-serverErr:
		if ok {
			runErr = err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	GracefulShutdown(ctx, ShutdownComponents{
		Server:        srv,
		Hub:           hub,
		Scheduler:     sched,
		Pool:          pool,
		RefreshWorker: refreshWorker,
	})
	return runErr
}
