package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/hotel-warehouse/internal/application/analytics"
	"github.com/jhoicas/hotel-warehouse/internal/application/auth"
	"github.com/jhoicas/hotel-warehouse/internal/application/export"
	"github.com/jhoicas/hotel-warehouse/internal/application/inventory"
	"github.com/jhoicas/hotel-warehouse/internal/application/mirror"
	"github.com/jhoicas/hotel-warehouse/internal/application/usecase"
	"github.com/jhoicas/hotel-warehouse/internal/infrastructure/localstore"
	"github.com/jhoicas/hotel-warehouse/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/hotel-warehouse/internal/infrastructure/pdf"
	"github.com/jhoicas/hotel-warehouse/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/hotel-warehouse/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/hotel-warehouse/internal/interfaces/http"
	"github.com/jhoicas/hotel-warehouse/pkg/config"
	"github.com/jhoicas/hotel-warehouse/pkg/logger"
)

const idempotencyTTL = 24 * time.Hour

// application holds the wired process: local store, optional mirror and every use case.
type application struct {
	cfg    *config.Config
	log    *logger.Logger
	store  *localstore.Store
	pool   *pgxpool.Pool
	mirror *mirror.Mirror
	deps   httpRouter.RouterDeps

	closers []func()
}

func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	return cfg, log, nil
}

// newApplication opens the local store, connects the optional remote services and builds the use
// cases. Defaults (zones, departments, profiles, passcode) are seeded on a fresh store.
func newApplication(ctx context.Context, cfg *config.Config, log *logger.Logger) (*application, error) {
	a := &application{cfg: cfg, log: log}

	store, err := localstore.Open(cfg.Local.Path)
	if err != nil {
		return nil, err
	}
	a.store = store
	a.closers = append(a.closers, func() { _ = store.Close() })

	var remote mirror.RemoteStore
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			// The local store stays authoritative; the mirror just runs offline.
			log.Warn().Err(err).Msg("remote mirror unavailable, running offline")
		} else {
			a.pool = pool
			a.closers = append(a.closers, pool.Close)
			remote = postgres.NewMirrorStore(pool)
		}
	}

	mu := &sync.Mutex{}
	a.mirror = mirror.New(store, remote, mu, cfg.Warehouse.SyncRecentTransactions, log.Component("mirror"))

	var notifier inventory.ChangeNotifier
	if cfg.Warehouse.AutoSync {
		notifier = a.mirror
	}

	guard, err := a.idempotencyGuard(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.App.TimeZone)
	if err != nil {
		log.Warn().Err(err).Str("tz", cfg.App.TimeZone).Msg("unknown time zone, using local time")
		loc = time.Local
	}

	settingsUC := usecase.NewSettingsUseCase(store.Settings(), store.Users(), mu, notifier,
		log.Component("settings"), cfg.Warehouse.DefaultPasscode)
	if err := settingsUC.EnsureDefaults(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}

	a.deps = httpRouter.RouterDeps{
		AuthUC: auth.NewAuthUseCase(store.Users(), settingsUC, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}),
		SettingsUC: settingsUC,
		ItemUC:     usecase.NewItemUseCase(store.Items(), store.Settings(), mu, notifier, log.Component("items")),
		HistoryUC:  usecase.NewHistoryUseCase(store.Transactions()),
		Movement: inventory.NewMovementUseCase(localstore.NewTxRunner(store), store.Settings(), mu, notifier, guard,
			log.Component("movements")),
		Replenishment: inventory.NewReplenishmentUseCase(store.Items(), store.Transactions()),
		Receipts: inventory.NewReceiptUseCase(store.Transactions(), infrapdf.NewMarotoReceiptGenerator(),
			cfg.Warehouse.PropertyName),
		DashboardUC: analytics.NewDashboardUseCase(store.Items(), store.Transactions(), store.Settings(),
			cfg.Warehouse.ExpiryHorizonDays),
		ExportUC:  export.NewExportUseCase(store.Items(), store.Transactions(), store.Settings(), store.Users(), loc),
		Mirror:    a.mirror,
		JWTSecret: cfg.JWT.Secret,
	}
	return a, nil
}

// idempotencyGuard prefers Redis and falls back to the in-process guard.
func (a *application) idempotencyGuard(ctx context.Context) (inventory.IdempotencyGuard, error) {
	if a.cfg.Redis.Addr == "" {
		return memory.NewIdempotencyGuard(idempotencyTTL), nil
	}
	client, err := infraredis.NewClient(ctx, a.cfg.Redis.Addr, a.cfg.Redis.Password, a.cfg.Redis.DB)
	if err != nil {
		a.log.Warn().Err(err).Str("addr", a.cfg.Redis.Addr).Msg("redis unavailable, using in-process idempotency guard")
		return memory.NewIdempotencyGuard(idempotencyTTL), nil
	}
	a.closers = append(a.closers, func() { _ = client.Close() })
	return infraredis.NewIdempotencyGuard(client), nil
}

// Close releases everything in reverse order of acquisition.
func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
