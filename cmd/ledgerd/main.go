package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	eventledger "github.com/set-night/eventledger"
	"github.com/set-night/eventledger/internal/api"
	"github.com/set-night/eventledger/internal/cache"
	"github.com/set-night/eventledger/internal/config"
	"github.com/set-night/eventledger/internal/handler"
	"github.com/set-night/eventledger/internal/middleware"
	"github.com/set-night/eventledger/internal/repository"
	"github.com/set-night/eventledger/internal/service"
	"github.com/set-night/eventledger/internal/telegram"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Ledger storage
	var store repository.Store
	if cfg.DatabaseURL != "" {
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL, repository.PoolOptions{
			MaxConns: cfg.DBMaxConns,
			MinConns: cfg.DBMinConns,
		})
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		migrationsFS, err := fs.Sub(eventledger.MigrationsFS, "migrations")
		if err != nil {
			slog.Error("failed to load embedded migrations", "error", err)
			os.Exit(1)
		}
		if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		store = repository.NewPgStore(pool)
	} else {
		slog.Warn("DATABASE_URL is empty, using the in-memory ledger")
		store = repository.NewMemStore()
	}

	// Idempotency keys
	var idem service.IdempotencyStore
	if cfg.RedisURL != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		idem = cache.NewRedisIdempotencyStore(rdb)
	} else {
		slog.Warn("REDIS_URL is empty, idempotency keys are kept in memory")
		idem = cache.NewMemoryIdempotencyStore()
	}

	// Operator bot and ops log
	var (
		b        *bot.Bot
		ops      *telegram.OpsLogger
		notifier service.Notifier
	)
	if cfg.BotToken != "" {
		b, err = bot.New(cfg.BotToken, bot.WithMiddlewares(
			middleware.Recover(func(ctx context.Context, err error) {
				if ops != nil {
					ops.LogError(ctx, err, "operator bot")
				}
			}),
			middleware.Logging(),
			middleware.AdminOnly(cfg),
		))
		if err != nil {
			slog.Error("failed to create bot", "error", err)
			os.Exit(1)
		}
		ops = telegram.NewOpsLogger(b, cfg)
		notifier = ops
	}

	// Initialize services
	accounts := service.NewAccountService(store, notifier)
	events := service.NewEventService(store, notifier, cfg.Currency)
	dues := service.NewDueService(store, notifier)
	withdrawals := service.NewWithdrawalService(store, idem, notifier, cfg.Currency, cfg.IdempotencyTTL)
	finance := service.NewFinanceService(store, cfg.Currency)

	if b != nil {
		h := handler.New(handler.Deps{
			Bot:         b,
			Accounts:    accounts,
			Withdrawals: withdrawals,
			Finance:     finance,
			Ops:         ops,
		})
		h.Register()

		if cfg.DropPendingUpdates {
			if _, err := b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{DropPendingUpdates: true}); err != nil {
				slog.Warn("failed to drop pending updates", "error", err)
			}
		}

		go func() {
			slog.Info("starting operator bot", "admins", cfg.AdminIDsString())
			b.Start(ctx)
			slog.Info("operator bot stopped")
		}()
	}

	// HTTP API
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(api.NewHandler(accounts, events, dues, withdrawals, finance), cfg.JWTSecret),
		ReadHeaderTimeout: config.ReadHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("starting http server", "addr", cfg.HTTPAddr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			stop()
			os.Exit(1)
		}
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown", "error", err)
	}
	slog.Info("ledgerd stopped gracefully")
}
