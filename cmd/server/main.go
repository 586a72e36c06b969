package main

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

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/allocash/internal/auth"
	"github.com/mmynk/allocash/internal/config"
	"github.com/mmynk/allocash/internal/ledger"
	"github.com/mmynk/allocash/internal/lock"
	"github.com/mmynk/allocash/internal/metrics"
	"github.com/mmynk/allocash/internal/middleware"
	"github.com/mmynk/allocash/internal/service"
	"github.com/mmynk/allocash/internal/storage"
	"github.com/mmynk/allocash/internal/storage/mongo"
	"github.com/mmynk/allocash/internal/storage/sqlite"
	"github.com/mmynk/allocash/pkg/api/apiconnect"
	"github.com/mmynk/allocash/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("Failed to close storage", "error", err)
		}
	}()

	locker, closeLocker, err := openLocker(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLocker()

	reg := metrics.New()
	ldg := ledger.New(store, ledger.WithLocker(locker), ledger.WithMetrics(reg))
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, 0)

	// Metrics outermost so rejected and unauthenticated calls are counted too.
	interceptors := connect.WithInterceptors(
		reg.Interceptor(),
		middleware.RequireAuth(jwtManager),
		middleware.LoggingInterceptor(),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewLedgerServiceHandler(service.NewLedgerService(store, ldg), interceptors))
	mux.Handle(apiconnect.NewAccountServiceHandler(service.NewAccountService(store), interceptors))
	mux.Handle(apiconnect.NewGroupServiceHandler(service.NewGroupService(store), interceptors))
	mux.Handle(apiconnect.NewTransactionServiceHandler(service.NewTransactionService(store), interceptors))
	mux.Handle(apiconnect.NewStatsServiceHandler(service.NewStatsService(store), interceptors))
	mux.Handle("/metrics", reg.Handler())
	mux.HandleFunc("/healthz", healthz(store))

	handler := middleware.AccessLog(middleware.CORS(cfg.AllowedOrigins)(mux))

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting",
			"address", srv.Addr,
			"url", fmt.Sprintf("http://localhost%s", srv.Addr),
			"storage", cfg.StorageBackend,
			"settle_lock", cfg.SettleLock,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case config.BackendMongo:
		store, err := mongo.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize mongo storage: %w", err)
		}
		slog.Info("Storage initialized", "backend", "mongo", "database", cfg.MongoDatabase)
		return store, nil
	default:
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sqlite storage: %w", err)
		}
		slog.Info("Storage initialized", "backend", "sqlite", "database", cfg.DBPath)
		return store, nil
	}
}

func openLocker(ctx context.Context, cfg *config.Config) (lock.Locker, func(), error) {
	switch cfg.SettleLock {
	case lock.BackendNone:
		slog.Warn("Settlement locking disabled; concurrent settles may double-settle")
		return lock.Noop{}, func() {}, nil
	case lock.BackendRedis:
		r, err := lock.NewRedis(ctx, lock.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Expiry:   cfg.LockExpiry,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		slog.Info("Settlement lock initialized", "backend", "redis", "addr", cfg.RedisAddr)
		return r, func() {
			if err := r.Close(); err != nil {
				slog.Error("Failed to close redis", "error", err)
			}
		}, nil
	default:
		return lock.NewMemory(), func() {}, nil
	}
}

func healthz(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			slog.Error("Health check failed", "error", err)
			http.Error(w, "unhealthy", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}
}
