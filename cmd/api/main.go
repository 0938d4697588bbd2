package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	httpadp "stablevault-backend/internal/adapter/http"
	"stablevault-backend/internal/adapter/ledger"
	"stablevault-backend/internal/adapter/ledger/evm"
	"stablevault-backend/internal/adapter/ledger/snapshot"
	"stablevault-backend/internal/adapter/middleware"
	"stablevault-backend/internal/config"
	"stablevault-backend/internal/infrastructure/cache"
	"stablevault-backend/internal/infrastructure/db"
	"stablevault-backend/internal/infrastructure/logger"
	"stablevault-backend/internal/infrastructure/metrics"
	"stablevault-backend/internal/usecase/history"
	"stablevault-backend/internal/usecase/intent"
	"stablevault-backend/internal/usecase/vault"
	"stablevault-backend/pkg/id"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, closeLedger, err := openLedger(ctx, cfg)
	if err != nil {
		log.Fatal("ledger", zap.String("backend", cfg.LedgerBackend), zap.Error(err))
	}
	defer closeLedger()

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal("redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	defer func() { _ = rdb.Close() }()

	l := ledger.Observe(backend, metrics.Vault())
	h := httpadp.Routes{
		Health: httpadp.NewHandler(cfg.LedgerBackend),
		Borrow: httpadp.NewBorrowHandler(
			history.NewUsecase(l, nil),
			vault.NewUsecase(l, cache.NewStore(rdb, "stablevault:"), cfg.VaultInfoTTL()),
		),
		Intent:      httpadp.NewIntentHandler(intent.NewUsecase(nil)),
		Idempotency: middleware.Idempotency(rdb, cfg.IdempotencyTTL()),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.Use(
		echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: id.NewID32}),
		middleware.RequestLogger(log),
		echomw.Recover(),
	)
	h.Register(e)

	addr := ":" + cfg.AppPort
	go func() {
		log.Info("listening", zap.String("addr", addr), zap.String("ledger", cfg.LedgerBackend))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}

// openLedger selects the ledger backend named by LEDGER_BACKEND.
func openLedger(ctx context.Context, cfg *config.Config) (ledger.Backend, func(), error) {
	switch cfg.LedgerBackend {
	case config.BackendEVM:
		l, client, err := evm.Dial(ctx, cfg.EVMRPCURL, cfg.LedgerTimeout())
		if err != nil {
			return nil, nil, err
		}
		return l, client.Close, nil
	case config.BackendMySQL, config.BackendSQLite:
		var (
			gdb *gorm.DB
			err error
		)
		if cfg.LedgerBackend == config.BackendMySQL {
			gdb, err = db.OpenMySQL(cfg.MySQLDSN())
		} else {
			gdb, err = db.OpenSQLite(cfg.SQLitePath)
		}
		if err != nil {
			return nil, nil, err
		}
		if err := snapshot.Migrate(gdb); err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if sqlDB, err := gdb.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return snapshot.NewStore(gdb), closeDB, nil
	}
	return nil, nil, fmt.Errorf("unknown ledger backend %q", cfg.LedgerBackend)
}
