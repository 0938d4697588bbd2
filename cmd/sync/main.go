// Command sync mirrors vault state from the EVM ledger into the SQL snapshot
// served by the mysql and sqlite ledger backends.
//
//	sync -vault 0x... [-liquidations] 0xBorrower1 0xBorrower2 ...
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"stablevault-backend/internal/adapter/ledger/evm"
	"stablevault-backend/internal/adapter/ledger/snapshot"
	"stablevault-backend/internal/config"
	"stablevault-backend/internal/infrastructure/db"
	"stablevault-backend/internal/infrastructure/logger"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	vault        common.Address
	liquidations bool
	borrowers    []string
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("sync", flag.ContinueOnError)
	fs.SetOutput(stderr)
	vaultFlag := fs.String("vault", "", "vault contract address")
	liq := fs.Bool("liquidations", false, "also mirror the vault liquidation list")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if !common.IsHexAddress(*vaultFlag) {
		return options{}, errors.New("-vault must be an address")
	}
	if fs.NArg() == 0 && !*liq {
		return options{}, errors.New("nothing to sync: name borrowers or pass -liquidations")
	}
	return options{vault: common.HexToAddress(*vaultFlag), liquidations: *liq, borrowers: fs.Args()}, nil
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stderr, "usage: sync -vault <address> [-liquidations] <borrower>...")
		return exitUsage
	}

	cfg := config.Load()
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(stderr, "logger:", err)
		return exitFail
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Error("config", zap.Error(err))
		return exitFail
	}
	if cfg.LedgerBackend == config.BackendEVM {
		log.Error("LEDGER_BACKEND must name the snapshot store (mysql or sqlite)")
		return exitFail
	}
	if cfg.EVMRPCURL == "" {
		log.Error("missing EVM_RPC_URL to read the vault from")
		return exitFail
	}

	src, client, err := evm.Dial(ctx, cfg.EVMRPCURL, cfg.LedgerTimeout())
	if err != nil {
		log.Error("evm", zap.Error(err))
		return exitFail
	}
	defer client.Close()

	var gdb *gorm.DB
	if cfg.LedgerBackend == config.BackendMySQL {
		gdb, err = db.OpenMySQL(cfg.MySQLDSN())
	} else {
		gdb, err = db.OpenSQLite(cfg.SQLitePath)
	}
	if err != nil {
		log.Error("snapshot db", zap.Error(err))
		return exitFail
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := snapshot.Migrate(gdb); err != nil {
		log.Error("migrate", zap.Error(err))
		return exitFail
	}

	syncer := snapshot.NewSyncer(src, snapshot.NewStore(gdb))
	if failed := syncAll(ctx, log, syncer, opts); failed > 0 {
		return exitFail
	}
	return exitOK
}

// syncAll runs every requested sync and returns how many failed.
func syncAll(ctx context.Context, log *zap.Logger, syncer *snapshot.Syncer, opts options) int {
	failed := 0
	for _, arg := range opts.borrowers {
		if !common.IsHexAddress(arg) {
			log.Error("skipping invalid borrower address", zap.String("borrower", arg))
			failed++
			continue
		}
		n, err := syncer.SyncBorrower(ctx, opts.vault, common.HexToAddress(arg))
		if err != nil {
			log.Error("sync failed", zap.String("borrower", arg), zap.Error(err))
			failed++
			continue
		}
		log.Info("synced", zap.String("borrower", arg), zap.Int("records", n))
	}
	if opts.liquidations {
		n, err := syncer.SyncLiquidations(ctx, opts.vault)
		if err != nil {
			log.Error("liquidation sync failed", zap.Error(err))
			failed++
		} else {
			log.Info("synced liquidations", zap.Int("slots", n))
		}
	}
	return failed
}
