package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"cart/internal/cli"
	"cart/internal/config"
	"cart/internal/kv"
	"cart/internal/kv/filekv"
	"cart/internal/kv/sqlitekv"
	"cart/internal/storage"
	"cart/internal/store"
)

func main() {
	os.Exit(run())
}

// run wires config -> logger -> kv backend -> adapter -> store -> commands.
// Kept apart from main so deferred cleanup survives the exit code path.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 1
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "data dir:", err)
		return 1
	}

	logger, err := newLogger(cfg.LogPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	var backend kv.Store
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		backend, err = sqlitekv.Open(ctx, cfg.SQLitePath())
		if err != nil {
			fmt.Fprintln(os.Stderr, "storage:", err)
			return 1
		}
	default:
		backend = filekv.New(cfg.DataFile())
	}
	defer backend.Close()

	st := store.Open(ctx, storage.NewAdapter(backend, logger), logger)
	defer st.Close()

	return cli.Execute(&cli.App{Store: st, Log: logger})
}

// newLogger writes to the log file only: stdout and stderr belong to the
// TUI and the styled command output.
func newLogger(path string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}
