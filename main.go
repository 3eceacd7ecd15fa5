package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/msomdec/moviedb/internal/cli"
	"github.com/msomdec/moviedb/internal/config"
	"github.com/msomdec/moviedb/internal/repository/sqlite"
	"github.com/msomdec/moviedb/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if err := cfg.ApplyFlags(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging:", err)
		os.Exit(1)
	}
	defer closeLog()

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied", "path", cfg.DatabasePath)

	limiter := service.NewAttemptLimiter(cfg.LoginAttempts, cfg.LoginRefill)
	app := cli.NewApp(cli.Services{
		Auth:    service.NewAuthService(db.Users(), cfg.SessionSecret, cfg.BcryptCost, cfg.SessionTTL, limiter),
		Movies:  service.NewMovieService(db.Movies()),
		Imports: service.NewImportService(db.Movies(), db.ImportRuns(), cfg.ImportLenient),
		Catalog: service.NewCatalogService(cfg.CatalogPath),
	}, os.Stdin, os.Stdout)

	// SIGINT is left alone here; the import command claims it while rows are
	// being written.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	app.Run(ctx)
}

// setupLogging installs the default logger: text on stderr and, when
// LOG_FILE is set, JSON appended to that file.
func setupLogging(cfg *config.Config) (func(), error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	logOpts := &slog.HandlerOptions{Level: level}
	text := slog.NewTextHandler(os.Stderr, logOpts)

	if cfg.LogFile == "" {
		slog.SetDefault(slog.New(text))
		return func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewMultiHandler(
		text,
		slog.NewJSONHandler(f, logOpts),
	)))
	return func() { f.Close() }, nil
}
