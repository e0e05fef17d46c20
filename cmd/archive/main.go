package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"board-archive/internal/archiver"
	"board-archive/internal/asset"
	"board-archive/internal/client"
	"board-archive/internal/config"
	"board-archive/internal/metrics"
	"board-archive/internal/store"
)

func main() {
	dev := flag.Bool("dev", false, "archive the dev board subset only")
	clean := flag.Bool("clean", false, "delete board JSON files for identifiers no longer configured")
	noFetch := flag.Bool("no-fetch", false, "skip phase 1, derive board status from existing files")
	noDownload := flag.Bool("no-download", false, "skip phase 2 asset download")
	configPath := flag.String("config", "configs/config.yaml", "configuration file path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Server.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Batch run: nothing scrapes it, so metrics back a private registry
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), logger)

	boardStore := store.NewBoardStore(cfg.Archive.DataDir, logger)
	mondayClient := client.NewMondayClient(
		cfg.Upstream.URL,
		cfg.Upstream.Timeout,
		cfg.Upstream.MaxRetries,
		cfg.Upstream.RetryDelay,
		logger,
		m,
	)
	syncer := asset.NewSyncer(cfg.Archive.DownloadTimeout, cfg.Archive.DownloadConcurrency, logger, m)

	runner := archiver.New(cfg, mondayClient, boardStore, syncer, logger)

	fmt.Println("Starting archival run...")
	_, err = runner.Run(context.Background(), archiver.Options{
		Dev:      *dev,
		Clean:    *clean,
		Fetch:    !*noFetch,
		Download: !*noDownload,
	})
	if err != nil {
		if errors.Is(err, archiver.ErrNothingToDo) || errors.Is(err, archiver.ErrMissingToken) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger.Error("Archival run aborted", zap.Error(err))
		os.Exit(1)
	}
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
