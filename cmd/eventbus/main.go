package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/garyjia/eventbus/internal/application/dispatcher"
	"github.com/garyjia/eventbus/internal/config"
	"github.com/garyjia/eventbus/internal/steps"
	"github.com/garyjia/eventbus/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "configs/eventbus.yaml", "Path to config file")
	envFile := flag.String("env", ".env", "Path to .env file (optional)")
	flag.Parse()

	if err := config.LoadEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load environment: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Signals are only forwarded to steps; the dispatcher itself never cancels
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Run failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	policy, err := cfg.Policy()
	if err != nil {
		return err
	}

	report := steps.NewReport(logger)

	d := dispatcher.New(steps.Build(cfg.Steps, logger)).
		WithLogger(logger.Named("dispatcher")).
		OnComplete(report.Summarize)

	if policy == dispatcher.PolicyTolerant {
		d.AllowFailures().OnError(report.Record)
	}

	logger.Info("Starting event runner",
		zap.Stringer("policy", policy),
		zap.Int("steps", len(cfg.Steps)),
	)

	_, err = d.Run(ctx)
	return err
}
