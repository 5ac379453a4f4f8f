package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"PharmaNewsAgent/internal/app"
	"PharmaNewsAgent/internal/config"
	"PharmaNewsAgent/internal/logging"
)

func main() {
	var (
		configPath   = flag.String("config", "", "path to YAML configuration")
		continuous   = flag.Bool("continuous", false, "run on the configured schedule instead of once")
		maxArticles  = flag.Int("max-articles", 0, "override max articles per cycle")
		postToSocial = flag.Bool("post-to-social", false, "publish rendered posts to configured platforms")
		platforms    = flag.String("platforms", "", "comma-separated platform override (default: config)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.New("info").Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if *maxArticles > 0 {
		cfg.Pipeline.MaxArticlesPerCycle = *maxArticles
	}
	if *postToSocial {
		cfg.Pipeline.PostToSocial = true
	}
	if *platforms != "" {
		cfg.Pipeline.Platforms = strings.Split(*platforms, ",")
	}

	logger := logging.New(cfg.Logging.Level)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	if *continuous {
		if err := application.RunContinuous(ctx); err != nil {
			logger.Error("scheduler stopped", "error", err)
			os.Exit(1)
		}
		return
	}

	report, err := application.RunOnce(ctx)
	if err != nil {
		logger.Error("cycle aborted", "cycle", report.CycleID, "error", err)
		os.Exit(1)
	}
	logger.Info("run complete",
		"cycle", report.CycleID,
		"collected", report.Collected,
		"duplicates", report.Duplicates,
		"summarized", report.Summarized,
		"rendered", report.Rendered,
		"published", report.Published,
		"failed", report.FailedByStage,
	)
}
