// Package main provides the long-running daemon that schedules the daily
// prediction and grading jobs and serves health and metrics endpoints.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/courtline/internal/config"
	"github.com/yourusername/courtline/internal/database"
	"github.com/yourusername/courtline/internal/datasource"
	"github.com/yourusername/courtline/internal/engine"
	"github.com/yourusername/courtline/internal/health"
	"github.com/yourusername/courtline/internal/logger"
	"github.com/yourusername/courtline/internal/metrics"
	"github.com/yourusername/courtline/internal/repository"
	"github.com/yourusername/courtline/internal/scheduler"
	"github.com/yourusername/courtline/internal/selector"
	"github.com/yourusername/courtline/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:     "courtlined",
	Short:   "Run the prediction pipeline on a schedule",
	Version: fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"version":     Version,
	}).Info("Courtline daemon starting")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		return err
	}

	provider := buildProvider(cfg, appLog)
	eng := engine.New(provider, cfg.Model, appLog)
	sel := selector.New(cfg.Selector)
	analyzer := service.NewAnalyzerService(provider, eng, sel, repos.Picks, appLog)
	results := service.NewResultsService(provider, repos.Picks, appLog)

	sched := scheduler.NewScheduler(analyzer, results, appLog)
	if err := sched.SchedulePredictions(cfg.Schedule.PredictionsCron); err != nil {
		return err
	}
	if err := sched.ScheduleResults(cfg.Schedule.ResultsCron); err != nil {
		return err
	}

	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Logger:      appLog,
		DB:          db,
	})
	if err := healthServer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start health server: %w", err)
	}

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, metrics.Handler())
		metricsServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler: mux,
		}
		go func() {
			appLog.WithField("port", cfg.Metrics.Port).Info("metrics server starting")
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				appLog.WithError(err).Error("metrics server error")
			}
		}()
	}

	if err := sched.Start(); err != nil {
		return err
	}
	healthServer.SetReady(true)
	appLog.WithField("next_run", sched.NextRun()).Info("daemon ready")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		appLog.WithField("signal", sig.String()).Info("shutdown signal received")
	case <-ctx.Done():
	}

	healthServer.SetReady(false)
	sched.Stop()

	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			appLog.WithError(err).Error("metrics server shutdown error")
		}
	}

	appLog.Info("Courtline daemon stopped")
	return nil
}

func buildProvider(cfg *config.Config, appLog *logrus.Logger) datasource.Provider {
	httpCfg := datasource.DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Duration(cfg.API.TimeoutSeconds) * time.Second
	httpCfg.MaxRetries = cfg.API.MaxRetries
	httpCfg.RateLimit = cfg.API.RateLimit

	httpClient := datasource.NewRateLimitedHTTPClient(httpCfg, appLog)
	client := datasource.NewCBBDClient(httpClient, cfg.API.BaseURL, cfg.API.Key, appLog)

	if !cfg.API.CacheEnabled {
		return client
	}
	return datasource.NewCachedProvider(client, datasource.CacheConfig{
		StatsTTL: time.Duration(cfg.API.StatsTTLHours) * time.Hour,
		GamesTTL: time.Duration(cfg.API.GamesTTLHours) * time.Hour,
	}, appLog)
}
