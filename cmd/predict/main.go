// Package main provides the CLI for running the daily prediction pipeline.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/courtline/internal/config"
	"github.com/yourusername/courtline/internal/database"
	"github.com/yourusername/courtline/internal/datasource"
	"github.com/yourusername/courtline/internal/engine"
	"github.com/yourusername/courtline/internal/logger"
	"github.com/yourusername/courtline/internal/repository"
	"github.com/yourusername/courtline/internal/selector"
	"github.com/yourusername/courtline/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	dateFlag   string
	allGames   bool

	cfg    *config.Config
	appLog *logrus.Logger
	db     *database.DB
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVarP(&dateFlag, "date", "d", "", "Slate date (YYYY-MM-DD, default today Eastern)")
	rootCmd.Flags().BoolVar(&allGames, "all-games", false, "Include games that have already started or finished")
}

var rootCmd = &cobra.Command{
	Use:     "predict",
	Short:   "Run the prediction model over a day's college basketball slate",
	Long:    `Fetches the slate for a date, predicts spreads and totals for every game, stores the resulting picks, and flags the top best bets.`,
	Version: fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd.Context())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalysis(cmd.Context())
	},
}

func main() {
	ctx := context.Background()
	defer func() {
		if db != nil {
			db.Close()
		}
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func setup(ctx context.Context) error {
	var err error
	cfg, err = config.Load(configFile)
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

	appLog = logger.NewLogger(cfg.App.LogLevel)

	db, err = database.Initialize(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	return nil
}

func runAnalysis(ctx context.Context) error {
	date := dateFlag
	if date == "" {
		date = todayEastern()
	}

	repos, err := repository.NewRepositories(db)
	if err != nil {
		return err
	}

	provider := buildProvider(cfg, appLog)
	eng := engine.New(provider, cfg.Model, appLog)
	sel := selector.New(cfg.Selector)
	analyzer := service.NewAnalyzerService(provider, eng, sel, repos.Picks, appLog)

	summary, err := analyzer.AnalyzeDate(ctx, date, allGames)
	if err != nil {
		return err
	}

	printSummary(summary)
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

func printSummary(summary *service.AnalysisSummary) {
	fmt.Printf("\n%s: %d games, %d picks saved (%d locked out)\n",
		summary.Date, summary.Games, summary.Saved, summary.NotSaved)

	if len(summary.BestBets) == 0 {
		fmt.Println("No best bets selected.")
		return
	}

	fmt.Printf("\nBest bets:\n")
	for i, pick := range summary.BestBets {
		fmt.Printf("  %d. %-24s %-14s (%d)  value %.3f  conf %.3f  score %.4f\n",
			i+1, pick.GameDescription, pick.Pick, pick.Odds,
			pick.ValueRating, pick.Confidence, pick.Score)
	}
}

func todayEastern() string {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}
	return time.Now().In(loc).Format("2006-01-02")
}
