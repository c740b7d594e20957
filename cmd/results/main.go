// Package main provides the CLI for grading picks and reporting performance.
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
	"github.com/yourusername/courtline/internal/logger"
	"github.com/yourusername/courtline/internal/repository"
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
	startFlag  string
	endFlag    string

	cfg    *config.Config
	appLog *logrus.Logger
	db     *database.DB
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVarP(&dateFlag, "date", "d", "", "Slate date to grade (YYYY-MM-DD, default today Eastern)")

	performanceCmd.Flags().StringVar(&startFlag, "start", "", "Range start (YYYY-MM-DD, default 30 days ago)")
	performanceCmd.Flags().StringVar(&endFlag, "end", "", "Range end (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(performanceCmd)
}

var rootCmd = &cobra.Command{
	Use:     "results",
	Short:   "Grade stored picks against final scores",
	Version: fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd.Context())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGrading(cmd.Context())
	},
}

var performanceCmd = &cobra.Command{
	Use:   "performance",
	Short: "Report win/loss record and ROI over a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPerformance(cmd.Context())
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

func newResultsService() (*service.ResultsService, error) {
	repos, err := repository.NewRepositories(db)
	if err != nil {
		return nil, err
	}

	httpCfg := datasource.DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Duration(cfg.API.TimeoutSeconds) * time.Second
	httpCfg.MaxRetries = cfg.API.MaxRetries
	httpCfg.RateLimit = cfg.API.RateLimit

	httpClient := datasource.NewRateLimitedHTTPClient(httpCfg, appLog)
	client := datasource.NewCBBDClient(httpClient, cfg.API.BaseURL, cfg.API.Key, appLog)

	return service.NewResultsService(client, repos.Picks, appLog), nil
}

func runGrading(ctx context.Context) error {
	date := dateFlag
	if date == "" {
		date = todayEastern()
	}

	svc, err := newResultsService()
	if err != nil {
		return err
	}

	summary, err := svc.UpdateResults(ctx, date)
	if err != nil {
		return err
	}

	fmt.Printf("%s: graded %d picks (%d-%d), %d still pending\n",
		summary.Date, summary.Graded, summary.Wins, summary.Losses, summary.Remaining)
	return nil
}

func runPerformance(ctx context.Context) error {
	end := endFlag
	if end == "" {
		end = todayEastern()
	}
	start := startFlag
	if start == "" {
		endDate, err := time.Parse("2006-01-02", end)
		if err != nil {
			return fmt.Errorf("invalid end date %q: %w", end, err)
		}
		start = endDate.AddDate(0, 0, -30).Format("2006-01-02")
	}

	svc, err := newResultsService()
	if err != nil {
		return err
	}

	summary, err := svc.PerformanceReport(ctx, start, end)
	if err != nil {
		return err
	}

	fmt.Printf("Performance %s to %s\n\n", summary.StartDate, summary.EndDate)
	printRecord("Overall", summary.Overall)
	printRecord("Best bets", summary.BestBets)
	printRecord("Spreads", summary.Spreads)
	printRecord("Totals", summary.Totals)
	return nil
}

func printRecord(label string, record service.PerformanceRecord) {
	if record.Picks == 0 {
		fmt.Printf("%-10s no graded picks\n", label)
		return
	}
	fmt.Printf("%-10s %d-%d (%s%%), %s units, ROI %s%%\n",
		label, record.Wins, record.Losses, record.WinRate, record.Profit.StringFixed(2), record.ROI)
}

func todayEastern() string {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}
	return time.Now().In(loc).Format("2006-01-02")
}
