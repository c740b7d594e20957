// Package metrics provides the centralized Prometheus metrics registry for
// the prediction pipeline.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	GamesAnalyzedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "courtline",
		Name:      "games_analyzed_total",
		Help:      "Total number of games run through the prediction model",
	})
	GamesSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "courtline",
		Name:      "games_skipped_total",
		Help:      "Total number of games skipped during analysis by reason",
	}, []string{"reason"})
	PicksCreatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "courtline",
		Name:      "picks_created_total",
		Help:      "Total number of picks created by bet type",
	}, []string{"bet_type"})
	BestBetsSelectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "courtline",
		Name:      "best_bets_selected_total",
		Help:      "Total number of picks flagged as best bets",
	})
	PicksGradedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "courtline",
		Name:      "picks_graded_total",
		Help:      "Total number of picks graded by outcome",
	}, []string{"outcome"})
	APICallsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "courtline",
		Name:      "api_calls_total",
		Help:      "Total number of upstream API calls by operation and status",
	}, []string{"operation", "status"})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "courtline",
		Name:      "cache_hits_total",
		Help:      "Total number of data source cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "courtline",
		Name:      "cache_misses_total",
		Help:      "Total number of data source cache misses",
	})
)

// Gauge metrics
var (
	LastAnalysisGames = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "courtline",
		Name:      "last_analysis_games",
		Help:      "Number of games in the most recent analysis run",
	})
	LastAnalysisPicks = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "courtline",
		Name:      "last_analysis_picks",
		Help:      "Number of picks produced by the most recent analysis run",
	})
	LockedPicks = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "courtline",
		Name:      "locked_picks",
		Help:      "Number of picks locked in the most recent lock pass",
	})
)

// Histogram metrics
var (
	AnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "courtline",
		Name:      "analysis_duration_seconds",
		Help:      "Duration of full analysis runs in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
	})
	PredictionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "courtline",
		Name:      "prediction_duration_seconds",
		Help:      "Duration of single-game predictions in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	PickConfidence = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "courtline",
		Name:      "pick_confidence",
		Help:      "Confidence scores of created picks",
		Buckets:   []float64{0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9},
	}, []string{"bet_type"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(GamesAnalyzedTotal)
		registry.MustRegister(GamesSkippedTotal)
		registry.MustRegister(PicksCreatedTotal)
		registry.MustRegister(BestBetsSelectedTotal)
		registry.MustRegister(PicksGradedTotal)
		registry.MustRegister(APICallsTotal)
		registry.MustRegister(CacheHitsTotal)
		registry.MustRegister(CacheMissesTotal)

		registry.MustRegister(LastAnalysisGames)
		registry.MustRegister(LastAnalysisPicks)
		registry.MustRegister(LockedPicks)

		registry.MustRegister(AnalysisDuration)
		registry.MustRegister(PredictionDuration)
		registry.MustRegister(PickConfidence)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordGameAnalyzed records one game run through the model.
func RecordGameAnalyzed() {
	GamesAnalyzedTotal.Inc()
}

// RecordGameSkipped records a game excluded from analysis.
func RecordGameSkipped(reason string) {
	GamesSkippedTotal.WithLabelValues(reason).Inc()
}

// RecordPickCreated records a created pick and its confidence.
func RecordPickCreated(betType string, confidence float64) {
	PicksCreatedTotal.WithLabelValues(betType).Inc()
	PickConfidence.WithLabelValues(betType).Observe(confidence)
}

// RecordBestBets records the number of picks flagged as best bets.
func RecordBestBets(count int) {
	BestBetsSelectedTotal.Add(float64(count))
}

// RecordPickGraded records a graded pick outcome ("won" or "lost").
func RecordPickGraded(won bool) {
	outcome := "lost"
	if won {
		outcome = "won"
	}
	PicksGradedTotal.WithLabelValues(outcome).Inc()
}

// RecordAPICall records an upstream API call.
func RecordAPICall(operation, status string) {
	APICallsTotal.WithLabelValues(operation, status).Inc()
}

// RecordCacheHit records a data source cache hit.
func RecordCacheHit() {
	CacheHitsTotal.Inc()
}

// RecordCacheMiss records a data source cache miss.
func RecordCacheMiss() {
	CacheMissesTotal.Inc()
}

// RecordAnalysisRun records an analysis run's size and duration.
func RecordAnalysisRun(games, picks int, durationSeconds float64) {
	LastAnalysisGames.Set(float64(games))
	LastAnalysisPicks.Set(float64(picks))
	AnalysisDuration.Observe(durationSeconds)
}

// RecordPredictionDuration records a single prediction's duration.
func RecordPredictionDuration(durationSeconds float64) {
	PredictionDuration.Observe(durationSeconds)
}

// UpdateLockedPicks records the number of picks locked in a lock pass.
func UpdateLockedPicks(count int64) {
	LockedPicks.Set(float64(count))
}
