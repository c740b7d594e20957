package engine

import (
	"math"

	"github.com/yourusername/courtline/internal/models"
)

// AnalyzeForm summarizes a team's recent results into form metrics. Games
// must be ordered oldest to newest; the scoring trend weights later games
// more heavily. With no games it returns neutral form with the low-data
// consistency signal of 0.3.
func AnalyzeForm(recent []models.RecentGame) models.FormMetrics {
	if len(recent) == 0 {
		return models.FormMetrics{
			WinRate:     0.5,
			Consistency: 0.3,
		}
	}

	n := len(recent)
	wins := 0
	marginSum := 0.0
	margins := make([]float64, n)
	for i, g := range recent {
		if g.Won() {
			wins++
		}
		margins[i] = float64(g.Margin())
		marginSum += margins[i]
	}

	winRate := float64(wins) / float64(n)
	avgMargin := marginSum / float64(n)

	// Recency-weighted scoring average: weights ramp linearly from 0.5 on
	// the oldest game to 1.0 on the newest.
	var weighted, weightSum float64
	for i, g := range recent {
		w := 0.5
		if n > 1 {
			w = 0.5 + 0.5*float64(i)/float64(n-1)
		}
		weighted += float64(g.TeamScore) * w
		weightSum += w
	}
	scoringTrend := weighted / weightSum

	consistency := consistencyScore(margins)

	return models.FormMetrics{
		WinRate:      winRate,
		AvgMargin:    avgMargin,
		ScoringTrend: scoringTrend,
		Consistency:  consistency,
	}
}

// consistencyScore rates how trustworthy the recent sample is, combining
// sample size (50%), margin variance (30%), and result swings (20%).
// Bounded to [0.25, 0.85].
func consistencyScore(margins []float64) float64 {
	n := len(margins)

	var sampleFactor float64
	switch {
	case n <= 2:
		sampleFactor = 0.3
	case n <= 5:
		sampleFactor = 0.4 + float64(n-2)*0.05
	case n <= 10:
		sampleFactor = 0.55 + float64(n-5)*0.04
	default:
		sampleFactor = math.Min(0.75+float64(n-10)*0.02, 0.90)
	}

	varianceFactor := 0.4
	if n > 1 {
		std := stdDev(margins)
		// Typical college margin std runs 10 to 20 points.
		switch {
		case std < 8:
			varianceFactor = 0.75 - std/20
		case std < 12:
			varianceFactor = 0.6 + (12-std)/40
		case std < 18:
			varianceFactor = 0.45 + (18-std)/60
		default:
			varianceFactor = math.Max(0.3, 0.45-(std-18)/100)
		}
	}

	qualityFactor := 0.5
	if n >= 3 {
		swing := maxOf(margins) - minOf(margins)
		if swing > 40 {
			qualityFactor = math.Max(0.3, 1-(swing-40)/100)
		} else {
			qualityFactor = 0.8
		}
	}

	consistency := sampleFactor*0.5 + varianceFactor*0.3 + qualityFactor*0.2
	return round3(clamp(consistency, 0.25, 0.85))
}

// stdDev is the population standard deviation.
func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return math.Sqrt(sq / float64(len(values)))
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
