// Package selector turns predictions into candidate picks and ranks the
// best bets. Value ratings express how strongly the model disagrees with
// the market, not true win probabilities: lined markets are built to be
// coin flips, so ratings are scaled conservatively.
package selector

import (
	"math"

	"github.com/yourusername/courtline/internal/models"
)

// SpreadEdgeValueRating converts a spread edge in points to a value rating
// in [0.50, 0.70]. The curve flattens as edges grow; even huge disagreements
// with the market cap out at 0.70 because the market is rarely that wrong.
func SpreadEdgeValueRating(edge float64) float64 {
	absEdge := math.Abs(edge)
	if absEdge < 0.5 {
		return 0.50
	}

	var rating float64
	switch {
	case absEdge <= 5:
		rating = 0.50 + edge*0.015
	case absEdge <= 10:
		rating = 0.575 + signed(edge, (absEdge-5)*0.012)
	case absEdge <= 20:
		rating = 0.635 + signed(edge, (absEdge-10)*0.006)
	default:
		rating = 0.695 + signed(edge, math.Min((absEdge-20)*0.001, 0.005))
	}

	return clamp(rating, 0.50, 0.70)
}

// TotalEdgeValueRating converts a total edge in points to a value rating in
// [0.50, 0.65]. Tighter than spreads since totals carry more variance.
func TotalEdgeValueRating(edge float64) float64 {
	absEdge := math.Abs(edge)
	if absEdge < 0.5 {
		return 0.50
	}

	var rating float64
	switch {
	case absEdge <= 6:
		rating = 0.50 + edge*0.012
	case absEdge <= 12:
		rating = 0.572 + signed(edge, (absEdge-6)*0.008)
	case absEdge <= 20:
		rating = 0.620 + signed(edge, (absEdge-12)*0.003)
	default:
		rating = 0.644 + signed(edge, math.Min((absEdge-20)*0.0005, 0.006))
	}

	return clamp(rating, 0.50, 0.65)
}

// adjustConfidenceForEdge scales model confidence by edge size. Moderate
// edges get a slight boost; extreme edges mean an extreme prediction, which
// is inherently less reliable. Result is bounded to [0.25, 0.88].
func adjustConfidenceForEdge(baseConfidence, edge float64, betType models.BetType) float64 {
	absEdge := math.Abs(edge)

	var adjustment float64
	if betType == models.BetTypeSpread {
		switch {
		case absEdge < 2:
			adjustment = 0.95
		case absEdge < 5:
			adjustment = 1.0
		case absEdge < 10:
			adjustment = 1.05
		case absEdge < 15:
			adjustment = 1.0
		case absEdge < 20:
			adjustment = 0.92
		default:
			adjustment = 0.85
		}
	} else {
		switch {
		case absEdge < 3:
			adjustment = 0.92
		case absEdge < 7:
			adjustment = 1.0
		case absEdge < 12:
			adjustment = 1.03
		case absEdge < 18:
			adjustment = 0.94
		default:
			adjustment = 0.87
		}
	}

	return round3(clamp(baseConfidence*adjustment, 0.25, 0.88))
}

// signed applies delta in the direction of edge's sign.
func signed(edge, delta float64) float64 {
	if edge > 0 {
		return delta
	}
	return -delta
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
