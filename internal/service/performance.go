package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yourusername/courtline/internal/models"
)

// winPayout is the profit on a one-unit winning bet at -110 juice.
var winPayout = decimal.RequireFromString("0.909")

// PerformanceRecord aggregates graded picks into a win/loss record with
// flat one-unit staking. WinRate and ROI are percentages.
type PerformanceRecord struct {
	Picks   int
	Wins    int
	Losses  int
	WinRate decimal.Decimal
	Profit  decimal.Decimal
	ROI     decimal.Decimal
}

// PerformanceSummary breaks down graded-pick performance over a date range.
type PerformanceSummary struct {
	StartDate string
	EndDate   string
	Overall   PerformanceRecord
	BestBets  PerformanceRecord
	Spreads   PerformanceRecord
	Totals    PerformanceRecord
}

// PerformanceReport summarizes graded picks between two dates, inclusive.
func (s *ResultsService) PerformanceReport(ctx context.Context, startDate, endDate string) (*PerformanceSummary, error) {
	picks, err := s.picks.GetGradedRange(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("fetching graded picks: %w", err)
	}

	summary := &PerformanceSummary{StartDate: startDate, EndDate: endDate}
	summary.Overall = buildRecord(picks, func(p *models.Pick) bool { return true })
	summary.BestBets = buildRecord(picks, func(p *models.Pick) bool { return p.IsBestBet })
	summary.Spreads = buildRecord(picks, func(p *models.Pick) bool { return p.BetType == models.BetTypeSpread })
	summary.Totals = buildRecord(picks, func(p *models.Pick) bool { return p.BetType == models.BetTypeTotal })

	return summary, nil
}

func buildRecord(picks []*models.Pick, include func(*models.Pick) bool) PerformanceRecord {
	var record PerformanceRecord
	for _, pick := range picks {
		if !include(pick) || pick.Result == nil {
			continue
		}
		record.Picks++
		if *pick.Result {
			record.Wins++
		} else {
			record.Losses++
		}
	}

	if record.Picks == 0 {
		return record
	}

	wins := decimal.NewFromInt(int64(record.Wins))
	losses := decimal.NewFromInt(int64(record.Losses))
	total := decimal.NewFromInt(int64(record.Picks))

	record.Profit = wins.Mul(winPayout).Sub(losses).Round(2)
	record.WinRate = wins.Div(total).Mul(decimal.NewFromInt(100)).Round(1)
	record.ROI = record.Profit.Div(total).Mul(decimal.NewFromInt(100)).Round(1)

	return record
}
