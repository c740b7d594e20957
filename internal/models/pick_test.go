package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickWonSpread(t *testing.T) {
	tests := []struct {
		name      string
		selection string
		line      float64
		homeScore int
		awayScore int
		want      bool
	}{
		{"home favorite covers", "Kansas", -5.5, 80, 70, true},
		{"home favorite fails to cover", "Kansas", -5.5, 74, 70, false},
		{"home favorite push loses", "Kansas", -5.0, 75, 70, false},
		{"home underdog keeps it close", "Kansas", 8.5, 70, 75, true},
		{"home underdog blown out", "Kansas", 8.5, 60, 75, false},
		{"away favorite covers", "Duke", -3.5, 68, 75, true},
		{"away favorite fails to cover", "Duke", -3.5, 73, 75, false},
		{"away underdog covers in a loss", "Duke", 6.5, 72, 68, true},
		{"away push loses", "Duke", 4.0, 74, 70, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Pick{
				BetType:   BetTypeSpread,
				HomeTeam:  "Kansas",
				AwayTeam:  "Duke",
				Selection: tt.selection,
				Line:      tt.line,
			}
			assert.Equal(t, tt.want, p.Won(tt.homeScore, tt.awayScore))
		})
	}
}

func TestPickWonTotal(t *testing.T) {
	tests := []struct {
		name      string
		selection string
		line      float64
		homeScore int
		awayScore int
		want      bool
	}{
		{"over cashes", SelectionOver, 145.5, 80, 70, true},
		{"over misses", SelectionOver, 155.5, 80, 70, false},
		{"under cashes", SelectionUnder, 152.5, 80, 70, true},
		{"under misses", SelectionUnder, 148.5, 80, 70, false},
		{"over push loses", SelectionOver, 150.0, 80, 70, false},
		{"under push loses", SelectionUnder, 150.0, 80, 70, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Pick{
				BetType:   BetTypeTotal,
				Selection: tt.selection,
				Line:      tt.line,
			}
			assert.Equal(t, tt.want, p.Won(tt.homeScore, tt.awayScore))
		})
	}
}

func TestPickGraded(t *testing.T) {
	p := &Pick{}
	assert.False(t, p.Graded())

	won := true
	p.Result = &won
	assert.True(t, p.Graded())
}

func TestFormatPickStrings(t *testing.T) {
	assert.Equal(t, "Kansas -5.5", FormatSpreadPick("Kansas", -5.5))
	assert.Equal(t, "Duke +3.0", FormatSpreadPick("Duke", 3.0))
	assert.Equal(t, "Over 145.5", FormatTotalPick(SelectionOver, 145.5))
	assert.Equal(t, "Under 138.0", FormatTotalPick(SelectionUnder, 138.0))
}
