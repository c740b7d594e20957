package odds

import (
	"math"
	"testing"
)

func TestImpliedProbability(t *testing.T) {
	tests := []struct {
		name     string
		american int
		expected float64
	}{
		{"Even money +100", 100, 0.5},
		{"Even money -100", -100, 0.5},
		{"Favorite -150", -150, 0.6},
		{"Underdog +150", 150, 0.4},
		{"Heavy favorite -300", -300, 0.75},
		{"Big underdog +300", 300, 0.25},
		{"Standard -110", -110, 0.5238},
		{"Zero odds", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ImpliedProbability(tt.american)
			if math.Abs(got-tt.expected) > 0.001 {
				t.Errorf("ImpliedProbability(%d) = %v, want %v", tt.american, got, tt.expected)
			}
		})
	}
}

func TestToDecimal(t *testing.T) {
	tests := []struct {
		name     string
		american int
		expected float64
	}{
		{"Even money +100", 100, 2.0},
		{"Favorite -200", -200, 1.5},
		{"Underdog +250", 250, 3.5},
		{"Standard -110", -110, 1.9091},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDecimal(tt.american)
			if math.Abs(got-tt.expected) > 0.001 {
				t.Errorf("ToDecimal(%d) = %v, want %v", tt.american, got, tt.expected)
			}
		})
	}
}

func TestMeetsCriteria(t *testing.T) {
	tests := []struct {
		name     string
		american int
		maxOdds  int
		expected bool
	}{
		{"Better than ceiling", -110, -125, true},
		{"At ceiling", -125, -125, true},
		{"Worse than ceiling", -150, -125, false},
		{"Underdog always passes", 150, -125, true},
		{"Even money passes", 100, -125, true},
		{"Just past ceiling", -126, -125, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MeetsCriteria(tt.american, tt.maxOdds); got != tt.expected {
				t.Errorf("MeetsCriteria(%d, %d) = %v, want %v", tt.american, tt.maxOdds, got, tt.expected)
			}
		})
	}
}
