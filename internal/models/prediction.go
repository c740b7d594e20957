package models

// BetType distinguishes the two markets the model predicts.
type BetType string

const (
	BetTypeSpread BetType = "spread"
	BetTypeTotal  BetType = "total"
)

// Prediction pairs a predicted value with the model's confidence in it.
// For spreads the value is home minus away points (positive favors home);
// for totals it is combined points. Confidence is bounded per type:
// spreads [0.40, 0.85], totals [0.35, 0.75].
type Prediction struct {
	Type       BetType `json:"type"`
	Value      float64 `json:"value"`
	Confidence float64 `json:"confidence"`
}
