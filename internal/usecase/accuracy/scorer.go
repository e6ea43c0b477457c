// Package accuracy scores resolved price predictions and groups the
// resulting scores into fixed reporting bands.
package accuracy

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
	"github.com/trendfolio/trendfolio-backend/internal/domain"
)

// Score component weights. They must sum to 1.0.
const (
	DirectionWeight  = 0.5
	ProximityWeight  = 0.3
	ConfidenceWeight = 0.2
)

// ToleranceRatio defines the tolerance band around the predicted price: an
// actual price within 5% of the prediction counts as "on target".
const ToleranceRatio = 0.05

// Score computes a normalized [0,1] accuracy score for one realized prediction
// Logic (three weighted components):
//  1. Direction (0.5): 1.0 if predicted and actual moved the same way relative
//     to the start price. "No change" is its own direction bucket, so a
//     predicted move against a perfectly flat actual price scores 0 here.
//  2. Proximity (0.3): 1.0 inside the tolerance band, otherwise a linear ramp
//     down to 0. A correct direction guarantees at least half credit on this
//     component regardless of magnitude error.
//  3. Confidence (0.2): the stated confidence as a flat linear multiplier,
//     clamped to [0,100] before use.
func Score(startPrice, predictedPrice, actualPrice decimal.Decimal, confidencePercent float64) (float64, error) {
	if startPrice.LessThanOrEqual(decimal.Zero) {
		return 0, errors.New("start price must be positive")
	}
	if predictedPrice.LessThanOrEqual(decimal.Zero) {
		return 0, errors.New("predicted price must be positive")
	}
	if actualPrice.LessThanOrEqual(decimal.Zero) {
		return 0, errors.New("actual price must be positive")
	}
	if math.IsNaN(confidencePercent) || math.IsInf(confidencePercent, 0) {
		return 0, errors.New("confidence must be finite")
	}

	confidence := clampConfidence(confidencePercent) / 100

	// Step 1: Direction. Cmp yields -1/0/+1, giving up, down and flat their
	// own buckets; equal buckets count as a directional hit (flat vs flat
	// included).
	direction := 0.0
	if predictedPrice.Cmp(startPrice) == actualPrice.Cmp(startPrice) {
		direction = 1.0
	}

	// Step 2: Proximity, with the half-credit boost on correct direction.
	proximity := Proximity(predictedPrice.InexactFloat64(), actualPrice.InexactFloat64())
	if direction == 1.0 && proximity < 0.5 {
		proximity = 0.5
	}

	return DirectionWeight*direction + ProximityWeight*proximity + ConfidenceWeight*confidence, nil
}

// ScorePrediction scores a stored prediction record
// Returns an error if the prediction has not resolved yet
func ScorePrediction(p domain.Prediction) (float64, error) {
	if !p.Resolved() {
		return 0, errors.New("prediction has not resolved")
	}
	return Score(p.StartPrice, p.PredictedPrice, *p.ActualPrice, p.Confidence)
}

// Proximity computes the raw proximity term in [0,1]: 1.0 when the actual
// price lands inside the tolerance band around the prediction, otherwise a
// linear ramp floored at 0. No direction boost is applied here; the series
// generator reuses this term on its own.
func Proximity(predicted, actual float64) float64 {
	tolerance := ToleranceRatio * predicted
	if tolerance <= 0 {
		return 0
	}

	diff := math.Abs(actual - predicted)
	if diff <= tolerance {
		return 1.0
	}
	return math.Max(0, 1-diff/tolerance)
}

func clampConfidence(confidencePercent float64) float64 {
	if confidencePercent < 0 {
		return 0
	}
	if confidencePercent > 100 {
		return 100
	}
	return confidencePercent
}
