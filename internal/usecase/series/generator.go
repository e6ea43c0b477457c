// Package series synthesizes bounded daily price/prediction paths used to
// back-test and visualize prediction performance.
package series

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/trendfolio/trendfolio-backend/internal/domain"
	"github.com/trendfolio/trendfolio-backend/internal/usecase/accuracy"
)

const (
	// priceNoiseRatio bounds the multiplicative noise applied to each point
	// of the interpolated price path (plus/minus 2%).
	priceNoiseRatio = 0.02

	// predictionDriftRatio is the fixed factor by which each day's synthetic
	// next-day prediction leans away from the day's price, toward the
	// overall forecast.
	predictionDriftRatio = 0.01

	// predictionNoiseRatio bounds the noise on the synthetic predictions.
	predictionNoiseRatio = 0.01
)

// Request holds the inputs for one synthesized performance series
type Request struct {
	StartPrice     float64
	CurrentPrice   float64
	PredictedPrice float64
	Confidence     float64 // stated confidence in [0,100]; becomes day 0's accuracy
	Days           int
}

// Generator produces reproducible synthetic daily performance series.
// It is constructed with a seed and derives a fresh rand source per call, so
// equal seeds yield identical series and concurrent calls never share state.
type Generator struct {
	seed int64
}

// NewGenerator creates a new Generator with the given seed
// A zero seed is replaced with the current time, for callers that do not
// care about reproducibility.
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{seed: seed}
}

// Generate synthesizes a plausible daily path from the start price to the
// current price over the requested number of days
// Logic:
//  1. Each day's price is the linear interpolation between start and current,
//     scaled by bounded noise; the final point is fed the target price before
//     noise, with no further special-casing
//  2. Each day also carries a synthetic next-day prediction: the day's price
//     nudged toward the overall forecast by a small fixed factor, plus noise
//  3. Each day's accuracy (0-100) is the proximity of the previous day's
//     prediction to this day's price; day 0 falls back to the caller's
//     stated confidence, having no prior prediction to evaluate
//
// Dates are assigned so the last point is today.
func (g *Generator) Generate(req Request) ([]domain.DailyPerformance, error) {
	if req.Days < 1 {
		return nil, errors.New("days must be at least 1")
	}
	for _, price := range []float64{req.StartPrice, req.CurrentPrice, req.PredictedPrice} {
		if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
			return nil, errors.New("prices must be positive and finite")
		}
	}
	if math.IsNaN(req.Confidence) || math.IsInf(req.Confidence, 0) {
		return nil, errors.New("confidence must be finite")
	}

	confidence := req.Confidence
	if confidence < 0 {
		confidence = 0
	} else if confidence > 100 {
		confidence = 100
	}

	// Predictions lean toward the overall forecast: up when the forecast
	// sits above the current price, down otherwise.
	drift := 1 + predictionDriftRatio
	if req.PredictedPrice < req.CurrentPrice {
		drift = 1 - predictionDriftRatio
	}

	rng := rand.New(rand.NewSource(g.seed))
	today := time.Now().UTC().Truncate(24 * time.Hour)

	points := make([]domain.DailyPerformance, req.Days)
	for i := 0; i < req.Days; i++ {
		progress := 1.0
		if req.Days > 1 {
			progress = float64(i) / float64(req.Days-1)
		}

		base := req.StartPrice + (req.CurrentPrice-req.StartPrice)*progress
		price := base * (1 + symmetricNoise(rng, priceNoiseRatio))
		prediction := price * drift * (1 + symmetricNoise(rng, predictionNoiseRatio))

		point := domain.DailyPerformance{
			Date:       today.AddDate(0, 0, i-(req.Days-1)),
			Price:      price,
			Prediction: prediction,
			Accuracy:   confidence,
		}

		if i > 0 {
			prev := points[i-1]
			point.ChangePct = (price - prev.Price) / prev.Price * 100
			point.Accuracy = 100 * accuracy.Proximity(prev.Prediction, price)
		}

		points[i] = point
	}

	return points, nil
}

// symmetricNoise draws a uniform value in [-ratio, ratio).
func symmetricNoise(rng *rand.Rand, ratio float64) float64 {
	return (rng.Float64()*2 - 1) * ratio
}
