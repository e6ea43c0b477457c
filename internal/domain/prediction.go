package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Prediction represents a single forecast event for an asset
// Adheres to the data model defined in SPEC_FULL.md
// A prediction is created with a start price and a predicted price; it is
// resolved later, when the realized price for its timeframe becomes known.
type Prediction struct {
	ID             uuid.UUID
	AssetID        uuid.UUID
	Symbol         string
	StartPrice     decimal.Decimal
	PredictedPrice decimal.Decimal
	ActualPrice    *decimal.Decimal // nil until the prediction resolves
	Confidence     float64          // stated confidence in [0,100]
	Timeframe      string           // holding period label, e.g. "1W", "1M"
	CreatedAt      time.Time
	ResolvedAt     *time.Time
}

// Validate ensures the prediction adheres to domain rules
// Returns an error if validation fails
func (p *Prediction) Validate() error {
	if p.Symbol == "" {
		return errors.New("prediction symbol cannot be empty")
	}

	if p.StartPrice.LessThanOrEqual(decimal.Zero) {
		return errors.New("start price must be positive")
	}

	if p.PredictedPrice.LessThanOrEqual(decimal.Zero) {
		return errors.New("predicted price must be positive")
	}

	if p.ActualPrice != nil && p.ActualPrice.LessThanOrEqual(decimal.Zero) {
		return errors.New("actual price must be positive")
	}

	if p.Confidence < 0 || p.Confidence > 100 {
		return errors.New("confidence must be between 0 and 100")
	}

	if p.Timeframe == "" {
		return errors.New("prediction timeframe cannot be empty")
	}

	return nil
}

// Resolved reports whether a realized price has been recorded for this
// prediction. Accuracy scoring requires resolution.
func (p *Prediction) Resolved() bool {
	return p.ActualPrice != nil
}
