package domain

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Holding represents a position in an asset held by the portfolio
// Adheres to the data model defined in SPEC_FULL.md
// Quantity and PurchasePrice together define the cost basis. CurrentPrice and
// PredictedPrice are refreshed by an external market-data collaborator and may
// be absent at call time (nil pointers).
type Holding struct {
	ID             uuid.UUID
	AssetID        uuid.UUID
	Symbol         string
	Quantity       decimal.Decimal
	PurchasePrice  decimal.Decimal
	CurrentPrice   *decimal.Decimal // nil if no live quote is available
	PredictedPrice *decimal.Decimal // nil if no forecast exists for this position
	Confidence     float64          // stated forecast confidence in [0,100]; only meaningful with a PredictedPrice
}

// Validate ensures the holding adheres to domain rules
// Returns an error if validation fails
func (h *Holding) Validate() error {
	if h.Symbol == "" {
		return errors.New("holding symbol cannot be empty")
	}

	if h.Quantity.IsNegative() {
		return errors.New("holding quantity cannot be negative")
	}

	if h.PurchasePrice.LessThanOrEqual(decimal.Zero) {
		return errors.New("purchase price must be positive")
	}

	if h.CurrentPrice != nil && h.CurrentPrice.LessThanOrEqual(decimal.Zero) {
		return errors.New("current price must be positive")
	}

	// A forecast requires both a positive price and an in-range confidence
	if h.PredictedPrice != nil {
		if h.PredictedPrice.LessThanOrEqual(decimal.Zero) {
			return errors.New("predicted price must be positive")
		}
		if h.Confidence < 0 || h.Confidence > 100 {
			return errors.New("confidence must be between 0 and 100")
		}
	}

	return nil
}

// HasForecast reports whether this holding carries a predicted price
func (h *Holding) HasForecast() bool {
	return h.PredictedPrice != nil
}
