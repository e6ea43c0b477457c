// Package portfolio aggregates holdings into portfolio-level value and
// growth figures shared by the dashboard, paper-trading and proof views.
package portfolio

import (
	"github.com/shopspring/decimal"
	"github.com/trendfolio/trendfolio-backend/internal/domain"
)

// Growth represents a change in portfolio value, in absolute and percent terms
type Growth struct {
	Value   decimal.Decimal
	Percent decimal.Decimal
}

// Summary represents the aggregated portfolio numbers for display
type Summary struct {
	TotalValue      decimal.Decimal
	CostBasis       decimal.Decimal
	Growth          Growth // realized: current value vs cost basis
	PredictedGrowth Growth // forecast: predicted value vs current value
}

// Aggregate computes portfolio-level value, realized growth and forecast
// growth over a collection of holdings
// Logic:
//  1. TotalValue sums quantity * currentPrice; holdings without a live quote
//     contribute nothing but never fail the aggregation
//  2. CostBasis sums quantity * purchasePrice over all holdings
//  3. Realized growth compares TotalValue against CostBasis
//  4. Forecast growth compares the predicted value sum against TotalValue;
//     holdings without a forecast carry their current value into the
//     predicted sum unchanged, so missing forecasts do not distort the rate
//
// Pure function of its input: no side effects, order-independent, and an
// empty portfolio yields an all-zero summary with no division errors.
func Aggregate(holdings []*domain.Holding) Summary {
	totalValue := decimal.Zero
	costBasis := decimal.Zero
	predictedValue := decimal.Zero

	for _, h := range holdings {
		costBasis = costBasis.Add(h.Quantity.Mul(h.PurchasePrice))

		if h.CurrentPrice == nil {
			// No live quote: excluded from value sums, kept in cost basis
			continue
		}

		currentValue := h.Quantity.Mul(*h.CurrentPrice)
		totalValue = totalValue.Add(currentValue)

		if h.HasForecast() {
			predictedValue = predictedValue.Add(h.Quantity.Mul(*h.PredictedPrice))
		} else {
			predictedValue = predictedValue.Add(currentValue)
		}
	}

	return Summary{
		TotalValue:      totalValue,
		CostBasis:       costBasis,
		Growth:          growthBetween(totalValue, costBasis),
		PredictedGrowth: growthBetween(predictedValue, totalValue),
	}
}

// growthBetween computes the absolute and percent change from base to target.
// A non-positive base yields 0 percent (defined edge case, not an error).
func growthBetween(target, base decimal.Decimal) Growth {
	value := target.Sub(base)

	percent := decimal.Zero
	if base.GreaterThan(decimal.Zero) {
		percent = value.Div(base).Mul(decimal.NewFromInt(100))
	}

	return Growth{Value: value, Percent: percent}
}
