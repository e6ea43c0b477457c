package portfolio

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/trendfolio/trendfolio-backend/internal/domain"
)

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func holding(qty, purchase int64, current, predicted *decimal.Decimal, confidence float64) *domain.Holding {
	return &domain.Holding{
		ID:             uuid.New(),
		AssetID:        uuid.New(),
		Symbol:         "TEST",
		Quantity:       decimal.NewFromInt(qty),
		PurchasePrice:  decimal.NewFromInt(purchase),
		CurrentPrice:   current,
		PredictedPrice: predicted,
		Confidence:     confidence,
	}
}

func TestAggregate_EmptyPortfolio(t *testing.T) {
	summary := Aggregate(nil)

	assert.True(t, summary.TotalValue.IsZero())
	assert.True(t, summary.CostBasis.IsZero())
	assert.True(t, summary.Growth.Value.IsZero())
	assert.True(t, summary.Growth.Percent.IsZero())
	assert.True(t, summary.PredictedGrowth.Value.IsZero())
	assert.True(t, summary.PredictedGrowth.Percent.IsZero())
}

func TestAggregate_SingleHoldingWithForecast(t *testing.T) {
	// 10 shares bought at 100, now 110, predicted 130
	holdings := []*domain.Holding{
		holding(10, 100, decimalPtr(decimal.NewFromInt(110)), decimalPtr(decimal.NewFromInt(130)), 80),
	}

	summary := Aggregate(holdings)

	assert.True(t, summary.TotalValue.Equal(decimal.NewFromInt(1100)), "total value: %s", summary.TotalValue)
	assert.True(t, summary.CostBasis.Equal(decimal.NewFromInt(1000)), "cost basis: %s", summary.CostBasis)

	// Realized growth: 1100 vs 1000
	assert.True(t, summary.Growth.Value.Equal(decimal.NewFromInt(100)))
	assert.True(t, summary.Growth.Percent.Equal(decimal.NewFromInt(10)))

	// Forecast growth: 1300 vs 1100
	assert.True(t, summary.PredictedGrowth.Value.Equal(decimal.NewFromInt(200)))
	assert.InDelta(t, 18.1818, summary.PredictedGrowth.Percent.InexactFloat64(), 0.001)
}

func TestAggregate_FlatHolding_ZeroGrowth(t *testing.T) {
	holdings := []*domain.Holding{
		holding(5, 100, decimalPtr(decimal.NewFromInt(100)), nil, 0),
	}

	summary := Aggregate(holdings)

	assert.True(t, summary.Growth.Value.IsZero())
	assert.True(t, summary.Growth.Percent.IsZero())
}

func TestAggregate_MissingCurrentPrice_Excluded(t *testing.T) {
	holdings := []*domain.Holding{
		holding(10, 100, decimalPtr(decimal.NewFromInt(110)), nil, 0),
		holding(3, 50, nil, nil, 0), // no live quote
	}

	summary := Aggregate(holdings)

	// The unquoted holding contributes nothing to value but stays in cost basis
	assert.True(t, summary.TotalValue.Equal(decimal.NewFromInt(1100)))
	assert.True(t, summary.CostBasis.Equal(decimal.NewFromInt(1150)))
}

func TestAggregate_MissingForecast_CarriesCurrentValue(t *testing.T) {
	holdings := []*domain.Holding{
		holding(10, 100, decimalPtr(decimal.NewFromInt(110)), decimalPtr(decimal.NewFromInt(130)), 70),
		holding(2, 200, decimalPtr(decimal.NewFromInt(250)), nil, 0), // no forecast
	}

	summary := Aggregate(holdings)

	// Total = 1100 + 500; predicted sum = 1300 + 500 (forecastless holding
	// carried at current value), so forecast growth only reflects the
	// forecasted position
	assert.True(t, summary.TotalValue.Equal(decimal.NewFromInt(1600)))
	assert.True(t, summary.PredictedGrowth.Value.Equal(decimal.NewFromInt(200)))
}

func TestAggregate_ZeroQuantityHolding_EquivalentToAbsence(t *testing.T) {
	base := []*domain.Holding{
		holding(10, 100, decimalPtr(decimal.NewFromInt(110)), nil, 0),
	}
	withZero := append([]*domain.Holding{
		holding(0, 500, decimalPtr(decimal.NewFromInt(900)), decimalPtr(decimal.NewFromInt(1200)), 90),
	}, base...)

	assert.Equal(t, Aggregate(base), Aggregate(withZero))
}

func TestAggregate_ZeroCostBasis_NoDivisionError(t *testing.T) {
	// Only a zero-quantity holding: cost basis is 0, percent must stay 0
	holdings := []*domain.Holding{
		holding(0, 100, decimalPtr(decimal.NewFromInt(110)), nil, 0),
	}

	summary := Aggregate(holdings)

	assert.True(t, summary.CostBasis.IsZero())
	assert.True(t, summary.Growth.Percent.IsZero())
}

func TestAggregate_OrderIndependent(t *testing.T) {
	holdings := []*domain.Holding{
		holding(10, 100, decimalPtr(decimal.NewFromInt(110)), decimalPtr(decimal.NewFromInt(130)), 80),
		holding(2, 200, decimalPtr(decimal.NewFromInt(250)), nil, 0),
		holding(7, 30, nil, nil, 0),
		holding(1, 900, decimalPtr(decimal.NewFromInt(850)), decimalPtr(decimal.NewFromInt(1000)), 55),
	}

	want := Aggregate(holdings)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := make([]*domain.Holding, len(holdings))
		copy(shuffled, holdings)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		assert.Equal(t, want, Aggregate(shuffled))
	}
}
