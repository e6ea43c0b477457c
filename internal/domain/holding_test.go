package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func TestHolding_Validate(t *testing.T) {
	tests := []struct {
		name    string
		holding Holding
		wantErr bool
		errMsg  string
	}{
		{
			name: "Valid holding with forecast should pass",
			holding: Holding{
				ID:             uuid.New(),
				AssetID:        uuid.New(),
				Symbol:         "AAPL",
				Quantity:       decimal.NewFromInt(10),
				PurchasePrice:  decimal.NewFromInt(100),
				CurrentPrice:   decimalPtr(decimal.NewFromInt(110)),
				PredictedPrice: decimalPtr(decimal.NewFromInt(130)),
				Confidence:     80,
			},
			wantErr: false,
		},
		{
			name: "Valid holding without quote or forecast should pass",
			holding: Holding{
				ID:            uuid.New(),
				AssetID:       uuid.New(),
				Symbol:        "BTC",
				Quantity:      decimal.NewFromFloat(0.5),
				PurchasePrice: decimal.NewFromInt(40000),
			},
			wantErr: false,
		},
		{
			name: "Zero quantity should pass (equivalent to absence for aggregation)",
			holding: Holding{
				ID:            uuid.New(),
				AssetID:       uuid.New(),
				Symbol:        "GLD",
				Quantity:      decimal.Zero,
				PurchasePrice: decimal.NewFromInt(180),
			},
			wantErr: false,
		},
		{
			name: "Empty symbol should fail",
			holding: Holding{
				ID:            uuid.New(),
				AssetID:       uuid.New(),
				Symbol:        "",
				Quantity:      decimal.NewFromInt(1),
				PurchasePrice: decimal.NewFromInt(100),
			},
			wantErr: true,
			errMsg:  "holding symbol cannot be empty",
		},
		{
			name: "Negative quantity should fail",
			holding: Holding{
				ID:            uuid.New(),
				AssetID:       uuid.New(),
				Symbol:        "AAPL",
				Quantity:      decimal.NewFromInt(-1),
				PurchasePrice: decimal.NewFromInt(100),
			},
			wantErr: true,
			errMsg:  "holding quantity cannot be negative",
		},
		{
			name: "Zero purchase price should fail",
			holding: Holding{
				ID:            uuid.New(),
				AssetID:       uuid.New(),
				Symbol:        "AAPL",
				Quantity:      decimal.NewFromInt(1),
				PurchasePrice: decimal.Zero,
			},
			wantErr: true,
			errMsg:  "purchase price must be positive",
		},
		{
			name: "Non-positive current price should fail",
			holding: Holding{
				ID:            uuid.New(),
				AssetID:       uuid.New(),
				Symbol:        "AAPL",
				Quantity:      decimal.NewFromInt(1),
				PurchasePrice: decimal.NewFromInt(100),
				CurrentPrice:  decimalPtr(decimal.Zero),
			},
			wantErr: true,
			errMsg:  "current price must be positive",
		},
		{
			name: "Forecast with out-of-range confidence should fail",
			holding: Holding{
				ID:             uuid.New(),
				AssetID:        uuid.New(),
				Symbol:         "AAPL",
				Quantity:       decimal.NewFromInt(1),
				PurchasePrice:  decimal.NewFromInt(100),
				PredictedPrice: decimalPtr(decimal.NewFromInt(120)),
				Confidence:     120,
			},
			wantErr: true,
			errMsg:  "confidence must be between 0 and 100",
		},
		{
			name: "Forecast with non-positive predicted price should fail",
			holding: Holding{
				ID:             uuid.New(),
				AssetID:        uuid.New(),
				Symbol:         "AAPL",
				Quantity:       decimal.NewFromInt(1),
				PurchasePrice:  decimal.NewFromInt(100),
				PredictedPrice: decimalPtr(decimal.NewFromInt(-5)),
				Confidence:     50,
			},
			wantErr: true,
			errMsg:  "predicted price must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.holding.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHolding_HasForecast(t *testing.T) {
	withForecast := Holding{
		Symbol:         "AAPL",
		Quantity:       decimal.NewFromInt(1),
		PurchasePrice:  decimal.NewFromInt(100),
		PredictedPrice: decimalPtr(decimal.NewFromInt(120)),
		Confidence:     70,
	}
	withoutForecast := Holding{
		Symbol:        "AAPL",
		Quantity:      decimal.NewFromInt(1),
		PurchasePrice: decimal.NewFromInt(100),
	}

	assert.True(t, withForecast.HasForecast())
	assert.False(t, withoutForecast.HasForecast())
}
