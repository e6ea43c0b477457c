package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetRepository defines the interface for asset catalog persistence operations
type AssetRepository interface {
	// GetByID retrieves an asset by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Asset, error)

	// GetBySymbol retrieves an asset by its unique symbol
	GetBySymbol(ctx context.Context, symbol string) (*Asset, error)

	// Create creates a new asset
	Create(ctx context.Context, asset *Asset) error

	// List retrieves all assets, optionally filtered by category
	// If categoryFilter is empty, returns all assets
	List(ctx context.Context, categoryFilter AssetCategory) ([]*Asset, error)
}

// HoldingRepository defines the interface for holding persistence operations
type HoldingRepository interface {
	// GetByID retrieves a holding by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Holding, error)

	// GetBySymbol retrieves the holding for an asset symbol
	GetBySymbol(ctx context.Context, symbol string) (*Holding, error)

	// Create creates a new holding
	Create(ctx context.Context, holding *Holding) error

	// Update replaces the stored holding with the given one
	Update(ctx context.Context, holding *Holding) error

	// Delete removes a holding (position disposal)
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves all holdings in the portfolio
	List(ctx context.Context) ([]*Holding, error)
}

// PredictionRepository defines the interface for prediction persistence operations
type PredictionRepository interface {
	// GetByID retrieves a prediction by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Prediction, error)

	// Create creates a new (unresolved) prediction
	Create(ctx context.Context, prediction *Prediction) error

	// Resolve records the realized price for a prediction
	Resolve(ctx context.Context, id uuid.UUID, actualPrice decimal.Decimal) error

	// List retrieves a paginated list of predictions, newest first
	List(ctx context.Context, limit, offset int) ([]*Prediction, error)

	// ListResolved retrieves all predictions that have a realized price
	ListResolved(ctx context.Context) ([]*Prediction, error)
}
