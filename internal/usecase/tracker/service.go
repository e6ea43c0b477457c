// Package tracker manages the holding and prediction lifecycle: positions
// are added and disposed, predictions are recorded and later resolved
// against the realized price.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/trendfolio/trendfolio-backend/internal/domain"
	"github.com/trendfolio/trendfolio-backend/internal/usecase/accuracy"
)

// AddHoldingInput carries the fields needed to open a position
type AddHoldingInput struct {
	Symbol         string
	Quantity       decimal.Decimal
	PurchasePrice  decimal.Decimal
	CurrentPrice   *decimal.Decimal
	PredictedPrice *decimal.Decimal
	Confidence     float64
}

// RecordPredictionInput carries the fields needed to record a forecast event
type RecordPredictionInput struct {
	Symbol         string
	StartPrice     decimal.Decimal
	PredictedPrice decimal.Decimal
	Confidence     float64
	Timeframe      string
}

// ResolvedPrediction pairs a freshly resolved prediction with its accuracy
// score on the 0-100 scale
type ResolvedPrediction struct {
	Prediction *domain.Prediction
	Score      float64
}

// TrackerService handles holding and prediction write operations
type TrackerService struct {
	AssetRepo      domain.AssetRepository
	HoldingRepo    domain.HoldingRepository
	PredictionRepo domain.PredictionRepository
}

// NewTrackerService creates a new TrackerService instance
func NewTrackerService(
	assetRepo domain.AssetRepository,
	holdingRepo domain.HoldingRepository,
	predictionRepo domain.PredictionRepository,
) *TrackerService {
	return &TrackerService{
		AssetRepo:      assetRepo,
		HoldingRepo:    holdingRepo,
		PredictionRepo: predictionRepo,
	}
}

// AddHolding opens a new position for a cataloged asset
// The asset must exist; the holding is validated before being persisted.
func (s *TrackerService) AddHolding(ctx context.Context, input AddHoldingInput) (*domain.Holding, error) {
	asset, err := s.AssetRepo.GetBySymbol(ctx, input.Symbol)
	if err != nil {
		return nil, err
	}

	holding := &domain.Holding{
		ID:             uuid.New(),
		AssetID:        asset.ID,
		Symbol:         asset.Symbol,
		Quantity:       input.Quantity,
		PurchasePrice:  input.PurchasePrice,
		CurrentPrice:   input.CurrentPrice,
		PredictedPrice: input.PredictedPrice,
		Confidence:     input.Confidence,
	}

	if err := holding.Validate(); err != nil {
		return nil, err
	}

	if err := s.HoldingRepo.Create(ctx, holding); err != nil {
		return nil, fmt.Errorf("failed to create holding: %w", err)
	}

	return holding, nil
}

// ListHoldings retrieves all holdings in the portfolio
func (s *TrackerService) ListHoldings(ctx context.Context) ([]*domain.Holding, error) {
	return s.HoldingRepo.List(ctx)
}

// RecordPrediction records a new, unresolved forecast event for a cataloged
// asset
func (s *TrackerService) RecordPrediction(ctx context.Context, input RecordPredictionInput) (*domain.Prediction, error) {
	asset, err := s.AssetRepo.GetBySymbol(ctx, input.Symbol)
	if err != nil {
		return nil, err
	}

	prediction := &domain.Prediction{
		ID:             uuid.New(),
		AssetID:        asset.ID,
		Symbol:         asset.Symbol,
		StartPrice:     input.StartPrice,
		PredictedPrice: input.PredictedPrice,
		Confidence:     input.Confidence,
		Timeframe:      input.Timeframe,
		CreatedAt:      time.Now(),
	}

	if err := prediction.Validate(); err != nil {
		return nil, err
	}

	if err := s.PredictionRepo.Create(ctx, prediction); err != nil {
		return nil, fmt.Errorf("failed to create prediction: %w", err)
	}

	return prediction, nil
}

// ResolvePrediction records the realized price for a prediction and returns
// the prediction together with its accuracy score
// Resolving an already-resolved prediction is rejected.
func (s *TrackerService) ResolvePrediction(ctx context.Context, id uuid.UUID, actualPrice decimal.Decimal) (*ResolvedPrediction, error) {
	prediction, err := s.PredictionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if prediction.Resolved() {
		return nil, fmt.Errorf("prediction %s is already resolved", id)
	}

	if actualPrice.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("actual price must be positive")
	}

	if err := s.PredictionRepo.Resolve(ctx, id, actualPrice); err != nil {
		return nil, fmt.Errorf("failed to resolve prediction: %w", err)
	}

	prediction.ActualPrice = &actualPrice
	now := time.Now()
	prediction.ResolvedAt = &now

	score, err := accuracy.ScorePrediction(*prediction)
	if err != nil {
		return nil, err
	}

	return &ResolvedPrediction{
		Prediction: prediction,
		Score:      score * 100,
	}, nil
}
