package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/trendfolio/trendfolio-backend/internal/domain"
	"github.com/trendfolio/trendfolio-backend/internal/usecase/accuracy"
	"github.com/trendfolio/trendfolio-backend/internal/usecase/portfolio"
	"github.com/trendfolio/trendfolio-backend/internal/usecase/series"
)

// defaultConfidence seeds the performance series for holdings that carry no
// forecast of their own.
const defaultConfidence = 50

// AccuracyReport represents the prediction accuracy summary for reporting
type AccuracyReport struct {
	Buckets      []domain.AccuracyBucket
	AverageScore float64 // mean score on the 0-100 scale; 0 when no predictions resolved
	Total        int
}

// ReportService composes repositories and the engine into the numbers the
// dashboard views display
type ReportService struct {
	HoldingRepo    domain.HoldingRepository
	PredictionRepo domain.PredictionRepository
	Generator      *series.Generator
}

// NewReportService creates a new ReportService instance
func NewReportService(
	holdingRepo domain.HoldingRepository,
	predictionRepo domain.PredictionRepository,
	generator *series.Generator,
) *ReportService {
	return &ReportService{
		HoldingRepo:    holdingRepo,
		PredictionRepo: predictionRepo,
		Generator:      generator,
	}
}

// GetPortfolioSummary aggregates every holding into portfolio-level value and
// growth figures
func (s *ReportService) GetPortfolioSummary(ctx context.Context) (portfolio.Summary, error) {
	holdings, err := s.HoldingRepo.List(ctx)
	if err != nil {
		return portfolio.Summary{}, fmt.Errorf("failed to list holdings: %w", err)
	}

	return portfolio.Aggregate(holdings), nil
}

// GetAccuracyReport scores every resolved prediction and groups the scores
// into the fixed reporting bands
// Predictions with unusable stored data are skipped rather than failing the
// whole report.
func (s *ReportService) GetAccuracyReport(ctx context.Context) (*AccuracyReport, error) {
	predictions, err := s.PredictionRepo.ListResolved(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list resolved predictions: %w", err)
	}

	scores := make([]float64, 0, len(predictions))
	sum := 0.0
	for _, p := range predictions {
		score, err := accuracy.ScorePrediction(*p)
		if err != nil {
			continue
		}
		scores = append(scores, score*100)
		sum += score * 100
	}

	average := 0.0
	if len(scores) > 0 {
		average = sum / float64(len(scores))
	}

	return &AccuracyReport{
		Buckets:      accuracy.Classify(scores),
		AverageScore: average,
		Total:        len(scores),
	}, nil
}

// GetPerformanceSeries synthesizes a daily performance series for the holding
// with the given symbol
// The series runs from the purchase price to the current price; its forecast
// inputs fall back to the current price and a neutral confidence when the
// holding carries no forecast.
func (s *ReportService) GetPerformanceSeries(ctx context.Context, symbol string, days int) ([]domain.DailyPerformance, error) {
	holding, err := s.HoldingRepo.GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if holding.CurrentPrice == nil {
		return nil, errors.New("holding has no current price")
	}

	predicted := holding.CurrentPrice.InexactFloat64()
	confidence := float64(defaultConfidence)
	if holding.HasForecast() {
		predicted = holding.PredictedPrice.InexactFloat64()
		confidence = holding.Confidence
	}

	return s.Generator.Generate(series.Request{
		StartPrice:     holding.PurchasePrice.InexactFloat64(),
		CurrentPrice:   holding.CurrentPrice.InexactFloat64(),
		PredictedPrice: predicted,
		Confidence:     confidence,
		Days:           days,
	})
}
