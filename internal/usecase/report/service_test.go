package report

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trendfolio/trendfolio-backend/internal/domain"
	"github.com/trendfolio/trendfolio-backend/internal/usecase/series"
)

// MockHoldingRepository is a mock implementation of HoldingRepository for testing
type MockHoldingRepository struct {
	mock.Mock
}

func (m *MockHoldingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Holding, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Holding), args.Error(1)
}

func (m *MockHoldingRepository) GetBySymbol(ctx context.Context, symbol string) (*domain.Holding, error) {
	args := m.Called(ctx, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Holding), args.Error(1)
}

func (m *MockHoldingRepository) Create(ctx context.Context, holding *domain.Holding) error {
	args := m.Called(ctx, holding)
	return args.Error(0)
}

func (m *MockHoldingRepository) Update(ctx context.Context, holding *domain.Holding) error {
	args := m.Called(ctx, holding)
	return args.Error(0)
}

func (m *MockHoldingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockHoldingRepository) List(ctx context.Context) ([]*domain.Holding, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Holding), args.Error(1)
}

// MockPredictionRepository is a mock implementation of PredictionRepository for testing
type MockPredictionRepository struct {
	mock.Mock
}

func (m *MockPredictionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Prediction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Prediction), args.Error(1)
}

func (m *MockPredictionRepository) Create(ctx context.Context, prediction *domain.Prediction) error {
	args := m.Called(ctx, prediction)
	return args.Error(0)
}

func (m *MockPredictionRepository) Resolve(ctx context.Context, id uuid.UUID, actualPrice decimal.Decimal) error {
	args := m.Called(ctx, id, actualPrice)
	return args.Error(0)
}

func (m *MockPredictionRepository) List(ctx context.Context, limit, offset int) ([]*domain.Prediction, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Prediction), args.Error(1)
}

func (m *MockPredictionRepository) ListResolved(ctx context.Context) ([]*domain.Prediction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Prediction), args.Error(1)
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func newService(holdingRepo *MockHoldingRepository, predictionRepo *MockPredictionRepository) *ReportService {
	return NewReportService(holdingRepo, predictionRepo, series.NewGenerator(42))
}

func TestGetPortfolioSummary(t *testing.T) {
	ctx := context.Background()
	mockHoldingRepo := new(MockHoldingRepository)
	mockPredictionRepo := new(MockPredictionRepository)

	service := newService(mockHoldingRepo, mockPredictionRepo)

	holdings := []*domain.Holding{
		{
			ID:             uuid.New(),
			Symbol:         "AAPL",
			Quantity:       decimal.NewFromInt(10),
			PurchasePrice:  decimal.NewFromInt(100),
			CurrentPrice:   decimalPtr(decimal.NewFromInt(110)),
			PredictedPrice: decimalPtr(decimal.NewFromInt(130)),
			Confidence:     80,
		},
	}
	mockHoldingRepo.On("List", ctx).Return(holdings, nil)

	summary, err := service.GetPortfolioSummary(ctx)

	require.NoError(t, err)
	assert.True(t, summary.TotalValue.Equal(decimal.NewFromInt(1100)))
	assert.True(t, summary.CostBasis.Equal(decimal.NewFromInt(1000)))
	assert.True(t, summary.Growth.Value.Equal(decimal.NewFromInt(100)))

	mockHoldingRepo.AssertExpectations(t)
}

func TestGetPortfolioSummary_EmptyPortfolio(t *testing.T) {
	ctx := context.Background()
	mockHoldingRepo := new(MockHoldingRepository)
	mockPredictionRepo := new(MockPredictionRepository)

	service := newService(mockHoldingRepo, mockPredictionRepo)

	mockHoldingRepo.On("List", ctx).Return([]*domain.Holding{}, nil)

	summary, err := service.GetPortfolioSummary(ctx)

	require.NoError(t, err)
	assert.True(t, summary.TotalValue.IsZero())
	assert.True(t, summary.CostBasis.IsZero())
}

func TestGetPortfolioSummary_RepositoryError(t *testing.T) {
	ctx := context.Background()
	mockHoldingRepo := new(MockHoldingRepository)
	mockPredictionRepo := new(MockPredictionRepository)

	service := newService(mockHoldingRepo, mockPredictionRepo)

	mockHoldingRepo.On("List", ctx).Return(nil, errors.New("connection refused"))

	_, err := service.GetPortfolioSummary(ctx)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list holdings")
}

func TestGetAccuracyReport(t *testing.T) {
	ctx := context.Background()
	mockHoldingRepo := new(MockHoldingRepository)
	mockPredictionRepo := new(MockPredictionRepository)

	service := newService(mockHoldingRepo, mockPredictionRepo)

	// A perfect prediction (score 100) and a fully missed one (score 0)
	perfect := &domain.Prediction{
		ID:             uuid.New(),
		Symbol:         "AAPL",
		StartPrice:     decimal.NewFromInt(100),
		PredictedPrice: decimal.NewFromInt(110),
		ActualPrice:    decimalPtr(decimal.NewFromInt(110)),
		Confidence:     100,
		Timeframe:      "1M",
	}
	missed := &domain.Prediction{
		ID:             uuid.New(),
		Symbol:         "BTC",
		StartPrice:     decimal.NewFromInt(100),
		PredictedPrice: decimal.NewFromInt(120),
		ActualPrice:    decimalPtr(decimal.NewFromInt(80)),
		Confidence:     0,
		Timeframe:      "1W",
	}
	mockPredictionRepo.On("ListResolved", ctx).Return([]*domain.Prediction{perfect, missed}, nil)

	reportOut, err := service.GetAccuracyReport(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, reportOut.Total)
	assert.InDelta(t, 50.0, reportOut.AverageScore, 1e-9)

	require.Len(t, reportOut.Buckets, 5)
	assert.Equal(t, 1, reportOut.Buckets[0].Count) // 90-100%
	assert.Equal(t, 1, reportOut.Buckets[4].Count) // 0-60%

	mockPredictionRepo.AssertExpectations(t)
}

func TestGetAccuracyReport_SkipsUnscorablePredictions(t *testing.T) {
	ctx := context.Background()
	mockHoldingRepo := new(MockHoldingRepository)
	mockPredictionRepo := new(MockPredictionRepository)

	service := newService(mockHoldingRepo, mockPredictionRepo)

	// An unresolved record slipping through must not fail the report
	unresolved := &domain.Prediction{
		ID:             uuid.New(),
		Symbol:         "GLD",
		StartPrice:     decimal.NewFromInt(100),
		PredictedPrice: decimal.NewFromInt(105),
		Confidence:     60,
		Timeframe:      "1W",
	}
	mockPredictionRepo.On("ListResolved", ctx).Return([]*domain.Prediction{unresolved}, nil)

	reportOut, err := service.GetAccuracyReport(ctx)

	require.NoError(t, err)
	assert.Equal(t, 0, reportOut.Total)
	assert.Equal(t, 0.0, reportOut.AverageScore)
}

func TestGetPerformanceSeries(t *testing.T) {
	ctx := context.Background()
	mockHoldingRepo := new(MockHoldingRepository)
	mockPredictionRepo := new(MockPredictionRepository)

	service := newService(mockHoldingRepo, mockPredictionRepo)

	holding := &domain.Holding{
		ID:             uuid.New(),
		Symbol:         "AAPL",
		Quantity:       decimal.NewFromInt(10),
		PurchasePrice:  decimal.NewFromInt(100),
		CurrentPrice:   decimalPtr(decimal.NewFromInt(150)),
		PredictedPrice: decimalPtr(decimal.NewFromInt(200)),
		Confidence:     80,
	}
	mockHoldingRepo.On("GetBySymbol", ctx, "AAPL").Return(holding, nil)

	points, err := service.GetPerformanceSeries(ctx, "AAPL", 30)

	require.NoError(t, err)
	require.Len(t, points, 30)
	assert.Equal(t, 80.0, points[0].Accuracy)

	mockHoldingRepo.AssertExpectations(t)
}

func TestGetPerformanceSeries_DefaultsWithoutForecast(t *testing.T) {
	ctx := context.Background()
	mockHoldingRepo := new(MockHoldingRepository)
	mockPredictionRepo := new(MockPredictionRepository)

	service := newService(mockHoldingRepo, mockPredictionRepo)

	holding := &domain.Holding{
		ID:            uuid.New(),
		Symbol:        "GLD",
		Quantity:      decimal.NewFromInt(2),
		PurchasePrice: decimal.NewFromInt(180),
		CurrentPrice:  decimalPtr(decimal.NewFromInt(190)),
	}
	mockHoldingRepo.On("GetBySymbol", ctx, "GLD").Return(holding, nil)

	points, err := service.GetPerformanceSeries(ctx, "GLD", 7)

	require.NoError(t, err)
	require.Len(t, points, 7)
	// No forecast: day 0 reports the neutral default confidence
	assert.Equal(t, 50.0, points[0].Accuracy)
}

func TestGetPerformanceSeries_NoCurrentPrice(t *testing.T) {
	ctx := context.Background()
	mockHoldingRepo := new(MockHoldingRepository)
	mockPredictionRepo := new(MockPredictionRepository)

	service := newService(mockHoldingRepo, mockPredictionRepo)

	holding := &domain.Holding{
		ID:            uuid.New(),
		Symbol:        "BTC",
		Quantity:      decimal.NewFromInt(1),
		PurchasePrice: decimal.NewFromInt(40000),
	}
	mockHoldingRepo.On("GetBySymbol", ctx, "BTC").Return(holding, nil)

	_, err := service.GetPerformanceSeries(ctx, "BTC", 30)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "holding has no current price")
}

func TestGetPerformanceSeries_UnknownSymbol(t *testing.T) {
	ctx := context.Background()
	mockHoldingRepo := new(MockHoldingRepository)
	mockPredictionRepo := new(MockPredictionRepository)

	service := newService(mockHoldingRepo, mockPredictionRepo)

	mockHoldingRepo.On("GetBySymbol", ctx, "NOPE").Return(nil, domain.ErrNotFound)

	_, err := service.GetPerformanceSeries(ctx, "NOPE", 30)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
