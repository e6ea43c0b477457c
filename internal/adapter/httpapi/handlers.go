package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trendfolio/trendfolio-backend/internal/domain"
	"github.com/trendfolio/trendfolio-backend/internal/usecase/portfolio"
	"github.com/trendfolio/trendfolio-backend/internal/usecase/tracker"
)

const defaultSeriesDays = 30

// growthResponse mirrors portfolio.Growth with decimals as strings
type growthResponse struct {
	Value   string `json:"value"`
	Percent string `json:"percent"`
}

// summaryResponse is the wire form of a portfolio summary
type summaryResponse struct {
	TotalValue      string         `json:"total_value"`
	CostBasis       string         `json:"cost_basis"`
	Growth          growthResponse `json:"growth"`
	PredictedGrowth growthResponse `json:"predicted_growth"`
}

// holdingResponse is the wire form of a holding
type holdingResponse struct {
	ID             string   `json:"id"`
	AssetID        string   `json:"asset_id"`
	Symbol         string   `json:"symbol"`
	Quantity       string   `json:"quantity"`
	PurchasePrice  string   `json:"purchase_price"`
	CurrentPrice   *string  `json:"current_price,omitempty"`
	PredictedPrice *string  `json:"predicted_price,omitempty"`
	Confidence     *float64 `json:"confidence,omitempty"`
}

// addHoldingRequest carries the fields to open a position; decimals travel
// as strings
type addHoldingRequest struct {
	Symbol         string  `json:"symbol"`
	Quantity       string  `json:"quantity"`
	PurchasePrice  string  `json:"purchase_price"`
	CurrentPrice   string  `json:"current_price,omitempty"`
	PredictedPrice string  `json:"predicted_price,omitempty"`
	Confidence     float64 `json:"confidence,omitempty"`
}

// recordPredictionRequest carries the fields to record a forecast event
type recordPredictionRequest struct {
	Symbol         string  `json:"symbol"`
	StartPrice     string  `json:"start_price"`
	PredictedPrice string  `json:"predicted_price"`
	Confidence     float64 `json:"confidence"`
	Timeframe      string  `json:"timeframe"`
}

// resolvePredictionRequest carries the realized price for a prediction
type resolvePredictionRequest struct {
	ActualPrice string `json:"actual_price"`
}

// predictionResponse is the wire form of a prediction
type predictionResponse struct {
	ID             string   `json:"id"`
	AssetID        string   `json:"asset_id"`
	Symbol         string   `json:"symbol"`
	StartPrice     string   `json:"start_price"`
	PredictedPrice string   `json:"predicted_price"`
	ActualPrice    *string  `json:"actual_price,omitempty"`
	Confidence     float64  `json:"confidence"`
	Timeframe      string   `json:"timeframe"`
	CreatedAt      string   `json:"created_at"`
	ResolvedAt     *string  `json:"resolved_at,omitempty"`
	Score          *float64 `json:"score,omitempty"`
}

// bucketResponse is the wire form of one accuracy bucket
type bucketResponse struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// accuracyReportResponse is the wire form of the accuracy report
type accuracyReportResponse struct {
	Buckets      []bucketResponse `json:"buckets"`
	AverageScore float64          `json:"average_score"`
	Total        int              `json:"total"`
}

// performancePointResponse is the wire form of one daily performance point
type performancePointResponse struct {
	Date       string  `json:"date"`
	Price      float64 `json:"price"`
	ChangePct  float64 `json:"change_pct"`
	Prediction float64 `json:"prediction"`
	Accuracy   float64 `json:"accuracy"`
}

// handleGetPortfolioSummary serves GET /api/v1/portfolio/summary
func (s *Server) handleGetPortfolioSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.reports.GetPortfolioSummary(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSummaryResponse(summary))
}

// handleListHoldings serves GET /api/v1/portfolio/holdings
func (s *Server) handleListHoldings(w http.ResponseWriter, r *http.Request) {
	holdings, err := s.tracker.ListHoldings(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	out := make([]holdingResponse, 0, len(holdings))
	for _, h := range holdings {
		out = append(out, toHoldingResponse(h))
	}

	writeJSON(w, http.StatusOK, out)
}

// handleAddHolding serves POST /api/v1/portfolio/holdings
func (s *Server) handleAddHolding(w http.ResponseWriter, r *http.Request) {
	var req addHoldingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quantity, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid quantity format")
		return
	}

	purchasePrice, err := decimal.NewFromString(req.PurchasePrice)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid purchase_price format")
		return
	}

	currentPrice, err := optionalDecimal(req.CurrentPrice)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid current_price format")
		return
	}

	predictedPrice, err := optionalDecimal(req.PredictedPrice)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid predicted_price format")
		return
	}

	holding, err := s.tracker.AddHolding(r.Context(), tracker.AddHoldingInput{
		Symbol:         req.Symbol,
		Quantity:       quantity,
		PurchasePrice:  purchasePrice,
		CurrentPrice:   currentPrice,
		PredictedPrice: predictedPrice,
		Confidence:     req.Confidence,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toHoldingResponse(holding))
}

// handleGetAccuracyReport serves GET /api/v1/accuracy/report
func (s *Server) handleGetAccuracyReport(w http.ResponseWriter, r *http.Request) {
	accuracyReport, err := s.reports.GetAccuracyReport(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}

	buckets := make([]bucketResponse, 0, len(accuracyReport.Buckets))
	for _, b := range accuracyReport.Buckets {
		buckets = append(buckets, bucketResponse{Range: b.Range, Count: b.Count})
	}

	writeJSON(w, http.StatusOK, accuracyReportResponse{
		Buckets:      buckets,
		AverageScore: accuracyReport.AverageScore,
		Total:        accuracyReport.Total,
	})
}

// handleRecordPrediction serves POST /api/v1/predictions
func (s *Server) handleRecordPrediction(w http.ResponseWriter, r *http.Request) {
	var req recordPredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	startPrice, err := decimal.NewFromString(req.StartPrice)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_price format")
		return
	}

	predictedPrice, err := decimal.NewFromString(req.PredictedPrice)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid predicted_price format")
		return
	}

	prediction, err := s.tracker.RecordPrediction(r.Context(), tracker.RecordPredictionInput{
		Symbol:         req.Symbol,
		StartPrice:     startPrice,
		PredictedPrice: predictedPrice,
		Confidence:     req.Confidence,
		Timeframe:      req.Timeframe,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPredictionResponse(prediction, nil))
}

// handleResolvePrediction serves POST /api/v1/predictions/{id}/resolve
func (s *Server) handleResolvePrediction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid prediction id format")
		return
	}

	var req resolvePredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actualPrice, err := decimal.NewFromString(req.ActualPrice)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid actual_price format")
		return
	}

	resolved, err := s.tracker.ResolvePrediction(r.Context(), id, actualPrice)
	if err != nil {
		s.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toPredictionResponse(resolved.Prediction, &resolved.Score))
}

// handleGetPerformanceSeries serves GET /api/v1/performance/{symbol}
func (s *Server) handleGetPerformanceSeries(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	days := defaultSeriesDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	points, err := s.reports.GetPerformanceSeries(r.Context(), symbol, days)
	if err != nil {
		s.respondError(w, err)
		return
	}

	out := make([]performancePointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, performancePointResponse{
			Date:       p.Date.Format("2006-01-02"),
			Price:      p.Price,
			ChangePct:  p.ChangePct,
			Prediction: p.Prediction,
			Accuracy:   p.Accuracy,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

// handleHealthz serves GET /healthz
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func toSummaryResponse(summary portfolio.Summary) summaryResponse {
	return summaryResponse{
		TotalValue:      summary.TotalValue.String(),
		CostBasis:       summary.CostBasis.String(),
		Growth:          toGrowthResponse(summary.Growth),
		PredictedGrowth: toGrowthResponse(summary.PredictedGrowth),
	}
}

func toGrowthResponse(growth portfolio.Growth) growthResponse {
	return growthResponse{
		Value:   growth.Value.String(),
		Percent: growth.Percent.String(),
	}
}

func toHoldingResponse(h *domain.Holding) holdingResponse {
	out := holdingResponse{
		ID:            h.ID.String(),
		AssetID:       h.AssetID.String(),
		Symbol:        h.Symbol,
		Quantity:      h.Quantity.String(),
		PurchasePrice: h.PurchasePrice.String(),
	}

	if h.CurrentPrice != nil {
		v := h.CurrentPrice.String()
		out.CurrentPrice = &v
	}
	if h.PredictedPrice != nil {
		v := h.PredictedPrice.String()
		out.PredictedPrice = &v
		confidence := h.Confidence
		out.Confidence = &confidence
	}

	return out
}

func toPredictionResponse(p *domain.Prediction, score *float64) predictionResponse {
	out := predictionResponse{
		ID:             p.ID.String(),
		AssetID:        p.AssetID.String(),
		Symbol:         p.Symbol,
		StartPrice:     p.StartPrice.String(),
		PredictedPrice: p.PredictedPrice.String(),
		Confidence:     p.Confidence,
		Timeframe:      p.Timeframe,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
		Score:          score,
	}

	if p.ActualPrice != nil {
		v := p.ActualPrice.String()
		out.ActualPrice = &v
	}
	if p.ResolvedAt != nil {
		v := p.ResolvedAt.Format(time.RFC3339)
		out.ResolvedAt = &v
	}

	return out
}

// optionalDecimal parses an optional decimal field; empty means absent
func optionalDecimal(raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}

	parsed, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// respondError maps service errors to HTTP status codes
// Validation failures map to 400, missing records to 404, everything else to
// 500 with the detail kept out of the response body.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	msg := err.Error()
	if strings.Contains(msg, "must be") ||
		strings.Contains(msg, "cannot be") ||
		strings.Contains(msg, "already resolved") ||
		strings.Contains(msg, "has no current price") {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	s.log.Error().Err(err).Msg("request failed")
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
