package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/trendfolio/trendfolio-backend/internal/domain"
)

// predictionRepository implements domain.PredictionRepository
type predictionRepository struct {
	db *DB
}

// NewPredictionRepository creates a new prediction repository
func NewPredictionRepository(db *DB) domain.PredictionRepository {
	return &predictionRepository{db: db}
}

const predictionColumns = `id, asset_id, symbol, start_price, predicted_price, actual_price, confidence, timeframe, created_at, resolved_at`

// GetByID retrieves a prediction by its ID
func (r *predictionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Prediction, error) {
	query := `
		SELECT ` + predictionColumns + `
		FROM predictions
		WHERE id = $1
	`

	prediction, err := scanPrediction(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("prediction %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get prediction by ID: %w", err)
	}

	return prediction, nil
}

// Create creates a new (unresolved) prediction
func (r *predictionRepository) Create(ctx context.Context, prediction *domain.Prediction) error {
	query := `
		INSERT INTO predictions (` + predictionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		prediction.ID,
		prediction.AssetID,
		prediction.Symbol,
		prediction.StartPrice.String(),
		prediction.PredictedPrice.String(),
		nullableDecimal(prediction.ActualPrice),
		prediction.Confidence,
		prediction.Timeframe,
		prediction.CreatedAt,
		prediction.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create prediction: %w", err)
	}

	return nil
}

// Resolve records the realized price for a prediction
func (r *predictionRepository) Resolve(ctx context.Context, id uuid.UUID, actualPrice decimal.Decimal) error {
	query := `
		UPDATE predictions
		SET actual_price = $2, resolved_at = $3
		WHERE id = $1 AND actual_price IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, id, actualPrice.String(), time.Now())
	if err != nil {
		return fmt.Errorf("failed to resolve prediction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check resolved rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("unresolved prediction %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// List retrieves a paginated list of predictions, newest first
func (r *predictionRepository) List(ctx context.Context, limit, offset int) ([]*domain.Prediction, error) {
	query := `
		SELECT ` + predictionColumns + `
		FROM predictions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	defer rows.Close()

	return collectPredictions(rows)
}

// ListResolved retrieves all predictions that have a realized price
func (r *predictionRepository) ListResolved(ctx context.Context) ([]*domain.Prediction, error) {
	query := `
		SELECT ` + predictionColumns + `
		FROM predictions
		WHERE actual_price IS NOT NULL
		ORDER BY resolved_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list resolved predictions: %w", err)
	}
	defer rows.Close()

	return collectPredictions(rows)
}

func collectPredictions(rows *sql.Rows) ([]*domain.Prediction, error) {
	var predictions []*domain.Prediction
	for rows.Next() {
		prediction, err := scanPrediction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction row: %w", err)
		}
		predictions = append(predictions, prediction)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate prediction rows: %w", err)
	}

	return predictions, nil
}

// scanPrediction reads one prediction row, round-tripping DECIMAL columns
// through their string form
func scanPrediction(row rowScanner) (*domain.Prediction, error) {
	var prediction domain.Prediction
	var startStr, predictedStr string
	var actualStr sql.NullString
	var resolvedAt sql.NullTime

	err := row.Scan(
		&prediction.ID,
		&prediction.AssetID,
		&prediction.Symbol,
		&startStr,
		&predictedStr,
		&actualStr,
		&prediction.Confidence,
		&prediction.Timeframe,
		&prediction.CreatedAt,
		&resolvedAt,
	)
	if err != nil {
		return nil, err
	}

	start, err := decimal.NewFromString(startStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start_price: %w", err)
	}
	prediction.StartPrice = start

	predicted, err := decimal.NewFromString(predictedStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse predicted_price: %w", err)
	}
	prediction.PredictedPrice = predicted

	if prediction.ActualPrice, err = parseNullDecimal(actualStr, "actual_price"); err != nil {
		return nil, err
	}

	if resolvedAt.Valid {
		t := resolvedAt.Time
		prediction.ResolvedAt = &t
	}

	return &prediction, nil
}
