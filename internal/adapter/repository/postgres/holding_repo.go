package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/trendfolio/trendfolio-backend/internal/domain"
)

// holdingRepository implements domain.HoldingRepository
type holdingRepository struct {
	db *DB
}

// NewHoldingRepository creates a new holding repository
func NewHoldingRepository(db *DB) domain.HoldingRepository {
	return &holdingRepository{db: db}
}

const holdingColumns = `id, asset_id, symbol, quantity, purchase_price, current_price, predicted_price, confidence`

// GetByID retrieves a holding by its ID
func (r *holdingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Holding, error) {
	query := `
		SELECT ` + holdingColumns + `
		FROM holdings
		WHERE id = $1
	`

	holding, err := scanHolding(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("holding %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get holding by ID: %w", err)
	}

	return holding, nil
}

// GetBySymbol retrieves the holding for an asset symbol
func (r *holdingRepository) GetBySymbol(ctx context.Context, symbol string) (*domain.Holding, error) {
	query := `
		SELECT ` + holdingColumns + `
		FROM holdings
		WHERE symbol = $1
	`

	holding, err := scanHolding(r.db.QueryRowContext(ctx, query, symbol))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("holding %s: %w", symbol, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get holding by symbol: %w", err)
	}

	return holding, nil
}

// Create creates a new holding
func (r *holdingRepository) Create(ctx context.Context, holding *domain.Holding) error {
	query := `
		INSERT INTO holdings (` + holdingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		holding.ID,
		holding.AssetID,
		holding.Symbol,
		holding.Quantity.String(),
		holding.PurchasePrice.String(),
		nullableDecimal(holding.CurrentPrice),
		nullableDecimal(holding.PredictedPrice),
		holding.Confidence,
	)
	if err != nil {
		return fmt.Errorf("failed to create holding: %w", err)
	}

	return nil
}

// Update replaces the stored holding with the given one
func (r *holdingRepository) Update(ctx context.Context, holding *domain.Holding) error {
	query := `
		UPDATE holdings
		SET quantity = $2, purchase_price = $3, current_price = $4, predicted_price = $5, confidence = $6
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		holding.ID,
		holding.Quantity.String(),
		holding.PurchasePrice.String(),
		nullableDecimal(holding.CurrentPrice),
		nullableDecimal(holding.PredictedPrice),
		holding.Confidence,
	)
	if err != nil {
		return fmt.Errorf("failed to update holding: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("holding %s: %w", holding.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a holding (position disposal)
func (r *holdingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM holdings
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("holding %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// List retrieves all holdings in the portfolio
func (r *holdingRepository) List(ctx context.Context) ([]*domain.Holding, error) {
	query := `
		SELECT ` + holdingColumns + `
		FROM holdings
		ORDER BY symbol
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	defer rows.Close()

	var holdings []*domain.Holding
	for rows.Next() {
		holding, err := scanHolding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding row: %w", err)
		}
		holdings = append(holdings, holding)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holding rows: %w", err)
	}

	return holdings, nil
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanHolding reads one holding row, round-tripping DECIMAL columns through
// their string form
func scanHolding(row rowScanner) (*domain.Holding, error) {
	var holding domain.Holding
	var quantityStr, purchaseStr string
	var currentStr, predictedStr sql.NullString

	err := row.Scan(
		&holding.ID,
		&holding.AssetID,
		&holding.Symbol,
		&quantityStr,
		&purchaseStr,
		&currentStr,
		&predictedStr,
		&holding.Confidence,
	)
	if err != nil {
		return nil, err
	}

	quantity, err := decimal.NewFromString(quantityStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse quantity: %w", err)
	}
	holding.Quantity = quantity

	purchase, err := decimal.NewFromString(purchaseStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse purchase_price: %w", err)
	}
	holding.PurchasePrice = purchase

	if holding.CurrentPrice, err = parseNullDecimal(currentStr, "current_price"); err != nil {
		return nil, err
	}
	if holding.PredictedPrice, err = parseNullDecimal(predictedStr, "predicted_price"); err != nil {
		return nil, err
	}

	return &holding, nil
}

// nullableDecimal converts an optional decimal to a driver-friendly value
func nullableDecimal(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return d.String()
}

// parseNullDecimal parses a nullable DECIMAL column
func parseNullDecimal(value sql.NullString, column string) (*decimal.Decimal, error) {
	if !value.Valid {
		return nil, nil
	}

	parsed, err := decimal.NewFromString(value.String)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return &parsed, nil
}
