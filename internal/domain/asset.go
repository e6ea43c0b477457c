package domain

import (
	"errors"

	"github.com/google/uuid"
)

// AssetCategory represents the category of a tradable instrument
type AssetCategory string

const (
	AssetCategoryStock     AssetCategory = "STOCK"
	AssetCategoryCrypto    AssetCategory = "CRYPTO"
	AssetCategoryCommodity AssetCategory = "COMMODITY"
)

// Asset represents a tradable instrument in the domain layer
// Immutable once created; the catalog is maintained by the seeder or an
// external collaborator
type Asset struct {
	ID       uuid.UUID
	Symbol   string
	Name     string
	Category AssetCategory
}

// Validate ensures the asset adheres to domain rules
// Returns an error if validation fails
func (a *Asset) Validate() error {
	if a.Symbol == "" {
		return errors.New("asset symbol cannot be empty")
	}

	if a.Name == "" {
		return errors.New("asset name cannot be empty")
	}

	switch a.Category {
	case AssetCategoryStock, AssetCategoryCrypto, AssetCategoryCommodity:
		return nil
	default:
		return errors.New("unknown asset category")
	}
}
