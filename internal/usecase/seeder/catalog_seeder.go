package seeder

import (
	"context"

	"github.com/google/uuid"
	"github.com/trendfolio/trendfolio-backend/internal/domain"
)

// Fixed UUIDs for the demo asset catalog, so repeated startups never
// duplicate assets
var (
	CatalogAAPL = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	CatalogBTC  = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	CatalogETH  = uuid.MustParse("00000000-0000-0000-0000-000000000003")
	CatalogGLD  = uuid.MustParse("00000000-0000-0000-0000-000000000004")
	CatalogTSLA = uuid.MustParse("00000000-0000-0000-0000-000000000005")
)

// CatalogSeeder handles seeding of the demo asset catalog
type CatalogSeeder struct {
	repo domain.AssetRepository
}

// NewCatalogSeeder creates a new CatalogSeeder instance
func NewCatalogSeeder(repo domain.AssetRepository) *CatalogSeeder {
	return &CatalogSeeder{
		repo: repo,
	}
}

// Seed ensures all catalog assets exist in the database
// If an asset doesn't exist, it creates it
func (s *CatalogSeeder) Seed(ctx context.Context) error {
	catalog := []domain.Asset{
		{
			ID:       CatalogAAPL,
			Symbol:   "AAPL",
			Name:     "Apple Inc.",
			Category: domain.AssetCategoryStock,
		},
		{
			ID:       CatalogBTC,
			Symbol:   "BTC",
			Name:     "Bitcoin",
			Category: domain.AssetCategoryCrypto,
		},
		{
			ID:       CatalogETH,
			Symbol:   "ETH",
			Name:     "Ethereum",
			Category: domain.AssetCategoryCrypto,
		},
		{
			ID:       CatalogGLD,
			Symbol:   "GLD",
			Name:     "Gold Trust",
			Category: domain.AssetCategoryCommodity,
		},
		{
			ID:       CatalogTSLA,
			Symbol:   "TSLA",
			Name:     "Tesla, Inc.",
			Category: domain.AssetCategoryStock,
		},
	}

	for _, entry := range catalog {
		// Try to get the asset by ID
		_, err := s.repo.GetByID(ctx, entry.ID)
		if err != nil {
			// Asset doesn't exist, create it
			asset := entry

			// Validate before creating
			if err := asset.Validate(); err != nil {
				return err
			}

			if err := s.repo.Create(ctx, &asset); err != nil {
				return err
			}
		}
		// If asset exists, no action needed
	}

	return nil
}
