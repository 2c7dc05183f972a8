package repository

import "context"

// CatalogRepository reads the static brand/model/engine reference data
// that drives the client-side dropdowns.
type CatalogRepository interface {
	ModelsForBrand(ctx context.Context, brand string) ([]string, error)
	EnginesForModel(ctx context.Context, brand, model string) ([]string, error)
}
