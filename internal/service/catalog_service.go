package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/MateoKaloshi/MotoLine/internal/platform/logger"
	"github.com/MateoKaloshi/MotoLine/internal/repository"
)

type CatalogService interface {
	Models(ctx context.Context, brand string) ([]string, error)
	Engines(ctx context.Context, brand, model string) ([]string, error)
}

type catalogService struct {
	catalog repository.CatalogRepository
	log     logger.Logger
}

func NewCatalogService(catalog repository.CatalogRepository, log logger.Logger) CatalogService {
	return &catalogService{catalog: catalog, log: log}
}

func (s *catalogService) Models(ctx context.Context, brand string) ([]string, error) {
	if brand == "" {
		return nil, ErrBrandRequired
	}
	models, err := s.catalog.ModelsForBrand(ctx, brand)
	if err != nil {
		return nil, fmt.Errorf("list models for %s: %w", brand, err)
	}
	sort.Strings(models)
	return models, nil
}

func (s *catalogService) Engines(ctx context.Context, brand, model string) ([]string, error) {
	if brand == "" || model == "" {
		return nil, ErrBrandAndModel
	}
	engines, err := s.catalog.EnginesForModel(ctx, brand, model)
	if err != nil {
		return nil, fmt.Errorf("list engines for %s %s: %w", brand, model, err)
	}
	sort.Strings(engines)
	return engines, nil
}
