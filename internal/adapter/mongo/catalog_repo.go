package mongo

import (
	"context"
	"fmt"

	"github.com/MateoKaloshi/MotoLine/internal/app/config"
	"github.com/MateoKaloshi/MotoLine/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type catalogRepository struct {
	collection *mongo.Collection
}

func NewCatalogRepository(client *mongo.Client, cfg config.MongoDBConfig) repository.CatalogRepository {
	return &catalogRepository{
		collection: client.Database(cfg.Database).Collection(catalogCollectionName),
	}
}

func (r *catalogRepository) ModelsForBrand(ctx context.Context, brand string) ([]string, error) {
	return r.distinct(ctx, "model", bson.M{"brand": brand})
}

func (r *catalogRepository) EnginesForModel(ctx context.Context, brand, model string) ([]string, error) {
	return r.distinct(ctx, "engine", bson.M{"brand": brand, "model": model})
}

func (r *catalogRepository) distinct(ctx context.Context, field string, filter bson.M) ([]string, error) {
	values, err := r.collection.Distinct(ctx, field, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to read distinct %s values: %w", field, err)
	}

	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}
