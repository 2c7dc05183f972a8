package mongo

import (
	"context"
	"fmt"
	"regexp"

	"github.com/MateoKaloshi/MotoLine/internal/app/config"
	"github.com/MateoKaloshi/MotoLine/internal/domain/entity"
	"github.com/MateoKaloshi/MotoLine/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type imageRepository struct {
	collection *mongo.Collection
}

func NewImageRepository(client *mongo.Client, cfg config.MongoDBConfig) repository.ImageRepository {
	return &imageRepository{
		collection: client.Database(cfg.Database).Collection(imageCollectionName),
	}
}

func (r *imageRepository) Create(ctx context.Context, params repository.CreateImageParams) (*entity.Image, error) {
	bikeObjID, err := primitive.ObjectIDFromHex(params.BikeID)
	if err != nil {
		return nil, fmt.Errorf("invalid bike ID format: %w", repository.ErrInvalidID)
	}

	doc := imageDoc{
		BikeID:   bikeObjID,
		URL:      params.URL,
		Path:     params.Path,
		MimeType: params.MimeType,
		Filename: params.Filename,
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to create image: %w", err)
	}

	objectID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to convert inserted ID to ObjectID")
	}
	doc.ID = objectID
	return doc.toEntity(), nil
}

func (r *imageRepository) ListByBikeIDs(ctx context.Context, bikeIDs []string) ([]entity.Image, error) {
	if len(bikeIDs) == 0 {
		return nil, nil
	}

	objIDs := make([]primitive.ObjectID, 0, len(bikeIDs))
	for _, id := range bikeIDs {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		objIDs = append(objIDs, objID)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"bike_id": bson.M{"$in": objIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []imageDoc
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode images: %w", err)
	}

	images := make([]entity.Image, len(docs))
	for i := range docs {
		images[i] = *docs[i].toEntity()
	}
	return images, nil
}

func (r *imageRepository) DeleteByBikeAndFile(ctx context.Context, bikeID, fragment string) (int64, error) {
	bikeObjID, err := primitive.ObjectIDFromHex(bikeID)
	if err != nil {
		return 0, fmt.Errorf("invalid bike ID format: %w", repository.ErrInvalidID)
	}

	re := primitive.Regex{Pattern: regexp.QuoteMeta(fragment)}
	filter := bson.M{
		"bike_id": bikeObjID,
		"$or": bson.A{
			bson.M{"url": re},
			bson.M{"path": re},
			bson.M{"filename": re},
		},
	}

	res, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete images for bike %s: %w", bikeID, err)
	}
	return res.DeletedCount, nil
}
