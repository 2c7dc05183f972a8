package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/MateoKaloshi/MotoLine/internal/app/config"
	"github.com/MateoKaloshi/MotoLine/internal/domain/entity"
	"github.com/MateoKaloshi/MotoLine/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bikeRepository struct {
	collection *mongo.Collection
}

func NewBikeRepository(client *mongo.Client, cfg config.MongoDBConfig) repository.BikeRepository {
	return &bikeRepository{
		collection: client.Database(cfg.Database).Collection(bikeCollectionName),
	}
}

func (r *bikeRepository) Create(ctx context.Context, params repository.CreateBikeParams) (*entity.Bike, error) {
	doc := bikeDoc{
		Brand:          params.Brand,
		Model:          params.Model,
		ProductionYear: params.ProductionYear,
		Engine:         params.Engine,
		Description:    params.Description,
		Price:          params.Price,
		Location:       params.Location,
		UserID:         userRef(params.OwnerID),
		IsSold:         params.IsSold,
		Published:      time.Now().UTC(),
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to create bike: %w", err)
	}

	objectID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to convert inserted ID to ObjectID")
	}
	doc.ID = objectID
	return doc.toEntity(), nil
}

func (r *bikeRepository) GetByID(ctx context.Context, bikeID string) (*entity.Bike, error) {
	objID, err := primitive.ObjectIDFromHex(bikeID)
	if err != nil {
		return nil, fmt.Errorf("invalid bike ID format: %w", repository.ErrInvalidID)
	}

	var doc bikeDoc
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get bike by ID %s: %w", bikeID, err)
	}
	return doc.toEntity(), nil
}

func (r *bikeRepository) GetByIDs(ctx context.Context, bikeIDs []string) ([]entity.Bike, error) {
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

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": objIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to get bikes by IDs: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bikeDoc
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode bikes: %w", err)
	}

	bikes := make([]entity.Bike, len(docs))
	for i := range docs {
		bikes[i] = *docs[i].toEntity()
	}
	return bikes, nil
}

func (r *bikeRepository) Update(ctx context.Context, params repository.UpdateBikeParams) (*entity.Bike, error) {
	objID, err := primitive.ObjectIDFromHex(params.BikeID)
	if err != nil {
		return nil, fmt.Errorf("invalid bike ID format: %w", repository.ErrInvalidID)
	}

	set := bson.M{}
	if params.Price != nil {
		set["price"] = *params.Price
	}
	if params.Location != nil {
		set["location"] = *params.Location
	}
	if params.Description != nil {
		set["description"] = *params.Description
	}
	if len(set) == 0 {
		return r.GetByID(ctx, params.BikeID)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc bikeDoc
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update bike %s: %w", params.BikeID, err)
	}
	return doc.toEntity(), nil
}

func (r *bikeRepository) Delete(ctx context.Context, bikeID string) error {
	objID, err := primitive.ObjectIDFromHex(bikeID)
	if err != nil {
		return fmt.Errorf("invalid bike ID format: %w", repository.ErrInvalidID)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete bike %s: %w", bikeID, err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *bikeRepository) List(ctx context.Context, params repository.ListBikesParams) (*repository.ListBikesResult, error) {
	filter := bson.M{}
	if params.ExcludeSold {
		filter["is_sold"] = bson.M{"$ne": true}
	}
	if params.Brand != "" {
		filter["brand"] = params.Brand
	}
	if params.OwnerID != "" {
		filter["user_id"] = bson.M{"$in": userRefForms(params.OwnerID)}
	}
	if params.Query != "" {
		pattern := regexp.QuoteMeta(params.Query)
		re := primitive.Regex{Pattern: pattern, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"brand": re},
			bson.M{"model": re},
			bson.M{"$expr": bson.M{"$regexMatch": bson.M{
				"input":   bson.M{"$concat": bson.A{"$brand", " ", "$model"}},
				"regex":   pattern,
				"options": "i",
			}}},
		}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "published", Value: -1}})
	if params.Limit > 0 {
		page := params.Page
		if page <= 0 {
			page = 1
		}
		findOptions.SetSkip(int64((page - 1) * params.Limit))
		findOptions.SetLimit(int64(params.Limit))
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list bikes: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bikeDoc
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode listed bikes: %w", err)
	}

	totalCount, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count bikes: %w", err)
	}

	bikes := make([]entity.Bike, len(docs))
	for i := range docs {
		bikes[i] = *docs[i].toEntity()
	}

	totalPages := 0
	if params.Limit > 0 {
		totalPages = (int(totalCount) + params.Limit - 1) / params.Limit
	} else if totalCount > 0 {
		totalPages = 1
	}

	return &repository.ListBikesResult{
		Bikes:      bikes,
		TotalCount: totalCount,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: totalPages,
	}, nil
}

func (r *bikeRepository) MarkSold(ctx context.Context, bikeID string) (*entity.Bike, error) {
	objID, err := primitive.ObjectIDFromHex(bikeID)
	if err != nil {
		return nil, fmt.Errorf("invalid bike ID format: %w", repository.ErrInvalidID)
	}

	// Conditional write: of two concurrent purchases only one can
	// match while is_sold is still unset.
	filter := bson.M{
		"_id":     objID,
		"is_sold": bson.M{"$ne": true},
	}
	update := bson.M{"$set": bson.M{"is_sold": true}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc bikeDoc
	err = r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		return doc.toEntity(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to mark bike %s as sold: %w", bikeID, err)
	}

	// Zero matches: distinguish a missing bike from a lost race.
	var existing bikeDoc
	errFind := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&existing)
	if errors.Is(errFind, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if errFind != nil {
		return nil, fmt.Errorf("failed to recheck bike %s: %w", bikeID, errFind)
	}
	return nil, repository.ErrAlreadySold
}

// userRefForms returns every stored shape an owner reference can take
// for an id, so filters match both legacy and current documents.
func userRefForms(id string) bson.A {
	forms := bson.A{id}
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		forms = append(forms, oid)
	}
	return forms
}
