package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/MateoKaloshi/MotoLine/internal/app/config"
	"github.com/MateoKaloshi/MotoLine/internal/domain/entity"
	"github.com/MateoKaloshi/MotoLine/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type saleRepository struct {
	collection *mongo.Collection
}

func NewSaleRepository(client *mongo.Client, cfg config.MongoDBConfig) repository.SaleRepository {
	return &saleRepository{
		collection: client.Database(cfg.Database).Collection(saleCollectionName),
	}
}

func (r *saleRepository) Create(ctx context.Context, params repository.CreateSaleParams) (*entity.Sale, error) {
	bikeObjID, err := primitive.ObjectIDFromHex(params.BikeID)
	if err != nil {
		return nil, fmt.Errorf("invalid bike ID format: %w", repository.ErrInvalidID)
	}

	doc := saleDoc{
		BikeID:   bikeObjID,
		BuyerID:  userRef(params.BuyerID),
		SellerID: userRef(params.SellerID),
		Price:    params.Price,
		Notes:    params.Notes,
		SoldDate: time.Now().UTC(),
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to create sale entry: %w", err)
	}

	objectID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to convert inserted ID to ObjectID")
	}
	doc.ID = objectID
	return doc.toEntity(), nil
}

func (r *saleRepository) ListByBuyer(ctx context.Context, buyerID string) ([]entity.Sale, error) {
	filter := bson.M{"buyer_id": bson.M{"$in": userRefForms(buyerID)}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales for buyer %s: %w", buyerID, err)
	}
	defer cursor.Close(ctx)

	var docs []saleDoc
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode sales: %w", err)
	}

	sales := make([]entity.Sale, len(docs))
	for i := range docs {
		sales[i] = *docs[i].toEntity()
	}
	return sales, nil
}
