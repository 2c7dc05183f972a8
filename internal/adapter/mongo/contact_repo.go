package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/MateoKaloshi/MotoLine/internal/app/config"
	"github.com/MateoKaloshi/MotoLine/internal/domain/entity"
	"github.com/MateoKaloshi/MotoLine/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const contactStatusNew = "new"

type contactDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	LastName  string             `bson:"last_name"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone,omitempty"`
	Subject   string             `bson:"subject,omitempty"`
	Message   string             `bson:"message"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d *contactDoc) toEntity() *entity.ContactMessage {
	return &entity.ContactMessage{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		LastName:  d.LastName,
		Email:     d.Email,
		Phone:     d.Phone,
		Subject:   d.Subject,
		Message:   d.Message,
		Status:    d.Status,
		CreatedAt: d.CreatedAt,
	}
}

type contactRepository struct {
	collection *mongo.Collection
}

func NewContactRepository(client *mongo.Client, cfg config.MongoDBConfig) repository.ContactRepository {
	return &contactRepository{
		collection: client.Database(cfg.Database).Collection(contactCollectionName),
	}
}

func (r *contactRepository) Create(ctx context.Context, params repository.CreateContactParams) (*entity.ContactMessage, error) {
	doc := contactDoc{
		Name:      params.Name,
		LastName:  params.LastName,
		Email:     params.Email,
		Phone:     params.Phone,
		Subject:   params.Subject,
		Message:   params.Message,
		Status:    contactStatusNew,
		CreatedAt: time.Now().UTC(),
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact message: %w", err)
	}

	objectID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to convert inserted ID to ObjectID")
	}
	doc.ID = objectID
	return doc.toEntity(), nil
}
