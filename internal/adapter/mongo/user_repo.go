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

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(client *mongo.Client, cfg config.MongoDBConfig) repository.UserRepository {
	return &userRepository{
		collection: client.Database(cfg.Database).Collection(userCollectionName),
	}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) (string, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		return "", fmt.Errorf("failed to check for existing email: %w", err)
	}
	if count > 0 {
		return "", repository.ErrAlreadyExists
	}

	doc := userDoc{
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		Password:    user.Password,
		PhoneNumber: user.PhoneNumber,
		Address:     user.Address,
		CreatedAt:   time.Now().UTC(),
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	objectID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to convert inserted ID to ObjectID")
	}
	return objectID.Hex(), nil
}

func (r *userRepository) GetByID(ctx context.Context, userID string) (*entity.User, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format: %w", repository.ErrInvalidID)
	}

	var doc userDoc
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", userID, err)
	}
	return doc.toEntity(), nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, userID string, params repository.UpdateProfileParams) (*entity.User, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format: %w", repository.ErrInvalidID)
	}

	set := bson.M{}
	if params.FirstName != nil {
		set["first_name"] = *params.FirstName
	}
	if params.LastName != nil {
		set["last_name"] = *params.LastName
	}
	if params.PhoneNumber != nil {
		set["phone_number"] = *params.PhoneNumber
	}
	if params.Address != nil {
		set["address"] = *params.Address
	}
	if len(set) == 0 {
		return r.GetByID(ctx, userID)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc userDoc
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update profile for %s: %w", userID, err)
	}
	return doc.toEntity(), nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID format: %w", repository.ErrInvalidID)
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"password": passwordHash}})
	if err != nil {
		return fmt.Errorf("failed to update password for %s: %w", userID, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRepository) UpdateEmail(ctx context.Context, userID, email string) (*entity.User, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format: %w", repository.ErrInvalidID)
	}

	// Duplicate check is case-insensitive since stored addresses vary
	// in casing.
	dupFilter := bson.M{
		"_id":   bson.M{"$ne": objID},
		"email": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(email) + "$", Options: "i"},
	}
	count, err := r.collection.CountDocuments(ctx, dupFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing email: %w", err)
	}
	if count > 0 {
		return nil, repository.ErrAlreadyExists
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc userDoc
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"email": email}}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update email for %s: %w", userID, err)
	}
	return doc.toEntity(), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var doc userDoc
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return doc.toEntity(), nil
}
