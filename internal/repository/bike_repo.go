package repository

import (
	"context"

	"github.com/MateoKaloshi/MotoLine/internal/domain/entity"
)

type CreateBikeParams struct {
	Brand          string
	Model          string
	ProductionYear int
	Engine         string
	Description    string
	Price          float64
	Location       string
	OwnerID        string
	IsSold         bool
}

type UpdateBikeParams struct {
	BikeID      string
	Price       *float64
	Location    *string
	Description *string
}

type ListBikesParams struct {
	OwnerID     string
	Brand       string
	Query       string // substring match over brand, model, "brand model"
	ExcludeSold bool
	Page        int
	Limit       int
}

type ListBikesResult struct {
	Bikes      []entity.Bike
	TotalCount int64
	Page       int
	Limit      int
	TotalPages int
}

type BikeRepository interface {
	Create(ctx context.Context, params CreateBikeParams) (*entity.Bike, error)
	GetByID(ctx context.Context, bikeID string) (*entity.Bike, error)
	GetByIDs(ctx context.Context, bikeIDs []string) ([]entity.Bike, error)
	// Update applies the mutable subset (price, location, description)
	// and returns the updated document.
	Update(ctx context.Context, params UpdateBikeParams) (*entity.Bike, error)
	Delete(ctx context.Context, bikeID string) error
	List(ctx context.Context, params ListBikesParams) (*ListBikesResult, error)
	// MarkSold flips is_sold false->true with a conditional write. It
	// returns ErrNotFound when the bike does not exist and
	// ErrAlreadySold when the flag was already set.
	MarkSold(ctx context.Context, bikeID string) (*entity.Bike, error)
}
