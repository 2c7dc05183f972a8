package repository

import (
	"context"

	"github.com/MateoKaloshi/MotoLine/internal/domain/entity"
)

type CreateSaleParams struct {
	BikeID   string
	BuyerID  string
	SellerID string
	Price    float64
	Notes    string
}

type SaleRepository interface {
	Create(ctx context.Context, params CreateSaleParams) (*entity.Sale, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]entity.Sale, error)
}
