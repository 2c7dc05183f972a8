package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MateoKaloshi/MotoLine/internal/mailer"
	"github.com/MateoKaloshi/MotoLine/internal/platform/logger"
	"github.com/MateoKaloshi/MotoLine/internal/repository"
)

// PurchaseResult carries the updated listing together with the ledger
// entry the purchase produced.
type PurchaseResult struct {
	Bike BikeView `json:"bike"`
	Sale SaleView `json:"soldEntry"`
}

type SaleService interface {
	// Purchase marks a bike as sold on behalf of buyerID and records
	// the sale. Price overrides the listing price when non-nil.
	Purchase(ctx context.Context, bikeID, buyerID string, price *float64, notes string) (*PurchaseResult, error)
}

type saleService struct {
	bikes  repository.BikeRepository
	sales  repository.SaleRepository
	users  repository.UserRepository
	events EventPublisher
	mail   mailer.Mailer
	log    logger.Logger
}

func NewSaleService(
	bikes repository.BikeRepository,
	sales repository.SaleRepository,
	users repository.UserRepository,
	events EventPublisher,
	mail mailer.Mailer,
	log logger.Logger,
) SaleService {
	return &saleService{
		bikes:  bikes,
		sales:  sales,
		users:  users,
		events: events,
		mail:   mail,
		log:    log,
	}
}

func (s *saleService) Purchase(ctx context.Context, bikeID, buyerID string, price *float64, notes string) (*PurchaseResult, error) {
	if !primitive.IsValidObjectID(bikeID) {
		return nil, ErrInvalidBikeID
	}

	bike, err := s.bikes.GetByID(ctx, bikeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBikeNotFound
		}
		return nil, fmt.Errorf("get bike: %w", err)
	}

	if bike.OwnerID != "" && bike.OwnerID == buyerID {
		return nil, ErrOwnPurchase
	}
	if bike.IsSold {
		return nil, ErrAlreadySold
	}

	// The conditional write is what actually decides the race between
	// two concurrent buyers; the IsSold check above only short-circuits
	// the common case.
	updated, err := s.bikes.MarkSold(ctx, bikeID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadySold):
			return nil, ErrAlreadySold
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrBikeNotFound
		default:
			return nil, fmt.Errorf("mark sold: %w", err)
		}
	}

	salePrice := updated.Price
	if price != nil {
		salePrice = *price
	}

	sale, err := s.sales.Create(ctx, repository.CreateSaleParams{
		BikeID:   updated.ID,
		BuyerID:  buyerID,
		SellerID: updated.OwnerID,
		Price:    salePrice,
		Notes:    notes,
	})
	if err != nil {
		return nil, fmt.Errorf("record sale: %w", err)
	}

	if s.events != nil {
		if err := s.events.PublishBikeSold(ctx, sale); err != nil {
			s.log.Warnf("failed to publish bike.sold for %s: %v", sale.BikeID, err)
		}
	}
	s.notifySeller(ctx, updated.OwnerID, fmt.Sprintf("%s %s", updated.Brand, updated.Model), salePrice)

	return &PurchaseResult{
		Bike: toBikeView(updated, nil),
		Sale: toSaleView(sale),
	}, nil
}

// notifySeller emails the seller about the sale. Failures are logged
// and never surface to the buyer.
func (s *saleService) notifySeller(ctx context.Context, sellerID, bikeTitle string, price float64) {
	if s.mail == nil || sellerID == "" {
		return
	}
	seller, err := s.users.GetByID(ctx, sellerID)
	if err != nil || seller.Email == "" {
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			s.log.Warnf("failed to load seller %s for sale notification: %v", sellerID, err)
		}
		return
	}
	if err := s.mail.SendBikeSoldEmail(seller.Email, bikeTitle, price); err != nil {
		s.log.Warnf("failed to send sale notification to %s: %v", seller.Email, err)
	}
}
