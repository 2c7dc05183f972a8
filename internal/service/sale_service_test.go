package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/MateoKaloshi/MotoLine/internal/domain/entity"
	"github.com/MateoKaloshi/MotoLine/internal/mailer"
	"github.com/MateoKaloshi/MotoLine/internal/platform/logger"
	"github.com/MateoKaloshi/MotoLine/internal/repository"
)

const (
	testBikeID   = "64a000000000000000000001"
	testSellerID = "64a000000000000000000002"
	testBuyerID  = "64a000000000000000000003"
)

func newSaleServiceForTest(bikes *MockBikeRepository, sales *MockSaleRepository, users *MockUserRepository, events *MockEventPublisher, mail *MockMailer) SaleService {
	// Typed nils must stay nil interfaces, or the service would treat
	// them as live collaborators.
	var ev EventPublisher
	if events != nil {
		ev = events
	}
	var ml mailer.Mailer
	if mail != nil {
		ml = mail
	}
	return NewSaleService(bikes, sales, users, ev, ml, logger.NewNop())
}

func availableBike() *entity.Bike {
	return &entity.Bike{
		ID:             testBikeID,
		Brand:          "Yamaha",
		Model:          "MT-07",
		ProductionYear: 2021,
		Engine:         "689cc",
		Price:          6500,
		Location:       "Tirana",
		OwnerID:        testSellerID,
		Published:      time.Now().Add(-24 * time.Hour),
	}
}

func TestPurchase_InvalidBikeID(t *testing.T) {
	svc := newSaleServiceForTest(new(MockBikeRepository), new(MockSaleRepository), new(MockUserRepository), nil, nil)

	_, err := svc.Purchase(context.Background(), "not-an-id", testBuyerID, nil, "")

	assert.ErrorIs(t, err, ErrInvalidBikeID)
}

func TestPurchase_BikeNotFound(t *testing.T) {
	bikes := new(MockBikeRepository)
	bikes.On("GetByID", mock.Anything, testBikeID).Return(nil, repository.ErrNotFound)

	svc := newSaleServiceForTest(bikes, new(MockSaleRepository), new(MockUserRepository), nil, nil)

	_, err := svc.Purchase(context.Background(), testBikeID, testBuyerID, nil, "")

	assert.ErrorIs(t, err, ErrBikeNotFound)
	bikes.AssertExpectations(t)
}

func TestPurchase_OwnBike(t *testing.T) {
	bikes := new(MockBikeRepository)
	sales := new(MockSaleRepository)
	bikes.On("GetByID", mock.Anything, testBikeID).Return(availableBike(), nil)

	svc := newSaleServiceForTest(bikes, sales, new(MockUserRepository), nil, nil)

	_, err := svc.Purchase(context.Background(), testBikeID, testSellerID, nil, "")

	assert.ErrorIs(t, err, ErrOwnPurchase)
	sales.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPurchase_AlreadySold(t *testing.T) {
	bike := availableBike()
	bike.IsSold = true

	bikes := new(MockBikeRepository)
	sales := new(MockSaleRepository)
	bikes.On("GetByID", mock.Anything, testBikeID).Return(bike, nil)

	svc := newSaleServiceForTest(bikes, sales, new(MockUserRepository), nil, nil)

	_, err := svc.Purchase(context.Background(), testBikeID, testBuyerID, nil, "")

	assert.ErrorIs(t, err, ErrAlreadySold)
	bikes.AssertNotCalled(t, "MarkSold", mock.Anything, mock.Anything)
	sales.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPurchase_LostRaceToOtherBuyer(t *testing.T) {
	bikes := new(MockBikeRepository)
	sales := new(MockSaleRepository)
	bikes.On("GetByID", mock.Anything, testBikeID).Return(availableBike(), nil)
	bikes.On("MarkSold", mock.Anything, testBikeID).Return(nil, repository.ErrAlreadySold)

	svc := newSaleServiceForTest(bikes, sales, new(MockUserRepository), nil, nil)

	_, err := svc.Purchase(context.Background(), testBikeID, testBuyerID, nil, "")

	assert.ErrorIs(t, err, ErrAlreadySold)
	sales.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPurchase_Success(t *testing.T) {
	sold := availableBike()
	sold.IsSold = true

	bikes := new(MockBikeRepository)
	sales := new(MockSaleRepository)
	users := new(MockUserRepository)
	events := new(MockEventPublisher)
	mail := new(MockMailer)

	bikes.On("GetByID", mock.Anything, testBikeID).Return(availableBike(), nil)
	bikes.On("MarkSold", mock.Anything, testBikeID).Return(sold, nil)
	sales.On("Create", mock.Anything, repository.CreateSaleParams{
		BikeID:   testBikeID,
		BuyerID:  testBuyerID,
		SellerID: testSellerID,
		Price:    6500,
		Notes:    "cash deal",
	}).Return(&entity.Sale{
		ID:       "64a000000000000000000099",
		BikeID:   testBikeID,
		BuyerID:  testBuyerID,
		SellerID: testSellerID,
		Price:    6500,
		Notes:    "cash deal",
		SoldDate: time.Now(),
	}, nil)
	users.On("GetByID", mock.Anything, testSellerID).Return(&entity.User{
		ID:    testSellerID,
		Email: "seller@example.com",
	}, nil)
	events.On("PublishBikeSold", mock.Anything, mock.Anything).Return(nil)
	mail.On("SendBikeSoldEmail", "seller@example.com", "Yamaha MT-07", 6500.0).Return(nil)

	svc := newSaleServiceForTest(bikes, sales, users, events, mail)

	result, err := svc.Purchase(context.Background(), testBikeID, testBuyerID, nil, "cash deal")

	assert.NoError(t, err)
	assert.True(t, result.Bike.IsSold)
	assert.Equal(t, testBuyerID, result.Sale.BuyerID)
	assert.Equal(t, testSellerID, result.Sale.SellerID)
	assert.Equal(t, 6500.0, result.Sale.Price)
	bikes.AssertExpectations(t)
	sales.AssertExpectations(t)
	events.AssertExpectations(t)
	mail.AssertExpectations(t)
}

func TestPurchase_PriceOverride(t *testing.T) {
	sold := availableBike()
	sold.IsSold = true

	bikes := new(MockBikeRepository)
	sales := new(MockSaleRepository)
	users := new(MockUserRepository)

	bikes.On("GetByID", mock.Anything, testBikeID).Return(availableBike(), nil)
	bikes.On("MarkSold", mock.Anything, testBikeID).Return(sold, nil)
	sales.On("Create", mock.Anything, mock.MatchedBy(func(p repository.CreateSaleParams) bool {
		return p.Price == 6000
	})).Return(&entity.Sale{BikeID: testBikeID, Price: 6000}, nil)
	users.On("GetByID", mock.Anything, testSellerID).Return(nil, repository.ErrNotFound)

	svc := newSaleServiceForTest(bikes, sales, users, nil, nil)

	price := 6000.0
	result, err := svc.Purchase(context.Background(), testBikeID, testBuyerID, &price, "")

	assert.NoError(t, err)
	assert.Equal(t, 6000.0, result.Sale.Price)
	sales.AssertExpectations(t)
}

func TestPurchase_EmailFailureDoesNotFailSale(t *testing.T) {
	sold := availableBike()
	sold.IsSold = true

	bikes := new(MockBikeRepository)
	sales := new(MockSaleRepository)
	users := new(MockUserRepository)
	mail := new(MockMailer)

	bikes.On("GetByID", mock.Anything, testBikeID).Return(availableBike(), nil)
	bikes.On("MarkSold", mock.Anything, testBikeID).Return(sold, nil)
	sales.On("Create", mock.Anything, mock.Anything).Return(&entity.Sale{BikeID: testBikeID, Price: 6500}, nil)
	users.On("GetByID", mock.Anything, testSellerID).Return(&entity.User{ID: testSellerID, Email: "seller@example.com"}, nil)
	mail.On("SendBikeSoldEmail", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	svc := newSaleServiceForTest(bikes, sales, users, nil, mail)

	_, err := svc.Purchase(context.Background(), testBikeID, testBuyerID, nil, "")

	assert.NoError(t, err)
}
