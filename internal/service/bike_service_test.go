package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/MateoKaloshi/MotoLine/internal/domain/entity"
	"github.com/MateoKaloshi/MotoLine/internal/platform/logger"
	"github.com/MateoKaloshi/MotoLine/internal/repository"
)

const testBaseURL = "http://localhost:8080"

func newBikeServiceForTest(bikes *MockBikeRepository, images *MockImageRepository, sales *MockSaleRepository, users *MockUserRepository, events *MockEventPublisher) BikeService {
	var ev EventPublisher
	if events != nil {
		ev = events
	}
	return NewBikeService(bikes, images, sales, users, ev, testBaseURL, logger.NewNop())
}

func TestCreateBike_MissingFields(t *testing.T) {
	svc := newBikeServiceForTest(new(MockBikeRepository), new(MockImageRepository), new(MockSaleRepository), new(MockUserRepository), nil)

	_, err := svc.Create(context.Background(), testSellerID, CreateBikeInput{
		Brand: "Honda",
		Model: "CB500F",
		// year, engine, price, location missing
	})

	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestCreateBike_Success(t *testing.T) {
	bikes := new(MockBikeRepository)
	events := new(MockEventPublisher)

	created := availableBike()
	bikes.On("Create", mock.Anything, mock.MatchedBy(func(p repository.CreateBikeParams) bool {
		return p.Brand == "Yamaha" && p.OwnerID == testSellerID
	})).Return(created, nil)
	events.On("PublishBikeCreated", mock.Anything, created).Return(nil)

	svc := newBikeServiceForTest(bikes, new(MockImageRepository), new(MockSaleRepository), new(MockUserRepository), events)

	view, err := svc.Create(context.Background(), testSellerID, CreateBikeInput{
		Brand:          "Yamaha",
		Model:          "MT-07",
		ProductionYear: 2021,
		Engine:         "689cc",
		Price:          6500,
		Location:       "Tirana",
	})

	assert.NoError(t, err)
	assert.Equal(t, testBikeID, view.ID)
	assert.Empty(t, view.Images)
	assert.Nil(t, view.FirstImageURL)
	bikes.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestListAvailable_DropsBikesWithoutImages(t *testing.T) {
	withImage := *availableBike()
	withoutImage := *availableBike()
	withoutImage.ID = "64a000000000000000000010"

	bikes := new(MockBikeRepository)
	images := new(MockImageRepository)

	bikes.On("List", mock.Anything, mock.MatchedBy(func(p repository.ListBikesParams) bool {
		return p.ExcludeSold && p.Page == 1 && p.Limit == 20
	})).Return(&repository.ListBikesResult{
		Bikes:      []entity.Bike{withImage, withoutImage},
		TotalCount: 2,
		Page:       1,
		Limit:      20,
		TotalPages: 1,
	}, nil)
	images.On("ListByBikeIDs", mock.Anything, []string{withImage.ID, withoutImage.ID}).Return([]entity.Image{
		{ID: "img1", BikeID: withImage.ID, URL: "http://cdn/img1.jpg"},
	}, nil)

	svc := newBikeServiceForTest(bikes, images, new(MockSaleRepository), new(MockUserRepository), nil)

	feed, err := svc.ListAvailable(context.Background(), 0, 0)

	assert.NoError(t, err)
	// Totals count every match; only bikes with a gallery are shown.
	assert.Equal(t, int64(2), feed.Total)
	assert.Len(t, feed.Bikes, 1)
	assert.Equal(t, withImage.ID, feed.Bikes[0].ID)
	assert.NotNil(t, feed.Bikes[0].FirstImageURL)
	assert.Equal(t, "http://cdn/img1.jpg", *feed.Bikes[0].FirstImageURL)
}

func TestListAvailable_ClampsLimit(t *testing.T) {
	bikes := new(MockBikeRepository)
	images := new(MockImageRepository)

	bikes.On("List", mock.Anything, mock.MatchedBy(func(p repository.ListBikesParams) bool {
		return p.Page == 1 && p.Limit == 100
	})).Return(&repository.ListBikesResult{Page: 1, Limit: 100}, nil)

	svc := newBikeServiceForTest(bikes, images, new(MockSaleRepository), new(MockUserRepository), nil)

	_, err := svc.ListAvailable(context.Background(), -3, 5000)

	assert.NoError(t, err)
	bikes.AssertExpectations(t)
}

func TestSearch_NullQueryMeansNoFilter(t *testing.T) {
	for _, q := range []string{"", "null", "undefined", "  "} {
		bikes := new(MockBikeRepository)
		bikes.On("List", mock.Anything, mock.MatchedBy(func(p repository.ListBikesParams) bool {
			return p.Query == ""
		})).Return(&repository.ListBikesResult{Page: 1, Limit: 20}, nil)

		svc := newBikeServiceForTest(bikes, new(MockImageRepository), new(MockSaleRepository), new(MockUserRepository), nil)

		_, err := svc.Search(context.Background(), q, 1, 20)

		assert.NoError(t, err, "query %q", q)
		bikes.AssertExpectations(t)
	}
}

func TestListByBrand_KeepsImagelessListings(t *testing.T) {
	bare := *availableBike()

	bikes := new(MockBikeRepository)
	images := new(MockImageRepository)

	bikes.On("List", mock.Anything, mock.MatchedBy(func(p repository.ListBikesParams) bool {
		return p.Brand == "Yamaha" && p.ExcludeSold
	})).Return(&repository.ListBikesResult{
		Bikes:      []entity.Bike{bare},
		TotalCount: 1,
		Page:       1,
		Limit:      20,
		TotalPages: 1,
	}, nil)
	images.On("ListByBikeIDs", mock.Anything, []string{bare.ID}).Return([]entity.Image{}, nil)

	svc := newBikeServiceForTest(bikes, images, new(MockSaleRepository), new(MockUserRepository), nil)

	feed, err := svc.ListByBrand(context.Background(), "Yamaha", 1, 20)

	assert.NoError(t, err)
	assert.Len(t, feed.Bikes, 1)
	assert.Empty(t, feed.Bikes[0].Images)
}

func TestListByBrand_RequiresBrand(t *testing.T) {
	svc := newBikeServiceForTest(new(MockBikeRepository), new(MockImageRepository), new(MockSaleRepository), new(MockUserRepository), nil)

	_, err := svc.ListByBrand(context.Background(), "", 1, 20)

	assert.ErrorIs(t, err, ErrBrandRequired)
}

func TestGetByID_InvalidID(t *testing.T) {
	svc := newBikeServiceForTest(new(MockBikeRepository), new(MockImageRepository), new(MockSaleRepository), new(MockUserRepository), nil)

	_, err := svc.GetByID(context.Background(), "abc")

	assert.ErrorIs(t, err, ErrInvalidBikeID)
}

func TestGetByID_AttachesOwnerContact(t *testing.T) {
	bikes := new(MockBikeRepository)
	images := new(MockImageRepository)
	users := new(MockUserRepository)

	bikes.On("GetByID", mock.Anything, testBikeID).Return(availableBike(), nil)
	images.On("ListByBikeIDs", mock.Anything, []string{testBikeID}).Return([]entity.Image{
		{ID: "img1", BikeID: testBikeID, Path: "uploads/a.jpg", Filename: "a.jpg"},
	}, nil)
	users.On("GetByID", mock.Anything, testSellerID).Return(&entity.User{
		ID:          testSellerID,
		FirstName:   "Mateo",
		Email:       "seller@example.com",
		PhoneNumber: "+355001122",
	}, nil)

	svc := newBikeServiceForTest(bikes, images, new(MockSaleRepository), users, nil)

	detail, err := svc.GetByID(context.Background(), testBikeID)

	assert.NoError(t, err)
	assert.NotNil(t, detail.Owner)
	assert.Equal(t, "seller@example.com", detail.Owner.Email)
	assert.Equal(t, testBaseURL+"/uploads/a.jpg", detail.Images[0].URL)
}

func TestGetByID_MissingOwnerDoesNotFail(t *testing.T) {
	bikes := new(MockBikeRepository)
	images := new(MockImageRepository)
	users := new(MockUserRepository)

	bikes.On("GetByID", mock.Anything, testBikeID).Return(availableBike(), nil)
	images.On("ListByBikeIDs", mock.Anything, []string{testBikeID}).Return([]entity.Image{}, nil)
	users.On("GetByID", mock.Anything, testSellerID).Return(nil, repository.ErrNotFound)

	svc := newBikeServiceForTest(bikes, images, new(MockSaleRepository), users, nil)

	detail, err := svc.GetByID(context.Background(), testBikeID)

	assert.NoError(t, err)
	assert.Nil(t, detail.Owner)
}

func TestMyBikes_CombinesPostedAndBought(t *testing.T) {
	posted := *availableBike()
	boughtID := "64a000000000000000000020"
	bought := *availableBike()
	bought.ID = boughtID
	bought.OwnerID = "64a000000000000000000030"
	bought.IsSold = true

	bikes := new(MockBikeRepository)
	images := new(MockImageRepository)
	sales := new(MockSaleRepository)

	bikes.On("List", mock.Anything, mock.MatchedBy(func(p repository.ListBikesParams) bool {
		return p.OwnerID == testSellerID && !p.ExcludeSold
	})).Return(&repository.ListBikesResult{
		Bikes:      []entity.Bike{posted},
		TotalCount: 1,
		Page:       1,
		Limit:      20,
		TotalPages: 1,
	}, nil)
	sales.On("ListByBuyer", mock.Anything, testSellerID).Return([]entity.Sale{
		{ID: "s1", BikeID: boughtID, BuyerID: testSellerID, Price: 4200, SoldDate: time.Now()},
	}, nil)
	bikes.On("GetByIDs", mock.Anything, []string{boughtID}).Return([]entity.Bike{bought}, nil)
	images.On("ListByBikeIDs", mock.Anything, mock.Anything).Return([]entity.Image{}, nil)

	svc := newBikeServiceForTest(bikes, images, sales, new(MockUserRepository), nil)

	view, err := svc.MyBikes(context.Background(), testSellerID, 1, 20)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), view.Posted.Total)
	assert.Len(t, view.Posted.Bikes, 1)
	assert.Equal(t, 1, view.Bought.Total)
	assert.Len(t, view.Bought.Bikes[0].SoldRecords, 1)
	assert.Equal(t, 4200.0, view.Bought.Bikes[0].SoldRecords[0].Price)
}

func TestUpdateBike_NotOwner(t *testing.T) {
	bikes := new(MockBikeRepository)
	bikes.On("GetByID", mock.Anything, testBikeID).Return(availableBike(), nil)

	svc := newBikeServiceForTest(bikes, new(MockImageRepository), new(MockSaleRepository), new(MockUserRepository), nil)

	price := 100.0
	_, err := svc.Update(context.Background(), testBuyerID, testBikeID, UpdateBikeInput{Price: &price})

	assert.ErrorIs(t, err, ErrForbidden)
	bikes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteBike_OwnerOnly(t *testing.T) {
	bikes := new(MockBikeRepository)
	bikes.On("GetByID", mock.Anything, testBikeID).Return(availableBike(), nil)
	bikes.On("Delete", mock.Anything, testBikeID).Return(nil)

	svc := newBikeServiceForTest(bikes, new(MockImageRepository), new(MockSaleRepository), new(MockUserRepository), nil)

	assert.NoError(t, svc.Delete(context.Background(), testSellerID, testBikeID))

	err := svc.Delete(context.Background(), testBuyerID, testBikeID)
	assert.ErrorIs(t, err, ErrForbidden)
}
