package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/MateoKaloshi/MotoLine/internal/domain/entity"
	"github.com/MateoKaloshi/MotoLine/internal/repository"
)

type MockBikeRepository struct {
	mock.Mock
}

func (m *MockBikeRepository) Create(ctx context.Context, params repository.CreateBikeParams) (*entity.Bike, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Bike), args.Error(1)
}

func (m *MockBikeRepository) GetByID(ctx context.Context, bikeID string) (*entity.Bike, error) {
	args := m.Called(ctx, bikeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Bike), args.Error(1)
}

func (m *MockBikeRepository) GetByIDs(ctx context.Context, bikeIDs []string) ([]entity.Bike, error) {
	args := m.Called(ctx, bikeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Bike), args.Error(1)
}

func (m *MockBikeRepository) Update(ctx context.Context, params repository.UpdateBikeParams) (*entity.Bike, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Bike), args.Error(1)
}

func (m *MockBikeRepository) Delete(ctx context.Context, bikeID string) error {
	args := m.Called(ctx, bikeID)
	return args.Error(0)
}

func (m *MockBikeRepository) List(ctx context.Context, params repository.ListBikesParams) (*repository.ListBikesResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ListBikesResult), args.Error(1)
}

func (m *MockBikeRepository) MarkSold(ctx context.Context, bikeID string) (*entity.Bike, error) {
	args := m.Called(ctx, bikeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Bike), args.Error(1)
}

type MockImageRepository struct {
	mock.Mock
}

func (m *MockImageRepository) Create(ctx context.Context, params repository.CreateImageParams) (*entity.Image, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Image), args.Error(1)
}

func (m *MockImageRepository) ListByBikeIDs(ctx context.Context, bikeIDs []string) ([]entity.Image, error) {
	args := m.Called(ctx, bikeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Image), args.Error(1)
}

func (m *MockImageRepository) DeleteByBikeAndFile(ctx context.Context, bikeID, fragment string) (int64, error) {
	args := m.Called(ctx, bikeID, fragment)
	return args.Get(0).(int64), args.Error(1)
}

type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) Create(ctx context.Context, params repository.CreateSaleParams) (*entity.Sale, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Sale), args.Error(1)
}

func (m *MockSaleRepository) ListByBuyer(ctx context.Context, buyerID string) ([]entity.Sale, error) {
	args := m.Called(ctx, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Sale), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, userID string) (*entity.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, userID string, params repository.UpdateProfileParams) (*entity.User, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateEmail(ctx context.Context, userID, email string) (*entity.User, error) {
	args := m.Called(ctx, userID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, params repository.CreateContactParams) (*entity.ContactMessage, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ContactMessage), args.Error(1)
}

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ModelsForBrand(ctx context.Context, brand string) ([]string, error) {
	args := m.Called(ctx, brand)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCatalogRepository) EnginesForModel(ctx context.Context, brand, model string) ([]string, error) {
	args := m.Called(ctx, brand, model)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockRevokedTokenRepository struct {
	mock.Mock
}

func (m *MockRevokedTokenRepository) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	args := m.Called(ctx, token, ttl)
	return args.Error(0)
}

func (m *MockRevokedTokenRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishBikeCreated(ctx context.Context, bike *entity.Bike) error {
	args := m.Called(ctx, bike)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishBikeSold(ctx context.Context, sale *entity.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendBikeSoldEmail(toEmail, bikeTitle string, price float64) error {
	args := m.Called(toEmail, bikeTitle, price)
	return args.Error(0)
}

type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Upload(ctx context.Context, originalFileName, contentType string, data []byte) (string, string, error) {
	args := m.Called(ctx, originalFileName, contentType, data)
	return args.String(0), args.String(1), args.Error(2)
}
