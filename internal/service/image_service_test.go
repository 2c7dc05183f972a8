package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/MateoKaloshi/MotoLine/internal/domain/entity"
	"github.com/MateoKaloshi/MotoLine/internal/platform/logger"
	"github.com/MateoKaloshi/MotoLine/internal/repository"
)

func newImageServiceForTest(images *MockImageRepository, bikes *MockBikeRepository, storage *MockFileStorage) ImageService {
	var fs FileStorage
	if storage != nil {
		fs = storage
	}
	return NewImageService(images, bikes, fs, testBaseURL, logger.NewNop())
}

func TestUpload_RequiresBikeID(t *testing.T) {
	svc := newImageServiceForTest(new(MockImageRepository), new(MockBikeRepository), nil)

	_, err := svc.Upload(context.Background(), "", []UploadFile{{Name: "a.jpg"}})

	assert.ErrorIs(t, err, ErrBikeIDRequired)
}

func TestUpload_RequiresFiles(t *testing.T) {
	svc := newImageServiceForTest(new(MockImageRepository), new(MockBikeRepository), nil)

	_, err := svc.Upload(context.Background(), testBikeID, nil)

	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestUpload_BikeMustExist(t *testing.T) {
	bikes := new(MockBikeRepository)
	bikes.On("GetByID", mock.Anything, testBikeID).Return(nil, repository.ErrNotFound)

	svc := newImageServiceForTest(new(MockImageRepository), bikes, new(MockFileStorage))

	_, err := svc.Upload(context.Background(), testBikeID, []UploadFile{{Name: "a.jpg"}})

	assert.ErrorIs(t, err, ErrBikeNotFound)
}

func TestUpload_StoresEveryFile(t *testing.T) {
	bikes := new(MockBikeRepository)
	images := new(MockImageRepository)
	storage := new(MockFileStorage)

	bikes.On("GetByID", mock.Anything, testBikeID).Return(availableBike(), nil)
	storage.On("Upload", mock.Anything, "front.jpg", "image/jpeg", []byte("aa")).
		Return("http://minio/bucket/uploads/u1.jpg", "uploads/u1.jpg", nil)
	storage.On("Upload", mock.Anything, "side.png", "image/png", []byte("bb")).
		Return("http://minio/bucket/uploads/u2.png", "uploads/u2.png", nil)
	images.On("Create", mock.Anything, mock.MatchedBy(func(p repository.CreateImageParams) bool {
		return p.BikeID == testBikeID && p.URL != "" && p.Path != ""
	})).Return(&entity.Image{ID: "img", BikeID: testBikeID, URL: "http://minio/bucket/uploads/u1.jpg"}, nil).Twice()

	svc := newImageServiceForTest(images, bikes, storage)

	uploaded, err := svc.Upload(context.Background(), testBikeID, []UploadFile{
		{Name: "front.jpg", MimeType: "image/jpeg", Data: []byte("aa")},
		{Name: "side.png", MimeType: "image/png", Data: []byte("bb")},
	})

	assert.NoError(t, err)
	assert.Len(t, uploaded, 2)
	storage.AssertExpectations(t)
	images.AssertExpectations(t)
}

func TestListForBike_InvalidIDReturnsEmpty(t *testing.T) {
	svc := newImageServiceForTest(new(MockImageRepository), new(MockBikeRepository), nil)

	refs, err := svc.ListForBike(context.Background(), "nope")

	assert.NoError(t, err)
	assert.Empty(t, refs)
	assert.NotNil(t, refs)
}

func TestListForBike_ResolvesURLs(t *testing.T) {
	images := new(MockImageRepository)
	images.On("ListByBikeIDs", mock.Anything, []string{testBikeID}).Return([]entity.Image{
		{ID: "i1", BikeID: testBikeID, URL: "http://cdn/x.jpg", Filename: "x.jpg"},
		{ID: "i2", BikeID: testBikeID, Path: `C:\tmp\uploads\y.jpg`},
	}, nil)

	svc := newImageServiceForTest(images, new(MockBikeRepository), nil)

	refs, err := svc.ListForBike(context.Background(), testBikeID)

	assert.NoError(t, err)
	assert.Len(t, refs, 2)
	assert.Equal(t, "http://cdn/x.jpg", refs[0].URL)
	assert.Equal(t, testBaseURL+"/uploads/y.jpg", refs[1].URL)
	assert.Nil(t, refs[1].Filename)
}

func TestRemoveImage_OwnerOnly(t *testing.T) {
	bikes := new(MockBikeRepository)
	images := new(MockImageRepository)
	bikes.On("GetByID", mock.Anything, testBikeID).Return(availableBike(), nil)

	svc := newImageServiceForTest(images, bikes, nil)

	_, err := svc.Remove(context.Background(), testBuyerID, testBikeID, "x.jpg")

	assert.ErrorIs(t, err, ErrForbidden)
	images.AssertNotCalled(t, "DeleteByBikeAndFile", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveImage_ReturnsRemovedCount(t *testing.T) {
	bikes := new(MockBikeRepository)
	images := new(MockImageRepository)
	bikes.On("GetByID", mock.Anything, testBikeID).Return(availableBike(), nil)
	images.On("DeleteByBikeAndFile", mock.Anything, testBikeID, "x.jpg").Return(int64(2), nil)

	svc := newImageServiceForTest(images, bikes, nil)

	removed, err := svc.Remove(context.Background(), testSellerID, testBikeID, "x.jpg")

	assert.NoError(t, err)
	assert.Equal(t, int64(2), removed)
}
