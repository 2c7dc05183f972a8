package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MateoKaloshi/MotoLine/internal/platform/logger"
	"github.com/MateoKaloshi/MotoLine/internal/repository"
)

// FileStorage writes an uploaded file and returns its public URL and
// storage key.
type FileStorage interface {
	Upload(ctx context.Context, originalFileName, contentType string, data []byte) (string, string, error)
}

// UploadFile is one file received from a multipart request.
type UploadFile struct {
	Name     string
	MimeType string
	Data     []byte
}

// UploadedImageView is the per-file record returned after an upload.
type UploadedImageView struct {
	ID       string `json:"id"`
	BikeID   string `json:"bike_id"`
	URL      string `json:"url"`
	MimeType string `json:"mimeType,omitempty"`
}

type ImageService interface {
	Upload(ctx context.Context, bikeID string, files []UploadFile) ([]UploadedImageView, error)
	ListForBike(ctx context.Context, bikeID string) ([]ImageRef, error)
	// Remove deletes image records of an owned bike whose stored url,
	// path or filename contains fragment. Returns the removed count.
	Remove(ctx context.Context, userID, bikeID, fragment string) (int64, error)
}

type imageService struct {
	images  repository.ImageRepository
	bikes   repository.BikeRepository
	storage FileStorage
	baseURL string
	log     logger.Logger
}

func NewImageService(
	images repository.ImageRepository,
	bikes repository.BikeRepository,
	storage FileStorage,
	publicBaseURL string,
	log logger.Logger,
) ImageService {
	return &imageService{
		images:  images,
		bikes:   bikes,
		storage: storage,
		baseURL: publicBaseURL,
		log:     log,
	}
}

func (s *imageService) Upload(ctx context.Context, bikeID string, files []UploadFile) ([]UploadedImageView, error) {
	if bikeID == "" {
		return nil, ErrBikeIDRequired
	}
	if !primitive.IsValidObjectID(bikeID) {
		return nil, ErrInvalidBikeID
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	if _, err := s.bikes.GetByID(ctx, bikeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBikeNotFound
		}
		return nil, fmt.Errorf("get bike: %w", err)
	}

	uploaded := make([]UploadedImageView, 0, len(files))
	for _, f := range files {
		url, key, err := s.storage.Upload(ctx, f.Name, f.MimeType, f.Data)
		if err != nil {
			return nil, fmt.Errorf("store file %q: %w", f.Name, err)
		}

		img, err := s.images.Create(ctx, repository.CreateImageParams{
			BikeID:   bikeID,
			URL:      url,
			Path:     key,
			MimeType: f.MimeType,
			Filename: f.Name,
		})
		if err != nil {
			return nil, fmt.Errorf("record image %q: %w", f.Name, err)
		}

		uploaded = append(uploaded, UploadedImageView{
			ID:       img.ID,
			BikeID:   img.BikeID,
			URL:      img.URL,
			MimeType: img.MimeType,
		})
	}

	return uploaded, nil
}

func (s *imageService) ListForBike(ctx context.Context, bikeID string) ([]ImageRef, error) {
	refs := []ImageRef{}
	if !primitive.IsValidObjectID(bikeID) {
		return refs, nil
	}

	images, err := s.images.ListByBikeIDs(ctx, []string{bikeID})
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	for i := range images {
		ref := ImageRef{
			URL: resolveImageURL(s.baseURL, &images[i]),
			ID:  images[i].ID,
		}
		if images[i].Filename != "" {
			name := images[i].Filename
			ref.Filename = &name
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func (s *imageService) Remove(ctx context.Context, userID, bikeID, fragment string) (int64, error) {
	if !primitive.IsValidObjectID(bikeID) {
		return 0, ErrInvalidBikeID
	}

	bike, err := s.bikes.GetByID(ctx, bikeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrBikeNotFound
		}
		return 0, fmt.Errorf("get bike: %w", err)
	}
	if bike.OwnerID == "" || bike.OwnerID != userID {
		return 0, ErrForbidden
	}

	removed, err := s.images.DeleteByBikeAndFile(ctx, bikeID, fragment)
	if err != nil {
		return 0, fmt.Errorf("delete images: %w", err)
	}
	return removed, nil
}
