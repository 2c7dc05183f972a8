package repository

import (
	"context"

	"github.com/MateoKaloshi/MotoLine/internal/domain/entity"
)

type CreateImageParams struct {
	BikeID   string
	URL      string
	Path     string
	MimeType string
	Filename string
}

type ImageRepository interface {
	Create(ctx context.Context, params CreateImageParams) (*entity.Image, error)
	ListByBikeIDs(ctx context.Context, bikeIDs []string) ([]entity.Image, error)
	// DeleteByBikeAndFile removes image records of a bike whose url,
	// path or filename contains the given fragment. Returns the number
	// of documents removed.
	DeleteByBikeAndFile(ctx context.Context, bikeID, fragment string) (int64, error)
}
