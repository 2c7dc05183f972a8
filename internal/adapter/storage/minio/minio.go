package minio

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/MateoKaloshi/MotoLine/internal/app/config"
	"github.com/MateoKaloshi/MotoLine/internal/platform/logger"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Storage uploads image files to a MinIO bucket and hands back their
// public URL together with the stored object key.
type Storage struct {
	client *minio.Client
	bucket string
	log    logger.Logger
}

func NewStorage(ctx context.Context, cfg config.MinioConfig, log logger.Logger) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", cfg.Endpoint, err)
	}

	err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{})
	if err != nil {
		exists, errBucketExists := client.BucketExists(ctx, cfg.Bucket)
		if errBucketExists != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: (make: %v / exists_check: %v)",
				cfg.Bucket, err, errBucketExists)
		}
		log.Infof("Bucket %s already exists", cfg.Bucket)
	}

	return &Storage{client: client, bucket: cfg.Bucket, log: log}, nil
}

func (s *Storage) Upload(ctx context.Context, originalFileName, contentType string, data []byte) (string, string, error) {
	ext := filepath.Ext(originalFileName)
	objectKey := fmt.Sprintf("uploads/%s%s", uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectKey, s.bucket, err)
	}

	fileURL := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey)
	s.log.Infof("Uploaded %s (%d bytes) to %s", originalFileName, len(data), fileURL)

	return fileURL, objectKey, nil
}
