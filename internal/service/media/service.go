package media

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"forum-backend/internal/config"
)

// Service stores uploaded images (avatars, topic images) in MinIO and hands
// back a public URL.
type Service interface {
	Upload(ctx context.Context, fileName, contentType string, size int64, r io.Reader) (string, error)
	Remove(ctx context.Context, storagePath string) error
}

type service struct {
	client *minio.Client
	cfg    *config.Config
}

func NewService(client *minio.Client, cfg *config.Config) Service {
	return &service{client: client, cfg: cfg}
}

func (s *service) Upload(ctx context.Context, fileName, contentType string, size int64, r io.Reader) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("media storage is not configured")
	}

	storagePath := fmt.Sprintf("uploads/%s/%s-%s", time.Now().Format("2006/01"), uuid.NewString(), fileName)

	_, err := s.client.PutObject(ctx, s.cfg.MinIOBucket, storagePath, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload to MinIO: %w", err)
	}

	return s.publicURL(storagePath), nil
}

func (s *service) Remove(ctx context.Context, storagePath string) error {
	if s.client == nil {
		return nil
	}
	return s.client.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
}

func (s *service) publicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, storagePath)
}
