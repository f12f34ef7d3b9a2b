// Package media handles uploaded media: object storage for video files,
// thumbnails and photos, and ffprobe-based duration probing.
package media

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/streamhub/video-platform-go/internal/config"
	"github.com/streamhub/video-platform-go/pkg/logger"
)

// Store uploads and removes objects in an S3-compatible bucket. Credentials
// are injected at construction; nothing is read from ambient process state.
type Store struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewStore creates a Store from media configuration.
func NewStore(cfg *config.MediaConfig) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create object storage client: %w", err)
	}

	return &Store{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// EnsureBucket creates the bucket if it does not exist yet.
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket: %w", err)
	}

	logger.Log.Info("Created media bucket", zap.String("bucket", s.bucket))
	return nil
}

// ObjectKey derives a collision-free object key, keeping the original file
// extension under a kind prefix (videos/, thumbnails/, photos/, ...).
func (s *Store) ObjectKey(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return prefix + "/" + uuid.NewString() + ext
}

// Upload stores an object and returns its public URL.
func (s *Store) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload object %s: %w", key, err)
	}

	logger.Log.Debug("Uploaded media object",
		zap.String("key", key),
		zap.Int64("size", size),
	)

	return s.baseURL + "/" + key, nil
}

// Remove deletes the object a previously returned URL points at. URLs not
// produced by this store are rejected.
func (s *Store) Remove(ctx context.Context, objectURL string) error {
	key, err := s.keyFromURL(objectURL)
	if err != nil {
		return err
	}

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", key, err)
	}

	return nil
}

func (s *Store) keyFromURL(objectURL string) (string, error) {
	if !strings.HasPrefix(objectURL, s.baseURL+"/") {
		return "", fmt.Errorf("object URL %q is not under %q", objectURL, s.baseURL)
	}

	key := strings.TrimPrefix(objectURL, s.baseURL+"/")
	key, err := url.PathUnescape(key)
	if err != nil {
		return "", fmt.Errorf("decode object key: %w", err)
	}
	if key == "" {
		return "", fmt.Errorf("object URL %q has an empty key", objectURL)
	}

	return key, nil
}
