package service

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/streamhub/video-platform-go/pkg/logger"
)

// uploadLocalFile streams a spooled upload from local disk into the blob
// store under a fresh key and returns its public URL.
func uploadLocalFile(ctx context.Context, store BlobStore, prefix, path string, size int64, contentType string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return store.Upload(ctx, store.ObjectKey(prefix, path), f, size, contentType)
}

// removeBlob deletes a stored object best effort. Orphaned blobs are logged,
// never surfaced to clients.
func removeBlob(ctx context.Context, store BlobStore, objectURL string) {
	if objectURL == "" {
		return
	}
	if err := store.Remove(ctx, objectURL); err != nil {
		logger.Log.Warn("Failed to remove media object",
			zap.Error(err),
			zap.String("url", objectURL),
		)
	}
}
