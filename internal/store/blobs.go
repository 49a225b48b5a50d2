package store

import (
	"bytes"
	"context"
	"io"

	"github.com/sirupsen/logrus"
	storage_go "github.com/supabase-community/storage-go"

	"videothingy/trailer-portal/internal/apperr"
)

// BlobStore holds uploaded video files addressed by bucket-relative path.
type BlobStore interface {
	// Put stores data at path, replacing any existing object.
	Put(ctx context.Context, path string, data []byte, contentType string) error
	// PublicURL derives the public address of path without contacting the store.
	PublicURL(path string) string
	// Remove deletes path. Failures are logged, never returned.
	Remove(ctx context.Context, path string)
}

// StorageClient is the part of the Supabase storage client used here.
type StorageClient interface {
	UploadFile(bucketID string, relativePath string, data io.Reader, fileOptions ...storage_go.FileOptions) (storage_go.FileUploadResponse, error)
	GetPublicUrl(bucketID string, filePath string, urlOptions ...storage_go.UrlOptions) storage_go.SignedUrlResponse
	RemoveFile(bucketID string, paths []string) ([]storage_go.FileUploadResponse, error)
}

// SupabaseBlobs stores videos in a Supabase Storage bucket.
type SupabaseBlobs struct {
	client StorageClient
	bucket string
	logger logrus.FieldLogger
}

// NewSupabaseBlobs creates a BlobStore over the given bucket.
func NewSupabaseBlobs(client StorageClient, bucket string, logger logrus.FieldLogger) *SupabaseBlobs {
	return &SupabaseBlobs{client: client, bucket: bucket, logger: logger}
}

func (b *SupabaseBlobs) Put(ctx context.Context, path string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return apperr.Store("could not upload video", err)
	}

	upsert := true
	_, err := b.client.UploadFile(b.bucket, path, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return apperr.Store("could not upload video", err)
	}

	b.logger.WithFields(logrus.Fields{
		"bucket": b.bucket,
		"path":   path,
		"bytes":  len(data),
	}).Info("Video uploaded to storage")
	return nil
}

func (b *SupabaseBlobs) PublicURL(path string) string {
	return b.client.GetPublicUrl(b.bucket, path).SignedURL
}

func (b *SupabaseBlobs) Remove(_ context.Context, path string) {
	if path == "" {
		return
	}
	if _, err := b.client.RemoveFile(b.bucket, []string{path}); err != nil {
		b.logger.WithError(err).WithFields(logrus.Fields{
			"bucket": b.bucket,
			"path":   path,
		}).Warn("Failed to remove video from storage")
		return
	}
	b.logger.WithField("path", path).Info("Video removed from storage")
}
