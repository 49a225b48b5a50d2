package store

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"

	"videothingy/trailer-portal/internal/apperr"
)

// MinioOptions configures an S3-compatible bucket.
type MinioOptions struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Bucket     string
	UseSSL     bool
	PublicBase string
}

// MinioBlobs stores videos in an S3-compatible bucket.
type MinioBlobs struct {
	client     *minio.Client
	bucket     string
	publicBase string
	logger     logrus.FieldLogger
}

// NewMinioBlobs connects to the endpoint and creates the bucket if missing.
func NewMinioBlobs(ctx context.Context, opts MinioOptions, logger logrus.FieldLogger) (*MinioBlobs, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", opts.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", opts.Bucket, err)
		}
		logger.WithField("bucket", opts.Bucket).Info("Bucket created")
	}

	return &MinioBlobs{
		client:     client,
		bucket:     opts.Bucket,
		publicBase: minioPublicBase(opts),
		logger:     logger,
	}, nil
}

func minioPublicBase(opts MinioOptions) string {
	if opts.PublicBase != "" {
		return strings.TrimRight(opts.PublicBase, "/")
	}
	scheme := "http"
	if opts.UseSSL {
		scheme = "https"
	}
	return scheme + "://" + opts.Endpoint
}

func (b *MinioBlobs) Put(ctx context.Context, path string, data []byte, contentType string) error {
	_, err := b.client.PutObject(ctx, b.bucket, path, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
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

func (b *MinioBlobs) PublicURL(path string) string {
	return b.publicBase + "/" + b.bucket + "/" + strings.TrimLeft(path, "/")
}

func (b *MinioBlobs) Remove(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := b.client.RemoveObject(ctx, b.bucket, path, minio.RemoveObjectOptions{}); err != nil {
		b.logger.WithError(err).WithFields(logrus.Fields{
			"bucket": b.bucket,
			"path":   path,
		}).Warn("Failed to remove video from storage")
		return
	}
	b.logger.WithField("path", path).Info("Video removed from storage")
}
