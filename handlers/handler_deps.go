package handlers

import (
	"context"

	"github.com/sirupsen/logrus"

	"videothingy/trailer-portal/config"
	"videothingy/trailer-portal/internal/store"
	"videothingy/trailer-portal/internal/upload"
	"videothingy/trailer-portal/models"
	"videothingy/trailer-portal/views"
)

// VideoRepository defines the record operations handlers expect.
// The concrete implementation is store.VideoStore.
type VideoRepository interface {
	ListAll(ctx context.Context, orderings ...store.Ordering) ([]models.Video, error)
	GetBySlug(ctx context.Context, slug string) (*models.Video, error)
	DeleteBySlug(ctx context.Context, slug string) (string, error)
}

// Uploader runs the upload pipeline for one admin form submission.
type Uploader interface {
	Run(ctx context.Context, req upload.Request) (string, error)
}

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Videos   VideoRepository
	Blobs    store.BlobStore
	Uploads  Uploader
	Views    *views.Renderer
	Logger   logrus.FieldLogger
	Settings *config.Settings
}

// NewApplicationHandler creates a new ApplicationHandler with the given dependencies.
func NewApplicationHandler(videos VideoRepository, blobs store.BlobStore, uploads Uploader, renderer *views.Renderer, logger logrus.FieldLogger, settings *config.Settings) *ApplicationHandler {
	return &ApplicationHandler{
		Videos:   videos,
		Blobs:    blobs,
		Uploads:  uploads,
		Views:    renderer,
		Logger:   logger,
		Settings: settings,
	}
}
