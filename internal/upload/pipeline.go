// Package upload turns an admin upload form into a stored video and record.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"videothingy/trailer-portal/internal/apperr"
	"videothingy/trailer-portal/internal/slug"
	"videothingy/trailer-portal/internal/store"
	"videothingy/trailer-portal/models"
	"videothingy/trailer-portal/utils"
)

// Records is the part of the video store the pipeline writes to.
type Records interface {
	Exists(ctx context.Context, slug string) (bool, error)
	Insert(ctx context.Context, video *models.Video) error
}

// Request is one submitted upload form.
type Request struct {
	Title       string                `validate:"required"`
	Description string
	FullURL     string
	File        *multipart.FileHeader `validate:"required"`
}

// Pipeline validates uploads, stores the file and records its metadata.
type Pipeline struct {
	records  Records
	blobs    store.BlobStore
	validate *validator.Validate
	tempDir  string
	now      func() time.Time
	logger   logrus.FieldLogger
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithTempDir spools uploads under dir instead of the OS temp directory.
func WithTempDir(dir string) Option {
	return func(p *Pipeline) { p.tempDir = dir }
}

// WithClock overrides the time source used for storage paths.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// NewPipeline creates an upload pipeline.
func NewPipeline(records Records, blobs store.BlobStore, logger logrus.FieldLogger, opts ...Option) *Pipeline {
	p := &Pipeline{
		records:  records,
		blobs:    blobs,
		validate: validator.New(),
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run stores the uploaded video and returns the slug assigned to it.
func (p *Pipeline) Run(ctx context.Context, req Request) (string, error) {
	req.Title = utils.SanitizeInput(req.Title)
	req.Description = utils.SanitizeInput(req.Description)
	req.FullURL = utils.SanitizeInput(req.FullURL)

	if err := p.check(req); err != nil {
		return "", err
	}
	contentType := MediaType(req.File.Header.Get("Content-Type"))

	videoSlug, err := slug.Allocate(ctx, req.Title, p.records.Exists)
	if err != nil {
		if errors.Is(err, apperr.ErrStore) {
			return "", err
		}
		return "", apperr.Store("could not allocate slug", err)
	}
	path := StoragePath(p.now(), videoSlug, ExtensionFor(contentType))

	data, err := p.readSpooled(req.File)
	if err != nil {
		return "", err
	}
	if err := p.blobs.Put(ctx, path, data, contentType); err != nil {
		return "", err
	}

	video := &models.Video{
		Slug:        videoSlug,
		Title:       req.Title,
		Description: req.Description,
		FilePath:    path,
		URL:         p.blobs.PublicURL(path),
		FullURL:     req.FullURL,
	}
	if err := p.records.Insert(ctx, video); err != nil {
		p.logger.WithError(err).WithField("path", path).Warn("Record insert failed, removing uploaded video")
		p.blobs.Remove(ctx, path)
		return "", err
	}

	p.logger.WithFields(logrus.Fields{
		"slug":  videoSlug,
		"path":  path,
		"bytes": len(data),
	}).Info("Video upload completed")
	return videoSlug, nil
}

func (p *Pipeline) check(req Request) error {
	if err := p.validate.Struct(req); err != nil {
		p.logger.WithField("errors", utils.FormatValidationErrors(err)).Debug("Upload form failed validation")
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return apperr.Validation(fieldMessage(verrs[0]))
		}
		return apperr.Validation(err.Error())
	}

	contentType := MediaType(req.File.Header.Get("Content-Type"))
	if !IsAllowedType(contentType) {
		return apperr.Validationf("unsupported video type %q", contentType)
	}
	if req.File.Size > MaxUploadBytes {
		return apperr.Validationf("video is larger than %d MiB", MaxUploadBytes>>20)
	}
	if req.File.Size == 0 {
		return apperr.Validation("video file is empty")
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch {
	case fe.Field() == "Title" && fe.Tag() == "required":
		return "title is required"
	case fe.Field() == "File":
		return "video file is required"
	default:
		return fmt.Sprintf("%s is invalid", strings.ToLower(fe.Field()))
	}
}

// readSpooled copies the uploaded part to a temporary file and reads it back.
// The temporary file is removed before returning.
func (p *Pipeline) readSpooled(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, apperr.Store("could not open uploaded file", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(p.tempDir, "upload-*")
	if err != nil {
		return nil, apperr.Store("could not create temporary file", err)
	}
	defer func() {
		tmp.Close()
		if err := os.Remove(tmp.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			p.logger.WithError(err).WithField("file", tmp.Name()).Debug("Could not remove temporary upload")
		}
	}()

	if _, err := io.Copy(tmp, src); err != nil {
		return nil, apperr.Store("could not save uploaded file", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, apperr.Store("could not read uploaded file", err)
	}
	data, err := io.ReadAll(tmp)
	if err != nil {
		return nil, apperr.Store("could not read uploaded file", err)
	}
	return data, nil
}
