// Package store wraps the remote Supabase table and bucket that hold the
// portal's videos.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	postgrest "github.com/supabase-community/postgrest-go"

	"videothingy/trailer-portal/internal/apperr"
	"videothingy/trailer-portal/models"
)

const videosTable = "videos"

// Querier is satisfied by both *supabase.Client and *postgrest.Client.
type Querier interface {
	From(table string) *postgrest.QueryBuilder
}

// Ordering is one way of sorting the catalog. An empty Column means the
// table's natural order.
type Ordering struct {
	Column     string
	Descending bool
}

func (o Ordering) String() string {
	if o.Column == "" {
		return "natural"
	}
	if o.Descending {
		return o.Column + ".desc"
	}
	return o.Column + ".asc"
}

// DefaultOrderings lists most-recent-first, falling back to identity order
// for deployments whose table lacks created_at.
var DefaultOrderings = []Ordering{
	{Column: "created_at", Descending: true},
	{Column: "id", Descending: true},
	{},
}

// VideoStore reads and writes rows of the videos table.
type VideoStore struct {
	db     Querier
	logger logrus.FieldLogger
}

// NewVideoStore creates a VideoStore over the given PostgREST client.
func NewVideoStore(db Querier, logger logrus.FieldLogger) *VideoStore {
	return &VideoStore{db: db, logger: logger}
}

// ListAll returns every video using the first ordering that succeeds.
func (s *VideoStore) ListAll(ctx context.Context, orderings ...Ordering) ([]models.Video, error) {
	if len(orderings) == 0 {
		orderings = DefaultOrderings
	}

	var lastErr error
	for _, o := range orderings {
		if err := ctx.Err(); err != nil {
			return nil, apperr.Store("could not list videos", err)
		}
		videos, err := s.list(o)
		if err == nil {
			return videos, nil
		}
		s.logger.WithError(err).WithField("order", o.String()).Warn("Listing videos failed, trying next ordering")
		lastErr = err
	}
	return nil, apperr.Store("could not list videos", lastErr)
}

func (s *VideoStore) list(o Ordering) ([]models.Video, error) {
	query := s.db.From(videosTable).Select("*", "", false)
	if o.Column != "" {
		query = query.Order(o.Column, &postgrest.OrderOpts{Ascending: !o.Descending})
	}

	body, _, err := query.Execute()
	if err != nil {
		return nil, err
	}

	videos := []models.Video{}
	if err := json.Unmarshal(body, &videos); err != nil {
		return nil, fmt.Errorf("decode videos: %w", err)
	}
	return videos, nil
}

// GetBySlug returns the video with the given slug, or an apperr.ErrNotFound error.
func (s *VideoStore) GetBySlug(ctx context.Context, slug string) (*models.Video, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperr.Store("could not load video", err)
	}

	body, _, err := s.db.From(videosTable).
		Select("*", "", false).
		Eq("slug", slug).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, apperr.Store("could not load video", err)
	}

	var videos []models.Video
	if err := json.Unmarshal(body, &videos); err != nil {
		return nil, apperr.Store("could not decode video", err)
	}
	if len(videos) == 0 {
		return nil, apperr.NotFound(fmt.Sprintf("video %q not found", slug))
	}
	return &videos[0], nil
}

// Exists reports whether a row with the given slug is present.
func (s *VideoStore) Exists(ctx context.Context, slug string) (bool, error) {
	_, err := s.GetBySlug(ctx, slug)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, apperr.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Insert adds a new row. The database assigns id and created_at.
func (s *VideoStore) Insert(ctx context.Context, video *models.Video) error {
	if err := ctx.Err(); err != nil {
		return apperr.Store("could not save video", err)
	}

	row := *video
	row.ID = 0
	row.CreatedAt = nil
	_, _, err := s.db.From(videosTable).
		Insert(row, false, "", "representation", "").
		Execute()
	if err != nil {
		return apperr.Store("could not save video", err)
	}

	s.logger.WithField("slug", video.Slug).Info("Video record inserted")
	return nil
}

// DeleteBySlug removes the row and returns its file_path.
func (s *VideoStore) DeleteBySlug(ctx context.Context, slug string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", apperr.Store("could not delete video", err)
	}

	body, _, err := s.db.From(videosTable).
		Delete("representation", "").
		Eq("slug", slug).
		Execute()
	if err != nil {
		return "", apperr.Store("could not delete video", err)
	}

	var deleted []models.Video
	if err := json.Unmarshal(body, &deleted); err != nil {
		return "", apperr.Store("could not decode deleted video", err)
	}
	if len(deleted) == 0 {
		return "", apperr.NotFound(fmt.Sprintf("video %q not found", slug))
	}

	s.logger.WithField("slug", slug).Info("Video record deleted")
	return deleted[0].FilePath, nil
}
