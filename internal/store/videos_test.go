package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	postgrest "github.com/supabase-community/postgrest-go"

	"videothingy/trailer-portal/internal/apperr"
	"videothingy/trailer-portal/models"
)

// fakePostgrest serves the subset of the PostgREST API used by VideoStore.
type fakePostgrest struct {
	mu             sync.Mutex
	rows           []models.Video
	missingColumns map[string]bool
	failAll        bool
	clock          time.Time
	nextID         int64
}

func newFakePostgrest() *fakePostgrest {
	return &fakePostgrest{
		missingColumns: map[string]bool{},
		clock:          time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakePostgrest) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !strings.HasSuffix(r.URL.Path, "/"+videosTable) {
		writePostgrestError(w, http.StatusNotFound, "42P01", "relation does not exist")
		return
	}
	if f.failAll {
		writePostgrestError(w, http.StatusInternalServerError, "XX000", "database unavailable")
		return
	}

	q := r.URL.Query()
	switch r.Method {
	case http.MethodGet:
		rows := f.match(q)
		if order := q.Get("order"); order != "" {
			column := strings.SplitN(order, ".", 2)[0]
			if f.missingColumns[column] {
				writePostgrestError(w, http.StatusBadRequest, "42703", fmt.Sprintf("column videos.%s does not exist", column))
				return
			}
			if strings.Contains(order, ".desc") {
				for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
					rows[i], rows[j] = rows[j], rows[i]
				}
			}
		}
		if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit < len(rows) {
			rows = rows[:limit]
		}
		writeJSON(w, http.StatusOK, rows)

	case http.MethodPost:
		var v models.Video
		if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
			writePostgrestError(w, http.StatusBadRequest, "PGRST102", err.Error())
			return
		}
		for _, existing := range f.rows {
			if existing.Slug == v.Slug {
				writePostgrestError(w, http.StatusConflict, "23505", "duplicate key value violates unique constraint \"videos_slug_key\"")
				return
			}
		}
		f.clock = f.clock.Add(time.Minute)
		f.nextID++
		v.ID = f.nextID
		created := f.clock
		v.CreatedAt = &created
		f.rows = append(f.rows, v)
		writeJSON(w, http.StatusCreated, []models.Video{v})

	case http.MethodDelete:
		deleted := f.match(q)
		kept := f.rows[:0]
		for _, row := range f.rows {
			if !containsSlug(deleted, row.Slug) {
				kept = append(kept, row)
			}
		}
		f.rows = kept
		writeJSON(w, http.StatusOK, deleted)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakePostgrest) match(q map[string][]string) []models.Video {
	want := ""
	if values, ok := q["slug"]; ok && len(values) > 0 {
		want = strings.TrimPrefix(values[0], "eq.")
	}
	out := []models.Video{}
	for _, row := range f.rows {
		if want == "" || row.Slug == want {
			out = append(out, row)
		}
	}
	return out
}

func containsSlug(videos []models.Video, slug string) bool {
	for _, v := range videos {
		if v.Slug == slug {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writePostgrestError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{"code": code, "message": message, "details": nil, "hint": nil})
}

func newTestStore(t *testing.T) (*VideoStore, *fakePostgrest, *test.Hook) {
	t.Helper()
	fake := newFakePostgrest()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	logger, hook := test.NewNullLogger()
	client := postgrest.NewClient(srv.URL+"/rest/v1", "", map[string]string{"apikey": "test-key"})
	return NewVideoStore(client, logger), fake, hook
}

func sampleVideo(slug string) *models.Video {
	return &models.Video{
		Slug:        slug,
		Title:       "Title " + slug,
		Description: "A trailer",
		FilePath:    "trailers/1714564800000_" + slug + ".mp4",
		URL:         "https://cdn.example.com/trailers/" + slug + ".mp4",
		FullURL:     "https://t.me/example",
	}
}

func TestGetBySlugMissingIsNotFound(t *testing.T) {
	s, _, _ := newTestStore(t)

	v, err := s.GetBySlug(context.Background(), "never-inserted")
	assert.Nil(t, v)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NotErrorIs(t, err, apperr.ErrStore)
}

func TestInsertThenGetRoundTrip(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()
	in := sampleVideo("my-trailer")

	require.NoError(t, s.Insert(ctx, in))

	out, err := s.GetBySlug(ctx, "my-trailer")
	require.NoError(t, err)
	assert.Equal(t, in.Slug, out.Slug)
	assert.Equal(t, in.Title, out.Title)
	assert.Equal(t, in.FilePath, out.FilePath)
	assert.Equal(t, in.URL, out.URL)
	assert.Equal(t, in.FullURL, out.FullURL)
	assert.NotNil(t, out.CreatedAt)
}

func TestInsertDuplicateSlugIsStoreError(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, sampleVideo("dup")))
	err := s.Insert(ctx, sampleVideo("dup"))
	assert.ErrorIs(t, err, apperr.ErrStore)
}

func TestExists(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Insert(ctx, sampleVideo("teaser")))

	ok, err := s.Exists(ctx, "teaser")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Exists(ctx, "teaser-2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExistsSurfacesStoreFailures(t *testing.T) {
	s, fake, _ := newTestStore(t)
	fake.failAll = true

	_, err := s.Exists(context.Background(), "teaser")
	assert.ErrorIs(t, err, apperr.ErrStore)
}

func TestDeleteBySlugReturnsFilePath(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()
	in := sampleVideo("gone-soon")
	require.NoError(t, s.Insert(ctx, in))

	path, err := s.DeleteBySlug(ctx, "gone-soon")
	require.NoError(t, err)
	assert.Equal(t, in.FilePath, path)

	_, err = s.GetBySlug(ctx, "gone-soon")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteBySlugMissingIsNotFound(t *testing.T) {
	s, _, _ := newTestStore(t)

	_, err := s.DeleteBySlug(context.Background(), "nothing-here")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListAllMostRecentFirst(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()
	for _, slug := range []string{"first", "second", "third"} {
		require.NoError(t, s.Insert(ctx, sampleVideo(slug)))
	}

	videos, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, videos, 3)
	assert.Equal(t, "third", videos[0].Slug)
	assert.Equal(t, "first", videos[2].Slug)
}

func TestListAllEmptyTableIsEmptySlice(t *testing.T) {
	s, _, _ := newTestStore(t)

	videos, err := s.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, videos)
	assert.Empty(t, videos)
}

func TestListAllFallsBackWhenCreatedAtMissing(t *testing.T) {
	s, fake, hook := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Insert(ctx, sampleVideo("older")))
	require.NoError(t, s.Insert(ctx, sampleVideo("newer")))
	fake.missingColumns["created_at"] = true

	videos, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "newer", videos[0].Slug)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "created_at.desc", hook.LastEntry().Data["order"])
}

func TestListAllFallsBackToNaturalOrder(t *testing.T) {
	s, fake, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Insert(ctx, sampleVideo("only")))
	fake.missingColumns["created_at"] = true
	fake.missingColumns["id"] = true

	videos, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, videos, 1)
}

func TestListAllFailsWhenEveryOrderingFails(t *testing.T) {
	s, fake, _ := newTestStore(t)
	fake.failAll = true

	_, err := s.ListAll(context.Background())
	assert.ErrorIs(t, err, apperr.ErrStore)
}

func TestOrderingString(t *testing.T) {
	assert.Equal(t, "created_at.desc", Ordering{Column: "created_at", Descending: true}.String())
	assert.Equal(t, "id.asc", Ordering{Column: "id"}.String())
	assert.Equal(t, "natural", Ordering{}.String())
}
