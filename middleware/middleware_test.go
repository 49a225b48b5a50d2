package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videothingy/trailer-portal/internal/apperr"
	"videothingy/trailer-portal/internal/guard"
)

func newTestApp(t *testing.T, routes func(app *fiber.App)) (*fiber.App, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger)})
	app.Use(RequestLogger(logger))
	routes(app)
	return app, hook
}

func call(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestErrorHandlerStatuses(t *testing.T) {
	app, _ := newTestApp(t, func(app *fiber.App) {
		app.Get("/validation", func(c *fiber.Ctx) error { return apperr.Validation("title is required") })
		app.Get("/forbidden", func(c *fiber.Ctx) error { return apperr.Forbidden() })
		app.Get("/missing", func(c *fiber.Ctx) error { return apperr.NotFound("video \"x\" not found") })
		app.Get("/too-large", func(c *fiber.Ctx) error { return fiber.ErrRequestEntityTooLarge })
		app.Get("/store", func(c *fiber.Ctx) error {
			return apperr.Store("could not list videos", errors.New("dial tcp: refused"))
		})
	})

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/validation", fiber.StatusBadRequest, "title is required"},
		{"/forbidden", fiber.StatusForbidden, "Forbidden"},
		{"/missing", fiber.StatusNotFound, "Not found"},
		{"/store", fiber.StatusInternalServerError, "Internal Server Error"},
		{"/too-large", fiber.StatusBadRequest, "video is larger than 300 MiB"},
		{"/unrouted", fiber.StatusNotFound, "Not found"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := call(t, app, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.body, body)
			assert.Equal(t, fiber.MIMETextPlainCharsetUTF8, resp.Header.Get(fiber.HeaderContentType))
		})
	}
}

func TestRequestLoggerRecordsRenderedStatus(t *testing.T) {
	app, hook := newTestApp(t, func(app *fiber.App) {
		app.Get("/admin", func(c *fiber.Ctx) error { return apperr.Forbidden() })
	})

	resp, _ := call(t, app, httptest.NewRequest(http.MethodGet, "/admin?key=hunter2&x=1", nil))
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, fiber.StatusForbidden, entry.Data["status_code"])
	assert.NotContains(t, entry.Data["uri"], "hunter2")
	assert.Equal(t, resp.Header.Get("X-Request-Id"), entry.Data["request_id"])
}

func TestRedactKey(t *testing.T) {
	assert.Equal(t, "/admin?key=REDACTED", redactKey("/admin?key=hunter2"))
	assert.Equal(t, "/watch/alien?t=3", redactKey("/watch/alien?t=3"))
	assert.Equal(t, "/", redactKey("/"))
}

func TestAdminKeySources(t *testing.T) {
	app, _ := newTestApp(t, func(app *fiber.App) {
		app.Use("/admin", AdminKey("s3cret"))
		app.All("/admin", func(c *fiber.Ctx) error {
			return c.SendString(c.Locals(LocalAdminKey).(string))
		})
	})

	resp, body := call(t, app, httptest.NewRequest(http.MethodGet, "/admin?key=%20s3cret%20", nil))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "s3cret", body)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(HeaderAdminKey, "s3cret")
	resp, _ = call(t, app, req)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body = call(t, app, httptest.NewRequest(http.MethodGet, "/admin?key=nope", nil))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Forbidden", body)
}

func TestHostFilter(t *testing.T) {
	app, _ := newTestApp(t, func(app *fiber.App) {
		app.Use(HostFilter(guard.AllowList([]string{"*.trailers.test"})))
		app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "www.trailers.test:3000"
	resp, body := call(t, app, req)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "trailers.test"
	resp, _ = call(t, app, req)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
