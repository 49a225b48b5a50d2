package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"videothingy/trailer-portal/internal/apperr"
	"videothingy/trailer-portal/utils"
	"videothingy/trailer-portal/views"
)

// Home renders the public catalog.
// @Summary Home page
// @Tags pages
// @Produce html
// @Success 200 {string} string
// @Router / [get]
func (h *ApplicationHandler) Home(c *fiber.Ctx) error {
	videos, err := h.Videos.ListAll(c.UserContext())
	if err != nil {
		return err
	}

	body, err := h.Views.Render(views.PageHome, views.HomeData{Videos: videos})
	if err != nil {
		return err
	}
	return utils.RespondWithHTML(c, fiber.StatusOK, body)
}

// Watch renders a single video.
// @Summary Watch page
// @Tags pages
// @Produce html
// @Param slug path string true "Video slug"
// @Success 200 {string} string
// @Failure 404 {string} string
// @Router /watch/{slug} [get]
func (h *ApplicationHandler) Watch(c *fiber.Ctx) error {
	slug := c.Params("slug")

	video, err := h.Videos.GetBySlug(c.UserContext(), slug)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return fiber.ErrNotFound
		}
		return err
	}

	body, err := h.Views.Render(views.PageWatch, views.WatchData{
		Video:   *video,
		BaseURL: h.baseURL(c),
	})
	if err != nil {
		return err
	}
	return utils.RespondWithHTML(c, fiber.StatusOK, body)
}

// ServiceWorker serves the static worker script.
// @Summary Service worker script
// @Tags pages
// @Produce application/javascript
// @Success 200 {string} string
// @Router /sw.js [get]
func (h *ApplicationHandler) ServiceWorker(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderContentType, "application/javascript; charset=utf-8")
	return c.Status(fiber.StatusOK).Send(views.ServiceWorker())
}

// baseURL is the configured public origin, or the request's own.
func (h *ApplicationHandler) baseURL(c *fiber.Ctx) string {
	if h.Settings != nil && h.Settings.BaseURL != "" {
		return h.Settings.BaseURL
	}
	return c.BaseURL()
}
