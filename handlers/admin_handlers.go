package handlers

import (
	"github.com/gofiber/fiber/v2"

	"videothingy/trailer-portal/internal/upload"
	"videothingy/trailer-portal/middleware"
	"videothingy/trailer-portal/utils"
	"videothingy/trailer-portal/views"
)

// Admin renders the catalog with the upload form.
// @Summary Admin page with upload form
// @Tags admin
// @Produce html
// @Param key query string true "Admin key"
// @Success 200 {string} string
// @Failure 403 {string} string
// @Router /admin [get]
func (h *ApplicationHandler) Admin(c *fiber.Ctx) error {
	videos, err := h.Videos.ListAll(c.UserContext())
	if err != nil {
		return err
	}

	body, err := h.Views.Render(views.PageAdmin, views.AdminData{
		Videos: videos,
		Key:    adminKey(c),
	})
	if err != nil {
		return err
	}
	return utils.RespondWithHTML(c, fiber.StatusOK, body)
}

// UploadVideo runs the upload pipeline for the submitted form.
// @Summary Upload a trailer
// @Tags admin
// @Accept multipart/form-data
// @Produce plain
// @Param key query string true "Admin key"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param fullUrl formData string false "Link to the full video"
// @Param video formData file true "Video file"
// @Success 303
// @Failure 400 {string} string
// @Failure 403 {string} string
// @Router /admin/upload [post]
func (h *ApplicationHandler) UploadVideo(c *fiber.Ctx) error {
	// A missing file part is reported by the pipeline's validation.
	file, err := c.FormFile("video")
	if err != nil {
		h.Logger.Debugf("No video part in upload form: %v", err)
	}

	slug, err := h.Uploads.Run(c.UserContext(), upload.Request{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		FullURL:     c.FormValue("fullUrl"),
		File:        file,
	})
	if err != nil {
		return h.adminFailure(c, "upload", err)
	}

	h.Logger.Infof("Uploaded video %s", slug)
	return c.Redirect(utils.AdminLocation(adminKey(c)), fiber.StatusSeeOther)
}

// DeleteVideo removes a record and then, best effort, its stored file.
// @Summary Delete a trailer
// @Tags admin
// @Produce plain
// @Param slug path string true "Video slug"
// @Param key query string true "Admin key"
// @Success 303
// @Failure 400 {string} string
// @Failure 403 {string} string
// @Router /admin/delete/{slug} [post]
func (h *ApplicationHandler) DeleteVideo(c *fiber.Ctx) error {
	slug := c.Params("slug")

	filePath, err := h.Videos.DeleteBySlug(c.UserContext(), slug)
	if err != nil {
		return h.adminFailure(c, "delete", err)
	}
	h.Blobs.Remove(c.UserContext(), filePath)

	h.Logger.Infof("Deleted video %s", slug)
	return c.Redirect(utils.AdminLocation(adminKey(c)), fiber.StatusSeeOther)
}

// adminFailure answers an admin form action with its error message.
func (h *ApplicationHandler) adminFailure(c *fiber.Ctx, action string, err error) error {
	h.Logger.WithError(err).WithField("request_id", middleware.RequestID(c)).Warnf("Admin %s failed", action)
	return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
}

func adminKey(c *fiber.Ctx) string {
	if key, ok := c.Locals(middleware.LocalAdminKey).(string); ok {
		return key
	}
	return middleware.AdminKeyFrom(c)
}
