package handlers

import (
	"github.com/gofiber/fiber/v2"

	"videothingy/trailer-portal/utils"
)

// HealthResponse reports which settings are present, never their values.
type HealthResponse struct {
	OK             bool   `json:"ok"`
	Version        string `json:"version"`
	HasSupabaseURL bool   `json:"hasSupabaseUrl"`
	HasSupabaseKey bool   `json:"hasSupabaseKey"`
	HasAdminKey    bool   `json:"hasAdminKey"`
	Bucket         string `json:"bucket"`
}

// Health reports process liveness and configuration presence.
// @Summary Health check
// @Tags ops
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /__healthz [get]
func (h *ApplicationHandler) Health(c *fiber.Ctx) error {
	s := h.Settings
	return utils.RespondWithJSON(c, fiber.StatusOK, HealthResponse{
		OK:             true,
		Version:        s.Version,
		HasSupabaseURL: s.SupabaseURL != "",
		HasSupabaseKey: s.SupabaseKey != "",
		HasAdminKey:    s.AdminKey != "",
		Bucket:         s.SupabaseBucket,
	})
}

// NotFound is the catch-all for unmatched routes.
func (h *ApplicationHandler) NotFound(c *fiber.Ctx) error {
	return fiber.ErrNotFound
}
