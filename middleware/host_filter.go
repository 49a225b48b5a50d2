package middleware

import (
	"github.com/gofiber/fiber/v2"

	"videothingy/trailer-portal/internal/apperr"
	"videothingy/trailer-portal/internal/guard"
)

// EffectiveHost prefers X-Forwarded-Host over the Host header.
func EffectiveHost(c *fiber.Ctx) string {
	if fwd := c.Get(fiber.HeaderXForwardedHost); fwd != "" {
		return fwd
	}
	return string(c.Request().Host())
}

// HostFilter applies the process-wide host policy to every request.
func HostFilter(policy guard.HostPolicy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch policy.Decide(EffectiveHost(c)) {
		case guard.Deny:
			return apperr.Forbidden()
		case guard.Redirect:
			return c.Redirect(policy.RedirectURL(c.Protocol(), c.OriginalURL()), fiber.StatusMovedPermanently)
		default:
			return c.Next()
		}
	}
}
