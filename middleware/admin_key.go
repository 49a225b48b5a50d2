package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"videothingy/trailer-portal/internal/apperr"
	"videothingy/trailer-portal/internal/guard"
)

const (
	// QueryAdminKey is the query parameter and form field carrying the admin key.
	QueryAdminKey = "key"
	// HeaderAdminKey is the request header carrying the admin key.
	HeaderAdminKey = "X-Admin-Key"

	// LocalAdminKey is the c.Locals key holding the accepted admin key.
	LocalAdminKey = "adminkey"
)

// AdminKeyFrom returns the first non-empty key found in the query string,
// the form body or the X-Admin-Key header.
func AdminKeyFrom(c *fiber.Ctx) string {
	if key := c.Query(QueryAdminKey); key != "" {
		return key
	}
	if key := c.FormValue(QueryAdminKey); key != "" {
		return key
	}
	return c.Get(HeaderAdminKey)
}

// AdminKey rejects requests whose key does not match the configured one.
func AdminKey(configured string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := AdminKeyFrom(c)
		if !guard.Authorize(key, configured) {
			return apperr.Forbidden()
		}
		c.Locals(LocalAdminKey, strings.TrimSpace(key))
		return c.Next()
	}
}
