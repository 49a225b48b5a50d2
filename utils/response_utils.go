package utils

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RespondWithError sends a plain text error response.
func RespondWithError(c *fiber.Ctx, statusCode int, message string) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(statusCode).SendString(message)
}

// RespondWithJSON sends a JSON response.
func RespondWithJSON(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(data)
}

// RespondWithHTML sends a rendered page.
func RespondWithHTML(c *fiber.Ctx, statusCode int, body []byte) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(statusCode).Send(body)
}

// AdminLocation is the admin page URL carrying the given key.
func AdminLocation(key string) string {
	return "/admin?key=" + url.QueryEscape(key)
}

// FormatValidationErrors formats validation errors from validator/v10.
func FormatValidationErrors(err error) []string {
	var errors []string
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, err := range verrs {
			element := fmt.Sprintf("Field '%s' failed on the '%s' tag", err.Field(), err.Tag())
			if err.Param() != "" {
				element = fmt.Sprintf("%s (value: %s)", element, err.Param())
			}
			errors = append(errors, element)
		}
	}
	return errors
}

// SanitizeInput trims surrounding whitespace from form input.
func SanitizeInput(input string) string {
	return strings.TrimSpace(input)
}
