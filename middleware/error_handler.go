package middleware

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"videothingy/trailer-portal/internal/apperr"
	"videothingy/trailer-portal/internal/upload"
	"videothingy/trailer-portal/utils"
)

// ErrorHandler renders every error as plain text. Portal errors map through
// apperr.Status; server-side failures hide their detail from the client.
// An oversized request body is reported like any other upload size error.
func ErrorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := apperr.Status(err)
		message := err.Error()

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		switch {
		case code == fiber.StatusRequestEntityTooLarge:
			// Raised by the server's body limit before any handler runs.
			code = fiber.StatusBadRequest
			message = fmt.Sprintf("video is larger than %d MiB", upload.MaxUploadBytes>>20)
		case code == fiber.StatusNotFound:
			message = "Not found"
		case code >= fiber.StatusInternalServerError:
			log.WithError(err).WithField("request_id", RequestID(c)).Error("Unhandled request error")
			message = "Internal Server Error"
		}

		return utils.RespondWithError(c, code, message)
	}
}
