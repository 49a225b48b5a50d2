package middleware

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LocalRequestID is the c.Locals key holding the request id.
const LocalRequestID = "requestid"

// RequestLogger creates a middleware handler for structured request logging with Logrus.
func RequestLogger(log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := uuid.NewString()

		c.Locals(LocalRequestID, requestID)
		c.Set("X-Request-Id", requestID)

		// Render the error now so the logged status matches what the client gets.
		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		latency := time.Since(start)
		statusCode := c.Response().StatusCode()

		logEntry := log.WithFields(logrus.Fields{
			"request_id":  requestID,
			"http_method": c.Method(),
			"uri":         redactKey(c.OriginalURL()),
			"status_code": statusCode,
			"latency_ms":  latency.Milliseconds(),
			"client_ip":   c.IP(),
			"user_agent":  string(c.Request().Header.UserAgent()),
		})
		if chainErr != nil {
			logEntry = logEntry.WithField("error", chainErr.Error())
		}

		if statusCode >= 500 {
			logEntry.Error("Request completed with server error")
		} else if statusCode >= 400 {
			logEntry.Warn("Request completed with client error")
		} else {
			logEntry.Info("Request completed successfully")
		}

		return nil
	}
}

// RequestID returns the id assigned by RequestLogger, if any.
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalRequestID).(string)
	return id
}

// redactKey hides the admin key query parameter from logged URIs.
func redactKey(uri string) string {
	u, err := url.ParseRequestURI(uri)
	if err != nil {
		return uri
	}
	q := u.Query()
	if q.Get("key") == "" {
		return uri
	}
	q.Set("key", "REDACTED")
	u.RawQuery = q.Encode()
	return u.RequestURI()
}
