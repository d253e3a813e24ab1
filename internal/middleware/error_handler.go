package middleware

import (
	"rentdesk-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler is the global error handler. Returns the standard error format.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code, message, details := response.Classify(err)
	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("trace_id", GetTraceID(c)).Str("path", c.Path()).Msg("request failed")
	}
	return response.Error(c, message, code, details)
}
