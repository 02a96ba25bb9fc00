package middleware

import (
	"time"

	"coolie-booking/logger"
	"coolie-booking/types"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger pushes one entry per request to the async logger.
// Bodies are captured as-is; the logger goroutine owns persistence.
func RequestLogger(asyncLogger *logger.AsyncLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		userID, _ := c.Locals("userID").(uint)
		asyncLogger.Log(types.LogEntry{
			Method:       c.Method(),
			URL:          c.OriginalURL(),
			RequestBody:  string(c.Body()),
			ResponseBody: string(c.Response().Body()),
			StatusCode:   c.Response().StatusCode(),
			UserID:       userID,
			CreatedAt:    time.Now(),
		})

		return err
	}
}
