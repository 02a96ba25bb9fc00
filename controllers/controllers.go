package controllers

import (
	"net/http"

	"coolie-booking/domain"
	"coolie-booking/logger"
	"coolie-booking/types"

	"github.com/gofiber/fiber/v2"
)

// RespondError maps a domain error to its HTTP status. Internal errors
// are logged and masked; everything from the taxonomy passes its
// message through so callers can act on it.
func RespondError(c *fiber.Ctx, err error, internalMsg string) error {
	status := domain.StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error(internalMsg, err)
		message = internalMsg
	}
	return c.Status(status).JSON(types.ApiResponse{
		Status:  status,
		Message: message,
	})
}

// BadRequest is the parse-failure response for unreadable bodies.
func BadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
		Status:  fiber.StatusBadRequest,
		Message: message,
	})
}
