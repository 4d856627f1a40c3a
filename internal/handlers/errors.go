package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// errorResponse writes {"error": message} with status.
func errorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// validationResponse answers 400 with a per-field breakdown of err.
func validationResponse(c *fiber.Ctx, message string, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errorResponse(c, fiber.StatusBadRequest, message)
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  message,
		"errors": errorMessages,
	})
}

// internalError logs err and hides it behind a generic 500.
func internalError(c *fiber.Ctx, logger *zap.Logger, msg string, err error) error {
	logger.Error(msg,
		zap.String("path", c.Path()),
		zap.Any("request_id", c.Locals("requestid")),
		zap.Error(err),
	)
	return errorResponse(c, fiber.StatusInternalServerError, "Internal server error")
}
