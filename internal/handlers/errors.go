package handlers

import (
	"errors"
	"fmt"

	"surplussaver/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// statusFromError maps the service error taxonomy onto HTTP statuses.
// An unavailable bag counts as "entity not in expected state" and surfaces
// as 404, not 409.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrNotAvailable):
		return fiber.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// respondError writes the standard error body for a failed request.
func respondError(c *fiber.Ctx, message string, err error) error {
	return c.Status(statusFromError(err)).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// respondValidationError writes a 400 with per-field messages.
func respondValidationError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
