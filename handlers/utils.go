package handlers

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"daybook/database"
	"daybook/validator"

	"github.com/gofiber/fiber/v2"
)

func success(c *fiber.Ctx, data fiber.Map) error {
	return c.JSON(data)
}

func created(c *fiber.Ctx, data fiber.Map) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": message})
}

func conflict(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": message})
}

func serverErrorWithDetails(c *fiber.Ctx, message string, err error) error {
	requestID := ""
	if id, ok := c.Locals("requestID").(string); ok {
		requestID = id
	}

	slog.Error("server error",
		"request_id", requestID,
		"method", c.Method(),
		"path", c.Path(),
		"message", message,
		"error", err,
	)

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": message})
}

// writeError maps layered errors onto status codes: constraint conflicts
// become 409, validation failures 400, everything else 500.
func writeError(c *fiber.Ctx, message string, err error) error {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, database.ErrConflict):
		return conflict(c, message)
	case errors.As(err, &validationErrs):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": validationErrs,
		})
	default:
		return serverErrorWithDetails(c, message, err)
	}
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	return strconv.ParseInt(c.Params(name), 10, 64)
}

// firstValue scopes a live subscription to a single read: the handler takes
// the initial emission and the cancel tears the subscription down.
func firstValue(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithCancel(c.Context())
}
