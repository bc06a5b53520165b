package handlers

import (
	"errors"
	"strconv"

	"daybook/models"
	"daybook/services"

	"github.com/gofiber/fiber/v2"
)

// GetDay retrieves the entry for an epoch-day id. An unknown id returns an
// empty entry for that date rather than a 404 (there is always "today").
func (h *Handlers) GetDay(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "invalid day id")
	}

	day, err := h.Days.Get(c.Context(), id)
	if err != nil {
		return serverErrorWithDetails(c, "Failed to fetch day", err)
	}

	return success(c, fiber.Map{"day": day})
}

// ListDays returns the entries between two epoch-day ids, newest first
func (h *Handlers) ListDays(c *fiber.Ctx) error {
	start, err1 := strconv.ParseInt(c.Query("start"), 10, 64)
	end, err2 := strconv.ParseInt(c.Query("end"), 10, 64)
	if err1 != nil || err2 != nil {
		return badRequest(c, "start and end are required epoch-day ids")
	}

	// One-shot read of the same query the live range subscription runs
	ctx, cancel := firstValue(c)
	defer cancel()

	days := <-h.Days.ObserveRange(ctx, start, end)
	return success(c, fiber.Map{"days": days})
}

// OnThisDay returns the entries matching a calendar date across all years
func (h *Handlers) OnThisDay(c *fiber.Ctx) error {
	month, err1 := strconv.Atoi(c.Query("month"))
	dayOfMonth, err2 := strconv.Atoi(c.Query("day"))
	if err1 != nil || err2 != nil || month < 1 || month > 12 || dayOfMonth < 1 || dayOfMonth > 31 {
		return badRequest(c, "month and day are required")
	}

	ctx, cancel := firstValue(c)
	defer cancel()

	days := <-h.Days.OnThisDay(ctx, month, dayOfMonth)
	return success(c, fiber.Map{"days": days})
}

// SaveDay creates or updates the entry for a date
func (h *Handlers) SaveDay(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "invalid day id")
	}

	var req models.SaveDayRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.Validator.Validate(&req); err != nil {
		return writeError(c, "Validation failed", err)
	}

	day, err := h.Days.Save(c.Context(), id, req.Summary, req.IsFavorite)
	if err != nil {
		return writeError(c, "Failed to save day", err)
	}

	return success(c, fiber.Map{"day": day})
}

// ToggleFavorite flips the favorite flag of an existing entry
func (h *Handlers) ToggleFavorite(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "invalid day id")
	}

	day, err := h.Days.ToggleFavorite(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrDayNotFound) {
			return notFound(c, "day not found")
		}
		return writeError(c, "Failed to toggle favorite", err)
	}

	return success(c, fiber.Map{"day": day})
}
