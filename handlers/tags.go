package handlers

import (
	"errors"

	"daybook/models"
	"daybook/services"

	"github.com/gofiber/fiber/v2"
)

// GetTag retrieves a tag with its day associations
func (h *Handlers) GetTag(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "invalid tag id")
	}

	tag, err := h.Tags.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrTagNotFound) {
			return notFound(c, "tag not found")
		}
		return serverErrorWithDetails(c, "Failed to fetch tag", err)
	}

	return success(c, fiber.Map{"tag": tag})
}

// ListTags returns every known tag
func (h *Handlers) ListTags(c *fiber.Ctx) error {
	tags, err := h.Tags.List(c.Context())
	if err != nil {
		return serverErrorWithDetails(c, "Failed to list tags", err)
	}

	return success(c, fiber.Map{"tags": tags})
}

// CreateTag registers a new tag name
func (h *Handlers) CreateTag(c *fiber.Ctx) error {
	var req models.CreateTagRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.Validator.Validate(&req); err != nil {
		return writeError(c, "Validation failed", err)
	}

	tag, err := h.Tags.Create(c.Context(), req.Name)
	if err != nil {
		if errors.Is(err, services.ErrTagAlreadyExists) {
			return conflict(c, "a tag with this name already exists")
		}
		return writeError(c, "Failed to create tag", err)
	}

	return created(c, fiber.Map{"tag": tag})
}

// RenameTag changes a tag's name
func (h *Handlers) RenameTag(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "invalid tag id")
	}

	var req models.CreateTagRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.Validator.Validate(&req); err != nil {
		return writeError(c, "Validation failed", err)
	}

	if err := h.Tags.Rename(c.Context(), id, req.Name); err != nil {
		switch {
		case errors.Is(err, services.ErrTagNotFound):
			return notFound(c, "tag not found")
		case errors.Is(err, services.ErrTagAlreadyExists):
			return conflict(c, "a tag with this name already exists")
		}
		return writeError(c, "Failed to rename tag", err)
	}

	return success(c, fiber.Map{"renamed": id})
}

// DeleteTag removes a tag and its day associations
func (h *Handlers) DeleteTag(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "invalid tag id")
	}

	if err := h.Tags.Delete(c.Context(), id); err != nil {
		return serverErrorWithDetails(c, "Failed to delete tag", err)
	}

	return success(c, fiber.Map{"deleted": id})
}

// TagDay links a day to a tag with optional content. Tagging the same day
// twice with the same tag is a conflict.
func (h *Handlers) TagDay(c *fiber.Ctx) error {
	var req models.TagEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.Validator.Validate(&req); err != nil {
		return writeError(c, "Validation failed", err)
	}

	if err := h.Tags.TagDay(c.Context(), req.DayID, req.TagID, req.Content); err != nil {
		if errors.Is(err, services.ErrTagNotFound) {
			return notFound(c, "tag not found")
		}
		return writeError(c, "This day already carries this tag", err)
	}

	return created(c, fiber.Map{"tagged": true})
}

// UpdateTagEntry rewrites the content of an existing day/tag link
func (h *Handlers) UpdateTagEntry(c *fiber.Ctx) error {
	var req models.TagEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.Validator.Validate(&req); err != nil {
		return writeError(c, "Validation failed", err)
	}

	if err := h.Tags.UpdateEntry(c.Context(), req.DayID, req.TagID, req.Content); err != nil {
		return writeError(c, "Failed to update tag entry", err)
	}

	return success(c, fiber.Map{"updated": true})
}

// UntagDay removes the link between a day and a tag
func (h *Handlers) UntagDay(c *fiber.Ctx) error {
	var req models.TagEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.Tags.UntagDay(c.Context(), req.DayID, req.TagID); err != nil {
		return serverErrorWithDetails(c, "Failed to untag day", err)
	}

	return success(c, fiber.Map{"untagged": true})
}
