package handlers

import (
	"errors"
	"time"

	"daybook/models"
	"daybook/services"

	"github.com/gofiber/fiber/v2"
)

// GetLocation retrieves a location with its day associations
func (h *Handlers) GetLocation(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "invalid location id")
	}

	loc, err := h.Locations.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrLocationNotFound) {
			return notFound(c, "location not found")
		}
		return serverErrorWithDetails(c, "Failed to fetch location", err)
	}

	return success(c, fiber.Map{"location": loc})
}

// ListLocations returns every known location
func (h *Handlers) ListLocations(c *fiber.Ctx) error {
	locations, err := h.Locations.List(c.Context())
	if err != nil {
		return serverErrorWithDetails(c, "Failed to list locations", err)
	}

	return success(c, fiber.Map{"locations": locations})
}

// CreateLocation registers a named coordinate pair
func (h *Handlers) CreateLocation(c *fiber.Ctx) error {
	var req models.CreateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.Validator.Validate(&req); err != nil {
		return writeError(c, "Validation failed", err)
	}

	props := &models.LocationProperties{
		Lat:        req.Lat,
		Lon:        req.Lon,
		Name:       req.Name,
		LastUsedAt: time.Now().Unix(),
	}
	if _, err := h.Locations.Create(c.Context(), props); err != nil {
		return writeError(c, "A location with these coordinates already exists", err)
	}

	return created(c, fiber.Map{"location": props})
}

// UpdateLocation rewrites a location's properties
func (h *Handlers) UpdateLocation(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "invalid location id")
	}

	var req models.CreateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.Validator.Validate(&req); err != nil {
		return writeError(c, "Validation failed", err)
	}

	props := &models.LocationProperties{
		ID:         id,
		Lat:        req.Lat,
		Lon:        req.Lon,
		Name:       req.Name,
		LastUsedAt: time.Now().Unix(),
	}
	if err := h.Locations.Update(c.Context(), props); err != nil {
		return writeError(c, "Failed to update location", err)
	}

	return success(c, fiber.Map{"location": props})
}

// DeleteLocation removes a location and its day associations
func (h *Handlers) DeleteLocation(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "invalid location id")
	}

	if err := h.Locations.Delete(c.Context(), id); err != nil {
		return serverErrorWithDetails(c, "Failed to delete location", err)
	}

	return success(c, fiber.Map{"deleted": id})
}

// AttachLocation links a day to a location (idempotent)
func (h *Handlers) AttachLocation(c *fiber.Ctx) error {
	var req models.LocationEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.Validator.Validate(&req); err != nil {
		return writeError(c, "Validation failed", err)
	}

	if err := h.Locations.AttachToDay(c.Context(), req.DayID, req.LocationID); err != nil {
		if errors.Is(err, services.ErrLocationNotFound) {
			return notFound(c, "location not found")
		}
		return writeError(c, "Failed to attach location", err)
	}

	return success(c, fiber.Map{"attached": true})
}

// DetachLocation removes the link between a day and a location
func (h *Handlers) DetachLocation(c *fiber.Ctx) error {
	var req models.LocationEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.Locations.DetachFromDay(c.Context(), req.DayID, req.LocationID); err != nil {
		return serverErrorWithDetails(c, "Failed to detach location", err)
	}

	return success(c, fiber.Map{"detached": true})
}
