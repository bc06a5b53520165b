package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// SearchDays runs a full-text query over summaries and tag entry content
func (h *Handlers) SearchDays(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return badRequest(c, "q is required")
	}

	days, err := h.Search.Search(c.Context(), query)
	if err != nil {
		return serverErrorWithDetails(c, "Search failed", err)
	}

	return success(c, fiber.Map{"days": days})
}

// RecentSearches returns the search history, newest first
func (h *Handlers) RecentSearches(c *fiber.Ctx) error {
	history, err := h.Search.RecentSearches(c.Context())
	if err != nil {
		return serverErrorWithDetails(c, "Failed to fetch search history", err)
	}

	return success(c, fiber.Map{"searches": history})
}

// ClearRecentSearches wipes the search history
func (h *Handlers) ClearRecentSearches(c *fiber.Ctx) error {
	if err := h.Search.ClearHistory(c.Context()); err != nil {
		return serverErrorWithDetails(c, "Failed to clear search history", err)
	}

	return success(c, fiber.Map{"cleared": true})
}
