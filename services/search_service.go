package services

import (
	"context"
	"strings"

	"daybook/models"
)

// SearchService handles full-text search over entries and the recent
// search history
type SearchService struct {
	repo SearchRepository
}

// NewSearchService creates a new search service
func NewSearchService(repo SearchRepository) *SearchService {
	return &SearchService{repo: repo}
}

// Search runs a full-text query over day summaries and tag entry content
// and records the term in the recent-search history
func (ss *SearchService) Search(ctx context.Context, query string) ([]models.Day, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return make([]models.Day, 0), nil
	}

	days, err := ss.repo.SearchDays(ctx, query)
	if err != nil {
		return nil, err
	}

	// History recording is best-effort: a failed write doesn't fail the search
	_ = ss.repo.InsertRecentSearch(ctx, query)

	return days, nil
}

// Observe subscribes to a live search result
func (ss *SearchService) Observe(ctx context.Context, query string) <-chan []models.Day {
	return ss.repo.ObserveSearch(ctx, query)
}

// RecentSearches returns the search history, newest first
func (ss *SearchService) RecentSearches(ctx context.Context) ([]string, error) {
	return ss.repo.GetRecentSearches(ctx)
}

// ObserveRecentSearches subscribes to the search history
func (ss *SearchService) ObserveRecentSearches(ctx context.Context) <-chan []string {
	return ss.repo.ObserveRecentSearches(ctx)
}

// ClearHistory wipes the search history
func (ss *SearchService) ClearHistory(ctx context.Context) error {
	return ss.repo.ClearRecentSearches(ctx)
}
