package services

import (
	"context"
	"time"

	"daybook/models"
)

// TagService handles business logic for tags. Tag names are unique; the
// store does not index-enforce that, so Create and Rename check here.
type TagService struct {
	repo TagRepository
}

// NewTagService creates a new tag service
func NewTagService(repo TagRepository) *TagService {
	return &TagService{repo: repo}
}

// Get retrieves a tag with its day associations
func (ts *TagService) Get(ctx context.Context, id int64) (*models.Tag, error) {
	tag, err := ts.repo.GetTag(ctx, id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, ErrTagNotFound
	}
	return tag, nil
}

// List returns every known tag, most recently used first
func (ts *TagService) List(ctx context.Context) ([]models.TagProperties, error) {
	return ts.repo.GetAllTagProperties(ctx)
}

// ObserveAll subscribes to the tag list
func (ts *TagService) ObserveAll(ctx context.Context) <-chan []models.TagProperties {
	return ts.repo.ObserveAllTagProperties(ctx)
}

// Create inserts a new tag, rejecting a name that is already taken
func (ts *TagService) Create(ctx context.Context, name string) (*models.TagProperties, error) {
	existing, err := ts.repo.GetTagPropertiesByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrTagAlreadyExists
	}

	props := &models.TagProperties{Name: name, LastUsedAt: time.Now().Unix()}
	if _, err := ts.repo.InsertTagProperties(ctx, props); err != nil {
		return nil, err
	}
	return props, nil
}

// Ensure returns the tag with the given name, creating it if necessary
func (ts *TagService) Ensure(ctx context.Context, name string) (*models.TagProperties, error) {
	existing, err := ts.repo.GetTagPropertiesByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	return ts.Create(ctx, name)
}

// Rename changes a tag's name, rejecting a name already used by another tag
func (ts *TagService) Rename(ctx context.Context, id int64, name string) error {
	existing, err := ts.repo.GetTagPropertiesByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != id {
		return ErrTagAlreadyExists
	}

	tag, err := ts.repo.GetTag(ctx, id)
	if err != nil {
		return err
	}
	if tag == nil {
		return ErrTagNotFound
	}

	tag.Name = name
	return ts.repo.UpdateTagProperties(ctx, &tag.TagProperties)
}

// Delete removes a tag and all its day associations
func (ts *TagService) Delete(ctx context.Context, id int64) error {
	return ts.repo.DeleteTag(ctx, id)
}

// TagDay links a day to a tag with optional entry content and refreshes the
// tag's last-used timestamp. Tagging the same day twice with the same tag
// fails; use UpdateEntry to change the content.
func (ts *TagService) TagDay(ctx context.Context, dayID, tagID int64, content *string) error {
	tag, err := ts.repo.GetTag(ctx, tagID)
	if err != nil {
		return err
	}
	if tag == nil {
		return ErrTagNotFound
	}

	entry := &models.TagEntry{DayID: dayID, TagID: tagID, Content: content}
	if err := ts.repo.InsertTagEntry(ctx, entry); err != nil {
		return err
	}

	tag.LastUsedAt = time.Now().Unix()
	return ts.repo.UpdateTagProperties(ctx, &tag.TagProperties)
}

// UntagDay removes the link between a day and a tag
func (ts *TagService) UntagDay(ctx context.Context, dayID, tagID int64) error {
	return ts.repo.DeleteTagEntry(ctx, dayID, tagID)
}

// UpdateEntry rewrites the content of an existing day/tag link
func (ts *TagService) UpdateEntry(ctx context.Context, dayID, tagID int64, content *string) error {
	return ts.repo.UpdateTagEntry(ctx, &models.TagEntry{DayID: dayID, TagID: tagID, Content: content})
}

// TagBatch links several day/tag pairs atomically; the whole batch fails if
// any pair already exists
func (ts *TagService) TagBatch(ctx context.Context, entries []models.TagEntry) error {
	return ts.repo.InsertTagEntries(ctx, entries)
}
