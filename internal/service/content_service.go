package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"unicode/utf8"

	"gorm.io/gorm"

	"cms/internal/auth"
	"cms/internal/errors"
	"cms/internal/model"
	"cms/internal/repository"
)

const (
	maxTitleLength = 30
	maxBodyLength  = 300

	defaultPage  = 1
	defaultItems = 10
)

// CreateContentInput carries a new content item payload.
type CreateContentInput struct {
	Title      string
	Body       string
	Summary    string
	Categories string
	PDFFile    string
}

// UpdateContentInput carries a partial update; nil fields are left untouched.
type UpdateContentInput struct {
	Title      *string
	Body       *string
	Summary    *string
	Categories *string
	PDFFile    *string
}

// Pagination describes the slice returned by ListForAuthor.
type Pagination struct {
	TotalEntries int64 `json:"total_entries"`
	Page         int   `json:"page"`
	Items        int   `json:"items"`
	TotalPages   int   `json:"total_pages"`
}

// ContentService exposes content item operations with authorization applied.
type ContentService interface {
	Get(ctx context.Context, user *model.User, id uint) (*model.ContentItem, error)
	ListForAuthor(ctx context.Context, user *model.User, page, items int) ([]model.ContentItem, *Pagination, error)
	Create(ctx context.Context, user *model.User, input CreateContentInput) (*model.ContentItem, error)
	Update(ctx context.Context, user *model.User, id uint, input UpdateContentInput) (*model.ContentItem, error)
	Delete(ctx context.Context, user *model.User, id uint) error
}

type contentService struct {
	contentRepo repository.ContentRepository
}

// NewContentService creates a new content service.
func NewContentService(contentRepo repository.ContentRepository) ContentService {
	return &contentService{contentRepo: contentRepo}
}

func (s *contentService) fetch(ctx context.Context, id uint) (*model.ContentItem, error) {
	item, err := s.contentRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrContentNotFound
		}
		return nil, fmt.Errorf("find content: %w", err)
	}
	return item, nil
}

// Get fetches one item and applies the object-level policy.
func (s *contentService) Get(ctx context.Context, user *model.User, id uint) (*model.ContentItem, error) {
	item, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.CanAccessObject(user, item, auth.ActionGet); err != nil {
		return nil, err
	}
	return item, nil
}

// ListForAuthor returns the caller's own items, offset-paginated. page=0 reads
// as page 1 and items=1 resets to the default of 10; items=0 keeps an empty
// slice, which reads as an invalid page on a non-empty collection. A page past
// the end of a non-empty collection is an error; an empty collection is not.
func (s *contentService) ListForAuthor(ctx context.Context, user *model.User, page, items int) ([]model.ContentItem, *Pagination, error) {
	if page <= 0 {
		page = defaultPage
	}
	if items == 1 {
		items = defaultItems
	}
	if items < 0 {
		items = 0
	}

	total, err := s.contentRepo.CountByAuthor(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("count content: %w", err)
	}
	if total == 0 {
		return []model.ContentItem{}, nil, nil
	}

	offset := (page - 1) * items
	results, err := s.contentRepo.FindByAuthor(ctx, user.ID, offset, items)
	if err != nil {
		return nil, nil, fmt.Errorf("list content: %w", err)
	}
	if len(results) == 0 {
		return nil, nil, errors.ErrInvalidPage
	}

	totalPages := int((total + int64(items) - 1) / int64(items))
	return results, &Pagination{
		TotalEntries: total,
		Page:         page,
		Items:        items,
		TotalPages:   totalPages,
	}, nil
}

// validateTitle checks presence, length and case-sensitive uniqueness. A title
// equal to current (the instance's own title on update) passes the uniqueness
// probe.
func (s *contentService) validateTitle(ctx context.Context, title, current string) ([]string, error) {
	if title == "" {
		return []string{"Title is required."}, nil
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return []string{fmt.Sprintf("Title length must not exceed %d characters.", maxTitleLength)}, nil
	}
	if title == current {
		return nil, nil
	}
	exists, err := s.contentRepo.ExistsByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("check title existence: %w", err)
	}
	if exists {
		return []string{"Title already exists. Please choose a different title."}, nil
	}
	return nil, nil
}

func validateBody(body string) []string {
	if body == "" {
		return []string{"Body is required."}
	}
	if utf8.RuneCountInString(body) > maxBodyLength {
		return []string{fmt.Sprintf("Body length must not exceed %d characters.", maxBodyLength)}
	}
	return nil
}

// Create persists a new item authored by the caller.
func (s *contentService) Create(ctx context.Context, user *model.User, input CreateContentInput) (*model.ContentItem, error) {
	var violations []string

	titleViolations, err := s.validateTitle(ctx, input.Title, "")
	if err != nil {
		return nil, err
	}
	violations = append(violations, titleViolations...)
	violations = append(violations, validateBody(input.Body)...)

	if len(violations) > 0 {
		return nil, errors.NewValidation(violations...)
	}

	item := &model.ContentItem{
		AuthorID:   user.ID,
		Title:      input.Title,
		Body:       input.Body,
		Summary:    input.Summary,
		Categories: input.Categories,
		PDFFile:    input.PDFFile,
	}
	if err := s.contentRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}
	return item, nil
}

// Update merges a partial payload into an existing item after the object-level
// policy passes. Present fields follow the same rules as on create.
func (s *contentService) Update(ctx context.Context, user *model.User, id uint, input UpdateContentInput) (*model.ContentItem, error) {
	item, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.CanAccessObject(user, item, auth.ActionPut); err != nil {
		return nil, err
	}

	var violations []string
	if input.Title != nil {
		titleViolations, err := s.validateTitle(ctx, *input.Title, item.Title)
		if err != nil {
			return nil, err
		}
		violations = append(violations, titleViolations...)
	}
	if input.Body != nil {
		violations = append(violations, validateBody(*input.Body)...)
	}
	if len(violations) > 0 {
		return nil, errors.NewValidation(violations...)
	}

	if input.Title != nil {
		item.Title = *input.Title
	}
	if input.Body != nil {
		item.Body = *input.Body
	}
	if input.Summary != nil {
		item.Summary = *input.Summary
	}
	if input.Categories != nil {
		item.Categories = *input.Categories
	}
	if input.PDFFile != nil {
		item.PDFFile = *input.PDFFile
	}

	if err := s.contentRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update content: %w", err)
	}
	return item, nil
}

// Delete hard-deletes the item after the object-level policy passes.
func (s *contentService) Delete(ctx context.Context, user *model.User, id uint) error {
	item, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.CanAccessObject(user, item, auth.ActionDelete); err != nil {
		return err
	}
	if err := s.contentRepo.Delete(ctx, item); err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	return nil
}
