package repository

import (
	"context"

	"gorm.io/gorm"

	"cms/internal/model"
)

// ContentRepository defines content item persistence operations.
type ContentRepository interface {
	Create(ctx context.Context, item *model.ContentItem) error
	Update(ctx context.Context, item *model.ContentItem) error
	Delete(ctx context.Context, item *model.ContentItem) error
	FindByID(ctx context.Context, id uint) (*model.ContentItem, error)
	FindByAuthor(ctx context.Context, authorID uint, offset, limit int) ([]model.ContentItem, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
}

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository builds a GORM-backed repository.
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(ctx context.Context, item *model.ContentItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *contentRepository) Update(ctx context.Context, item *model.ContentItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete hard-deletes the row.
func (r *contentRepository) Delete(ctx context.Context, item *model.ContentItem) error {
	return r.db.WithContext(ctx).Delete(item).Error
}

func (r *contentRepository) FindByID(ctx context.Context, id uint) (*model.ContentItem, error) {
	var item model.ContentItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByAuthor returns the author's items newest-first within the given slice.
func (r *contentRepository) FindByAuthor(ctx context.Context, authorID uint, offset, limit int) ([]model.ContentItem, error) {
	var items []model.ContentItem
	if err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *contentRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.ContentItem{}).
		Where("author_id = ?", authorID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByTitle probes title uniqueness with a case-sensitive exact match.
// BINARY forces byte comparison on collations that are case-insensitive.
func (r *contentRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.ContentItem{}).
		Where("BINARY title = ?", title).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
