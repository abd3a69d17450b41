package model

import "time"

// ContentItem represents a short text item with an optional PDF attachment.
// The author reference is immutable after creation; items are removed together
// with their author.
type ContentItem struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	AuthorID   uint      `json:"author_id" gorm:"not null;index"`
	Title      string    `json:"title" gorm:"uniqueIndex;size:30;not null"`
	Body       string    `json:"body" gorm:"size:300;not null"`
	Summary    string    `json:"summary" gorm:"type:text"`
	PDFFile    string    `json:"pdf_file" gorm:"size:255"` // stored file reference, optional
	Categories string    `json:"categories" gorm:"size:255"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Author User `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the historical table name.
func (ContentItem) TableName() string {
	return "content_items"
}
