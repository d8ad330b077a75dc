package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BlogPost represents a complete blog post with metadata
type BlogPost struct {
	ID        uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title     string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Slug      string                      `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_blog_posts_slug"`
	Content   string                      `json:"content" db:"content" gorm:"type:text;not null"`
	Summary   *string                     `json:"summary,omitempty" db:"summary" gorm:"type:text"`
	ImageURL  *string                     `json:"image_url,omitempty" db:"image_url" gorm:"type:text"`
	Tags      datatypes.JSONSlice[string] `json:"tags,omitempty" db:"tags" gorm:"type:jsonb"`
	CreatedAt time.Time                   `json:"created_at" db:"created_at" gorm:"type:timestamptz;not null;autoCreateTime"`
	UpdatedAt time.Time                   `json:"updated_at" db:"updated_at" gorm:"type:timestamptz;not null;autoUpdateTime"`
	Published bool                        `json:"published" db:"published" gorm:"type:boolean;not null;default:false;index:idx_blog_posts_published"`
	// AuthorID identifies an author owned by the auth backend. It is never resolved here.
	AuthorID *string `json:"author_id,omitempty" db:"author_id" gorm:"type:text"`
}

// IsPublished reports whether the post may be shown to visitors
func (b *BlogPost) IsPublished() bool {
	return b.Published
}

func (b *BlogPost) Validate() error {
	if b.Title == "" {
		return missing("title")
	}
	if b.Content == "" {
		return missing("content")
	}
	if !ValidSlug(b.Slug) {
		return invalid("slug", "must be lowercase letters, digits and single hyphens")
	}
	if b.ImageURL != nil && !ValidURL(*b.ImageURL) {
		return invalid("image_url", "must be an absolute http(s) URL")
	}
	return checkTimestamps(b.CreatedAt, b.UpdatedAt)
}

// BeforeSave fills the slug from the title when absent, keeps timestamps in
// UTC and never lets updated_at precede created_at
func (b *BlogPost) BeforeSave(tx *gorm.DB) error {
	if b.Slug == "" {
		b.Slug = Slugify(b.Title)
	}
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
	if !b.CreatedAt.IsZero() && b.UpdatedAt.Before(b.CreatedAt) {
		b.UpdatedAt = b.CreatedAt
	}
	return nil
}
