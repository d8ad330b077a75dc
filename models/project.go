package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project represents a portfolio entry
type Project struct {
	ID          uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title       string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Slug        string                      `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_projects_slug"`
	Description string                      `json:"description" db:"description" gorm:"type:text;not null"`
	ImageURL    *string                     `json:"image_url,omitempty" db:"image_url" gorm:"type:text"`
	ProjectURL  *string                     `json:"project_url,omitempty" db:"project_url" gorm:"type:text"`
	GithubURL   *string                     `json:"github_url,omitempty" db:"github_url" gorm:"type:text"`
	Category    *string                     `json:"category,omitempty" db:"category" gorm:"type:text;index:idx_projects_category"`
	Tags        datatypes.JSONSlice[string] `json:"tags,omitempty" db:"tags" gorm:"type:jsonb"`
	TechStack   datatypes.JSONSlice[string] `json:"tech_stack,omitempty" db:"tech_stack" gorm:"type:jsonb"`
	CreatedAt   time.Time                   `json:"created_at" db:"created_at" gorm:"type:timestamptz;not null;autoCreateTime"`
	UpdatedAt   time.Time                   `json:"updated_at" db:"updated_at" gorm:"type:timestamptz;not null;autoUpdateTime"`
	Featured    bool                        `json:"featured" db:"featured" gorm:"type:boolean;not null;default:false"`
	Type        *string                     `json:"type,omitempty" db:"type" gorm:"type:text"`
}

// Validate checks the invariants a project must satisfy before it is stored
func (p *Project) Validate() error {
	if p.Title == "" {
		return missing("title")
	}
	if p.Description == "" {
		return missing("description")
	}
	if !ValidSlug(p.Slug) {
		return invalid("slug", "must be lowercase letters, digits and single hyphens")
	}
	links := []struct {
		field string
		value *string
	}{
		{"image_url", p.ImageURL},
		{"project_url", p.ProjectURL},
		{"github_url", p.GithubURL},
	}
	for _, link := range links {
		if link.value != nil && !ValidURL(*link.value) {
			return invalid(link.field, "must be an absolute http(s) URL")
		}
	}
	return checkTimestamps(p.CreatedAt, p.UpdatedAt)
}

// BeforeSave fills the slug from the title when absent, keeps timestamps in
// UTC and never lets updated_at precede created_at
func (p *Project) BeforeSave(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	if !p.CreatedAt.IsZero() && p.UpdatedAt.Before(p.CreatedAt) {
		p.UpdatedAt = p.CreatedAt
	}
	return nil
}
