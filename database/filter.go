package database

import (
	"encoding/json"

	"gorm.io/gorm"
)

// MaxPageSize caps every list query
const MaxPageSize = 100

// ProjectFilter narrows a project listing. Zero values mean "no filter".
type ProjectFilter struct {
	Featured *bool
	Category string
	Type     string
	Tag      string
	Limit    int
	Offset   int
}

// BlogPostFilter narrows a blog post listing
type BlogPostFilter struct {
	PublishedOnly bool
	Tag           string
	AuthorID      string
	Limit         int
	Offset        int
}

// Scope applies the filter, ordering and page to a projects query, for use with gorm's Scopes
func (f ProjectFilter) Scope(q *gorm.DB) *gorm.DB {
	return paginate(f.Where(q), f.Limit, f.Offset).Order("featured DESC").Order("created_at DESC")
}

// Where applies only the conditions, so counts see the whole collection
func (f ProjectFilter) Where(q *gorm.DB) *gorm.DB {
	if f.Featured != nil {
		q = q.Where("featured = ?", *f.Featured)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Tag != "" {
		q = hasTag(q, f.Tag)
	}
	return q
}

// Scope applies the filter to a blog posts query
func (f BlogPostFilter) Scope(q *gorm.DB) *gorm.DB {
	return paginate(f.Where(q), f.Limit, f.Offset).Order("created_at DESC")
}

func (f BlogPostFilter) Where(q *gorm.DB) *gorm.DB {
	if f.PublishedOnly {
		q = q.Where("published = ?", true)
	}
	if f.AuthorID != "" {
		q = q.Where("author_id = ?", f.AuthorID)
	}
	if f.Tag != "" {
		q = hasTag(q, f.Tag)
	}
	return q
}

func paginate(q *gorm.DB, limit, offset int) *gorm.DB {
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return q.Limit(limit).Offset(offset)
}

// hasTag matches rows whose jsonb tags array contains tag
func hasTag(q *gorm.DB, tag string) *gorm.DB {
	needle, _ := json.Marshal([]string{tag})
	return q.Where("tags @> ?::jsonb", string(needle))
}
