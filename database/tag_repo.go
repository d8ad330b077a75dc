package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site/models"
)

// TagRepo answers vocabulary queries over the tags and categories stored on
// projects and blog posts.
type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *TagRepo) GetDB() *gorm.DB {
	return r.db
}

// tags columns may hold a jsonb null; those rows contribute nothing
const distinctTagsQuery = `
	SELECT DISTINCT tag
	FROM %s,
		jsonb_array_elements_text(CASE WHEN jsonb_typeof(tags) = 'array' THEN tags ELSE '[]'::jsonb END) AS tag
	%s
	ORDER BY tag`

// ProjectTags returns every tag used by at least one project, sorted
func (r *TagRepo) ProjectTags(ctx context.Context) ([]string, error) {
	tags := []string{}
	err := r.db.WithContext(ctx).Raw(fmt.Sprintf(distinctTagsQuery, "projects", "")).Scan(&tags).Error
	return tags, err
}

// BlogTags returns every tag used by a blog post, sorted. With publishedOnly
// drafts are ignored.
func (r *TagRepo) BlogTags(ctx context.Context, publishedOnly bool) ([]string, error) {
	where := ""
	if publishedOnly {
		where = "WHERE published = true"
	}
	tags := []string{}
	err := r.db.WithContext(ctx).Raw(fmt.Sprintf(distinctTagsQuery, "blog_posts", where)).Scan(&tags).Error
	return tags, err
}

// Categories returns the distinct project categories, sorted
func (r *TagRepo) Categories(ctx context.Context) ([]string, error) {
	categories := []string{}
	err := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Distinct("category").
		Where("category IS NOT NULL").
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}
