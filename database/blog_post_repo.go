package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rpupo63/portfolio-site/models"
)

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *BlogPostRepo) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns the blog posts matching filter, newest first
func (r *BlogPostRepo) FindAll(ctx context.Context, filter BlogPostFilter) ([]*models.BlogPost, error) {
	var blogPosts []*models.BlogPost
	err := r.db.WithContext(ctx).Scopes(filter.Scope).Find(&blogPosts).Error
	return blogPosts, err
}


// Count returns how many blog posts match filter, ignoring its page
func (r *BlogPostRepo) Count(ctx context.Context, filter BlogPostFilter) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.BlogPost{}).Scopes(filter.Where).Count(&n).Error
	return n, err
}

// FindByID returns a blog post by its ID, or nil when there is none
func (r *BlogPostRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	return r.first(ctx, "id = ?", id)
}

// FindBySlug returns a blog post by its slug, or nil when there is none
func (r *BlogPostRepo) FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *BlogPostRepo) first(ctx context.Context, query string, arg any) (*models.BlogPost, error) {
	var blogPost models.BlogPost
	err := r.db.WithContext(ctx).Where(query, arg).First(&blogPost).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blogPost, nil
}

// Add inserts a new blog post into the database
func (r *BlogPostRepo) Add(ctx context.Context, blogPost *models.BlogPost) error {
	return r.db.WithContext(ctx).Create(blogPost).Error
}

// Update updates an existing blog post in the database
func (r *BlogPostRepo) Update(ctx context.Context, blogPost *models.BlogPost) error {
	return r.db.WithContext(ctx).Save(blogPost).Error
}

// UpsertBySlug inserts the post, or overwrites the content of the post that
// already has its slug. created_at of an existing post is kept and
// updated_at never moves before it.
func (r *BlogPostRepo) UpsertBySlug(ctx context.Context, blogPost *models.BlogPost) error {
	return upsertBySlug(r.db.WithContext(ctx), blogPost).Error
}

func upsertBySlug(tx *gorm.DB, blogPost *models.BlogPost) *gorm.DB {
	updates := clause.AssignmentColumns([]string{
		"title", "content", "summary", "image_url", "tags", "published", "author_id",
	})
	updates = append(updates, clause.Assignment{
		Column: clause.Column{Name: "updated_at"},
		Value:  gorm.Expr(`GREATEST(excluded.updated_at, "blog_posts".created_at)`),
	})
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: updates,
	}).Create(blogPost)
}

// Delete removes a blog post from the database by id
func (r *BlogPostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.BlogPost{}, "id = ?", id).Error
}
