package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ProjectRepo) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns the projects matching filter, featured first then newest first
func (r *ProjectRepo) FindAll(ctx context.Context, filter ProjectFilter) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).Scopes(filter.Scope).Find(&projects).Error
	return projects, err
}

// Count returns how many projects match filter, ignoring its page
func (r *ProjectRepo) Count(ctx context.Context, filter ProjectFilter) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Scopes(filter.Where).Count(&n).Error
	return n, err
}

// FindByID returns a project by its ID, or nil when there is none
func (r *ProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return r.first(ctx, "id = ?", id)
}

// FindBySlug returns a project by its slug, or nil when there is none
func (r *ProjectRepo) FindBySlug(ctx context.Context, slug string) (*models.Project, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *ProjectRepo) first(ctx context.Context, query string, arg any) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Where(query, arg).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Update updates an existing project in the database
func (r *ProjectRepo) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// Delete removes a project from the database by id
func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Project{}, "id = ?", id).Error
}
