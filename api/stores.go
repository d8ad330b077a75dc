package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/models"
)

// ProjectStore is the project storage the handlers need; *database.ProjectRepo satisfies it
type ProjectStore interface {
	FindAll(ctx context.Context, filter database.ProjectFilter) ([]*models.Project, error)
	Count(ctx context.Context, filter database.ProjectFilter) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	FindBySlug(ctx context.Context, slug string) (*models.Project, error)
	Add(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BlogPostStore is satisfied by *database.BlogPostRepo
type BlogPostStore interface {
	FindAll(ctx context.Context, filter database.BlogPostFilter) ([]*models.BlogPost, error)
	Count(ctx context.Context, filter database.BlogPostFilter) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error)
	FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	Add(ctx context.Context, blogPost *models.BlogPost) error
	Update(ctx context.Context, blogPost *models.BlogPost) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TagStore interface {
	ProjectTags(ctx context.Context) ([]string, error)
	BlogTags(ctx context.Context, publishedOnly bool) ([]string, error)
	Categories(ctx context.Context) ([]string, error)
}

// ContactDeliverer hands a validated submission to the site owner
type ContactDeliverer interface {
	Deliver(ctx context.Context, submission models.ContactSubmission) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// CVSource loads the current CV
type CVSource func() (*models.CV, error)
