package api

import (
	"github.com/rpupo63/portfolio-site/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler    projectHandler
	blogPostHandler   blogPostHandler
	tagHandler        tagHandler
	contactHandler    contactHandler
	cvHandler         cvHandler
	siteConfigHandler siteConfigHandler
	toastHandler      toastHandler
	pageHandler       pageHandler
	healthHandler     healthHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// ProjectCollection is a page of projects. Total counts every match, not just the page.
type ProjectCollection struct {
	Projects []*models.Project `json:"projects"`
	Total    int64             `json:"total"`
}

// BlogPostCollection is a page of blog posts
type BlogPostCollection struct {
	BlogPosts []*models.BlogPost `json:"blogPosts"`
	Total     int64              `json:"total"`
}

// TagsResponse lists the vocabulary used across the site
type TagsResponse struct {
	ProjectTags []string `json:"project_tags"`
	BlogTags    []string `json:"blog_tags"`
	Categories  []string `json:"categories"`
}

type StatusResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status        string `json:"status" example:"ok"`
	Database      string `json:"database" example:"ok"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}
