package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/errs"
	"github.com/rpupo63/portfolio-site/models"
)

type blogPostHandler struct {
	responder    Responder
	logger       zerolog.Logger
	blogPostRepo BlogPostStore
	maxBodySize  int64
}

func newBlogPostHandler(blogPostRepo BlogPostStore, maxBodySize int64) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		blogPostRepo: blogPostRepo,
		maxBodySize:  maxBodySize,
	}
}

// visible hides drafts from everyone but the site owner
func visible(r *http.Request, blogPost *models.BlogPost) bool {
	return blogPost != nil && (blogPost.IsPublished() || ctxIsAdmin(r.Context()))
}

// getAllBlogPosts retrieves blog posts, newest first
// @Summary Get all blog posts
// @Description Retrieves published blog posts. Drafts are included for the site owner.
// @Tags Blog Posts
// @Produce json
// @Param tag query string false "Tag"
// @Param author_id query string false "Author ID"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Page offset"
// @Success 200 {object} BlogPostCollection "List of blog posts"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching blog posts"
// @Router /blog-posts [get]
func (h blogPostHandler) getAllBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset, err := pagination(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		query := r.URL.Query()
		filter := database.BlogPostFilter{
			PublishedOnly: !ctxIsAdmin(r.Context()),
			Tag:           query.Get("tag"),
			AuthorID:      query.Get("author_id"),
			Limit:         limit,
			Offset:        offset,
		}
		blogPosts, err := h.blogPostRepo.FindAll(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog posts", "blog_posts", err))
			return
		}
		if blogPosts == nil {
			blogPosts = []*models.BlogPost{}
		}
		total, err := h.blogPostRepo.Count(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count blog posts", "blog_posts", err))
			return
		}

		h.responder.WriteJSON(w, BlogPostCollection{
			BlogPosts: blogPosts,
			Total:     total,
		})
	}
}

// getBlogPost retrieves a specific blog post by ID
// @Summary Get blog post
// @Tags Blog Posts
// @Produce json
// @Param blogPostID path string true "Blog Post ID" format(uuid)
// @Success 200 {object} models.BlogPost "Blog post details"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid blogPostID"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /blog-post/{blogPostID} [get]
func (h blogPostHandler) getBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := uuidParam(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blogPost, err := h.blogPostRepo.FindByID(r.Context(), blogPostID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog_post", err))
			return
		}
		if !visible(r, blogPost) {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}

		h.responder.WriteJSON(w, blogPost)
	}
}

// getBlogPostBySlug retrieves a specific blog post by slug
// @Summary Get blog post by slug
// @Tags Blog Posts
// @Produce json
// @Param slug path string true "Blog post slug"
// @Success 200 {object} models.BlogPost "Blog post details"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /blog-post/slug/{slug} [get]
func (h blogPostHandler) getBlogPostBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if !models.ValidSlug(slug) {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}

		blogPost, err := h.blogPostRepo.FindBySlug(r.Context(), slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog_post", err))
			return
		}
		if !visible(r, blogPost) {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}

		h.responder.WriteJSON(w, blogPost)
	}
}

// createBlogPost creates a new blog post
// @Summary Create blog post
// @Description Creates a new blog post. The slug is derived from the title when omitted.
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param blogPost body models.BlogPost true "Blog post data"
// @Success 201 {object} models.BlogPost "Created blog post"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid blog post data"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Conflict - Slug already in use"
// @Router /blog-post [post]
func (h blogPostHandler) createBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var blogPost models.BlogPost
		if err := decodeJSON(w, r, h.maxBodySize, "blog post", &blogPost); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to decode blog post request body")
			h.responder.WriteError(w, err)
			return
		}

		blogPost.ID = uuid.Nil
		if blogPost.Slug == "" {
			blogPost.Slug = models.Slugify(blogPost.Title)
		}
		now := time.Now().UTC()
		blogPost.CreatedAt, blogPost.UpdatedAt = now, now

		if err := blogPost.Validate(); err != nil {
			h.responder.WriteError(w, errs.FromValidation(err))
			return
		}

		if err := h.ensureSlugFree(r, blogPost.Slug, uuid.Nil); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.blogPostRepo.Add(r.Context(), &blogPost); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create blog post", "blog_post", err))
			return
		}

		h.logger.Info().
			Str("blogPostID", blogPost.ID.String()).
			Str("slug", blogPost.Slug).
			Bool("published", blogPost.Published).
			Msg("Created blog post")
		h.responder.WriteJSONStatus(w, http.StatusCreated, blogPost)
	}
}

// updateBlogPost replaces an existing blog post. created_at is kept.
// @Summary Update blog post
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param blogPostID path string true "Blog Post ID" format(uuid)
// @Param blogPost body models.BlogPost true "Updated blog post data"
// @Success 200 {object} models.BlogPost "Updated blog post"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid blog post data"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /blog-post/{blogPostID} [put]
func (h blogPostHandler) updateBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := uuidParam(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existingBlogPost, err := h.blogPostRepo.FindByID(r.Context(), blogPostID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog_post", err))
			return
		}
		if existingBlogPost == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}

		var blogPost models.BlogPost
		if err := decodeJSON(w, r, h.maxBodySize, "blog post", &blogPost); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to decode blog post request body")
			h.responder.WriteError(w, err)
			return
		}

		blogPost.ID = blogPostID
		if blogPost.Slug == "" {
			blogPost.Slug = existingBlogPost.Slug
		}
		blogPost.CreatedAt = existingBlogPost.CreatedAt
		blogPost.UpdatedAt = time.Now().UTC()
		if blogPost.UpdatedAt.Before(blogPost.CreatedAt) {
			blogPost.UpdatedAt = blogPost.CreatedAt
		}

		if err := blogPost.Validate(); err != nil {
			h.responder.WriteError(w, errs.FromValidation(err))
			return
		}

		if blogPost.Slug != existingBlogPost.Slug {
			if err := h.ensureSlugFree(r, blogPost.Slug, blogPostID); err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}

		if err := h.blogPostRepo.Update(r.Context(), &blogPost); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update blog post", "blog_post", err))
			return
		}

		h.responder.WriteJSON(w, blogPost)
	}
}

// deleteBlogPost deletes a blog post by ID
// @Summary Delete blog post
// @Tags Blog Posts
// @Produce json
// @Security BearerAuth
// @Param blogPostID path string true "Blog Post ID" format(uuid)
// @Success 200 {object} StatusResponse "Success message"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /blog-post/{blogPostID} [delete]
func (h blogPostHandler) deleteBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogPostID, err := uuidParam(r, "blogPostID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existingBlogPost, err := h.blogPostRepo.FindByID(r.Context(), blogPostID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find blog post", "blog_post", err))
			return
		}
		if existingBlogPost == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog post not found"))
			return
		}

		if err := h.blogPostRepo.Delete(r.Context(), blogPostID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete blog post", "blog_post", err))
			return
		}

		h.responder.WriteJSON(w, StatusResponse{
			Status:  "success",
			Message: "blog post deleted successfully",
		})
	}
}

func (h blogPostHandler) ensureSlugFree(r *http.Request, slug string, self uuid.UUID) error {
	other, err := h.blogPostRepo.FindBySlug(r.Context(), slug)
	if err != nil {
		return wrapDatabaseError("find blog post", "blog_post", err)
	}
	if other != nil && other.ID != self {
		conflict := errs.NewAlreadyExists(fmt.Sprintf("blog post with slug %q", slug))
		conflict.Field = "slug"
		return conflict
	}
	return nil
}
