package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/models"
	"github.com/rpupo63/portfolio-site/views"
)

const (
	homeProjectLimit = 12
	homePostLimit    = 5
)

type pageHandler struct {
	logger       zerolog.Logger
	renderer     *views.Renderer
	projectRepo  ProjectStore
	blogPostRepo BlogPostStore
}

func newPageHandler(renderer *views.Renderer, projectRepo ProjectStore, blogPostRepo BlogPostStore) pageHandler {
	return pageHandler{
		logger:       log.With().Str("handlerName", "pageHandler").Logger(),
		renderer:     renderer,
		projectRepo:  projectRepo,
		blogPostRepo: blogPostRepo,
	}
}

func (h pageHandler) fail(w http.ResponseWriter, status int, err error) {
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to render page")
	}
	http.Error(w, http.StatusText(status), status)
}

func writeHTMLHeader(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

// home renders the landing page with featured projects first and recent posts
func (h pageHandler) home() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll(r.Context(), database.ProjectFilter{Limit: homeProjectLimit})
		if err != nil {
			h.fail(w, http.StatusInternalServerError, err)
			return
		}
		posts, err := h.blogPostRepo.FindAll(r.Context(), database.BlogPostFilter{PublishedOnly: true, Limit: homePostLimit})
		if err != nil {
			h.fail(w, http.StatusInternalServerError, err)
			return
		}

		writeHTMLHeader(w)
		if err := h.renderer.Home(w, views.HomePage{Projects: projects, Posts: posts}); err != nil {
			h.fail(w, http.StatusInternalServerError, err)
		}
	}
}

// blogPost renders a published post. Drafts are not served as pages.
func (h pageHandler) blogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if !models.ValidSlug(slug) {
			h.fail(w, http.StatusNotFound, nil)
			return
		}

		post, err := h.blogPostRepo.FindBySlug(r.Context(), slug)
		if err != nil {
			h.fail(w, http.StatusInternalServerError, err)
			return
		}
		if post == nil || !post.IsPublished() {
			h.fail(w, http.StatusNotFound, nil)
			return
		}

		writeHTMLHeader(w)
		if err := h.renderer.Post(w, post); err != nil {
			h.fail(w, http.StatusInternalServerError, err)
		}
	}
}
