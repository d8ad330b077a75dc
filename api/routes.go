package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/rpupo63/portfolio-site/ratelimit"
)

// setupPublicRoutes registers the read-only JSON API, the contact form and the rendered pages
func setupPublicRoutes(r chi.Router, handlers *routeHandlers, limiter ratelimit.Limiter, withPages bool) {
	r.Get("/healthz", handlers.healthHandler.getHealth())
	r.Get("/site-config", handlers.siteConfigHandler.getSiteConfig())
	r.Get("/cv", handlers.cvHandler.getCV())
	r.Get("/tags", handlers.tagHandler.getTags())

	r.Get("/projects", handlers.projectHandler.getAllProjects())
	r.Get("/project/{projectID}", handlers.projectHandler.getProject())
	r.Get("/project/slug/{slug}", handlers.projectHandler.getProjectBySlug())

	r.Get("/blog-posts", handlers.blogPostHandler.getAllBlogPosts())
	r.Get("/blog-post/{blogPostID}", handlers.blogPostHandler.getBlogPost())
	r.Get("/blog-post/slug/{slug}", handlers.blogPostHandler.getBlogPostBySlug())

	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(rateLimit(limiter))
		}
		r.Post("/contact", handlers.contactHandler.submitContact())
	})

	if withPages {
		r.Get("/", handlers.pageHandler.home())
		r.Get("/blog/{slug}", handlers.pageHandler.blogPost())
	}
}

// setupAdminRoutes registers everything that needs the admin token
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.requireAdmin)

		// Project Handler endpoints
		r.Post("/project", handlers.projectHandler.createProject())
		r.Put("/project/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/project/{projectID}", handlers.projectHandler.deleteProject())

		// Blog Post Handler endpoints
		r.Post("/blog-post", handlers.blogPostHandler.createBlogPost())
		r.Put("/blog-post/{blogPostID}", handlers.blogPostHandler.updateBlogPost())
		r.Delete("/blog-post/{blogPostID}", handlers.blogPostHandler.deleteBlogPost())

		r.Get("/toasts", handlers.toastHandler.getToasts())
		r.Get("/toasts/ws", handlers.toastHandler.streamToasts())
		r.Delete("/toasts", handlers.toastHandler.dismissToast())
		r.Delete("/toasts/{toastID}", handlers.toastHandler.dismissToast())
	})
}
