package api

import (
	"context"
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site/config"
	"github.com/rpupo63/portfolio-site/ratelimit"
	"github.com/rpupo63/portfolio-site/views"
)

// Deps are the collaborators the HTTP layer is built from. Pages and Limiter
// are optional; without Pages the HTML routes are not mounted.
type Deps struct {
	Site     *config.SiteConfig
	Projects ProjectStore
	Posts    BlogPostStore
	Tags     TagStore
	CV       CVSource
	Contact  ContactDeliverer
	Limiter  ratelimit.Limiter
	Pages    *views.Renderer
	Health   Pinger
}

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(cfg *config.Config, deps Deps) (Server, error) {
	// Capture startup time
	startupTime := time.Now()

	router := newRouter(deps, withConfig(cfg), withStartupTime(startupTime))

	server := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,  // Timeout for reading the entire request
		WriteTimeout: cfg.WriteTimeout, // Timeout for writing the response
		IdleTimeout:  cfg.IdleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      *config.Config
	startupTime time.Time
}

func withConfig(c *config.Config) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(deps Deps, opts ...func(*router)) *chi.Mux {
	router := router{config: &config.Config{}, startupTime: time.Now()}
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	if router.config.TrustProxyHeaders {
		// client IPs, and so the contact rate limit, come from the proxy headers
		chiRouter.Use(middleware.RealIP)
	}
	chiRouter.Use(LogInternalServerErrors)
	// reports panics to Sentry, then re-panics into LogInternalServerErrors
	chiRouter.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)

	// Apply CORS middleware. An empty list allows any origin; admin calls use
	// bearer tokens, never cookies.
	acceptedOrigins := router.config.AcceptedOrigins
	if len(acceptedOrigins) == 0 && router.config.IsDevelopment() {
		acceptedOrigins = []string{"http://localhost:*"}
	}
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   acceptedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Retry-After", "X-RateLimit-Remaining"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	chiRouter.Use(ColoredHTTPLoggingMiddleware)

	// Initialize all handlers
	handlers := initializeHandlers(deps, router)

	// Initialize auth middleware
	authMiddleware := newAuthMiddleware(router.config.AdminToken)
	chiRouter.Use(authMiddleware.identify)

	// Setup all route types
	setupPublicRoutes(chiRouter, handlers, deps.Limiter, deps.Pages != nil)
	setupAdminRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
