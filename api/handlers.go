package api

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Deps, router router) *routeHandlers {
	maxBodySize := router.config.MaxRequestBodySize
	return &routeHandlers{
		projectHandler:    newProjectHandler(deps.Projects, maxBodySize),
		blogPostHandler:   newBlogPostHandler(deps.Posts, maxBodySize),
		tagHandler:        newTagHandler(deps.Tags),
		contactHandler:    newContactHandler(deps.Contact, maxBodySize),
		cvHandler:         newCVHandler(deps.CV),
		siteConfigHandler: newSiteConfigHandler(deps.Site),
		toastHandler:      newToastHandler(router.config.AcceptedOrigins),
		pageHandler:       newPageHandler(deps.Pages, deps.Projects, deps.Posts),
		healthHandler:     newHealthHandler(deps.Health, router.startupTime),
	}
}
