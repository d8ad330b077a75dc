package api

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site/config"
	"github.com/rpupo63/portfolio-site/errs"
)

type siteConfigHandler struct {
	responder Responder
	site      *config.SiteConfig
}

func newSiteConfigHandler(site *config.SiteConfig) siteConfigHandler {
	logger := log.With().Str("handlerName", "siteConfigHandler").Logger()
	return siteConfigHandler{
		responder: NewResponder(logger),
		site:      site,
	}
}

// getSiteConfig serves the front-end bootstrap configuration
// @Summary Get site config
// @Description Supabase URL and anon key plus optional analytics keys. These are public client values.
// @Tags Config
// @Produce json
// @Success 200 {object} config.SiteConfig
// @Failure 503 {object} ErrorResponse "Service Unavailable - Site config not loaded"
// @Router /site-config [get]
func (h siteConfigHandler) getSiteConfig() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.site == nil {
			h.responder.WriteError(w, errs.NewServiceUnavailableError("site config"))
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=300")
		h.responder.WriteJSON(w, h.site)
	}
}
