package api

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site/errs"
)

type cvHandler struct {
	responder Responder
	loadCV    CVSource
}

func newCVHandler(loadCV CVSource) cvHandler {
	logger := log.With().Str("handlerName", "cvHandler").Logger()
	return cvHandler{
		responder: NewResponder(logger),
		loadCV:    loadCV,
	}
}

// getCV returns the CV data file
// @Summary Get CV
// @Tags CV
// @Produce json
// @Success 200 {object} models.CV
// @Failure 404 {object} ErrorResponse "Not Found - No CV file"
// @Router /cv [get]
func (h cvHandler) getCV() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.loadCV == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("cv not found"))
			return
		}

		cv, err := h.loadCV()
		if errors.Is(err, fs.ErrNotExist) {
			h.responder.WriteError(w, errs.NewNotFoundError("cv not found"))
			return
		}
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to load cv", err))
			return
		}

		h.responder.WriteJSON(w, cv)
	}
}
