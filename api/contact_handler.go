package api

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site/errs"
	"github.com/rpupo63/portfolio-site/models"
	"github.com/rpupo63/portfolio-site/notify"
	"github.com/rpupo63/portfolio-site/toast"
)

type contactHandler struct {
	responder   Responder
	logger      zerolog.Logger
	deliverer   ContactDeliverer
	maxBodySize int64
}

func newContactHandler(deliverer ContactDeliverer, maxBodySize int64) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()
	return contactHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		deliverer:   deliverer,
		maxBodySize: maxBodySize,
	}
}

// submitContact validates a contact form submission and delivers it to the site owner
// @Summary Submit contact form
// @Description The submission is never stored. It is emailed and/or texted to the site owner.
// @Tags Contact
// @Accept json
// @Produce json
// @Param submission body models.ContactSubmission true "Contact submission"
// @Success 202 {object} StatusResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid submission"
// @Failure 429 {object} ErrorResponse "Too Many Requests"
// @Failure 502 {object} ErrorResponse "Bad Gateway - Delivery failed"
// @Failure 503 {object} ErrorResponse "Service Unavailable - No delivery channel configured"
// @Router /contact [post]
func (h contactHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var submission models.ContactSubmission
		if err := decodeJSON(w, r, h.maxBodySize, "contact", &submission); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := submission.Validate(); err != nil {
			h.responder.WriteError(w, errs.FromValidation(err))
			return
		}

		if h.deliverer == nil {
			h.responder.WriteError(w, errs.NewServiceUnavailableError("contact delivery"))
			return
		}

		if err := h.deliverer.Deliver(r.Context(), submission); err != nil {
			toast.Toast(toast.Notification{
				Title:       "Contact message not delivered",
				Description: fmt.Sprintf("From %s <%s>", submission.Name, submission.Email),
				Variant:     notify.VariantDestructive,
			})
			h.responder.WriteError(w, err)
			return
		}

		toast.Toast(toast.Notification{
			Title:       "New contact message",
			Description: fmt.Sprintf("%s from %s", submission.SubjectOr("Message"), submission.Name),
		})
		h.logger.Info().Str("from", submission.Email).Msg("Delivered contact message")

		h.responder.WriteJSONStatus(w, http.StatusAccepted, StatusResponse{
			Status:  "success",
			Message: "message sent",
		})
	}
}
