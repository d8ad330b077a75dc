package api

import (
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site/toast"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
)

type toastHandler struct {
	responder Responder
	logger    zerolog.Logger
	upgrader  websocket.Upgrader
}

func newToastHandler(acceptedOrigins []string) toastHandler {
	logger := log.With().Str("handlerName", "toastHandler").Logger()
	return toastHandler{
		responder: NewResponder(logger),
		logger:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(acceptedOrigins),
		},
	}
}

// originChecker allows same-origin handshakes and the accepted origins
func originChecker(acceptedOrigins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if slices.Contains(acceptedOrigins, "*") || slices.Contains(acceptedOrigins, origin) {
			return true
		}
		return origin == "http://"+r.Host || origin == "https://"+r.Host
	}
}

// getToasts lists the site owner's active notifications
// @Summary Get notifications
// @Tags Toasts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} notify.Notification
// @Router /toasts [get]
func (h toastHandler) getToasts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, toast.UseToast().Toasts)
	}
}

// dismissToast closes one notification, or all of them without an id
// @Summary Dismiss notification
// @Tags Toasts
// @Produce json
// @Security BearerAuth
// @Param toastID path string false "Notification ID"
// @Success 200 {object} StatusResponse
// @Router /toasts/{toastID} [delete]
func (h toastHandler) dismissToast() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		toast.UseToast().Dismiss(chi.URLParam(r, "toastID"))
		h.responder.WriteJSON(w, StatusResponse{Status: "success"})
	}
}

// streamToasts pushes the active notifications over a websocket after every change
// @Summary Stream notifications
// @Tags Toasts
// @Security BearerAuth
// @Router /toasts/ws [get]
func (h toastHandler) streamToasts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			// the upgrader has already written an error response
			h.logger.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}
		defer conn.Close()

		updates, unsubscribe := toast.Subscribe()
		defer unsubscribe()

		// the read pump only handles pongs and notices the client leaving
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			conn.SetReadDeadline(time.Now().Add(wsPongWait))
			conn.SetPongHandler(func(string) error {
				return conn.SetReadDeadline(time.Now().Add(wsPongWait))
			})
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(wsPingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case <-closed:
				return
			case snapshot, ok := <-updates:
				if !ok {
					conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(wsWriteWait))
					return
				}
				conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				if err := conn.WriteJSON(snapshot); err != nil {
					h.logger.Debug().Err(err).Msg("websocket write failed")
					return
				}
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
					return
				}
			}
		}
	}
}
