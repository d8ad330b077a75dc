package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/portfolio-site/errs"
	"github.com/rpupo63/portfolio-site/models"
)

// ContactHandler hands a contact submission to one external channel
type ContactHandler interface {
	Name() string
	// Enabled reports whether the channel has credentials. It must be safe on a nil receiver.
	Enabled() bool
	Deliver(ctx context.Context, submission models.ContactSubmission) error
}

// Dispatcher delivers a submission over every configured channel at once
type Dispatcher struct {
	handlers []ContactHandler
}

// NewDispatcher skips nil and disabled handlers, so the result of an
// unconfigured constructor can be passed as-is
func NewDispatcher(handlers ...ContactHandler) *Dispatcher {
	d := &Dispatcher{}
	for _, h := range handlers {
		if h != nil && h.Enabled() {
			d.handlers = append(d.handlers, h)
		}
	}
	return d
}

// Channels lists the names of the configured handlers
func (d *Dispatcher) Channels() []string {
	names := make([]string, 0, len(d.handlers))
	for _, h := range d.handlers {
		names = append(names, h.Name())
	}
	return names
}

// Deliver succeeds when at least one channel accepted the submission.
// Failed channels are logged; when all fail their errors are joined.
func (d *Dispatcher) Deliver(ctx context.Context, submission models.ContactSubmission) error {
	if len(d.handlers) == 0 {
		return errs.NewServiceUnavailableError("contact delivery")
	}

	var (
		mu       sync.Mutex
		failures []error
	)

	var g errgroup.Group
	for _, h := range d.handlers {
		h := h
		g.Go(func() error {
			if err := h.Deliver(ctx, submission); err != nil {
				log.Warn().Err(err).Str("channel", h.Name()).Msg("Contact delivery failed")
				mu.Lock()
				failures = append(failures, fmt.Errorf("%s: %w", h.Name(), err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(failures) == len(d.handlers) {
		return errs.NewDeliveryError("contact message", errors.Join(failures...))
	}
	return nil
}
