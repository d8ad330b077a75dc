// Package toast is the import path callers use to notify the site owner.
// It forwards to whichever notify.Provider is configured.
package toast

import (
	"sync"

	"github.com/rpupo63/portfolio-site/notify"
)

type Notification = notify.Notification

var (
	mu       sync.RWMutex
	provider notify.Provider = notify.NewStore()
)

// Use swaps the provider behind the package functions
func Use(p notify.Provider) {
	mu.Lock()
	defer mu.Unlock()
	provider = p
}

func current() notify.Provider {
	mu.RLock()
	defer mu.RUnlock()
	return provider
}

// Toast queues a notification and returns its id
func Toast(n Notification) string {
	return current().Toast(n)
}

// Controller is the accessor returned by UseToast
type Controller struct {
	Toasts  []Notification
	Toast   func(Notification) string
	Dismiss func(id string)
}

// UseToast returns the active notifications together with the controls
func UseToast() Controller {
	p := current()
	return Controller{
		Toasts:  p.Toasts(),
		Toast:   p.Toast,
		Dismiss: p.Dismiss,
	}
}

// Subscribe forwards to the provider's subscription
func Subscribe() (<-chan []Notification, func()) {
	return current().Subscribe()
}
