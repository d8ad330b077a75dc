// Package notify keeps the site owner's in-memory notification queue.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultLimit is how many notifications are kept at once
	DefaultLimit = 1
	// DefaultRemoveDelay is how long a dismissed notification lingers before removal
	DefaultRemoveDelay = 1000 * time.Second
)

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is a single toast shown to the site owner
type Notification struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Variant     Variant   `json:"variant"`
	Open        bool      `json:"open"`
	CreatedAt   time.Time `json:"created_at"`
}

// Provider is anything that can queue notifications and report the active set
type Provider interface {
	Toast(n Notification) string
	Dismiss(id string)
	Toasts() []Notification
	Subscribe() (<-chan []Notification, func())
}

type Option func(*Store)

// WithLimit caps the number of kept notifications. Values below 1 are ignored.
func WithLimit(limit int) Option {
	return func(s *Store) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

func WithRemoveDelay(d time.Duration) Option {
	return func(s *Store) {
		s.removeDelay = d
	}
}

// Store is the in-memory Provider. The newest notification is first.
type Store struct {
	mu          sync.Mutex
	limit       int
	removeDelay time.Duration
	toasts      []Notification
	timers      map[string]*time.Timer
	subs        map[int]chan []Notification
	nextSub     int
	now         func() time.Time
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		limit:       DefaultLimit,
		removeDelay: DefaultRemoveDelay,
		timers:      make(map[string]*time.Timer),
		subs:        make(map[int]chan []Notification),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Toast queues n as open and returns its id. An empty ID is generated.
func (s *Store) Toast(n Notification) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Variant == "" {
		n.Variant = VariantDefault
	}
	n.Open = true
	n.CreatedAt = s.now().UTC()

	s.toasts = append([]Notification{n}, s.toasts...)
	if len(s.toasts) > s.limit {
		for _, dropped := range s.toasts[s.limit:] {
			s.stopTimer(dropped.ID)
		}
		s.toasts = s.toasts[:s.limit]
	}

	s.publish()
	return n.ID
}

// Dismiss closes the notification with id, or every notification when id is
// empty, and schedules its removal.
func (s *Store) Dismiss(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for i := range s.toasts {
		if id != "" && s.toasts[i].ID != id {
			continue
		}
		if s.toasts[i].Open {
			s.toasts[i].Open = false
			changed = true
		}
		s.scheduleRemoval(s.toasts[i].ID)
	}
	if changed {
		s.publish()
	}
}

// Remove drops the notification with id, or all of them when id is empty
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.toasts[:0]
	removed := false
	for _, n := range s.toasts {
		if id == "" || n.ID == id {
			s.stopTimer(n.ID)
			removed = true
			continue
		}
		kept = append(kept, n)
	}
	s.toasts = kept
	if removed {
		s.publish()
	}
}

// Toasts returns a copy of the current notifications
func (s *Store) Toasts() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Subscribe returns a channel receiving the current set after every change,
// starting with the set at subscription time. Slow readers only see the
// latest snapshot. Call the returned func to unsubscribe.
func (s *Store) Subscribe() (<-chan []Notification, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan []Notification, 1)
	ch <- s.snapshot()

	key := s.nextSub
	s.nextSub++
	s.subs[key] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[key]; ok {
			delete(s.subs, key)
			close(ch)
		}
	}
}

// Close stops pending removal timers and ends every subscription
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.timers {
		s.stopTimer(id)
	}
	for key, ch := range s.subs {
		delete(s.subs, key)
		close(ch)
	}
}

func (s *Store) scheduleRemoval(id string) {
	if _, ok := s.timers[id]; ok {
		return
	}
	s.timers[id] = time.AfterFunc(s.removeDelay, func() {
		s.Remove(id)
	})
}

func (s *Store) stopTimer(id string) {
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}

func (s *Store) snapshot() []Notification {
	out := make([]Notification, len(s.toasts))
	copy(out, s.toasts)
	return out
}

// publish must be called with mu held
func (s *Store) publish() {
	for _, ch := range s.subs {
		snap := s.snapshot()
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}
