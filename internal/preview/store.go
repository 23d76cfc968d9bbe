// Package preview keeps rendered documents behind revocable references so
// they can be displayed inline until the viewer releases them.
package preview

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/diewo77/go-hebergement/internal/render"
)

var (
	ErrNotFound = errors.New("preview: reference not found")
	ErrReleased = errors.New("preview: reference already released")
)

// Handle identifies an acquired reference.
type Handle struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type entry struct {
	doc       *render.Document
	expiresAt time.Time
}

// Store holds previews until they are released or expire. Each reference
// is released at most once; a second release reports ErrReleased.
type Store struct {
	mu       sync.RWMutex
	entries  map[string]*entry
	released map[string]time.Time
	ttl      time.Duration
	now      func() time.Time
	newToken func() string
	logger   zerolog.Logger
}

type Option func(*Store)

func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

func WithTokenFunc(f func() string) Option { return func(s *Store) { s.newToken = f } }

func WithLogger(l zerolog.Logger) Option { return func(s *Store) { s.logger = l } }

// NewStore creates a store whose references expire after ttl.
func NewStore(ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		entries:  make(map[string]*entry),
		released: make(map[string]time.Time),
		ttl:      ttl,
		now:      time.Now,
		newToken: uuid.NewString,
		logger:   zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Acquire stores doc and returns its reference.
func (s *Store) Acquire(doc *render.Document) Handle {
	now := s.now()
	h := Handle{Token: s.newToken(), ExpiresAt: now.Add(s.ttl)}
	s.mu.Lock()
	s.entries[h.Token] = &entry{doc: doc, expiresAt: h.ExpiresAt}
	s.mu.Unlock()
	return h
}

// Get returns the document behind token while the reference is live.
func (s *Store) Get(token string) (*render.Document, error) {
	s.mu.RLock()
	e, ok := s.entries[token]
	_, gone := s.released[token]
	s.mu.RUnlock()
	switch {
	case ok && s.now().Before(e.expiresAt):
		return e.doc, nil
	case gone:
		return nil, ErrReleased
	default:
		return nil, ErrNotFound
	}
}

// Release frees the reference.
func (s *Store) Release(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.releaseLocked(token)
}

func (s *Store) releaseLocked(token string) error {
	if _, ok := s.entries[token]; !ok {
		if _, gone := s.released[token]; gone {
			return ErrReleased
		}
		return ErrNotFound
	}
	delete(s.entries, token)
	s.released[token] = s.now()
	return nil
}

// Replace releases previous, if still held, and acquires doc. It is the
// regeneration path: the old reference never outlives the new one.
func (s *Store) Replace(previous string, doc *render.Document) Handle {
	now := s.now()
	h := Handle{Token: s.newToken(), ExpiresAt: now.Add(s.ttl)}
	s.mu.Lock()
	if previous != "" {
		if err := s.releaseLocked(previous); err != nil {
			s.logger.Debug().Err(err).Str("token", previous).Msg("previous preview not held")
		}
	}
	s.entries[h.Token] = &entry{doc: doc, expiresAt: h.ExpiresAt}
	s.mu.Unlock()
	return h
}

// Sweep drops expired references and forgets release markers older than
// the ttl. It returns the number of references dropped.
func (s *Store) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for token, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, token)
			s.released[token] = now
			n++
		}
	}
	for token, at := range s.released {
		if now.Sub(at) > s.ttl {
			delete(s.released, token)
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration, onSweep func(n int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}

// Len returns the number of live references.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
