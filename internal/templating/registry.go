package templating

import (
	"fmt"
	"sync"
)

// Filter narrows a registry listing. Zero fields match everything.
type Filter struct {
	Status Status
	Type   DocumentType
}

func (f Filter) match(t Template) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	return true
}

// Registry is the ordered set of templates known to the process. It is
// built once at startup and shared by reference; it is safe for concurrent
// use.
type Registry struct {
	mu     sync.RWMutex
	order  []string
	byCode map[string]Template
}

// NewRegistry builds a registry from templates, keeping their order.
func NewRegistry(templates ...Template) (*Registry, error) {
	r := &Registry{byCode: make(map[string]Template, len(templates))}
	for _, t := range templates {
		if err := r.Put(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Put inserts t or replaces the template with the same code. Replacing
// keeps the original position.
func (r *Registry) Put(t Template) error {
	if err := t.Check(); err != nil {
		return fmt.Errorf("template %q: %w", t.Code, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byCode[t.Code]; !ok {
		r.order = append(r.order, t.Code)
	}
	r.byCode[t.Code] = t.Clone()
	return nil
}

// Get returns the template registered under code.
func (r *Registry) Get(code string) (Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byCode[code]
	if !ok {
		return Template{}, fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	return t.Clone(), nil
}

// GetByID returns the template persisted under id.
func (r *Registry) GetByID(id uint) (Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id != 0 {
		for _, code := range r.order {
			if t := r.byCode[code]; t.ID == id {
				return t.Clone(), nil
			}
		}
	}
	return Template{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// List returns the templates matching f in registry order.
func (r *Registry) List(f Filter) []Template {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Template, 0, len(r.order))
	for _, code := range r.order {
		if t := r.byCode[code]; f.match(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
