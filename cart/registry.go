package cart

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// Session is the per-visitor state: the cart and its checkout wizard
type Session struct {
	ID       string
	Cart     *Cart
	Checkout *Checkout
}

// NewSession creates an empty session
func NewSession(id string) *Session {
	return &Session{
		ID:       id,
		Cart:     New(),
		Checkout: NewCheckout(),
	}
}

// Registry keeps the most recently used sessions in memory.
// Evicted sessions lose their cart, like a closed browser tab.
type Registry struct {
	mu    sync.Mutex
	cache *lru.Cache
}

// NewRegistry creates a registry holding at most size sessions
func NewRegistry(size int) (*Registry, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}
	return &Registry{cache: cache}, nil
}

// Get returns the session for id, creating it on first use
func (r *Registry) Get(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.cache.Get(id); ok {
		return v.(*Session)
	}
	s := NewSession(id)
	r.cache.Add(id, s)
	return s
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	return r.cache.Len()
}
