package controller

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mrlokans/bookhub/internal/metrics"
)

// Factory builds the controller for a client that has none in memory yet.
type Factory func(ctx context.Context, clientID string) (*Controller, error)

// Registry keeps the most recently used client controllers. Evicted
// controllers are closed; their favorites are already persisted, only
// transient view state is lost.
type Registry struct {
	mu      sync.Mutex
	cache   *lru.Cache[string, *Controller]
	factory Factory
}

func NewRegistry(size int, factory Factory) (*Registry, error) {
	cache, err := lru.NewWithEvict(size, func(_ string, c *Controller) {
		c.Close()
		metrics.ActiveClients.Dec()
	})
	if err != nil {
		return nil, fmt.Errorf("create client registry: %w", err)
	}
	return &Registry{cache: cache, factory: factory}, nil
}

// Get returns the client's controller, creating it on first use.
func (r *Registry) Get(ctx context.Context, clientID string) (*Controller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.cache.Get(clientID); ok {
		return c, nil
	}

	c, err := r.factory(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("create controller for %s: %w", clientID, err)
	}
	r.cache.Add(clientID, c)
	metrics.ActiveClients.Inc()
	return c, nil
}

// Len returns the number of live controllers.
func (r *Registry) Len() int {
	return r.cache.Len()
}

// Close closes every controller.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Purge()
}
