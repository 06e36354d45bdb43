// Package publisher delivers scheduled posts to their platforms and reports
// the outcome back into the post store. The core only depends on the
// Publisher interface; concrete adapters live alongside it.
package publisher

import (
	"context"
	"sync"

	"post-pilot/models"
)

// Publisher posts one item to a platform and returns the platform's id for it.
type Publisher interface {
	Publish(ctx context.Context, post models.Post) (string, error)
}

// Registry maps platform names to configured publishers.
type Registry struct {
	mu         sync.RWMutex
	publishers map[string]Publisher
}

func NewRegistry() *Registry {
	return &Registry{publishers: map[string]Publisher{}}
}

func (r *Registry) Register(platform string, p Publisher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.publishers[platform] = p
}

func (r *Registry) Lookup(platform string) (Publisher, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.publishers[platform]
	return p, ok
}
