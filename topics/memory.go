package topics

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"post-pilot/models"
)

// MemoryRepository backs tests and DB-less development.
type MemoryRepository struct {
	mu     sync.RWMutex
	topics map[uint]models.Topic
	nextID uint
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{topics: map[uint]models.Topic{}, nextID: 1}
}

func (r *MemoryRepository) Insert(ctx context.Context, topic *models.Topic) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if topic.ID == 0 {
		topic.ID = r.nextID
		r.nextID++
	}
	topic.CreatedAt = time.Now().UTC()
	r.topics[topic.ID] = *topic
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.topics[id]; !ok {
		return ErrNotFound
	}
	delete(r.topics, id)
	return nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]models.Topic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Topic, 0, len(r.topics))
	for _, t := range r.topics {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepository) FindByName(ctx context.Context, name string) (*models.Topic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lower := strings.ToLower(name)
	for _, t := range r.topics {
		if strings.ToLower(t.Name) == lower {
			topic := t
			return &topic, nil
		}
	}
	return nil, ErrNotFound
}
