package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"post-pilot/models"
)

// MemoryRepository keeps posts in a map. Used by tests and when the service
// runs without a database DSN.
type MemoryRepository struct {
	mu     sync.RWMutex
	posts  map[uint]models.Post
	nextID uint
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{posts: map[uint]models.Post{}, nextID: 1}
}

func (r *MemoryRepository) Insert(ctx context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if post.ID == 0 {
		post.ID = r.nextID
		r.nextID++
	} else if post.ID >= r.nextID {
		r.nextID = post.ID + 1
	}
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now
	r.posts[post.ID] = *post
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, id uint) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &post, nil
}

func (r *MemoryRepository) Update(ctx context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[post.ID]; !ok {
		return ErrNotFound
	}
	post.UpdatedAt = time.Now().UTC()
	r.posts[post.ID] = *post
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	posts := make([]models.Post, 0, len(r.posts))
	for _, p := range r.posts {
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID > posts[j].ID })
	return posts, nil
}

func (r *MemoryRepository) ListByStatus(ctx context.Context, status string) ([]models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var posts []models.Post
	for _, p := range r.posts {
		if p.Status == status {
			posts = append(posts, p)
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

func (r *MemoryRepository) ListDue(ctx context.Context, now time.Time) ([]models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var posts []models.Post
	for _, p := range r.posts {
		if p.Status == models.StatusScheduled && p.ScheduledFor != nil && !p.ScheduledFor.After(now) {
			posts = append(posts, p)
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ScheduledFor.Before(*posts[j].ScheduledFor) })
	return posts, nil
}
