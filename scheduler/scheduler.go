// Package scheduler turns a batch of ready posts into a publication plan and
// registers it with the post store.
package scheduler

import (
	"context"
	"errors"
	"strings"
	"time"

	"post-pilot/models"
	"post-pilot/store"
)

// DefaultInterval spaces batch assignments to avoid platform rate-limit
// clustering and keep the output order predictable.
const DefaultInterval = 10 * time.Minute

// PlatformAll disables platform filtering.
const PlatformAll = "all"

// ErrEmptyBatch is returned when the platform filter leaves nothing to schedule.
var ErrEmptyBatch = errors.New("no posts match the scheduling batch")

// Assignment is the per-post outcome of a batch. A failed assignment never
// rolls back earlier ones; partial success is the contract.
type Assignment struct {
	ID    uint      `json:"id"`
	At    time.Time `json:"at"`
	Ok    bool      `json:"ok"`
	Error string    `json:"error,omitempty"`
}

type Engine struct {
	store *store.PostStore
}

func New(s *store.PostStore) *Engine {
	return &Engine{store: s}
}

// ScheduleBatch assigns startTime + i*interval to the i-th post surviving the
// platform filter, preserving input order (first come, first served). Each
// assignment goes to the store individually; a post that slipped away from
// ready fails on its own without affecting the rest.
func (e *Engine) ScheduleBatch(ctx context.Context, posts []models.Post, startTime time.Time, interval time.Duration, platforms []string) ([]Assignment, error) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	filtered := filterByPlatform(posts, platforms)
	if len(filtered) == 0 {
		return nil, ErrEmptyBatch
	}

	results := make([]Assignment, 0, len(filtered))
	for i, post := range filtered {
		at := startTime.Add(time.Duration(i) * interval)
		_, err := e.store.Schedule(ctx, post.ID, at)
		a := Assignment{ID: post.ID, At: at.UTC(), Ok: err == nil}
		if err != nil {
			a.Error = err.Error()
		}
		results = append(results, a)
	}
	return results, nil
}

// SchedulePost bypasses the batch algorithm for a single post; past
// timestamps are rejected by the store.
func (e *Engine) SchedulePost(ctx context.Context, id uint, at time.Time) (*models.Post, error) {
	return e.store.Schedule(ctx, id, at)
}

func filterByPlatform(posts []models.Post, platforms []string) []models.Post {
	if len(platforms) == 0 {
		return posts
	}
	allowed := map[string]bool{}
	for _, p := range platforms {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == PlatformAll {
			return posts
		}
		if p != "" {
			allowed[p] = true
		}
	}
	if len(allowed) == 0 {
		return posts
	}

	var filtered []models.Post
	for _, post := range posts {
		if allowed[post.Platform] {
			filtered = append(filtered, post)
		}
	}
	return filtered
}
