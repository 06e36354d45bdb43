// Package store is the single source of truth for post records. Every status
// change goes through PostStore; other components request transitions and
// never mutate post fields directly.
package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"post-pilot/models"
)

type PostStore struct {
	repo Repository
	now  func() time.Time

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func New(repo Repository) *PostStore {
	return &PostStore{
		repo:  repo,
		now:   time.Now,
		locks: map[uint]*sync.Mutex{},
	}
}

// lock serializes transitions on a single post. Posts are independent
// aggregates, so there is no cross-post locking.
func (s *PostStore) lock(id uint) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

func (s *PostStore) dropLock(id uint) {
	s.mu.Lock()
	delete(s.locks, id)
	s.mu.Unlock()
}

// Create stores a new draft. Content that already passes validation starts in
// ready, anything else in pending.
func (s *PostStore) Create(ctx context.Context, platform, content string) (*models.Post, error) {
	platform = strings.ToLower(strings.TrimSpace(platform))
	if platform == "" {
		return nil, ErrEmptyPlatform
	}

	status := models.StatusPending
	if models.ValidContent(platform, content) {
		status = models.StatusReady
	}

	post := &models.Post{
		Platform: platform,
		Content:  content,
		Status:   status,
	}
	if err := s.repo.Insert(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdateContent replaces a draft's text and re-runs validation, moving the
// post between pending and ready. Scheduled and terminal posts are frozen.
func (s *PostStore) UpdateContent(ctx context.Context, id uint, content string) (*models.Post, error) {
	defer s.lock(id)()

	post, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.Status != models.StatusPending && post.Status != models.StatusReady {
		return nil, fmt.Errorf("%w: cannot edit content of %s post %d", ErrInvalidTransition, post.Status, id)
	}

	post.Content = content
	if models.ValidContent(post.Platform, content) {
		post.Status = models.StatusReady
	} else {
		post.Status = models.StatusPending
	}
	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Schedule assigns a publication time. Valid from ready (first schedule) and
// from scheduled (re-schedule); re-issuing the same timestamp is a no-op.
func (s *PostStore) Schedule(ctx context.Context, id uint, at time.Time) (*models.Post, error) {
	defer s.lock(id)()

	post, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	at = at.UTC()
	if post.Status == models.StatusScheduled && post.ScheduledFor != nil && post.ScheduledFor.Equal(at) {
		// retry of the same transition
		return post, nil
	}
	if post.Status != models.StatusReady && post.Status != models.StatusScheduled {
		return nil, fmt.Errorf("%w: cannot schedule %s post %d", ErrInvalidTransition, post.Status, id)
	}
	if at.Before(s.now()) {
		return nil, fmt.Errorf("%w: %s", ErrPastTimestamp, at.Format(time.RFC3339))
	}

	post.Status = models.StatusScheduled
	post.ScheduledFor = &at
	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Unschedule moves a scheduled post back to ready and clears its slot.
// A post already back in ready is treated as a completed retry.
func (s *PostStore) Unschedule(ctx context.Context, id uint) (*models.Post, error) {
	defer s.lock(id)()

	post, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.Status == models.StatusReady {
		return post, nil
	}
	if post.Status != models.StatusScheduled {
		return nil, fmt.Errorf("%w: cannot unschedule %s post %d", ErrInvalidTransition, post.Status, id)
	}

	post.Status = models.StatusReady
	post.ScheduledFor = nil
	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// MarkPosted records a successful publication reported by the platform
// adapter. Only valid from scheduled.
func (s *PostStore) MarkPosted(ctx context.Context, id uint, externalId string) (*models.Post, error) {
	defer s.lock(id)()

	post, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.Status == models.StatusPosted && post.ExternalId == externalId {
		return post, nil
	}
	if post.Status != models.StatusScheduled {
		return nil, fmt.Errorf("%w: cannot mark %s post %d as posted", ErrInvalidTransition, post.Status, id)
	}

	post.Status = models.StatusPosted
	post.ExternalId = externalId
	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// MarkFailed moves any non-terminal post to the terminal failed state and
// records the reason.
func (s *PostStore) MarkFailed(ctx context.Context, id uint, reason string) (*models.Post, error) {
	defer s.lock(id)()

	post, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.Status == models.StatusFailed {
		return post, nil
	}
	if post.Status == models.StatusPosted {
		return nil, fmt.Errorf("%w: cannot fail posted post %d", ErrInvalidTransition, id)
	}

	post.Status = models.StatusFailed
	post.ScheduledFor = nil
	post.Logs = reason
	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes the record regardless of state.
func (s *PostStore) Delete(ctx context.Context, id uint) error {
	unlock := s.lock(id)
	err := s.repo.Delete(ctx, id)
	unlock()
	if err != nil {
		return err
	}
	s.dropLock(id)
	return nil
}

func (s *PostStore) Get(ctx context.Context, id uint) (*models.Post, error) {
	return s.repo.Get(ctx, id)
}

func (s *PostStore) List(ctx context.Context) ([]models.Post, error) {
	return s.repo.List(ctx)
}

func (s *PostStore) ListByStatus(ctx context.Context, status string) ([]models.Post, error) {
	return s.repo.ListByStatus(ctx, status)
}

// ListDue returns scheduled posts whose publication time has arrived.
func (s *PostStore) ListDue(ctx context.Context) ([]models.Post, error) {
	return s.repo.ListDue(ctx, s.now())
}
