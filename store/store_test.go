package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"post-pilot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *PostStore {
	t.Helper()
	return New(NewMemoryRepository())
}

func TestCreateStatusDependsOnValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		platform string
		content  string
		want     string
	}{
		{"valid tweet", "twitter", "hello world", models.StatusReady},
		{"empty content", "twitter", "", models.StatusPending},
		{"whitespace only", "twitter", "   ", models.StatusPending},
		{"over twitter limit", "twitter", strings.Repeat("a", 281), models.StatusPending},
		{"at twitter limit", "twitter", strings.Repeat("a", 280), models.StatusReady},
		{"long linkedin post", "linkedin", strings.Repeat("a", 2500), models.StatusReady},
		{"unknown platform default limit", "mastodon", strings.Repeat("a", 1001), models.StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post, err := s.Create(ctx, tt.platform, tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.want, post.Status)
			assert.Nil(t, post.ScheduledFor)
			assert.Empty(t, post.ExternalId)
		})
	}
}

func TestCreateRequiresPlatform(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Create(context.Background(), "  ", "hello")
	assert.ErrorIs(t, err, ErrEmptyPlatform)
}

func TestScheduleBoundaries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	post, err := s.Create(ctx, "twitter", "boundary check")
	require.NoError(t, err)

	_, err = s.Schedule(ctx, post.ID, now.Add(-time.Second))
	assert.ErrorIs(t, err, ErrPastTimestamp)

	updated, err := s.Schedule(ctx, post.ID, now.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, updated.Status)
	require.NotNil(t, updated.ScheduledFor)
	assert.True(t, updated.ScheduledFor.Equal(now.Add(time.Second)))
}

func TestScheduleIdempotentRetry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	post, err := s.Create(ctx, "twitter", "retry me")
	require.NoError(t, err)

	at := now.Add(time.Hour)
	first, err := s.Schedule(ctx, post.ID, at)
	require.NoError(t, err)

	// same timestamp again is a no-op even after the time has passed
	s.now = func() time.Time { return at.Add(time.Minute) }
	second, err := s.Schedule(ctx, post.ID, at)
	require.NoError(t, err)
	assert.Equal(t, first.Status, second.Status)
	assert.True(t, first.ScheduledFor.Equal(*second.ScheduledFor))
}

func TestReschedulePicksNewTimestamp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	post, err := s.Create(ctx, "facebook", "move me")
	require.NoError(t, err)

	_, err = s.Schedule(ctx, post.ID, now.Add(time.Hour))
	require.NoError(t, err)

	moved, err := s.Schedule(ctx, post.ID, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.True(t, moved.ScheduledFor.Equal(now.Add(2*time.Hour)))
}

func TestSchedulePendingPostRejected(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	post, err := s.Create(ctx, "twitter", "")
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, post.Status)

	_, err = s.Schedule(ctx, post.ID, time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUnschedule(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	post, err := s.Create(ctx, "linkedin", "take me off the queue")
	require.NoError(t, err)
	_, err = s.Schedule(ctx, post.ID, time.Now().Add(time.Hour))
	require.NoError(t, err)

	back, err := s.Unschedule(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReady, back.Status)
	assert.Nil(t, back.ScheduledFor)

	// retry is a no-op
	again, err := s.Unschedule(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReady, again.Status)
}

func TestUnschedulePendingRejected(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	post, err := s.Create(ctx, "twitter", "")
	require.NoError(t, err)

	_, err = s.Unschedule(ctx, post.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestMarkPosted(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	pending, err := s.Create(ctx, "twitter", "")
	require.NoError(t, err)
	_, err = s.MarkPosted(ctx, pending.ID, "tw-1")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	post, err := s.Create(ctx, "twitter", "ship it")
	require.NoError(t, err)
	_, err = s.Schedule(ctx, post.ID, time.Now().Add(time.Hour))
	require.NoError(t, err)

	posted, err := s.MarkPosted(ctx, post.ID, "tw-42")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPosted, posted.Status)
	assert.Equal(t, "tw-42", posted.ExternalId)
	assert.NotNil(t, posted.ScheduledFor)

	// retry with the same external id is a no-op
	again, err := s.MarkPosted(ctx, post.ID, "tw-42")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPosted, again.Status)

	// posted is terminal
	_, err = s.MarkFailed(ctx, post.ID, "late failure")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = s.Schedule(ctx, post.ID, time.Now().Add(2*time.Hour))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestMarkFailedFromAnyNonTerminalState(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, seed := range []string{models.StatusPending, models.StatusReady, models.StatusScheduled} {
		t.Run(seed, func(t *testing.T) {
			var post *models.Post
			var err error
			switch seed {
			case models.StatusPending:
				post, err = s.Create(ctx, "twitter", "")
			case models.StatusReady:
				post, err = s.Create(ctx, "twitter", "ok")
			case models.StatusScheduled:
				post, err = s.Create(ctx, "twitter", "ok")
				require.NoError(t, err)
				post, err = s.Schedule(ctx, post.ID, time.Now().Add(time.Hour))
			}
			require.NoError(t, err)

			failed, err := s.MarkFailed(ctx, post.ID, "adapter error")
			require.NoError(t, err)
			assert.Equal(t, models.StatusFailed, failed.Status)
			assert.Nil(t, failed.ScheduledFor)
			assert.Equal(t, "adapter error", failed.Logs)

			// failed is terminal, retry is a no-op
			_, err = s.MarkFailed(ctx, post.ID, "again")
			require.NoError(t, err)
			_, err = s.Schedule(ctx, post.ID, time.Now().Add(time.Hour))
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestUpdateContentRevalidates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	post, err := s.Create(ctx, "twitter", "")
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, post.Status)

	ready, err := s.UpdateContent(ctx, post.ID, "now it has text")
	require.NoError(t, err)
	assert.Equal(t, models.StatusReady, ready.Status)

	back, err := s.UpdateContent(ctx, post.ID, strings.Repeat("x", 300))
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, back.Status)

	_, err = s.UpdateContent(ctx, post.ID, "valid again")
	require.NoError(t, err)
	_, err = s.Schedule(ctx, post.ID, time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = s.UpdateContent(ctx, post.ID, "too late")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDeleteAnyState(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	post, err := s.Create(ctx, "twitter", "delete me")
	require.NoError(t, err)
	_, err = s.Schedule(ctx, post.ID, time.Now().Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, post.ID))
	_, err = s.Get(ctx, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, post.ID), ErrNotFound)
}

func TestConcurrentSchedulesSingleWinner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	post, err := s.Create(ctx, "twitter", "contended")
	require.NoError(t, err)

	t1 := now.Add(time.Hour)
	t2 := now.Add(2 * time.Hour)
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Schedule(ctx, post.ID, t1)
	}()
	s.Schedule(ctx, post.ID, t2)
	<-done

	got, err := s.Get(ctx, post.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ScheduledFor)
	// one of the two timestamps won; the record is never half-written
	assert.True(t, got.ScheduledFor.Equal(t1) || got.ScheduledFor.Equal(t2))
	assert.Equal(t, models.StatusScheduled, got.Status)
}

func TestListDue(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	early, err := s.Create(ctx, "twitter", "early")
	require.NoError(t, err)
	late, err := s.Create(ctx, "twitter", "late")
	require.NoError(t, err)

	_, err = s.Schedule(ctx, early.ID, now.Add(time.Minute))
	require.NoError(t, err)
	_, err = s.Schedule(ctx, late.ID, now.Add(time.Hour))
	require.NoError(t, err)

	s.now = func() time.Time { return now.Add(2 * time.Minute) }
	due, err := s.ListDue(ctx)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, early.ID, due[0].ID)
}
