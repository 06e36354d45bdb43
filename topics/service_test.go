package topics

import (
	"context"
	"errors"
	"testing"

	"post-pilot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTrendingClient struct {
	suggestions []Suggestion
	err         error
	calls       int
}

func (f *fakeTrendingClient) FetchTrending(ctx context.Context, category string, count int) ([]Suggestion, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.suggestions, nil
}

func TestAddTopicDuplicateCaseInsensitive(t *testing.T) {
	s := NewService(NewMemoryRepository(), &fakeTrendingClient{}, nil, nil)
	ctx := context.Background()

	topic, err := s.AddTopic(ctx, "AI", "")
	require.NoError(t, err)
	assert.Equal(t, models.SourceManual, topic.Source)

	_, err = s.AddTopic(ctx, "ai", models.SourceManual)
	assert.ErrorIs(t, err, ErrDuplicateTopic)

	_, err = s.AddTopic(ctx, "  ", models.SourceManual)
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestFetchTrendingMergesAndDedups(t *testing.T) {
	client := &fakeTrendingClient{suggestions: []Suggestion{
		{Name: "ai", AiCurated: true},
		{Name: "Quantum Computing", AiCurated: true},
		{Name: "quantum computing", AiCurated: true},
	}}
	s := NewService(NewMemoryRepository(), client, nil, nil)
	ctx := context.Background()

	_, err := s.AddTopic(ctx, "AI", models.SourceManual)
	require.NoError(t, err)

	result, err := s.FetchTrending(ctx, "technology", 5)
	require.NoError(t, err)
	assert.False(t, result.Degraded)

	// "ai" collides with existing "AI"; the in-batch duplicate is dropped too
	require.Len(t, result.Created, 1)
	assert.Equal(t, "Quantum Computing", result.Created[0].Name)
	assert.Equal(t, models.SourceAiSuggested, result.Created[0].Source)

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestFetchTrendingFallbackOnFailure(t *testing.T) {
	client := &fakeTrendingClient{err: errors.New("connection refused")}
	s := NewService(NewMemoryRepository(), client, nil, nil)
	ctx := context.Background()

	// one fallback name already exists; the filter applies to fallback too
	_, err := s.AddTopic(ctx, "mental health", models.SourceManual)
	require.NoError(t, err)

	result, err := s.FetchTrending(ctx, "general", 0)
	require.NoError(t, err, "degraded mode is a notice, not an error")
	assert.True(t, result.Degraded)
	assert.NotEmpty(t, result.Notice)

	require.Len(t, result.Created, len(FallbackTopics)-1)
	for _, topic := range result.Created {
		assert.Equal(t, models.SourceTrending, topic.Source)
		assert.NotEqual(t, "Mental Health", topic.Name)
	}
}

func TestFetchTrendingRepeatFetchAddsNothingNew(t *testing.T) {
	client := &fakeTrendingClient{suggestions: []Suggestion{{Name: "Edge Computing", AiCurated: true}}}
	s := NewService(NewMemoryRepository(), client, nil, nil)
	ctx := context.Background()

	first, err := s.FetchTrending(ctx, "technology", 3)
	require.NoError(t, err)
	require.Len(t, first.Created, 1)

	second, err := s.FetchTrending(ctx, "technology", 3)
	require.NoError(t, err)
	assert.Empty(t, second.Created)
}

func TestDeleteTopic(t *testing.T) {
	s := NewService(NewMemoryRepository(), &fakeTrendingClient{}, nil, nil)
	ctx := context.Background()

	topic, err := s.AddTopic(ctx, "Remote Work", models.SourceManual)
	require.NoError(t, err)

	require.NoError(t, s.DeleteTopic(ctx, topic.ID))
	assert.ErrorIs(t, s.DeleteTopic(ctx, topic.ID), ErrNotFound)

	// the name is free again after deletion
	_, err = s.AddTopic(ctx, "remote work", models.SourceManual)
	require.NoError(t, err)
}

func TestParseTopicLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		limit   int
		want    []string
	}{
		{
			"plain lines",
			"Sustainable Energy\nMental Health\nFuture of Work",
			5,
			[]string{"Sustainable Energy", "Mental Health", "Future of Work"},
		},
		{
			"numbered and bulleted",
			"1. AI Agents\n2) Green Tech\n- Creator Economy\n* Web3",
			5,
			[]string{"AI Agents", "Green Tech", "Creator Economy", "Web3"},
		},
		{
			"limit applies",
			"a\nb\nc\nd",
			2,
			[]string{"a", "b"},
		},
		{
			"blank lines skipped",
			"\n\nRemote Work\n\n",
			5,
			[]string{"Remote Work"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseTopicLines(tt.content, tt.limit))
		})
	}
}
