package topics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"post-pilot/models"

	"github.com/redis/go-redis/v9"
)

// FallbackTopics is the fixed list returned when the trending source is down.
// It still passes through the dedup filter like a normal fetch.
var FallbackTopics = []string{"Sustainable Energy", "Mental Health", "Future of Work"}

const (
	DefaultFetchCount = 5
	trendingCacheTTL  = 15 * time.Minute
)

// FetchResult reports a trending fetch. Degraded is the non-fatal notice that
// the external source was unavailable and the fallback list was used.
type FetchResult struct {
	Created  []models.Topic `json:"created_topics"`
	Degraded bool           `json:"degraded"`
	Notice   string         `json:"notice,omitempty"`
}

type Service struct {
	repo   Repository
	client TrendingClient
	cache  *redis.Client
	logger *slog.Logger
}

// NewService wires the topic working set. cache may be nil, which disables
// trending-result caching.
func NewService(repo Repository, client TrendingClient, cache *redis.Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, client: client, cache: cache, logger: logger}
}

// AddTopic rejects case-insensitive duplicates; dedup is an error here,
// unlike the silent filter applied to fetched batches.
func (s *Service) AddTopic(ctx context.Context, name, source string) (*models.Topic, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if source == "" {
		source = models.SourceManual
	}

	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateTopic, name)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	topic := &models.Topic{Name: name, Source: source}
	if err := s.repo.Insert(ctx, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *Service) DeleteTopic(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]models.Topic, error) {
	return s.repo.List(ctx)
}

// FetchTrending pulls suggestions from the trending source and merges them
// into the working set, silently discarding names that collide
// case-insensitively with existing topics. When the source is unreachable it
// merges the fallback list instead and flags the result as degraded.
func (s *Service) FetchTrending(ctx context.Context, category string, count int) (*FetchResult, error) {
	if count <= 0 {
		count = DefaultFetchCount
	}

	result := &FetchResult{Created: []models.Topic{}}

	suggestions, err := s.fetchSuggestions(ctx, category, count)
	if err != nil {
		s.logger.Warn("trending source unavailable, using fallback topics", "category", category, "error", err.Error())
		result.Degraded = true
		result.Notice = "trending source unavailable, using fallback topics"
		suggestions = make([]Suggestion, 0, len(FallbackTopics))
		for _, name := range FallbackTopics {
			suggestions = append(suggestions, Suggestion{Name: name})
		}
	}

	seen := map[string]bool{}
	for _, suggestion := range suggestions {
		name := strings.TrimSpace(suggestion.Name)
		if name == "" {
			continue
		}
		lower := strings.ToLower(name)
		if seen[lower] {
			continue
		}
		seen[lower] = true

		if _, err := s.repo.FindByName(ctx, name); err == nil {
			// dedup is a filter, not a rejection of the batch
			continue
		} else if !errors.Is(err, ErrNotFound) {
			return nil, err
		}

		source := models.SourceTrending
		if suggestion.AiCurated {
			source = models.SourceAiSuggested
		}
		topic := &models.Topic{Name: name, Source: source}
		if err := s.repo.Insert(ctx, topic); err != nil {
			return nil, err
		}
		result.Created = append(result.Created, *topic)
	}

	return result, nil
}

func (s *Service) fetchSuggestions(ctx context.Context, category string, count int) ([]Suggestion, error) {
	if cached, ok := s.cachedSuggestions(ctx, category); ok {
		return cached, nil
	}

	suggestions, err := s.client.FetchTrending(ctx, category, count)
	if err != nil {
		return nil, err
	}

	s.storeSuggestions(ctx, category, suggestions)
	return suggestions, nil
}

func cacheKey(category string) string {
	if category == "" {
		category = "general"
	}
	return "trending:" + strings.ToLower(category)
}

func (s *Service) cachedSuggestions(ctx context.Context, category string) ([]Suggestion, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, cacheKey(category)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("trending cache read failed", "error", err.Error())
		}
		return nil, false
	}
	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(raw), &suggestions); err != nil {
		return nil, false
	}
	return suggestions, true
}

func (s *Service) storeSuggestions(ctx context.Context, category string, suggestions []Suggestion) {
	if s.cache == nil {
		return
	}
	b, err := json.Marshal(suggestions)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(category), b, trendingCacheTTL).Err(); err != nil {
		s.logger.Warn("trending cache write failed", "error", err.Error())
	}
}
