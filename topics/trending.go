package topics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"post-pilot/helpers"
	"post-pilot/models"
)

const (
	chatEndpoint    = "https://openrouter.ai/api/v1/chat/completions"
	trendingModel   = "mistralai/mistral-small-3.2-24b-instruct-2506:free" // https://openrouter.ai/models
	trendingTimeout = 20 * time.Second
)

// Suggestion is one candidate topic from the trending source. AiCurated
// suggestions are recorded as ai_suggested rather than trending.
type Suggestion struct {
	Name      string `json:"name"`
	AiCurated bool   `json:"ai_curated"`
}

type TrendingClient interface {
	FetchTrending(ctx context.Context, category string, count int) ([]Suggestion, error)
}

// AiTrendingClient asks the chat backend for currently trending topics in a
// category. Calls are bounded by the client timeout so a dead backend trips
// the fallback path instead of hanging.
type AiTrendingClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewAiTrendingClient(endpoint, apiKey string) *AiTrendingClient {
	if endpoint == "" {
		endpoint = chatEndpoint
	}
	return &AiTrendingClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: trendingTimeout},
	}
}

func (c *AiTrendingClient) FetchTrending(ctx context.Context, category string, count int) ([]Suggestion, error) {
	if category == "" {
		category = "general"
	}

	prompt := fmt.Sprintf(
		"List %d social media topics trending right now in the %s category. Respond with one short topic name per line, no numbering, no commentary.",
		count, category,
	)

	reqBody := models.ChatRequest{
		Model: trendingModel,
		Messages: []models.ChatMessage{
			{Role: "system", Content: "You are a helpful assistant that suggests trending social media topics."},
			{Role: "user", Content: prompt},
		},
	}

	headers := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + c.apiKey,
	}

	resp, err := helpers.MakeHTTPRequest[models.ChatResponse](ctx, c.client, "POST", c.endpoint, headers, nil, reqBody)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("no choices in trending response")
	}

	names := parseTopicLines(resp.Choices[0].Message.Content, count)
	if len(names) == 0 {
		return nil, errors.New("trending response contained no topics")
	}

	suggestions := make([]Suggestion, 0, len(names))
	for _, name := range names {
		suggestions = append(suggestions, Suggestion{Name: name, AiCurated: true})
	}
	return suggestions, nil
}

// parseTopicLines extracts up to limit topic names, stripping the list
// decorations models tend to add anyway.
func parseTopicLines(content string, limit int) []string {
	var names []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• ")
		if stripped := strings.TrimLeft(line, "0123456789"); stripped != line {
			line = strings.TrimLeft(stripped, ".)")
		}
		line = strings.Trim(line, " \"'")
		if line == "" {
			continue
		}
		names = append(names, line)
		if limit > 0 && len(names) >= limit {
			break
		}
	}
	return names
}
