package generation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"post-pilot/helpers"
	"post-pilot/models"
)

const (
	chatGptEndpoint = "https://openrouter.ai/api/v1/chat/completions"
	modelName       = "mistralai/mistral-small-3.2-24b-instruct-2506:free" // https://openrouter.ai/models
	backendTimeout  = 20 * time.Second
)

var (
	// ErrBackendUnavailable covers transport failures, timeouts and 5xx from
	// the AI backend. Recovered into placeholder content by the gateway.
	ErrBackendUnavailable = errors.New("ai backend unavailable")

	// ErrBackendRejected covers explicit refusals: missing credentials,
	// content-policy failures, empty completions. Also recovered locally.
	ErrBackendRejected = errors.New("ai backend rejected the request")
)

// Backend turns a generation request into post text.
type Backend interface {
	GenerateContent(ctx context.Context, platform, prompt, tone string, includeHashtags bool) (string, error)
}

// OpenRouterBackend calls the chat completion API. The client timeout bounds
// every call so a dead backend trips the fallback path instead of hanging.
type OpenRouterBackend struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewOpenRouterBackend(endpoint, apiKey string) *OpenRouterBackend {
	if endpoint == "" {
		endpoint = chatGptEndpoint
	}
	return &OpenRouterBackend{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: backendTimeout},
	}
}

func (b *OpenRouterBackend) GenerateContent(ctx context.Context, platform, prompt, tone string, includeHashtags bool) (string, error) {
	if b.apiKey == "" {
		return "", fmt.Errorf("%w: no api key configured", ErrBackendRejected)
	}

	instruction := fmt.Sprintf(
		"Write a %s social media post for %s about %s. Do not include single or double quotes, just write a post that is short, engaging and informative, at most %d characters.",
		tone, platform, prompt, models.CharLimit(platform),
	)
	if includeHashtags {
		instruction += " Add hashtags."
	}

	reqBody := models.ChatRequest{
		Model: modelName,
		Messages: []models.ChatMessage{
			{Role: "system", Content: "You are a helpful assistant that generates social media posts for given data."},
			{Role: "user", Content: instruction},
		},
	}

	headers := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + b.apiKey,
	}

	resp, err := helpers.MakeHTTPRequest[models.ChatResponse](ctx, b.client, "POST", b.endpoint, headers, nil, reqBody)
	if err != nil {
		var httpErr *helpers.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode >= 400 && httpErr.StatusCode < 500 {
			return "", fmt.Errorf("%w: %s", ErrBackendRejected, httpErr.Status)
		}
		return "", fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrBackendRejected)
	}
	return resp.Choices[0].Message.Content, nil
}
