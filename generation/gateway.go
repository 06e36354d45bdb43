// Package generation is the gateway between generation requests and the AI
// backend. It is the only place fallback text is synthesized: an unreachable
// backend degrades to placeholder content instead of blocking the workflow.
package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"post-pilot/models"
	"post-pilot/store"
)

// ErrEmptyPrompt is the one generation error that propagates to the caller;
// backend failures are recovered into placeholder content.
var ErrEmptyPrompt = errors.New("prompt is required")

const DefaultTone = "professional"

type Request struct {
	Platform        string `json:"platform"`
	Prompt          string `json:"prompt"`
	Tone            string `json:"tone"`
	IncludeHashtags bool   `json:"include_hashtags"`
}

// Result carries the created draft. Fallback marks degraded mode: the post
// holds placeholder content because the backend was unavailable.
type Result struct {
	Post     *models.Post `json:"post"`
	Fallback bool         `json:"fallback"`
	Notice   string       `json:"notice,omitempty"`
}

type Gateway struct {
	backend Backend
	store   *store.PostStore
	slots   *Slots
	logger  *slog.Logger
}

func NewGateway(backend Backend, s *store.PostStore, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		backend: backend,
		store:   s,
		slots:   NewSlots(),
		logger:  logger,
	}
}

// Generate produces a draft post for (platform, prompt, tone). On backend
// success the generated text is stored verbatim; on failure the post is
// created with deterministic placeholder content and the result is flagged.
func (g *Gateway) Generate(ctx context.Context, req Request) (*Result, error) {
	return g.generate(ctx, ctx, req, "", 0)
}

// GenerateForSlot runs Generate under last-submitted-wins semantics for a
// logical UI slot: starting a newer generation for the same slot cancels
// this one, and a superseded result is discarded instead of stored.
func (g *Gateway) GenerateForSlot(ctx context.Context, slot string, req Request) (*Result, error) {
	slotCtx, seq, cancel := g.slots.Begin(ctx, slot)
	defer cancel()
	return g.generate(slotCtx, ctx, req, slot, seq)
}

// generate calls the backend with callCtx (cancellable per slot) and stores
// the draft with storeCtx so a slot cancellation never half-writes a post.
func (g *Gateway) generate(callCtx, storeCtx context.Context, req Request, slot string, seq uint64) (*Result, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}
	platform := strings.ToLower(strings.TrimSpace(req.Platform))
	if platform == "" {
		return nil, store.ErrEmptyPlatform
	}
	tone := req.Tone
	if tone == "" {
		tone = DefaultTone
	}

	result := &Result{}

	content, err := g.backend.GenerateContent(callCtx, platform, prompt, tone, req.IncludeHashtags)

	// the winner of a slot is decided by submission order, not completion order
	if slot != "" && !g.slots.Current(slot, seq) {
		return nil, ErrSuperseded
	}

	if err != nil {
		reason := "Error generating content"
		if errors.Is(err, ErrBackendRejected) {
			reason = "AI generation unavailable"
		}
		g.logger.Warn("generation degraded to placeholder content", "platform", platform, "error", err.Error())
		content = fmt.Sprintf("%s. Mock content about %s for %s.", reason, prompt, platform)
		result.Fallback = true
		result.Notice = reason
	}

	post, err := g.store.Create(storeCtx, platform, content)
	if err != nil {
		return nil, err
	}
	result.Post = post
	return result, nil
}
