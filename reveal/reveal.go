// Package reveal implements the character-by-character reveal of generated
// text. It is a presentation effect only and stays outside the lifecycle
// engine: a pure, cancellable sequence consumer.
package reveal

import (
	"context"
	"time"
)

const DefaultInterval = 50 * time.Millisecond

// Stream emits text one rune at a time on the returned channel, pacing by
// interval, and closes the channel when the text ends or ctx is cancelled.
func Stream(ctx context.Context, text string, interval time.Duration) <-chan rune {
	if interval <= 0 {
		interval = DefaultInterval
	}

	out := make(chan rune)
	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for _, r := range text {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			select {
			case <-ctx.Done():
				return
			case out <- r:
			}
		}
	}()
	return out
}

// Collect drains a reveal stream back into a string, returning what was
// revealed before the stream ended or was cancelled.
func Collect(stream <-chan rune) string {
	var runes []rune
	for r := range stream {
		runes = append(runes, r)
	}
	return string(runes)
}
