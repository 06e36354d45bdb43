package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharLimit(t *testing.T) {
	assert.Equal(t, 280, CharLimit(PlatformTwitter))
	assert.Equal(t, 3000, CharLimit(PlatformLinkedin))
	assert.Equal(t, 2000, CharLimit(PlatformFacebook))
	assert.Equal(t, 2200, CharLimit(PlatformInstagram))
	assert.Equal(t, DefaultCharLimit, CharLimit("mastodon"))
}

func TestKnownPlatform(t *testing.T) {
	assert.True(t, KnownPlatform(PlatformTwitter))
	assert.False(t, KnownPlatform("mastodon"))
	assert.False(t, KnownPlatform(""))
}

func TestValidContent(t *testing.T) {
	assert.True(t, ValidContent(PlatformTwitter, "hello world"))
	assert.False(t, ValidContent(PlatformTwitter, ""))
	assert.False(t, ValidContent(PlatformTwitter, "   \t\n"))

	// limits count runes, not bytes
	assert.True(t, ValidContent(PlatformTwitter, strings.Repeat("é", 280)))
	assert.False(t, ValidContent(PlatformTwitter, strings.Repeat("é", 281)))

	// unknown platforms fall back to the default limit
	assert.True(t, ValidContent("mastodon", strings.Repeat("a", 1000)))
	assert.False(t, ValidContent("mastodon", strings.Repeat("a", 1001)))
}

func TestTerminal(t *testing.T) {
	for status, terminal := range map[string]bool{
		StatusPending:   false,
		StatusReady:     false,
		StatusScheduled: false,
		StatusPosted:    true,
		StatusFailed:    true,
	} {
		p := &Post{Status: status}
		assert.Equal(t, terminal, p.Terminal(), "status %s", status)
	}
}
