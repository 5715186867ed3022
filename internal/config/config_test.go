package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultNoteRSSURL, cfg.NoteRSSURL)
	assert.Equal(t, DefaultYouTubeHandleURL, cfg.YouTubeHandleURL)
	assert.Equal(t, DefaultUserAgent, cfg.UserAgent)
	assert.Equal(t, 6, cfg.NoteLimit)
	assert.Equal(t, 8, cfg.YouTubeLimit)
	assert.Equal(t, 25*time.Second, cfg.FetchTimeout)
	assert.Equal(t, DefaultOutputPath, cfg.OutputPath)
	assert.Empty(t, cfg.PublishersFile)
	assert.False(t, cfg.YouTubeMetaFallback)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("NOTE_LIMIT", "3")
	t.Setenv("OUTPUT_PATH", " out/feeds.json ")
	t.Setenv("FETCH_TIMEOUT_SECONDS", "5")
	t.Setenv("YOUTUBE_META_FALLBACK", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.NoteLimit)
	assert.Equal(t, "out/feeds.json", cfg.OutputPath)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.True(t, cfg.YouTubeMetaFallback)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "zero timeout", key: "FETCH_TIMEOUT_SECONDS", val: "0"},
		{name: "negative note limit", key: "NOTE_LIMIT", val: "-1"},
		{name: "zero youtube limit", key: "YOUTUBE_LIMIT", val: "0"},
		{name: "blank output", key: "OUTPUT_PATH", val: "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			require.Error(t, err)
		})
	}
}
