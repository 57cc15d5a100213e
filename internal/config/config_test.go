package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("TWITTER_CONSUMER_KEY", "ck")
	t.Setenv("TWITTER_CONSUMER_SECRET", "cs")
	t.Setenv("TWITTER_ACCESS_TOKEN", "at")
	t.Setenv("TWITTER_ACCESS_TOKEN_SECRET", "as")
}

func TestLoad_Defaults(t *testing.T) {
	setCredentials(t)

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, "ck", cfg.ConsumerKey)
	assert.Equal(t, "cs", cfg.ConsumerSecret)
	assert.Equal(t, "at", cfg.AccessToken)
	assert.Equal(t, "as", cfg.AccessTokenSecret)
	assert.Equal(t, "ruboty", cfg.RobotName)
	assert.Equal(t, 200*time.Millisecond, cfg.ChunkPause)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.PostLog)
	assert.Empty(t, cfg.MetricsAddr)
	assert.False(t, cfg.AutoFollowBack())
}

func TestLoad_Overrides(t *testing.T) {
	setCredentials(t)
	t.Setenv("ROBOT_NAME", "mybot")
	t.Setenv("TWITTER_CHUNK_PAUSE", "1s")
	t.Setenv("TWITTER_POST_LOG", "/tmp/posts.sqlite")
	t.Setenv("METRICS_ADDR", ":9090")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, "mybot", cfg.RobotName)
	assert.Equal(t, time.Second, cfg.ChunkPause)
	assert.Equal(t, "/tmp/posts.sqlite", cfg.PostLog)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
}

func TestLoad_MissingCredential(t *testing.T) {
	for _, name := range []string{
		"TWITTER_CONSUMER_KEY",
		"TWITTER_CONSUMER_SECRET",
		"TWITTER_ACCESS_TOKEN",
		"TWITTER_ACCESS_TOKEN_SECRET",
	} {
		t.Run(name, func(t *testing.T) {
			setCredentials(t)
			t.Setenv(name, "")

			_, err := load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestLoad_NegativePause(t *testing.T) {
	setCredentials(t)
	t.Setenv("TWITTER_CHUNK_PAUSE", "-1s")

	_, err := load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TWITTER_CHUNK_PAUSE")
}

func TestAutoFollowBack(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"", false},
		{"1", true},
		{"0", false},
		{"true", false},
		{" 1", false},
		{"11", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			cfg := Config{AutoFollowBackRaw: tt.raw}
			assert.Equal(t, tt.want, cfg.AutoFollowBack())
		})
	}
}
