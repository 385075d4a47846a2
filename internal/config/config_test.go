package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://api.scraperapi.com", cfg.Relay.BaseURL)
	assert.Equal(t, "us", cfg.Relay.Country)
	assert.Empty(t, cfg.Relay.Key)
	assert.Equal(t, 100, cfg.Scrape.MaxReviews)
	assert.Equal(t, 3, cfg.Scrape.RetryAttempts)
	assert.Equal(t, "output", cfg.Output.Dir)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("REVIEWS_RELAY_KEY", "k-123")
	t.Setenv("REVIEWS_SCRAPE_MAX_REVIEWS", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "k-123", cfg.Relay.Key)
	assert.Equal(t, 25, cfg.Scrape.MaxReviews)
}

func TestScrapeConfig_Durations(t *testing.T) {
	c := ScrapeConfig{RetryDelaySecs: 3, PageDelaySecs: 5, JobDelaySecs: 10}
	assert.Equal(t, 3*time.Second, c.RetryDelay())
	assert.Equal(t, 5*time.Second, c.PageDelay())
	assert.Equal(t, 10*time.Second, c.JobDelay())
}

func TestInitLogger_BadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "nope", Format: "json"})
	assert.Error(t, err)
}
