package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "BOT_ID", "BOT_NAME", "SENTIMENT_PROVIDER", "SENTIMENT_TIMEOUT",
		"SENTIMENT_BREAKER_ENABLED", "SENTIMENT_BREAKER_FAILURES", "SENTIMENT_BREAKER_COOLDOWN",
		"AZURE_LANGUAGE_ENDPOINT", "AZURE_LANGUAGE_KEY", "AZURE_LANGUAGE_CODE",
		"ARK_API_KEY", "ARK_ACCESS_KEY", "ARK_SECRET_KEY", "Model", "ARK_TEMPERATURE", "ARK_MAX_TOKENS",
		"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL", "WS_RATE_LIMIT", "WS_RATE_BURST",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3978", cfg.Server.Addr)
	assert.False(t, cfg.Sentiment.Configured())
	assert.Equal(t, 5*time.Second, cfg.Sentiment.Timeout)
	assert.True(t, cfg.Sentiment.BreakerEnabled)
	assert.Equal(t, 5, cfg.Sentiment.BreakerFailures)
	assert.Equal(t, "en", cfg.Sentiment.Azure.Language)
	assert.Equal(t, 5.0, cfg.WebSocket.RateLimit)
	assert.Equal(t, 10, cfg.WebSocket.RateBurst)
}

func TestLoadAzureCredentialsSelectAzureProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("AZURE_LANGUAGE_ENDPOINT", "https://example.cognitiveservices.azure.com/")
	t.Setenv("AZURE_LANGUAGE_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderAzure, cfg.Sentiment.Provider)
	assert.Equal(t, "https://example.cognitiveservices.azure.com", cfg.Sentiment.Azure.Endpoint)
}

func TestLoadExplicitProviderWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("SENTIMENT_PROVIDER", "Lexicon")
	t.Setenv("AZURE_LANGUAGE_ENDPOINT", "https://example.cognitiveservices.azure.com")
	t.Setenv("AZURE_LANGUAGE_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderLexicon, cfg.Sentiment.Provider)
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("SENTIMENT_PROVIDER", "watson")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("SENTIMENT_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadServerAddr(t *testing.T) {
	tests := []struct {
		name    string
		port    string
		want    string
		wantErr bool
	}{
		{name: "bare port", port: "8080", want: ":8080"},
		{name: "host and port", port: "127.0.0.1:9000", want: "127.0.0.1:9000"},
		{name: "space", port: "80 80", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", tt.port)
			got, err := loadServerConfig()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Addr)
		})
	}
}

func TestBreakerFailuresClamped(t *testing.T) {
	clearEnv(t)
	t.Setenv("SENTIMENT_BREAKER_FAILURES", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Sentiment.BreakerFailures)
}
