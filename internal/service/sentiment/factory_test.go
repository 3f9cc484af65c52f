package sentiment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/campushelp/backend/internal/config"
)

func TestNewFromConfigUnconfigured(t *testing.T) {
	svc, err := NewFromConfig(context.Background(), config.SentimentConfig{})
	require.NoError(t, err)
	assert.False(t, svc.Configured())
}

func TestNewFromConfigLexicon(t *testing.T) {
	svc, err := NewFromConfig(context.Background(), config.SentimentConfig{Provider: config.ProviderLexicon})
	require.NoError(t, err)
	assert.True(t, svc.Configured())
}

func TestNewFromConfigMissingCredentialsFallsBack(t *testing.T) {
	svc, err := NewFromConfig(context.Background(), config.SentimentConfig{Provider: config.ProviderAzure})
	require.Error(t, err)
	require.NotNil(t, svc)
	assert.False(t, svc.Configured())

	svc, err = NewFromConfig(context.Background(), config.SentimentConfig{Provider: config.ProviderArk})
	require.Error(t, err)
	assert.False(t, svc.Configured())
}
