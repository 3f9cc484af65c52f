package sentiment

import (
	"context"
	"fmt"
	"net/http"

	"github.com/zhouzirui/campushelp/backend/internal/config"
)

// NewBackend builds the backend selected by cfg.Provider. It returns a nil
// backend and no error when no provider is configured.
func NewBackend(ctx context.Context, cfg config.SentimentConfig) (Backend, error) {
	switch cfg.Provider {
	case "", config.ProviderNone:
		return nil, nil
	case config.ProviderLexicon:
		return LexiconBackend{}, nil
	case config.ProviderAzure:
		return NewAzureBackend(cfg.Azure, &http.Client{Timeout: cfg.Timeout})
	case config.ProviderOpenAI:
		return NewOpenAIBackend(cfg.OpenAI)
	case config.ProviderArk:
		chatModel, err := cfg.Ark.NewChatModel(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create chat model: %w", err)
		}
		return NewChainBackend(ctx, config.ProviderArk, chatModel)
	default:
		return nil, fmt.Errorf("unsupported sentiment provider %q", cfg.Provider)
	}
}

// NewFromConfig builds the probe for cfg. A backend that cannot be created
// is returned as an error alongside an unconfigured Service, so callers may
// log and continue.
func NewFromConfig(ctx context.Context, cfg config.SentimentConfig) (*Service, error) {
	opts := Options{
		Timeout:         cfg.Timeout,
		BreakerEnabled:  cfg.BreakerEnabled,
		BreakerFailures: cfg.BreakerFailures,
		BreakerCooldown: cfg.BreakerCooldown,
	}

	backend, err := NewBackend(ctx, cfg)
	if err != nil {
		return NewService(nil, opts), err
	}
	return NewService(backend, opts), nil
}
