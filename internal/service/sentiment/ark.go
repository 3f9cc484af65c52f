package sentiment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

// ChainBackend classifies text with an eino chain: prompt template followed
// by a chat model.
type ChainBackend struct {
	name       string
	classifier compose.Runnable[map[string]any, *schema.Message]
}

// NewChainBackend compiles the classification chain around chatModel.
func NewChainBackend(ctx context.Context, name string, chatModel model.ChatModel) (*ChainBackend, error) {
	if chatModel == nil {
		return nil, errors.New("chat model is required")
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(classifierSystemPrompt),
		schema.UserMessage(classifierUserPrompt),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile sentiment classifier chain: %w", err)
	}

	return &ChainBackend{name: name, classifier: runnable}, nil
}

// Name implements Backend.
func (b *ChainBackend) Name() string { return b.name }

// Analyze implements Backend.
func (b *ChainBackend) Analyze(ctx context.Context, text string) (string, error) {
	msg, err := b.classifier.Invoke(ctx, map[string]any{"text": strings.TrimSpace(text)})
	if err != nil {
		return "", fmt.Errorf("classifier invoke failed: %w", err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return "", errors.New("classifier returned empty content")
	}

	label, err := parseClassifierOutput(msg.Content)
	if err != nil {
		return "", fmt.Errorf("classifier output parse failed: %w", err)
	}
	return label, nil
}
