package sentiment

import (
	"context"
	"errors"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/zhouzirui/campushelp/backend/internal/config"
)

// OpenAIBackend classifies text with an OpenAI-compatible chat completion.
type OpenAIBackend struct {
	Model string
	Opts  []option.RequestOption
}

// NewOpenAIBackend 根据配置创建 OpenAI 后端，BaseURL 可指向任意兼容网关。
func NewOpenAIBackend(cfg config.OpenAIConfig, extra ...option.RequestOption) (*OpenAIBackend, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing; provide OPENAI_API_KEY")
	}
	if cfg.Model == "" {
		return nil, errors.New("openai model is required")
	}
	// 单次调用，不重试。
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey), option.WithMaxRetries(0)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	opts = append(opts, extra...)
	return &OpenAIBackend{Model: cfg.Model, Opts: opts}, nil
}

// Name implements Backend.
func (o *OpenAIBackend) Name() string { return "openai" }

// Analyze implements Backend.
func (o *OpenAIBackend) Analyze(ctx context.Context, text string) (string, error) {
	client := openai.NewClient(o.Opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(classifierSystemPrompt),
			openai.UserMessage(strings.Replace(classifierUserPrompt, "{text}", strings.TrimSpace(text), 1)),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return parseClassifierOutput(resp.Choices[0].Message.Content)
}
