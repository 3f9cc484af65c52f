package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/zhouzirui/campushelp/backend/internal/config"
)

const azureSentimentPath = "/text/analytics/v3.1/sentiment"

var errAzureCredentials = errors.New("azure language endpoint or key missing")

// AzureBackend calls the Azure AI Language sentiment endpoint.
type AzureBackend struct {
	endpoint string
	key      string
	language string
	client   *http.Client
}

// NewAzureBackend 根据配置创建 Azure 情感分析后端。client 为空时使用 http.DefaultClient。
func NewAzureBackend(cfg config.AzureConfig, client *http.Client) (*AzureBackend, error) {
	if !cfg.Enabled() {
		return nil, errAzureCredentials
	}
	if client == nil {
		client = http.DefaultClient
	}
	language := cfg.Language
	if language == "" {
		language = "en"
	}
	return &AzureBackend{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		key:      cfg.Key,
		language: language,
		client:   client,
	}, nil
}

// Name implements Backend.
func (b *AzureBackend) Name() string { return "azure" }

type azureDocument struct {
	ID       string `json:"id"`
	Language string `json:"language,omitempty"`
	Text     string `json:"text"`
}

type azureRequest struct {
	Documents []azureDocument `json:"documents"`
}

type azureResponse struct {
	Documents []struct {
		ID        string `json:"id"`
		Sentiment string `json:"sentiment"`
	} `json:"documents"`
	Errors []struct {
		ID    string `json:"id"`
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"errors"`
}

// Analyze implements Backend. The document is sent as a single-item batch.
func (b *AzureBackend) Analyze(ctx context.Context, text string) (string, error) {
	payload, err := json.Marshal(azureRequest{
		Documents: []azureDocument{{ID: "1", Language: b.language, Text: text}},
	})
	if err != nil {
		return "", fmt.Errorf("encode azure request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint+azureSentimentPath, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build azure request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", b.key)

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("azure request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("azure returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result azureResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode azure response: %w", err)
	}
	if len(result.Errors) > 0 {
		return "", fmt.Errorf("azure document error %s: %s", result.Errors[0].Error.Code, result.Errors[0].Error.Message)
	}
	if len(result.Documents) == 0 {
		return "", errors.New("azure response has no documents")
	}
	// Azure 额外返回 mixed，这里按 neutral 处理。
	label := result.Documents[0].Sentiment
	if strings.EqualFold(label, "mixed") {
		label = "neutral"
	}
	return label, nil
}
