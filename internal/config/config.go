package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// 支持的情感分析后端。
const (
	ProviderNone    = "none"
	ProviderLexicon = "lexicon"
	ProviderAzure   = "azure"
	ProviderArk     = "ark"
	ProviderOpenAI  = "openai"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server    ServerConfig
	Bot       BotConfig
	Sentiment SentimentConfig
	WebSocket WebSocketConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	sentiment, err := loadSentimentConfig()
	if err != nil {
		return nil, err
	}

	ws, err := loadWebSocketConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:    server,
		Bot:       loadBotConfig(),
		Sentiment: sentiment,
		WebSocket: ws,
	}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "3978"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":3978" 或 "127.0.0.1:3978"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// BotConfig 描述机器人身份。
type BotConfig struct {
	ID   string
	Name string
}

func loadBotConfig() BotConfig {
	return BotConfig{
		ID:   strings.TrimSpace(os.Getenv("BOT_ID")),
		Name: strings.TrimSpace(os.Getenv("BOT_NAME")),
	}
}

// SentimentConfig 描述情感分析探针及其后端配置。
type SentimentConfig struct {
	Provider        string
	Timeout         time.Duration
	BreakerEnabled  bool
	BreakerFailures int
	BreakerCooldown time.Duration
	Azure           AzureConfig
	Ark             AIConfig
	OpenAI          OpenAIConfig
}

// Configured 表示是否选择了真实的后端。
func (c SentimentConfig) Configured() bool {
	return c.Provider != "" && c.Provider != ProviderNone
}

// AzureConfig 描述 Azure AI Language 情感分析接口配置。
type AzureConfig struct {
	Endpoint string
	Key      string
	Language string
}

// Enabled 表示是否提供了 endpoint 与 key。
func (c AzureConfig) Enabled() bool {
	return c.Endpoint != "" && c.Key != ""
}

// OpenAIConfig 描述 OpenAI 兼容接口配置。
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Enabled 表示是否提供了必需的密钥与模型。
func (c OpenAIConfig) Enabled() bool {
	return c.APIKey != "" && c.Model != ""
}

// AIConfig 描述 Ark 大模型相关配置。
type AIConfig struct {
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	MaxTokens   *int
}

// Enabled 表示是否提供了必需的密钥。
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel 使用配置创建一个模型实例。
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("Ark 凭证或模型配置缺失，至少提供 ARK_API_KEY + Model 或 AK/SK 组合")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var maxTokens *int
	if c.MaxTokens != nil {
		val := *c.MaxTokens
		maxTokens = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadSentimentConfig() (SentimentConfig, error) {
	provider := strings.ToLower(strings.TrimSpace(os.Getenv("SENTIMENT_PROVIDER")))
	switch provider {
	case "", ProviderNone, ProviderLexicon, ProviderAzure, ProviderArk, ProviderOpenAI:
	default:
		return SentimentConfig{}, fmt.Errorf("invalid SENTIMENT_PROVIDER value %q", provider)
	}

	timeout, err := parseDurationEnv("SENTIMENT_TIMEOUT", 5*time.Second)
	if err != nil {
		return SentimentConfig{}, err
	}

	breakerEnabled, err := parseBoolEnv("SENTIMENT_BREAKER_ENABLED", true)
	if err != nil {
		return SentimentConfig{}, err
	}

	failures := 5
	if override, err := parseOptionalIntEnv("SENTIMENT_BREAKER_FAILURES"); err != nil {
		return SentimentConfig{}, err
	} else if override != nil {
		if *override < 1 {
			failures = 1
		} else {
			failures = *override
		}
	}

	cooldown, err := parseDurationEnv("SENTIMENT_BREAKER_COOLDOWN", 30*time.Second)
	if err != nil {
		return SentimentConfig{}, err
	}

	arkCfg, err := loadArkConfig()
	if err != nil {
		return SentimentConfig{}, err
	}

	azure := AzureConfig{
		Endpoint: strings.TrimRight(strings.TrimSpace(os.Getenv("AZURE_LANGUAGE_ENDPOINT")), "/"),
		Key:      strings.TrimSpace(os.Getenv("AZURE_LANGUAGE_KEY")),
		Language: getEnvOrDefault("AZURE_LANGUAGE_CODE", "en"),
	}

	// 未显式指定后端时，如果 Azure 凭证齐全则沿用 Azure。
	if provider == "" && azure.Enabled() {
		provider = ProviderAzure
	}

	return SentimentConfig{
		Provider:        provider,
		Timeout:         timeout,
		BreakerEnabled:  breakerEnabled,
		BreakerFailures: failures,
		BreakerCooldown: cooldown,
		Azure:           azure,
		Ark:             arkCfg,
		OpenAI: OpenAIConfig{
			APIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
			Model:   getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
			BaseURL: strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		},
	}, nil
}

func loadArkConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:       strings.TrimSpace(os.Getenv("Model")),
		BaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}, nil
}

// WebSocketConfig 描述聊天 WebSocket 通道的限流配置。
type WebSocketConfig struct {
	RateLimit float64
	RateBurst int
}

func loadWebSocketConfig() (WebSocketConfig, error) {
	limit := 5.0
	if override, err := parseOptionalFloatEnv("WS_RATE_LIMIT"); err != nil {
		return WebSocketConfig{}, err
	} else if override != nil {
		limit = *override
	}

	burst := 10
	if override, err := parseOptionalIntEnv("WS_RATE_BURST"); err != nil {
		return WebSocketConfig{}, err
	} else if override != nil && *override > 0 {
		burst = *override
	}

	return WebSocketConfig{RateLimit: limit, RateBurst: burst}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if val < 0 {
		return 0, fmt.Errorf("invalid %s value %q: must not be negative", key, raw)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
