package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino/components/model"
	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/captain-jack/backend/internal/provider/openai"
)

// 支持的大模型提供方。
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderArk       = "ark"
)

// DefaultAnthropicModel 与原有服务保持一致。
const DefaultAnthropicModel = "claude-3-opus-20240229"

// 错误映射模式。
const (
	ErrorModeCompat = "compat"
	ErrorModeStrict = "strict"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Log    LogConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	logCfg, err := loadLogConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, AI: ai, Log: logCfg}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr      string
	ErrorMode string
}

// StrictErrors 表示是否区分 4xx 与 5xx。
func (c ServerConfig) StrictErrors() bool {
	return c.ErrorMode == ErrorModeStrict
}

// loadServerConfig 解析服务器监听地址与错误映射模式。
func loadServerConfig() (ServerConfig, error) {
	mode := strings.ToLower(getEnvOrDefault("ERROR_MODE", ErrorModeCompat))
	if mode != ErrorModeCompat && mode != ErrorModeStrict {
		return ServerConfig{}, fmt.Errorf("invalid ERROR_MODE value: %q", mode)
	}

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8000"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8000" 或 "127.0.0.1:8000"。
		return ServerConfig{Addr: port, ErrorMode: mode}, nil
	}

	if _, err := strconv.Atoi(port); err != nil {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port, ErrorMode: mode}, nil
}

// LogConfig 描述日志输出。
type LogConfig struct {
	Level  logrus.Level
	Format string
}

func loadLogConfig() (LogConfig, error) {
	rawLevel := getEnvOrDefault("LOG_LEVEL", "info")
	level, err := logrus.ParseLevel(rawLevel)
	if err != nil {
		return LogConfig{}, fmt.Errorf("invalid LOG_LEVEL value %q: %w", rawLevel, err)
	}

	format := strings.ToLower(getEnvOrDefault("LOG_FORMAT", "text"))
	if format != "text" && format != "json" {
		return LogConfig{}, fmt.Errorf("invalid LOG_FORMAT value: %q", format)
	}

	return LogConfig{Level: level, Format: format}, nil
}

// Apply 将日志配置写入全局 logrus 实例。
func (c LogConfig) Apply() {
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(c.Level)
	if c.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// AIConfig 描述大模型相关配置。
type AIConfig struct {
	Provider  string
	MaxTokens int
	Timeout   time.Duration

	AnthropicAPIKey  string
	AnthropicModel   string
	AnthropicBaseURL string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	ArkAPIKey    string
	ArkAccessKey string
	ArkSecretKey string
	ArkModel     string
	ArkBaseURL   string
	ArkRegion    string
}

// Enabled 表示当前提供方是否提供了必需的密钥。
func (c AIConfig) Enabled() bool {
	switch c.Provider {
	case ProviderAnthropic:
		return c.AnthropicAPIKey != ""
	case ProviderOpenAI:
		return c.OpenAIAPIKey != ""
	case ProviderArk:
		return c.ArkModel != "" && (c.ArkAPIKey != "" || (c.ArkAccessKey != "" && c.ArkSecretKey != ""))
	default:
		return false
	}
}

// NewChatModel 使用配置创建一个模型实例。
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("%s 凭证或模型配置缺失", c.Provider)
	}

	switch c.Provider {
	case ProviderAnthropic:
		claudeCfg := &claude.Config{
			APIKey:    c.AnthropicAPIKey,
			Model:     c.AnthropicModel,
			MaxTokens: c.MaxTokens,
		}
		if c.AnthropicBaseURL != "" {
			baseURL := c.AnthropicBaseURL
			claudeCfg.BaseURL = &baseURL
		}
		return claude.NewChatModel(ctx, claudeCfg)
	case ProviderOpenAI:
		return openai.NewChatModel(openai.Config{
			APIKey:    c.OpenAIAPIKey,
			BaseURL:   c.OpenAIBaseURL,
			Model:     c.OpenAIModel,
			MaxTokens: c.MaxTokens,
			Timeout:   c.Timeout,
		})
	case ProviderArk:
		maxTokens := c.MaxTokens
		return ark.NewChatModel(ctx, &ark.ChatModelConfig{
			BaseURL:   c.ArkBaseURL,
			Region:    c.ArkRegion,
			APIKey:    c.ArkAPIKey,
			AccessKey: c.ArkAccessKey,
			SecretKey: c.ArkSecretKey,
			Model:     c.ArkModel,
			MaxTokens: &maxTokens,
		})
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", c.Provider)
	}
}

func loadAIConfig() (AIConfig, error) {
	provider := strings.ToLower(getEnvOrDefault("LLM_PROVIDER", ProviderAnthropic))
	switch provider {
	case ProviderAnthropic, ProviderOpenAI, ProviderArk:
	default:
		return AIConfig{}, fmt.Errorf("invalid LLM_PROVIDER value: %q", provider)
	}

	maxTokens := 150
	if override, err := parseOptionalIntEnv("MAX_TOKENS"); err != nil {
		return AIConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return AIConfig{}, fmt.Errorf("invalid MAX_TOKENS value %d: must be at least 1", *override)
		}
		maxTokens = *override
	}

	timeoutSeconds := 60
	if override, err := parseOptionalIntEnv("PROVIDER_TIMEOUT"); err != nil {
		return AIConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return AIConfig{}, fmt.Errorf("invalid PROVIDER_TIMEOUT value %d: must be at least 1", *override)
		}
		timeoutSeconds = *override
	}

	return AIConfig{
		Provider:  provider,
		MaxTokens: maxTokens,
		Timeout:   time.Duration(timeoutSeconds) * time.Second,

		AnthropicAPIKey:  strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")),
		AnthropicModel:   getEnvOrDefault("ANTHROPIC_MODEL", DefaultAnthropicModel),
		AnthropicBaseURL: strings.TrimSpace(os.Getenv("ANTHROPIC_BASE_URL")),

		OpenAIAPIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIModel:   getEnvOrDefault("OPENAI_MODEL", openai.DefaultModel),
		OpenAIBaseURL: strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),

		ArkAPIKey:    strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		ArkAccessKey: strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		ArkSecretKey: strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		ArkModel:     strings.TrimSpace(os.Getenv("Model")),
		ArkBaseURL:   getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		ArkRegion:    getEnvOrDefault("ARK_REGION", "cn-beijing"),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
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
