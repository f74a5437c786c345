// Package openai adapts go-openai chat completions to eino's ChatModel.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	goopenai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const (
	DefaultModel     = goopenai.GPT4oMini
	DefaultMaxTokens = 150
)

// ErrToolsUnsupported is returned by BindTools.
var ErrToolsUnsupported = errors.New("openai: tool binding is not supported")

// Config describes the OpenAI-compatible endpoint.
type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// ChatModel implements model.ChatModel on top of go-openai.
type ChatModel struct {
	client    *goopenai.Client
	model     string
	maxTokens int
}

var _ model.ChatModel = (*ChatModel)(nil)

// NewChatModel builds a client; BaseURL may point at any compatible gateway.
func NewChatModel(cfg Config) (*ChatModel, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("openai: API key not configured")
	}

	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); baseURL != "" {
		clientCfg.BaseURL = baseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	modelName := strings.TrimSpace(cfg.Model)
	if modelName == "" {
		modelName = DefaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	return &ChatModel{
		client:    goopenai.NewClientWithConfig(clientCfg),
		model:     modelName,
		maxTokens: maxTokens,
	}, nil
}

// Generate issues one chat completion and returns the first choice.
func (m *ChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	options := model.GetCommonOptions(&model.Options{
		Model:     &m.model,
		MaxTokens: &m.maxTokens,
	}, opts...)

	req, err := m.buildRequest(input, options)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := m.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai: no completion returned")
	}

	choice := resp.Choices[0]
	logrus.WithFields(logrus.Fields{
		"model":             resp.Model,
		"finish_reason":     choice.FinishReason,
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
		"latency":           time.Since(start),
	}).Debug("openai completion finished")

	msg := schema.AssistantMessage(choice.Message.Content, nil)
	msg.ResponseMeta = &schema.ResponseMeta{
		FinishReason: string(choice.FinishReason),
		Usage: &schema.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
	return msg, nil
}

// Stream wraps the Generate result in a single-chunk stream.
func (m *ChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

// BindTools always fails.
func (m *ChatModel) BindTools(_ []*schema.ToolInfo) error {
	return ErrToolsUnsupported
}

func (m *ChatModel) buildRequest(input []*schema.Message, options *model.Options) (goopenai.ChatCompletionRequest, error) {
	req := goopenai.ChatCompletionRequest{
		Model:     m.model,
		MaxTokens: m.maxTokens,
		Stop:      options.Stop,
	}
	if options.Model != nil && *options.Model != "" {
		req.Model = *options.Model
	}
	if options.MaxTokens != nil && *options.MaxTokens > 0 {
		req.MaxTokens = *options.MaxTokens
	}
	if options.Temperature != nil {
		req.Temperature = *options.Temperature
	}
	if options.TopP != nil {
		req.TopP = *options.TopP
	}

	for _, msg := range input {
		if msg == nil {
			continue
		}
		var role string
		switch msg.Role {
		case schema.System:
			role = goopenai.ChatMessageRoleSystem
		case schema.User:
			role = goopenai.ChatMessageRoleUser
		case schema.Assistant:
			role = goopenai.ChatMessageRoleAssistant
		default:
			return req, fmt.Errorf("openai: unsupported message role %q", msg.Role)
		}
		req.Messages = append(req.Messages, goopenai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}
	if len(req.Messages) == 0 {
		return req, fmt.Errorf("openai: at least one message is required")
	}
	return req, nil
}
