package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/captain-jack/backend/internal/model/relay"
)

// DefaultMaxTokens caps generated output when no cap is configured.
const DefaultMaxTokens = 150

// Service relays one parent message to the completion provider.
type Service struct {
	chatModel model.BaseChatModel
	prompts   *PromptBuilder
	template  prompt.ChatTemplate
	maxTokens int
}

// NewService creates a relay service around an already configured chat model.
func NewService(chatModel model.BaseChatModel, prompts *PromptBuilder, maxTokens int) (*Service, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("chat model is required")
	}
	if prompts == nil {
		return nil, fmt.Errorf("prompt builder is required")
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	template := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	return &Service{
		chatModel: chatModel,
		prompts:   prompts,
		template:  template,
		maxTokens: maxTokens,
	}, nil
}

// GenerateReply builds the prompt for msg and performs a single blocking
// provider call. Failures are returned as relay.KindProvider errors.
func (s *Service) GenerateReply(ctx context.Context, msg relay.Message) (*relay.Reply, error) {
	relayID := uuid.NewString()
	instruction, resolved := s.prompts.Instruction(msg)

	logger := logrus.WithFields(logrus.Fields{
		"relay_id": relayID,
		"scenario": resolved.Key,
	})

	messages, err := s.template.Format(ctx, map[string]any{
		"system": s.prompts.SystemPrompt(),
		"query":  instruction,
	})
	if err != nil {
		return nil, relay.NewProviderError(fmt.Errorf("failed to render prompt: %w", err))
	}

	start := time.Now()
	response, err := s.chatModel.Generate(ctx, messages, model.WithMaxTokens(s.maxTokens))
	elapsed := time.Since(start)
	if err != nil {
		logger.WithError(err).WithField("latency", elapsed).Warn("completion provider call failed")
		return nil, relay.NewProviderError(err)
	}
	if response == nil {
		return nil, relay.NewProviderError(fmt.Errorf("completion provider returned no message"))
	}

	reply := &relay.Reply{
		ID:          relayID,
		Content:     response.Content,
		ScenarioKey: resolved.Key,
	}
	if response.ResponseMeta != nil {
		reply.FinishReason = response.ResponseMeta.FinishReason
	}

	logger.WithFields(logrus.Fields{
		"latency":       elapsed,
		"length":        len(reply.Content),
		"finish_reason": reply.FinishReason,
	}).Info("generated reply")
	return reply, nil
}
