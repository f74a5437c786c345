package ai

import (
	"fmt"
	"strings"

	"github.com/zhouzirui/captain-jack/backend/internal/model/persona"
	"github.com/zhouzirui/captain-jack/backend/internal/model/relay"
	"github.com/zhouzirui/captain-jack/backend/internal/model/scenario"
)

// PromptBuilder renders the persona system prompt and per-request instructions.
// It holds only immutable data and is shared by all requests.
type PromptBuilder struct {
	persona   persona.Persona
	scenarios scenario.Store
	system    string
}

// NewPromptBuilder creates a builder for the given persona and scenario table.
func NewPromptBuilder(p persona.Persona, scenarios scenario.Store) *PromptBuilder {
	return &PromptBuilder{
		persona:   p,
		scenarios: scenarios,
		system:    buildSystemPrompt(p),
	}
}

// SystemPrompt returns the persona instruction sent as the system turn.
func (b *PromptBuilder) SystemPrompt() string {
	return b.system
}

// Instruction composes the user turn for msg and reports the resolved scenario.
func (b *PromptBuilder) Instruction(msg relay.Message) (string, scenario.Scenario) {
	resolved := b.scenarios.Resolve(msg.ScenarioKey)

	childContext := ""
	if msg.HasChild() {
		childContext = " for " + msg.ChildName
	}

	return fmt.Sprintf("Generate a response about %s%s. Parent's message: %s", resolved.Description, childContext, msg.Text), resolved
}

func buildSystemPrompt(p persona.Persona) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "You are %s, %s. \n", p.Name, p.Title)
	builder.WriteString("Your responses should be:\n")
	for i, rule := range p.Rules {
		fmt.Fprintf(&builder, "%d. %s\n", i+1, rule)
	}
	if p.Closing != "" {
		builder.WriteString("\n")
		builder.WriteString(p.Closing)
	}
	return strings.TrimRight(builder.String(), "\n")
}
