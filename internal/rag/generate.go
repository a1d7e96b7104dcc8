package rag

import (
	"context"

	"github.com/mohammad-safakhou/nexus/provider"
)

// DegradedResponse is returned in place of a completion when no generation
// provider is configured. The service stays usable without generation
// quality.
const DegradedResponse = "I'm sorry, I'm not configured properly (missing API key)."

// Generator sends a conversation to the LLM provider and returns the
// completion text.
type Generator struct {
	Provider provider.Provider
}

// Generate forwards user and assistant turns to the provider; turns with any
// other role are dropped. A nil provider yields DegradedResponse without
// error. Provider errors are returned as errors so callers can distinguish a
// real completion from a failure; conversion to in-band text happens at the
// orchestrator boundary.
func (g *Generator) Generate(ctx context.Context, turns []Turn) (string, error) {
	if g.Provider == nil {
		return DegradedResponse, nil
	}
	messages := make([]provider.Message, 0, len(turns))
	for _, t := range turns {
		switch t.Role {
		case RoleUser, RoleAssistant:
			messages = append(messages, provider.Message{Role: t.Role, Content: t.Content})
		}
	}
	return g.Provider.Generate(ctx, messages)
}
