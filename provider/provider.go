package provider

import (
	"context"

	"github.com/mohammad-safakhou/nexus/config"
	openai_provider "github.com/mohammad-safakhou/nexus/provider/openai"
)

// Message represents a single role-tagged message in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider is the interface that all LLM implementations must satisfy
type Provider interface {
	Generate(ctx context.Context, messages []Message) (string, error)
	CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}

// NewProvider creates an LLM client from configuration. It returns nil (and
// no error) when no API key is configured; callers treat a nil provider as
// degraded mode rather than a failure.
func NewProvider(cfg config.OpenAIConfig) Provider {
	if cfg.APIKey == "" {
		return nil
	}
	return adapter{openai_provider.NewClient(openai_provider.Config{
		APIKey:          cfg.APIKey,
		BaseURL:         cfg.BaseURL,
		CompletionModel: cfg.CompletionModel,
		EmbeddingModel:  cfg.EmbeddingModel,
		Temperature:     cfg.Temperature,
		MaxTokens:       cfg.MaxTokens,
		Timeout:         cfg.Timeout,
	})}
}

// adapter bridges the openai package's message type to the provider-level one.
type adapter struct {
	c *openai_provider.Client
}

func (a adapter) Generate(ctx context.Context, messages []Message) (string, error) {
	msgs := make([]openai_provider.Message, len(messages))
	for i, m := range messages {
		msgs[i] = openai_provider.Message{Role: m.Role, Content: m.Content}
	}
	return a.c.ChatCompletion(ctx, msgs)
}

func (a adapter) CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	return a.c.CreateEmbedding(ctx, texts)
}
