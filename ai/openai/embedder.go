package openai

import (
	"context"
	"log/slog"

	"github.com/poiesic/tutorkit/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Embedder talks to an OpenAI-compatible embedding endpoint (Ollama, LocalAI,
// vLLM, or the real thing) through langchaingo.
type Embedder struct {
	embedder embeddings.Embedder
	logger   *slog.Logger
}

// NewEmbedder builds an embedder from the configured host and model.
// Returns the ai.Embedder interface to keep callers off the concrete type.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	if config == nil {
		return nil, ai.ErrConfigRequired
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Local OpenAI-compatible servers ignore the token but the client
	// requires one, so send a placeholder.
	client, err := openai.New(
		openai.WithBaseURL(config.EmbeddingHost),
		openai.WithToken("none"),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	return &Embedder{
		embedder: embedder,
		logger:   slog.Default().With("component", "openai-embedder"),
	}, nil
}

// EmbedText embeds a single text, typically a retrieval query.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	e.logger.Debug("embedding query text", "length", len(text))

	vector, err := e.embedder.EmbedQuery(ctx, text)
	if err != nil {
		e.logger.Error("failed to embed text", "err", err)
		return nil, err
	}
	return vector, nil
}

// EmbedTexts embeds a batch of texts in one API call.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug("embedding text batch", "count", len(texts))

	vectors, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		e.logger.Error("failed to embed batch", "count", len(texts), "err", err)
		return nil, err
	}
	return vectors, nil
}
