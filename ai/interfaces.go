package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
//
// A collection is pinned to one embedder for its lifetime: vectors produced by
// different embedders are not comparable, so mixing them silently degrades
// retrieval distances.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Provider is a uniform interface over hosted text-generation backends.
// Implementations must be thread-safe for concurrent use.
//
// Generation failures are ordinary errors, not panics: a missing credential
// surfaces as ErrUnavailable and transient backend failures are wrapped and
// returned, so callers can treat them as data rather than control flow.
type Provider interface {
	// Generate produces a text completion for the given prompt.
	// systemPrompt may be empty; when set it is delivered as a system message
	// where the backend supports one, or prepended to the prompt otherwise.
	Generate(ctx context.Context, prompt, systemPrompt string) (string, error)

	// IsAvailable reports whether the backend credential is configured.
	IsAvailable() bool

	// ListModels returns the recommended model names for this backend.
	ListModels() []string

	// Name returns the registry key of this provider, e.g. "gemini".
	Name() string
}
