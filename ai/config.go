// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for AI services: the embedding backend and the
// text-generation providers.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for a local OpenAI-compatible server
	EmbeddingHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "all-minilm", "text-embedding-3-small"
	EmbeddingModel string

	// GeminiAPIKey is the credential for the Gemini backend.
	// When empty the gemini provider reports itself as unavailable.
	GeminiAPIKey string

	// GeminiModel is the default model for the gemini provider.
	GeminiModel string

	// MistralAPIKey is the credential for the Mistral backend.
	// When empty the mistral provider reports itself as unavailable.
	MistralAPIKey string

	// MistralModel is the default model for the mistral provider.
	MistralModel string

	// Timeout bounds each blocking call to a generation backend.
	// Timeouts surface as wrapped context errors, not crashes.
	// Default: 60s
	Timeout time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithGeminiKey sets the Gemini API credential.
func WithGeminiKey(key string) ConfigOption {
	return func(c *Config) {
		c.GeminiAPIKey = key
	}
}

// WithGeminiModel sets the default Gemini model.
func WithGeminiModel(model string) ConfigOption {
	return func(c *Config) {
		c.GeminiModel = model
	}
}

// WithMistralKey sets the Mistral API credential.
func WithMistralKey(key string) ConfigOption {
	return func(c *Config) {
		c.MistralAPIKey = key
	}
}

// WithMistralModel sets the default Mistral model.
func WithMistralModel(model string) ConfigOption {
	return func(c *Config) {
		c.MistralModel = model
	}
}

// WithTimeout sets the per-call timeout for generation backends.
func WithTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// DefaultConfig returns a Config with sensible defaults for a local
// OpenAI-compatible embedding service and no generation credentials.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingHost:  "http://localhost:11434/v1",
		EmbeddingModel: "all-minilm",
		GeminiModel:    "gemini-2.0-flash",
		MistralModel:   "mistral-small-latest",
		Timeout:        60 * time.Second,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithEmbeddingHost("http://localhost:11434/v1"),
//	    ai.WithGeminiKey(os.Getenv("GEMINI_API_KEY")),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It adds the /v1 suffix to the embedding host if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/")
		c.EmbeddingHost = c.EmbeddingHost + "/v1"
	}
	if c.Timeout <= 0 {
		c.Timeout = 60 * time.Second
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
// Generation credentials are intentionally not required; providers without
// a credential simply report themselves as unavailable.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	return nil
}
