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


package rag

import (
	"context"
	"log/slog"

	"github.com/poiesic/tutorkit/ai"
	"github.com/poiesic/tutorkit/core"
)

// DefaultRelevanceThreshold is the maximum distance for a retrieved
// chunk to count as usable context. Calibrated for squared euclidean
// distances from the all-minilm embedding family; expose it via
// WithRelevanceThreshold rather than assuming it transfers to other
// embedding models.
const DefaultRelevanceThreshold float32 = 1.2

// sourceSnippetLen bounds the length of each source preview.
const sourceSnippetLen = 100

// maxSources bounds how many source previews a response carries.
const maxSources = 3

// Response is the outcome of one grounded generation request.
// Provider failures land in GenerationErr instead of an error return,
// so callers can distinguish "no answer" from a crashed call.
type Response struct {
	Answer          string
	Sources         []string
	ContextUsed     bool
	ChunksRetrieved int
	Provider        string
	Model           string

	// Declined reports that no chunk passed the relevance threshold
	// and Answer holds DeclineMessage.
	Declined bool

	// GenerationErr holds the provider failure, if any. Empty on success.
	GenerationErr string
}

// Generator builds strictly-grounded prompts from retrieved chunks and
// delegates generation to a provider registry.
type Generator struct {
	registry     *ai.Registry
	threshold    float32
	systemPrompt string
	logger       *slog.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator) error

// WithRelevanceThreshold sets the maximum distance for a chunk to be
// used as context. Default is DefaultRelevanceThreshold.
func WithRelevanceThreshold(threshold float32) GeneratorOption {
	return func(g *Generator) error {
		if threshold <= 0 {
			return ErrInvalidThreshold
		}
		g.threshold = threshold
		return nil
	}
}

// WithSystemPrompt overrides the default grounded tutor prompt.
func WithSystemPrompt(prompt string) GeneratorOption {
	return func(g *Generator) error {
		if prompt != "" {
			g.systemPrompt = prompt
		}
		return nil
	}
}

// WithGeneratorLogger sets a custom logger.
// Default is slog.Default().
func WithGeneratorLogger(logger *slog.Logger) GeneratorOption {
	return func(g *Generator) error {
		if logger == nil {
			logger = slog.Default()
		}
		g.logger = logger
		return nil
	}
}

// NewGenerator creates an answer generator backed by a provider registry.
func NewGenerator(registry *ai.Registry, opts ...GeneratorOption) (*Generator, error) {
	if registry == nil {
		return nil, ErrRegistryRequired
	}

	g := &Generator{
		registry:     registry,
		threshold:    DefaultRelevanceThreshold,
		systemPrompt: defaultSystemPrompt,
		logger:       slog.Default().With("component", "generator"),
	}

	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// Answer generates a grounded answer to the question from the retrieved
// chunks. Chunks at or beyond the relevance threshold are discarded; if
// none remain the response declines deterministically without calling
// the provider. Unknown provider names fail with *ai.UnknownProviderError;
// generation failures are reported in Response.GenerationErr.
func (g *Generator) Answer(ctx context.Context, question string, chunks core.RetrievalResult, providerName, model string) (*Response, error) {
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	provider, err := g.registry.Provider(providerName, model)
	if err != nil {
		return nil, err
	}

	relevant := g.filterRelevant(chunks)

	response := &Response{
		ChunksRetrieved: len(relevant),
		ContextUsed:     len(relevant) > 0,
		Provider:        provider.Name(),
		Model:           model,
		Sources:         sourceSnippets(relevant),
	}

	if len(relevant) == 0 {
		g.logger.Info("no relevant context, declining", "retrieved", len(chunks))
		response.Answer = DeclineMessage
		response.Declined = true
		return response, nil
	}

	answer, err := provider.Generate(ctx, buildPrompt(relevant, question), g.systemPrompt)
	if err != nil {
		g.logger.Error("error generating answer", "provider", providerName, "err", err)
		response.GenerationErr = err.Error()
		return response, nil
	}

	response.Answer = answer
	return response, nil
}

// filterRelevant keeps chunks strictly below the distance threshold.
func (g *Generator) filterRelevant(chunks core.RetrievalResult) core.RetrievalResult {
	var relevant core.RetrievalResult
	for _, chunk := range chunks {
		if chunk.Distance < g.threshold {
			relevant = append(relevant, chunk)
		}
	}
	return relevant
}

// sourceSnippets returns short previews of the first few chunks.
func sourceSnippets(chunks core.RetrievalResult) []string {
	var sources []string
	for i := 0; i < len(chunks) && i < maxSources; i++ {
		text := chunks[i].Text
		if len(text) > sourceSnippetLen {
			text = text[:sourceSnippetLen] + "..."
		}
		sources = append(sources, text)
	}
	return sources
}
