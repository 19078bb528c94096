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


package tutorkit

import (
	"context"
	"io"
	"log/slog"

	"github.com/poiesic/tutorkit/ai"
	"github.com/poiesic/tutorkit/ai/gemini"
	"github.com/poiesic/tutorkit/ai/mistral"
	"github.com/poiesic/tutorkit/ai/openai"
	"github.com/poiesic/tutorkit/ingestion"
	"github.com/poiesic/tutorkit/quiz"
	"github.com/poiesic/tutorkit/rag"
	"github.com/poiesic/tutorkit/reembed"
	"github.com/poiesic/tutorkit/scoring"
	"github.com/poiesic/tutorkit/store"
	badgerstore "github.com/poiesic/tutorkit/store/badger"
)

// Assistant wires the vector store, embedder, and generation providers into
// one handle that the rest of the application builds its components from.
type Assistant struct {
	backend   *badgerstore.Backend
	store     *badgerstore.Store
	embedder  ai.Embedder
	registry  *ai.Registry
	retriever *rag.Retriever
	generator *rag.Generator
	logger    *slog.Logger
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	aiConfig *ai.Config
	inMemory bool
}

// WithAIConfig replaces the default AI configuration.
func WithAIConfig(config *ai.Config) AssistantOption {
	return func(o *assistantOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithInMemoryStore keeps all vectors in memory instead of on disk.
// Intended for tests and throwaway sessions.
func WithInMemoryStore() AssistantOption {
	return func(o *assistantOptions) {
		o.inMemory = true
	}
}

// NewAssistant opens the vector database at filePath and constructs the
// embedding client and the provider registry around it.
func NewAssistant(filePath string, opts ...AssistantOption) (*Assistant, error) {
	options := &assistantOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badgerstore.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	vectorStore, err := badgerstore.New(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	embedder, err := openai.NewEmbedder(options.aiConfig)
	if err != nil {
		backend.Close()
		return nil, err
	}

	registry, err := ai.NewRegistry(options.aiConfig,
		ai.WithProviderFactory(gemini.ProviderName, gemini.Factory),
		ai.WithProviderFactory(mistral.ProviderName, mistral.Factory),
	)
	if err != nil {
		backend.Close()
		return nil, err
	}

	retriever, err := rag.NewRetriever(vectorStore, embedder)
	if err != nil {
		backend.Close()
		return nil, err
	}

	generator, err := rag.NewGenerator(registry)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Assistant{
		backend:   backend,
		store:     vectorStore,
		embedder:  embedder,
		registry:  registry,
		retriever: retriever,
		generator: generator,
		logger:    slog.Default(),
	}, nil
}

// Close releases the underlying storage.
func (a *Assistant) Close() error {
	// Store.Close closes the shared backend as well.
	if err := a.store.Close(); err != nil {
		a.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Store exposes the vector store for direct collection management.
func (a *Assistant) Store() store.VectorStore {
	return a.store
}

// Registry exposes the generation provider registry.
func (a *Assistant) Registry() *ai.Registry {
	return a.registry
}

// Embedder exposes the embedding client.
func (a *Assistant) Embedder() ai.Embedder {
	return a.embedder
}

// Ask retrieves context for the question from the collection and generates a
// grounded answer with the named provider. Provider failures come back inside
// the Response payload, not as an error.
func (a *Assistant) Ask(ctx context.Context, collection, question, provider, model string) (*rag.Response, error) {
	chunks, err := a.retriever.Retrieve(ctx, collection, question, rag.DefaultTopK)
	if err != nil {
		return nil, err
	}
	return a.generator.Answer(ctx, question, chunks, provider, model)
}

// NewIngestionPipeline builds a document ingestion pipeline over the store.
func (a *Assistant) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(a.store, a.embedder, opts...)
}

// NewRetriever builds a retriever over the store for callers that need raw
// retrieval results rather than generated answers.
func (a *Assistant) NewRetriever(opts ...rag.RetrieverOption) (*rag.Retriever, error) {
	return rag.NewRetriever(a.store, a.embedder, opts...)
}

// NewHybridScorer builds an answer scorer backed by the embedder and the
// provider registry.
func (a *Assistant) NewHybridScorer(opts ...scoring.Option) (*scoring.HybridScorer, error) {
	merged := append([]scoring.Option{scoring.WithRegistry(a.registry)}, opts...)
	return scoring.NewHybridScorer(a.embedder, merged...)
}

// NewQuizGenerator builds a quiz generator that can draw source material from
// the vector store.
func (a *Assistant) NewQuizGenerator(opts ...quiz.Option) (*quiz.Generator, error) {
	merged := append([]quiz.Option{quiz.WithRetriever(a.retriever)}, opts...)
	return quiz.NewGenerator(a.registry, merged...)
}

// NewReembedder builds a reembedder for regenerating a collection's vectors.
// progress: where to write progress output (typically os.Stderr)
func (a *Assistant) NewReembedder(config *reembed.Config, progress io.Writer) (*reembed.Reembedder, error) {
	return reembed.NewReembedder(a.store, a.embedder, config, progress)
}
