package rag

import (
	"context"
	"log/slog"

	"github.com/poiesic/tutorkit/ai"
	"github.com/poiesic/tutorkit/core"
	"github.com/poiesic/tutorkit/store"
)

// DefaultTopK is the default number of chunks fetched per query.
const DefaultTopK = 5

// Retriever embeds a query and fetches the nearest chunks from a
// vector store collection. The embedder must be the same one used at
// ingestion time; mixing embedders silently degrades distances, so one
// embedder is pinned per Retriever instance.
type Retriever struct {
	store    store.VectorStore
	embedder ai.Embedder
	logger   *slog.Logger
}

// RetrieverOption configures a Retriever.
type RetrieverOption func(*Retriever) error

// WithRetrieverLogger sets a custom logger.
// Default is slog.Default().
func WithRetrieverLogger(logger *slog.Logger) RetrieverOption {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRetriever creates a retriever over the given store and embedder.
func NewRetriever(vectorStore store.VectorStore, embedder ai.Embedder, opts ...RetrieverOption) (*Retriever, error) {
	if vectorStore == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	r := &Retriever{
		store:    vectorStore,
		embedder: embedder,
		logger:   slog.Default().With("component", "retriever"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Retrieve embeds the query and returns up to topK chunks ordered
// ascending by distance. A missing or empty collection yields an empty
// result. topK values below 1 fall back to DefaultTopK.
func (r *Retriever) Retrieve(ctx context.Context, collection, query string, topK int) (core.RetrievalResult, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if topK < 1 {
		topK = DefaultTopK
	}

	vector, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		r.logger.Error("error embedding query", "collection", collection, "err", err)
		return nil, err
	}

	results, err := r.store.Query(ctx, collection, vector, topK)
	if err != nil {
		r.logger.Error("error querying collection", "collection", collection, "err", err)
		return nil, err
	}

	r.logger.Debug("retrieved chunks", "collection", collection, "hits", len(results))
	return results, nil
}
