package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/tutorkit/ai"
	"github.com/poiesic/tutorkit/store"
)

// BatchProcessor generates fresh embeddings for batches of stored records.
type BatchProcessor struct {
	store          RecordStore
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(recordStore RecordStore, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		store:          recordStore,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process reembeds a batch of records from their stored text and writes the
// new vectors back to the collection. Vectors are normalized after embedding
// so distances stay comparable regardless of the embedding model.
func (bp *BatchProcessor) Process(ctx context.Context, collection string, records []store.Record) error {
	if len(records) == 0 {
		return nil
	}

	texts := make([]string, len(records))
	for i := range records {
		texts[i] = records[i].Text
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(records) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(records), len(embeddings))
	}

	for i := range records {
		records[i].Vector = NormalizeVector(embeddings[i])
	}

	if err := bp.store.UpdateVectors(ctx, collection, records); err != nil {
		return fmt.Errorf("failed to update records: %w", err)
	}

	return nil
}
