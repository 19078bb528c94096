package store

import (
	"context"

	"github.com/poiesic/tutorkit/core"
)

// Record is a single stored entry in a collection: a chunk's text, its
// embedding vector, and optional metadata, keyed by a string ID unique
// within the collection.
type Record struct {
	ID       string
	Text     string
	Vector   []float32
	Metadata map[string]string
}

// NewRecords assembles records from parallel sequences, the shape the wire
// contract uses. texts, vectors, and metadatas are indexed consistently with
// ids; metadatas may be nil.
func NewRecords(ids, texts []string, vectors [][]float32, metadatas []map[string]string) ([]Record, error) {
	if len(texts) != len(ids) || len(vectors) != len(ids) {
		return nil, ErrLengthMismatch
	}
	if metadatas != nil && len(metadatas) != len(ids) {
		return nil, ErrLengthMismatch
	}

	records := make([]Record, len(ids))
	for i := range ids {
		records[i] = Record{
			ID:     ids[i],
			Text:   texts[i],
			Vector: vectors[i],
		}
		if metadatas != nil {
			records[i].Metadata = metadatas[i]
		}
	}
	return records, nil
}

// VectorStore persists embedded chunks in named, independent collections and
// answers nearest-neighbor queries against them.
//
// Implementations must be safe for concurrent queries. Writes to the same
// collection are serialized by the implementation, since record IDs derive
// from chunk position and concurrent ingestion of the same document would
// collide.
type VectorStore interface {
	// EnsureCollection creates the named collection if it does not exist.
	// Idempotent: ensuring an existing collection is a no-op.
	EnsureCollection(ctx context.Context, name string) error

	// Add appends records to the collection, creating it if absent.
	// Record IDs must be unique within the collection; adding an existing ID
	// fails with ErrDuplicateID. The vector dimension is pinned by the first
	// record ever added; later mismatches fail with ErrDimensionMismatch.
	Add(ctx context.Context, collection string, records []Record) error

	// Query returns up to topK records nearest to the given vector, ordered
	// ascending by distance. Querying a collection that does not exist
	// returns an empty result, never an error.
	Query(ctx context.Context, collection string, vector []float32, topK int) (core.RetrievalResult, error)

	// DeleteCollection removes the collection and all of its records.
	// Deleting a nonexistent collection is a no-op.
	DeleteCollection(ctx context.Context, name string) error

	// Count returns the number of records in the collection.
	// A nonexistent collection has zero records.
	Count(ctx context.Context, collection string) (int, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
