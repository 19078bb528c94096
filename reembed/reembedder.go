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


package reembed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/poiesic/tutorkit/ai"
	"github.com/poiesic/tutorkit/store"
)

// RecordStore is the slice of vector-store behavior a reembedding run needs:
// listing a collection's records and writing their replacement vectors back.
type RecordStore interface {
	ListRecords(ctx context.Context, collection string) ([]store.Record, error)
	UpdateVectors(ctx context.Context, collection string, records []store.Record) error
}

// Config holds configuration for the reembedding operation.
type Config struct {
	// BatchSize is the number of records to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of records)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reembedder regenerates the embeddings of every record in a collection,
// typically after switching embedding models.
type Reembedder struct {
	store     RecordStore
	embedder  ai.Embedder
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
}

// NewReembedder creates a new reembedder.
// progress: where to write progress output (typically os.Stderr)
func NewReembedder(recordStore RecordStore, embedder ai.Embedder, config *Config, progress io.Writer) (*Reembedder, error) {
	if recordStore == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Reembedder{
		store:     recordStore,
		embedder:  embedder,
		config:    config,
		progress:  progress,
		processor: NewBatchProcessor(recordStore, embedder, config.MaxRetries, config.RetryDelay),
	}, nil
}

// Run reembeds every record in the collection with the configured embedder.
// Progress is reported to the configured writer.
func (r *Reembedder) Run(ctx context.Context, collection string) error {
	records, err := r.store.ListRecords(ctx, collection)
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	total := len(records)
	if total == 0 {
		fmt.Fprintf(r.progress, "No records found in collection %q (0 records)\n", collection)
		return nil
	}

	fmt.Fprintf(r.progress, "Starting reembedding of %d records (batch size: %d)\n",
		total, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	for begin := 0; begin < total; begin += r.config.BatchSize {
		end := begin + r.config.BatchSize
		if end > total {
			end = total
		}

		if err := r.processor.Process(ctx, collection, records[begin:end]); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		tracker.Update(end)
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reembedding complete. Processed %d records in %v (%.1f records/sec)\n",
		total, elapsed.Round(time.Second), float64(total)/elapsed.Seconds())

	return nil
}
