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


package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/tutorkit/ai"
	"github.com/poiesic/tutorkit/core"
	"github.com/poiesic/tutorkit/store"
)

// DefaultBatchSize is the number of chunk texts sent to the embedder
// in one call.
const DefaultBatchSize = 32

// Pipeline runs the ingestion workflow: split a document into chunks,
// embed the chunk texts, and append the records to a vector store
// collection. Embedding batches run concurrently on a worker pool;
// the store serializes writes per collection, so concurrent ingestions
// into the same collection do not interleave.
type Pipeline struct {
	store     store.VectorStore
	embedder  ai.Embedder
	splitter  *Splitter
	pool      *ants.Pool
	batchSize int
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets the number of texts per embedding call.
// Default is DefaultBatchSize.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.batchSize = size
		return nil
	}
}

// WithSplitter sets a custom splitter.
// Default is NewSplitter() with its default chunk size and overlap.
func WithSplitter(splitter *Splitter) Option {
	return func(p *Pipeline) error {
		if splitter != nil {
			p.splitter = splitter
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(vectorStore store.VectorStore, embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if vectorStore == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		store:     vectorStore,
		embedder:  embedder,
		splitter:  NewSplitter(),
		pool:      pool,
		batchSize: DefaultBatchSize,
		logger:    slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// IngestFile loads a document from disk and ingests it.
// Returns the number of chunks stored.
func (p *Pipeline) IngestFile(ctx context.Context, collection, path string) (int, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return 0, err
	}
	return p.IngestDocument(ctx, collection, doc)
}

// IngestDocument splits, embeds and stores a document's chunks.
// Returns the number of chunks stored. A document that yields no
// chunks is a no-op.
func (p *Pipeline) IngestDocument(ctx context.Context, collection string, doc *core.Document) (int, error) {
	if doc == nil {
		return 0, ErrNilDocument
	}
	if err := core.ValidateDocument(doc); err != nil {
		return 0, err
	}

	chunks := p.splitter.SplitDocument(doc)
	if len(chunks) == 0 {
		p.logger.Info("document produced no chunks", "source", doc.Source)
		return 0, nil
	}

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Text
	}

	p.logger.Debug("embedding chunks", "source", doc.Source, "chunks", len(texts))
	vectors, err := p.embedBatches(ctx, texts)
	if err != nil {
		return 0, err
	}

	records := make([]store.Record, len(chunks))
	for i := range chunks {
		records[i] = store.Record{
			ID:     chunks[i].RecordID(),
			Text:   chunks[i].Text,
			Vector: vectors[i],
			Metadata: map[string]string{
				"source":       doc.Source,
				"content_type": doc.ContentType,
			},
		}
	}

	if err := p.store.Add(ctx, collection, records); err != nil {
		return 0, err
	}

	p.logger.Info("ingested document", "source", doc.Source, "collection", collection, "chunks", len(records))
	return len(records), nil
}

// embedBatches embeds texts in batches submitted concurrently to the
// worker pool. Result vectors keep the input order.
func (p *Pipeline) embedBatches(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for begin := 0; begin < len(texts); begin += p.batchSize {
		end := begin + p.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		begin, end := begin, end
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()

			batch, err := p.embedder.EmbedTexts(ctx, texts[begin:end])
			if err == nil && len(batch) != end-begin {
				err = fmt.Errorf("%w: expected %d, received %d", ErrEmbeddingCountMismatch, end-begin, len(batch))
			}
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			copy(vectors[begin:], batch)
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
			break
		}
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return vectors, nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
