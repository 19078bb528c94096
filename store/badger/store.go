package badger

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/tutorkit/core"
	"github.com/poiesic/tutorkit/store"
)

// Store implements store.VectorStore on top of a BadgerDB backend.
//
// Each collection is a key prefix; the collection registry entry records the
// vector dimension pinned by the first added record. Nearest-neighbor queries
// are answered by brute-force scan with squared euclidean distance, which is
// adequate for the bounded per-course corpora this store holds.
type Store struct {
	backend *Backend
	logger  *slog.Logger

	// mu guards writeLocks; each collection gets one write lock so concurrent
	// ingestions of the same collection are serialized while queries and
	// writes to other collections proceed.
	mu         sync.Mutex
	writeLocks map[string]*sync.Mutex
}

// Option configures a Store.
type Option func(*Store) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// New creates a vector store on the given backend.
func New(backend *Backend, opts ...Option) (*Store, error) {
	if backend == nil {
		return nil, ErrBackendRequired
	}

	s := &Store{
		backend:    backend,
		writeLocks: make(map[string]*sync.Mutex),
		logger:     slog.Default().With("component", "badger-store"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

var _ store.VectorStore = (*Store)(nil)

// writeLock returns the write lock for a collection, creating it on first use.
func (s *Store) writeLock(collection string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.writeLocks[collection]
	if !ok {
		lock = &sync.Mutex{}
		s.writeLocks[collection] = lock
	}
	return lock
}

func validateCollectionName(name string) error {
	if name == "" {
		return store.ErrEmptyCollectionName
	}
	if strings.Contains(name, keySeparator) {
		return fmt.Errorf("%w: %q contains %q", store.ErrInvalidCollectionName, name, keySeparator)
	}
	return nil
}

// EnsureCollection creates the named collection if it does not exist.
func (s *Store) EnsureCollection(ctx context.Context, name string) error {
	if err := validateCollectionName(name); err != nil {
		return err
	}
	if s.backend.IsClosed() {
		return store.ErrStorageClosed
	}

	lock := s.writeLock(name)
	lock.Lock()
	defer lock.Unlock()

	return s.backend.WithTx(func(tx *badger.Txn) error {
		key := makeCollectionKey(name)
		_, err := tx.Get(key)
		if err == nil {
			return nil // already exists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := tx.Set(key, encodeDimension(0)); err != nil {
			return err
		}
		s.logger.Debug("created collection", "collection", name)
		return tx.Commit()
	}, true)
}

// Add appends records to the collection, creating it if absent.
func (s *Store) Add(ctx context.Context, collection string, records []store.Record) error {
	if err := validateCollectionName(collection); err != nil {
		return err
	}
	if s.backend.IsClosed() {
		return store.ErrStorageClosed
	}
	if len(records) == 0 {
		return nil
	}

	for i := range records {
		if records[i].ID == "" {
			return store.ErrEmptyRecordID
		}
		if len(records[i].Vector) == 0 {
			return fmt.Errorf("%w: record %q", store.ErrEmptyVector, records[i].ID)
		}
	}

	lock := s.writeLock(collection)
	lock.Lock()
	defer lock.Unlock()

	return s.backend.WithTx(func(tx *badger.Txn) error {
		dimension, exists, err := readDimension(tx, collection)
		if err != nil {
			return err
		}
		if !exists || dimension == 0 {
			dimension = len(records[0].Vector)
			if err := tx.Set(makeCollectionKey(collection), encodeDimension(dimension)); err != nil {
				return err
			}
		}

		seen := make(map[string]bool, len(records))
		for i := range records {
			record := &records[i]

			if len(record.Vector) != dimension {
				return fmt.Errorf("%w: record %q has dimension %d, collection %q is pinned to %d",
					store.ErrDimensionMismatch, record.ID, len(record.Vector), collection, dimension)
			}

			if seen[record.ID] {
				return fmt.Errorf("%w: %q", store.ErrDuplicateID, record.ID)
			}
			seen[record.ID] = true

			key := makeRecordKey(collection, record.ID)
			if _, err := tx.Get(key); err == nil {
				return fmt.Errorf("%w: %q", store.ErrDuplicateID, record.ID)
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}

			if err := tx.Set(key, store.MarshalRecord(record)); err != nil {
				return err
			}
		}

		s.logger.Debug("added records", "collection", collection, "count", len(records))
		return tx.Commit()
	}, true)
}

// Query returns up to topK records nearest to the given vector, ordered
// ascending by squared euclidean distance. A nonexistent collection yields
// an empty result.
func (s *Store) Query(ctx context.Context, collection string, vector []float32, topK int) (core.RetrievalResult, error) {
	if err := validateCollectionName(collection); err != nil {
		return nil, err
	}
	if s.backend.IsClosed() {
		return nil, store.ErrStorageClosed
	}
	if topK <= 0 || len(vector) == 0 {
		return nil, store.ErrInvalidQuery
	}

	var results core.RetrievalResult

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		dimension, exists, err := readDimension(tx, collection)
		if err != nil {
			return err
		}
		if !exists || dimension == 0 {
			// Collection missing or never written: empty result, not an error.
			return nil
		}
		if len(vector) != dimension {
			return fmt.Errorf("%w: query has dimension %d, collection %q is pinned to %d",
				store.ErrDimensionMismatch, len(vector), collection, dimension)
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeRecordPrefix(collection)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			data, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}

			record, err := store.UnmarshalRecord(data)
			if err != nil {
				return err
			}

			results = append(results, core.ScoredChunk{
				ID:       record.ID,
				Text:     record.Text,
				Distance: squaredEuclidean(vector, record.Vector),
				Metadata: record.Metadata,
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})
	if len(results) > topK {
		results = results[:topK]
	}

	return results, nil
}

// ListRecords returns every record stored in the collection, in key order.
func (s *Store) ListRecords(ctx context.Context, collection string) ([]store.Record, error) {
	if err := validateCollectionName(collection); err != nil {
		return nil, err
	}
	if s.backend.IsClosed() {
		return nil, store.ErrStorageClosed
	}

	var records []store.Record
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeRecordPrefix(collection)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			data, err := iter.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			record, err := store.UnmarshalRecord(data)
			if err != nil {
				return err
			}
			records = append(records, *record)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return records, nil
}

// UpdateVectors overwrites existing records with fresh vectors, repinning
// the collection dimension from the first record. Used when a collection
// is reembedded with a new embedding model.
func (s *Store) UpdateVectors(ctx context.Context, collection string, records []store.Record) error {
	if err := validateCollectionName(collection); err != nil {
		return err
	}
	if s.backend.IsClosed() {
		return store.ErrStorageClosed
	}
	if len(records) == 0 {
		return nil
	}

	for i := range records {
		if records[i].ID == "" {
			return store.ErrEmptyRecordID
		}
		if len(records[i].Vector) == 0 {
			return fmt.Errorf("%w: record %q", store.ErrEmptyVector, records[i].ID)
		}
	}

	lock := s.writeLock(collection)
	lock.Lock()
	defer lock.Unlock()

	return s.backend.WithTx(func(tx *badger.Txn) error {
		dimension, exists, err := readDimension(tx, collection)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("collection %q does not exist", collection)
		}

		newDimension := len(records[0].Vector)
		if newDimension != dimension {
			if err := tx.Set(makeCollectionKey(collection), encodeDimension(newDimension)); err != nil {
				return err
			}
		}

		for i := range records {
			record := &records[i]
			if len(record.Vector) != newDimension {
				return fmt.Errorf("%w: record %q has dimension %d, batch uses %d",
					store.ErrDimensionMismatch, record.ID, len(record.Vector), newDimension)
			}

			key := makeRecordKey(collection, record.ID)
			if _, err := tx.Get(key); err != nil {
				return fmt.Errorf("updating record %q: %w", record.ID, err)
			}
			if err := tx.Set(key, store.MarshalRecord(record)); err != nil {
				return err
			}
		}

		s.logger.Debug("updated vectors", "collection", collection, "count", len(records))
		return tx.Commit()
	}, true)
}

// Count returns the number of records in the collection.
func (s *Store) Count(ctx context.Context, collection string) (int, error) {
	if err := validateCollectionName(collection); err != nil {
		return 0, err
	}
	if s.backend.IsClosed() {
		return 0, store.ErrStorageClosed
	}

	count := 0
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeRecordPrefix(collection)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// DeleteCollection removes the collection and all of its records.
func (s *Store) DeleteCollection(ctx context.Context, name string) error {
	if err := validateCollectionName(name); err != nil {
		return err
	}
	if s.backend.IsClosed() {
		return store.ErrStorageClosed
	}

	lock := s.writeLock(name)
	lock.Lock()
	defer lock.Unlock()

	return s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeRecordPrefix(name)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)

		var keys [][]byte
		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		iter.Close()

		for _, key := range keys {
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		if err := tx.Delete(makeCollectionKey(name)); err != nil {
			return err
		}

		s.logger.Debug("deleted collection", "collection", name, "records", len(keys))
		return tx.Commit()
	}, true)
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// readDimension reads the pinned vector dimension of a collection.
// Returns exists=false when the collection registry entry is absent.
func readDimension(tx *badger.Txn, collection string) (dimension int, exists bool, err error) {
	item, err := tx.Get(makeCollectionKey(collection))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	data, err := item.ValueCopy(nil)
	if err != nil {
		return 0, false, err
	}
	if len(data) < 4 {
		return 0, false, store.ErrSerializationFailed
	}
	return int(binary.BigEndian.Uint32(data)), true, nil
}

func encodeDimension(dimension int) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(dimension))
	return buf
}

// squaredEuclidean computes the squared L2 distance between two vectors of
// equal dimension.
func squaredEuclidean(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
