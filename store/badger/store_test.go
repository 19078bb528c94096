package badger

import (
	"context"
	"testing"

	"github.com/poiesic/tutorkit/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	vectorStore, backend, err := NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() {
		backend.Close()
	})
	return vectorStore
}

func TestNew(t *testing.T) {
	t.Run("nil backend", func(t *testing.T) {
		_, err := New(nil)
		assert.Equal(t, ErrBackendRequired, err)
	})

	t.Run("valid backend", func(t *testing.T) {
		s := newTestStore(t)
		assert.NotNil(t, s)
	})
}

func TestEnsureCollection(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.EnsureCollection(ctx, "course-1"))

	// Idempotent
	require.NoError(t, s.EnsureCollection(ctx, "course-1"))

	t.Run("empty name", func(t *testing.T) {
		assert.ErrorIs(t, s.EnsureCollection(ctx, ""), store.ErrEmptyCollectionName)
	})

	t.Run("name with separator", func(t *testing.T) {
		assert.ErrorIs(t, s.EnsureCollection(ctx, "bad:name"), store.ErrInvalidCollectionName)
	})
}

func TestAddAndQuery(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	records := []store.Record{
		{ID: "doc#0", Text: "close", Vector: []float32{1, 0, 0}},
		{ID: "doc#1", Text: "closer", Vector: []float32{0.9, 0.1, 0}},
		{ID: "doc#2", Text: "far", Vector: []float32{0, 0, 1}},
	}
	require.NoError(t, s.Add(ctx, "course-1", records))

	results, err := s.Query(ctx, "course-1", []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Ascending by distance
	assert.Equal(t, "doc#0", results[0].ID)
	assert.Equal(t, "doc#1", results[1].ID)
	assert.Equal(t, "doc#2", results[2].ID)
	assert.LessOrEqual(t, results[0].Distance, results[1].Distance)
	assert.LessOrEqual(t, results[1].Distance, results[2].Distance)

	// Exact match has zero distance
	assert.Equal(t, float32(0), results[0].Distance)
}

func TestQuery_TopKCap(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	records := []store.Record{
		{ID: "doc#0", Text: "a", Vector: []float32{1, 0}},
		{ID: "doc#1", Text: "b", Vector: []float32{0.5, 0.5}},
		{ID: "doc#2", Text: "c", Vector: []float32{0, 1}},
	}
	require.NoError(t, s.Add(ctx, "course-1", records))

	results, err := s.Query(ctx, "course-1", []float32{1, 0}, 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// Returns fewer than topK when the collection has fewer records
	results, err = s.Query(ctx, "course-1", []float32{1, 0}, 100)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestQuery_NonexistentCollection(t *testing.T) {
	s := newTestStore(t)

	results, err := s.Query(context.Background(), "never-written", []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestQuery_EmptyEnsuredCollection(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.EnsureCollection(ctx, "course-1"))

	results, err := s.Query(ctx, "course-1", []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestQuery_InvalidParams(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Query(ctx, "course-1", nil, 5)
	assert.ErrorIs(t, err, store.ErrInvalidQuery)

	_, err = s.Query(ctx, "course-1", []float32{1}, 0)
	assert.ErrorIs(t, err, store.ErrInvalidQuery)
}

func TestQuery_DimensionMismatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "course-1", []store.Record{
		{ID: "doc#0", Text: "a", Vector: []float32{1, 0, 0}},
	}))

	_, err := s.Query(ctx, "course-1", []float32{1, 0}, 5)
	assert.ErrorIs(t, err, store.ErrDimensionMismatch)
}

func TestAdd_DuplicateID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "course-1", []store.Record{
		{ID: "doc#0", Text: "a", Vector: []float32{1, 0}},
	}))

	t.Run("against stored records", func(t *testing.T) {
		err := s.Add(ctx, "course-1", []store.Record{
			{ID: "doc#0", Text: "again", Vector: []float32{0, 1}},
		})
		assert.ErrorIs(t, err, store.ErrDuplicateID)
	})

	t.Run("within a batch", func(t *testing.T) {
		err := s.Add(ctx, "course-1", []store.Record{
			{ID: "doc#1", Text: "x", Vector: []float32{1, 0}},
			{ID: "doc#1", Text: "y", Vector: []float32{0, 1}},
		})
		assert.ErrorIs(t, err, store.ErrDuplicateID)
	})

	t.Run("same id in another collection is fine", func(t *testing.T) {
		err := s.Add(ctx, "course-2", []store.Record{
			{ID: "doc#0", Text: "a", Vector: []float32{1, 0}},
		})
		assert.NoError(t, err)
	})
}

func TestAdd_DimensionPinning(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "course-1", []store.Record{
		{ID: "doc#0", Text: "a", Vector: []float32{1, 0, 0}},
	}))

	err := s.Add(ctx, "course-1", []store.Record{
		{ID: "doc#1", Text: "b", Vector: []float32{1, 0}},
	})
	assert.ErrorIs(t, err, store.ErrDimensionMismatch)
}

func TestAdd_Validation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.Add(ctx, "course-1", []store.Record{
		{ID: "", Text: "a", Vector: []float32{1}},
	}), store.ErrEmptyRecordID)

	assert.ErrorIs(t, s.Add(ctx, "course-1", []store.Record{
		{ID: "doc#0", Text: "a"},
	}), store.ErrEmptyVector)

	// Empty batch is a no-op
	assert.NoError(t, s.Add(ctx, "course-1", nil))
}

func TestCount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	count, err := s.Count(ctx, "course-1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, s.Add(ctx, "course-1", []store.Record{
		{ID: "doc#0", Text: "a", Vector: []float32{1, 0}},
		{ID: "doc#1", Text: "b", Vector: []float32{0, 1}},
	}))

	count, err = s.Count(ctx, "course-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestDeleteCollection(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "course-1", []store.Record{
		{ID: "doc#0", Text: "a", Vector: []float32{1, 0}},
		{ID: "doc#1", Text: "b", Vector: []float32{0, 1}},
	}))
	require.NoError(t, s.Add(ctx, "course-2", []store.Record{
		{ID: "doc#0", Text: "c", Vector: []float32{1, 0}},
	}))

	require.NoError(t, s.DeleteCollection(ctx, "course-1"))

	count, err := s.Count(ctx, "course-1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Deleted collection behaves like a nonexistent one
	results, err := s.Query(ctx, "course-1", []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)

	// Other collections untouched
	count, err = s.Count(ctx, "course-2")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Deleting again is a no-op
	assert.NoError(t, s.DeleteCollection(ctx, "course-1"))
}

func TestQuery_MetadataPreserved(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "course-1", []store.Record{
		{ID: "doc#0", Text: "a", Vector: []float32{1, 0}, Metadata: map[string]string{"source": "doc"}},
	}))

	results, err := s.Query(ctx, "course-1", []float32{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, map[string]string{"source": "doc"}, results[0].Metadata)
}

func TestListRecords(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	t.Run("empty collection", func(t *testing.T) {
		records, err := s.ListRecords(ctx, "course-1")
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	require.NoError(t, s.Add(ctx, "course-1", []store.Record{
		{ID: "doc#0", Text: "first", Vector: []float32{1, 0}, Metadata: map[string]string{"source": "doc"}},
		{ID: "doc#1", Text: "second", Vector: []float32{0, 1}},
	}))

	t.Run("returns all records", func(t *testing.T) {
		records, err := s.ListRecords(ctx, "course-1")
		require.NoError(t, err)
		require.Len(t, records, 2)

		byID := make(map[string]store.Record, len(records))
		for _, record := range records {
			byID[record.ID] = record
		}
		assert.Equal(t, "first", byID["doc#0"].Text)
		assert.Equal(t, []float32{1, 0}, byID["doc#0"].Vector)
		assert.Equal(t, map[string]string{"source": "doc"}, byID["doc#0"].Metadata)
		assert.Equal(t, "second", byID["doc#1"].Text)
	})

	t.Run("invalid collection name", func(t *testing.T) {
		_, err := s.ListRecords(ctx, "")
		assert.ErrorIs(t, err, store.ErrEmptyCollectionName)
	})
}

func TestUpdateVectors(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "course-1", []store.Record{
		{ID: "doc#0", Text: "first", Vector: []float32{1, 0}},
		{ID: "doc#1", Text: "second", Vector: []float32{0, 1}},
	}))

	t.Run("replaces vectors and repins dimension", func(t *testing.T) {
		err := s.UpdateVectors(ctx, "course-1", []store.Record{
			{ID: "doc#0", Text: "first", Vector: []float32{1, 0, 0}},
			{ID: "doc#1", Text: "second", Vector: []float32{0, 0, 1}},
		})
		require.NoError(t, err)

		results, err := s.Query(ctx, "course-1", []float32{1, 0, 0}, 1)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "doc#0", results[0].ID)
	})

	t.Run("unknown record fails", func(t *testing.T) {
		err := s.UpdateVectors(ctx, "course-1", []store.Record{
			{ID: "doc#missing", Text: "x", Vector: []float32{1, 0, 0}},
		})
		assert.Error(t, err)
	})

	t.Run("mixed dimensions in batch fail", func(t *testing.T) {
		err := s.UpdateVectors(ctx, "course-1", []store.Record{
			{ID: "doc#0", Text: "first", Vector: []float32{1, 0}},
			{ID: "doc#1", Text: "second", Vector: []float32{0, 1, 0}},
		})
		assert.ErrorIs(t, err, store.ErrDimensionMismatch)
	})

	t.Run("nonexistent collection fails", func(t *testing.T) {
		err := s.UpdateVectors(ctx, "no-such", []store.Record{
			{ID: "doc#0", Vector: []float32{1}},
		})
		assert.Error(t, err)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		assert.NoError(t, s.UpdateVectors(ctx, "course-1", nil))
	})
}
