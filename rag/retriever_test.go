package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/tutorkit/ai/mock"
	"github.com/poiesic/tutorkit/store"
	badgerstore "github.com/poiesic/tutorkit/store/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRetriever(t *testing.T) (*Retriever, store.VectorStore, *mock.MockEmbedder) {
	t.Helper()

	vectorStore, backend, err := badgerstore.NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() {
		backend.Close()
	})

	embedder := mock.NewMockEmbedder()
	r, err := NewRetriever(vectorStore, embedder)
	require.NoError(t, err)

	return r, vectorStore, embedder
}

func seedCollection(t *testing.T, vectorStore store.VectorStore, collection string, texts ...string) {
	t.Helper()
	ctx := context.Background()
	embedder := mock.NewMockEmbedder()

	records := make([]store.Record, len(texts))
	for i, text := range texts {
		vector, err := embedder.EmbedText(ctx, text)
		require.NoError(t, err)
		records[i] = store.Record{
			ID:     texts[i],
			Text:   text,
			Vector: vector,
		}
	}
	require.NoError(t, vectorStore.Add(ctx, collection, records))
}

func TestNewRetriever(t *testing.T) {
	vectorStore, backend, err := badgerstore.NewMemoryStore()
	require.NoError(t, err)
	defer backend.Close()

	t.Run("nil store", func(t *testing.T) {
		_, err := NewRetriever(nil, mock.NewMockEmbedder())
		assert.Equal(t, ErrStoreRequired, err)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewRetriever(vectorStore, nil)
		assert.Equal(t, ErrEmbedderRequired, err)
	})
}

func TestRetrieve(t *testing.T) {
	r, vectorStore, _ := newTestRetriever(t)
	seedCollection(t, vectorStore, "course-1",
		"photosynthesis converts light into chemical energy",
		"the mitochondria is the powerhouse of the cell",
		"newton's laws describe classical motion",
	)

	results, err := r.Retrieve(context.Background(), "course-1", "photosynthesis converts light into chemical energy", 10)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// The identical text embeds identically, so it ranks first at distance 0
	assert.Equal(t, "photosynthesis converts light into chemical energy", results[0].Text)
	assert.Equal(t, float32(0), results[0].Distance)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i].Distance, results[i-1].Distance)
	}
}

func TestRetrieve_TopKCap(t *testing.T) {
	r, vectorStore, _ := newTestRetriever(t)
	seedCollection(t, vectorStore, "course-1", "one", "two", "three", "four", "five", "six")

	results, err := r.Retrieve(context.Background(), "course-1", "two", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// topK below 1 falls back to the default
	results, err = r.Retrieve(context.Background(), "course-1", "two", 0)
	require.NoError(t, err)
	assert.Len(t, results, DefaultTopK)
}

func TestRetrieve_EmptyCollection(t *testing.T) {
	r, _, _ := newTestRetriever(t)

	results, err := r.Retrieve(context.Background(), "never-ingested", "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRetrieve_EmptyQuery(t *testing.T) {
	r, _, _ := newTestRetriever(t)

	_, err := r.Retrieve(context.Background(), "course-1", "", 5)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestRetrieve_EmbedderFailure(t *testing.T) {
	r, _, embedder := newTestRetriever(t)
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("embedding backend down")
	}

	_, err := r.Retrieve(context.Background(), "course-1", "anything", 5)
	assert.ErrorContains(t, err, "embedding backend down")
}

// Declining on an empty corpus is the full pipeline behavior: retrieval
// yields nothing and the generator answers with the decline message.
func TestRetrieveThenDecline(t *testing.T) {
	r, _, _ := newTestRetriever(t)

	g, err := NewGenerator(newMockRegistry(t, mock.NewMockProvider()))
	require.NoError(t, err)

	chunks, err := r.Retrieve(context.Background(), "empty-course", "what is covered?", 5)
	require.NoError(t, err)
	require.Empty(t, chunks)

	response, err := g.Answer(context.Background(), "what is covered?", chunks, "mock", "")
	require.NoError(t, err)
	assert.True(t, response.Declined)
	assert.Equal(t, DeclineMessage, response.Answer)
}
