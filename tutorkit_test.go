package tutorkit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssistant(t *testing.T) {
	t.Run("create with on-disk store", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		assistant, err := NewAssistant(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, assistant)
		defer assistant.Close()

		assert.NotNil(t, assistant.Store())
		assert.NotNil(t, assistant.Registry())
		assert.NotNil(t, assistant.Embedder())
		assert.NotNil(t, assistant.logger)
	})

	t.Run("create with in-memory store", func(t *testing.T) {
		assistant, err := NewAssistant("", WithInMemoryStore())
		require.NoError(t, err)
		defer assistant.Close()

		assert.NotNil(t, assistant.Store())
	})

	t.Run("error with invalid path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(tmpFile, []byte("x"), 0644))

		assistant, err := NewAssistant(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, assistant)
	})
}

func TestAssistant_Components(t *testing.T) {
	assistant, err := NewAssistant("", WithInMemoryStore())
	require.NoError(t, err)
	defer assistant.Close()

	t.Run("ingestion pipeline", func(t *testing.T) {
		pipeline, err := assistant.NewIngestionPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("retriever", func(t *testing.T) {
		retriever, err := assistant.NewRetriever()
		require.NoError(t, err)
		assert.NotNil(t, retriever)
	})

	t.Run("hybrid scorer", func(t *testing.T) {
		scorer, err := assistant.NewHybridScorer()
		require.NoError(t, err)
		assert.NotNil(t, scorer)
	})

	t.Run("quiz generator", func(t *testing.T) {
		generator, err := assistant.NewQuizGenerator()
		require.NoError(t, err)
		assert.NotNil(t, generator)
	})

	t.Run("reembedder", func(t *testing.T) {
		reembedder, err := assistant.NewReembedder(nil, nil)
		require.NoError(t, err)
		assert.NotNil(t, reembedder)
	})
}

func TestAssistant_RegistryProviders(t *testing.T) {
	assistant, err := NewAssistant("", WithInMemoryStore())
	require.NoError(t, err)
	defer assistant.Close()

	assert.Equal(t, []string{"gemini", "mistral"}, assistant.Registry().Names())
}

func TestAssistant_Close(t *testing.T) {
	assistant, err := NewAssistant("", WithInMemoryStore())
	require.NoError(t, err)
	assert.NoError(t, assistant.Close())
}
