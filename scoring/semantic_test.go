package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/tutorkit/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSemanticScorer_NilEmbedder(t *testing.T) {
	_, err := NewSemanticScorer(nil)
	assert.Equal(t, ErrEmbedderRequired, err)
}

func TestSemanticScore_Identical(t *testing.T) {
	s, err := NewSemanticScorer(mock.NewMockEmbedder())
	require.NoError(t, err)

	score, err := s.Score(context.Background(), "same text", "same text")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-6)
}

func TestSemanticScore_Orthogonal(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{1, 0}, {0, 1}}, nil
	}

	s, err := NewSemanticScorer(embedder)
	require.NoError(t, err)

	score, err := s.Score(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, score, 1e-9)
}

func TestSemanticScore_Opposite(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{1, 0}, {-1, 0}}, nil
	}

	s, err := NewSemanticScorer(embedder)
	require.NoError(t, err)

	// Cosine -1 remaps to 0
	score, err := s.Score(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.InDelta(t, 0.0, score, 1e-9)
}

func TestSemanticScore_Empty(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	s, err := NewSemanticScorer(embedder)
	require.NoError(t, err)

	score, err := s.Score(context.Background(), "", "reference")
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)

	// Sub-scorers never call the embedder on empty input
	assert.Zero(t, embedder.CallCount())
}

func TestSemanticScore_EmbedderFailure(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("backend down")
	}

	s, err := NewSemanticScorer(embedder)
	require.NoError(t, err)

	_, err = s.Score(context.Background(), "a", "b")
	assert.ErrorContains(t, err, "backend down")
}
