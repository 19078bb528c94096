package scoring

import (
	"context"
	"math"

	"github.com/poiesic/tutorkit/ai"
)

// SemanticScorer measures meaning-level similarity between two texts
// using sentence embeddings, beyond plain word overlap.
type SemanticScorer struct {
	embedder ai.Embedder
}

// NewSemanticScorer creates a semantic similarity scorer.
func NewSemanticScorer(embedder ai.Embedder) (*SemanticScorer, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	return &SemanticScorer{embedder: embedder}, nil
}

// Score embeds both texts and returns their cosine similarity remapped
// from [-1, 1] to [0, 1]. Either text being empty scores 0.
func (s *SemanticScorer) Score(ctx context.Context, student, reference string) (float64, error) {
	if student == "" || reference == "" {
		return 0, nil
	}

	vectors, err := s.embedder.EmbedTexts(ctx, []string{reference, student})
	if err != nil {
		return 0, err
	}
	if len(vectors) != 2 {
		return 0, ErrEmbeddingCountMismatch
	}

	sim := cosine32(vectors[0], vectors[1])
	normalized := (sim + 1) / 2

	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}
	return normalized, nil
}

func cosine32(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := 0; i < len(a) && i < len(b); i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
