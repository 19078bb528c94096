package mock

import (
	"context"
	"hash/fnv"
	"math"
)

// defaultDim matches the width of common sentence-embedding models.
const defaultDim = 384

// MockEmbedder is a test double for ai.Embedder. Behavior can be injected
// through the function fields; when they are nil the embedder produces
// deterministic unit vectors, so the same text always lands at the same
// point and retrieval tests can rely on exact-match distances.
type MockEmbedder struct {
	// EmbedTextFunc overrides EmbedText when set.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	// EmbedTextsFunc overrides EmbedTexts when set.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	// Dim is the width of generated vectors. Zero means defaultDim.
	Dim int

	callCount int
}

// NewMockEmbedder creates a mock embedder with deterministic defaults.
// Returns the concrete type so tests can reach the function fields.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{}
}

func (m *MockEmbedder) dim() int {
	if m.Dim > 0 {
		return m.Dim
	}
	return defaultDim
}

// EmbedText returns a deterministic embedding derived from the text.
func (m *MockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.callCount++

	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}
	return hashVector(text, m.dim()), nil
}

// EmbedTexts returns deterministic embeddings, one per input text.
func (m *MockEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.callCount++

	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts)
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = hashVector(text, m.dim())
	}
	return vectors, nil
}

// CallCount returns the number of times any method was called.
func (m *MockEmbedder) CallCount() int {
	return m.callCount
}

// Reset clears the call count and any injected behavior.
func (m *MockEmbedder) Reset() {
	m.callCount = 0
	m.EmbedTextFunc = nil
	m.EmbedTextsFunc = nil
}

// hashVector expands an FNV hash of the text into a unit vector.
// Identical text yields an identical vector; different text almost
// certainly does not.
func hashVector(text string, dim int) []float32 {
	h := fnv.New64a()
	h.Write([]byte(text))
	state := h.Sum64()

	vector := make([]float32, dim)
	var sumSquares float64
	for i := range vector {
		state = state*6364136223846793005 + 1442695040888963407
		component := float32(state>>40) / float32(1<<24)
		vector[i] = component
		sumSquares += float64(component) * float64(component)
	}

	if norm := math.Sqrt(sumSquares); norm > 0 {
		for i := range vector {
			vector[i] = float32(float64(vector[i]) / norm)
		}
	}
	return vector
}
