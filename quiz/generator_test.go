package quiz

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/tutorkit/ai"
	"github.com/poiesic/tutorkit/ai/mock"
	"github.com/poiesic/tutorkit/rag"
	"github.com/poiesic/tutorkit/store"
	badgerstore "github.com/poiesic/tutorkit/store/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const questionsJSON = `[
  {
    "question_text": "What is the capital of France?",
    "question_type": "mcq",
    "options": ["London", "Berlin", "Paris", "Madrid"],
    "correct_answer": "Paris",
    "explanation": "Paris is the capital and largest city of France.",
    "points": 1.0
  },
  {
    "question_text": "The Seine flows through Paris.",
    "question_type": "true_false",
    "options": ["true", "false"],
    "correct_answer": "true",
    "explanation": "The Seine crosses the city.",
    "points": 1.0
  }
]`

func newTestGenerator(t *testing.T, provider *mock.MockProvider, opts ...Option) *Generator {
	t.Helper()

	registry, err := ai.NewRegistry(ai.DefaultConfig(),
		ai.WithProviderFactory("mock", func(config *ai.Config, model string) (ai.Provider, error) {
			return provider, nil
		}),
	)
	require.NoError(t, err)

	opts = append([]Option{WithProvider("mock", "")}, opts...)
	g, err := NewGenerator(registry, opts...)
	require.NoError(t, err)
	return g
}

func TestNewGenerator_NilRegistry(t *testing.T) {
	_, err := NewGenerator(nil)
	assert.Equal(t, ErrRegistryRequired, err)
}

func TestFromTopic(t *testing.T) {
	provider := mock.NewMockProvider()
	provider.Response = questionsJSON

	g := newTestGenerator(t, provider)

	questions, err := g.FromTopic(context.Background(), "France",
		WithNumQuestions(2), WithDifficulty(DifficultyEasy))
	require.NoError(t, err)
	require.Len(t, questions, 2)

	assert.Equal(t, "What is the capital of France?", questions[0].Text)
	assert.Equal(t, TypeMCQ, questions[0].Type)
	assert.Equal(t, []string{"London", "Berlin", "Paris", "Madrid"}, questions[0].Options)
	assert.Equal(t, "Paris", questions[0].CorrectAnswer)
	assert.Equal(t, 1.0, questions[0].Points)

	assert.Contains(t, provider.LastPrompt, "Generate 2 easy difficulty quiz questions about: France")
	assert.Contains(t, provider.LastPrompt, "mcq, true_false")
}

func TestFromTopic_Empty(t *testing.T) {
	g := newTestGenerator(t, mock.NewMockProvider())

	_, err := g.FromTopic(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyTopic)
}

func TestFromContent(t *testing.T) {
	provider := mock.NewMockProvider()
	provider.Response = questionsJSON

	g := newTestGenerator(t, provider)

	questions, err := g.FromContent(context.Background(), "The capital of France is Paris.",
		WithTypes(TypeShortAnswer))
	require.NoError(t, err)
	assert.Len(t, questions, 2)

	assert.Contains(t, provider.LastPrompt, "The capital of France is Paris.")
	assert.Contains(t, provider.LastPrompt, "Question types: short_answer")
}

func TestFromContent_TruncatesLongContent(t *testing.T) {
	provider := mock.NewMockProvider()
	provider.Response = questionsJSON

	g := newTestGenerator(t, provider)

	long := make([]byte, maxContentLength+500)
	for i := range long {
		long[i] = 'x'
	}

	_, err := g.FromContent(context.Background(), string(long))
	require.NoError(t, err)
	assert.Less(t, len(provider.LastPrompt), maxContentLength+1000)
}

func TestParseQuestions_FencedResponse(t *testing.T) {
	provider := mock.NewMockProvider()
	provider.Response = "```json\n" + questionsJSON + "\n```"

	g := newTestGenerator(t, provider)

	questions, err := g.FromTopic(context.Background(), "France")
	require.NoError(t, err)
	assert.Len(t, questions, 2)
}

func TestParseQuestions_RepairedKeys(t *testing.T) {
	// The "points" key lost its opening quote
	damaged := `[{"question_text": "Q?", "question_type": "mcq", "correct_answer": "A", "explanation": "E", points": 1.0}]`

	questions, err := parseQuestions(damaged)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, 1.0, questions[0].Points)
}

func TestParseQuestions_Invalid(t *testing.T) {
	provider := mock.NewMockProvider()
	provider.Response = "Sorry, I cannot generate questions right now."

	g := newTestGenerator(t, provider)

	_, err := g.FromTopic(context.Background(), "France")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Raw, "Sorry, I cannot")
	assert.LessOrEqual(t, len(parseErr.Raw), rawSnippetLen)
}

func TestFromCollection(t *testing.T) {
	vectorStore, backend, err := badgerstore.NewMemoryStore()
	require.NoError(t, err)
	defer backend.Close()

	embedder := mock.NewMockEmbedder()
	ctx := context.Background()

	vector, err := embedder.EmbedText(ctx, "course content about France")
	require.NoError(t, err)
	require.NoError(t, vectorStore.Add(ctx, "course-1", []store.Record{
		{ID: "doc#0", Text: "The capital of France is Paris.", Vector: vector},
	}))

	retriever, err := rag.NewRetriever(vectorStore, embedder)
	require.NoError(t, err)

	provider := mock.NewMockProvider()
	provider.Response = questionsJSON

	g := newTestGenerator(t, provider, WithRetriever(retriever))

	result, err := g.FromCollection(ctx, "course-1", "France")
	require.NoError(t, err)

	assert.Len(t, result.Questions, 2)
	assert.Equal(t, "course-1", result.Collection)
	assert.Equal(t, 1, result.ChunksUsed)
	assert.Equal(t, "mock", result.Provider)

	assert.Contains(t, provider.LastPrompt, "The capital of France is Paris.")
	assert.Contains(t, provider.LastPrompt, "Do NOT use any external knowledge")
}

func TestFromCollection_NoContent(t *testing.T) {
	vectorStore, backend, err := badgerstore.NewMemoryStore()
	require.NoError(t, err)
	defer backend.Close()

	retriever, err := rag.NewRetriever(vectorStore, mock.NewMockEmbedder())
	require.NoError(t, err)

	g := newTestGenerator(t, mock.NewMockProvider(), WithRetriever(retriever))

	_, err = g.FromCollection(context.Background(), "empty-course", "")
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestFromCollection_NoRetriever(t *testing.T) {
	g := newTestGenerator(t, mock.NewMockProvider())

	_, err := g.FromCollection(context.Background(), "course-1", "")
	assert.ErrorIs(t, err, ErrRetrieverRequired)
}

func TestGenerate_ProviderFailure(t *testing.T) {
	provider := mock.NewMockProvider()
	provider.GenerateFunc = func(ctx context.Context, prompt, systemPrompt string) (string, error) {
		return "", errors.New("backend timeout")
	}

	g := newTestGenerator(t, provider)

	_, err := g.FromTopic(context.Background(), "France")
	assert.ErrorContains(t, err, "backend timeout")
}

func TestRepairJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already valid", `{"a": 1}`, `{"a": 1}`},
		{"missing opening quote", `{a": 1}`, `{"a": 1}`},
		{"after comma", `{"a": 1, b": 2}`, `{"a": 1, "b": 2}`},
		{"underscore key", `{question_text": "x"}`, `{"question_text": "x"}`},
		{"not a key", `{"a": "b, c"}`, `{"a": "b, c"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repairJSON(tt.in))
		})
	}
}
