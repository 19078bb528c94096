package quiz

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/poiesic/tutorkit/ai"
	"github.com/poiesic/tutorkit/rag"
)

// collectionTopK is how many chunks are retrieved to seed a
// collection quiz.
const collectionTopK = 10

// defaultCollectionQuery seeds retrieval when no topic is given.
const defaultCollectionQuery = "main concepts and important topics"

// Generator produces quiz questions through an LLM provider, either
// from a free topic, from supplied content, or from material retrieved
// out of a vector store collection.
type Generator struct {
	registry  *ai.Registry
	retriever *rag.Retriever
	provider  string
	model     string
	logger    *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator) error

// WithProvider selects the generation provider and model.
// Default is the gemini provider with its default model.
func WithProvider(provider, model string) Option {
	return func(g *Generator) error {
		if provider != "" {
			g.provider = provider
		}
		g.model = model
		return nil
	}
}

// WithRetriever enables FromCollection by supplying the retriever used
// to pull course material.
func WithRetriever(retriever *rag.Retriever) Option {
	return func(g *Generator) error {
		g.retriever = retriever
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) error {
		if logger == nil {
			logger = slog.Default()
		}
		g.logger = logger
		return nil
	}
}

// NewGenerator creates a quiz generator backed by a provider registry.
func NewGenerator(registry *ai.Registry, opts ...Option) (*Generator, error) {
	if registry == nil {
		return nil, ErrRegistryRequired
	}

	g := &Generator{
		registry: registry,
		provider: "gemini",
		logger:   slog.Default().With("component", "quiz"),
	}

	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// request carries the per-call generation parameters.
type request struct {
	numQuestions int
	types        []string
	difficulty   string
}

// GenOption customizes a single generation call.
type GenOption func(*request)

// WithNumQuestions sets how many questions to generate. Default is 5.
func WithNumQuestions(n int) GenOption {
	return func(r *request) {
		if n > 0 {
			r.numQuestions = n
		}
	}
}

// WithTypes sets the question types to include.
func WithTypes(types ...string) GenOption {
	return func(r *request) {
		if len(types) > 0 {
			r.types = types
		}
	}
}

// WithDifficulty sets the difficulty level. Default is medium.
func WithDifficulty(difficulty string) GenOption {
	return func(r *request) {
		if difficulty != "" {
			r.difficulty = difficulty
		}
	}
}

func newRequest(defaultTypes []string, opts []GenOption) request {
	r := request{
		numQuestions: 5,
		types:        defaultTypes,
		difficulty:   DifficultyMedium,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// FromTopic generates questions about a free-form topic, using the
// provider's own knowledge.
func (g *Generator) FromTopic(ctx context.Context, topic string, opts ...GenOption) ([]Question, error) {
	if topic == "" {
		return nil, ErrEmptyTopic
	}

	r := newRequest([]string{TypeMCQ, TypeTrueFalse}, opts)
	return g.generate(ctx, topicPrompt(topic, r.numQuestions, r.types, r.difficulty))
}

// FromContent generates questions grounded in the supplied content.
// Long content is truncated before prompting.
func (g *Generator) FromContent(ctx context.Context, content string, opts ...GenOption) ([]Question, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}

	r := newRequest([]string{TypeMCQ, TypeShortAnswer}, opts)
	return g.generate(ctx, contentPrompt(content, r.numQuestions, r.types))
}

// FromCollection retrieves course material from a collection and
// generates questions answerable from it. An empty topic retrieves
// broadly representative chunks. Fails with ErrNoContent when the
// collection has nothing to offer.
func (g *Generator) FromCollection(ctx context.Context, collection, topic string, opts ...GenOption) (*CollectionQuiz, error) {
	if g.retriever == nil {
		return nil, ErrRetrieverRequired
	}

	query := topic
	if query == "" {
		query = defaultCollectionQuery
	}

	chunks, err := g.retriever.Retrieve(ctx, collection, query, collectionTopK)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, ErrNoContent
	}

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Text
	}
	context := strings.Join(texts, "\n\n---\n\n")

	r := newRequest([]string{TypeMCQ, TypeTrueFalse, TypeShortAnswer}, opts)
	questions, err := g.generate(ctx, collectionPrompt(context, r.numQuestions, r.types, r.difficulty))
	if err != nil {
		return nil, err
	}

	return &CollectionQuiz{
		Questions:  questions,
		Collection: collection,
		ChunksUsed: len(chunks),
		Provider:   g.provider,
		Model:      g.model,
	}, nil
}

// generate runs the prompt through the configured provider and parses
// the response as a question array.
func (g *Generator) generate(ctx context.Context, prompt string) ([]Question, error) {
	provider, err := g.registry.Provider(g.provider, g.model)
	if err != nil {
		return nil, err
	}

	response, err := provider.Generate(ctx, prompt, "")
	if err != nil {
		g.logger.Error("error generating questions", "provider", g.provider, "err", err)
		return nil, err
	}

	questions, err := parseQuestions(response)
	if err != nil {
		g.logger.Warn("error parsing generated questions", "provider", g.provider, "err", err)
		return nil, err
	}

	g.logger.Info("generated questions", "count", len(questions), "provider", g.provider)
	return questions, nil
}

// parseQuestions strips markdown fences, repairs common JSON damage
// and unmarshals the provider response.
func parseQuestions(response string) ([]Question, error) {
	text := strings.TrimSpace(response)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	text = repairJSON(text)

	var questions []Question
	if err := json.Unmarshal([]byte(text), &questions); err != nil {
		return nil, newParseError(text, err)
	}
	return questions, nil
}
