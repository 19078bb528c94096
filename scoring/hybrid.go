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


package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/poiesic/tutorkit/ai"
)

// Method tags identifying how a result was produced.
const (
	MethodHybrid = "hybrid_ml"
	MethodEmpty  = "empty_check"
	MethodExact  = "exact_match"
)

// feedbackThreshold is the weighted score below which LLM feedback is
// requested, when a feedback provider is configured.
const feedbackThreshold = 0.70

// weightEpsilon is the tolerance for the weight-sum invariant.
const weightEpsilon = 1e-6

// Weights are the relative contributions of the three sub-scorers.
// They must be non-negative and sum to 1.0.
type Weights struct {
	Lexical  float64
	Semantic float64
	Keyword  float64
}

// DefaultWeights emphasize semantic understanding over surface overlap.
func DefaultWeights() Weights {
	return Weights{Lexical: 0.25, Semantic: 0.50, Keyword: 0.25}
}

// Validate checks the weight invariants.
func (w Weights) Validate() error {
	if w.Lexical < 0 || w.Semantic < 0 || w.Keyword < 0 {
		return fmt.Errorf("%w: weights must be non-negative", ErrInvalidWeights)
	}
	sum := w.Lexical + w.Semantic + w.Keyword
	if math.Abs(sum-1.0) > weightEpsilon {
		return fmt.Errorf("%w: weights sum to %v, want 1.0", ErrInvalidWeights, sum)
	}
	return nil
}

// ComponentScore is one sub-scorer's contribution to the final score.
type ComponentScore struct {
	Score    float64 // raw sub-score in [0, 1]
	Weight   float64
	Weighted float64 // Score * Weight, rounded to 4 places
}

// Breakdown is the full outcome of one hybrid evaluation.
type Breakdown struct {
	Score      float64 // weighted score scaled to MaxScore, rounded to 2 places
	MaxScore   float64
	Percentage float64
	Assessment string
	Method     string

	Lexical  ComponentScore
	Semantic ComponentScore
	Keyword  ComponentScore

	MatchedKeywords []string
	MissedKeywords  []string

	Feedback string

	// LLMFeedback is qualitative commentary requested from a provider
	// for low-scoring answers. It is best-effort: nil when not
	// requested or when the provider call failed, and it never affects
	// the numeric score.
	LLMFeedback *string
}

// HybridScorer combines lexical, semantic and keyword sub-scores into
// one normalized evaluation. Each call is stateless given its inputs.
type HybridScorer struct {
	lexical  *LexicalScorer
	semantic *SemanticScorer
	keyword  *KeywordScorer
	registry *ai.Registry
	weights  Weights
	logger   *slog.Logger
}

// Option configures a HybridScorer.
type Option func(*HybridScorer) error

// WithWeights sets the default sub-score weights.
// Default is DefaultWeights().
func WithWeights(weights Weights) Option {
	return func(h *HybridScorer) error {
		if err := weights.Validate(); err != nil {
			return err
		}
		h.weights = weights
		return nil
	}
}

// WithRegistry provides the provider registry used for best-effort LLM
// feedback on low-scoring answers. Without it feedback is never requested.
func WithRegistry(registry *ai.Registry) Option {
	return func(h *HybridScorer) error {
		h.registry = registry
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(h *HybridScorer) error {
		if logger == nil {
			logger = slog.Default()
		}
		h.logger = logger
		return nil
	}
}

// NewHybridScorer creates a hybrid scorer using the given embedder for
// the semantic component.
func NewHybridScorer(embedder ai.Embedder, opts ...Option) (*HybridScorer, error) {
	semantic, err := NewSemanticScorer(embedder)
	if err != nil {
		return nil, err
	}

	h := &HybridScorer{
		lexical:  NewLexicalScorer(),
		semantic: semantic,
		keyword:  NewKeywordScorer(),
		weights:  DefaultWeights(),
		logger:   slog.Default().With("component", "scorer"),
	}

	for _, opt := range opts {
		if err := opt(h); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// scoreRequest carries the per-call parameters of Score.
type scoreRequest struct {
	maxPoints float64
	question  string
	provider  string
	model     string
	weights   *Weights
}

// ScoreOption customizes a single Score call.
type ScoreOption func(*scoreRequest)

// WithMaxPoints scales the final score to the given ceiling.
// Default is 1.0.
func WithMaxPoints(maxPoints float64) ScoreOption {
	return func(r *scoreRequest) {
		if maxPoints > 0 {
			r.maxPoints = maxPoints
		}
	}
}

// WithQuestion supplies the question text for LLM feedback context.
func WithQuestion(question string) ScoreOption {
	return func(r *scoreRequest) {
		r.question = question
	}
}

// WithFeedbackProvider names the provider (and optional model) asked
// for qualitative feedback when the weighted score is low.
func WithFeedbackProvider(provider, model string) ScoreOption {
	return func(r *scoreRequest) {
		r.provider = provider
		r.model = model
	}
}

// WithWeightOverride replaces the scorer's weights for this call only.
func WithWeightOverride(weights Weights) ScoreOption {
	return func(r *scoreRequest) {
		r.weights = &weights
	}
}

// Score evaluates a student answer against a reference answer.
//
// An empty student answer short-circuits to score 0 with the
// "empty_check" method tag; the sub-scorers never run. Otherwise the
// three sub-scores are combined with the configured weights, scaled to
// the maximum points, and labeled.
func (h *HybridScorer) Score(ctx context.Context, student, reference string, opts ...ScoreOption) (*Breakdown, error) {
	request := scoreRequest{maxPoints: 1.0}
	for _, opt := range opts {
		opt(&request)
	}

	weights := h.weights
	if request.weights != nil {
		if err := request.weights.Validate(); err != nil {
			return nil, err
		}
		weights = *request.weights
	}

	if student == "" {
		return &Breakdown{
			Score:    0,
			MaxScore: request.maxPoints,
			Method:   MethodEmpty,
			Feedback: "No answer provided",
		}, nil
	}

	lexical := h.lexical.Score(student, reference)

	semantic, err := h.semantic.Score(ctx, student, reference)
	if err != nil {
		h.logger.Error("error computing semantic similarity", "err", err)
		return nil, err
	}

	keyword := h.keyword.Score(student, reference)

	weighted := weights.Lexical*lexical + weights.Semantic*semantic + weights.Keyword*keyword.Score

	breakdown := &Breakdown{
		Score:      roundTo(weighted*request.maxPoints, 2),
		MaxScore:   request.maxPoints,
		Percentage: roundTo(weighted*100, 1),
		Assessment: assess(weighted),
		Method:     MethodHybrid,
		Lexical: ComponentScore{
			Score:    roundTo(lexical, 4),
			Weight:   weights.Lexical,
			Weighted: roundTo(lexical*weights.Lexical, 4),
		},
		Semantic: ComponentScore{
			Score:    roundTo(semantic, 4),
			Weight:   weights.Semantic,
			Weighted: roundTo(semantic*weights.Semantic, 4),
		},
		Keyword: ComponentScore{
			Score:    roundTo(keyword.Score, 4),
			Weight:   weights.Keyword,
			Weighted: roundTo(keyword.Score*weights.Keyword, 4),
		},
		MatchedKeywords: keyword.Matched,
		MissedKeywords:  keyword.Missed,
		Feedback:        buildFeedback(weighted, lexical, semantic, keyword),
	}

	if request.provider != "" && h.registry != nil && weighted < feedbackThreshold {
		breakdown.LLMFeedback = h.llmFeedback(ctx, request, student, reference, breakdown.Percentage)
	}

	return breakdown, nil
}

// assess maps a weighted score to its categorical label.
func assess(weighted float64) string {
	switch {
	case weighted >= 0.9:
		return "excellent"
	case weighted >= 0.75:
		return "good"
	case weighted >= 0.6:
		return "satisfactory"
	case weighted >= 0.4:
		return "needs_improvement"
	default:
		return "poor"
	}
}

// buildFeedback composes deterministic feedback from the sub-scores.
func buildFeedback(weighted, lexical, semantic float64, keyword KeywordResult) string {
	var parts []string

	switch {
	case weighted >= 0.8:
		parts = append(parts, "Excellent answer!")
	case weighted >= 0.6:
		parts = append(parts, "Good answer with room for improvement.")
	case weighted >= 0.4:
		parts = append(parts, "Partial understanding demonstrated.")
	default:
		parts = append(parts, "Answer needs significant improvement.")
	}

	if semantic < 0.5 {
		parts = append(parts, "The meaning of your answer doesn't fully align with the expected response.")
	}

	if len(keyword.Missed) > 0 {
		missed := keyword.Missed
		if len(missed) > 3 {
			missed = missed[:3]
		}
		parts = append(parts, fmt.Sprintf("Consider including these concepts: %s", strings.Join(missed, ", ")))
	}

	if lexical > semantic+0.2 {
		parts = append(parts, "Your answer uses similar words but may miss the deeper meaning.")
	}

	return strings.Join(parts, " ")
}

// llmFeedback requests one round of qualitative commentary. Failures
// are logged and swallowed: the result is simply absent.
func (h *HybridScorer) llmFeedback(ctx context.Context, request scoreRequest, student, reference string, percentage float64) *string {
	provider, err := h.registry.Provider(request.provider, request.model)
	if err != nil {
		h.logger.Debug("feedback provider unavailable", "provider", request.provider, "err", err)
		return nil
	}

	question := request.question
	if question == "" {
		question = "N/A"
	}

	prompt := fmt.Sprintf(`A student answered this question:
Question: %s

Expected answer: %s

Student's answer: %s

Score: %.1f%%

Provide brief, constructive feedback (2-3 sentences) on how the student can improve.
Focus on what's missing or incorrect. Be encouraging but specific.`, question, reference, student, percentage)

	feedback, err := provider.Generate(ctx, prompt, "")
	if err != nil {
		h.logger.Debug("llm feedback failed", "provider", request.provider, "err", err)
		return nil
	}
	return &feedback
}

// roundTo rounds x to the given number of decimal places.
func roundTo(x float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(x*factor) / factor
}
