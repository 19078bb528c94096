// Package scoring evaluates student answers against reference answers.
//
// HybridScorer combines three independent similarity measures:
//
//   - lexical: TF-IDF cosine similarity over unigrams and bigrams,
//     vocabulary fit per comparison pair
//   - semantic: sentence-embedding cosine similarity remapped to [0, 1]
//   - keyword: coverage of the reference answer's key terms
//
// The weighted combination (default 0.25/0.50/0.25) is scaled to a
// maximum-points ceiling and labeled. Low-scoring answers can receive
// one round of best-effort qualitative feedback from an LLM provider;
// the feedback never changes the numeric score.
//
// EvaluateMCQ handles multiple-choice answers by trimmed
// case-insensitive exact match.
package scoring
