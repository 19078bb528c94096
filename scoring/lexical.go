package scoring

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var lexicalTokenPattern = regexp.MustCompile(`[a-zA-Z0-9]{2,}`)

// LexicalScorer measures word-level overlap between two texts.
//
// Both texts are vectorized with TF-IDF over unigrams and bigrams,
// with the vocabulary fit on just the two texts being compared, and
// scored by cosine similarity. The per-pair fit makes scores local to
// each comparison; they are not comparable across different pairs.
type LexicalScorer struct{}

// NewLexicalScorer creates a lexical similarity scorer.
func NewLexicalScorer() *LexicalScorer {
	return &LexicalScorer{}
}

// Score returns the TF-IDF cosine similarity between the student and
// reference texts, in [0, 1]. Either text being empty scores 0.
func (s *LexicalScorer) Score(student, reference string) float64 {
	if student == "" || reference == "" {
		return 0
	}

	refTerms := lexicalTerms(reference)
	studentTerms := lexicalTerms(student)
	if len(refTerms) == 0 || len(studentTerms) == 0 {
		return 0
	}

	vocabulary, idf := fitVocabulary(refTerms, studentTerms)

	refVec := vectorize(refTerms, vocabulary, idf)
	studentVec := vectorize(studentTerms, vocabulary, idf)

	sim := cosine64(refVec, studentVec)
	if sim < 0 {
		sim = 0
	}
	if sim > 1 {
		sim = 1
	}
	return sim
}

// lexicalTerms tokenizes text and returns its unigrams and bigrams,
// stop-words removed before bigram formation.
func lexicalTerms(text string) []string {
	tokens := lexicalTokenPattern.FindAllString(strings.ToLower(text), -1)

	unigrams := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if isStopword(tok) {
			continue
		}
		unigrams = append(unigrams, tok)
	}

	terms := make([]string, 0, 2*len(unigrams))
	terms = append(terms, unigrams...)
	for i := 0; i+1 < len(unigrams); i++ {
		terms = append(terms, unigrams[i]+" "+unigrams[i+1])
	}
	return terms
}

// fitVocabulary builds a stable term index and smoothed IDF values
// over the two term lists.
func fitVocabulary(docs ...[]string) (map[string]int, []float64) {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		for _, term := range doc {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	vocabulary := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(docs))
	for i, term := range terms {
		vocabulary[term] = i
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return vocabulary, idf
}

// vectorize computes an L2-normalized TF-IDF vector for the term list.
func vectorize(terms []string, vocabulary map[string]int, idf []float64) []float64 {
	vec := make([]float64, len(vocabulary))
	for _, term := range terms {
		if idx, ok := vocabulary[term]; ok {
			vec[idx] += idf[idx]
		}
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

func cosine64(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
