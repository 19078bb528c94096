package scoring

import (
	"regexp"
	"sort"
	"strings"
)

var keywordPattern = regexp.MustCompile(`[a-zA-Z]+`)

// minKeywordLength is the shortest token counted as a keyword.
const minKeywordLength = 3

// extraKeywordBonus and maxKeywordBonus bound the credit for relevant
// terms the reference does not mention.
const (
	extraKeywordBonus = 0.02
	maxKeywordBonus   = 0.1
)

// KeywordResult is the outcome of one keyword comparison.
type KeywordResult struct {
	Score    float64
	Coverage float64
	Matched  []string
	Missed   []string
	Extra    []string
}

// KeywordScorer scores a student answer by how many of the reference
// answer's key terms it covers.
type KeywordScorer struct{}

// NewKeywordScorer creates a keyword coverage scorer.
func NewKeywordScorer() *KeywordScorer {
	return &KeywordScorer{}
}

// ExtractKeywords returns the lowercase alphabetic tokens of length ≥ 3
// in text, stop-words removed. Order follows first appearance.
func (s *KeywordScorer) ExtractKeywords(text string) []string {
	words := keywordPattern.FindAllString(strings.ToLower(text), -1)

	keywords := make([]string, 0, len(words))
	for _, word := range words {
		if len(word) < minKeywordLength || isStopword(word) {
			continue
		}
		keywords = append(keywords, word)
	}
	return keywords
}

// Score computes keyword coverage of the reference by the student
// answer, plus a capped bonus for extra keywords. A reference with no
// extractable keywords scores 1.0: there is nothing to miss.
func (s *KeywordScorer) Score(student, reference string) KeywordResult {
	if student == "" || reference == "" {
		return KeywordResult{}
	}

	expected := toSet(s.ExtractKeywords(reference))
	submitted := toSet(s.ExtractKeywords(student))

	if len(expected) == 0 {
		return KeywordResult{Score: 1.0, Coverage: 1.0}
	}

	var matched, missed, extra []string
	for word := range expected {
		if _, ok := submitted[word]; ok {
			matched = append(matched, word)
		} else {
			missed = append(missed, word)
		}
	}
	for word := range submitted {
		if _, ok := expected[word]; !ok {
			extra = append(extra, word)
		}
	}
	sort.Strings(matched)
	sort.Strings(missed)
	sort.Strings(extra)

	coverage := float64(len(matched)) / float64(len(expected))

	bonus := float64(len(extra)) * extraKeywordBonus
	if bonus > maxKeywordBonus {
		bonus = maxKeywordBonus
	}

	score := coverage + bonus
	if score > 1 {
		score = 1
	}

	return KeywordResult{
		Score:    score,
		Coverage: coverage,
		Matched:  matched,
		Missed:   missed,
		Extra:    extra,
	}
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[word] = struct{}{}
	}
	return set
}
