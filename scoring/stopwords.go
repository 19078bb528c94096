package scoring

// stopwords are filtered out before lexical vectorization and keyword
// extraction. The set skews toward English function words.
var stopwords = map[string]struct{}{}

func init() {
	words := []string{
		"the", "a", "an", "is", "are", "was", "were", "be", "been",
		"being", "have", "has", "had", "do", "does", "did", "will",
		"would", "could", "should", "may", "might", "must", "shall",
		"can", "need", "to", "of", "in", "for", "on", "with", "at",
		"by", "from", "as", "into", "through", "during", "before",
		"after", "above", "below", "between", "under", "again",
		"further", "then", "once", "here", "there", "when", "where",
		"why", "how", "all", "each", "few", "more", "most", "other",
		"some", "such", "no", "nor", "not", "only", "own", "same",
		"so", "than", "too", "very", "just", "and", "but", "if", "or",
		"because", "until", "while", "this", "that", "these", "those",
		"it", "its", "they", "them", "their", "what", "which", "who",
	}
	for _, w := range words {
		stopwords[w] = struct{}{}
	}
}

func isStopword(word string) bool {
	_, ok := stopwords[word]
	return ok
}
