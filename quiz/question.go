package quiz

// Question types a generator can be asked for.
const (
	TypeMCQ         = "mcq"
	TypeTrueFalse   = "true_false"
	TypeShortAnswer = "short_answer"
)

// Difficulty levels.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question is one generated quiz question. The JSON shape is the
// contract with the generation prompt; providers are instructed to
// return an array of these.
type Question struct {
	Text          string   `json:"question_text"`
	Type          string   `json:"question_type"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Points        float64  `json:"points"`
	TopicCovered  string   `json:"topic_covered,omitempty"`
}

// CollectionQuiz is a quiz generated from course material retrieved
// out of a vector store collection.
type CollectionQuiz struct {
	Questions  []Question
	Collection string
	ChunksUsed int
	Provider   string
	Model      string
}
