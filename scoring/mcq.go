package scoring

import (
	"fmt"
	"strings"
)

// MCQResult is the outcome of a multiple-choice or true/false check.
type MCQResult struct {
	IsCorrect bool
	Score     float64
	Feedback  string
	Method    string
}

// EvaluateMCQ grades a selected answer by trimmed, case-insensitive
// exact match against the correct one.
func EvaluateMCQ(student, correct string) MCQResult {
	isCorrect := strings.EqualFold(strings.TrimSpace(student), strings.TrimSpace(correct))

	result := MCQResult{
		IsCorrect: isCorrect,
		Method:    MethodExact,
	}
	if isCorrect {
		result.Score = 1.0
		result.Feedback = "Correct!"
	} else {
		result.Feedback = fmt.Sprintf("Incorrect. The correct answer is: %s", correct)
	}
	return result
}
