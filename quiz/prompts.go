package quiz

import (
	"fmt"
	"strings"
)

// maxContentLength bounds how much raw content goes into a prompt.
const maxContentLength = 4000

func topicPrompt(topic string, n int, types []string, difficulty string) string {
	return fmt.Sprintf(`Generate %d %s difficulty quiz questions about: %s

Question types to include: %s

For each question, provide:
1. question_text: The question
2. question_type: One of %s
3. options: Array of options (for MCQ and true/false)
4. correct_answer: The correct answer
5. explanation: Brief explanation of the answer
6. points: Suggested points (1.0 for easy, 2.0 for medium, 3.0 for hard)

Return ONLY a JSON array of questions, nothing else. Example format:
[
  {
    "question_text": "What is the capital of France?",
    "question_type": "mcq",
    "options": ["London", "Berlin", "Paris", "Madrid"],
    "correct_answer": "Paris",
    "explanation": "Paris is the capital and largest city of France.",
    "points": 1.0
  }
]`, n, difficulty, topic, strings.Join(types, ", "), strings.Join(types, ", "))
}

func contentPrompt(content string, n int, types []string) string {
	if len(content) > maxContentLength {
		content = content[:maxContentLength] + "..."
	}

	return fmt.Sprintf(`Based on the following learning content, generate %d quiz questions.

**Content:**
%s

**Requirements:**
- Question types: %s
- Cover key concepts from the content
- Include a mix of difficulty levels
- Provide clear explanations
- Questions should ONLY be based on the provided content

Return ONLY a JSON array of questions with this structure:
[
  {
    "question_text": "...",
    "question_type": "mcq" or "true_false" or "short_answer",
    "options": ["...", "...", "...", "..."],
    "correct_answer": "...",
    "explanation": "...",
    "points": 1.0 or 2.0 or 3.0
  }
]`, n, content, strings.Join(types, ", "))
}

func collectionPrompt(context string, n int, types []string, difficulty string) string {
	return fmt.Sprintf(`Based STRICTLY on the following course content, generate %d %s difficulty quiz questions.

**Course Content:**
%s

**Requirements:**
- Question types: %s
- ALL questions MUST be directly answerable from the provided content
- Do NOT use any external knowledge
- Cover key concepts from the content
- Provide clear explanations that reference the content
- Difficulty level: %s

Return ONLY a JSON array of questions with this structure:
[
  {
    "question_text": "...",
    "question_type": "mcq" or "true_false" or "short_answer",
    "options": ["...", "...", "...", "..."],
    "correct_answer": "...",
    "explanation": "...",
    "points": 1.0 or 2.0 or 3.0,
    "topic_covered": "Brief description of the topic this question covers"
  }
]`, n, difficulty, context, strings.Join(types, ", "), difficulty)
}
