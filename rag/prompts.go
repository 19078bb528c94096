package rag

import (
	"fmt"
	"strings"

	"github.com/poiesic/tutorkit/core"
)

// DeclineMessage is returned verbatim when no retrieved chunk passes
// the relevance threshold. Declining is a design decision to avoid
// ungrounded answers, not a failure.
const DeclineMessage = `I'm sorry, but I can only answer questions related to the course materials that have been uploaded.

**Your question doesn't seem to match any content in the current course documents.**

Please try:
- Asking a question related to the topics covered in this course
- Rephrasing your question using terms from the course materials
- Checking if the correct course is selected

If you believe this topic should be covered, please contact your teacher to upload relevant materials.`

// defaultSystemPrompt constrains the provider to the supplied context.
// Answers must come only from the retrieved course material; outside
// knowledge is forbidden and insufficient context must be called out.
const defaultSystemPrompt = `You are a helpful AI tutor. Answer the student's question based STRICTLY on the provided course materials.

**CRITICAL RULES:**
- Use ONLY information from the provided context below
- NEVER use your general knowledge or training data
- If the answer is not clearly stated in the context, say "This information is not covered in the course materials"
- Do not make assumptions or inferences beyond what's explicitly in the context
- Be clear, concise, and educational
- Use examples from the course materials when helpful

**FORMATTING RULES:**
- Use proper markdown formatting (headers with ##, bold with **, lists with -)
- For mathematical expressions, use LaTeX with dollar-sign delimiters`

// buildPrompt assembles the grounded generation prompt from the
// filtered chunks and the question.
func buildPrompt(chunks core.RetrievalResult, question string) string {
	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Text
	}

	return fmt.Sprintf(`**Context from course materials:**
%s

**Student's question:**
%s

**Answer (based ONLY on the above context):**`, strings.Join(texts, "\n\n"), question)
}
