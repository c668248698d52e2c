package answer

import (
	"fmt"
	"unicode/utf8"
)

// maxPromptContext bounds the raw context prefix embedded in the prompt.
const maxPromptContext = 5000

const answerPromptTemplate = `Context: %s

Specific Query: %s

Instructions:
1. Provide a clear, concise answer directly related to the query
2. If the context doesn't contain enough information, state that clearly
3. Focus on delivering the most relevant information
4. Use a neutral, informative tone
5. If no relevant information is found, acknowledge the lack of information`

// buildPrompt formats the fixed instructional prompt around a bounded
// context prefix and the literal query.
func buildPrompt(contextText, query string) string {
	return fmt.Sprintf(answerPromptTemplate, truncateTo(contextText, maxPromptContext), query)
}

// truncateTo clips s to at most max bytes without splitting a UTF-8 sequence.
func truncateTo(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
