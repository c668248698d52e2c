package answer

import "strings"

// JoinContext concatenates the non-empty extracted contents for one query
// into the single context blob handed to the answering step. Order follows
// the source order; empty extracts contribute nothing.
func JoinContext(contents []string) string {
	parts := make([]string, 0, len(contents))
	for _, content := range contents {
		if content != "" {
			parts = append(parts, content)
		}
	}
	return strings.Join(parts, " ")
}
