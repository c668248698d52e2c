package openai

import (
	"strconv"
	"strings"
)

const systemPromptPreamble = `You are a research assistant that answers questions using web content
gathered for the current query. Ground every statement in the supplied material; do not invent
facts that are not supported by it.`

// buildSystemPrompt assembles the system message, appending retrieved context
// passages when the session's similarity index produced any.
func buildSystemPrompt(passages []string) string {
	if len(passages) == 0 {
		return systemPromptPreamble
	}

	var b strings.Builder
	b.WriteString(systemPromptPreamble)
	b.WriteString("\n\nMost relevant excerpts from the gathered content:\n")
	for i, passage := range passages {
		b.WriteString("\n[")
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString("] ")
		b.WriteString(passage)
		b.WriteString("\n")
	}
	return b.String()
}
