package ai

// Turn is a single question/answer exchange in a conversational session's
// running history. History is always scoped to one request; a fresh session
// starts with no turns.
type Turn struct {
	Question string
	Answer   string
}

// AnswerRequest carries everything the model needs to answer one query.
type AnswerRequest struct {
	// Prompt is the full instructional prompt, including the context prefix
	// and the literal user query.
	Prompt string

	// Passages are context excerpts retrieved from the session's similarity
	// index, most relevant first. May be empty.
	Passages []string

	// History holds prior turns of the session, oldest first. May be empty.
	History []Turn
}
