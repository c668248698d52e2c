package answer

import "errors"

var (
	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrEmbeddingMismatch is returned when the embedder yields a different
	// number of vectors than chunks submitted.
	ErrEmbeddingMismatch = errors.New("embedding result count does not match chunk count")
)
