package answer

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/philippgille/chromem-go"
	"github.com/poiesic/answerit/ai"
	"github.com/poiesic/answerit/core"
	"github.com/tmc/langchaingo/textsplitter"
)

const (
	// chunkSize and chunkOverlap control how the context blob is split
	// before indexing.
	chunkSize    = 1000
	chunkOverlap = 200

	sessionCollection = "session-context"
)

// Session is a short-lived conversational retrieval session: an in-memory
// similarity index over one query's context paired with an empty
// running-history buffer. A session exists inside a single request and is
// discarded with it; it is never populated from a prior query.
type Session struct {
	collection *chromem.Collection
	embedder   ai.Embedder
	history    []ai.Turn
	logger     *slog.Logger
}

// newSession chunks the context text, embeds the chunks in one batch, and
// indexes them in a fresh in-memory collection.
func newSession(ctx context.Context, embedder ai.Embedder, contextText string, logger *slog.Logger) (*Session, error) {
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
	)
	chunks, err := splitter.SplitText(contextText)
	if err != nil {
		return nil, err
	}

	db := chromem.NewDB()
	collection, err := db.CreateCollection(sessionCollection, nil, nil)
	if err != nil {
		return nil, err
	}

	if len(chunks) > 0 {
		vectors, err := embedder.EmbedTexts(ctx, chunks)
		if err != nil {
			return nil, err
		}
		if len(vectors) != len(chunks) {
			return nil, fmt.Errorf("%w: expected %d, received %d", ErrEmbeddingMismatch, len(chunks), len(vectors))
		}

		docs := make([]chromem.Document, len(chunks))
		for i, chunk := range chunks {
			// Content hash plus position keeps IDs unique even when the
			// overlap produces identical chunks.
			id := strconv.FormatUint(uint64(core.IDFromContent(chunk)), 16) + "-" + strconv.Itoa(i)
			docs[i] = chromem.Document{
				ID:        id,
				Content:   chunk,
				Embedding: vectors[i],
			}
		}
		if err := collection.AddDocuments(ctx, docs, 1); err != nil {
			return nil, err
		}
	}

	logger.Debug("session index built", "chunks", len(chunks))

	return &Session{
		collection: collection,
		embedder:   embedder,
		logger:     logger,
	}, nil
}

// retrieve returns up to k indexed passages most similar to the query,
// most relevant first.
func (s *Session) retrieve(ctx context.Context, query string, k int) ([]string, error) {
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}

	results, err := s.collection.QueryEmbedding(ctx, vector, k, nil, nil)
	if err != nil {
		return nil, err
	}

	passages := make([]string, len(results))
	for i, res := range results {
		passages[i] = res.Content
	}
	return passages, nil
}

// History returns the session's running history, oldest turn first.
func (s *Session) History() []ai.Turn {
	return s.history
}

// remember appends a completed exchange to the running history.
func (s *Session) remember(question, answerText string) {
	s.history = append(s.history, ai.Turn{Question: question, Answer: answerText})
}
