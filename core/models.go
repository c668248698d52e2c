package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for request-scoped artifacts such as indexed
// context chunks. It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// SearchResult is one candidate source produced by the search aggregator.
// Results are unique by URL within a single query and keep the order in
// which they were first seen across search kinds.
type SearchResult struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// AnswerResult is the externally visible artifact of one query. It is
// constructed fresh per request and never merged with prior results.
//
// Sources lists every URL that was searched, including URLs whose content
// could not be extracted. It is empty only when the search itself produced
// no results.
type AnswerResult struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}
