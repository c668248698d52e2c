// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package answer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/answerit/ai"
)

const (
	// retrievedPassages is the number of index hits handed to the model.
	retrievedPassages = 4

	// minAnswerLength guards against near-empty model output.
	minAnswerLength = 10
)

// hedgePhrase marks model output that admits the context was insufficient.
// Matched case-insensitively.
const hedgePhrase = "does not contain"

// Fixed user-facing strings. These are part of the endpoint contract.
const (
	// DefaultAnswer stands in when the model returns no answer at all.
	DefaultAnswer = "I couldn't find definitive information about this query."

	// LowValueAnswer replaces answers that are too short or that hedge
	// about the supplied context.
	LowValueAnswer = "I couldn't find specific information about this query in the available sources."

	// FailureAnswer is the terminal fallback when generation fails outright.
	FailureAnswer = "I encountered an issue generating a response. Please try again."
)

// Answerer wraps the hosted model behind a per-request retrieval session.
type Answerer struct {
	provider ai.AIProvider
	logger   *slog.Logger
}

// Option configures an Answerer.
type Option func(*Answerer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Answerer) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAnswerer creates a new answering service.
func NewAnswerer(provider ai.AIProvider, opts ...Option) (*Answerer, error) {
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	a := &Answerer{
		provider: provider,
		logger:   slog.Default().With("component", "answer"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Answer turns (contextText, query) into a user-presentable answer string.
//
// Answer never fails and always returns a non-empty string: session
// construction errors, retrieval errors, and model errors all degrade to
// FailureAnswer, empty model output degrades to DefaultAnswer, and the
// post-filter replaces low-value output with LowValueAnswer.
//
// The conversational session is a value scoped to this call. It is built
// here, used once, and dropped when the call returns; no session state is
// shared between requests.
func (a *Answerer) Answer(ctx context.Context, contextText, query string) string {
	session, err := newSession(ctx, a.provider.Embedder(), contextText, a.logger)
	if err != nil {
		a.logger.Error("building retrieval session failed", "err", err)
		return FailureAnswer
	}

	passages, err := session.retrieve(ctx, query, retrievedPassages)
	if err != nil {
		a.logger.Error("retrieving passages failed", "err", err)
		return FailureAnswer
	}

	raw, err := a.provider.AnswerGenerator().GenerateAnswer(ctx, &ai.AnswerRequest{
		Prompt:   buildPrompt(contextText, query),
		Passages: passages,
		History:  session.History(),
	})
	if err != nil {
		a.logger.Error("answer generation failed", "err", err)
		return FailureAnswer
	}

	if raw == "" {
		raw = DefaultAnswer
	}

	answerText := filterAnswer(raw)
	session.remember(query, answerText)

	a.logger.Info("answer generated", "query", query, "passages", len(passages), "filtered", answerText != raw)
	return answerText
}

// filterAnswer replaces low-value model output with a fixed explanation.
// Near-empty answers and answers hedging that the context "does not contain"
// the information add nothing for the caller.
func filterAnswer(raw string) string {
	if len(strings.TrimSpace(raw)) < minAnswerLength {
		return LowValueAnswer
	}
	if strings.Contains(strings.ToLower(raw), hedgePhrase) {
		return LowValueAnswer
	}
	return raw
}
