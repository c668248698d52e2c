package mock

import (
	"context"
	"fmt"

	"github.com/poiesic/answerit/ai"
)

// MockAnswerGenerator is a test double for ai.AnswerGenerator.
// It allows custom behavior injection via function fields.
type MockAnswerGenerator struct {
	// GenerateAnswerFunc is called by GenerateAnswer if set.
	// If nil, uses default canned-answer behavior.
	GenerateAnswerFunc func(ctx context.Context, req *ai.AnswerRequest) (string, error)

	callCount   int
	lastRequest *ai.AnswerRequest
}

// NewMockAnswerGenerator creates a mock answer generator with default behavior.
// Note: Returns concrete type to allow test assertions via CallCount and LastRequest.
func NewMockAnswerGenerator() *MockAnswerGenerator {
	return &MockAnswerGenerator{}
}

// GenerateAnswer returns a fixed plausible answer.
// Default behavior: an answer long enough to pass downstream quality filters,
// mentioning how much material informed it.
func (m *MockAnswerGenerator) GenerateAnswer(ctx context.Context, req *ai.AnswerRequest) (string, error) {
	m.callCount++
	m.lastRequest = req

	if m.GenerateAnswerFunc != nil {
		return m.GenerateAnswerFunc(ctx, req)
	}

	return fmt.Sprintf("Mock answer generated from %d retrieved passages and a %d character prompt.",
		len(req.Passages), len(req.Prompt)), nil
}

// CallCount returns the number of times GenerateAnswer was called.
func (m *MockAnswerGenerator) CallCount() int {
	return m.callCount
}

// LastRequest returns the most recent request passed to GenerateAnswer,
// or nil if it was never called.
func (m *MockAnswerGenerator) LastRequest() *ai.AnswerRequest {
	return m.lastRequest
}

// Reset clears the call count, captured request, and custom functions.
func (m *MockAnswerGenerator) Reset() {
	m.callCount = 0
	m.lastRequest = nil
	m.GenerateAnswerFunc = nil
}
