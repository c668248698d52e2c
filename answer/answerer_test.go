package answer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/poiesic/answerit/ai"
	"github.com/poiesic/answerit/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnswerer(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		a, err := NewAnswerer(mock.NewMockProvider())
		require.NoError(t, err)
		assert.NotNil(t, a)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewAnswerer(nil)
		assert.Equal(t, ErrAIProviderRequired, err)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		a, err := NewAnswerer(mock.NewMockProvider(), WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, a)
	})
}

func TestAnswer_HappyPath(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	generator := mock.NewMockAnswerGenerator()
	provider := mock.NewMockProviderWithServices(embedder, generator)

	a, err := NewAnswerer(provider)
	require.NoError(t, err)

	contextText := strings.Repeat("The probe reached orbit in March. ", 40)
	got := a.Answer(context.Background(), contextText, "when did the probe reach orbit")

	assert.NotEmpty(t, got)
	assert.Equal(t, 1, generator.CallCount())

	req := generator.LastRequest()
	require.NotNil(t, req)
	assert.Contains(t, req.Prompt, "Specific Query: when did the probe reach orbit")
	assert.Contains(t, req.Prompt, "Instructions:")
	assert.Contains(t, req.Prompt, "The probe reached orbit")
	// A fresh session starts with an empty history buffer
	assert.Empty(t, req.History)
}

func TestAnswer_ContextPrefixBounded(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	generator := mock.NewMockAnswerGenerator()
	provider := mock.NewMockProviderWithServices(embedder, generator)

	a, err := NewAnswerer(provider)
	require.NoError(t, err)

	contextText := strings.Repeat("x", 20000)
	a.Answer(context.Background(), contextText, "q")

	req := generator.LastRequest()
	require.NotNil(t, req)
	// Prompt carries at most the 5000-char context prefix plus the template
	assert.Less(t, len(req.Prompt), maxPromptContext+len(answerPromptTemplate)+100)
}

func TestAnswer_PostFilter(t *testing.T) {
	tests := []struct {
		name  string
		model string
		want  string
	}{
		{
			name:  "near-empty answer replaced",
			model: "ok",
			want:  LowValueAnswer,
		},
		{
			name:  "hedging answer replaced case-insensitively",
			model: "The provided context Does NOT contain relevant info about this.",
			want:  LowValueAnswer,
		},
		{
			name:  "substantive answer passes through",
			model: "The probe reached orbit in March according to the mission log.",
			want:  "The probe reached orbit in March according to the mission log.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator := mock.NewMockAnswerGenerator()
			generator.GenerateAnswerFunc = func(ctx context.Context, req *ai.AnswerRequest) (string, error) {
				return tt.model, nil
			}
			provider := mock.NewMockProviderWithServices(mock.NewMockEmbedder(), generator)

			a, err := NewAnswerer(provider)
			require.NoError(t, err)

			got := a.Answer(context.Background(), "some gathered context about a space probe", "query")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnswer_EmptyModelOutputGetsDefault(t *testing.T) {
	generator := mock.NewMockAnswerGenerator()
	generator.GenerateAnswerFunc = func(ctx context.Context, req *ai.AnswerRequest) (string, error) {
		return "", nil
	}
	provider := mock.NewMockProviderWithServices(mock.NewMockEmbedder(), generator)

	a, err := NewAnswerer(provider)
	require.NoError(t, err)

	got := a.Answer(context.Background(), "context text", "query")
	// The default stands in for the missing answer and survives the filter
	assert.Equal(t, DefaultAnswer, got)
}

func TestAnswer_GenerationErrorYieldsFailureAnswer(t *testing.T) {
	generator := mock.NewMockAnswerGenerator()
	generator.GenerateAnswerFunc = func(ctx context.Context, req *ai.AnswerRequest) (string, error) {
		return "", errors.New("model quota exceeded")
	}
	provider := mock.NewMockProviderWithServices(mock.NewMockEmbedder(), generator)

	a, err := NewAnswerer(provider)
	require.NoError(t, err)

	got := a.Answer(context.Background(), "context text", "query")
	assert.Equal(t, FailureAnswer, got)
}

func TestAnswer_EmbeddingErrorYieldsFailureAnswer(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("embedding service down")
	}
	provider := mock.NewMockProviderWithServices(embedder, mock.NewMockAnswerGenerator())

	a, err := NewAnswerer(provider)
	require.NoError(t, err)

	got := a.Answer(context.Background(), "context long enough to chunk and embed", "query")
	assert.Equal(t, FailureAnswer, got)
}

func TestAnswer_EmptyContextStillAnswers(t *testing.T) {
	generator := mock.NewMockAnswerGenerator()
	provider := mock.NewMockProviderWithServices(mock.NewMockEmbedder(), generator)

	a, err := NewAnswerer(provider)
	require.NoError(t, err)

	got := a.Answer(context.Background(), "", "query with no gathered context")
	assert.NotEmpty(t, got)

	req := generator.LastRequest()
	require.NotNil(t, req)
	assert.Empty(t, req.Passages)
}

func TestFilterAnswer(t *testing.T) {
	assert.Equal(t, LowValueAnswer, filterAnswer("   hi   "))
	assert.Equal(t, LowValueAnswer, filterAnswer("This text DOES NOT CONTAIN anything of value."))
	assert.Equal(t, "A perfectly fine answer.", filterAnswer("A perfectly fine answer."))
}
