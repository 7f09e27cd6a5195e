package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-intel-be/pkg/llm"
	"doc-intel-be/pkg/rag"
	"doc-intel-be/pkg/store"
)

type fakeProvider struct {
	response   string
	err        error
	lastPrompt string
	lastSystem string
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	for _, msg := range history {
		switch msg.Role {
		case "system":
			f.lastSystem = msg.Content
		case "user":
			f.lastPrompt = msg.Content
		}
	}
	return f.response, f.err
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func TestAnalyzeContent(t *testing.T) {
	provider := &fakeProvider{
		response: `Here you go: {"summary": "A health plan", "key_points": ["low premium"], "insights": ["good for families"], "confidence": 0.85}`,
	}
	client := NewClient(provider, nil)

	result, err := client.AnalyzeContent(context.Background(), "plan text", "healthcare")

	require.NoError(t, err)
	assert.Equal(t, "A health plan", result.Summary)
	assert.Equal(t, []string{"low premium"}, result.KeyPoints)
	assert.InDelta(t, 0.85, result.Confidence, 1e-9)
	assert.Contains(t, provider.lastSystem, "healthcare documents")
}

func TestAnalyzeContentProviderFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("connection refused")}
	client := NewClient(provider, nil)

	result, err := client.AnalyzeContent(context.Background(), "text", "general")

	require.Error(t, err)
	assert.True(t, errors.Is(err, rag.ErrGeneration))
	assert.Equal(t, "Analysis failed", result.Summary)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestAnalyzeContentUnparseableOutput(t *testing.T) {
	provider := &fakeProvider{response: "I cannot produce JSON today"}
	client := NewClient(provider, nil)

	result, err := client.AnalyzeContent(context.Background(), "text", "general")

	assert.True(t, errors.Is(err, rag.ErrGeneration))
	assert.Equal(t, "Analysis failed", result.Summary)
}

func TestComparePair(t *testing.T) {
	provider := &fakeProvider{
		response: `{"similarities": ["both cover dental"], "differences": ["premium differs by $50"], "key_insights": ["plan A cheaper"], "overall_analysis": "Plan A wins on cost.", "confidence": 0.8}`,
	}
	client := NewClient(provider, nil)

	result, err := client.ComparePair(context.Background(), "doc one", "doc two", rag.PairContext{
		Domain:        "healthcare",
		Document1Name: "Plan A",
		Document2Name: "Plan B",
		FocusAreas:    []string{"premiums"},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"both cover dental"}, result.Similarities)
	// Complete result gets the +0.1 quality boost.
	assert.InDelta(t, 0.9, result.Confidence, 1e-9)
	assert.Contains(t, provider.lastSystem, "healthcare insurance expert")
	assert.Contains(t, provider.lastPrompt, "Plan A")
	assert.Contains(t, provider.lastPrompt, "premiums")
}

func TestComparePairConfidenceBoostCap(t *testing.T) {
	provider := &fakeProvider{
		response: `{"similarities": ["s"], "differences": ["d"], "key_insights": [], "overall_analysis": "done", "confidence": 0.93}`,
	}
	client := NewClient(provider, nil)

	result, err := client.ComparePair(context.Background(), "a", "b", rag.PairContext{})

	require.NoError(t, err)
	assert.InDelta(t, 0.95, result.Confidence, 1e-9)
}

func TestComparePairFallback(t *testing.T) {
	provider := &fakeProvider{err: errors.New("timeout")}
	client := NewClient(provider, nil)

	result, err := client.ComparePair(context.Background(), "a", "b", rag.PairContext{})

	assert.True(t, errors.Is(err, rag.ErrGeneration))
	assert.InDelta(t, 0.3, result.Confidence, 1e-9)
	assert.NotEmpty(t, result.Similarities)
	assert.NotEmpty(t, result.OverallAnalysis)
}

func TestComparePairTruncatesContent(t *testing.T) {
	provider := &fakeProvider{
		response: `{"similarities": [], "differences": [], "key_insights": [], "overall_analysis": "", "confidence": 0.5}`,
	}
	client := NewClient(provider, nil)

	long := strings.Repeat("x", 5000)
	_, err := client.ComparePair(context.Background(), long, "short", rag.PairContext{})

	require.NoError(t, err)
	assert.Contains(t, provider.lastPrompt, strings.Repeat("x", 2000))
	assert.NotContains(t, provider.lastPrompt, strings.Repeat("x", 2001))
}

func TestGenerateGroundedAnswer(t *testing.T) {
	provider := &fakeProvider{response: "The deductible is $1000 per year."}
	client := NewClient(provider, nil)

	chunks := []store.EnrichedChunk{
		{
			Chunk: store.Chunk{
				Content: "Deductible: $1000 annually",
				Metadata: store.ChunkMetadata{
					Filename:   "plan.pdf",
					PageNumber: 3,
				},
			},
			OntologyContext: "DEDUCTIBLE CONTEXT: Annual amount paid before insurance begins covering costs.",
		},
	}

	answer, err := client.GenerateGroundedAnswer(context.Background(), "what is the deductible", chunks, "healthcare")

	require.NoError(t, err)
	assert.Equal(t, "The deductible is $1000 per year.", answer)
	assert.Contains(t, provider.lastPrompt, "Source: plan.pdf (Page 3)")
	assert.Contains(t, provider.lastPrompt, "DEDUCTIBLE CONTEXT")
	assert.Contains(t, provider.lastPrompt, "USER QUESTION: what is the deductible")
}

func TestGenerateGroundedAnswerLimitsContextToFiveChunks(t *testing.T) {
	provider := &fakeProvider{response: "answer"}
	client := NewClient(provider, nil)

	var chunks []store.EnrichedChunk
	for i := 0; i < 8; i++ {
		chunks = append(chunks, store.EnrichedChunk{
			Chunk: store.Chunk{
				Content:  "chunk content",
				Metadata: store.ChunkMetadata{Filename: "f.pdf", PageNumber: i + 1},
			},
		})
	}

	_, err := client.GenerateGroundedAnswer(context.Background(), "q", chunks, "general")

	require.NoError(t, err)
	assert.Contains(t, provider.lastPrompt, "(Page 5)")
	assert.NotContains(t, provider.lastPrompt, "(Page 6)")
}

func TestGenerateGroundedAnswerEmptyOutput(t *testing.T) {
	provider := &fakeProvider{response: "   "}
	client := NewClient(provider, nil)

	answer, err := client.GenerateGroundedAnswer(context.Background(), "q", nil, "general")

	assert.True(t, errors.Is(err, rag.ErrGeneration))
	assert.Equal(t, "Unable to generate insights", answer)
}

func TestCanceledContextKeepsItsKind(t *testing.T) {
	provider := &fakeProvider{err: context.Canceled}
	client := NewClient(provider, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GenerateGroundedAnswer(ctx, "q", nil, "general")

	assert.True(t, errors.Is(err, rag.ErrCanceled))
	assert.False(t, errors.Is(err, rag.ErrGeneration))
}
