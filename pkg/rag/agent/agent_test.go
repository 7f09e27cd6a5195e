package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-intel-be/pkg/rag"
	"doc-intel-be/pkg/store"
)

type fakeRetriever struct {
	chunks []store.Chunk
	err    error
}

func (f *fakeRetriever) RetrieveSimilar(ctx context.Context, query, domainFilter string, topK int) ([]store.Chunk, error) {
	return f.chunks, f.err
}

func (f *fakeRetriever) ChunksForDocument(ctx context.Context, documentID string) ([]store.Chunk, error) {
	return f.chunks, f.err
}

type fakeGenerator struct {
	answer     string
	err        error
	lastChunks []store.EnrichedChunk
	lastDomain string
}

func (f *fakeGenerator) AnalyzeContent(ctx context.Context, content, analysisType string) (rag.Analysis, error) {
	return rag.Analysis{}, nil
}

func (f *fakeGenerator) ComparePair(ctx context.Context, c1, c2 string, pc rag.PairContext) (rag.PairComparison, error) {
	return rag.PairComparison{}, nil
}

func (f *fakeGenerator) GenerateGroundedAnswer(ctx context.Context, query string, chunks []store.EnrichedChunk, domain string) (string, error) {
	f.lastChunks = chunks
	f.lastDomain = domain
	if f.err != nil {
		return "Unable to generate insights", f.err
	}
	return f.answer, nil
}

type fakeKnowledge struct {
	insights     string
	concepts     []string
	lastConcepts []string
}

func (f *fakeKnowledge) InsightsFor(domain, query string) string {
	return f.insights
}

func (f *fakeKnowledge) RelatedConcepts(domain, query string, chunkConcepts []string) []string {
	f.lastConcepts = chunkConcepts
	return f.concepts
}

func (f *fakeKnowledge) HasDomain(domain string) bool {
	return domain != "general" && domain != ""
}

func chunkWithDistance(id string, distance float64) store.Chunk {
	d := distance
	return store.Chunk{
		ID:       id,
		Content:  "content of " + id,
		Distance: &d,
		Metadata: store.ChunkMetadata{Filename: id + ".pdf", PageNumber: 1},
	}
}

const longAnswer = "This is a sufficiently long answer that easily clears the fifty character validation threshold."

func TestDomainDetection(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"What does my insurance cover?", "healthcare"},
		{"Summarize this contract", "legal"},
		{"How is the portfolio performing?", "financial"},
		{"What time is lunch?", "general"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			agent := New(&fakeRetriever{}, &fakeGenerator{answer: longAnswer}, &fakeKnowledge{}, nil)
			resp := agent.ProcessQuery(context.Background(), tt.query, "")
			assert.Equal(t, tt.want, resp.Metadata["domain"])
		})
	}
}

func TestDomainHintSkipsDetection(t *testing.T) {
	agent := New(&fakeRetriever{}, &fakeGenerator{answer: longAnswer}, &fakeKnowledge{}, nil)

	resp := agent.ProcessQuery(context.Background(), "What does my insurance cover?", "legal")

	assert.Equal(t, "legal", resp.Metadata["domain"])
	assert.Contains(t, resp.ReasoningSteps, "Identified domain: legal")
}

func TestEndToEndConfidence(t *testing.T) {
	// Six chunks, four below the 2.0 threshold; cost-insight rule fires on
	// "premium": base 0.8 + boost 0.1 = 0.9.
	retriever := &fakeRetriever{chunks: []store.Chunk{
		chunkWithDistance("a", 0.1),
		chunkWithDistance("b", 0.3),
		chunkWithDistance("c", 1.9),
		chunkWithDistance("d", 2.5),
		chunkWithDistance("e", 0.2),
		chunkWithDistance("f", 3.0),
	}}
	generator := &fakeGenerator{answer: longAnswer}
	knowledge := &fakeKnowledge{insights: "FINANCIAL CONTEXT: Premiums are recurring monthly costs."}

	agent := New(retriever, generator, knowledge, nil)
	resp := agent.ProcessQuery(context.Background(), "What is the monthly premium?", "healthcare")

	assert.Equal(t, "healthcare", resp.Metadata["domain"])
	assert.InDelta(t, 0.9, resp.Confidence, 1e-9)
	assert.Equal(t, 4, resp.Metadata["chunks_analyzed"])
	assert.Len(t, generator.lastChunks, 4)
	assert.Equal(t, longAnswer, resp.Answer)
}

func TestRelevanceFilterStarvationGuard(t *testing.T) {
	retriever := &fakeRetriever{chunks: []store.Chunk{
		chunkWithDistance("a", 2.5),
		chunkWithDistance("b", 3.0),
		chunkWithDistance("c", 4.0),
		chunkWithDistance("d", 5.0),
	}}
	generator := &fakeGenerator{answer: longAnswer}

	agent := New(retriever, generator, &fakeKnowledge{}, nil)
	resp := agent.ProcessQuery(context.Background(), "anything", "general")

	// All chunks fail the threshold; the first 3 are kept anyway.
	assert.Equal(t, 3, resp.Metadata["chunks_analyzed"])
	assert.Contains(t, resp.ReasoningSteps, "Filtered to 3 highly relevant chunks")
}

func TestRelevanceFilterCapsAtFive(t *testing.T) {
	var chunks []store.Chunk
	for i := 0; i < 10; i++ {
		chunks = append(chunks, chunkWithDistance(fmt.Sprintf("c%d", i), 0.1))
	}
	retriever := &fakeRetriever{chunks: chunks}

	agent := New(retriever, &fakeGenerator{answer: longAnswer}, &fakeKnowledge{}, nil)
	resp := agent.ProcessQuery(context.Background(), "anything", "general")

	assert.Equal(t, 5, resp.Metadata["chunks_analyzed"])
}

func TestNilDistanceTreatedAsRelevant(t *testing.T) {
	retriever := &fakeRetriever{chunks: []store.Chunk{
		{ID: "x", Content: "c", Metadata: store.ChunkMetadata{Filename: "x.pdf"}},
	}}

	agent := New(retriever, &fakeGenerator{answer: longAnswer}, &fakeKnowledge{}, nil)
	resp := agent.ProcessQuery(context.Background(), "anything", "general")

	assert.Equal(t, 1, resp.Metadata["chunks_analyzed"])
}

func TestRetrievalFailureDegrades(t *testing.T) {
	retriever := &fakeRetriever{err: errors.New("backend down")}

	agent := New(retriever, &fakeGenerator{answer: longAnswer}, &fakeKnowledge{}, nil)
	resp := agent.ProcessQuery(context.Background(), "anything", "general")

	// Pipeline continues with zero chunks; generation still runs.
	assert.Equal(t, 0, resp.Metadata["chunks_analyzed"])
	assert.Equal(t, longAnswer, resp.Answer)
	assert.InDelta(t, 0.0, resp.Confidence, 1e-9)

	found := false
	for _, entry := range resp.ReasoningSteps {
		if strings.HasPrefix(entry, "Error in document retrieval") {
			found = true
		}
	}
	assert.True(t, found, "reasoning log should record the retrieval error")
}

func TestGenerationFailureZeroesConfidence(t *testing.T) {
	retriever := &fakeRetriever{chunks: []store.Chunk{chunkWithDistance("a", 0.1)}}
	generator := &fakeGenerator{err: fmt.Errorf("generate answer: %w", rag.ErrGeneration)}

	agent := New(retriever, generator, &fakeKnowledge{}, nil)
	resp := agent.ProcessQuery(context.Background(), "anything", "general")

	assert.InDelta(t, 0.0, resp.Confidence, 1e-9)
	assert.Contains(t, resp.Answer, "Error generating response")
	assert.Contains(t, resp.ReasoningSteps, "Error detected in response, reduced confidence")
}

func TestValidationShortAnswerPenalty(t *testing.T) {
	retriever := &fakeRetriever{chunks: []store.Chunk{chunkWithDistance("a", 0.1)}}
	generator := &fakeGenerator{answer: "Yes."}

	agent := New(retriever, generator, &fakeKnowledge{}, nil)
	resp := agent.ProcessQuery(context.Background(), "anything", "general")

	// base 0.2, halved by the short-answer penalty
	assert.InDelta(t, 0.1, resp.Confidence, 1e-9)
	assert.Contains(t, resp.ReasoningSteps, "Response seems short, reduced confidence")
}

func TestValidationErrorSubstringPenalty(t *testing.T) {
	retriever := &fakeRetriever{chunks: []store.Chunk{
		chunkWithDistance("a", 0.1),
		chunkWithDistance("b", 0.1),
	}}
	generator := &fakeGenerator{answer: "An ERROR occurred upstream but here is a long explanation of what we know so far."}

	agent := New(retriever, generator, &fakeKnowledge{}, nil)
	resp := agent.ProcessQuery(context.Background(), "anything", "general")

	// base 0.4, times 0.3 for the error substring (case-insensitive)
	assert.InDelta(t, 0.12, resp.Confidence, 1e-9)
}

func TestValidationBothPenaltiesStack(t *testing.T) {
	retriever := &fakeRetriever{chunks: []store.Chunk{
		chunkWithDistance("a", 0.1),
		chunkWithDistance("b", 0.1),
	}}
	generator := &fakeGenerator{answer: "error"}

	agent := New(retriever, generator, &fakeKnowledge{}, nil)
	resp := agent.ProcessQuery(context.Background(), "anything", "general")

	// base 0.4 * 0.5 * 0.3
	assert.InDelta(t, 0.06, resp.Confidence, 1e-9)
}

func TestConfidenceAlwaysInRange(t *testing.T) {
	var chunks []store.Chunk
	for i := 0; i < 10; i++ {
		chunks = append(chunks, chunkWithDistance(fmt.Sprintf("c%d", i), 0.1))
	}
	retriever := &fakeRetriever{chunks: chunks}
	knowledge := &fakeKnowledge{insights: "some insight"}

	agent := New(retriever, &fakeGenerator{answer: longAnswer}, knowledge, nil)
	resp := agent.ProcessQuery(context.Background(), "anything", "general")

	// base capped at 1.0, boost applied, capped again
	assert.LessOrEqual(t, resp.Confidence, 1.0)
	assert.GreaterOrEqual(t, resp.Confidence, 0.0)
	assert.InDelta(t, 1.0, resp.Confidence, 1e-9)
}

func TestSourcesDeduplicated(t *testing.T) {
	d := 0.1
	retriever := &fakeRetriever{chunks: []store.Chunk{
		{ID: "1", Content: "a", Distance: &d, Metadata: store.ChunkMetadata{Filename: "plan.pdf", PageNumber: 1, ChunkType: "healthcare_section"}},
		{ID: "2", Content: "b", Distance: &d, Metadata: store.ChunkMetadata{Filename: "plan.pdf", PageNumber: 1, ChunkType: "healthcare_section"}},
		{ID: "3", Content: "c", Distance: &d, Metadata: store.ChunkMetadata{Filename: "plan.pdf", PageNumber: 2, ChunkType: "healthcare_section"}},
	}}

	agent := New(retriever, &fakeGenerator{answer: longAnswer}, &fakeKnowledge{}, nil)
	resp := agent.ProcessQuery(context.Background(), "anything", "general")

	require.Len(t, resp.Sources, 2)
	assert.Equal(t, "plan.pdf", resp.Sources[0].Filename)
	assert.Equal(t, "1", resp.Sources[0].Page)
	assert.Equal(t, "2", resp.Sources[1].Page)
}

func TestRelatedConceptsComeFromKnowledge(t *testing.T) {
	d := 0.1
	retriever := &fakeRetriever{chunks: []store.Chunk{
		{ID: "1", Content: "a", Distance: &d, Metadata: store.ChunkMetadata{
			Filename: "p.pdf", OntologyConcepts: []string{"Premium", "Deductible"},
		}},
	}}
	knowledge := &fakeKnowledge{concepts: []string{"Premium", "Copayment"}}

	agent := New(retriever, &fakeGenerator{answer: longAnswer}, knowledge, nil)
	resp := agent.ProcessQuery(context.Background(), "anything", "healthcare")

	assert.Equal(t, []string{"Premium", "Copayment"}, resp.RelatedConcepts)
	assert.Equal(t, []string{"Premium", "Deductible"}, knowledge.lastConcepts)
}

func TestReasoningStepsOrdered(t *testing.T) {
	retriever := &fakeRetriever{chunks: []store.Chunk{chunkWithDistance("a", 0.1)}}

	agent := New(retriever, &fakeGenerator{answer: longAnswer}, &fakeKnowledge{}, nil)
	resp := agent.ProcessQuery(context.Background(), "anything", "general")

	want := []string{
		"Analyzing query intent and domain",
		"Identified domain: general",
		"Retrieving relevant documents",
		"Retrieved 1 relevant chunks",
		"Analyzing relevance of retrieved content",
		"Filtered to 1 highly relevant chunks",
		"Generating response using AI analysis with ontological reasoning",
		"Generated comprehensive response with ontological insights",
		"Validating response quality",
		"Response validation complete",
	}
	assert.Equal(t, want, resp.ReasoningSteps)
}

func TestIterationCountInMetadata(t *testing.T) {
	agent := New(&fakeRetriever{}, &fakeGenerator{answer: longAnswer}, &fakeKnowledge{}, nil)
	resp := agent.ProcessQuery(context.Background(), "anything", "general")
	assert.Equal(t, 1, resp.Metadata["iteration_count"])
}
