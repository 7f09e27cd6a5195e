package compare

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
	docs map[string][]store.Chunk
	errs map[string]error
}

func (f *fakeRetriever) RetrieveSimilar(ctx context.Context, query, domainFilter string, topK int) ([]store.Chunk, error) {
	return nil, nil
}

func (f *fakeRetriever) ChunksForDocument(ctx context.Context, documentID string) ([]store.Chunk, error) {
	if err, ok := f.errs[documentID]; ok {
		return nil, err
	}
	return f.docs[documentID], nil
}

type pairCall struct {
	content1 string
	content2 string
	pc       rag.PairContext
}

type fakeGenerator struct {
	pairResults []rag.PairComparison
	pairErr     error
	pairCalls   []pairCall
	analysis    rag.Analysis
}

func (f *fakeGenerator) AnalyzeContent(ctx context.Context, content, analysisType string) (rag.Analysis, error) {
	return f.analysis, nil
}

func (f *fakeGenerator) ComparePair(ctx context.Context, c1, c2 string, pc rag.PairContext) (rag.PairComparison, error) {
	f.pairCalls = append(f.pairCalls, pairCall{content1: c1, content2: c2, pc: pc})
	if f.pairErr != nil {
		return rag.PairComparison{
			Similarities:    []string{"fallback similarity"},
			Differences:     []string{"fallback difference"},
			KeyInsights:     []string{"fallback insight"},
			OverallAnalysis: "fallback analysis",
			Confidence:      0.3,
		}, f.pairErr
	}
	idx := len(f.pairCalls) - 1
	if idx >= len(f.pairResults) {
		idx = len(f.pairResults) - 1
	}
	return f.pairResults[idx], nil
}

func (f *fakeGenerator) GenerateGroundedAnswer(ctx context.Context, query string, chunks []store.EnrichedChunk, domain string) (string, error) {
	return "", nil
}

type fakeKnowledge struct{}

func (fakeKnowledge) InsightsFor(domain, query string) string { return "" }

func (fakeKnowledge) RelatedConcepts(domain, query string, chunkConcepts []string) []string {
	return nil
}

func (fakeKnowledge) HasDomain(domain string) bool {
	return domain == "healthcare" || domain == "legal" || domain == "financial"
}

func docChunks(filename, domain string, contents ...string) []store.Chunk {
	chunks := make([]store.Chunk, len(contents))
	for i, content := range contents {
		chunks[i] = store.Chunk{
			ID:      fmt.Sprintf("%s-%d", filename, i),
			Content: content,
			Metadata: store.ChunkMetadata{
				Filename:     filename,
				Domain:       domain,
				DocumentType: "policy",
			},
		}
	}
	return chunks
}

func singlePairGenerator(confidence float64) *fakeGenerator {
	return &fakeGenerator{pairResults: []rag.PairComparison{{
		Similarities:    []string{"both cover dental"},
		Differences:     []string{"premiums differ"},
		KeyInsights:     []string{"plan A is cheaper"},
		OverallAnalysis: "Plan A offers better value overall.",
		Confidence:      confidence,
	}}}
}

func TestCompareDocumentsDirect(t *testing.T) {
	retriever := &fakeRetriever{docs: map[string][]store.Chunk{
		"doc-a": docChunks("planA.pdf", "healthcare", "Premium: $200", "Deductible: $1000"),
		"doc-b": docChunks("planB.pdf", "healthcare", "Premium: $250"),
	}}
	generator := singlePairGenerator(0.8)

	agent := New(retriever, generator, fakeKnowledge{}, nil)
	resp := agent.CompareDocuments(context.Background(), []string{"doc-a", "doc-b"}, "coverage", []string{"premiums"})

	assert.InDelta(t, 0.8, resp.Confidence, 1e-9)
	assert.Equal(t, []string{"both cover dental"}, resp.Similarities)
	assert.Equal(t, []string{"premiums differ"}, resp.Differences)
	assert.True(t, strings.HasPrefix(resp.ComparisonID, "comp_"))
	assert.Contains(t, resp.Insights, `"planA.pdf"`)
	assert.Contains(t, resp.Insights, "Plan A offers better value overall.")
	assert.Contains(t, resp.Insights, "plan A is cheaper")
	assert.Contains(t, resp.Insights, "premiums")
	assert.Equal(t, 2, resp.Metadata["documents_analyzed"])
	assert.Equal(t, "healthcare", resp.Metadata["domain"])
	assert.Equal(t, "ai_enhanced", resp.ComparisonMatrix["method"])

	require.Len(t, generator.pairCalls, 1)
	call := generator.pairCalls[0]
	assert.Equal(t, "planA.pdf", call.pc.Document1Name)
	assert.Equal(t, "planB.pdf", call.pc.Document2Name)
	assert.Contains(t, call.pc.OntologyContext, "Domain: healthcare")
	assert.Contains(t, call.pc.OntologyContext, "premiums")
}

func TestCompareDocumentsInsufficient(t *testing.T) {
	retriever := &fakeRetriever{docs: map[string][]store.Chunk{
		"doc-a": docChunks("only.pdf", "healthcare", "some text"),
	}}
	generator := singlePairGenerator(0.8)

	agent := New(retriever, generator, fakeKnowledge{}, nil)
	resp := agent.CompareDocuments(context.Background(), []string{"doc-a", "doc-missing"}, "coverage", nil)

	assert.Equal(t, "insufficient_docs", resp.ComparisonID)
	assert.Equal(t, 0.0, resp.Confidence)
	assert.Equal(t, []string{"Not enough documents available for comparison"}, resp.Similarities)
	assert.Equal(t, "Comparison requires at least 2 documents with readable content.", resp.Insights)
	assert.Equal(t, "insufficient_documents", resp.ComparisonMatrix["error"])
	assert.Contains(t, resp.ReasoningSteps, "Insufficient documents for comparison")
	assert.Empty(t, generator.pairCalls)
}

func TestCompareDocumentsFailedLoadStillCounts(t *testing.T) {
	// A load error records the document with empty content; it still
	// counts toward the two-document minimum.
	retriever := &fakeRetriever{
		docs: map[string][]store.Chunk{
			"doc-a": docChunks("planA.pdf", "healthcare", "Premium: $200"),
		},
		errs: map[string]error{"doc-b": errors.New("backend down")},
	}
	generator := singlePairGenerator(0.7)

	agent := New(retriever, generator, fakeKnowledge{}, nil)
	resp := agent.CompareDocuments(context.Background(), []string{"doc-a", "doc-b"}, "general", nil)

	assert.InDelta(t, 0.7, resp.Confidence, 1e-9)
	require.Len(t, generator.pairCalls, 1)
	assert.Equal(t, "", generator.pairCalls[0].content2)
	assert.Equal(t, "Unknown", generator.pairCalls[0].pc.Document2Name)
}

func TestCompareDocumentsTruncatesContent(t *testing.T) {
	long := strings.Repeat("a", 5000)
	retriever := &fakeRetriever{docs: map[string][]store.Chunk{
		"doc-a": docChunks("a.pdf", "general", long),
		"doc-b": docChunks("b.pdf", "general", "short"),
	}}
	generator := singlePairGenerator(0.5)

	agent := New(retriever, generator, fakeKnowledge{}, nil)
	agent.CompareDocuments(context.Background(), []string{"doc-a", "doc-b"}, "general", nil)

	require.Len(t, generator.pairCalls, 1)
	assert.Len(t, generator.pairCalls[0].content1, 3000)
}

func TestCompareDocumentsDefaultsForEmptyResult(t *testing.T) {
	retriever := &fakeRetriever{docs: map[string][]store.Chunk{
		"doc-a": docChunks("a.pdf", "general", "text one"),
		"doc-b": docChunks("b.pdf", "general", "text two"),
	}}
	generator := &fakeGenerator{pairResults: []rag.PairComparison{{Confidence: 0.4}}}

	agent := New(retriever, generator, fakeKnowledge{}, nil)
	resp := agent.CompareDocuments(context.Background(), []string{"doc-a", "doc-b"}, "general", nil)

	assert.Equal(t, []string{"Documents share common structural elements"}, resp.Similarities)
	assert.Equal(t, []string{"Documents have distinct characteristics"}, resp.Differences)
	assert.Contains(t, resp.Insights, "the key areas of variation")
	assert.Contains(t, resp.Insights, "This comparison reveals important similarities and differences")
}

func TestComparisonIDDeterministic(t *testing.T) {
	assert.Equal(t, ComparisonID([]string{"a", "b"}), ComparisonID([]string{"a", "b"}))
	assert.NotEqual(t, ComparisonID([]string{"a", "b"}), ComparisonID([]string{"b", "c"}))
}

func TestPipelineMatrixSize(t *testing.T) {
	docs := map[string][]store.Chunk{}
	var ids []string
	for i := 0; i < 4; i++ {
		id := fmt.Sprintf("doc-%d", i)
		ids = append(ids, id)
		docs[id] = docChunks(id+".pdf", "general", "content "+id)
	}
	retriever := &fakeRetriever{docs: docs}
	generator := singlePairGenerator(0.8)

	agent := New(retriever, generator, fakeKnowledge{}, nil)
	state := agent.RunPipeline(context.Background(), ids, "general", nil)

	assert.Len(t, state.Matrix, 6)
	assert.Contains(t, state.Matrix, "doc-0_vs_doc-1")
	assert.Contains(t, state.Matrix, "doc-2_vs_doc-3")
	assert.Len(t, generator.pairCalls, 6)
}

func TestPipelineMeanConfidence(t *testing.T) {
	retriever := &fakeRetriever{docs: map[string][]store.Chunk{
		"a": docChunks("a.pdf", "general", "alpha"),
		"b": docChunks("b.pdf", "general", "beta"),
		"c": docChunks("c.pdf", "general", "gamma"),
	}}
	generator := &fakeGenerator{pairResults: []rag.PairComparison{
		{Confidence: 0.6, Similarities: []string{"s1"}, Differences: []string{"d1"}},
		{Confidence: 0.8, Similarities: []string{"s2"}, Differences: []string{"d2"}},
		{Confidence: 1.0, Similarities: []string{"s3"}, Differences: []string{"d3"}},
	}}

	agent := New(retriever, generator, fakeKnowledge{}, nil)
	state := agent.RunPipeline(context.Background(), []string{"a", "b", "c"}, "general", nil)

	assert.InDelta(t, 0.8, state.Confidence, 1e-9)
}

func TestPipelineSingleDocumentShortCircuits(t *testing.T) {
	retriever := &fakeRetriever{docs: map[string][]store.Chunk{
		"a": docChunks("a.pdf", "general", "alpha"),
	}}
	generator := singlePairGenerator(0.8)

	agent := New(retriever, generator, fakeKnowledge{}, nil)
	state := agent.RunPipeline(context.Background(), []string{"a"}, "general", nil)

	assert.Empty(t, state.Matrix)
	assert.Equal(t, 0.0, state.Confidence)
	assert.Empty(t, generator.pairCalls)

	found := false
	for _, entry := range state.ReasoningSteps {
		if strings.HasPrefix(entry, "Error in comparison matrix") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestPipelineSectionFilterByType(t *testing.T) {
	retriever := &fakeRetriever{docs: map[string][]store.Chunk{
		"a": docChunks("a.pdf", "healthcare",
			"Coverage includes annual checkups and benefits",
			"The office address is 123 Main Street"),
		"b": docChunks("b.pdf", "healthcare", "Exclusion: cosmetic procedures"),
	}}
	generator := singlePairGenerator(0.8)

	agent := New(retriever, generator, fakeKnowledge{}, nil)
	state := agent.RunPipeline(context.Background(), []string{"a", "b"}, "coverage", nil)

	require.Len(t, state.DocumentChunks["a"], 1)
	assert.Contains(t, state.DocumentChunks["a"][0].Content, "Coverage includes")
	assert.Len(t, state.DocumentChunks["b"], 1)
}

func TestPipelineFocusAreaPreFilter(t *testing.T) {
	retriever := &fakeRetriever{docs: map[string][]store.Chunk{
		"a": docChunks("a.pdf", "healthcare",
			"Coverage includes dental benefits",
			"Coverage includes vision benefits"),
		"b": docChunks("b.pdf", "healthcare", "Dental coverage with a benefit limit"),
	}}
	generator := singlePairGenerator(0.8)

	agent := New(retriever, generator, fakeKnowledge{}, nil)
	state := agent.RunPipeline(context.Background(), []string{"a", "b"}, "coverage", []string{"dental"})

	require.Len(t, state.DocumentChunks["a"], 1)
	assert.Contains(t, state.DocumentChunks["a"][0].Content, "dental")
}

func TestPipelineStructureTypeKeepsAllChunks(t *testing.T) {
	retriever := &fakeRetriever{docs: map[string][]store.Chunk{
		"a": docChunks("a.pdf", "general", "anything at all", "more text"),
		"b": docChunks("b.pdf", "general", "unrelated content"),
	}}
	generator := singlePairGenerator(0.8)

	agent := New(retriever, generator, fakeKnowledge{}, nil)
	state := agent.RunPipeline(context.Background(), []string{"a", "b"}, "structure", nil)

	assert.Len(t, state.DocumentChunks["a"], 2)
	assert.Len(t, state.DocumentChunks["b"], 1)
}

func TestPipelineAggregationDeduplicates(t *testing.T) {
	retriever := &fakeRetriever{docs: map[string][]store.Chunk{
		"a": docChunks("a.pdf", "general", "alpha"),
		"b": docChunks("b.pdf", "general", "beta"),
		"c": docChunks("c.pdf", "general", "gamma"),
	}}
	generator := &fakeGenerator{pairResults: []rag.PairComparison{
		{Similarities: []string{"shared clause", "same premium"}, Differences: []string{"d1"}, KeyInsights: []string{"i1"}, Confidence: 0.5},
		{Similarities: []string{"shared clause"}, Differences: []string{"d2"}, KeyInsights: []string{"i1"}, Confidence: 0.5},
		{Similarities: []string{"shared clause"}, Differences: []string{"d1"}, KeyInsights: []string{"i2"}, Confidence: 0.5},
	}}

	agent := New(retriever, generator, fakeKnowledge{}, nil)
	state := agent.RunPipeline(context.Background(), []string{"a", "b", "c"}, "general", nil)

	assert.ElementsMatch(t, []string{"shared clause", "same premium"}, state.Similarities)
	assert.ElementsMatch(t, []string{"d1", "d2"}, state.Differences)
	assert.ElementsMatch(t, []string{"i1", "i2"}, state.KeyInsights)
}

func TestPipelineSynthesisReport(t *testing.T) {
	retriever := &fakeRetriever{docs: map[string][]store.Chunk{
		"a": docChunks("a.pdf", "general", "alpha"),
		"b": docChunks("b.pdf", "general", "beta"),
	}}
	generator := singlePairGenerator(0.8)

	agent := New(retriever, generator, fakeKnowledge{}, nil)
	state := agent.RunPipeline(context.Background(), []string{"a", "b"}, "general", nil)

	assert.Contains(t, state.FinalInsights, "COMPARISON SUMMARY:")
	assert.Contains(t, state.FinalInsights, "Key Similarities (1 found):")
	assert.Contains(t, state.FinalInsights, "- both cover dental")
	assert.Contains(t, state.FinalInsights, "Key Differences (1 found):")
	assert.Contains(t, state.FinalInsights, "Important Insights (1 identified):")
	assert.Contains(t, state.FinalInsights, "analyzed 2 documents")
	assert.Contains(t, state.ReasoningSteps, "Synthesis complete")
}

func TestPipelineReportCapsListsAtTen(t *testing.T) {
	var sims []string
	for i := 0; i < 15; i++ {
		sims = append(sims, fmt.Sprintf("similarity %02d", i))
	}
	retriever := &fakeRetriever{docs: map[string][]store.Chunk{
		"a": docChunks("a.pdf", "general", "alpha"),
		"b": docChunks("b.pdf", "general", "beta"),
	}}
	generator := &fakeGenerator{pairResults: []rag.PairComparison{{
		Similarities: sims,
		Confidence:   0.5,
	}}}

	agent := New(retriever, generator, fakeKnowledge{}, nil)
	state := agent.RunPipeline(context.Background(), []string{"a", "b"}, "general", nil)

	assert.Contains(t, state.FinalInsights, "Key Similarities (15 found):")
	assert.Contains(t, state.FinalInsights, "similarity 09")
	assert.NotContains(t, state.FinalInsights, "similarity 10")
}

func TestPipelineLoadFailureDegrades(t *testing.T) {
	retriever := &fakeRetriever{errs: map[string]error{"a": errors.New("backend down")}}
	generator := singlePairGenerator(0.8)

	agent := New(retriever, generator, fakeKnowledge{}, nil)
	state := agent.RunPipeline(context.Background(), []string{"a", "b"}, "general", nil)

	assert.Equal(t, 0.0, state.Confidence)

	found := false
	for _, entry := range state.ReasoningSteps {
		if strings.HasPrefix(entry, "Error in document loading") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestPipelineDegradedPairStillStored(t *testing.T) {
	retriever := &fakeRetriever{docs: map[string][]store.Chunk{
		"a": docChunks("a.pdf", "general", "alpha"),
		"b": docChunks("b.pdf", "general", "beta"),
	}}
	generator := &fakeGenerator{pairErr: fmt.Errorf("compare pair: %w", rag.ErrGeneration)}

	agent := New(retriever, generator, fakeKnowledge{}, nil)
	state := agent.RunPipeline(context.Background(), []string{"a", "b"}, "general", nil)

	require.Len(t, state.Matrix, 1)
	assert.InDelta(t, 0.3, state.Confidence, 1e-9)
	assert.Equal(t, []string{"fallback similarity"}, state.Similarities)
}
