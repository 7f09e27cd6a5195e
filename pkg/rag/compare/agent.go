package compare

import (
	"context"
	"fmt"
	"hash/fnv"
	"log"
	"sort"
	"strings"

	"doc-intel-be/pkg/rag"
	"doc-intel-be/pkg/store"
)

const (
	// Per-document content cap for the direct comparison prompt.
	maxDirectContentChars = 3000

	// Report lists are capped in the synthesized summary.
	maxReportItems = 10
)

// Comparison-type section filters for the full pipeline. Types without an
// entry keep every chunk.
var sectionTerms = map[string][]string{
	"coverage": {"coverage", "benefit", "limit", "exclusion"},
	"terms":    {"term", "condition", "definition", "clause"},
}

type step struct {
	name string
	run  func(ctx context.Context, s State) (State, error)
}

// Agent performs cross-document comparative analysis. CompareDocuments is
// the public two-document path; RunPipeline is the full N-document path
// behind it. Both share the never-raises contract of the query agent.
type Agent struct {
	retriever rag.Retriever
	generator rag.Generator
	knowledge rag.Knowledge
	llmLogger *log.Logger
	steps     []step
}

func New(retriever rag.Retriever, generator rag.Generator, knowledge rag.Knowledge, llmLogger *log.Logger) *Agent {
	a := &Agent{
		retriever: retriever,
		generator: generator,
		knowledge: knowledge,
		llmLogger: llmLogger,
	}
	a.steps = []step{
		{"document loading", a.loadDocuments},
		{"section extraction", a.extractKeySections},
		{"document analysis", a.performAnalysis},
		{"comparison matrix", a.createComparisonMatrix},
		{"insight aggregation", a.aggregateInsights},
		{"synthesis", a.synthesizeResults},
	}
	return a
}

// CompareDocuments runs the simplified direct comparison between the first
// two documents that load successfully.
func (a *Agent) CompareDocuments(ctx context.Context, documentIDs []string, comparisonType string, focusAreas []string) (response Response) {
	defer func() {
		if r := recover(); r != nil {
			a.logf("panic during comparison: %v", r)
			response = Response{
				ComparisonID:     "error",
				DocumentIDs:      documentIDs,
				Similarities:     []string{},
				Differences:      []string{},
				Insights:         fmt.Sprintf("Error performing comparison: %v", r),
				ComparisonMatrix: map[string]interface{}{},
				Confidence:       0.0,
				ReasoningSteps:   []string{fmt.Sprintf("Error: %v", r)},
				Metadata:         map[string]interface{}{"error": fmt.Sprintf("%v", r)},
			}
		}
	}()

	reasoning := []string{"Starting comprehensive document analysis"}

	// Load and truncate content per document. A failed load is recorded
	// with empty content so the comparison can still proceed; a document
	// with zero chunks is skipped entirely.
	var loadedIDs []string
	contents := make(map[string]string)
	metadata := make(map[string]DocumentInfo)

	for _, docID := range documentIDs {
		chunks, err := a.retriever.ChunksForDocument(ctx, docID)
		if err != nil {
			a.logf("could not load document %s: %v", docID, err)
			loadedIDs = append(loadedIDs, docID)
			contents[docID] = ""
			metadata[docID] = DocumentInfo{Filename: "Unknown", Domain: "unknown"}
			continue
		}
		if len(chunks) == 0 {
			continue
		}

		var parts []string
		for _, chunk := range chunks {
			parts = append(parts, chunk.Content)
		}
		loadedIDs = append(loadedIDs, docID)
		contents[docID] = truncate(strings.Join(parts, "\n\n"), maxDirectContentChars)

		meta := chunks[0].Metadata
		metadata[docID] = DocumentInfo{
			Filename:     orDefault(meta.Filename, "Unknown"),
			Domain:       orDefault(meta.Domain, "unknown"),
			DocumentType: orDefault(meta.DocumentType, "unknown"),
			ChunkCount:   len(chunks),
		}
		reasoning = append(reasoning, fmt.Sprintf("Loaded %d chunks from %s", len(chunks), metadata[docID].Filename))
	}

	if len(loadedIDs) < 2 {
		reasoning = append(reasoning, "Insufficient documents for comparison")
		return Response{
			ComparisonID:     "insufficient_docs",
			DocumentIDs:      documentIDs,
			Similarities:     []string{"Not enough documents available for comparison"},
			Differences:      []string{"Cannot compare with fewer than 2 documents"},
			Insights:         "Comparison requires at least 2 documents with readable content.",
			ComparisonMatrix: map[string]interface{}{"error": "insufficient_documents"},
			Confidence:       0.0,
			ReasoningSteps:   reasoning,
			Metadata:         map[string]interface{}{"error": "insufficient_documents"},
		}
	}

	// Direct path compares the first two loaded documents.
	doc1, doc2 := loadedIDs[0], loadedIDs[1]
	reasoning = append(reasoning, "Analyzing documents with AI comparison engine")

	domain := metadata[doc1].Domain
	if domain == "" {
		domain = "general"
	}

	ontologyContext := ""
	if a.knowledge.HasDomain(domain) {
		ontologyContext = fmt.Sprintf("Domain: %s, Focus areas: %s", domain, strings.Join(focusAreas, ", "))
	}

	result, err := a.generator.ComparePair(ctx, contents[doc1], contents[doc2], rag.PairContext{
		Domain:          domain,
		ComparisonType:  comparisonType,
		Document1Name:   metadata[doc1].Filename,
		Document2Name:   metadata[doc2].Filename,
		FocusAreas:      focusAreas,
		OntologyContext: ontologyContext,
	})
	if err != nil {
		// The generator already returned a degraded fallback result.
		a.logf("direct comparison degraded: %v", err)
	}

	reasoning = append(reasoning,
		"Generated AI-powered comparison analysis",
		"Enhanced insights with ontological context",
		"Completed comprehensive document comparison",
	)

	similarities := result.Similarities
	if len(similarities) == 0 {
		similarities = []string{"Documents share common structural elements"}
	}
	differences := result.Differences
	if len(differences) == 0 {
		differences = []string{"Documents have distinct characteristics"}
	}

	return Response{
		ComparisonID: ComparisonID(documentIDs),
		DocumentIDs:  documentIDs,
		Similarities: similarities,
		Differences:  differences,
		Insights:     enhancedInsights(metadata[doc1].Filename, metadata[doc2].Filename, domain, focusAreas, result),
		ComparisonMatrix: map[string]interface{}{
			"comparison_type": comparisonType,
			"method":          "ai_enhanced",
			"documents": map[string]DocumentInfo{
				doc1: metadata[doc1],
				doc2: metadata[doc2],
			},
			"focus_areas":      focusAreas,
			"ontology_context": ontologyContext,
		},
		Confidence:     result.Confidence,
		ReasoningSteps: reasoning,
		Metadata: map[string]interface{}{
			"comparison_type":    comparisonType,
			"focus_areas":        focusAreas,
			"documents_analyzed": len(loadedIDs),
			"domain":             domain,
			"ai_enhanced":        true,
		},
	}
}

// RunPipeline executes the full N-document comparison pipeline and returns
// its final state. Each step is a failure boundary, identical policy to the
// query pipeline.
func (a *Agent) RunPipeline(ctx context.Context, documentIDs []string, comparisonType string, focusAreas []string) (final State) {
	state := newState(documentIDs, comparisonType, focusAreas)

	defer func() {
		if r := recover(); r != nil {
			a.logf("panic during comparison pipeline: %v", r)
			state.FinalInsights = fmt.Sprintf("Error during comparison: %v", r)
			state.Confidence = 0.0
			state = state.withReasoning(fmt.Sprintf("Error: %v", r))
			final = state
		}
	}()

	for _, st := range a.steps {
		a.logf("executing step: %s", st.name)
		next, err := st.run(ctx, state)
		if err != nil {
			a.logf("step %s failed: %v", st.name, err)
			next = next.withReasoning(fmt.Sprintf("Error in %s: %v", st.name, err))
		}
		state = next
	}

	return state
}

func (a *Agent) loadDocuments(ctx context.Context, s State) (State, error) {
	s = s.withReasoning("Loading documents for comparison")

	for _, docID := range s.DocumentIDs {
		chunks, err := a.retriever.ChunksForDocument(ctx, docID)
		if err != nil {
			return s, fmt.Errorf("%w: load document %s: %v", rag.ErrRetrieval, docID, err)
		}
		s.LoadedIDs = append(s.LoadedIDs, docID)
		s.DocumentChunks[docID] = chunks
		s = s.withReasoning(fmt.Sprintf("Loaded %d chunks from document %s", len(chunks), docID))
	}

	return s, nil
}

// extractKeySections keeps chunks relevant to the comparison type. A
// non-empty focus-area list further requires at least one focus keyword in
// the chunk text, checked before the type filter.
func (a *Agent) extractKeySections(ctx context.Context, s State) (State, error) {
	s = s.withReasoning("Extracting key sections for comparison")

	terms, typeFiltered := sectionTerms[s.ComparisonType]

	for _, docID := range s.LoadedIDs {
		var sections []store.Chunk
		for _, chunk := range s.DocumentChunks[docID] {
			lowered := strings.ToLower(chunk.Content)

			if len(s.FocusAreas) > 0 && !containsAnyFold(lowered, s.FocusAreas) {
				continue
			}
			if typeFiltered && !containsAny(lowered, terms) {
				continue
			}
			sections = append(sections, chunk)
		}
		s.DocumentChunks[docID] = sections
	}

	s = s.withReasoning("Extracted relevant sections from all documents")
	return s, nil
}

func (a *Agent) performAnalysis(ctx context.Context, s State) (State, error) {
	s = s.withReasoning("Performing detailed document analysis")

	for _, docID := range s.LoadedIDs {
		var parts []string
		for _, chunk := range s.DocumentChunks[docID] {
			parts = append(parts, chunk.Content)
		}

		analysis, err := a.generator.AnalyzeContent(ctx, strings.Join(parts, "\n\n"), "comparative")
		if err != nil {
			// Degraded fallback analysis still gets stored.
			a.logf("analysis of document %s degraded: %v", docID, err)
		}
		s.Summaries[docID] = analysis
	}

	s = s.withReasoning("Completed individual document analysis")
	return s, nil
}

// createComparisonMatrix issues one comparison per unordered document pair,
// sequentially in pair order.
func (a *Agent) createComparisonMatrix(ctx context.Context, s State) (State, error) {
	s = s.withReasoning("Creating comparison matrix")

	if len(s.LoadedIDs) < 2 {
		return s, fmt.Errorf("%w: need at least 2 documents, got %d", rag.ErrInsufficientInput, len(s.LoadedIDs))
	}

	texts := make(map[string]string, len(s.LoadedIDs))
	for _, docID := range s.LoadedIDs {
		var parts []string
		for _, chunk := range s.DocumentChunks[docID] {
			parts = append(parts, chunk.Content)
		}
		texts[docID] = strings.Join(parts, "\n")
	}

	for i := 0; i < len(s.LoadedIDs); i++ {
		for j := i + 1; j < len(s.LoadedIDs); j++ {
			doc1, doc2 := s.LoadedIDs[i], s.LoadedIDs[j]

			result, err := a.generator.ComparePair(ctx, texts[doc1], texts[doc2], rag.PairContext{
				ComparisonType: s.ComparisonType,
			})
			if err != nil {
				a.logf("pairwise comparison %s vs %s degraded: %v", doc1, doc2, err)
			}

			s.Matrix[fmt.Sprintf("%s_vs_%s", doc1, doc2)] = PairRecord{
				Similarities: result.Similarities,
				Differences:  result.Differences,
				Insights:     result.KeyInsights,
				Confidence:   result.Confidence,
			}
		}
	}

	s = s.withReasoning(fmt.Sprintf("Completed %d pairwise comparisons", len(s.Matrix)))
	return s, nil
}

// aggregateInsights unions the pairwise lists into three deduplicated sets.
func (a *Agent) aggregateInsights(ctx context.Context, s State) (State, error) {
	s = s.withReasoning("Generating comprehensive insights")

	keys := make([]string, 0, len(s.Matrix))
	for key := range s.Matrix {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var similarities, differences, insights []string
	for _, key := range keys {
		record := s.Matrix[key]
		similarities = append(similarities, record.Similarities...)
		differences = append(differences, record.Differences...)
		insights = append(insights, record.Insights...)
	}

	s.Similarities = dedupe(similarities)
	s.Differences = dedupe(differences)
	s.KeyInsights = dedupe(insights)

	s = s.withReasoning("Aggregated insights from all comparisons")
	return s, nil
}

// synthesizeResults formats the final report and averages the pairwise
// confidences.
func (a *Agent) synthesizeResults(ctx context.Context, s State) (State, error) {
	s = s.withReasoning("Synthesizing final results")

	var report strings.Builder
	report.WriteString("COMPARISON SUMMARY:\n\n")
	report.WriteString(fmt.Sprintf("Key Similarities (%d found):\n", len(s.Similarities)))
	report.WriteString(bulletList(s.Similarities))
	report.WriteString(fmt.Sprintf("\n\nKey Differences (%d found):\n", len(s.Differences)))
	report.WriteString(bulletList(s.Differences))
	report.WriteString(fmt.Sprintf("\n\nImportant Insights (%d identified):\n", len(s.KeyInsights)))
	report.WriteString(bulletList(s.KeyInsights))
	report.WriteString(fmt.Sprintf("\n\nThis comparison analyzed %d documents across multiple dimensions.", len(s.DocumentIDs)))

	total := 0.0
	for _, record := range s.Matrix {
		total += record.Confidence
	}
	if len(s.Matrix) > 0 {
		s.Confidence = total / float64(len(s.Matrix))
	} else {
		s.Confidence = 0.0
	}

	s.FinalInsights = report.String()
	s = s.withReasoning("Synthesis complete")
	return s, nil
}

func enhancedInsights(doc1Name, doc2Name, domain string, focusAreas []string, result rag.PairComparison) string {
	takeaways := strings.Join(result.KeyInsights, " ")
	if takeaways == "" {
		takeaways = "This comparison reveals important similarities and differences that could impact your decision-making."
	}

	focus := strings.Join(focusAreas, ", ")
	if focus == "" {
		focus = "the key areas of variation"
	}

	var b strings.Builder
	b.WriteString("**Comparison Summary:**\n")
	b.WriteString(fmt.Sprintf("Comparing %q and %q (%s documents)\n\n", doc1Name, doc2Name, domain))
	b.WriteString(result.OverallAnalysis)
	b.WriteString("\n\n**Key Takeaways:**\n")
	b.WriteString(takeaways)
	b.WriteString("\n\n**Recommendation:**\n")
	b.WriteString(fmt.Sprintf("Review the specific differences highlighted above, particularly focusing on %s to make an informed choice between these options.", focus))
	return b.String()
}

// ComparisonID derives a deterministic correlation id from the document id
// list. Not collision-free, only used for response correlation.
func ComparisonID(documentIDs []string) string {
	h := fnv.New32a()
	h.Write([]byte(strings.Join(documentIDs, "")))
	return fmt.Sprintf("comp_%d", h.Sum32())
}

func bulletList(items []string) string {
	if len(items) > maxReportItems {
		items = items[:maxReportItems]
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("- %s", item)
	}
	return strings.Join(lines, "\n")
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := []string{}
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		result = append(result, item)
	}
	return result
}

func containsAny(lowered string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}

func containsAnyFold(lowered string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lowered, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func (a *Agent) logf(format string, args ...interface{}) {
	if a.llmLogger != nil {
		a.llmLogger.Printf(format, args...)
	}
}
