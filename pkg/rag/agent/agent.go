package agent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"doc-intel-be/pkg/rag"
	"doc-intel-be/pkg/store"
)

const (
	topK                = 10
	distanceThreshold   = 2.0
	starvationKeepCount = 3
	maxChunksKept       = 5
)

// Domain keyword sets checked in this fixed order; first match wins.
var domainKeywords = []struct {
	domain   string
	keywords []string
}{
	{"healthcare", []string{"insurance", "coverage", "medical", "health"}},
	{"legal", []string{"contract", "legal", "agreement", "terms"}},
	{"financial", []string{"financial", "investment", "portfolio", "budget"}},
}

type step struct {
	name string
	run  func(ctx context.Context, s State) (State, error)
}

// Agent answers queries through a fixed five-step pipeline. Each step is a
// failure boundary: its error is logged into the reasoning trail and the
// pipeline continues with partial state. ProcessQuery never fails; a
// confidence of 0.0 signals total degradation.
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
		{"query analysis", a.analyzeQuery},
		{"document retrieval", a.retrieveDocuments},
		{"relevance analysis", a.analyzeRelevance},
		{"response generation", a.generateResponse},
		{"response validation", a.validateResponse},
	}
	return a
}

// ProcessQuery runs the pipeline. domainHint, when non-empty, skips domain
// detection.
func (a *Agent) ProcessQuery(ctx context.Context, query, domainHint string) (response Response) {
	// Never let anything escape to the caller.
	defer func() {
		if r := recover(); r != nil {
			a.logf("panic during query processing: %v", r)
			response = Response{
				Answer:          fmt.Sprintf("Error processing query: %v", r),
				Sources:         []store.Source{},
				Confidence:      0.0,
				ReasoningSteps:  []string{"Error occurred during processing"},
				RelatedConcepts: []string{},
				Metadata:        map[string]interface{}{"error": fmt.Sprintf("%v", r)},
			}
		}
	}()

	state := newState(query, domainHint)

	for _, st := range a.steps {
		a.logf("executing step: %s", st.name)
		next, err := st.run(ctx, state)
		if err != nil {
			a.logf("step %s failed: %v", st.name, err)
			next = next.withReasoning(fmt.Sprintf("Error in %s: %v", st.name, err))
		}
		state = next
	}

	return Response{
		Answer:          state.FinalResponse,
		Sources:         extractSources(state.RetrievedChunks),
		Confidence:      state.Confidence,
		ReasoningSteps:  state.ReasoningSteps,
		RelatedConcepts: state.RelatedConcepts,
		Metadata: map[string]interface{}{
			"iteration_count": state.IterationCount,
			"chunks_analyzed": len(state.RetrievedChunks),
			"domain":          state.Domain,
		},
	}
}

// analyzeQuery resolves the domain, from the hint or by keyword matching.
func (a *Agent) analyzeQuery(ctx context.Context, s State) (State, error) {
	s = s.withReasoning("Analyzing query intent and domain")

	if s.Domain == "" {
		s.Domain = detectDomain(s.Query)
	}

	s = s.withReasoning(fmt.Sprintf("Identified domain: %s", s.Domain))
	s.IterationCount++
	return s, nil
}

func detectDomain(query string) string {
	lowered := strings.ToLower(query)
	for _, set := range domainKeywords {
		for _, keyword := range set.keywords {
			if strings.Contains(lowered, keyword) {
				return set.domain
			}
		}
	}
	return "general"
}

// retrieveDocuments pulls the raw candidate chunks.
func (a *Agent) retrieveDocuments(ctx context.Context, s State) (State, error) {
	s = s.withReasoning("Retrieving relevant documents")

	chunks, err := a.retriever.RetrieveSimilar(ctx, s.Query, s.Domain, topK)
	if err != nil {
		return s, fmt.Errorf("%w: %v", rag.ErrRetrieval, err)
	}

	s.RetrievedChunks = chunks
	s = s.withReasoning(fmt.Sprintf("Retrieved %d relevant chunks", len(chunks)))
	return s, nil
}

// analyzeRelevance drops distant chunks but never starves generation: if
// every chunk fails the threshold, the first 3 are kept anyway. The
// surviving set is capped at 5.
func (a *Agent) analyzeRelevance(ctx context.Context, s State) (State, error) {
	s = s.withReasoning("Analyzing relevance of retrieved content")

	var relevant []store.Chunk
	for _, chunk := range s.RetrievedChunks {
		if chunk.Distance == nil || *chunk.Distance < distanceThreshold {
			relevant = append(relevant, chunk)
		}
	}

	if len(relevant) == 0 && len(s.RetrievedChunks) > 0 {
		keep := starvationKeepCount
		if keep > len(s.RetrievedChunks) {
			keep = len(s.RetrievedChunks)
		}
		relevant = s.RetrievedChunks[:keep]
	}

	s = s.withReasoning(fmt.Sprintf("Filtered to %d highly relevant chunks", len(relevant)))

	if len(relevant) > maxChunksKept {
		relevant = relevant[:maxChunksKept]
	}
	s.RetrievedChunks = relevant
	return s, nil
}

// generateResponse enriches the surviving chunks with knowledge-lookup
// context and asks the generator for the grounded answer.
func (a *Agent) generateResponse(ctx context.Context, s State) (State, error) {
	s = s.withReasoning("Generating response using AI analysis with ontological reasoning")

	var chunkConcepts []string
	for _, chunk := range s.RetrievedChunks {
		chunkConcepts = append(chunkConcepts, chunk.Metadata.OntologyConcepts...)
	}

	insights := a.knowledge.InsightsFor(s.Domain, s.Query)
	s.InsightsFound = insights != ""

	enriched := make([]store.EnrichedChunk, len(s.RetrievedChunks))
	for i, chunk := range s.RetrievedChunks {
		enriched[i] = store.EnrichedChunk{Chunk: chunk, OntologyContext: insights}
	}

	s.RelatedConcepts = a.knowledge.RelatedConcepts(s.Domain, s.Query, chunkConcepts)

	answer, err := a.generator.GenerateGroundedAnswer(ctx, s.Query, enriched, s.Domain)
	if err != nil {
		s.FinalResponse = fmt.Sprintf("Error generating response: %v", err)
		s.Confidence = 0.0
		return s, err
	}

	base := float64(len(s.RetrievedChunks)) * 0.2
	if base > 1.0 {
		base = 1.0
	}
	boost := 0.0
	if s.InsightsFound {
		boost = 0.1
	}
	confidence := base + boost
	if confidence > 1.0 {
		confidence = 1.0
	}

	s.FinalResponse = answer
	s.Confidence = confidence
	s = s.withReasoning("Generated comprehensive response with ontological insights")
	return s, nil
}

// validateResponse applies the two multiplicative confidence penalties.
// Confidence never increases here.
func (a *Agent) validateResponse(ctx context.Context, s State) (State, error) {
	s = s.withReasoning("Validating response quality")

	if len(s.FinalResponse) < 50 {
		s.Confidence *= 0.5
		s = s.withReasoning("Response seems short, reduced confidence")
	}

	if strings.Contains(strings.ToLower(s.FinalResponse), "error") {
		s.Confidence *= 0.3
		s = s.withReasoning("Error detected in response, reduced confidence")
	}

	s = s.withReasoning("Response validation complete")
	return s, nil
}

// extractSources lists the distinct filename/page pairs behind the answer,
// in chunk order.
func extractSources(chunks []store.Chunk) []store.Source {
	sources := []store.Source{}
	seen := make(map[string]bool)

	for _, chunk := range chunks {
		filename := chunk.Metadata.Filename
		if filename == "" {
			filename = "unknown"
		}
		key := fmt.Sprintf("%s_%d", filename, chunk.Metadata.PageNumber)
		if seen[key] {
			continue
		}
		seen[key] = true
		sources = append(sources, store.Source{
			Filename:  filename,
			Page:      fmt.Sprintf("%d", chunk.Metadata.PageNumber),
			ChunkType: chunk.Metadata.ChunkType,
		})
	}

	return sources
}

func (a *Agent) logf(format string, args ...interface{}) {
	if a.llmLogger != nil {
		a.llmLogger.Printf(format, args...)
	}
}
