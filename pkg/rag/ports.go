package rag

import (
	"context"

	"doc-intel-be/pkg/store"
)

// Analysis is a structured single-document analysis produced by the
// reasoning service.
type Analysis struct {
	Summary    string   `json:"summary"`
	KeyPoints  []string `json:"key_points"`
	Insights   []string `json:"insights"`
	Confidence float64  `json:"confidence"`
}

// PairComparison is a structured pairwise comparison produced by the
// reasoning service.
type PairComparison struct {
	Similarities    []string `json:"similarities"`
	Differences     []string `json:"differences"`
	KeyInsights     []string `json:"key_insights"`
	OverallAnalysis string   `json:"overall_analysis"`
	Confidence      float64  `json:"confidence"`
}

// PairContext carries domain, naming and focus hints for a pairwise
// comparison prompt. All fields optional.
type PairContext struct {
	Domain          string
	ComparisonType  string
	Document1Name   string
	Document2Name   string
	FocusAreas      []string
	OntologyContext string
}

// Retriever is the vector-store port used by both agents.
type Retriever interface {
	// RetrieveSimilar returns up to topK chunks ranked by similarity to the
	// query. domainFilter narrows the search when non-empty.
	RetrieveSimilar(ctx context.Context, query string, domainFilter string, topK int) ([]store.Chunk, error)

	// ChunksForDocument returns every chunk of a document in index order.
	ChunksForDocument(ctx context.Context, documentID string) ([]store.Chunk, error)
}

// Generator is the reasoning-service port. Implementations must degrade
// rather than fail hard: on unusable model output they return a fallback
// result together with an error wrapping ErrGeneration.
type Generator interface {
	// AnalyzeContent produces a structured analysis of a single document's
	// content. analysisType selects the domain framing of the prompt.
	AnalyzeContent(ctx context.Context, content string, analysisType string) (Analysis, error)

	// ComparePair compares the contents of two documents.
	ComparePair(ctx context.Context, content1, content2 string, pc PairContext) (PairComparison, error)

	// GenerateGroundedAnswer produces a free-text answer to the query
	// grounded in the given chunks.
	GenerateGroundedAnswer(ctx context.Context, query string, chunks []store.EnrichedChunk, domain string) (string, error)
}

// Knowledge is the domain-knowledge port. Lookups are pure and fast; they
// never fail, an unknown domain simply yields empty results.
type Knowledge interface {
	// InsightsFor returns a compact domain-insight string for the query,
	// empty when no rule matches.
	InsightsFor(domain string, query string) string

	// RelatedConcepts returns concepts related to the query, merged with
	// matching concepts already attached to the retrieved chunks.
	RelatedConcepts(domain string, query string, chunkConcepts []string) []string

	// HasDomain reports whether domain knowledge exists for the domain.
	HasDomain(domain string) bool
}
