package compare

import (
	"doc-intel-be/pkg/rag"
	"doc-intel-be/pkg/store"
)

// PairRecord is one cell of the comparison matrix, keyed by the unordered
// document pair that produced it.
type PairRecord struct {
	Similarities []string `json:"similarities"`
	Differences  []string `json:"differences"`
	Insights     []string `json:"insights"`
	Confidence   float64  `json:"confidence"`
}

// DocumentInfo is the per-document metadata recorded while loading content
// for a comparison. Failed loads get placeholder values.
type DocumentInfo struct {
	Filename     string `json:"filename"`
	Domain       string `json:"domain"`
	DocumentType string `json:"document_type"`
	ChunkCount   int    `json:"chunk_count"`
}

// State carries the evolving pipeline data for the full N-document path.
// Passed by value between steps, same discipline as the query pipeline.
type State struct {
	DocumentIDs    []string
	ComparisonType string
	FocusAreas     []string

	// LoadedIDs preserves load order; DocumentChunks is keyed by id.
	LoadedIDs      []string
	DocumentChunks map[string][]store.Chunk

	Summaries      map[string]rag.Analysis
	Matrix         map[string]PairRecord
	Similarities   []string
	Differences    []string
	KeyInsights    []string
	FinalInsights  string
	ReasoningSteps []string
	Confidence     float64
}

func newState(documentIDs []string, comparisonType string, focusAreas []string) State {
	return State{
		DocumentIDs:    documentIDs,
		ComparisonType: comparisonType,
		FocusAreas:     focusAreas,
		DocumentChunks: make(map[string][]store.Chunk),
		Summaries:      make(map[string]rag.Analysis),
		Matrix:         make(map[string]PairRecord),
		ReasoningSteps: []string{},
	}
}

func (s State) withReasoning(entry string) State {
	s.ReasoningSteps = append(s.ReasoningSteps, entry)
	return s
}

// Response is the comparison result returned to the caller. Always
// well-formed; confidence 0.0 signals total failure.
type Response struct {
	ComparisonID     string                 `json:"comparison_id"`
	DocumentIDs      []string               `json:"document_ids"`
	Similarities     []string               `json:"similarities"`
	Differences      []string               `json:"differences"`
	Insights         string                 `json:"insights"`
	ComparisonMatrix map[string]interface{} `json:"comparison_matrix"`
	Confidence       float64                `json:"confidence"`
	ReasoningSteps   []string               `json:"reasoning_steps"`
	Metadata         map[string]interface{} `json:"metadata"`
}
