package agent

import "doc-intel-be/pkg/store"

// State carries the evolving query-pipeline data. It is passed by value
// between steps; each step returns its successor state, so a failed step
// leaves the previous state intact.
type State struct {
	Query           string
	Domain          string
	RetrievedChunks []store.Chunk
	FinalResponse   string
	ReasoningSteps  []string
	Confidence      float64
	RelatedConcepts []string
	InsightsFound   bool
	IterationCount  int
}

func newState(query, domainHint string) State {
	return State{
		Query:          query,
		Domain:         domainHint,
		ReasoningSteps: []string{},
	}
}

func (s State) withReasoning(entry string) State {
	s.ReasoningSteps = append(s.ReasoningSteps, entry)
	return s
}

// Response is the query result returned to the caller. Always well-formed;
// confidence is the failure signal.
type Response struct {
	Answer          string                 `json:"answer"`
	Sources         []store.Source         `json:"sources"`
	Confidence      float64                `json:"confidence"`
	ReasoningSteps  []string               `json:"reasoning_steps"`
	RelatedConcepts []string               `json:"related_concepts"`
	Metadata        map[string]interface{} `json:"metadata"`
}
