package service

import (
	"testing"

	"doc-intel-be/pkg/rag/compare"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineStateToResponse(t *testing.T) {
	state := compare.State{
		DocumentIDs:    []string{"doc-a", "doc-b"},
		ComparisonType: "coverage",
		FocusAreas:     []string{"deductible"},
		LoadedIDs:      []string{"doc-a", "doc-b"},
		Matrix: map[string]compare.PairRecord{
			"doc-a_vs_doc-b": {
				Similarities: []string{"both cover emergencies"},
				Differences:  []string{"different deductibles"},
				Confidence:   0.7,
			},
		},
		Similarities:   []string{"both cover emergencies"},
		Differences:    []string{"different deductibles"},
		FinalInsights:  "COMPARISON SUMMARY: ...",
		ReasoningSteps: []string{"Loaded 2 documents"},
		Confidence:     0.7,
	}

	resp := pipelineStateToResponse(state)

	assert.Equal(t, compare.ComparisonID([]string{"doc-a", "doc-b"}), resp.ComparisonId)
	assert.Equal(t, []string{"doc-a", "doc-b"}, resp.DocumentIds)
	assert.Equal(t, state.Similarities, resp.Similarities)
	assert.Equal(t, state.Differences, resp.Differences)
	assert.Equal(t, state.FinalInsights, resp.Insights)
	assert.Equal(t, 0.7, resp.Confidence)

	require.Contains(t, resp.ComparisonMatrix, "doc-a_vs_doc-b")
	assert.Equal(t, true, resp.Metadata["pipeline"])
	assert.Equal(t, 2, resp.Metadata["documents_analyzed"])
	assert.Equal(t, "coverage", resp.Metadata["comparison_type"])
}
