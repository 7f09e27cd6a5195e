package ontology

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsightsForMatchesRules(t *testing.T) {
	m := NewManager()

	tests := []struct {
		name          string
		query         string
		wantFragments []string
	}{
		{
			name:          "cost query",
			query:         "How much do I pay for the premium?",
			wantFragments: []string{"FINANCIAL CONTEXT"},
		},
		{
			name:          "deductible and copay",
			query:         "What is the deductible and copay?",
			wantFragments: []string{"DEDUCTIBLE CONTEXT", "COPAYMENT CONTEXT"},
		},
		{
			name:          "comparison query",
			query:         "What is the difference between these plans?",
			wantFragments: []string{"COMPARISON FRAMEWORK"},
		},
		{
			name:          "no match",
			query:         "When was this document written?",
			wantFragments: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.InsightsFor("healthcare", tt.query)
			if tt.wantFragments == nil {
				assert.Empty(t, got)
				return
			}
			for _, fragment := range tt.wantFragments {
				assert.Contains(t, got, fragment)
			}
		})
	}
}

func TestInsightsForCapsAtFour(t *testing.T) {
	m := NewManager()

	// Hits the cost, deductible, copay, comparison and specialist rules.
	query := "pay deductible copay difference specialist emergency hmo"
	got := m.InsightsFor("healthcare", query)

	parts := strings.Split(got, " | ")
	assert.Len(t, parts, 4)
}

func TestInsightsForUnknownDomain(t *testing.T) {
	m := NewManager()
	assert.Empty(t, m.InsightsFor("legal", "what does the deductible clause say"))
	assert.Empty(t, m.InsightsFor("", "premium"))
}

func TestRelatedConcepts(t *testing.T) {
	m := NewManager()

	got := m.RelatedConcepts("healthcare", "how much does a doctor visit cost", nil)

	// Cost rule and service rule both match; capped at 8 total.
	assert.Contains(t, got, "Premium")
	assert.Contains(t, got, "Primary Care")
	assert.LessOrEqual(t, len(got), 8)
}

func TestRelatedConceptsPromotesChunkConcepts(t *testing.T) {
	m := NewManager()

	got := m.RelatedConcepts("healthcare", "what is my deductible",
		[]string{"annual deductible", "parking", "copay tier"})

	assert.Contains(t, got, "Annual Deductible")
	assert.Contains(t, got, "Copay Tier")
	assert.NotContains(t, got, "Parking")
}

func TestRelatedConceptsDeduplicatesAndCaps(t *testing.T) {
	m := NewManager()

	// Matches every concept rule.
	got := m.RelatedConcepts("healthcare", "pay for doctor visit insurance prescription", nil)

	seen := make(map[string]bool)
	for _, concept := range got {
		assert.False(t, seen[concept], "duplicate concept %s", concept)
		seen[concept] = true
	}
	assert.Len(t, got, 8)
}

func TestOntologyForCachesResult(t *testing.T) {
	m := NewManager()

	first := m.OntologyFor("healthcare")
	second := m.OntologyFor("healthcare")

	require.NotNil(t, first)
	assert.Same(t, first, second)
	assert.Nil(t, m.OntologyFor("cooking"))
}

func TestList(t *testing.T) {
	m := NewManager()

	infos := m.List()

	require.Len(t, infos, 3)
	healthcare := infos["healthcare"]
	assert.Equal(t, "healthcare", healthcare.Domain)
	assert.Greater(t, healthcare.ClassesCount, 0)
	assert.Greater(t, healthcare.PropertiesCount, 0)
}

func TestMapConcepts(t *testing.T) {
	m := NewManager()

	mappings := m.MapConcepts("healthcare", []string{"monthly premium", "ER visit", "parking"})

	assert.Equal(t, "healthcare:Premium", mappings["monthly premium"])
	assert.Equal(t, "healthcare:EmergencyService", mappings["ER visit"])
	_, mapped := mappings["parking"]
	assert.False(t, mapped)

	assert.Empty(t, m.MapConcepts("cooking", []string{"recipe"}))
}
