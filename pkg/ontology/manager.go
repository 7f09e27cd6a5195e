package ontology

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Manager serves domain ontologies and answers the knowledge lookups the
// agents make. Lookups are pure keyword matching; they never fail and an
// unknown domain yields empty results.
type Manager struct {
	cache *gocache.Cache
}

var builders = map[string]func() *Ontology{
	"healthcare": healthcareOntology,
	"legal":      legalOntology,
	"financial":  financialOntology,
}

func NewManager() *Manager {
	return &Manager{
		cache: gocache.New(time.Hour, 10*time.Minute),
	}
}

// OntologyFor returns the ontology graph for a domain, nil if the domain has
// none. Built graphs are cached.
func (m *Manager) OntologyFor(domain string) *Ontology {
	if cached, found := m.cache.Get(domain); found {
		return cached.(*Ontology)
	}

	builder, ok := builders[domain]
	if !ok {
		return nil
	}

	ont := builder()
	m.cache.Set(domain, ont, gocache.DefaultExpiration)
	return ont
}

// HasDomain reports whether an ontology exists for the domain.
func (m *Manager) HasDomain(domain string) bool {
	_, ok := builders[domain]
	return ok
}

// List returns metadata for every available ontology.
func (m *Manager) List() map[string]Info {
	result := make(map[string]Info, len(builders))
	for domain := range builders {
		ont := m.OntologyFor(domain)
		result[domain] = Info{
			Domain:          domain,
			Namespace:       ont.Namespace,
			ClassesCount:    len(ont.Classes),
			PropertiesCount: len(ont.Properties),
		}
	}
	return result
}

// InsightsFor evaluates the insight rules for the domain against the query,
// keeping at most maxInsights matches joined with " | ".
func (m *Manager) InsightsFor(domain string, query string) string {
	lowered := strings.ToLower(query)

	var insights []string
	for _, rule := range insightRules {
		if rule.Domain != domain {
			continue
		}
		if matchAny(lowered, rule.Keywords) {
			insights = append(insights, rule.Insight)
		}
		if len(insights) == maxInsights {
			break
		}
	}

	return strings.Join(insights, " | ")
}

// RelatedConcepts merges rule-derived concepts with matching concepts from
// the retrieved chunks, deduplicated in rule order, capped at
// maxRelatedConcepts.
func (m *Manager) RelatedConcepts(domain string, query string, chunkConcepts []string) []string {
	lowered := strings.ToLower(query)

	seen := make(map[string]bool)
	var related []string
	add := func(concept string) {
		if concept == "" || seen[concept] {
			return
		}
		seen[concept] = true
		related = append(related, concept)
	}

	for _, rule := range conceptRules {
		if rule.Domain != domain {
			continue
		}
		if matchAny(lowered, rule.Keywords) {
			for _, concept := range rule.Concepts {
				add(concept)
			}
		}
	}

	// Promote chunk concepts naming cost structures.
	limit := len(chunkConcepts)
	if limit > 10 {
		limit = 10
	}
	for _, concept := range chunkConcepts[:limit] {
		if matchAny(strings.ToLower(concept), promotedConceptTerms) {
			add(titleCase(concept))
		}
	}

	if len(related) > maxRelatedConcepts {
		related = related[:maxRelatedConcepts]
	}
	return related
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
