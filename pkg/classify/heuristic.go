package classify

import (
	"sort"
	"strings"

	"doc-intel-be/pkg/store"
)

// Keyword indicators per domain. Weights favor terms that rarely appear
// outside their domain (e.g. "deductible" over "terms").
var domainIndicators = map[string]map[string]int{
	DomainHealthcare: {
		"insurance": 2, "coverage": 2, "medical": 2, "health": 2,
		"deductible": 3, "copay": 3, "copayment": 3, "premium": 2,
		"patient": 2, "treatment": 1, "diagnosis": 2, "prescription": 2,
		"hmo": 3, "ppo": 3, "provider network": 3,
	},
	DomainLegal: {
		"contract": 2, "legal": 2, "agreement": 2, "terms": 1,
		"clause": 3, "liability": 2, "jurisdiction": 3, "hereinafter": 3,
		"party": 1, "obligation": 2, "warranty": 2, "indemnify": 3,
	},
	DomainFinancial: {
		"financial": 2, "investment": 2, "portfolio": 2, "budget": 2,
		"revenue": 2, "asset": 2, "dividend": 3, "interest rate": 2,
		"balance sheet": 3, "fiscal": 2, "equity": 2, "yield": 2,
	},
	DomainAcademic: {
		"abstract": 2, "methodology": 3, "hypothesis": 3, "research": 2,
		"literature review": 3, "citation": 2, "findings": 1, "thesis": 3,
	},
}

// Document types per domain, each detected by its own keywords.
var typeIndicators = map[string][]struct {
	docType  string
	keywords []string
}{
	DomainHealthcare: {
		{"insurance_policy", []string{"policy", "insured", "coverage"}},
		{"benefits_summary", []string{"summary of benefits", "benefits summary"}},
		{"medical_record", []string{"medical record", "patient history"}},
		{"treatment_plan", []string{"treatment plan", "care plan"}},
	},
	DomainLegal: {
		{"contract", []string{"contract", "agreement between"}},
		{"terms_of_service", []string{"terms of service", "terms and conditions"}},
		{"legal_brief", []string{"brief", "court", "plaintiff"}},
	},
	DomainFinancial: {
		{"financial_report", []string{"financial report", "quarterly report", "annual report"}},
		{"investment_portfolio", []string{"portfolio", "holdings"}},
		{"bank_statement", []string{"statement", "account balance"}},
		{"budget", []string{"budget"}},
	},
	DomainAcademic: {
		{"research_paper", []string{"abstract", "references"}},
		{"thesis", []string{"thesis", "dissertation"}},
	},
}

// heuristic scores domain keywords over the lowered text. Confidence grows
// with the winning score but never reaches model-level certainty.
func (c *Classifier) heuristic(filename, text string) store.Classification {
	lowered := strings.ToLower(text + " " + filename)

	scores := make(map[string]int, len(domainIndicators))
	for domain, indicators := range domainIndicators {
		for keyword, weight := range indicators {
			scores[domain] += weight * strings.Count(lowered, keyword)
		}
	}

	bestDomain := DomainGeneral
	bestScore := 0
	// Deterministic winner on ties.
	domains := make([]string, 0, len(scores))
	for d := range scores {
		domains = append(domains, d)
	}
	sort.Strings(domains)
	for _, d := range domains {
		if scores[d] > bestScore {
			bestDomain = d
			bestScore = scores[d]
		}
	}

	confidence := 0.0
	if bestScore > 0 {
		confidence = 0.4 + 0.05*float64(bestScore)
		if confidence > 0.9 {
			confidence = 0.9
		}
	}

	return store.Classification{
		Domain:       bestDomain,
		DocumentType: detectType(bestDomain, lowered),
		Confidence:   confidence,
		KeyEntities:  matchedEntities(bestDomain, lowered),
	}
}

func detectType(domain, lowered string) string {
	for _, candidate := range typeIndicators[domain] {
		for _, keyword := range candidate.keywords {
			if strings.Contains(lowered, keyword) {
				return candidate.docType
			}
		}
	}
	if domain == DomainGeneral {
		return "unknown"
	}
	return "document"
}

func matchedEntities(domain, lowered string) []string {
	var entities []string
	keywords := make([]string, 0, len(domainIndicators[domain]))
	for keyword := range domainIndicators[domain] {
		keywords = append(keywords, keyword)
	}
	sort.Strings(keywords)
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			entities = append(entities, keyword)
		}
	}
	return entities
}
