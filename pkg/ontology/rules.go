package ontology

import "strings"

// InsightRule emits a fixed insight when any of its keywords appears in the
// query. Rules are evaluated in declaration order.
type InsightRule struct {
	Domain   string
	Keywords []string
	Insight  string
}

// ConceptRule contributes related concepts when any of its keywords appears
// in the query.
type ConceptRule struct {
	Domain   string
	Keywords []string
	Concepts []string
}

const (
	maxInsights        = 4
	maxRelatedConcepts = 8
)

var insightRules = []InsightRule{
	{
		Domain:   "healthcare",
		Keywords: []string{"premium", "cost", "price", "pay"},
		Insight:  "FINANCIAL CONTEXT: Premiums are recurring monthly costs. Consider total cost including deductibles and copayments.",
	},
	{
		Domain:   "healthcare",
		Keywords: []string{"deductible"},
		Insight:  "DEDUCTIBLE CONTEXT: Annual amount paid before insurance begins covering costs. Preventive services often exempt.",
	},
	{
		Domain:   "healthcare",
		Keywords: []string{"copay", "copayment"},
		Insight:  "COPAYMENT CONTEXT: Fixed amounts paid per service. Varies by provider type (primary care vs specialist).",
	},
	{
		Domain:   "healthcare",
		Keywords: []string{"compare", "vs", "versus", "difference"},
		Insight:  "COMPARISON FRAMEWORK: Evaluate total annual cost (premiums + expected out-of-pocket) for meaningful comparisons.",
	},
	{
		Domain:   "healthcare",
		Keywords: []string{"primary care", "family doctor"},
		Insight:  "PRIMARY CARE: Usually lowest copayments. Often required for specialist referrals in HMO plans.",
	},
	{
		Domain:   "healthcare",
		Keywords: []string{"specialist", "specialty"},
		Insight:  "SPECIALIST CARE: Higher copayments than primary care. May require referrals depending on plan type.",
	},
	{
		Domain:   "healthcare",
		Keywords: []string{"emergency", "er", "urgent"},
		Insight:  "EMERGENCY CARE: Highest cost-sharing but no referral required. Consider urgent care for non-emergencies.",
	},
	{
		Domain:   "healthcare",
		Keywords: []string{"hmo", "ppo", "plan type"},
		Insight:  "PLAN TYPES: HMO requires referrals but lower costs. PPO offers flexibility but higher premiums.",
	},
}

var conceptRules = []ConceptRule{
	{
		Domain:   "healthcare",
		Keywords: []string{"cost", "price", "money", "pay", "premium", "deductible"},
		Concepts: []string{"Premium", "Deductible", "Copayment", "Coinsurance", "Out-of-Pocket Maximum"},
	},
	{
		Domain:   "healthcare",
		Keywords: []string{"visit", "doctor", "service", "care"},
		Concepts: []string{"Primary Care", "Specialist Care", "Emergency Services", "Preventive Care"},
	},
	{
		Domain:   "healthcare",
		Keywords: []string{"plan", "insurance", "coverage", "benefit"},
		Concepts: []string{"HMO", "PPO", "EPO", "Benefits", "Provider Network"},
	},
	{
		Domain:   "healthcare",
		Keywords: []string{"prescription", "drug", "medication", "pharmacy"},
		Concepts: []string{"Generic Drugs", "Brand Drugs", "Formulary", "Pharmacy Network"},
	},
}

// Chunk concepts matching any of these terms are promoted into the related
// set alongside the rule-derived concepts.
var promotedConceptTerms = []string{"premium", "deductible", "copay"}

func matchAny(lowered string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
