package ontology

import "strings"

// mappingRule binds concept keywords to an ontology class. First match wins.
type mappingRule struct {
	Keywords []string
	Class    string
}

var mappingRules = map[string][]mappingRule{
	"healthcare": {
		{[]string{"premium", "monthly premium", "annual premium"}, "healthcare:Premium"},
		{[]string{"deductible", "annual deductible", "family deductible"}, "healthcare:Deductible"},
		{[]string{"copay", "copayment", "co-pay"}, "healthcare:Copayment"},
		{[]string{"out-of-pocket", "out of pocket", "oop maximum"}, "healthcare:OutOfPocketMaximum"},
		{[]string{"coinsurance", "co-insurance"}, "healthcare:Coinsurance"},
		{[]string{"primary care", "family doctor", "general practitioner"}, "healthcare:PrimaryCareService"},
		{[]string{"specialist", "cardiology", "dermatology", "orthopedic"}, "healthcare:SpecialistService"},
		{[]string{"emergency", "er visit", "urgent care"}, "healthcare:EmergencyService"},
		{[]string{"prescription", "medication", "drug coverage", "pharmacy"}, "healthcare:Medication"},
		{[]string{"hmo", "health maintenance"}, "healthcare:HMO"},
		{[]string{"ppo", "preferred provider"}, "healthcare:PPO"},
		{[]string{"epo", "exclusive provider"}, "healthcare:EPO"},
		{[]string{"high deductible", "hdhp", "hsa"}, "healthcare:HDHP"},
		{[]string{"network", "in-network", "provider network"}, "healthcare:Provider"},
		{[]string{"benefit", "coverage", "covered service"}, "healthcare:Benefit"},
		{[]string{"exclusion", "not covered", "excluded"}, "healthcare:Exclusion"},
		{[]string{"limitation", "limit", "restricted"}, "healthcare:Limitation"},
	},
	"legal": {
		{[]string{"contract", "agreement", "terms"}, "legal:Contract"},
		{[]string{"clause", "provision", "section"}, "legal:Clause"},
		{[]string{"liability", "responsibility", "obligation"}, "legal:Liability"},
		{[]string{"jurisdiction", "governing law", "applicable law"}, "legal:Jurisdiction"},
	},
	"financial": {
		{[]string{"investment", "portfolio", "asset"}, "financial:Investment"},
		{[]string{"risk", "volatility", "exposure"}, "financial:Risk"},
		{[]string{"return", "yield", "performance"}, "financial:Return"},
		{[]string{"fee", "expense", "cost"}, "financial:Fee"},
	},
}

// MapConcepts maps extracted concepts to ontology classes for the domain.
// Concepts with no matching rule are omitted.
func (m *Manager) MapConcepts(domain string, concepts []string) map[string]string {
	rules, ok := mappingRules[domain]
	if !ok {
		return map[string]string{}
	}

	mappings := make(map[string]string)
	for _, concept := range concepts {
		lowered := strings.ToLower(concept)
		for _, rule := range rules {
			if matchAny(lowered, rule.Keywords) {
				mappings[concept] = rule.Class
				break
			}
		}
	}
	return mappings
}
