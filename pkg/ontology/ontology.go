package ontology

// Class is a node in a domain ontology graph.
type Class struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Parents     []string `json:"parents,omitempty"`
}

// Property is a typed relationship or attribute between classes.
type Property struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Domain      string `json:"domain,omitempty"`
	Range       string `json:"range,omitempty"`
}

// Ontology is a complete domain knowledge structure.
type Ontology struct {
	Domain     string              `json:"domain"`
	Namespace  string              `json:"namespace"`
	Classes    map[string]Class    `json:"classes"`
	Properties map[string]Property `json:"properties"`
}

// Info is the listing metadata for an ontology.
type Info struct {
	Domain          string `json:"domain"`
	Namespace       string `json:"namespace"`
	ClassesCount    int    `json:"classes_count"`
	PropertiesCount int    `json:"properties_count"`
}

func healthcareOntology() *Ontology {
	classes := []Class{
		{Name: "Document", Label: "Healthcare Document", Description: "Base class for all healthcare documents"},
		{Name: "Coverage", Label: "Coverage", Description: "Insurance coverage information"},
		{Name: "Benefit", Label: "Benefit", Description: "Healthcare benefit or service"},
		{Name: "Limitation", Label: "Limitation", Description: "Coverage limitation or restriction"},
		{Name: "Exclusion", Label: "Exclusion", Description: "Coverage exclusion"},
		{Name: "Provider", Label: "Healthcare Provider", Description: "Healthcare service provider"},
		{Name: "Condition", Label: "Medical Condition", Description: "Medical condition or diagnosis"},
		{Name: "Treatment", Label: "Medical Treatment", Description: "Medical treatment or procedure"},
		{Name: "Medication", Label: "Medication", Description: "Pharmaceutical medication"},
		{Name: "InsurancePolicy", Label: "Insurance Policy", Description: "Health insurance policy document", Parents: []string{"Document"}},
		{Name: "BenefitsSummary", Label: "Benefits Summary", Description: "Summary of health benefits", Parents: []string{"Document"}},
		{Name: "ClaimForm", Label: "Claim Form", Description: "Insurance claim form", Parents: []string{"Document"}},
		{Name: "MedicalRecord", Label: "Medical Record", Description: "Patient medical record", Parents: []string{"Document"}},
		{Name: "MedicalCoverage", Label: "Medical Coverage", Description: "General medical coverage", Parents: []string{"Coverage"}},
		{Name: "DentalCoverage", Label: "Dental Coverage", Description: "Dental care coverage", Parents: []string{"Coverage"}},
		{Name: "VisionCoverage", Label: "Vision Coverage", Description: "Vision care coverage", Parents: []string{"Coverage"}},
		{Name: "MentalHealthCoverage", Label: "Mental Health Coverage", Description: "Mental health services coverage", Parents: []string{"Coverage"}},
		{Name: "PrescriptionCoverage", Label: "Prescription Coverage", Description: "Prescription drug coverage", Parents: []string{"Coverage"}},
		{Name: "Premium", Label: "Premium", Description: "Recurring cost of maintaining coverage"},
		{Name: "Deductible", Label: "Deductible", Description: "Annual amount paid before coverage begins"},
		{Name: "Copayment", Label: "Copayment", Description: "Fixed amount paid per service"},
		{Name: "Coinsurance", Label: "Coinsurance", Description: "Percentage of costs shared after deductible"},
		{Name: "OutOfPocketMaximum", Label: "Out-of-Pocket Maximum", Description: "Annual cap on member cost sharing"},
	}

	properties := []Property{
		{Name: "hasCoverage", Label: "has coverage", Description: "Document has coverage type", Domain: "Document", Range: "Coverage"},
		{Name: "hasBenefit", Label: "has benefit", Description: "Coverage includes benefit", Domain: "Coverage", Range: "Benefit"},
		{Name: "hasLimitation", Label: "has limitation", Description: "Coverage has limitation", Domain: "Coverage", Range: "Limitation"},
		{Name: "hasExclusion", Label: "has exclusion", Description: "Coverage excludes service", Domain: "Coverage", Range: "Exclusion"},
		{Name: "coversCondition", Label: "covers condition", Description: "Coverage applies to condition", Domain: "Coverage", Range: "Condition"},
		{Name: "coversTreatment", Label: "covers treatment", Description: "Coverage applies to treatment", Domain: "Coverage", Range: "Treatment"},
		{Name: "deductibleAmount", Label: "deductible amount", Description: "Insurance deductible amount", Domain: "Coverage"},
		{Name: "copayAmount", Label: "copay amount", Description: "Copayment amount", Domain: "Benefit"},
		{Name: "coveragePercentage", Label: "coverage percentage", Description: "Percentage of coverage", Domain: "Coverage"},
		{Name: "maximumBenefit", Label: "maximum benefit", Description: "Maximum benefit amount", Domain: "Benefit"},
	}

	return buildOntology("healthcare", "http://example.com/healthcare#", classes, properties)
}

func legalOntology() *Ontology {
	classes := []Class{
		{Name: "Document", Label: "Legal Document", Description: "Base class for all legal documents"},
		{Name: "Contract", Label: "Contract", Description: "Binding agreement between parties", Parents: []string{"Document"}},
		{Name: "Clause", Label: "Clause", Description: "Individual provision within a contract"},
		{Name: "Liability", Label: "Liability", Description: "Legal responsibility or obligation"},
		{Name: "Jurisdiction", Label: "Jurisdiction", Description: "Governing law and venue"},
		{Name: "Party", Label: "Party", Description: "Entity bound by an agreement"},
	}
	properties := []Property{
		{Name: "hasClause", Label: "has clause", Description: "Contract contains clause", Domain: "Contract", Range: "Clause"},
		{Name: "bindsParty", Label: "binds party", Description: "Contract binds party", Domain: "Contract", Range: "Party"},
		{Name: "imposesLiability", Label: "imposes liability", Description: "Clause imposes liability", Domain: "Clause", Range: "Liability"},
	}
	return buildOntology("legal", "http://example.com/legal#", classes, properties)
}

func financialOntology() *Ontology {
	classes := []Class{
		{Name: "Document", Label: "Financial Document", Description: "Base class for all financial documents"},
		{Name: "Investment", Label: "Investment", Description: "Financial instrument or asset position"},
		{Name: "Risk", Label: "Risk", Description: "Exposure to loss or volatility"},
		{Name: "Return", Label: "Return", Description: "Yield or performance of an investment"},
		{Name: "Fee", Label: "Fee", Description: "Cost or expense charged"},
		{Name: "Portfolio", Label: "Portfolio", Description: "Collection of investments"},
	}
	properties := []Property{
		{Name: "holdsInvestment", Label: "holds investment", Description: "Portfolio holds investment", Domain: "Portfolio", Range: "Investment"},
		{Name: "carriesRisk", Label: "carries risk", Description: "Investment carries risk", Domain: "Investment", Range: "Risk"},
		{Name: "generatesReturn", Label: "generates return", Description: "Investment generates return", Domain: "Investment", Range: "Return"},
	}
	return buildOntology("financial", "http://example.com/financial#", classes, properties)
}

func buildOntology(domain, namespace string, classes []Class, properties []Property) *Ontology {
	classMap := make(map[string]Class, len(classes))
	for _, c := range classes {
		classMap[c.Name] = c
	}
	propMap := make(map[string]Property, len(properties))
	for _, p := range properties {
		propMap[p.Name] = p
	}
	return &Ontology{
		Domain:     domain,
		Namespace:  namespace,
		Classes:    classMap,
		Properties: propMap,
	}
}
