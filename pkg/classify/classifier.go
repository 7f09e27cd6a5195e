package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"doc-intel-be/pkg/llm"
	"doc-intel-be/pkg/store"
)

// Domains the system understands. Anything else maps to general.
const (
	DomainHealthcare = "healthcare"
	DomainLegal      = "legal"
	DomainFinancial  = "financial"
	DomainAcademic   = "academic"
	DomainGeneral    = "general"
)

// Classifier assigns a domain and document type to incoming documents.
// With a provider it asks the model for a structured classification and
// falls back to keyword scoring when the model output is unusable. Without
// a provider it scores keywords directly.
type Classifier struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewClassifier(provider llm.LLMProvider, logger *log.Logger) *Classifier {
	return &Classifier{
		provider: provider,
		logger:   logger,
	}
}

const classifySystemPrompt = `You are an expert document classifier with knowledge across multiple domains.
Analyze the provided document content and classify it accurately.

DOMAINS to choose from:
- healthcare: Medical documents, insurance policies, health records, treatment plans
- legal: Contracts, agreements, legal documents, terms and conditions
- financial: Financial reports, investment documents, banking information, budgets
- academic: Research papers, educational content, academic reports
- general: Other document types

Extract key entities relevant to the domain (e.g., for healthcare: coverage types, medical conditions).
Return confidence as a float between 0.0 and 1.0.`

// Classify never returns an error; on any failure it degrades to the
// keyword heuristic so ingestion keeps moving.
func (c *Classifier) Classify(ctx context.Context, filename, text string) store.Classification {
	if c.provider == nil {
		return c.heuristic(filename, text)
	}

	result, err := c.classifyWithModel(ctx, filename, text)
	if err != nil {
		if c.logger != nil {
			c.logger.Printf("classification via model failed, using heuristic: %v", err)
		}
		return c.heuristic(filename, text)
	}
	return result
}

func (c *Classifier) classifyWithModel(ctx context.Context, filename, text string) (store.Classification, error) {
	sample := text
	if len(sample) > 2000 {
		sample = sample[:2000]
	}

	var prompt strings.Builder
	prompt.WriteString("Classify the following document:\n\n")
	prompt.WriteString(fmt.Sprintf("Filename: %s\n", filename))
	prompt.WriteString(fmt.Sprintf("Text sample: %s\n\n", sample))
	prompt.WriteString(`Respond with JSON in the exact format:
{
    "domain": "healthcare|legal|financial|academic|general",
    "document_type": "specific_document_type",
    "confidence": 0.95,
    "key_entities": ["entity1", "entity2"]
}`)

	response, err := c.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: classifySystemPrompt},
		{Role: "user", Content: prompt.String()},
	}, llm.WithTemperature(0.1))
	if err != nil {
		return store.Classification{}, fmt.Errorf("classification request: %w", err)
	}

	var result store.Classification
	if err := json.Unmarshal([]byte(extractJSON(response)), &result); err != nil {
		return store.Classification{}, fmt.Errorf("parse classification: %w", err)
	}

	if !validDomain(result.Domain) {
		result.Domain = DomainGeneral
	}
	if result.DocumentType == "" {
		result.DocumentType = "unknown"
	}
	if result.Confidence < 0 || result.Confidence > 1 {
		result.Confidence = 0.5
	}
	return result, nil
}

func validDomain(domain string) bool {
	switch domain {
	case DomainHealthcare, DomainLegal, DomainFinancial, DomainAcademic, DomainGeneral:
		return true
	}
	return false
}

// extractJSON isolates JSON content from response
func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return response
	}

	return response[startIdx : endIdx+1]
}
