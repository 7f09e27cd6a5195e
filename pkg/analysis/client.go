package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"doc-intel-be/pkg/llm"
	"doc-intel-be/pkg/rag"
	"doc-intel-be/pkg/store"
)

// Client is the reasoning service behind both agents. It degrades instead
// of failing hard: every method returns a usable fallback result alongside
// the error so the caller can continue with partial state.
type Client struct {
	provider  llm.LLMProvider
	llmLogger *log.Logger
}

var _ rag.Generator = &Client{}

func NewClient(provider llm.LLMProvider, llmLogger *log.Logger) *Client {
	return &Client{
		provider:  provider,
		llmLogger: llmLogger,
	}
}

// AnalyzeContent produces a structured analysis of one document's content.
func (c *Client) AnalyzeContent(ctx context.Context, content string, analysisType string) (rag.Analysis, error) {
	fallback := rag.Analysis{
		Summary:    "Analysis failed",
		KeyPoints:  []string{},
		Insights:   []string{},
		Confidence: 0.0,
	}

	response, err := c.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: analysisSystemPrompt(analysisType)},
		{Role: "user", Content: analysisUserPrompt(content)},
	}, llm.WithTemperature(0.2))
	if err != nil {
		c.logf("content analysis failed: %v", err)
		return fallback, c.wrap(ctx, err, "analyze content")
	}

	var result rag.Analysis
	if err := json.Unmarshal([]byte(extractJSON(response)), &result); err != nil {
		c.logf("content analysis returned unparseable output: %v", err)
		return fallback, fmt.Errorf("analyze content: parse model output: %w", rag.ErrGeneration)
	}

	return result, nil
}

// ComparePair compares two document contents with domain-expert framing.
func (c *Client) ComparePair(ctx context.Context, content1, content2 string, pc rag.PairContext) (rag.PairComparison, error) {
	fallback := rag.PairComparison{
		Similarities:    []string{"Both documents contain similar structural information"},
		Differences:     []string{"Documents have distinct content and specific details that vary"},
		KeyInsights:     []string{"A detailed comparison would require access to the full document content"},
		OverallAnalysis: "Unable to perform detailed comparison due to processing limitations. Please try again or ensure documents are properly uploaded.",
		Confidence:      0.3,
	}

	response, err := c.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: comparisonSystemPrompt(pc)},
		{Role: "user", Content: comparisonUserPrompt(content1, content2, pc)},
	}, llm.WithTemperature(0.3)) // lower temperature for more consistent results
	if err != nil {
		c.logf("pair comparison failed: %v", err)
		return fallback, c.wrap(ctx, err, "compare pair")
	}

	var result rag.PairComparison
	if err := json.Unmarshal([]byte(extractJSON(response)), &result); err != nil {
		c.logf("pair comparison returned unparseable output: %v", err)
		return fallback, fmt.Errorf("compare pair: parse model output: %w", rag.ErrGeneration)
	}

	// Complete comparisons earn a confidence boost.
	if len(result.Similarities) > 0 && len(result.Differences) > 0 && result.OverallAnalysis != "" {
		result.Confidence = result.Confidence + 0.1
		if result.Confidence > 0.95 {
			result.Confidence = 0.95
		}
	}

	return result, nil
}

// GenerateGroundedAnswer produces a free-text answer grounded in the given
// chunks, enriched with ontological context.
func (c *Client) GenerateGroundedAnswer(ctx context.Context, query string, chunks []store.EnrichedChunk, domain string) (string, error) {
	response, err := c.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: answerSystemPrompt(domain)},
		{Role: "user", Content: answerUserPrompt(query, chunks)},
	})
	if err != nil {
		c.logf("grounded answer generation failed: %v", err)
		return "Unable to generate insights", c.wrap(ctx, err, "generate answer")
	}

	response = strings.TrimSpace(response)
	if response == "" {
		return "Unable to generate insights", fmt.Errorf("generate answer: empty model output: %w", rag.ErrGeneration)
	}

	return response, nil
}

// wrap classifies a provider failure: cancellation keeps its own kind so
// reasoning logs can tell timeouts apart from model failures.
func (c *Client) wrap(ctx context.Context, err error, op string) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%s: %v: %w", op, err, rag.ErrCanceled)
	}
	return fmt.Errorf("%s: %v: %w", op, err, rag.ErrGeneration)
}

func (c *Client) logf(format string, args ...interface{}) {
	if c.llmLogger != nil {
		c.llmLogger.Printf(format, args...)
	}
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
