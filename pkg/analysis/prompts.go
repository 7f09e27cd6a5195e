package analysis

import (
	"fmt"
	"strings"

	"doc-intel-be/pkg/rag"
	"doc-intel-be/pkg/store"
)

const analystBasePrompt = "You are an expert document analyst with deep knowledge across multiple domains."

func analysisSystemPrompt(analysisType string) string {
	switch analysisType {
	case "healthcare":
		return analystBasePrompt + " Specialize in healthcare documents, insurance policies, medical records, and healthcare terminology."
	case "legal":
		return analystBasePrompt + " Specialize in legal documents, contracts, agreements, and legal terminology."
	case "financial":
		return analystBasePrompt + " Specialize in financial documents, reports, investment materials, and financial terminology."
	default:
		return analystBasePrompt + " Analyze documents with general expertise across multiple domains."
	}
}

func analysisUserPrompt(content string) string {
	var b strings.Builder
	b.WriteString("Analyze the following content:\n\n")
	b.WriteString(content)
	b.WriteString("\n\nProvide a comprehensive analysis with:\n")
	b.WriteString("1. A clear summary\n")
	b.WriteString("2. Key points extracted from the content\n")
	b.WriteString("3. Important insights and implications\n")
	b.WriteString("4. Confidence score (0.0 to 1.0)\n\n")
	b.WriteString("Focus on actionable insights and important details that would be valuable for understanding and comparison.\n\n")
	b.WriteString(`Respond with JSON in the exact format:
{
    "summary": "...",
    "key_points": ["..."],
    "insights": ["..."],
    "confidence": 0.9
}`)
	return b.String()
}

var comparisonExpertise = map[string]string{
	"healthcare": "healthcare insurance expert specializing in plan comparisons, coverage analysis, and patient cost evaluation",
	"legal":      "legal document analyst with expertise in contract comparison and regulatory compliance",
	"financial":  "financial analyst specializing in investment comparison and risk assessment",
}

func comparisonSystemPrompt(pc rag.PairContext) string {
	expertRole, ok := comparisonExpertise[pc.Domain]
	if !ok {
		expertRole = "document analysis expert"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a %s providing human-like document comparison analysis.\n\n", expertRole)
	b.WriteString("Your goal is to help someone understand the practical differences between these documents in a way that's:\n")
	b.WriteString("- Specific and detailed (use exact values, percentages, amounts)\n")
	b.WriteString("- Human-like and conversational (as if explaining to a friend)\n")
	b.WriteString("- Actionable (what does this mean for the person's decisions?)\n")
	b.WriteString("- Focused on what matters most in real life\n\n")
	fmt.Fprintf(&b, "Ontological Context: %s\n\n", pc.OntologyContext)
	b.WriteString("When comparing, emphasize:\n")
	b.WriteString("- Specific numeric differences (costs, percentages, limits)\n")
	b.WriteString("- Practical implications (\"This means you would pay $X more per year\")\n")
	b.WriteString("- Real-world scenarios (\"If you visit a specialist monthly, this difference would cost you...\")\n")
	b.WriteString("- Clear recommendations based on different needs or situations\n")
	return b.String()
}

func comparisonUserPrompt(content1, content2 string, pc rag.PairContext) string {
	doc1Name := pc.Document1Name
	if doc1Name == "" {
		doc1Name = "Document 1"
	}
	doc2Name := pc.Document2Name
	if doc2Name == "" {
		doc2Name = "Document 2"
	}

	var b strings.Builder
	b.WriteString("Please compare these two documents in a detailed, human-like way:\n\n")
	fmt.Fprintf(&b, "**%s:**\n%s\n\n", doc1Name, truncate(content1, 2000))
	fmt.Fprintf(&b, "**%s:**\n%s\n\n", doc2Name, truncate(content2, 2000))
	if len(pc.FocusAreas) > 0 {
		fmt.Fprintf(&b, "Pay special attention to these areas: %s\n\n", strings.Join(pc.FocusAreas, ", "))
	}
	b.WriteString(`Provide your analysis in this format:

**SIMILARITIES** (3-5 specific points):
- Use exact details from both documents
- Explain what these similarities mean practically

**DIFFERENCES** (3-7 specific points):
- Include specific numbers, percentages, or amounts
- Explain the real-world impact of each difference

**KEY INSIGHTS** (2-4 actionable insights):
- What do these differences actually mean for someone choosing between these options?
- Which document might be better for different types of people or situations?

**OVERALL ANALYSIS** (2-3 sentences):
- Summary of which document offers what advantages
- Bottom-line recommendation or key consideration

Be specific, use actual numbers from the documents, and explain things in everyday language.

Respond with JSON in the exact format:
{
    "similarities": ["..."],
    "differences": ["..."],
    "key_insights": ["..."],
    "overall_analysis": "...",
    "confidence": 0.9
}`)
	return b.String()
}

var answerExpertise = map[string]string{
	"healthcare": "healthcare insurance, medical coverage, patient financial responsibilities, and insurance plan structures",
	"legal":      "legal documents, contracts, regulatory compliance, and legal terminology",
	"financial":  "financial analysis, investments, risk assessment, and financial planning",
}

func answerSystemPrompt(domain string) string {
	expertiseArea, ok := answerExpertise[domain]
	if !ok {
		expertiseArea = "general document analysis"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert analyst specializing in %s.\n", expertiseArea)
	b.WriteString("Your expertise includes understanding complex relationships between concepts and providing intelligent, contextual insights.\n\n")
	b.WriteString("Guidelines:\n")
	b.WriteString("- Use the ontological context to provide deeper understanding\n")
	b.WriteString("- Explain relationships between concepts (e.g., how premiums relate to deductibles)\n")
	b.WriteString("- Provide practical implications and actionable advice\n")
	b.WriteString("- Base answers strictly on the provided context\n")
	b.WriteString("- Include specific values and exact references from documents\n")
	b.WriteString("- If information is missing, clearly state what additional information would be helpful\n")
	b.WriteString("- Structure responses with clear sections for better readability\n")
	return b.String()
}

func answerUserPrompt(query string, chunks []store.EnrichedChunk) string {
	var contextParts []string
	ontologyContext := ""

	limit := len(chunks)
	if limit > 5 { // top 5 chunks only
		limit = 5
	}
	for _, chunk := range chunks[:limit] {
		if chunk.OntologyContext != "" && ontologyContext == "" {
			ontologyContext = chunk.OntologyContext
		}
		if chunk.Content == "" {
			continue
		}
		sourceInfo := fmt.Sprintf("Source: %s (Page %d)", chunk.Metadata.Filename, chunk.Metadata.PageNumber)
		contextParts = append(contextParts, sourceInfo+"\n"+chunk.Content)
	}

	var b strings.Builder
	b.WriteString("ONTOLOGICAL CONTEXT:\n")
	b.WriteString(ontologyContext)
	b.WriteString("\n\nDOCUMENT CONTEXT:\n")
	b.WriteString(strings.Join(contextParts, "\n\n---\n\n"))
	fmt.Fprintf(&b, "\n\nUSER QUESTION: %s\n\n", query)
	b.WriteString(`Using your expertise and the ontological context, provide a comprehensive response that includes:

**DIRECT ANSWER:**
- Clear answer to the user's question with specific details from documents

**CONTEXTUAL INSIGHTS:**
- Relationships between concepts and practical implications
- Important considerations or trade-offs

**SOURCE REFERENCES:**
- Exact document and page references for all information

**RECOMMENDATIONS:**
- Actionable advice based on the information
- What to look for or consider next

Format your response clearly and use the ontological context to provide more intelligent explanations.`)
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
