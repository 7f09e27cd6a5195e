package chunking

import (
	"regexp"
	"sort"
	"strings"

	"doc-intel-be/pkg/ontology"
	"doc-intel-be/pkg/store"
	"doc-intel-be/pkg/utils"
)

// Chunk is a unit of ingested text before embedding and persistence.
type Chunk struct {
	Content          string
	ChunkType        string
	PageNumber       int
	Position         int
	OntologyConcepts []string
}

// Page is a page of extracted document text.
type Page struct {
	Number int
	Text   string
}

// Chunker splits extracted document text into retrievable units using a
// domain-specific strategy, then tags each chunk with ontology concepts.
type Chunker struct {
	chunkSize int
	overlap   int
}

func NewChunker(chunkSize, overlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap}
}

var healthcareSectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\n\s*(?:COVERAGE|BENEFITS|LIMITATIONS|EXCLUSIONS|DEFINITIONS).*?\n`),
	regexp.MustCompile(`(?i)\n\s*(?:Section|Article|Part)\s+\d+.*?\n`),
	regexp.MustCompile(`\n\s*\d+\.\s+[A-Z][^.]*\n`),
}

var legalClausePattern = regexp.MustCompile(`\n\s*\d+\.\s+`)

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// ChunkDocument chunks every page with the strategy of the classified
// domain and tags concepts. ont may be nil.
func (c *Chunker) ChunkDocument(pages []Page, classification store.Classification, ont *ontology.Ontology) []Chunk {
	var chunks []Chunk

	for _, page := range pages {
		text := strings.TrimSpace(page.Text)
		if text == "" {
			continue
		}

		var pageChunks []Chunk
		switch classification.Domain {
		case "healthcare":
			pageChunks = c.chunkHealthcare(text, page.Number)
		case "legal":
			pageChunks = c.chunkLegal(text, page.Number)
		case "financial":
			pageChunks = c.chunkFinancial(text, page.Number)
		default:
			pageChunks = c.chunkGeneral(text, page.Number)
		}
		chunks = append(chunks, pageChunks...)
	}

	tagConcepts(chunks, classification, ont)
	return chunks
}

// chunkHealthcare splits on coverage/section headings, then breaks large
// sections down by paragraph.
func (c *Chunker) chunkHealthcare(text string, pageNumber int) []Chunk {
	sections := splitByPatterns(text, healthcareSectionPatterns)

	var chunks []Chunk
	for i, section := range sections {
		section = strings.TrimSpace(section)
		if len(section) < 50 { // skip very short sections
			continue
		}

		if len(section) > c.chunkSize {
			for j, sub := range c.splitLargeSection(section) {
				chunks = append(chunks, Chunk{
					Content:    sub,
					ChunkType:  "healthcare_section",
					PageNumber: pageNumber,
					Position:   i*100 + j,
				})
			}
		} else {
			chunks = append(chunks, Chunk{
				Content:    section,
				ChunkType:  "healthcare_section",
				PageNumber: pageNumber,
				Position:   i,
			})
		}
	}
	return chunks
}

// chunkLegal splits on numbered clauses.
func (c *Chunker) chunkLegal(text string, pageNumber int) []Chunk {
	clauses := legalClausePattern.Split(text, -1)

	var chunks []Chunk
	for i, clause := range clauses {
		clause = strings.TrimSpace(clause)
		if len(clause) < 30 {
			continue
		}
		chunks = append(chunks, Chunk{
			Content:    clause,
			ChunkType:  "legal_clause",
			PageNumber: pageNumber,
			Position:   i,
		})
	}
	return chunks
}

// chunkFinancial splits on blank-line paragraphs.
func (c *Chunker) chunkFinancial(text string, pageNumber int) []Chunk {
	paragraphs := strings.Split(text, "\n\n")

	var chunks []Chunk
	for i, paragraph := range paragraphs {
		paragraph = strings.TrimSpace(paragraph)
		if len(paragraph) < 50 {
			continue
		}
		chunks = append(chunks, Chunk{
			Content:    paragraph,
			ChunkType:  "financial_paragraph",
			PageNumber: pageNumber,
			Position:   i,
		})
	}
	return chunks
}

// chunkGeneral accumulates sentences up to chunkSize.
func (c *Chunker) chunkGeneral(text string, pageNumber int) []Chunk {
	sentences := sentenceBoundary.Split(text, -1)

	var chunks []Chunk
	var current strings.Builder
	position := 0

	flush := func() {
		content := strings.TrimSpace(current.String())
		if content == "" {
			return
		}
		chunks = append(chunks, Chunk{
			Content:    content,
			ChunkType:  "text_paragraph",
			PageNumber: pageNumber,
			Position:   position,
		})
		position++
		current.Reset()
	}

	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if current.Len()+len(sentence) > c.chunkSize {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sentence)
	}
	flush()

	return chunks
}

// splitByPatterns splits text by each pattern in turn, dropping blank parts.
func splitByPatterns(text string, patterns []*regexp.Regexp) []string {
	sections := []string{text}
	for _, pattern := range patterns {
		var next []string
		for _, section := range sections {
			for _, part := range pattern.Split(section, -1) {
				if strings.TrimSpace(part) != "" {
					next = append(next, part)
				}
			}
		}
		sections = next
	}
	return sections
}

// splitLargeSection breaks an oversized section on paragraph boundaries,
// falling back to a character window for a single huge paragraph.
func (c *Chunker) splitLargeSection(text string) []string {
	paragraphs := strings.Split(text, "\n\n")

	var parts []string
	var current strings.Builder

	flush := func() {
		content := strings.TrimSpace(current.String())
		if content != "" {
			parts = append(parts, content)
		}
		current.Reset()
	}

	for _, paragraph := range paragraphs {
		if len(paragraph) > c.chunkSize {
			flush()
			parts = append(parts, utils.SplitText(paragraph, c.chunkSize, c.overlap)...)
			continue
		}
		if current.Len()+len(paragraph) > c.chunkSize {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(paragraph)
	}
	flush()

	return parts
}

// tagConcepts attaches ontology concepts found in each chunk: ontology class
// labels plus the classification's key entities.
func tagConcepts(chunks []Chunk, classification store.Classification, ont *ontology.Ontology) {
	for i := range chunks {
		lowered := strings.ToLower(chunks[i].Content)

		seen := make(map[string]bool)
		var concepts []string
		add := func(concept string) {
			if concept == "" || seen[concept] {
				return
			}
			seen[concept] = true
			concepts = append(concepts, concept)
		}

		for _, entity := range classification.KeyEntities {
			if strings.Contains(lowered, strings.ToLower(entity)) {
				add(entity)
			}
		}

		if ont != nil {
			for _, class := range orderedClasses(ont) {
				if strings.Contains(lowered, strings.ToLower(class.Label)) {
					add(class.Label)
				}
			}
		}

		chunks[i].OntologyConcepts = concepts
	}
}

func orderedClasses(ont *ontology.Ontology) []ontology.Class {
	names := make([]string, 0, len(ont.Classes))
	for name := range ont.Classes {
		names = append(names, name)
	}
	// map order is random; keep tagging deterministic
	sort.Strings(names)

	classes := make([]ontology.Class, 0, len(names))
	for _, name := range names {
		classes = append(classes, ont.Classes[name])
	}
	return classes
}
