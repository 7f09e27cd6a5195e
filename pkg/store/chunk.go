package store

// Chunk is a retrievable unit of document content. The agents never mutate a
// chunk; they filter, reorder, or copy it into enriched structures.
type Chunk struct {
	ID       string        `json:"id"`
	Content  string        `json:"content"`
	Metadata ChunkMetadata `json:"metadata"`

	// Distance is the similarity distance reported by the vector store.
	// Nil means the backend did not report one (treated as always relevant).
	Distance *float64 `json:"distance,omitempty"`
}

// ChunkMetadata carries the indexing metadata attached to every chunk.
type ChunkMetadata struct {
	DocumentID       string   `json:"document_id"`
	Filename         string   `json:"filename"`
	PageNumber       int      `json:"page_number"`
	Domain           string   `json:"domain"`
	DocumentType     string   `json:"document_type"`
	ChunkType        string   `json:"chunk_type"`
	OntologyConcepts []string `json:"ontology_concepts,omitempty"`
}

// EnrichedChunk is a chunk copy carrying auxiliary ontology context for
// answer generation. Built by the query agent, consumed by the generator.
type EnrichedChunk struct {
	Chunk
	OntologyContext string `json:"ontology_context,omitempty"`
}

// Classification is the result of domain/type classification at ingest time.
type Classification struct {
	Domain       string   `json:"domain"`
	DocumentType string   `json:"document_type"`
	Confidence   float64  `json:"confidence"`
	KeyEntities  []string `json:"key_entities,omitempty"`
}

// Source identifies where a piece of answer content came from.
type Source struct {
	Filename  string `json:"filename"`
	Page      string `json:"page"`
	ChunkType string `json:"chunk_type"`
}
