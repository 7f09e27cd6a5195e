package dto

type QueryRequest struct {
	Query              string `json:"query" validate:"required,min=1"`
	DomainFilter       string `json:"domain_filter" validate:"omitempty,oneof=healthcare legal financial general"`
	DocumentTypeFilter string `json:"document_type_filter"`
	TopK               int    `json:"top_k" validate:"omitempty,min=1,max=50"`
}

type QueryResponse struct {
	Answer          string                 `json:"answer"`
	Sources         []SourceItem           `json:"sources"`
	Confidence      float64                `json:"confidence"`
	ReasoningSteps  []string               `json:"reasoning_steps"`
	RelatedConcepts []string               `json:"related_concepts"`
	Metadata        map[string]interface{} `json:"metadata"`
}

type SourceItem struct {
	Filename  string `json:"filename"`
	Page      string `json:"page"`
	ChunkType string `json:"chunk_type"`
}
