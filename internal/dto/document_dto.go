package dto

import (
	"time"

	"github.com/google/uuid"
)

type UploadDocumentResponse struct {
	DocumentId     uuid.UUID              `json:"document_id"`
	Filename       string                 `json:"filename"`
	Classification map[string]interface{} `json:"classification"`
	ChunksCreated  int                    `json:"chunks_created"`
	Status         string                 `json:"status"`
	Message        string                 `json:"message"`
}

type DocumentInfoResponse struct {
	DocumentId               uuid.UUID  `json:"document_id"`
	Filename                 string     `json:"filename"`
	Domain                   string     `json:"domain"`
	DocumentType             string     `json:"document_type"`
	ChunkCount               int        `json:"chunk_count"`
	Status                   string     `json:"status"`
	UploadDate               *time.Time `json:"upload_date"`
	ClassificationConfidence float64    `json:"classification_confidence"`
}

type DocumentChunkInfo struct {
	ChunkId          uuid.UUID `json:"chunk_id"`
	ChunkIndex       int       `json:"chunk_index"`
	Content          string    `json:"content"`
	PageNumber       int       `json:"page_number"`
	ChunkType        string    `json:"chunk_type"`
	OntologyConcepts []string  `json:"ontology_concepts,omitempty"`
}

type DocumentChunksResponse struct {
	DocumentId uuid.UUID            `json:"document_id"`
	Filename   string               `json:"filename"`
	ChunkCount int                  `json:"chunk_count"`
	Chunks     []*DocumentChunkInfo `json:"chunks"`
}

type DeleteDocumentResponse struct {
	Message string `json:"message"`
}
