package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id           uuid.UUID
	Filename     string
	Domain       string
	DocumentType string
	Confidence   float64
	KeyEntities  []string
	PageCount    int
	ChunkCount   int
	Status       string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
	IsDeleted    bool
}

type DocumentChunk struct {
	Id               uuid.UUID
	DocumentId       uuid.UUID
	Content          string
	Embedding        []float32
	ChunkIndex       int
	PageNumber       int
	ChunkType        string
	OntologyConcepts []string
	CreatedAt        time.Time
	UpdatedAt        *time.Time
	DeletedAt        *time.Time
	IsDeleted        bool
}
