package contract

import (
	"context"

	"doc-intel-be/internal/entity"
	"doc-intel-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredDocumentChunk pairs a chunk with its cosine distance to the query
// vector and the owning document's descriptive fields.
type ScoredDocumentChunk struct {
	Chunk        *entity.DocumentChunk
	Distance     float64
	Filename     string
	Domain       string
	DocumentType string
}

type DocumentChunkRepository interface {
	Create(ctx context.Context, chunk *entity.DocumentChunk) error
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	Update(ctx context.Context, chunk *entity.DocumentChunk) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentChunk, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindByDocumentId returns the document's chunks in chunk-index order,
	// joined with the owning document's descriptive fields.
	FindByDocumentId(ctx context.Context, documentId uuid.UUID) ([]*ScoredDocumentChunk, error)

	// SearchSimilar returns up to limit chunks ordered by ascending cosine
	// distance to the embedding. domain narrows the search when non-empty.
	SearchSimilar(ctx context.Context, embedding []float32, domain string, limit int) ([]*ScoredDocumentChunk, error)
}
