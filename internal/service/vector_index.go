package service

import (
	"context"
	"fmt"

	"doc-intel-be/internal/repository/contract"
	"doc-intel-be/internal/repository/specification"
	"doc-intel-be/internal/repository/unitofwork"
	"doc-intel-be/pkg/rag"
	"doc-intel-be/pkg/rag/retrieval"
	"doc-intel-be/pkg/store"

	"github.com/google/uuid"
)

// vectorIndex adapts the chunk repository to the retrieval.Index port. Each
// call opens a fresh unit of work; reads never start a transaction.
type vectorIndex struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewVectorIndex(uowFactory unitofwork.RepositoryFactory) retrieval.Index {
	return &vectorIndex{uowFactory: uowFactory}
}

func (v *vectorIndex) SearchSimilar(ctx context.Context, embedding []float32, domainFilter string, topK int) ([]store.Chunk, error) {
	uow := v.uowFactory.NewUnitOfWork(ctx)

	scored, err := uow.DocumentChunkRepository().SearchSimilar(ctx, embedding, domainFilter, topK)
	if err != nil {
		return nil, err
	}

	chunks := make([]store.Chunk, 0, len(scored))
	for _, sc := range scored {
		chunk := toStoreChunk(sc)
		distance := sc.Distance
		chunk.Distance = &distance
		chunks = append(chunks, chunk)
	}
	return chunks, nil
}

func (v *vectorIndex) ChunksByDocument(ctx context.Context, documentID string) ([]store.Chunk, error) {
	id, err := uuid.Parse(documentID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid document id %q", rag.ErrNotFound, documentID)
	}

	uow := v.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, fmt.Errorf("%w: document %s", rag.ErrNotFound, documentID)
	}

	scored, err := uow.DocumentChunkRepository().FindByDocumentId(ctx, id)
	if err != nil {
		return nil, err
	}

	chunks := make([]store.Chunk, 0, len(scored))
	for _, sc := range scored {
		chunks = append(chunks, toStoreChunk(sc))
	}
	return chunks, nil
}

func toStoreChunk(sc *contract.ScoredDocumentChunk) store.Chunk {
	return store.Chunk{
		ID:      sc.Chunk.Id.String(),
		Content: sc.Chunk.Content,
		Metadata: store.ChunkMetadata{
			DocumentID:       sc.Chunk.DocumentId.String(),
			Filename:         sc.Filename,
			PageNumber:       sc.Chunk.PageNumber,
			Domain:           sc.Domain,
			DocumentType:     sc.DocumentType,
			ChunkType:        sc.Chunk.ChunkType,
			OntologyConcepts: sc.Chunk.OntologyConcepts,
		},
	}
}
