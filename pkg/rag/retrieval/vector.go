package retrieval

import (
	"context"
	"errors"
	"fmt"

	"doc-intel-be/pkg/embedding"
	"doc-intel-be/pkg/rag"
	"doc-intel-be/pkg/store"
)

// Index is the vector-search port backed by the chunk repository.
type Index interface {
	// SearchSimilar returns up to topK chunks ordered by ascending distance
	// to the embedding. domainFilter narrows the search when non-empty.
	SearchSimilar(ctx context.Context, embedding []float32, domainFilter string, topK int) ([]store.Chunk, error)

	// ChunksByDocument returns every chunk of a document in index order.
	ChunksByDocument(ctx context.Context, documentID string) ([]store.Chunk, error)
}

// VectorRetriever embeds query text and searches the index. It is the
// production rag.Retriever.
type VectorRetriever struct {
	embedder embedding.Provider
	index    Index
}

var _ rag.Retriever = &VectorRetriever{}

func NewVectorRetriever(embedder embedding.Provider, index Index) *VectorRetriever {
	return &VectorRetriever{
		embedder: embedder,
		index:    index,
	}
}

func (r *VectorRetriever) RetrieveSimilar(ctx context.Context, query, domainFilter string, topK int) ([]store.Chunk, error) {
	vector, err := r.embedder.Embed(ctx, query, embedding.TaskQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", rag.ErrRetrieval, err)
	}

	chunks, err := r.index.SearchSimilar(ctx, vector, domainFilter, topK)
	if err != nil {
		return nil, fmt.Errorf("%w: similarity search: %v", rag.ErrRetrieval, err)
	}

	return chunks, nil
}

func (r *VectorRetriever) ChunksForDocument(ctx context.Context, documentID string) ([]store.Chunk, error) {
	chunks, err := r.index.ChunksByDocument(ctx, documentID)
	if err != nil {
		if errors.Is(err, rag.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: load document %s: %v", rag.ErrRetrieval, documentID, err)
	}

	return chunks, nil
}
