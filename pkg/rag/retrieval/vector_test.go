package retrieval

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-intel-be/pkg/rag"
	"doc-intel-be/pkg/store"
)

type fakeEmbedder struct {
	vector       []float32
	err          error
	lastTaskType string
}

func (f *fakeEmbedder) Embed(ctx context.Context, text, taskType string) ([]float32, error) {
	f.lastTaskType = taskType
	return f.vector, f.err
}

type fakeIndex struct {
	chunks     []store.Chunk
	searchErr  error
	byDocErr   error
	lastVector []float32
	lastDomain string
	lastTopK   int
}

func (f *fakeIndex) SearchSimilar(ctx context.Context, embedding []float32, domainFilter string, topK int) ([]store.Chunk, error) {
	f.lastVector = embedding
	f.lastDomain = domainFilter
	f.lastTopK = topK
	return f.chunks, f.searchErr
}

func (f *fakeIndex) ChunksByDocument(ctx context.Context, documentID string) ([]store.Chunk, error) {
	return f.chunks, f.byDocErr
}

func TestRetrieveSimilar(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.1, 0.2}}
	index := &fakeIndex{chunks: []store.Chunk{{ID: "c1"}, {ID: "c2"}}}
	retriever := NewVectorRetriever(embedder, index)

	chunks, err := retriever.RetrieveSimilar(context.Background(), "what is the deductible", "healthcare", 10)

	require.NoError(t, err)
	assert.Len(t, chunks, 2)
	assert.Equal(t, "RETRIEVAL_QUERY", embedder.lastTaskType)
	assert.Equal(t, []float32{0.1, 0.2}, index.lastVector)
	assert.Equal(t, "healthcare", index.lastDomain)
	assert.Equal(t, 10, index.lastTopK)
}

func TestRetrieveSimilarEmbedFailure(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("api quota exceeded")}
	retriever := NewVectorRetriever(embedder, &fakeIndex{})

	_, err := retriever.RetrieveSimilar(context.Background(), "q", "", 10)

	assert.True(t, errors.Is(err, rag.ErrRetrieval))
}

func TestRetrieveSimilarSearchFailure(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.1}}
	index := &fakeIndex{searchErr: errors.New("connection reset")}
	retriever := NewVectorRetriever(embedder, index)

	_, err := retriever.RetrieveSimilar(context.Background(), "q", "", 10)

	assert.True(t, errors.Is(err, rag.ErrRetrieval))
}

func TestChunksForDocument(t *testing.T) {
	index := &fakeIndex{chunks: []store.Chunk{{ID: "c1"}}}
	retriever := NewVectorRetriever(&fakeEmbedder{}, index)

	chunks, err := retriever.ChunksForDocument(context.Background(), "doc-1")

	require.NoError(t, err)
	assert.Len(t, chunks, 1)
}

func TestChunksForDocumentNotFoundKeepsItsKind(t *testing.T) {
	index := &fakeIndex{byDocErr: fmt.Errorf("document doc-x: %w", rag.ErrNotFound)}
	retriever := NewVectorRetriever(&fakeEmbedder{}, index)

	_, err := retriever.ChunksForDocument(context.Background(), "doc-x")

	assert.True(t, errors.Is(err, rag.ErrNotFound))
	assert.False(t, errors.Is(err, rag.ErrRetrieval))
}

func TestChunksForDocumentBackendFailure(t *testing.T) {
	index := &fakeIndex{byDocErr: errors.New("timeout")}
	retriever := NewVectorRetriever(&fakeEmbedder{}, index)

	_, err := retriever.ChunksForDocument(context.Background(), "doc-1")

	assert.True(t, errors.Is(err, rag.ErrRetrieval))
}
