package service

import (
	"testing"

	"doc-intel-be/internal/entity"
	"doc-intel-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestToStoreChunkMapping(t *testing.T) {
	chunkID := uuid.New()
	documentID := uuid.New()

	scored := &contract.ScoredDocumentChunk{
		Chunk: &entity.DocumentChunk{
			Id:               chunkID,
			DocumentId:       documentID,
			Content:          "coverage details",
			PageNumber:       3,
			ChunkType:        "healthcare_section",
			OntologyConcepts: []string{"Coverage", "Premium"},
		},
		Distance:     0.42,
		Filename:     "policy.txt",
		Domain:       "healthcare",
		DocumentType: "insurance_policy",
	}

	chunk := toStoreChunk(scored)

	assert.Equal(t, chunkID.String(), chunk.ID)
	assert.Equal(t, "coverage details", chunk.Content)
	assert.Equal(t, documentID.String(), chunk.Metadata.DocumentID)
	assert.Equal(t, "policy.txt", chunk.Metadata.Filename)
	assert.Equal(t, 3, chunk.Metadata.PageNumber)
	assert.Equal(t, "healthcare", chunk.Metadata.Domain)
	assert.Equal(t, "insurance_policy", chunk.Metadata.DocumentType)
	assert.Equal(t, "healthcare_section", chunk.Metadata.ChunkType)
	assert.Equal(t, []string{"Coverage", "Premium"}, chunk.Metadata.OntologyConcepts)

	// Distance is attached by the caller; the base mapping leaves it unset.
	assert.Nil(t, chunk.Distance)
}

func TestQueryCacheKeyDeterministic(t *testing.T) {
	assert.Equal(t, queryCacheKey("what is covered", "healthcare"), queryCacheKey("what is covered", "healthcare"))
	assert.NotEqual(t, queryCacheKey("what is covered", "healthcare"), queryCacheKey("what is covered", "legal"))
	assert.NotEqual(t, queryCacheKey("what is covered", ""), queryCacheKey("what is", "covered"))
}
