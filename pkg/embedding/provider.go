package embedding

import (
	"context"
	"fmt"
	"math"
)

// Task types hint the backend about the embedding's purpose. Gemini uses
// them to pick an asymmetric embedding; other backends ignore them.
const (
	TaskDocument = "RETRIEVAL_DOCUMENT"
	TaskQuery    = "RETRIEVAL_QUERY"
)

// Provider generates text embeddings.
type Provider interface {
	Embed(ctx context.Context, text string, taskType string) ([]float32, error)
}

// NewProvider builds an embedding provider by name.
func NewProvider(providerType, apiKey, baseURL, model string) (Provider, error) {
	switch providerType {
	case "gemini":
		return NewGeminiProvider(apiKey, model), nil
	case "ollama":
		return NewOllamaProvider(baseURL, model), nil
	case "jina":
		return NewJinaProvider(apiKey, model), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", providerType)
	}
}

// normalize scales a vector to unit length. Cosine distance in pgvector
// assumes normalized vectors; backends that do not normalize (Ollama) get
// this applied before storage or search.
func normalize(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)

	if magnitude == 0 {
		return vec
	}

	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) / magnitude)
	}
	return normalized
}
