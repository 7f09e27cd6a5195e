package service

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"doc-intel-be/internal/dto"
	"doc-intel-be/pkg/rag"
	"doc-intel-be/pkg/rag/agent"

	"github.com/redis/go-redis/v9"
)

const (
	queryTimeout  = 60 * time.Second
	queryCacheTTL = 5 * time.Minute
)

type IQueryService interface {
	Query(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error)
}

// queryService fronts the query agent. Agents are stateless, so one is built
// per request; repeated queries are served from a short-lived redis cache.
type queryService struct {
	retriever rag.Retriever
	generator rag.Generator
	knowledge rag.Knowledge
	rdb       *redis.Client
	llmLogger *log.Logger
}

func NewQueryService(
	retriever rag.Retriever,
	generator rag.Generator,
	knowledge rag.Knowledge,
	rdb *redis.Client,
	llmLogger *log.Logger,
) IQueryService {
	return &queryService{
		retriever: retriever,
		generator: generator,
		knowledge: knowledge,
		rdb:       rdb,
		llmLogger: llmLogger,
	}
}

func (qs *queryService) Query(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error) {
	cacheKey := queryCacheKey(req.Query, req.DomainFilter)

	if qs.rdb != nil {
		if raw, err := qs.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached dto.QueryResponse
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	qctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	a := agent.New(qs.retriever, qs.generator, qs.knowledge, qs.llmLogger)
	result := a.ProcessQuery(qctx, req.Query, req.DomainFilter)

	sources := make([]dto.SourceItem, 0, len(result.Sources))
	for _, source := range result.Sources {
		sources = append(sources, dto.SourceItem{
			Filename:  source.Filename,
			Page:      source.Page,
			ChunkType: source.ChunkType,
		})
	}

	response := &dto.QueryResponse{
		Answer:          result.Answer,
		Sources:         sources,
		Confidence:      result.Confidence,
		ReasoningSteps:  result.ReasoningSteps,
		RelatedConcepts: result.RelatedConcepts,
		Metadata:        result.Metadata,
	}

	// Zero confidence marks a degraded run; never cache those.
	if qs.rdb != nil && result.Confidence > 0 {
		if raw, err := json.Marshal(response); err == nil {
			if err := qs.rdb.Set(ctx, cacheKey, raw, queryCacheTTL).Err(); err != nil {
				log.Printf("WARN: failed to cache query response: %v", err)
			}
		}
	}

	return response, nil
}

func queryCacheKey(query, domain string) string {
	sum := sha256.Sum256([]byte(query + "|" + domain))
	return fmt.Sprintf("query_cache:%x", sum)
}
