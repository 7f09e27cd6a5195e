package service

import (
	"context"
	"log"
	"time"

	"doc-intel-be/internal/dto"
	"doc-intel-be/pkg/events"
	pktNats "doc-intel-be/pkg/nats"
	"doc-intel-be/pkg/rag"
	"doc-intel-be/pkg/rag/compare"
)

const comparisonTimeout = 120 * time.Second

type IComparisonService interface {
	Compare(ctx context.Context, req *dto.ComparisonRequest) (*dto.ComparisonResponse, error)
}

type comparisonService struct {
	retriever      rag.Retriever
	generator      rag.Generator
	knowledge      rag.Knowledge
	eventPublisher *pktNats.Publisher
	llmLogger      *log.Logger
}

func NewComparisonService(
	retriever rag.Retriever,
	generator rag.Generator,
	knowledge rag.Knowledge,
	eventPublisher *pktNats.Publisher,
	llmLogger *log.Logger,
) IComparisonService {
	return &comparisonService{
		retriever:      retriever,
		generator:      generator,
		knowledge:      knowledge,
		eventPublisher: eventPublisher,
		llmLogger:      llmLogger,
	}
}

// Compare runs the direct pairwise comparison by default; full_pipeline
// switches to the six-step pipeline with section filtering and per-document
// analysis.
func (cs *comparisonService) Compare(ctx context.Context, req *dto.ComparisonRequest) (*dto.ComparisonResponse, error) {
	cctx, cancel := context.WithTimeout(ctx, comparisonTimeout)
	defer cancel()

	comparisonType := req.ComparisonType
	if comparisonType == "" {
		comparisonType = "general"
	}

	a := compare.New(cs.retriever, cs.generator, cs.knowledge, cs.llmLogger)

	var response *dto.ComparisonResponse
	if req.FullPipeline {
		state := a.RunPipeline(cctx, req.DocumentIds, comparisonType, req.FocusAreas)
		response = pipelineStateToResponse(state)
	} else {
		result := a.CompareDocuments(cctx, req.DocumentIds, comparisonType, req.FocusAreas)
		response = &dto.ComparisonResponse{
			ComparisonId:     result.ComparisonID,
			DocumentIds:      result.DocumentIDs,
			Similarities:     result.Similarities,
			Differences:      result.Differences,
			Insights:         result.Insights,
			ComparisonMatrix: result.ComparisonMatrix,
			Confidence:       result.Confidence,
			ReasoningSteps:   result.ReasoningSteps,
			Metadata:         result.Metadata,
		}
	}

	if cs.eventPublisher != nil {
		event := events.NewComparisonCompletedEvent(response.ComparisonId, response.DocumentIds, response.Confidence)
		if err := cs.eventPublisher.Publish(ctx, event); err != nil {
			log.Printf("WARN: failed to publish %s event: %v", events.TypeComparisonCompleted, err)
		}
	}

	return response, nil
}

func pipelineStateToResponse(state compare.State) *dto.ComparisonResponse {
	matrix := make(map[string]interface{}, len(state.Matrix))
	for key, record := range state.Matrix {
		matrix[key] = record
	}

	return &dto.ComparisonResponse{
		ComparisonId:     compare.ComparisonID(state.DocumentIDs),
		DocumentIds:      state.DocumentIDs,
		Similarities:     state.Similarities,
		Differences:      state.Differences,
		Insights:         state.FinalInsights,
		ComparisonMatrix: matrix,
		Confidence:       state.Confidence,
		ReasoningSteps:   state.ReasoningSteps,
		Metadata: map[string]interface{}{
			"comparison_type":    state.ComparisonType,
			"focus_areas":        state.FocusAreas,
			"documents_analyzed": len(state.LoadedIDs),
			"pipeline":           true,
		},
	}
}
