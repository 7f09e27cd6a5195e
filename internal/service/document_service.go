package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"doc-intel-be/internal/dto"
	"doc-intel-be/internal/entity"
	"doc-intel-be/internal/model"
	"doc-intel-be/internal/repository/specification"
	"doc-intel-be/internal/repository/unitofwork"
	"doc-intel-be/pkg/chunking"
	"doc-intel-be/pkg/classify"
	"doc-intel-be/pkg/events"
	"doc-intel-be/pkg/ontology"
	"doc-intel-be/pkg/rag"
	pktNats "doc-intel-be/pkg/nats"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Upload(ctx context.Context, filename string, text string) (*dto.UploadDocumentResponse, error)
	List(ctx context.Context) ([]*dto.DocumentInfoResponse, error)
	Chunks(ctx context.Context, documentId uuid.UUID) (*dto.DocumentChunksResponse, error)
	Delete(ctx context.Context, documentId uuid.UUID) (*dto.DeleteDocumentResponse, error)
}

type documentService struct {
	classifier      *classify.Classifier
	ontologyManager *ontology.Manager
	chunker         *chunking.Chunker
	uowFactory      unitofwork.RepositoryFactory
	publisher       IPublisherService
	eventPublisher  *pktNats.Publisher
}

func NewDocumentService(
	classifier *classify.Classifier,
	ontologyManager *ontology.Manager,
	chunker *chunking.Chunker,
	uowFactory unitofwork.RepositoryFactory,
	publisher IPublisherService,
	eventPublisher *pktNats.Publisher,
) IDocumentService {
	return &documentService{
		classifier:      classifier,
		ontologyManager: ontologyManager,
		chunker:         chunker,
		uowFactory:      uowFactory,
		publisher:       publisher,
		eventPublisher:  eventPublisher,
	}
}

// Upload classifies and chunks extracted document text, persists the
// document with status processing, and queues the embedding job. Embeddings
// are generated asynchronously by the consumer.
func (ds *documentService) Upload(ctx context.Context, filename string, text string) (*dto.UploadDocumentResponse, error) {
	pages := splitPages(text)
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: no readable content in %s", rag.ErrInsufficientInput, filename)
	}

	classification := ds.classifier.Classify(ctx, filename, text)
	ont := ds.ontologyManager.OntologyFor(classification.Domain)

	chunks := ds.chunker.ChunkDocument(pages, classification, ont)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: no chunks produced from %s", rag.ErrInsufficientInput, filename)
	}

	now := time.Now()
	document := &entity.Document{
		Id:           uuid.New(),
		Filename:     filename,
		Domain:       classification.Domain,
		DocumentType: classification.DocumentType,
		Confidence:   classification.Confidence,
		KeyEntities:  classification.KeyEntities,
		PageCount:    len(pages),
		ChunkCount:   len(chunks),
		Status:       model.DocumentStatusProcessing,
		CreatedAt:    now,
	}

	chunkEntities := make([]*entity.DocumentChunk, 0, len(chunks))
	for i, chunk := range chunks {
		chunkEntities = append(chunkEntities, &entity.DocumentChunk{
			Id:               uuid.New(),
			DocumentId:       document.Id,
			Content:          chunk.Content,
			ChunkIndex:       i,
			PageNumber:       chunk.PageNumber,
			ChunkType:        chunk.ChunkType,
			OntologyConcepts: chunk.OntologyConcepts,
			CreatedAt:        now,
		})
	}

	uow := ds.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().Create(ctx, document); err != nil {
		return nil, err
	}
	if err := uow.DocumentChunkRepository().CreateBulk(ctx, chunkEntities); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if err := ds.publisher.Publish(dto.PublishEmbedDocumentMessage{DocumentId: document.Id}); err != nil {
		// The document row stays in processing; a re-upload or manual
		// re-queue recovers it. Surface the failure to the caller.
		return nil, fmt.Errorf("failed to queue embedding job: %w", err)
	}

	if ds.eventPublisher != nil {
		event := events.NewDocumentUploadedEvent(document.Id.String(), filename, classification.Domain, len(chunkEntities))
		if err := ds.eventPublisher.Publish(ctx, event); err != nil {
			log.Printf("WARN: failed to publish %s event: %v", events.TypeDocumentUploaded, err)
		}
	}

	return &dto.UploadDocumentResponse{
		DocumentId: document.Id,
		Filename:   filename,
		Classification: map[string]interface{}{
			"domain":        classification.Domain,
			"document_type": classification.DocumentType,
			"confidence":    classification.Confidence,
			"key_entities":  classification.KeyEntities,
		},
		ChunksCreated: len(chunkEntities),
		Status:        model.DocumentStatusProcessing,
		Message:       "Document accepted, embedding in progress",
	}, nil
}

func (ds *documentService) List(ctx context.Context) ([]*dto.DocumentInfoResponse, error) {
	uow := ds.uowFactory.NewUnitOfWork(ctx)

	documents, err := uow.DocumentRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.DocumentInfoResponse, 0, len(documents))
	for _, document := range documents {
		uploadDate := document.CreatedAt
		result = append(result, &dto.DocumentInfoResponse{
			DocumentId:               document.Id,
			Filename:                 document.Filename,
			Domain:                   document.Domain,
			DocumentType:             document.DocumentType,
			ChunkCount:               document.ChunkCount,
			Status:                   document.Status,
			UploadDate:               &uploadDate,
			ClassificationConfidence: document.Confidence,
		})
	}
	return result, nil
}

func (ds *documentService) Chunks(ctx context.Context, documentId uuid.UUID) (*dto.DocumentChunksResponse, error) {
	uow := ds.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, fmt.Errorf("%w: document %s", rag.ErrNotFound, documentId)
	}

	chunks, err := uow.DocumentChunkRepository().FindAll(ctx,
		specification.ByDocumentID{DocumentID: documentId},
		specification.OrderBy{Field: "chunk_index"},
	)
	if err != nil {
		return nil, err
	}

	infos := make([]*dto.DocumentChunkInfo, 0, len(chunks))
	for _, chunk := range chunks {
		infos = append(infos, &dto.DocumentChunkInfo{
			ChunkId:          chunk.Id,
			ChunkIndex:       chunk.ChunkIndex,
			Content:          chunk.Content,
			PageNumber:       chunk.PageNumber,
			ChunkType:        chunk.ChunkType,
			OntologyConcepts: chunk.OntologyConcepts,
		})
	}

	return &dto.DocumentChunksResponse{
		DocumentId: document.Id,
		Filename:   document.Filename,
		ChunkCount: len(infos),
		Chunks:     infos,
	}, nil
}

func (ds *documentService) Delete(ctx context.Context, documentId uuid.UUID) (*dto.DeleteDocumentResponse, error) {
	uow := ds.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, fmt.Errorf("%w: document %s", rag.ErrNotFound, documentId)
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.DocumentChunkRepository().DeleteByDocumentId(ctx, documentId); err != nil {
		return nil, err
	}
	if err := uow.DocumentRepository().Delete(ctx, documentId); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if ds.eventPublisher != nil {
		if err := ds.eventPublisher.Publish(ctx, events.NewDocumentDeletedEvent(documentId.String())); err != nil {
			log.Printf("WARN: failed to publish %s event: %v", events.TypeDocumentDeleted, err)
		}
	}

	return &dto.DeleteDocumentResponse{
		Message: fmt.Sprintf("Document %s deleted successfully", documentId),
	}, nil
}

// splitPages treats form feeds as page boundaries in the extracted text.
// Single-page documents arrive without any.
func splitPages(text string) []chunking.Page {
	var pages []chunking.Page
	for i, part := range strings.Split(text, "\f") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		pages = append(pages, chunking.Page{Number: i + 1, Text: part})
	}
	return pages
}
