package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"doc-intel-be/internal/dto"
	"doc-intel-be/internal/model"
	"doc-intel-be/internal/repository/specification"
	"doc-intel-be/internal/repository/unitofwork"
	"doc-intel-be/pkg/embedding"
	"doc-intel-be/pkg/events"
	pktNats "doc-intel-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
	eventPublisher    *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage embeds every chunk of the document and flips its status to
// indexed. Ack only on invalid payloads and unrecoverable states; transient
// failures Nack so the message is redelivered.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing embeddings for DocumentId: %s", payload.DocumentId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		log.Printf("[ERROR] Failed to get document %s: %v", payload.DocumentId, err)
		msg.Nack()
		return
	}
	if document == nil {
		log.Printf("[ERROR] Document not found: %s", payload.DocumentId)
		msg.Ack() // Document deleted? Ack.
		return
	}

	chunks, err := uow.DocumentChunkRepository().FindAll(ctx,
		specification.ByDocumentID{DocumentID: payload.DocumentId},
		specification.OrderBy{Field: "chunk_index"},
	)
	if err != nil {
		log.Printf("[ERROR] Failed to get chunks for document %s: %v", payload.DocumentId, err)
		msg.Nack()
		return
	}

	log.Printf("[INFO] Generating embeddings for %d chunks of document %s", len(chunks), payload.DocumentId)

	for i, chunk := range chunks {
		vector, err := cs.embeddingProvider.Embed(ctx, chunk.Content, embedding.TaskDocument)
		if err != nil {
			log.Printf("[ERROR] Failed to embed chunk %d of document %s: %v", i, payload.DocumentId, err)
			msg.Nack()
			return
		}
		chunk.Embedding = vector
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	for _, chunk := range chunks {
		if err := uow.DocumentChunkRepository().Update(ctx, chunk); err != nil {
			log.Printf("[ERROR] Failed to store embedding for chunk %s: %v", chunk.Id, err)
			msg.Nack()
			return
		}
	}

	now := time.Now()
	document.Status = model.DocumentStatusIndexed
	document.ChunkCount = len(chunks)
	document.UpdatedAt = &now
	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		log.Printf("[ERROR] Failed to update document status: %v", err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	if cs.eventPublisher != nil {
		event := events.NewDocumentIndexedEvent(document.Id.String(), document.Filename, len(chunks))
		if err := cs.eventPublisher.Publish(ctx, event); err != nil {
			log.Printf("WARN: failed to publish %s event: %v", events.TypeDocumentIndexed, err)
		}
	}

	log.Printf("[SUCCESS] Document indexed: %d chunks for DocumentId: %s", len(chunks), payload.DocumentId)
	msg.Ack()
}
