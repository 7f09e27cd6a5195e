package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"doc-intel-be/internal/model"
	"doc-intel-be/internal/pkg/logger"
	"doc-intel-be/pkg/events"
	pktNats "doc-intel-be/pkg/nats"

	"github.com/google/uuid"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Broadcast(update model.ProcessingUpdate)
}

// Message templates per event type. Placeholders are {key} lookups into the
// event payload; events without a template are ignored.
var updateTemplates = map[string]string{
	events.TypeDocumentUploaded:    "Document {filename} accepted, {chunk_count} chunks queued for indexing",
	events.TypeDocumentIndexed:     "Document {filename} indexed with {chunk_count} chunks",
	events.TypeDocumentDeleted:     "Document {document_id} deleted",
	events.TypeComparisonCompleted: "Comparison {comparison_id} completed",
}

// NotificationService relays pipeline events from the bus to connected
// websocket clients so the UI can show ingestion and comparison progress.
type NotificationService struct {
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "progress-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start progress subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	// The NATS subject includes the "events." prefix.
	typeCode := strings.TrimPrefix(event.EventType(), "events.")

	template, ok := updateTemplates[typeCode]
	if !ok {
		s.logger.Info("NotificationService", fmt.Sprintf("No template for event '%s', skipping", typeCode), nil)
		return nil
	}

	update := model.ProcessingUpdate{
		ID:        uuid.New(),
		TypeCode:  typeCode,
		Message:   renderTemplate(template, event.Payload()),
		Metadata:  event.Payload(),
		CreatedAt: time.Now(),
	}

	if s.delivery != nil {
		s.delivery.Broadcast(update)
	}
	return nil
}

func renderTemplate(template string, payload map[string]interface{}) string {
	msg := template
	for k, v := range payload {
		placeholder := fmt.Sprintf("{%s}", k)
		msg = strings.ReplaceAll(msg, placeholder, fmt.Sprintf("%v", v))
	}
	return msg
}
