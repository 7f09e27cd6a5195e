package service

import (
	"context"
	"testing"
	"time"

	"doc-intel-be/internal/model"
	"doc-intel-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDelivery struct {
	updates []model.ProcessingUpdate
}

func (d *fakeDelivery) Broadcast(update model.ProcessingUpdate) {
	d.updates = append(d.updates, update)
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func newTestNotificationService(delivery NotificationDelivery) *NotificationService {
	return NewNotificationService(nil, delivery, noopLogger{})
}

func TestRenderTemplate(t *testing.T) {
	msg := renderTemplate("Document {filename} indexed with {chunk_count} chunks", map[string]interface{}{
		"filename":    "policy.txt",
		"chunk_count": 12,
	})

	assert.Equal(t, "Document policy.txt indexed with 12 chunks", msg)
}

func TestRenderTemplateLeavesUnknownPlaceholders(t *testing.T) {
	msg := renderTemplate("Document {filename} deleted", map[string]interface{}{})

	assert.Equal(t, "Document {filename} deleted", msg)
}

func TestHandleEventBroadcastsUpdate(t *testing.T) {
	delivery := &fakeDelivery{}
	svc := newTestNotificationService(delivery)

	event := events.BaseEvent{
		Type: "events." + events.TypeDocumentIndexed,
		Data: map[string]interface{}{
			"filename":    "contract.txt",
			"chunk_count": 4,
		},
		OccurredAt: time.Now(),
	}

	err := svc.handleEvent(context.Background(), event)
	require.NoError(t, err)

	require.Len(t, delivery.updates, 1)
	update := delivery.updates[0]
	assert.Equal(t, events.TypeDocumentIndexed, update.TypeCode)
	assert.Equal(t, "Document contract.txt indexed with 4 chunks", update.Message)
	assert.Equal(t, event.Data, update.Metadata)
}

func TestHandleEventSkipsUnknownType(t *testing.T) {
	delivery := &fakeDelivery{}
	svc := newTestNotificationService(delivery)

	event := events.BaseEvent{
		Type:       "events.SOMETHING_ELSE",
		Data:       map[string]interface{}{},
		OccurredAt: time.Now(),
	}

	err := svc.handleEvent(context.Background(), event)
	require.NoError(t, err)
	assert.Empty(t, delivery.updates)
}
