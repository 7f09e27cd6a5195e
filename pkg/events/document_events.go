package events

import "time"

// Event type codes published on the bus.
const (
	TypeDocumentUploaded    = "DOCUMENT_UPLOADED"
	TypeDocumentIndexed     = "DOCUMENT_INDEXED"
	TypeDocumentDeleted     = "DOCUMENT_DELETED"
	TypeComparisonCompleted = "COMPARISON_COMPLETED"
)

// NewDocumentUploadedEvent fires when a document is accepted for ingestion,
// before chunk embedding completes.
func NewDocumentUploadedEvent(documentID, filename, domain string, chunkCount int) Event {
	return BaseEvent{
		Type: TypeDocumentUploaded,
		Data: map[string]interface{}{
			"document_id": documentID,
			"filename":    filename,
			"domain":      domain,
			"chunk_count": chunkCount,
		},
		OccurredAt: time.Now(),
	}
}

// NewDocumentIndexedEvent fires once every chunk of a document has an
// embedding stored.
func NewDocumentIndexedEvent(documentID, filename string, chunkCount int) Event {
	return BaseEvent{
		Type: TypeDocumentIndexed,
		Data: map[string]interface{}{
			"document_id": documentID,
			"filename":    filename,
			"chunk_count": chunkCount,
		},
		OccurredAt: time.Now(),
	}
}

func NewDocumentDeletedEvent(documentID string) Event {
	return BaseEvent{
		Type: TypeDocumentDeleted,
		Data: map[string]interface{}{
			"document_id": documentID,
		},
		OccurredAt: time.Now(),
	}
}

// NewComparisonCompletedEvent fires after a comparison run, successful or
// degraded.
func NewComparisonCompletedEvent(comparisonID string, documentIDs []string, confidence float64) Event {
	return BaseEvent{
		Type: TypeComparisonCompleted,
		Data: map[string]interface{}{
			"comparison_id": comparisonID,
			"document_ids":  documentIDs,
			"confidence":    confidence,
		},
		OccurredAt: time.Now(),
	}
}
