package dto

import "github.com/google/uuid"

// PublishEmbedDocumentMessage is the job payload queued after upload; the
// consumer embeds the document's chunks and flips its status to indexed.
type PublishEmbedDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
