package model

import (
	"time"

	"github.com/google/uuid"
)

// ProcessingUpdate is an ephemeral real-time message pushed to websocket
// clients when a pipeline event fires. It is never persisted.
type ProcessingUpdate struct {
	ID        uuid.UUID              `json:"id"`
	TypeCode  string                 `json:"type_code"`
	Message   string                 `json:"message"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
