package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Document processing statuses.
const (
	DocumentStatusProcessing = "processing"
	DocumentStatusIndexed    = "indexed"
	DocumentStatusFailed     = "failed"
)

type Document struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Filename     string         `gorm:"type:varchar(512);not null"`
	Domain       string         `gorm:"type:varchar(64);index"`
	DocumentType string         `gorm:"type:varchar(64)"`
	Confidence   float64        `gorm:"default:0"`
	KeyEntities  datatypes.JSON `gorm:"type:jsonb"`
	PageCount    int            `gorm:"default:0"`
	ChunkCount   int            `gorm:"default:0"`
	Status       string         `gorm:"type:varchar(32);default:'processing';index"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
