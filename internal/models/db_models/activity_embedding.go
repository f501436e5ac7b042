package db_models

import (
	"github.com/pgvector/pgvector-go"
)

type ActivityEmbedding struct {
	BaseModel
	ActivityID string          `gorm:"index"`
	City       string          `gorm:"index"`
	Embedding  pgvector.Vector `gorm:"type:vector(1536)"`
}
