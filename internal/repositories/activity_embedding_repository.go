package repositories

import (
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"tripweaver/internal/models/db_models"
)

type IActivityEmbeddingRepository interface {
	ListNearestByVector(vector pgvector.Vector, city string, limit int) ([]db_models.ActivityEmbedding, error)
	CreateActivityEmbedding(embedding db_models.ActivityEmbedding) error
}

type ActivityEmbeddingRepository struct {
	db *gorm.DB
}

func NewActivityEmbeddingRepository(db *gorm.DB) IActivityEmbeddingRepository {
	return &ActivityEmbeddingRepository{db: db}
}

func (r *ActivityEmbeddingRepository) ListNearestByVector(vector pgvector.Vector, city string, limit int) ([]db_models.ActivityEmbedding, error) {
	var results []db_models.ActivityEmbedding

	if limit <= 0 {
		limit = 15
	}

	vecStr := vector.String()

	query := `
        SELECT *, (1 - (embedding <=> $1)) as similarity
        FROM activity_embeddings
        WHERE LOWER(city) = LOWER($2)
          AND (1 - (embedding <=> $1)) > 0.7  -- Only return results with >70% similarity
        ORDER BY embedding <=> $1  -- Cosine distance (closer to 0 is better)
        LIMIT $3
    `

	err := r.db.Raw(query, vecStr, city, limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ActivityEmbeddingRepository) CreateActivityEmbedding(embedding db_models.ActivityEmbedding) error {
	return r.db.Create(&embedding).Error
}
