package repositories

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"tripweaver/internal/models/db_models"
)

type ActivityRepository interface {
	ListActivitiesByCity(ctx context.Context, city string, page int, pageSize int) ([]db_models.Activity, error)
	GetActivityById(ctx context.Context, activityId string) (*db_models.Activity, error)
	ListActivitiesByIds(ctx context.Context, activityIds []string) ([]db_models.Activity, error)
	SearchActivitiesByKeywords(ctx context.Context, city string, keywords []string) ([]db_models.Activity, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) ListActivitiesByCity(ctx context.Context, city string, page int, pageSize int) ([]db_models.Activity, error) {
	var activities []db_models.Activity
	err := r.db.WithContext(ctx).
		Where("LOWER(city) = ?", strings.ToLower(city)).
		Order("rating DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *activityRepository) GetActivityById(ctx context.Context, activityId string) (*db_models.Activity, error) {
	var activity db_models.Activity
	err := r.db.WithContext(ctx).First(&activity, "id = ?", activityId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *activityRepository) ListActivitiesByIds(ctx context.Context, activityIds []string) ([]db_models.Activity, error) {
	var activities []db_models.Activity
	err := r.db.WithContext(ctx).Where("id IN ?", activityIds).Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *activityRepository) SearchActivitiesByKeywords(ctx context.Context, city string, keywords []string) ([]db_models.Activity, error) {
	if len(keywords) == 0 {
		return nil, nil
	}

	query := r.db.WithContext(ctx).Where("LOWER(city) = ?", strings.ToLower(city))

	var clauses []string
	var args []interface{}
	for _, kw := range keywords {
		clauses = append(clauses, "(name ILIKE ? OR description ILIKE ? OR ? = ANY(tags))")
		pattern := "%" + kw + "%"
		args = append(args, pattern, pattern, kw)
	}
	query = query.Where(strings.Join(clauses, " OR "), args...)

	var activities []db_models.Activity
	if err := query.Limit(20).Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}
