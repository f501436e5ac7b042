package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"tripweaver/internal/models/db_models"
	"tripweaver/internal/models/request_models"
	"tripweaver/internal/models/response_models"
	"tripweaver/internal/repositories"
	"tripweaver/pkg/utils"
)

type ActivityServiceInterface interface {
	ListActivitiesByCity(ctx context.Context, city string, page int, pageSize int) ([]response_models.ActivityResponse, error)
	GetActivityById(ctx context.Context, activityId string) (*response_models.ActivityResponse, error)
	SuggestActivities(ctx context.Context, request request_models.SuggestActivitiesRequest) ([]response_models.ActivityResponse, error)
}

type ActivityService struct {
	activityRepo  repositories.ActivityRepository
	embeddingRepo repositories.IActivityEmbeddingRepository
	aiClient      utils.PlannerClientInterface
	cache         *gocache.Cache
}

func NewActivityService(
	activityRepo repositories.ActivityRepository,
	embeddingRepo repositories.IActivityEmbeddingRepository,
	aiClient utils.PlannerClientInterface,
) ActivityServiceInterface {
	return &ActivityService{
		activityRepo:  activityRepo,
		embeddingRepo: embeddingRepo,
		aiClient:      aiClient,
		cache:         gocache.New(15*time.Minute, 30*time.Minute),
	}
}

func (s *ActivityService) ListActivitiesByCity(ctx context.Context, city string, page int, pageSize int) ([]response_models.ActivityResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	activities, err := s.activityRepo.ListActivitiesByCity(ctx, city, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		out = append(out, buildActivityResponse(a))
	}
	return out, nil
}

func (s *ActivityService) GetActivityById(ctx context.Context, activityId string) (*response_models.ActivityResponse, error) {
	activity, err := s.activityRepo.GetActivityById(ctx, activityId)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if activity == nil {
		return nil, utils.ErrActivityNotFound
	}

	out := buildActivityResponse(*activity)
	return &out, nil
}

// SuggestActivities finds candidate activities for a destination: embedding
// similarity first, keyword search as fallback when the vector search comes
// back thin.
func (s *ActivityService) SuggestActivities(ctx context.Context, request request_models.SuggestActivitiesRequest) ([]response_models.ActivityResponse, error) {
	if strings.TrimSpace(request.City) == "" {
		return nil, utils.ErrInvalidInput
	}
	limit := request.Limit
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	cacheKey := suggestionCacheKey(request.City, request.Interests, limit)
	if cached, ok := s.cache.Get(cacheKey); ok {
		if out, ok := cached.([]response_models.ActivityResponse); ok {
			log.Printf("Cache hit for activity suggestions: %s", request.City)
			return out, nil
		}
	}

	var activities []db_models.Activity

	if embedded, err := s.findActivitiesByEmbedding(ctx, request.City, request.Interests); err == nil {
		activities = embedded
	} else {
		log.Printf("Embedding search failed for %s: %v", request.City, err)
	}

	if len(activities) < 5 && len(request.Interests) > 0 {
		keywordHits, err := s.activityRepo.SearchActivitiesByKeywords(ctx, request.City, request.Interests)
		if err == nil {
			activities = mergeActivitiesWithoutDuplicates(activities, keywordHits)
		}
	}

	if len(activities) == 0 {
		// Nothing matched the interests; fall back to the city's top-rated.
		topRated, err := s.activityRepo.ListActivitiesByCity(ctx, request.City, 1, limit)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		activities = topRated
	}

	if len(activities) > limit {
		activities = activities[:limit]
	}

	out := make([]response_models.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		out = append(out, buildActivityResponse(a))
	}

	s.cache.Set(cacheKey, out, gocache.DefaultExpiration)
	return out, nil
}

func (s *ActivityService) findActivitiesByEmbedding(ctx context.Context, city string, interests []string) ([]db_models.Activity, error) {
	query := city
	if len(interests) > 0 {
		query = city + " " + strings.Join(interests, " ")
	}

	vector, err := s.aiClient.GetEmbedding(ctx, query)
	if err != nil {
		return nil, err
	}

	embedded, err := s.embeddingRepo.ListNearestByVector(vector, city, 15)
	if err != nil {
		return nil, err
	}
	if len(embedded) == 0 {
		// A city that was never searched has no vectors yet; index its
		// catalog on demand and retry once.
		if err := s.backfillCityEmbeddings(ctx, city); err != nil {
			return nil, err
		}
		embedded, err = s.embeddingRepo.ListNearestByVector(vector, city, 15)
		if err != nil {
			return nil, err
		}
	}
	if len(embedded) == 0 {
		return nil, fmt.Errorf("no activities found via embedding")
	}

	ids := make([]string, 0, len(embedded))
	for _, e := range embedded {
		ids = append(ids, e.ActivityID)
	}

	return s.activityRepo.ListActivitiesByIds(ctx, ids)
}

// backfillCityEmbeddings indexes a city's catalog into the vector store.
func (s *ActivityService) backfillCityEmbeddings(ctx context.Context, city string) error {
	activities, err := s.activityRepo.ListActivitiesByCity(ctx, city, 1, 50)
	if err != nil {
		return err
	}
	if len(activities) == 0 {
		return fmt.Errorf("no catalog activities to index for %s", city)
	}

	log.Printf("Backfilling %d activity embeddings for %s", len(activities), city)
	for _, a := range activities {
		text := strings.Join(append([]string{a.City, a.Name, a.Category}, a.Tags...), " ")
		vector, err := s.aiClient.GetEmbedding(ctx, text)
		if err != nil {
			return err
		}
		embedding := db_models.ActivityEmbedding{
			ActivityID: a.ID.String(),
			City:       a.City,
			Embedding:  vector,
		}
		if err := s.embeddingRepo.CreateActivityEmbedding(embedding); err != nil {
			return err
		}
	}
	return nil
}

func mergeActivitiesWithoutDuplicates(existing, extra []db_models.Activity) []db_models.Activity {
	seen := make(map[string]bool, len(existing))
	result := make([]db_models.Activity, 0, len(existing)+len(extra))

	for _, a := range existing {
		if !seen[a.ID.String()] {
			seen[a.ID.String()] = true
			result = append(result, a)
		}
	}
	for _, a := range extra {
		if !seen[a.ID.String()] {
			seen[a.ID.String()] = true
			result = append(result, a)
		}
	}
	return result
}

func suggestionCacheKey(city string, interests []string, limit int) string {
	return fmt.Sprintf("%s|%s|%d", strings.ToLower(city), strings.ToLower(strings.Join(interests, ",")), limit)
}

func buildActivityResponse(a db_models.Activity) response_models.ActivityResponse {
	return response_models.ActivityResponse{
		ID:          a.ID.String(),
		City:        a.City,
		Name:        a.Name,
		Category:    a.Category,
		Duration:    a.Duration,
		Rating:      a.Rating,
		PriceTier:   a.PriceTier,
		Description: a.Description,
		ImageURL:    a.ImageURL,
		Tags:        a.Tags,
	}
}
