package activity_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"tripweaver/internal/api/controllers"
	"tripweaver/internal/repositories"
	"tripweaver/internal/services"
	"tripweaver/pkg/utils"
)

var Module = fx.Provide(
	provideActivityRepo,
	provideActivityEmbeddingRepo,
	provideActivityService,
	provideActivitiesController)

func provideActivityRepo(db *gorm.DB) repositories.ActivityRepository {
	return repositories.NewActivityRepository(db)
}

func provideActivityEmbeddingRepo(db *gorm.DB) repositories.IActivityEmbeddingRepository {
	return repositories.NewActivityEmbeddingRepository(db)
}

func provideActivityService(
	activityRepo repositories.ActivityRepository,
	embeddingRepo repositories.IActivityEmbeddingRepository,
	aiClient utils.PlannerClientInterface,
) services.ActivityServiceInterface {
	return services.NewActivityService(activityRepo, embeddingRepo, aiClient)
}

func provideActivitiesController(activityService services.ActivityServiceInterface) *controllers.ActivitiesController {
	return controllers.NewActivitiesController(activityService)
}
