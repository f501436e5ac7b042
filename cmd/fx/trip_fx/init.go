package trip_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"tripweaver/internal/api/controllers"
	"tripweaver/internal/repositories"
	"tripweaver/internal/services"
)

var Module = fx.Provide(
	provideTripRepo,
	provideTripService,
	provideTripsController)

func provideTripRepo(db *gorm.DB) repositories.TripRepository {
	return repositories.NewTripRepository(db)
}

func provideTripService(
	tripRepo repositories.TripRepository,
	activityRepo repositories.ActivityRepository,
	itineraryService services.ItineraryServiceInterface,
) services.TripServiceInterface {
	return services.NewTripService(tripRepo, activityRepo, itineraryService)
}

func provideTripsController(tripService services.TripServiceInterface) *controllers.TripsController {
	return controllers.NewTripsController(tripService)
}
