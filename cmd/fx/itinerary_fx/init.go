package itinerary_fx

import (
	"log"
	"os"
	"strconv"
	"time"

	"go.uber.org/fx"
	"tripweaver/internal/api/controllers"
	"tripweaver/internal/services"
	"tripweaver/pkg/utils"
)

var Module = fx.Provide(
	ProvideItineraryService,
	ProvideItineraryController)

func ProvideItineraryService(client utils.PlannerClientInterface) services.ItineraryServiceInterface {
	return services.NewItineraryService(client, plannerTimeout())
}

func ProvideItineraryController(itineraryService services.ItineraryServiceInterface) *controllers.ItineraryController {
	return controllers.NewItineraryController(itineraryService)
}

// plannerTimeout reads the AI stage's hard deadline from the environment,
// defaulting to 10 seconds.
func plannerTimeout() time.Duration {
	raw := os.Getenv("PLANNER_TIMEOUT_SECONDS")
	if raw == "" {
		return 10 * time.Second
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds < 1 {
		log.Printf("Invalid PLANNER_TIMEOUT_SECONDS %q, using default", raw)
		return 10 * time.Second
	}
	return time.Duration(seconds) * time.Second
}
