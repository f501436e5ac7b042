package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"tripweaver/cmd/fx/activity_fx"
	"tripweaver/cmd/fx/db_fx"
	"tripweaver/cmd/fx/itinerary_fx"
	"tripweaver/cmd/fx/planner_fx"
	"tripweaver/cmd/fx/trip_fx"
	"tripweaver/internal/api/controllers"
	"tripweaver/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	app := fx.New(
		db_fx.Module,
		planner_fx.Module,
		itinerary_fx.Module,
		activity_fx.Module,
		trip_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	itineraryController *controllers.ItineraryController,
	activitiesController *controllers.ActivitiesController,
	tripsController *controllers.TripsController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, itineraryController, activitiesController, tripsController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	itineraryController *controllers.ItineraryController,
	activitiesController *controllers.ActivitiesController,
	tripsController *controllers.TripsController) {

	itineraryGroup := r.Group("/itineraries")
	itineraryGroup.POST("/generate", itineraryController.GenerateItinerary)

	r.GET("/cities/:city/activities", activitiesController.GetActivitiesByCity)

	activitiesGroup := r.Group("/activities")
	activitiesGroup.GET("/:id", activitiesController.GetActivityById)
	activitiesGroup.POST("/suggest", activitiesController.SuggestActivities)

	tripsGroup := r.Group("/trips")
	tripsGroup.Use(middleware.JWTAuthMiddleware())
	tripsGroup.POST("", tripsController.CreateTrip)
	tripsGroup.GET("", tripsController.GetTripsByUserId)
	tripsGroup.GET("/:tripId", tripsController.GetTripDetails)
	tripsGroup.DELETE("/:tripId", tripsController.DeleteTrip)
	tripsGroup.POST("/:tripId/activities", tripsController.AddActivityToTrip)
	tripsGroup.DELETE("/:tripId/activities/:activityId", tripsController.RemoveActivityFromTrip)
	tripsGroup.POST("/:tripId/itinerary", tripsController.GenerateTripItinerary)
}
