package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"tripweaver/internal/models/request_models"
	"tripweaver/internal/services"
	"tripweaver/pkg/utils"
)

type TripsController struct {
	tripService services.TripServiceInterface
}

func NewTripsController(tripService services.TripServiceInterface) *TripsController {
	return &TripsController{
		tripService: tripService,
	}
}

// CreateTrip godoc
// @Summary Create a trip
// @Tags Trips
// @Accept json
// @Produce json
// @Param request body request_models.CreateTripRequest true "City, dates, participants, budget"
// @Success 200 {object} response_models.TripResponse
// @Security BearerAuth
// @Router /trips [post]
func (t *TripsController) CreateTrip(c *gin.Context) {
	var req request_models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.City == "" {
		utils.RespondError(c, http.StatusBadRequest, "City, start date and end date are required")
		return
	}

	userId := c.GetString("user_id")

	trip, err := t.tripService.CreateTrip(c.Request.Context(), userId, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip created successfully")
}

// GetTripsByUserId godoc
// @Summary List the authenticated user's trips
// @Tags Trips
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(5) minimum(1) maximum(100)
// @Success 200 {array} response_models.TripResponse
// @Security BearerAuth
// @Router /trips [get]
func (t *TripsController) GetTripsByUserId(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "5")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	userId := c.GetString("user_id")

	trips, err := t.tripService.ListTripsByUserId(c.Request.Context(), page, pageSize, userId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trips, "Trips fetched successfully")
}

// GetTripDetails godoc
// @Summary Get trip details by ID
// @Description Fetch a trip with its curated selection and materialized itinerary, if one was generated
// @Tags Trips
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} response_models.TripDetailResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId} [get]
func (t *TripsController) GetTripDetails(c *gin.Context) {
	tripId := c.Param("tripId")
	if tripId == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID is required")
		return
	}

	trip, err := t.tripService.GetTripDetails(c.Request.Context(), tripId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip details fetched successfully")
}

// DeleteTrip godoc
// @Summary Delete a trip
// @Tags Trips
// @Param tripId path string true "Trip ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId} [delete]
func (t *TripsController) DeleteTrip(c *gin.Context) {
	tripId := c.Param("tripId")
	if tripId == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID is required")
		return
	}

	if err := t.tripService.DeleteTrip(c.Request.Context(), tripId); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Trip deleted successfully")
}

// AddActivityToTrip godoc
// @Summary Add an activity to a trip's selection
// @Tags Trips
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param request body request_models.AddActivityToTripRequest true "Activity ID and position"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/activities [post]
func (t *TripsController) AddActivityToTrip(c *gin.Context) {
	tripId := c.Param("tripId")

	var req request_models.AddActivityToTripRequest
	if err := c.ShouldBindJSON(&req); err != nil || tripId == "" || req.ActivityID == "" {
		utils.RespondError(c, http.StatusBadRequest, "TripID and ActivityID are required")
		return
	}

	if err := t.tripService.AddActivityToTrip(c.Request.Context(), tripId, req.ActivityID, req.Position); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Activity added to trip successfully")
}

// RemoveActivityFromTrip godoc
// @Summary Remove an activity from a trip's selection
// @Tags Trips
// @Param tripId path string true "Trip ID"
// @Param activityId path string true "Activity ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/activities/{activityId} [delete]
func (t *TripsController) RemoveActivityFromTrip(c *gin.Context) {
	tripId := c.Param("tripId")
	activityId := c.Param("activityId")
	if tripId == "" || activityId == "" {
		utils.RespondError(c, http.StatusBadRequest, "TripID and ActivityID are required")
		return
	}

	if err := t.tripService.RemoveActivityFromTrip(c.Request.Context(), tripId, activityId); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Activity removed from trip successfully")
}

// GenerateTripItinerary godoc
// @Summary Generate and persist the trip's itinerary
// @Description Build a day-by-day itinerary from the trip's curated selection and replace the previously materialized plan
// @Tags Trips
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} response_models.ItineraryResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/itinerary [post]
func (t *TripsController) GenerateTripItinerary(c *gin.Context) {
	tripId := c.Param("tripId")
	if tripId == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID is required")
		return
	}

	itinerary, err := t.tripService.GenerateAndSaveItinerary(c.Request.Context(), tripId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Itinerary generated successfully")
}
