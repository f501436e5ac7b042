package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"tripweaver/internal/models/request_models"
	"tripweaver/internal/services"
	"tripweaver/pkg/utils"
)

type ActivitiesController struct {
	activityService services.ActivityServiceInterface
}

func NewActivitiesController(activityService services.ActivityServiceInterface) *ActivitiesController {
	return &ActivitiesController{
		activityService: activityService,
	}
}

// GetActivitiesByCity godoc
// @Summary List activities for a city
// @Description Fetch a paginated list of catalog activities for a destination city
// @Tags Activities
// @Accept json
// @Produce json
// @Param city path string true "City name"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20) minimum(1) maximum(100)
// @Success 200 {array} response_models.ActivityResponse
// @Router /cities/{city}/activities [get]
func (a *ActivitiesController) GetActivitiesByCity(c *gin.Context) {
	city := c.Param("city")
	if city == "" {
		utils.RespondError(c, http.StatusBadRequest, "City is required")
		return
	}

	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "20")

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

	activities, err := a.activityService.ListActivitiesByCity(c.Request.Context(), city, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, activities, "Activities fetched successfully")
}

// GetActivityById godoc
// @Summary Get activity details by ID
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} response_models.ActivityResponse
// @Failure 404 {object} utils.APIResponse
// @Router /activities/{id} [get]
func (a *ActivitiesController) GetActivityById(c *gin.Context) {
	activityId := c.Param("id")
	if activityId == "" {
		utils.RespondError(c, http.StatusBadRequest, "Activity ID is required")
		return
	}

	activity, err := a.activityService.GetActivityById(c.Request.Context(), activityId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, activity, "Activity fetched successfully")
}

// SuggestActivities godoc
// @Summary Suggest activities for a destination
// @Description Suggest catalog activities matching the user's interests, using embedding similarity with a keyword fallback
// @Tags Activities
// @Accept json
// @Produce json
// @Param request body request_models.SuggestActivitiesRequest true "City, interests and result limit"
// @Success 200 {array} response_models.ActivityResponse
// @Router /activities/suggest [post]
func (a *ActivitiesController) SuggestActivities(c *gin.Context) {
	var req request_models.SuggestActivitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.City == "" {
		utils.RespondError(c, http.StatusBadRequest, "City is required")
		return
	}

	suggestions, err := a.activityService.SuggestActivities(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, suggestions, "Activity suggestions fetched successfully")
}
