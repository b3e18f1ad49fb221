package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"sojourn/internal/models/request_models"
	"sojourn/internal/services"
	"sojourn/pkg/utils"
)

type ActivityController struct {
	activityService services.ActivityServiceInterface
}

func NewActivityController(activityService services.ActivityServiceInterface) *ActivityController {
	return &ActivityController{activityService: activityService}
}

// CreateActivity godoc
// @Summary Create an activity on a trip
// @Tags Activity
// @Accept json
// @Produce json
// @Param trip_id query string true "Trip ID"
// @Param request body request_models.ActivityInput true "Activity payload"
// @Success 201 {object} response_models.ActivityResponse
// @Security BearerAuth
// @Router /activities [post]
func (a *ActivityController) CreateActivity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tripID, ok := queryUUID(c, "trip_id")
	if !ok {
		return
	}

	var in request_models.ActivityInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	activity, err := a.activityService.CreateActivity(c.Request.Context(), tripID, userID, in)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, activity, "Activity created")
}

func (a *ActivityController) GetActivity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	activityID, ok := pathUUID(c, "activityId")
	if !ok {
		return
	}

	activity, err := a.activityService.GetActivity(c.Request.Context(), activityID, userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, activity, "Activity fetched")
}

func (a *ActivityController) UpdateActivity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	activityID, ok := pathUUID(c, "activityId")
	if !ok {
		return
	}

	var in request_models.ActivityInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	activity, err := a.activityService.UpdateActivity(c.Request.Context(), activityID, userID, in)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, activity, "Activity updated")
}

func (a *ActivityController) DeleteActivity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	activityID, ok := pathUUID(c, "activityId")
	if !ok {
		return
	}

	if err := a.activityService.DeleteActivity(c.Request.Context(), activityID, userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Activity deleted")
}

// ListByTrip godoc
// @Summary List a trip's activities
// @Tags Activity
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param date query string false "Filter by day (YYYY-MM-DD)"
// @Param activity_type query string false "Filter by activity type"
// @Success 200 {array} response_models.ActivityResponse
// @Security BearerAuth
// @Router /activities/trip/{tripId} [get]
func (a *ActivityController) ListByTrip(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "tripId")
	if !ok {
		return
	}

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		// An unparseable date filter is ignored, not an error.
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			date = &parsed
		}
	}
	var activityType *string
	if raw := c.Query("activity_type"); raw != "" {
		activityType = &raw
	}

	activities, err := a.activityService.ListActivities(c.Request.Context(), tripID, userID, date, activityType)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, activities, "Activities fetched")
}
