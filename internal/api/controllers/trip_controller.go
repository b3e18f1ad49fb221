package controllers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"sojourn/internal/models/request_models"
	"sojourn/internal/services"
	"sojourn/pkg/utils"
)

type TripController struct {
	tripService  services.TripServiceInterface
	mediaService services.MediaServiceInterface
}

func NewTripController(tripService services.TripServiceInterface, mediaService services.MediaServiceInterface) *TripController {
	return &TripController{
		tripService:  tripService,
		mediaService: mediaService,
	}
}

// CreateTrip godoc
// @Summary Create a trip, optionally with embedded activities
// @Tags Trip
// @Accept json
// @Produce json
// @Param request body request_models.CreateTripRequest true "Trip payload"
// @Success 201 {object} response_models.TripResponse
// @Security BearerAuth
// @Router /trips [post]
func (t *TripController) CreateTrip(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	trip, err := t.tripService.CreateTrip(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, trip, "Trip created")
}

// ListTrips godoc
// @Summary List trips owned by or shared with the caller
// @Tags Trip
// @Produce json
// @Param status query string false "Filter owned trips by status"
// @Param archived query bool false "Filter owned trips by archived flag"
// @Param shared query bool false "Filter owned trips by shared flag"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} response_models.TripSummary
// @Security BearerAuth
// @Router /trips [get]
func (t *TripController) ListTrips(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := services.TripListQuery{
		Limit:  queryInt(c, "limit", 20),
		Offset: queryInt(c, "offset", 0),
	}
	if status := c.Query("status"); status != "" {
		query.Status = &status
	}
	if raw := c.Query("archived"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			query.Archived = &v
		}
	}
	if raw := c.Query("shared"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			query.Shared = &v
		}
	}

	trips, err := t.tripService.ListTrips(c.Request.Context(), userID, query)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, trips, "Trips fetched")
}

// GetTrip godoc
// @Summary Get a trip with its activities
// @Tags Trip
// @Produce json
// @Param tripId path string true "Trip ID"
// @Success 200 {object} response_models.TripResponse
// @Security BearerAuth
// @Router /trips/{tripId} [get]
func (t *TripController) GetTrip(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "tripId")
	if !ok {
		return
	}

	trip, err := t.tripService.GetTrip(c.Request.Context(), tripID, userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, trip, "Trip fetched")
}

func (t *TripController) UpdateTrip(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "tripId")
	if !ok {
		return
	}

	var req request_models.UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	trip, err := t.tripService.UpdateTrip(c.Request.Context(), tripID, userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, trip, "Trip updated")
}

func (t *TripController) DeleteTrip(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "tripId")
	if !ok {
		return
	}

	if err := t.tripService.DeleteTrip(c.Request.Context(), tripID, userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Trip deleted")
}

// PublishTrip flips a draft into an upcoming trip. Re-publishing conflicts.
func (t *TripController) PublishTrip(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "tripId")
	if !ok {
		return
	}

	trip, err := t.tripService.PublishTrip(c.Request.Context(), tripID, userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, trip, "Trip published")
}

func (t *TripController) ArchiveTrip(c *gin.Context) {
	t.setArchived(c, true)
}

func (t *TripController) UnarchiveTrip(c *gin.Context) {
	t.setArchived(c, false)
}

func (t *TripController) setArchived(c *gin.Context, archived bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "tripId")
	if !ok {
		return
	}

	var err error
	message := "Trip unarchived"
	if archived {
		err = t.tripService.ArchiveTrip(c.Request.Context(), tripID, userID)
		message = "Trip archived"
	} else {
		err = t.tripService.UnarchiveTrip(c.Request.Context(), tripID, userID)
	}
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, message)
}

// ShareTrip godoc
// @Summary Share a trip with another user
// @Tags Trip
// @Accept json
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param request body request_models.ShareTripRequest true "Share payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{tripId}/share [post]
func (t *TripController) ShareTrip(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "tripId")
	if !ok {
		return
	}

	var req request_models.ShareTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	targetID, err := uuid.Parse(req.UserID)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid user_id")
		return
	}

	outcome, err := t.tripService.ShareTrip(c.Request.Context(), tripID, userID, targetID, req.Permission)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	if outcome == services.ShareCreated {
		utils.RespondCreated(c, gin.H{"outcome": outcome}, "Trip shared")
		return
	}
	utils.RespondSuccess(c, gin.H{"outcome": outcome}, "Share updated")
}

func (t *TripController) ListShares(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "tripId")
	if !ok {
		return
	}

	shares, err := t.tripService.ListShares(c.Request.Context(), tripID, userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, shares, "Shares fetched")
}

func (t *TripController) RemoveShare(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "tripId")
	if !ok {
		return
	}
	targetID, ok := pathUUID(c, "userId")
	if !ok {
		return
	}

	if err := t.tripService.RemoveShare(c.Request.Context(), tripID, userID, targetID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Share removed")
}

// UploadTripPhoto godoc
// @Summary Upload a photo to a trip
// @Tags Trip
// @Accept multipart/form-data
// @Produce json
// @Param tripId path string true "Trip ID"
// @Param file formData file true "Image file"
// @Param activity_id formData string false "Attach to an activity"
// @Param caption formData string false "Caption"
// @Success 201 {object} response_models.TripImageResponse
// @Security BearerAuth
// @Router /trips/{tripId}/images [post]
func (t *TripController) UploadTripPhoto(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "tripId")
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Image file is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Could not read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Could not read uploaded file")
		return
	}

	upload := services.TripPhotoUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}
	if raw := c.PostForm("activity_id"); raw != "" {
		activityID, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid activity_id")
			return
		}
		upload.ActivityID = &activityID
	}
	if caption := c.PostForm("caption"); caption != "" {
		upload.Caption = &caption
	}

	photo, err := t.mediaService.UploadTripPhoto(c.Request.Context(), tripID, userID, upload)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, photo, "Photo uploaded")
}

func (t *TripController) ListTripPhotos(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "tripId")
	if !ok {
		return
	}

	photos, err := t.mediaService.ListTripPhotos(c.Request.Context(), tripID, userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, photos, "Photos fetched")
}

func (t *TripController) DeleteTripPhoto(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tripID, ok := pathUUID(c, "tripId")
	if !ok {
		return
	}
	photoID, ok := pathUUID(c, "photoId")
	if !ok {
		return
	}

	if err := t.mediaService.DeleteTripPhoto(c.Request.Context(), tripID, photoID, userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Photo deleted")
}
