package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"sojourn/internal/adapters"
	"sojourn/pkg/utils"
)

type ExpediaController struct {
	expedia adapters.ExpediaAdapter
}

func NewExpediaController(expedia adapters.ExpediaAdapter) *ExpediaController {
	return &ExpediaController{expedia: expedia}
}

// SearchActivities godoc
// @Summary Search bookable activities at a destination
// @Tags Expedia
// @Produce json
// @Param location query string true "Destination"
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Param activity_type query string false "Filter by activity type"
// @Param limit query int false "Max results" default(10)
// @Success 200 {array} adapters.BookableActivity
// @Security BearerAuth
// @Router /expedia/activities/search [get]
func (e *ExpediaController) SearchActivities(c *gin.Context) {
	location := strings.TrimSpace(c.Query("location"))
	if location == "" {
		utils.RespondError(c, http.StatusBadRequest, "location is required")
		return
	}
	start, end, ok := dateRange(c, "start_date", "end_date")
	if !ok {
		return
	}

	activities, degraded, err := e.expedia.SearchActivities(
		c.Request.Context(), location, start, end, c.Query("activity_type"), queryInt(c, "limit", 10))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"activities": activities, "degraded": degraded}, "Activities fetched")
}

func (e *ExpediaController) ActivityDetails(c *gin.Context) {
	activityID := c.Param("activityId")
	if activityID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Activity ID is required")
		return
	}

	details, degraded, err := e.expedia.ActivityDetails(c.Request.Context(), activityID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"activity": details, "degraded": degraded}, "Activity details fetched")
}

// SearchHotels godoc
// @Summary Search hotels at a destination
// @Tags Expedia
// @Produce json
// @Param location query string true "Destination"
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Param guests query int false "Guests" default(2)
// @Param rooms query int false "Rooms" default(1)
// @Param limit query int false "Max results" default(10)
// @Success 200 {array} adapters.Hotel
// @Security BearerAuth
// @Router /expedia/hotels/search [get]
func (e *ExpediaController) SearchHotels(c *gin.Context) {
	location := strings.TrimSpace(c.Query("location"))
	if location == "" {
		utils.RespondError(c, http.StatusBadRequest, "location is required")
		return
	}
	checkIn, checkOut, ok := dateRange(c, "check_in", "check_out")
	if !ok {
		return
	}

	hotels, degraded, err := e.expedia.SearchHotels(
		c.Request.Context(), location, checkIn, checkOut,
		queryInt(c, "guests", 2), queryInt(c, "rooms", 1), queryInt(c, "limit", 10))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"hotels": hotels, "degraded": degraded}, "Hotels fetched")
}

func (e *ExpediaController) HotelDetails(c *gin.Context) {
	hotelID := c.Param("hotelId")
	if hotelID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Hotel ID is required")
		return
	}

	details, degraded, err := e.expedia.HotelDetails(c.Request.Context(), hotelID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"hotel": details, "degraded": degraded}, "Hotel details fetched")
}

func dateRange(c *gin.Context, startName, endName string) (time.Time, time.Time, bool) {
	start, err := time.Parse("2006-01-02", c.Query(startName))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid "+startName)
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse("2006-01-02", c.Query(endName))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid "+endName)
		return time.Time{}, time.Time{}, false
	}
	if end.Before(start) {
		utils.RespondError(c, http.StatusBadRequest, endName+" must not be before "+startName)
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
