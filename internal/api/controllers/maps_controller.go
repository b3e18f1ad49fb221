package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"sojourn/internal/adapters"
	"sojourn/pkg/utils"
)

type MapsController struct {
	maps adapters.MapsAdapter
}

func NewMapsController(maps adapters.MapsAdapter) *MapsController {
	return &MapsController{maps: maps}
}

// Search godoc
// @Summary Search for places
// @Tags Maps
// @Produce json
// @Param query query string true "Search text"
// @Param latitude query number false "Bias latitude"
// @Param longitude query number false "Bias longitude"
// @Success 200 {array} adapters.Place
// @Security BearerAuth
// @Router /maps/search [get]
func (m *MapsController) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		utils.RespondError(c, http.StatusBadRequest, "query is required")
		return
	}

	var lat, lon *float64
	if v, ok := queryFloat(c, "latitude"); ok {
		lat = &v
	}
	if v, ok := queryFloat(c, "longitude"); ok {
		lon = &v
	}

	places, degraded, err := m.maps.Search(c.Request.Context(), query, lat, lon)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"places": places, "degraded": degraded}, "Places fetched")
}

func (m *MapsController) PlaceDetails(c *gin.Context) {
	placeID := c.Query("place_id")
	if placeID == "" {
		utils.RespondError(c, http.StatusBadRequest, "place_id is required")
		return
	}

	details, degraded, err := m.maps.PlaceDetails(c.Request.Context(), placeID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"place": details, "degraded": degraded}, "Place details fetched")
}

// Directions godoc
// @Summary Get directions between two coordinates
// @Tags Maps
// @Produce json
// @Param origin_lat query number true "Origin latitude"
// @Param origin_lng query number true "Origin longitude"
// @Param dest_lat query number true "Destination latitude"
// @Param dest_lng query number true "Destination longitude"
// @Param mode query string false "DRIVING, WALKING or TRANSIT" default(DRIVING)
// @Success 200 {object} adapters.Directions
// @Security BearerAuth
// @Router /maps/directions [get]
func (m *MapsController) Directions(c *gin.Context) {
	originLat, ok1 := queryFloat(c, "origin_lat")
	originLon, ok2 := queryFloat(c, "origin_lng")
	destLat, ok3 := queryFloat(c, "dest_lat")
	destLon, ok4 := queryFloat(c, "dest_lng")
	if !ok1 || !ok2 || !ok3 || !ok4 {
		utils.RespondError(c, http.StatusBadRequest, "origin and destination coordinates are required")
		return
	}

	mode := strings.ToUpper(c.DefaultQuery("mode", "DRIVING"))
	switch mode {
	case "DRIVING", "WALKING", "TRANSIT":
	default:
		utils.RespondError(c, http.StatusBadRequest, "mode must be DRIVING, WALKING or TRANSIT")
		return
	}

	directions, degraded, err := m.maps.Directions(c.Request.Context(), originLat, originLon, destLat, destLon, mode)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"directions": directions, "degraded": degraded}, "Directions fetched")
}

func (m *MapsController) Geocode(c *gin.Context) {
	address := strings.TrimSpace(c.Query("address"))
	if address == "" {
		utils.RespondError(c, http.StatusBadRequest, "address is required")
		return
	}

	place, degraded, err := m.maps.Geocode(c.Request.Context(), address)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"place": place, "degraded": degraded}, "Address geocoded")
}

func (m *MapsController) ReverseGeocode(c *gin.Context) {
	lat, ok := queryFloat(c, "latitude")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid latitude")
		return
	}
	lon, ok := queryFloat(c, "longitude")
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Invalid longitude")
		return
	}

	place, degraded, err := m.maps.ReverseGeocode(c.Request.Context(), lat, lon)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"place": place, "degraded": degraded}, "Coordinate resolved")
}
