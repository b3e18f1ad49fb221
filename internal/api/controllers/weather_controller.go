package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"sojourn/internal/adapters"
	"sojourn/pkg/utils"
)

type WeatherController struct {
	weather adapters.WeatherAdapter
}

func NewWeatherController(weather adapters.WeatherAdapter) *WeatherController {
	return &WeatherController{weather: weather}
}

// Forecast godoc
// @Summary Get a daily forecast for a coordinate range
// @Tags Weather
// @Produce json
// @Param latitude query number true "Latitude"
// @Param longitude query number true "Longitude"
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD), defaults to start"
// @Success 200 {object} adapters.Forecast
// @Security BearerAuth
// @Router /weather/forecast [get]
func (w *WeatherController) Forecast(c *gin.Context) {
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
	start, err := time.Parse("2006-01-02", c.Query("start_date"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid start_date")
		return
	}
	end := start
	if raw := c.Query("end_date"); raw != "" {
		end, err = time.Parse("2006-01-02", raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid end_date")
			return
		}
	}
	if end.Before(start) {
		utils.RespondError(c, http.StatusBadRequest, "end_date must not be before start_date")
		return
	}

	forecast, degraded, err := w.weather.Forecast(c.Request.Context(), lat, lon, start, end)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"forecast": forecast, "degraded": degraded}, "Forecast fetched")
}
