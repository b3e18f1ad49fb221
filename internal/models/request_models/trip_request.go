package request_models

import "time"

type LocationInput struct {
	ID        string   `json:"id"`
	Name      string   `json:"name" binding:"required"`
	Address   *string  `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	PlaceID   *string  `json:"place_id"`
}

type WeatherInput struct {
	Temperature              *float64   `json:"temperature"`
	TemperatureMin           *float64   `json:"temperature_min"`
	TemperatureMax           *float64   `json:"temperature_max"`
	Condition                *string    `json:"condition"`
	PrecipitationProbability *float64   `json:"precipitation_probability"`
	Humidity                 *float64   `json:"humidity"`
	WindSpeed                *float64   `json:"wind_speed"`
	WindDirection            *string    `json:"wind_direction"`
	CloudCover               *float64   `json:"cloud_cover"`
	Sunrise                  *time.Time `json:"sunrise"`
	Sunset                   *time.Time `json:"sunset"`
	ForecastTimestamp        *time.Time `json:"forecast_timestamp"`
}

type ActivityInput struct {
	ID              string         `json:"id"`
	Title           string         `json:"title" binding:"required"`
	Description     *string        `json:"description"`
	StartDatetime   time.Time      `json:"start_datetime" binding:"required"`
	EndDatetime     *time.Time     `json:"end_datetime"`
	AllDay          bool           `json:"all_day"`
	Location        *LocationInput `json:"location"`
	Notes           *string        `json:"notes"`
	ActivityType    string         `json:"activity_type"`
	Cost            *float64       `json:"cost"`
	Currency        string         `json:"currency"`
	ReservationInfo map[string]any `json:"reservation_info"`
	WeatherData     *WeatherInput  `json:"weather_data"`
	Images          []string       `json:"images"`
}

type CreateTripRequest struct {
	Title       string          `json:"title" binding:"required"`
	Destination string          `json:"destination" binding:"required"`
	StartDate   time.Time       `json:"start_date" binding:"required"`
	EndDate     time.Time       `json:"end_date" binding:"required"`
	Notes       *string         `json:"notes"`
	Status      string          `json:"status"`
	IsArchived  bool            `json:"is_archived"`
	IsShared    bool            `json:"is_shared"`
	Activities  []ActivityInput `json:"activities"`
}

type UpdateTripRequest struct {
	Title       *string    `json:"title"`
	Destination *string    `json:"destination"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Notes       *string    `json:"notes"`
	Status      *string    `json:"status"`
	IsArchived  *bool      `json:"is_archived"`
}

type ShareTripRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	Permission string `json:"permission"`
}
