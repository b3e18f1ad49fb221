package response_models

import "time"

type LocationResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Address   *string  `json:"address,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	PlaceID   *string  `json:"place_id,omitempty"`
}

type WeatherResponse struct {
	Temperature              *float64   `json:"temperature,omitempty"`
	TemperatureMin           *float64   `json:"temperature_min,omitempty"`
	TemperatureMax           *float64   `json:"temperature_max,omitempty"`
	Condition                *string    `json:"condition,omitempty"`
	PrecipitationProbability *float64   `json:"precipitation_probability,omitempty"`
	Humidity                 *float64   `json:"humidity,omitempty"`
	WindSpeed                *float64   `json:"wind_speed,omitempty"`
	WindDirection            *string    `json:"wind_direction,omitempty"`
	CloudCover               *float64   `json:"cloud_cover,omitempty"`
	Sunrise                  *time.Time `json:"sunrise,omitempty"`
	Sunset                   *time.Time `json:"sunset,omitempty"`
	ForecastTimestamp        *time.Time `json:"forecast_timestamp,omitempty"`
}

type ActivityResponse struct {
	ID            string            `json:"id"`
	TripID        string            `json:"trip_id"`
	Title         string            `json:"title"`
	Description   *string           `json:"description,omitempty"`
	StartDatetime time.Time         `json:"start_datetime"`
	EndDatetime   *time.Time        `json:"end_datetime,omitempty"`
	AllDay        bool              `json:"all_day"`
	Location      *LocationResponse `json:"location,omitempty"`
	Notes         *string           `json:"notes,omitempty"`
	ActivityType  string            `json:"activity_type"`
	Cost          *float64          `json:"cost,omitempty"`
	Currency      string            `json:"currency"`
	WeatherData   *WeatherResponse  `json:"weather_data,omitempty"`
	Images        []string          `json:"images"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type TripResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Destination string             `json:"destination"`
	StartDate   time.Time          `json:"start_date"`
	EndDate     time.Time          `json:"end_date"`
	Notes       *string            `json:"notes,omitempty"`
	Status      string             `json:"status"`
	IsArchived  bool               `json:"is_archived"`
	IsDraft     bool               `json:"is_draft"`
	IsShared    bool               `json:"is_shared"`
	OwnerID     string             `json:"owner_id"`
	Activities  []ActivityResponse `json:"activities"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	PublishedAt *time.Time         `json:"published_at,omitempty"`
}

type TripSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Destination   string    `json:"destination"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Status        string    `json:"status"`
	IsArchived    bool      `json:"is_archived"`
	IsDraft       bool      `json:"is_draft"`
	IsShared      bool      `json:"is_shared"`
	ActivityCount int       `json:"activity_count"`
	CoverImageURL *string   `json:"cover_image_url,omitempty"`
}

type TripShareResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Username        string    `json:"username"`
	FirstName       string    `json:"first_name,omitempty"`
	LastName        string    `json:"last_name,omitempty"`
	Email           string    `json:"email"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty"`
	Permission      string    `json:"permission"`
	CreatedAt       time.Time `json:"created_at"`
}

type TripImageResponse struct {
	ID           string  `json:"id"`
	TripID       string  `json:"trip_id"`
	ActivityID   *string `json:"activity_id,omitempty"`
	URL          string  `json:"url"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
	Caption      *string `json:"caption,omitempty"`
}
