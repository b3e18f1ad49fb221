package db_models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActivityTypeSightseeing    = "sightseeing"
	ActivityTypeDining         = "dining"
	ActivityTypeAccommodation  = "accommodation"
	ActivityTypeTransportation = "transportation"
	ActivityTypeEntertainment  = "entertainment"
	ActivityTypeShopping       = "shopping"
	ActivityTypeRecreation     = "recreation"
	ActivityTypeRelaxation     = "relaxation"
	ActivityTypeOther          = "other"
)

func ValidActivityType(t string) bool {
	switch t {
	case ActivityTypeSightseeing, ActivityTypeDining, ActivityTypeAccommodation,
		ActivityTypeTransportation, ActivityTypeEntertainment, ActivityTypeShopping,
		ActivityTypeRecreation, ActivityTypeRelaxation, ActivityTypeOther:
		return true
	}
	return false
}

type Activity struct {
	BaseModel
	TripID        uuid.UUID `gorm:"type:uuid;index"`
	Title         string
	Description   *string
	StartDatetime time.Time
	EndDatetime   *time.Time
	AllDay        bool
	LocationID    *uuid.UUID `gorm:"type:uuid"`
	Notes         *string
	ActivityType  string
	Cost          *float64
	Currency      string
	// ReservationInfo holds provider-specific booking details as raw JSON.
	ReservationInfo string `gorm:"type:jsonb"`
}

// ActivityWeather is an optional 1:1 snapshot keyed by activity id.
type ActivityWeather struct {
	BaseModel
	ActivityID               uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Temperature              *float64
	TemperatureMin           *float64
	TemperatureMax           *float64
	Condition                *string
	PrecipitationProbability *float64
	Humidity                 *float64
	WindSpeed                *float64
	WindDirection            *string
	CloudCover               *float64
	Sunrise                  *time.Time
	Sunset                   *time.Time
	ForecastTimestamp        *time.Time
}
