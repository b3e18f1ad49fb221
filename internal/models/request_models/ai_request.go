package request_models

import "time"

type TripGenerationRequest struct {
	Destination         string    `json:"destination" binding:"required"`
	StartDate           time.Time `json:"start_date" binding:"required"`
	EndDate             time.Time `json:"end_date" binding:"required"`
	BudgetLevel         string    `json:"budget_level"`
	AccommodationType   string    `json:"accommodation_type"`
	ActivityPreferences []string  `json:"activity_preferences"`
	DietaryRestrictions []string  `json:"dietary_restrictions"`
	AccessibilityNeeds  []string  `json:"accessibility_needs"`
	PacePreference      string    `json:"pace_preference"`
}

type ActivityRecommendationRequest struct {
	TripID      string   `json:"trip_id"`
	Destination string   `json:"destination"`
	Date        string   `json:"date"`
	Interests   []string `json:"interests"`
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
	TripID  string `json:"trip_id"`
}

type BudgetOptimizationRequest struct {
	TripID      string  `json:"trip_id" binding:"required"`
	TotalBudget float64 `json:"total_budget" binding:"required"`
	Currency    string  `json:"currency"`
}

type TripAnalysisRequest struct {
	TripID string `json:"trip_id" binding:"required"`
}
