package response_models

type TripGenerationResponse struct {
	TripID   string       `json:"trip_id"`
	Trip     TripResponse `json:"trip"`
	Degraded bool         `json:"degraded,omitempty"`
}

type ActivityRecommendation struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ActivityType string   `json:"activity_type"`
	Cost         *float64 `json:"estimated_cost,omitempty"`
	Reason       string   `json:"reason,omitempty"`
}

type ActivityRecommendationResponse struct {
	Recommendations []ActivityRecommendation `json:"recommendations"`
	Degraded        bool                     `json:"degraded,omitempty"`
}

type ChatResponse struct {
	Reply    string `json:"reply"`
	Degraded bool   `json:"degraded,omitempty"`
}

type BudgetAllocation struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Note     string  `json:"note,omitempty"`
}

type BudgetOptimizationResponse struct {
	TotalBudget float64            `json:"total_budget"`
	Currency    string             `json:"currency"`
	Allocations []BudgetAllocation `json:"allocations"`
	Advice      string             `json:"advice,omitempty"`
	Degraded    bool               `json:"degraded,omitempty"`
}

type TripAnalysisResponse struct {
	Summary     string   `json:"summary"`
	Strengths   []string `json:"strengths"`
	Suggestions []string `json:"suggestions"`
	Degraded    bool     `json:"degraded,omitempty"`
}
