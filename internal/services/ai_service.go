package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"sojourn/internal/adapters"
	"sojourn/internal/models/db_models"
	"sojourn/internal/models/request_models"
	"sojourn/internal/models/response_models"
	"sojourn/pkg/utils"
)

type AIServiceInterface interface {
	GenerateTrip(ctx context.Context, userID uuid.UUID, req request_models.TripGenerationRequest) (*response_models.TripGenerationResponse, error)
	RecommendActivities(ctx context.Context, userID uuid.UUID, req request_models.ActivityRecommendationRequest) (*response_models.ActivityRecommendationResponse, error)
	Chat(ctx context.Context, userID uuid.UUID, req request_models.ChatRequest) (*response_models.ChatResponse, error)
	OptimizeBudget(ctx context.Context, userID uuid.UUID, req request_models.BudgetOptimizationRequest) (*response_models.BudgetOptimizationResponse, error)
	AnalyzeTrip(ctx context.Context, userID uuid.UUID, req request_models.TripAnalysisRequest) (*response_models.TripAnalysisResponse, error)
}

type AIService struct {
	ai     adapters.AIClient
	trips  TripServiceInterface
	logger zerolog.Logger
}

func NewAIService(ai adapters.AIClient, trips TripServiceInterface, logger zerolog.Logger) AIServiceInterface {
	return &AIService{ai: ai, trips: trips, logger: logger}
}

const plannerSystemPrompt = "You are a travel planning assistant. " +
	"Answer with practical, specific suggestions grounded in the traveler's destination and dates. " +
	"When asked for structured output, reply with JSON only."

// generatedTrip is the shape the model is asked to produce for itineraries.
type generatedTrip struct {
	Title      string              `json:"title"`
	Notes      string              `json:"notes"`
	Activities []generatedActivity `json:"activities"`
}

type generatedActivity struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Day           int      `json:"day"`
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	ActivityType  string   `json:"activity_type"`
	EstimatedCost *float64 `json:"estimated_cost"`
	LocationName  string   `json:"location_name"`
}

func (s *AIService) GenerateTrip(ctx context.Context, userID uuid.UUID, req request_models.TripGenerationRequest) (*response_models.TripGenerationResponse, error) {
	if strings.TrimSpace(req.Destination) == "" {
		return nil, utils.ErrInvalidInput
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, utils.ErrInvalidDateRange
	}

	var (
		plan     generatedTrip
		degraded bool
	)

	if !s.ai.Configured() {
		plan = placeholderItinerary(req)
		degraded = true
	} else {
		text, err := s.ai.Complete(ctx, plannerSystemPrompt, tripPrompt(req))
		if err != nil {
			s.logger.Error().Err(err).Str("destination", req.Destination).Msg("trip generation failed")
			return nil, utils.ErrUpstreamUnavailable
		}
		if err := json.Unmarshal([]byte(extractJSON(text)), &plan); err != nil || len(plan.Activities) == 0 {
			// Models occasionally answer in prose despite instructions.
			plan = scrapeItinerary(text, req)
		}
	}

	createReq := request_models.CreateTripRequest{
		Title:       plan.Title,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      db_models.TripStatusDraft,
		Activities:  planToActivityInputs(plan, req.StartDate, req.EndDate),
	}
	if createReq.Title == "" {
		createReq.Title = fmt.Sprintf("Trip to %s", req.Destination)
	}
	if plan.Notes != "" {
		createReq.Notes = &plan.Notes
	}

	trip, err := s.trips.CreateTrip(ctx, userID, createReq)
	if err != nil {
		return nil, err
	}
	return &response_models.TripGenerationResponse{
		TripID:   trip.ID,
		Trip:     *trip,
		Degraded: degraded,
	}, nil
}

func (s *AIService) RecommendActivities(ctx context.Context, userID uuid.UUID, req request_models.ActivityRecommendationRequest) (*response_models.ActivityRecommendationResponse, error) {
	destination := strings.TrimSpace(req.Destination)
	var trip *response_models.TripResponse
	if req.TripID != "" {
		var err error
		trip, err = s.tripForCaller(ctx, req.TripID, userID)
		if err != nil {
			return nil, err
		}
		if destination == "" {
			destination = trip.Destination
		}
	}
	if destination == "" {
		return nil, utils.ErrInvalidInput
	}

	if !s.ai.Configured() {
		return &response_models.ActivityRecommendationResponse{
			Recommendations: placeholderRecommendations(destination, req.Interests),
			Degraded:        true,
		}, nil
	}

	prompt := fmt.Sprintf(
		"Suggest 5 activities for a traveler visiting %s.", destination)
	if len(req.Interests) > 0 {
		prompt += " Their interests: " + strings.Join(req.Interests, ", ") + "."
	}
	if req.Date != "" {
		prompt += " They are free on " + req.Date + "."
	}
	if trip != nil {
		prompt += tripContext(trip)
	}
	prompt += ` Reply with JSON: {"recommendations":[{"title":"","description":"","activity_type":"","estimated_cost":0,"reason":""}]}`

	text, err := s.ai.Complete(ctx, plannerSystemPrompt, prompt)
	if err != nil {
		s.logger.Error().Err(err).Str("destination", destination).Msg("recommendation failed")
		return nil, utils.ErrUpstreamUnavailable
	}

	var parsed struct {
		Recommendations []response_models.ActivityRecommendation `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(extractJSON(text)), &parsed); err != nil || len(parsed.Recommendations) == 0 {
		return &response_models.ActivityRecommendationResponse{
			Recommendations: placeholderRecommendations(destination, req.Interests),
			Degraded:        true,
		}, nil
	}
	return &response_models.ActivityRecommendationResponse{Recommendations: parsed.Recommendations}, nil
}

func (s *AIService) Chat(ctx context.Context, userID uuid.UUID, req request_models.ChatRequest) (*response_models.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, utils.ErrInvalidInput
	}

	prompt := message
	if req.TripID != "" {
		trip, err := s.tripForCaller(ctx, req.TripID, userID)
		if err != nil {
			return nil, err
		}
		prompt = message + "\n" + tripContext(trip)
	}

	if !s.ai.Configured() {
		return &response_models.ChatResponse{
			Reply:    placeholderChatReply(message),
			Degraded: true,
		}, nil
	}

	text, err := s.ai.Complete(ctx, plannerSystemPrompt, prompt)
	if err != nil {
		s.logger.Error().Err(err).Msg("chat completion failed")
		return nil, utils.ErrUpstreamUnavailable
	}
	return &response_models.ChatResponse{Reply: strings.TrimSpace(text)}, nil
}

func (s *AIService) OptimizeBudget(ctx context.Context, userID uuid.UUID, req request_models.BudgetOptimizationRequest) (*response_models.BudgetOptimizationResponse, error) {
	if req.TotalBudget <= 0 {
		return nil, utils.ErrInvalidInput
	}
	trip, err := s.tripForCaller(ctx, req.TripID, userID)
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	if !s.ai.Configured() {
		return placeholderBudget(req.TotalBudget, currency), nil
	}

	prompt := fmt.Sprintf(
		"A traveler has a total budget of %.2f %s for this trip.%s"+
			` Allocate the budget across categories and give one sentence of advice. Reply with JSON: {"allocations":[{"category":"","amount":0,"note":""}],"advice":""}`,
		req.TotalBudget, currency, tripContext(trip))

	text, err := s.ai.Complete(ctx, plannerSystemPrompt, prompt)
	if err != nil {
		s.logger.Error().Err(err).Str("trip_id", req.TripID).Msg("budget optimization failed")
		return nil, utils.ErrUpstreamUnavailable
	}

	var parsed struct {
		Allocations []response_models.BudgetAllocation `json:"allocations"`
		Advice      string                             `json:"advice"`
	}
	if err := json.Unmarshal([]byte(extractJSON(text)), &parsed); err != nil || len(parsed.Allocations) == 0 {
		return placeholderBudget(req.TotalBudget, currency), nil
	}
	return &response_models.BudgetOptimizationResponse{
		TotalBudget: req.TotalBudget,
		Currency:    currency,
		Allocations: parsed.Allocations,
		Advice:      parsed.Advice,
	}, nil
}

func (s *AIService) AnalyzeTrip(ctx context.Context, userID uuid.UUID, req request_models.TripAnalysisRequest) (*response_models.TripAnalysisResponse, error) {
	trip, err := s.tripForCaller(ctx, req.TripID, userID)
	if err != nil {
		return nil, err
	}

	if !s.ai.Configured() {
		return placeholderAnalysis(trip), nil
	}

	prompt := "Review this trip plan. Summarize it, list its strengths and suggest improvements." +
		tripContext(trip) +
		` Reply with JSON: {"summary":"","strengths":[""],"suggestions":[""]}`

	text, err := s.ai.Complete(ctx, plannerSystemPrompt, prompt)
	if err != nil {
		s.logger.Error().Err(err).Str("trip_id", req.TripID).Msg("trip analysis failed")
		return nil, utils.ErrUpstreamUnavailable
	}

	var parsed response_models.TripAnalysisResponse
	if err := json.Unmarshal([]byte(extractJSON(text)), &parsed); err != nil || parsed.Summary == "" {
		return placeholderAnalysis(trip), nil
	}
	return &parsed, nil
}

// tripForCaller resolves a trip id string and enforces view access.
func (s *AIService) tripForCaller(ctx context.Context, tripID string, userID uuid.UUID) (*response_models.TripResponse, error) {
	id, err := uuid.Parse(tripID)
	if err != nil {
		return nil, utils.ErrTripNotFound
	}
	return s.trips.GetTrip(ctx, id, userID)
}

func tripPrompt(req request_models.TripGenerationRequest) string {
	days := int(req.EndDate.Sub(req.StartDate).Hours()/24) + 1
	var b strings.Builder
	fmt.Fprintf(&b, "Plan a %d-day trip to %s starting %s.",
		days, req.Destination, req.StartDate.Format("2006-01-02"))
	if req.BudgetLevel != "" {
		fmt.Fprintf(&b, " Budget level: %s.", req.BudgetLevel)
	}
	if req.AccommodationType != "" {
		fmt.Fprintf(&b, " Accommodation: %s.", req.AccommodationType)
	}
	if len(req.ActivityPreferences) > 0 {
		fmt.Fprintf(&b, " Preferred activities: %s.", strings.Join(req.ActivityPreferences, ", "))
	}
	if len(req.DietaryRestrictions) > 0 {
		fmt.Fprintf(&b, " Dietary restrictions: %s.", strings.Join(req.DietaryRestrictions, ", "))
	}
	if len(req.AccessibilityNeeds) > 0 {
		fmt.Fprintf(&b, " Accessibility needs: %s.", strings.Join(req.AccessibilityNeeds, ", "))
	}
	if req.PacePreference != "" {
		fmt.Fprintf(&b, " Pace: %s.", req.PacePreference)
	}
	b.WriteString(` Reply with JSON: {"title":"","notes":"","activities":[{"title":"","description":"","day":1,"start_time":"09:00","end_time":"11:00","activity_type":"sightseeing","estimated_cost":0,"location_name":""}]}`)
	return b.String()
}

func tripContext(trip *response_models.TripResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, " Trip context: %q to %s, %s through %s, status %s, %d planned activities.",
		trip.Title, trip.Destination,
		trip.StartDate.Format("2006-01-02"),
		trip.EndDate.Format("2006-01-02"),
		trip.Status, len(trip.Activities))
	for i, a := range trip.Activities {
		if i == 20 {
			b.WriteString(" (further activities omitted)")
			break
		}
		fmt.Fprintf(&b, " Activity: %s (%s).", a.Title, a.ActivityType)
	}
	return b.String()
}

func planToActivityInputs(plan generatedTrip, start, end time.Time) []request_models.ActivityInput {
	maxDay := int(end.Sub(start).Hours()/24) + 1
	inputs := make([]request_models.ActivityInput, 0, len(plan.Activities))
	for _, a := range plan.Activities {
		day := a.Day
		if day < 1 {
			day = 1
		}
		if day > maxDay {
			day = maxDay
		}
		date := start.AddDate(0, 0, day-1)
		startAt := atClock(date, a.StartTime, 9, 0)
		endAt := atClock(date, a.EndTime, startAt.Hour()+2, startAt.Minute())
		if !endAt.After(startAt) {
			endAt = startAt.Add(2 * time.Hour)
		}

		in := request_models.ActivityInput{
			Title:         a.Title,
			StartDatetime: startAt,
			EndDatetime:   &endAt,
			ActivityType:  a.ActivityType,
			Cost:          a.EstimatedCost,
		}
		if a.Description != "" {
			desc := a.Description
			in.Description = &desc
		}
		if a.LocationName != "" {
			in.Location = &request_models.LocationInput{Name: a.LocationName}
		}
		inputs = append(inputs, in)
	}
	return inputs
}

// atClock combines a calendar day with an "HH:MM" string, falling back to the
// given hour and minute when the string does not parse.
func atClock(day time.Time, clock string, fallbackHour, fallbackMin int) time.Time {
	h, m := fallbackHour, fallbackMin
	if t, err := time.Parse("15:04", strings.TrimSpace(clock)); err == nil {
		h, m = t.Hour(), t.Minute()
	}
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, time.UTC)
}

var (
	fencedJSON  = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	dayHeading  = regexp.MustCompile(`(?i)^\s*(?:#+\s*)?day\s+(\d+)`)
	timedLine   = regexp.MustCompile(`^\s*[-*]?\s*(\d{1,2}:\d{2})\s*(?:-\s*(\d{1,2}:\d{2}))?\s*[:-]?\s*(.+)$`)
	bulletTitle = regexp.MustCompile(`^\s*[-*]\s+(.+)$`)
)

// extractJSON pulls the JSON body out of a model reply that may wrap it in a
// markdown fence or surrounding prose.
func extractJSON(text string) string {
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	var closer byte = '}'
	if text[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(text, closer)
	if end <= start {
		return text
	}
	return text[start : end+1]
}

// scrapeItinerary recovers an itinerary from prose: "Day N" headings set the
// day, and bulleted or timed lines under them become activities.
func scrapeItinerary(text string, req request_models.TripGenerationRequest) generatedTrip {
	plan := generatedTrip{Title: fmt.Sprintf("Trip to %s", req.Destination)}
	day := 1
	for _, line := range strings.Split(text, "\n") {
		if m := dayHeading.FindStringSubmatch(line); m != nil {
			fmt.Sscanf(m[1], "%d", &day)
			continue
		}

		var title, startTime, endTime string
		if m := timedLine.FindStringSubmatch(line); m != nil && strings.Contains(line, ":") {
			startTime, endTime, title = m[1], m[2], strings.TrimSpace(m[3])
		} else if m := bulletTitle.FindStringSubmatch(line); m != nil {
			title = strings.TrimSpace(m[1])
		}
		if title == "" || len(title) < 3 {
			continue
		}

		plan.Activities = append(plan.Activities, generatedActivity{
			Title: title, Day: day, StartTime: startTime, EndTime: endTime,
		})

		if len(plan.Activities) >= 40 {
			break
		}
	}

	if len(plan.Activities) == 0 {
		plan = placeholderItinerary(req)
	}
	return plan
}

var placeholderDayPlan = []struct {
	Title        string
	StartTime    string
	EndTime      string
	ActivityType string
	Cost         float64
}{
	{"Morning city walk", "09:00", "11:00", "sightseeing", 0},
	{"Local lunch", "12:00", "13:30", "dining", 25},
	{"Afternoon museum visit", "14:30", "17:00", "entertainment", 18},
}

// placeholderItinerary builds the same plan for the same request, so the
// degraded path stays reproducible.
func placeholderItinerary(req request_models.TripGenerationRequest) generatedTrip {
	days := int(req.EndDate.Sub(req.StartDate).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	if days > 14 {
		days = 14
	}

	rng := aiSeed(req.Destination, req.StartDate.Format("2006-01-02"))
	notes := "Automatically drafted itinerary. Review times and costs before booking."
	plan := generatedTrip{
		Title: fmt.Sprintf("Trip to %s", req.Destination),
		Notes: notes,
	}
	for day := 1; day <= days; day++ {
		for _, tpl := range placeholderDayPlan {
			cost := tpl.Cost
			if cost > 0 {
				cost += float64(rng.Intn(10))
			}
			entry := generatedActivity{
				Title:        fmt.Sprintf("%s in %s", tpl.Title, req.Destination),
				Day:          day,
				StartTime:    tpl.StartTime,
				EndTime:      tpl.EndTime,
				ActivityType: tpl.ActivityType,
				LocationName: req.Destination,
			}
			if cost > 0 {
				entry.EstimatedCost = &cost
			}
			plan.Activities = append(plan.Activities, entry)
		}
	}
	return plan
}

func placeholderRecommendations(destination string, interests []string) []response_models.ActivityRecommendation {
	rng := aiSeed(destination, strings.Join(interests, ","))
	templates := []response_models.ActivityRecommendation{
		{Title: "Old town walking tour", ActivityType: "sightseeing", Reason: "A classic first-day orientation."},
		{Title: "Local market food crawl", ActivityType: "dining", Reason: "The fastest way into the local cuisine."},
		{Title: "City museum", ActivityType: "entertainment", Reason: "Good backup for a rainy afternoon."},
		{Title: "Riverside cycling", ActivityType: "recreation", Reason: "Covers a lot of ground at an easy pace."},
		{Title: "Sunset viewpoint", ActivityType: "sightseeing", Reason: "Ends the day on a high note."},
	}
	out := make([]response_models.ActivityRecommendation, len(templates))
	for i, tpl := range templates {
		cost := float64(10 + rng.Intn(40))
		tpl.Title = fmt.Sprintf("%s in %s", tpl.Title, destination)
		tpl.Description = fmt.Sprintf("A well-reviewed option for visitors to %s.", destination)
		tpl.Cost = &cost
		out[i] = tpl
	}
	return out
}

func placeholderChatReply(message string) string {
	return fmt.Sprintf(
		"I can't reach the planning assistant right now, so here is a general note. "+
			"You asked: %q. For specifics, check official tourism sites for your destination "+
			"and verify opening hours and prices before booking.", message)
}

func placeholderBudget(total float64, currency string) *response_models.BudgetOptimizationResponse {
	split := func(frac float64) float64 {
		return float64(int(total*frac*100)) / 100
	}
	return &response_models.BudgetOptimizationResponse{
		TotalBudget: total,
		Currency:    currency,
		Allocations: []response_models.BudgetAllocation{
			{Category: "accommodation", Amount: split(0.40), Note: "Largest fixed cost; book early."},
			{Category: "food", Amount: split(0.25)},
			{Category: "activities", Amount: split(0.20)},
			{Category: "transport", Amount: split(0.10)},
			{Category: "miscellaneous", Amount: split(0.05), Note: "Buffer for the unplanned."},
		},
		Advice:   "Keep a daily spending note; small costs drift fastest.",
		Degraded: true,
	}
}

func placeholderAnalysis(trip *response_models.TripResponse) *response_models.TripAnalysisResponse {
	days := int(trip.EndDate.Sub(trip.StartDate).Hours()/24) + 1
	perDay := 0.0
	if days > 0 {
		perDay = float64(len(trip.Activities)) / float64(days)
	}

	resp := &response_models.TripAnalysisResponse{
		Summary: fmt.Sprintf("%d-day trip to %s with %d planned activities.",
			days, trip.Destination, len(trip.Activities)),
		Strengths:   []string{"Dates and destination are set."},
		Suggestions: []string{},
		Degraded:    true,
	}
	switch {
	case len(trip.Activities) == 0:
		resp.Suggestions = append(resp.Suggestions, "No activities planned yet; start with one anchor activity per day.")
	case perDay > 4:
		resp.Suggestions = append(resp.Suggestions, "The schedule is dense; consider leaving one afternoon free.")
	default:
		resp.Strengths = append(resp.Strengths, "Activity pacing looks manageable.")
	}
	if trip.Status == db_models.TripStatusDraft {
		resp.Suggestions = append(resp.Suggestions, "The trip is still a draft; publish it when the plan settles.")
	}
	return resp
}

func aiSeed(parts ...string) *rand.Rand {
	h := int64(0)
	for _, p := range parts {
		for _, b := range []byte(p) {
			h = h*131 + int64(b)
		}
	}
	if h < 0 {
		h = -h
	}
	return rand.New(rand.NewSource(h))
}
