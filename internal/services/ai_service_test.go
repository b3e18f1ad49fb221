package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sojourn/internal/adapters"
	"sojourn/internal/models/request_models"
	"sojourn/pkg/utils"
)

type fakeAIClient struct {
	configured bool
	reply      string
	err        error
	lastUser   string
}

var _ adapters.AIClient = (*fakeAIClient)(nil)

func (f *fakeAIClient) Configured() bool { return f.configured }

func (f *fakeAIClient) Complete(_ context.Context, _, userPrompt string) (string, error) {
	f.lastUser = userPrompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type aiFixture struct {
	svc      AIServiceInterface
	ai       *fakeAIClient
	trips    TripServiceInterface
	tripRepo *fakeTripRepo
	owner    uuid.UUID
	other    uuid.UUID
}

func newAIFixture(t *testing.T, ai *fakeAIClient) *aiFixture {
	t.Helper()
	tripRepo := newFakeTripRepo()
	userRepo := newFakeUserRepo()
	trips := NewTripService(tripRepo, newFakeActivityRepo(), userRepo, zerolog.Nop())
	return &aiFixture{
		svc:      NewAIService(ai, trips, zerolog.Nop()),
		ai:       ai,
		trips:    trips,
		tripRepo: tripRepo,
		owner:    userRepo.addUser("planner@example.com", "planner").ID,
		other:    userRepo.addUser("stranger@example.com", "stranger").ID,
	}
}

func generationRequest() request_models.TripGenerationRequest {
	return request_models.TripGenerationRequest{
		Destination: "Lisbon",
		StartDate:   time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 10, 4, 0, 0, 0, 0, time.UTC),
	}
}

func TestGenerateTripUnconfiguredProducesDraft(t *testing.T) {
	fx := newAIFixture(t, &fakeAIClient{})

	resp, err := fx.svc.GenerateTrip(context.Background(), fx.owner, generationRequest())
	require.NoError(t, err)
	assert.True(t, resp.Degraded)
	assert.True(t, resp.Trip.IsDraft)
	// Three days, three placeholder activities each.
	assert.Len(t, resp.Trip.Activities, 9)

	tripID, err := uuid.Parse(resp.TripID)
	require.NoError(t, err)
	stored, err := fx.trips.GetTrip(context.Background(), tripID, fx.owner)
	require.NoError(t, err)
	assert.Equal(t, "Trip to Lisbon", stored.Title)
}

func TestGenerateTripParsesModelJSON(t *testing.T) {
	ai := &fakeAIClient{
		configured: true,
		reply: "```json\n" + `{
			"title": "Lisbon on foot",
			"notes": "Pack for hills.",
			"activities": [
				{"title": "Alfama walk", "day": 1, "start_time": "09:30", "end_time": "12:00", "activity_type": "sightseeing"},
				{"title": "Fado dinner", "day": 2, "start_time": "20:00", "end_time": "22:30", "activity_type": "dining", "estimated_cost": 45}
			]
		}` + "\n```",
	}
	fx := newAIFixture(t, ai)

	resp, err := fx.svc.GenerateTrip(context.Background(), fx.owner, generationRequest())
	require.NoError(t, err)
	assert.False(t, resp.Degraded)
	assert.Equal(t, "Lisbon on foot", resp.Trip.Title)
	require.Len(t, resp.Trip.Activities, 2)
	assert.Contains(t, ai.lastUser, "3-day trip to Lisbon")
}

func TestGenerateTripScrapesProseReply(t *testing.T) {
	ai := &fakeAIClient{
		configured: true,
		reply: "Here is a plan.\n" +
			"Day 1\n" +
			"- 09:00 - 11:00: Belem tower visit\n" +
			"- Pasteis de nata tasting\n" +
			"Day 2\n" +
			"- 10:00: Tram 28 ride\n",
	}
	fx := newAIFixture(t, ai)

	resp, err := fx.svc.GenerateTrip(context.Background(), fx.owner, generationRequest())
	require.NoError(t, err)
	assert.False(t, resp.Degraded)
	require.Len(t, resp.Trip.Activities, 3)
	assert.Equal(t, "Trip to Lisbon", resp.Trip.Title)
}

func TestGenerateTripUpstreamFailure(t *testing.T) {
	fx := newAIFixture(t, &fakeAIClient{configured: true, err: assert.AnError})

	_, err := fx.svc.GenerateTrip(context.Background(), fx.owner, generationRequest())
	assert.ErrorIs(t, err, utils.ErrUpstreamUnavailable)
}

func TestGenerateTripValidation(t *testing.T) {
	fx := newAIFixture(t, &fakeAIClient{})
	ctx := context.Background()

	req := generationRequest()
	req.Destination = "   "
	_, err := fx.svc.GenerateTrip(ctx, fx.owner, req)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	req = generationRequest()
	req.StartDate, req.EndDate = req.EndDate, req.StartDate
	_, err = fx.svc.GenerateTrip(ctx, fx.owner, req)
	assert.ErrorIs(t, err, utils.ErrInvalidDateRange)
}

func TestRecommendActivitiesUnconfigured(t *testing.T) {
	fx := newAIFixture(t, &fakeAIClient{})

	resp, err := fx.svc.RecommendActivities(context.Background(), fx.owner, request_models.ActivityRecommendationRequest{
		Destination: "Porto",
		Interests:   []string{"food", "history"},
	})
	require.NoError(t, err)
	assert.True(t, resp.Degraded)
	assert.Len(t, resp.Recommendations, 5)
}

func TestRecommendActivitiesTripAccessEnforced(t *testing.T) {
	fx := newAIFixture(t, &fakeAIClient{})
	trip, err := fx.trips.CreateTrip(context.Background(), fx.owner, baseTripRequest())
	require.NoError(t, err)

	_, err = fx.svc.RecommendActivities(context.Background(), fx.other, request_models.ActivityRecommendationRequest{
		TripID: trip.ID,
	})
	assert.ErrorIs(t, err, utils.ErrForbidden)
}

func TestRecommendActivitiesUnparsableReplyDegrades(t *testing.T) {
	fx := newAIFixture(t, &fakeAIClient{configured: true, reply: "I would suggest walking around."})

	resp, err := fx.svc.RecommendActivities(context.Background(), fx.owner, request_models.ActivityRecommendationRequest{
		Destination: "Porto",
	})
	require.NoError(t, err)
	assert.True(t, resp.Degraded)
	assert.NotEmpty(t, resp.Recommendations)
}

func TestChatRequiresMessage(t *testing.T) {
	fx := newAIFixture(t, &fakeAIClient{})

	_, err := fx.svc.Chat(context.Background(), fx.owner, request_models.ChatRequest{Message: "  "})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestChatUnconfiguredEchoesQuestion(t *testing.T) {
	fx := newAIFixture(t, &fakeAIClient{})

	resp, err := fx.svc.Chat(context.Background(), fx.owner, request_models.ChatRequest{Message: "Is October rainy in Lisbon?"})
	require.NoError(t, err)
	assert.True(t, resp.Degraded)
	assert.Contains(t, resp.Reply, "Is October rainy in Lisbon?")
}

func TestChatIncludesTripContext(t *testing.T) {
	ai := &fakeAIClient{configured: true, reply: "Yes, pack a light jacket."}
	fx := newAIFixture(t, ai)
	trip, err := fx.trips.CreateTrip(context.Background(), fx.owner, baseTripRequest())
	require.NoError(t, err)

	resp, err := fx.svc.Chat(context.Background(), fx.owner, request_models.ChatRequest{
		Message: "What should I pack?",
		TripID:  trip.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Yes, pack a light jacket.", resp.Reply)
	assert.Contains(t, ai.lastUser, "Lisbon")
}

func TestOptimizeBudgetPlaceholderSplit(t *testing.T) {
	fx := newAIFixture(t, &fakeAIClient{})
	trip, err := fx.trips.CreateTrip(context.Background(), fx.owner, baseTripRequest())
	require.NoError(t, err)

	resp, err := fx.svc.OptimizeBudget(context.Background(), fx.owner, request_models.BudgetOptimizationRequest{
		TripID:      trip.ID,
		TotalBudget: 1000,
	})
	require.NoError(t, err)
	assert.True(t, resp.Degraded)
	assert.Equal(t, "USD", resp.Currency)
	require.Len(t, resp.Allocations, 5)

	var sum float64
	for _, a := range resp.Allocations {
		sum += a.Amount
	}
	assert.InDelta(t, 1000, sum, 0.1)
}

func TestOptimizeBudgetRejectsNonPositiveBudget(t *testing.T) {
	fx := newAIFixture(t, &fakeAIClient{})

	_, err := fx.svc.OptimizeBudget(context.Background(), fx.owner, request_models.BudgetOptimizationRequest{
		TripID:      uuid.NewString(),
		TotalBudget: 0,
	})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestOptimizeBudgetUnknownTrip(t *testing.T) {
	fx := newAIFixture(t, &fakeAIClient{})

	_, err := fx.svc.OptimizeBudget(context.Background(), fx.owner, request_models.BudgetOptimizationRequest{
		TripID:      "not-a-uuid",
		TotalBudget: 500,
	})
	assert.ErrorIs(t, err, utils.ErrTripNotFound)
}

func TestAnalyzeTripPlaceholderFlagsEmptyPlan(t *testing.T) {
	fx := newAIFixture(t, &fakeAIClient{})
	trip, err := fx.trips.CreateTrip(context.Background(), fx.owner, baseTripRequest())
	require.NoError(t, err)

	resp, err := fx.svc.AnalyzeTrip(context.Background(), fx.owner, request_models.TripAnalysisRequest{TripID: trip.ID})
	require.NoError(t, err)
	assert.True(t, resp.Degraded)
	assert.Contains(t, resp.Summary, "Lisbon")
	require.NotEmpty(t, resp.Suggestions)
}

func TestAnalyzeTripParsesModelReply(t *testing.T) {
	ai := &fakeAIClient{
		configured: true,
		reply:      `{"summary":"A relaxed long weekend.","strengths":["Good pacing"],"suggestions":["Book the fado show early"]}`,
	}
	fx := newAIFixture(t, ai)
	trip, err := fx.trips.CreateTrip(context.Background(), fx.owner, baseTripRequest())
	require.NoError(t, err)

	resp, err := fx.svc.AnalyzeTrip(context.Background(), fx.owner, request_models.TripAnalysisRequest{TripID: trip.ID})
	require.NoError(t, err)
	assert.False(t, resp.Degraded)
	assert.Equal(t, "A relaxed long weekend.", resp.Summary)
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced no lang", "```\n[1,2]\n```", `[1,2]`},
		{"surrounded by prose", `Sure! {"a":1} Hope that helps.`, `{"a":1}`},
		{"array in prose", `Here: [1,2,3].`, `[1,2,3]`},
		{"plain text", "no json here", "no json here"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractJSON(tc.in))
		})
	}
}

func TestScrapeItineraryFallsBackToPlaceholder(t *testing.T) {
	plan := scrapeItinerary("nothing useful at all", generationRequest())
	assert.NotEmpty(t, plan.Activities)
	assert.Equal(t, "Trip to Lisbon", plan.Title)
}
