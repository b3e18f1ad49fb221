package adapters

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sojourn/internal/config"
	mem "sojourn/pkg/memcache"
)

// unconfigured builds a config with no provider credentials, forcing every
// adapter onto its placeholder path.
func unconfigured() *config.Config {
	return &config.Config{
		WeatherAPIBaseURL: "http://127.0.0.1:1",
		MapsAPIBaseURL:    "http://127.0.0.1:1",
		ExpediaAPIBaseURL: "http://127.0.0.1:1",
	}
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestWeatherPlaceholderIsDeterministic(t *testing.T) {
	w := NewWeatherAdapter(unconfigured(), mem.NewTTLCache(), zerolog.Nop())
	ctx := context.Background()

	first, degraded, err := w.Forecast(ctx, 38.7223, -9.1393, day("2026-10-02"), day("2026-10-05"))
	require.NoError(t, err)
	assert.True(t, degraded)

	second, _, err := w.Forecast(ctx, 38.7223, -9.1393, day("2026-10-02"), day("2026-10-05"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestWeatherPlaceholderCoversRange(t *testing.T) {
	w := NewWeatherAdapter(unconfigured(), mem.NewTTLCache(), zerolog.Nop())

	forecast, _, err := w.Forecast(context.Background(), 48.8566, 2.3522, day("2026-10-02"), day("2026-10-05"))
	require.NoError(t, err)
	require.Len(t, forecast.Days, 4)
	assert.Equal(t, "2026-10-02", forecast.Days[0].Date)
	assert.Equal(t, "2026-10-05", forecast.Days[3].Date)
	assert.NotEmpty(t, forecast.Note)
	for _, d := range forecast.Days {
		assert.Less(t, d.TemperatureMin, d.TemperatureMax)
	}
}

func TestWeatherEndBeforeStartClampedToSingleDay(t *testing.T) {
	w := NewWeatherAdapter(unconfigured(), mem.NewTTLCache(), zerolog.Nop())

	forecast, _, err := w.Forecast(context.Background(), 48.8566, 2.3522, day("2026-10-05"), day("2026-10-02"))
	require.NoError(t, err)
	assert.Len(t, forecast.Days, 1)
}

func TestWeatherDifferentCoordinatesDiffer(t *testing.T) {
	w := NewWeatherAdapter(unconfigured(), mem.NewTTLCache(), zerolog.Nop())
	ctx := context.Background()

	lisbon, _, err := w.Forecast(ctx, 38.7223, -9.1393, day("2026-10-02"), day("2026-10-05"))
	require.NoError(t, err)
	paris, _, err := w.Forecast(ctx, 48.8566, 2.3522, day("2026-10-02"), day("2026-10-05"))
	require.NoError(t, err)

	assert.NotEqual(t, lisbon.Days, paris.Days)
}

func TestMapsPlaceholderSearch(t *testing.T) {
	m := NewMapsAdapter(unconfigured(), mem.NewTTLCache(), zerolog.Nop())
	ctx := context.Background()

	first, degraded, err := m.Search(ctx, "coffee near belem", nil, nil)
	require.NoError(t, err)
	assert.True(t, degraded)
	require.Len(t, first, 5)

	second, _, err := m.Search(ctx, "coffee near belem", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMapsPlaceholderDirectionsScaleWithDistance(t *testing.T) {
	m := NewMapsAdapter(unconfigured(), mem.NewTTLCache(), zerolog.Nop())
	ctx := context.Background()

	short, degraded, err := m.Directions(ctx, 38.72, -9.13, 38.73, -9.14, "WALKING")
	require.NoError(t, err)
	assert.True(t, degraded)
	require.NotEmpty(t, short.Routes)

	long, _, err := m.Directions(ctx, 38.72, -9.13, 41.15, -8.61, "DRIVING")
	require.NoError(t, err)
	require.NotEmpty(t, long.Routes)

	assert.Greater(t, long.Routes[0].DistanceMeters, short.Routes[0].DistanceMeters)
}

func TestMapsPlaceholderGeocodeEchoesAddress(t *testing.T) {
	m := NewMapsAdapter(unconfigured(), mem.NewTTLCache(), zerolog.Nop())

	place, degraded, err := m.Geocode(context.Background(), "praca do comercio, lisbon")
	require.NoError(t, err)
	assert.True(t, degraded)
	require.NotNil(t, place)
	assert.NotNil(t, place.Latitude)
	assert.NotNil(t, place.Longitude)
}

func TestExpediaPlaceholderActivities(t *testing.T) {
	e := NewExpediaAdapter(unconfigured(), mem.NewTTLCache(), zerolog.Nop())
	ctx := context.Background()

	first, degraded, err := e.SearchActivities(ctx, "Lisbon", day("2026-10-02"), day("2026-10-05"), "", 10)
	require.NoError(t, err)
	assert.True(t, degraded)
	require.Len(t, first, 5)

	second, _, err := e.SearchActivities(ctx, "Lisbon", day("2026-10-02"), day("2026-10-05"), "", 10)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, _, err := e.SearchActivities(ctx, "Tokyo", day("2026-10-02"), day("2026-10-05"), "", 10)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestExpediaActivityTypeFilter(t *testing.T) {
	e := NewExpediaAdapter(unconfigured(), mem.NewTTLCache(), zerolog.Nop())

	results, _, err := e.SearchActivities(context.Background(), "Lisbon", day("2026-10-02"), day("2026-10-05"), "dining", 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	for _, act := range results {
		assert.True(t, strings.EqualFold("dining", act.ActivityType))
	}
}

func TestExpediaActivityDetailsKeepRequestedID(t *testing.T) {
	e := NewExpediaAdapter(unconfigured(), mem.NewTTLCache(), zerolog.Nop())

	details, degraded, err := e.ActivityDetails(context.Background(), "act-12345-2")
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.Equal(t, "act-12345-2", details.ID)
	assert.NotEmpty(t, details.Included)
}

func TestExpediaPlaceholderHotels(t *testing.T) {
	e := NewExpediaAdapter(unconfigured(), mem.NewTTLCache(), zerolog.Nop())
	ctx := context.Background()

	hotels, degraded, err := e.SearchHotels(ctx, "Lisbon", day("2026-10-02"), day("2026-10-05"), 2, 1, 10)
	require.NoError(t, err)
	assert.True(t, degraded)
	require.Len(t, hotels, 5)
	for _, h := range hotels {
		assert.Greater(t, h.PricePerNight, 0.0)
	}

	again, _, err := e.SearchHotels(ctx, "Lisbon", day("2026-10-02"), day("2026-10-05"), 2, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, hotels, again)
}

func TestExpediaHotelDetails(t *testing.T) {
	e := NewExpediaAdapter(unconfigured(), mem.NewTTLCache(), zerolog.Nop())

	details, degraded, err := e.HotelDetails(context.Background(), "hotel-9")
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.Equal(t, "hotel-9", details.ID)
	require.NotEmpty(t, details.RoomTypes)
	assert.Equal(t, "3:00 PM", details.CheckIn)
	assert.Equal(t, "11:00 AM", details.CheckOut)
}

func TestExpediaLimitApplied(t *testing.T) {
	e := NewExpediaAdapter(unconfigured(), mem.NewTTLCache(), zerolog.Nop())

	results, _, err := e.SearchActivities(context.Background(), "Lisbon", day("2026-10-02"), day("2026-10-05"), "", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}
