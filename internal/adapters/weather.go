package adapters

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"sojourn/internal/config"
	mem "sojourn/pkg/memcache"
)

type ForecastDay struct {
	Date              string  `json:"date"`
	TemperatureMin    float64 `json:"temperature_min"`
	TemperatureMax    float64 `json:"temperature_max"`
	Condition         string  `json:"condition"`
	PrecipProbability float64 `json:"precipitation_probability"`
	PrecipAmountMm    float64 `json:"precipitation_amount_mm"`
	Humidity          float64 `json:"humidity"`
	WindSpeedKph      float64 `json:"wind_speed_kph"`
	WindDirection     int     `json:"wind_direction"`
	Sunrise           string  `json:"sunrise"`
	Sunset            string  `json:"sunset"`
}

type ForecastLocation struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Forecast struct {
	Location ForecastLocation `json:"location"`
	Days     []ForecastDay    `json:"days"`
	Note     string           `json:"note,omitempty"`
}

type WeatherAdapter interface {
	Forecast(ctx context.Context, lat, lon float64, start, end time.Time) (*Forecast, bool, error)
}

type weatherAdapter struct {
	apiKey  string
	baseURL string
	http    *http.Client
	cache   mem.TTLStore
	logger  zerolog.Logger
}

func NewWeatherAdapter(cfg *config.Config, cache mem.TTLStore, logger zerolog.Logger) WeatherAdapter {
	return &weatherAdapter{
		apiKey:  cfg.WeatherAPIKey,
		baseURL: cfg.WeatherAPIBaseURL,
		http:    newHTTPClient(),
		cache:   cache,
		logger:  logger,
	}
}

func (w *weatherAdapter) Forecast(ctx context.Context, lat, lon float64, start, end time.Time) (*Forecast, bool, error) {
	if end.Before(start) {
		end = start
	}

	cacheKey := fmt.Sprintf("weather:%.4f:%.4f:%s:%s", lat, lon, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if v, ok := w.cache.Get(cacheKey); ok {
		return v.(*Forecast), false, nil
	}

	if w.apiKey == "" {
		return placeholderForecast(lat, lon, start, end), true, nil
	}

	forecast, err := w.fetch(ctx, lat, lon, start, end)
	if err != nil {
		w.logger.Warn().Err(err).Msg("weather upstream failed, degrading")
		return placeholderForecast(lat, lon, start, end), true, nil
	}

	w.cache.Set(cacheKey, forecast, defaultCacheTTL)
	return forecast, false, nil
}

// weatherAPIResponse mirrors the slice of the WeatherAPI.com forecast payload
// we care about.
type weatherAPIResponse struct {
	Location struct {
		Name string  `json:"name"`
		Lat  float64 `json:"lat"`
		Lon  float64 `json:"lon"`
	} `json:"location"`
	Forecast struct {
		ForecastDay []struct {
			Date string `json:"date"`
			Day  struct {
				MinTempC          float64 `json:"mintemp_c"`
				MaxTempC          float64 `json:"maxtemp_c"`
				AvgHumidity       float64 `json:"avghumidity"`
				MaxWindKph        float64 `json:"maxwind_kph"`
				TotalPrecipMm     float64 `json:"totalprecip_mm"`
				DailyChanceOfRain float64 `json:"daily_chance_of_rain"`
				Condition         struct {
					Text string `json:"text"`
				} `json:"condition"`
			} `json:"day"`
			Astro struct {
				Sunrise string `json:"sunrise"`
				Sunset  string `json:"sunset"`
			} `json:"astro"`
			Hour []struct {
				WindDegree int `json:"wind_degree"`
			} `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

func (w *weatherAdapter) fetch(ctx context.Context, lat, lon float64, start, end time.Time) (*Forecast, error) {
	days := int(end.Sub(start).Hours()/24) + 1
	if days > 14 {
		days = 14
	}

	q := url.Values{}
	q.Set("key", w.apiKey)
	q.Set("q", fmt.Sprintf("%f,%f", lat, lon))
	q.Set("days", fmt.Sprintf("%d", days))
	q.Set("aqi", "no")
	q.Set("alerts", "no")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+"/forecast.json?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := w.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather http error: %w", err)
	}

	var payload weatherAPIResponse
	if err := decodeResponse(resp, &payload); err != nil {
		return nil, fmt.Errorf("weather decode: %w", err)
	}

	forecast := &Forecast{
		Location: ForecastLocation{
			Name:      payload.Location.Name,
			Latitude:  payload.Location.Lat,
			Longitude: payload.Location.Lon,
		},
	}
	for _, day := range payload.Forecast.ForecastDay {
		date, err := time.Parse("2006-01-02", day.Date)
		if err != nil || date.Before(truncateDay(start)) || date.After(truncateDay(end)) {
			continue
		}
		windDir := 0
		if len(day.Hour) > 12 {
			windDir = day.Hour[12].WindDegree
		}
		forecast.Days = append(forecast.Days, ForecastDay{
			Date:              day.Date,
			TemperatureMin:    day.Day.MinTempC,
			TemperatureMax:    day.Day.MaxTempC,
			Condition:         mapCondition(day.Day.Condition.Text),
			PrecipProbability: day.Day.DailyChanceOfRain,
			PrecipAmountMm:    day.Day.TotalPrecipMm,
			Humidity:          day.Day.AvgHumidity,
			WindSpeedKph:      day.Day.MaxWindKph,
			WindDirection:     windDir,
			Sunrise:           day.Astro.Sunrise,
			Sunset:            day.Astro.Sunset,
		})
	}
	return forecast, nil
}

var conditionNames = map[string]string{
	"Sunny":          "clear",
	"Clear":          "clear",
	"Partly cloudy":  "partlyCloudy",
	"Cloudy":         "cloudy",
	"Overcast":       "mostlyCloudy",
	"Mist":           "fog",
	"Fog":            "fog",
	"Freezing fog":   "fog",
	"Light drizzle":  "drizzle",
	"Light rain":     "rain",
	"Moderate rain":  "rain",
	"Heavy rain":     "rain",
	"Light snow":     "snow",
	"Moderate snow":  "snow",
	"Heavy snow":     "snow",
	"Blizzard":       "snow",
	"Ice pellets":    "sleet",
	"Light sleet":    "sleet",
	"Thundery outbreaks possible": "thunderstorms",
}

func mapCondition(text string) string {
	if mapped, ok := conditionNames[text]; ok {
		return mapped
	}
	return "partlyCloudy"
}

var placeholderConditions = []string{
	"clear", "mostlyClear", "partlyCloudy", "mostlyCloudy",
	"cloudy", "rain", "sunShowers", "sunFlurries",
}

// placeholderForecast is fully determined by coordinates and dates.
func placeholderForecast(lat, lon float64, start, end time.Time) *Forecast {
	forecast := &Forecast{
		Location: ForecastLocation{
			Name:      "Placeholder Location",
			Latitude:  lat,
			Longitude: lon,
		},
		Note: placeholderNote,
	}

	for day := truncateDay(start); !day.After(truncateDay(end)); day = day.AddDate(0, 0, 1) {
		rng := seededRand(fmt.Sprintf("%.4f", lat), fmt.Sprintf("%.4f", lon), day.Format("2006-01-02"))

		elapsed := day.Sub(truncateDay(start)).Hours() / 24
		tempBase := 15 + 10*(0.5+0.5*math.Sin(elapsed/7*math.Pi))
		tempMin := tempBase - (3 + rng.Float64()*4)
		tempMax := tempBase + (5 + rng.Float64()*5)

		condition := placeholderConditions[(day.Day()+int(day.Month()))%len(placeholderConditions)]
		precipProb := rng.Float64() * 30
		if condition == "rain" || condition == "sunShowers" {
			precipProb = 70
		}
		precipAmount := 0.0
		if precipProb > 20 {
			precipAmount = round1(rng.Float64() * 5 * precipProb / 100)
		}

		forecast.Days = append(forecast.Days, ForecastDay{
			Date:              day.Format("2006-01-02"),
			TemperatureMin:    round1(tempMin),
			TemperatureMax:    round1(tempMax),
			Condition:         condition,
			PrecipProbability: round1(precipProb),
			PrecipAmountMm:    precipAmount,
			Humidity:          round1(50 + rng.Float64()*40),
			WindSpeedKph:      round1(2 + rng.Float64()*13),
			WindDirection:     rng.Intn(360),
			Sunrise:           "06:30",
			Sunset:            "19:45",
		})
	}
	return forecast
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
