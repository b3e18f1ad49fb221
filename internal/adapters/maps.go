package adapters

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"sojourn/internal/config"
	mem "sojourn/pkg/memcache"
)

type Place struct {
	PlaceID   string   `json:"place_id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type PlaceDetails struct {
	Place
	Types        []string `json:"types"`
	Phone        string   `json:"phone,omitempty"`
	Website      string   `json:"website,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	ReviewsCount *int     `json:"reviews_count,omitempty"`
	Note         string   `json:"note,omitempty"`
}

type RouteStep struct {
	Instruction    string `json:"instruction"`
	DistanceMeters int    `json:"distance_meters"`
	DurationSecs   int    `json:"duration_seconds"`
}

type Route struct {
	Summary        string      `json:"summary"`
	DistanceMeters int         `json:"distance_meters"`
	DurationSecs   int         `json:"duration_seconds"`
	Steps          []RouteStep `json:"steps"`
}

type Directions struct {
	Routes []Route `json:"routes"`
	Note   string  `json:"note,omitempty"`
}

type MapsAdapter interface {
	Search(ctx context.Context, query string, lat, lon *float64) ([]Place, bool, error)
	PlaceDetails(ctx context.Context, placeID string) (*PlaceDetails, bool, error)
	Directions(ctx context.Context, originLat, originLon, destLat, destLon float64, mode string) (*Directions, bool, error)
	Geocode(ctx context.Context, address string) (*Place, bool, error)
	ReverseGeocode(ctx context.Context, lat, lon float64) (*Place, bool, error)
}

type mapsAdapter struct {
	apiKey  string
	baseURL string
	http    *http.Client
	cache   mem.TTLStore
	logger  zerolog.Logger
}

func NewMapsAdapter(cfg *config.Config, cache mem.TTLStore, logger zerolog.Logger) MapsAdapter {
	return &mapsAdapter{
		apiKey:  cfg.MapsAPIKey,
		baseURL: cfg.MapsAPIBaseURL,
		http:    newHTTPClient(),
		cache:   cache,
		logger:  logger,
	}
}

// mapsSearchResponse models the maps provider's search/geocode payload.
type mapsSearchResponse struct {
	Results []struct {
		DisplayName      string `json:"displayName"`
		FormattedAddress string `json:"formattedAddress"`
		MapItemID        string `json:"mapItemId"`
		Coordinate       struct {
			Latitude  *float64 `json:"latitude"`
			Longitude *float64 `json:"longitude"`
		} `json:"coordinate"`
	} `json:"results"`
}

func (m *mapsAdapter) Search(ctx context.Context, query string, lat, lon *float64) ([]Place, bool, error) {
	cacheKey := "maps:search:" + query
	if v, ok := m.cache.Get(cacheKey); ok {
		return v.([]Place), false, nil
	}

	if m.apiKey == "" {
		return placeholderPlaces(query, 5), true, nil
	}

	q := url.Values{}
	q.Set("q", query)
	if lat != nil && lon != nil {
		q.Set("userLocation", fmt.Sprintf("%f,%f", *lat, *lon))
	}

	var payload mapsSearchResponse
	if err := m.get(ctx, "/search", q, &payload); err != nil {
		m.logger.Warn().Err(err).Msg("maps search failed, degrading")
		return placeholderPlaces(query, 3), true, nil
	}

	places := make([]Place, 0, len(payload.Results))
	for _, r := range payload.Results {
		places = append(places, Place{
			PlaceID:   r.MapItemID,
			Name:      r.DisplayName,
			Address:   r.FormattedAddress,
			Latitude:  r.Coordinate.Latitude,
			Longitude: r.Coordinate.Longitude,
		})
	}

	m.cache.Set(cacheKey, places, defaultCacheTTL)
	return places, false, nil
}

func (m *mapsAdapter) PlaceDetails(ctx context.Context, placeID string) (*PlaceDetails, bool, error) {
	cacheKey := "maps:place:" + placeID
	if v, ok := m.cache.Get(cacheKey); ok {
		return v.(*PlaceDetails), false, nil
	}

	if m.apiKey == "" {
		return placeholderPlaceDetails(placeID), true, nil
	}

	var payload struct {
		Result struct {
			DisplayName      string   `json:"displayName"`
			FormattedAddress string   `json:"formattedAddress"`
			MapItemID        string   `json:"mapItemId"`
			Categories       []string `json:"categories"`
			Coordinate       struct {
				Latitude  *float64 `json:"latitude"`
				Longitude *float64 `json:"longitude"`
			} `json:"coordinate"`
			PhoneNumbers []struct {
				Number string `json:"number"`
			} `json:"phoneNumbers"`
			URLs []struct {
				Value string `json:"value"`
			} `json:"urls"`
			Rating struct {
				Value       *float64 `json:"value"`
				ReviewCount *int     `json:"reviewCount"`
			} `json:"rating"`
		} `json:"result"`
	}
	if err := m.get(ctx, "/places/"+url.PathEscape(placeID), url.Values{}, &payload); err != nil {
		m.logger.Warn().Err(err).Msg("maps place details failed, degrading")
		return placeholderPlaceDetails(placeID), true, nil
	}

	r := payload.Result
	details := &PlaceDetails{
		Place: Place{
			PlaceID:   r.MapItemID,
			Name:      r.DisplayName,
			Address:   r.FormattedAddress,
			Latitude:  r.Coordinate.Latitude,
			Longitude: r.Coordinate.Longitude,
		},
		Types:        r.Categories,
		Rating:       r.Rating.Value,
		ReviewsCount: r.Rating.ReviewCount,
	}
	if len(r.PhoneNumbers) > 0 {
		details.Phone = r.PhoneNumbers[0].Number
	}
	if len(r.URLs) > 0 {
		details.Website = r.URLs[0].Value
	}

	m.cache.Set(cacheKey, details, defaultCacheTTL)
	return details, false, nil
}

func (m *mapsAdapter) Directions(ctx context.Context, originLat, originLon, destLat, destLon float64, mode string) (*Directions, bool, error) {
	if mode == "" {
		mode = "DRIVING"
	}
	mode = strings.ToUpper(mode)

	if m.apiKey == "" {
		return placeholderDirections(originLat, originLon, destLat, destLon, mode), true, nil
	}

	q := url.Values{}
	q.Set("origin", fmt.Sprintf("%f,%f", originLat, originLon))
	q.Set("destination", fmt.Sprintf("%f,%f", destLat, destLon))
	q.Set("transportType", mode)

	var payload struct {
		Routes []struct {
			Summary  string `json:"summary"`
			Distance int    `json:"distance"`
			Duration int    `json:"duration"`
			Steps    []struct {
				Instructions string `json:"instructions"`
				Distance     int    `json:"distance"`
				Duration     int    `json:"duration"`
			} `json:"steps"`
		} `json:"routes"`
	}
	if err := m.get(ctx, "/directions", q, &payload); err != nil {
		m.logger.Warn().Err(err).Msg("maps directions failed, degrading")
		return placeholderDirections(originLat, originLon, destLat, destLon, mode), true, nil
	}

	directions := &Directions{}
	for _, r := range payload.Routes {
		route := Route{
			Summary:        r.Summary,
			DistanceMeters: r.Distance,
			DurationSecs:   r.Duration,
		}
		for _, s := range r.Steps {
			route.Steps = append(route.Steps, RouteStep{
				Instruction:    s.Instructions,
				DistanceMeters: s.Distance,
				DurationSecs:   s.Duration,
			})
		}
		directions.Routes = append(directions.Routes, route)
	}
	return directions, false, nil
}

func (m *mapsAdapter) Geocode(ctx context.Context, address string) (*Place, bool, error) {
	places, degraded, err := m.Search(ctx, address, nil, nil)
	if err != nil {
		return nil, degraded, err
	}
	if len(places) == 0 {
		return nil, degraded, nil
	}
	return &places[0], degraded, nil
}

func (m *mapsAdapter) ReverseGeocode(ctx context.Context, lat, lon float64) (*Place, bool, error) {
	cacheKey := fmt.Sprintf("maps:revgeo:%.4f:%.4f", lat, lon)
	if v, ok := m.cache.Get(cacheKey); ok {
		return v.(*Place), false, nil
	}

	if m.apiKey == "" {
		return placeholderReverseGeocode(lat, lon), true, nil
	}

	q := url.Values{}
	q.Set("loc", fmt.Sprintf("%f,%f", lat, lon))

	var payload mapsSearchResponse
	if err := m.get(ctx, "/reverseGeocode", q, &payload); err != nil || len(payload.Results) == 0 {
		m.logger.Warn().Err(err).Msg("maps reverse geocode failed, degrading")
		return placeholderReverseGeocode(lat, lon), true, nil
	}

	r := payload.Results[0]
	place := &Place{
		PlaceID:   r.MapItemID,
		Name:      r.DisplayName,
		Address:   r.FormattedAddress,
		Latitude:  r.Coordinate.Latitude,
		Longitude: r.Coordinate.Longitude,
	}
	m.cache.Set(cacheKey, place, defaultCacheTTL)
	return place, false, nil
}

func (m *mapsAdapter) get(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.http.Do(req)
	if err != nil {
		return fmt.Errorf("maps http error: %w", err)
	}
	return decodeResponse(resp, out)
}

var placeSuffixes = [5]string{"Place", "Spot", "Location", "Area", "Center"}

func placeholderPlaces(query string, count int) []Place {
	rng := seededRand("maps-search", query)
	title := titleCase(query)

	places := make([]Place, 0, count)
	for i := 0; i < count; i++ {
		lat := rng.Float64()*180 - 90
		lon := rng.Float64()*360 - 180
		places = append(places, Place{
			PlaceID:   fmt.Sprintf("placeholder_%d_%d", seedFrom(query), i),
			Name:      fmt.Sprintf("%s %s %d", title, placeSuffixes[i%len(placeSuffixes)], i+1),
			Address:   fmt.Sprintf("%d %s Street, Sample City, 12345", i+1, title),
			Latitude:  &lat,
			Longitude: &lon,
		})
	}
	return places
}

var placeholderTypes = []string{"restaurant", "cafe", "hotel", "attraction", "park", "museum"}

func placeholderPlaceDetails(placeID string) *PlaceDetails {
	seed := seedFrom(placeID)
	rng := seededRand("maps-place", placeID)

	placeType := placeholderTypes[int(seed)%len(placeholderTypes)]
	lat := float64(seed%180) - 90
	lon := float64(seed%360) - 180
	rating := round1(3.5 + rng.Float64()*1.5)
	reviews := 10 + rng.Intn(490)

	return &PlaceDetails{
		Place: Place{
			PlaceID:   placeID,
			Name:      fmt.Sprintf("Sample %s %d", titleCase(placeType), seed%100),
			Address:   fmt.Sprintf("%d Example Street, Sample City, 12345", seed%500+1),
			Latitude:  &lat,
			Longitude: &lon,
		},
		Types:        []string{placeType},
		Phone:        fmt.Sprintf("+1 (555) %03d-%04d", seed%999, seed%9999),
		Website:      fmt.Sprintf("https://example.com/%s/%s", placeType, placeID),
		Rating:       &rating,
		ReviewsCount: &reviews,
		Note:         placeholderNote,
	}
}

var stepInstructions = map[string][]string{
	"WALKING": {
		"Head north on Example Path",
		"Turn right onto Main Walkway",
		"Continue through Central Park",
		"Cross the intersection",
		"Turn left onto Pedestrian Street",
		"Arrive at your destination",
	},
	"TRANSIT": {
		"Walk to Example Station",
		"Board the Express Line toward City Center",
		"Transfer to the Local Line",
		"Exit at Central Station",
		"Walk to Destination Street",
		"Arrive at your destination",
	},
	"DRIVING": {
		"Head north on Example Street",
		"Turn right onto Main Street",
		"Continue onto Highway 1",
		"Take the exit toward City Center",
		"Turn left onto Oak Avenue",
		"Arrive at your destination",
	},
}

func placeholderDirections(originLat, originLon, destLat, destLon float64, mode string) *Directions {
	// Equirectangular distance estimate, good enough for synthetic data.
	latDiff := (destLat - originLat) * 111000
	lonDiff := (destLon - originLon) * 111000 * math.Cos(originLat*math.Pi/180)
	distance := math.Sqrt(latDiff*latDiff + lonDiff*lonDiff)

	speeds := map[string]float64{"DRIVING": 8.3, "WALKING": 1.4, "TRANSIT": 5.0}
	speed, ok := speeds[mode]
	if !ok {
		speed = speeds["DRIVING"]
	}
	duration := distance / speed

	instructions, ok := stepInstructions[mode]
	if !ok {
		instructions = stepInstructions["DRIVING"]
	}
	numSteps := int(distance / 1000)
	if numSteps < 3 {
		numSteps = 3
	}
	if numSteps > len(instructions) {
		numSteps = len(instructions)
	}

	steps := make([]RouteStep, 0, numSteps)
	for i := 0; i < numSteps; i++ {
		steps = append(steps, RouteStep{
			Instruction:    instructions[i],
			DistanceMeters: int(distance / float64(numSteps)),
			DurationSecs:   int(duration / float64(numSteps)),
		})
	}

	return &Directions{
		Routes: []Route{{
			Summary:        fmt.Sprintf("Sample %s route", strings.ToLower(mode)),
			DistanceMeters: int(distance),
			DurationSecs:   int(duration),
			Steps:          steps,
		}},
		Note: placeholderNote,
	}
}

func placeholderReverseGeocode(lat, lon float64) *Place {
	latPart := int(math.Abs(lat*100)) % 1000
	lonPart := int(math.Abs(lon*100)) % 1000
	return &Place{
		PlaceID:   fmt.Sprintf("placeholder_%d_%d", int(lat*1000), int(lon*1000)),
		Name:      fmt.Sprintf("Location at %.4f, %.4f", lat, lon),
		Address:   fmt.Sprintf("%d Example Street, Sample City %d, Example Country", latPart, lonPart),
		Latitude:  &lat,
		Longitude: &lon,
	}
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
