package adapters

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"sojourn/internal/config"
	mem "sojourn/pkg/memcache"
)

type BookableActivity struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	ActivityType string  `json:"activity_type"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	DurationHrs  float64 `json:"duration_hours"`
	Rating       float64 `json:"rating"`
	ReviewsCount int     `json:"reviews_count"`
	ImageURL     string  `json:"image_url"`
	BookingURL   string  `json:"booking_url"`
}

type BookableActivityDetails struct {
	BookableActivity
	DetailedDescription string   `json:"detailed_description"`
	Included            []string `json:"included"`
	NotIncluded         []string `json:"not_included"`
	MeetingPoint        string   `json:"meeting_point"`
	CancellationPolicy  string   `json:"cancellation_policy"`
	Note                string   `json:"note,omitempty"`
}

type Hotel struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Address       string   `json:"address"`
	PricePerNight float64  `json:"price_per_night"`
	Currency      string   `json:"currency"`
	Rating        float64  `json:"rating"`
	ReviewsCount  int      `json:"reviews_count"`
	Amenities     []string `json:"amenities"`
	ImageURL      string   `json:"image_url"`
	BookingURL    string   `json:"booking_url"`
}

type HotelRoomType struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Description  string  `json:"description"`
	MaxOccupancy int     `json:"max_occupancy"`
}

type HotelDetails struct {
	Hotel
	DetailedDescription string          `json:"detailed_description"`
	RoomTypes           []HotelRoomType `json:"room_types"`
	CheckIn             string          `json:"check_in"`
	CheckOut            string          `json:"check_out"`
	CancellationPolicy  string          `json:"cancellation_policy"`
	Note                string          `json:"note,omitempty"`
}

type ExpediaAdapter interface {
	SearchActivities(ctx context.Context, location string, start, end time.Time, activityType string, limit int) ([]BookableActivity, bool, error)
	ActivityDetails(ctx context.Context, activityID string) (*BookableActivityDetails, bool, error)
	SearchHotels(ctx context.Context, location string, checkIn, checkOut time.Time, guests, rooms, limit int) ([]Hotel, bool, error)
	HotelDetails(ctx context.Context, hotelID string) (*HotelDetails, bool, error)
}

type expediaAdapter struct {
	apiKey  string
	baseURL string
	http    *http.Client
	cache   mem.TTLStore
	logger  zerolog.Logger
}

func NewExpediaAdapter(cfg *config.Config, cache mem.TTLStore, logger zerolog.Logger) ExpediaAdapter {
	return &expediaAdapter{
		apiKey:  cfg.ExpediaAPIKey,
		baseURL: cfg.ExpediaAPIBaseURL,
		http:    newHTTPClient(),
		cache:   cache,
		logger:  logger,
	}
}

func (e *expediaAdapter) SearchActivities(ctx context.Context, location string, start, end time.Time, activityType string, limit int) ([]BookableActivity, bool, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	if e.apiKey == "" {
		return filterActivities(placeholderActivities(location), activityType, limit), true, nil
	}

	cacheKey := fmt.Sprintf("expedia:act:%s:%s:%s", strings.ToLower(location), start.Format("2006-01-02"), end.Format("2006-01-02"))
	if cached, ok := e.cache.Get(cacheKey); ok {
		return filterActivities(cached.([]BookableActivity), activityType, limit), false, nil
	}

	q := url.Values{}
	q.Set("location", location)
	q.Set("startDate", start.Format("2006-01-02"))
	q.Set("endDate", end.Format("2006-01-02"))

	var payload struct {
		Activities []BookableActivity `json:"activities"`
	}
	if err := e.get(ctx, "/activities/search", q, &payload); err != nil {
		e.logger.Warn().Err(err).Msg("expedia activity search failed, degrading")
		return filterActivities(placeholderActivities(location), activityType, limit), true, nil
	}

	e.cache.Set(cacheKey, payload.Activities, defaultCacheTTL)
	return filterActivities(payload.Activities, activityType, limit), false, nil
}

func (e *expediaAdapter) ActivityDetails(ctx context.Context, activityID string) (*BookableActivityDetails, bool, error) {
	if e.apiKey == "" {
		return placeholderActivityDetails(activityID), true, nil
	}

	var payload BookableActivityDetails
	if err := e.get(ctx, "/activities/"+url.PathEscape(activityID), url.Values{}, &payload); err != nil {
		e.logger.Warn().Err(err).Msg("expedia activity details failed, degrading")
		return placeholderActivityDetails(activityID), true, nil
	}
	return &payload, false, nil
}

func (e *expediaAdapter) SearchHotels(ctx context.Context, location string, checkIn, checkOut time.Time, guests, rooms, limit int) ([]Hotel, bool, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	if guests <= 0 {
		guests = 2
	}
	if rooms <= 0 {
		rooms = 1
	}

	if e.apiKey == "" {
		hotels := placeholderHotels(location)
		if len(hotels) > limit {
			hotels = hotels[:limit]
		}
		return hotels, true, nil
	}

	cacheKey := fmt.Sprintf("expedia:hotel:%s:%s:%s:%d:%d", strings.ToLower(location), checkIn.Format("2006-01-02"), checkOut.Format("2006-01-02"), guests, rooms)
	if cached, ok := e.cache.Get(cacheKey); ok {
		hotels := cached.([]Hotel)
		if len(hotels) > limit {
			hotels = hotels[:limit]
		}
		return hotels, false, nil
	}

	q := url.Values{}
	q.Set("location", location)
	q.Set("checkIn", checkIn.Format("2006-01-02"))
	q.Set("checkOut", checkOut.Format("2006-01-02"))
	q.Set("guests", fmt.Sprintf("%d", guests))
	q.Set("rooms", fmt.Sprintf("%d", rooms))

	var payload struct {
		Hotels []Hotel `json:"hotels"`
	}
	if err := e.get(ctx, "/hotels/search", q, &payload); err != nil {
		e.logger.Warn().Err(err).Msg("expedia hotel search failed, degrading")
		hotels := placeholderHotels(location)
		if len(hotels) > limit {
			hotels = hotels[:limit]
		}
		return hotels, true, nil
	}

	e.cache.Set(cacheKey, payload.Hotels, defaultCacheTTL)
	hotels := payload.Hotels
	if len(hotels) > limit {
		hotels = hotels[:limit]
	}
	return hotels, false, nil
}

func (e *expediaAdapter) HotelDetails(ctx context.Context, hotelID string) (*HotelDetails, bool, error) {
	if e.apiKey == "" {
		return placeholderHotelDetails(hotelID), true, nil
	}

	var payload HotelDetails
	if err := e.get(ctx, "/hotels/"+url.PathEscape(hotelID), url.Values{}, &payload); err != nil {
		e.logger.Warn().Err(err).Msg("expedia hotel details failed, degrading")
		return placeholderHotelDetails(hotelID), true, nil
	}
	return &payload, false, nil
}

func (e *expediaAdapter) get(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.http.Do(req)
	if err != nil {
		return fmt.Errorf("expedia http error: %w", err)
	}
	return decodeResponse(resp, out)
}

func filterActivities(activities []BookableActivity, activityType string, limit int) []BookableActivity {
	result := make([]BookableActivity, 0, limit)
	for _, a := range activities {
		if activityType != "" && !strings.EqualFold(a.ActivityType, activityType) {
			continue
		}
		result = append(result, a)
		if len(result) == limit {
			break
		}
	}
	return result
}

// The placeholder catalogue mirrors the shapes a live integration would
// return, keyed deterministically off the location string.
func placeholderActivities(location string) []BookableActivity {
	return []BookableActivity{
		{
			ID:           fmt.Sprintf("act-%d-1", seedFrom(location)),
			Title:        fmt.Sprintf("City Tour of %s", location),
			Description:  fmt.Sprintf("Explore the beautiful city of %s with a knowledgeable guide.", location),
			ActivityType: "sightseeing",
			Price:        49.99, Currency: "USD", DurationHrs: 3.0,
			Rating: 4.5, ReviewsCount: 120,
			ImageURL:   "https://example.com/city_tour.jpg",
			BookingURL: "https://example.com/book/city_tour",
		},
		{
			ID:           fmt.Sprintf("act-%d-2", seedFrom(location)),
			Title:        fmt.Sprintf("Food Tasting in %s", location),
			Description:  fmt.Sprintf("Sample the local cuisine of %s with this guided food tour.", location),
			ActivityType: "dining",
			Price:        65.00, Currency: "USD", DurationHrs: 2.5,
			Rating: 4.7, ReviewsCount: 85,
			ImageURL:   "https://example.com/food_tour.jpg",
			BookingURL: "https://example.com/book/food_tour",
		},
		{
			ID:           fmt.Sprintf("act-%d-3", seedFrom(location)),
			Title:        fmt.Sprintf("Museum Pass for %s", location),
			Description:  fmt.Sprintf("Access to the top museums in %s.", location),
			ActivityType: "entertainment",
			Price:        30.00, Currency: "USD", DurationHrs: 8.0,
			Rating: 4.3, ReviewsCount: 210,
			ImageURL:   "https://example.com/museum_pass.jpg",
			BookingURL: "https://example.com/book/museum_pass",
		},
		{
			ID:           fmt.Sprintf("act-%d-4", seedFrom(location)),
			Title:        fmt.Sprintf("Outdoor Adventure in %s", location),
			Description:  fmt.Sprintf("Hiking and outdoor activities around %s.", location),
			ActivityType: "recreation",
			Price:        75.00, Currency: "USD", DurationHrs: 5.0,
			Rating: 4.8, ReviewsCount: 65,
			ImageURL:   "https://example.com/outdoor_adventure.jpg",
			BookingURL: "https://example.com/book/outdoor_adventure",
		},
		{
			ID:           fmt.Sprintf("act-%d-5", seedFrom(location)),
			Title:        fmt.Sprintf("Evening Entertainment in %s", location),
			Description:  fmt.Sprintf("Shows and nightlife in %s.", location),
			ActivityType: "entertainment",
			Price:        55.00, Currency: "USD", DurationHrs: 3.0,
			Rating: 4.2, ReviewsCount: 95,
			ImageURL:   "https://example.com/evening_entertainment.jpg",
			BookingURL: "https://example.com/book/evening_entertainment",
		},
	}
}

func placeholderActivityDetails(activityID string) *BookableActivityDetails {
	base := placeholderActivities("Sample City")[int(seedFrom(activityID))%5]
	base.ID = activityID
	return &BookableActivityDetails{
		BookableActivity:    base,
		DetailedDescription: "This experience takes you through the most iconic landmarks and hidden gems with an expert local guide.",
		Included:            []string{"Professional guide", "Transportation", "Bottled water"},
		NotIncluded:         []string{"Gratuities", "Food and drinks"},
		MeetingPoint:        "Central Tourist Office",
		CancellationPolicy:  "Free cancellation up to 24 hours before the activity",
		Note:                placeholderNote,
	}
}

func placeholderHotels(location string) []Hotel {
	return []Hotel{
		{
			ID:   fmt.Sprintf("hotel-%d-1", seedFrom(location)),
			Name: fmt.Sprintf("Grand Hotel %s", location),
			Description:   fmt.Sprintf("Luxury hotel in the heart of %s.", location),
			Address:       fmt.Sprintf("123 Main Street, %s", location),
			PricePerNight: 199.99, Currency: "USD",
			Rating: 4.5, ReviewsCount: 320,
			Amenities:  []string{"Pool", "Spa", "Restaurant", "Free WiFi", "Fitness Center"},
			ImageURL:   "https://example.com/grand_hotel.jpg",
			BookingURL: "https://example.com/book/grand_hotel",
		},
		{
			ID:   fmt.Sprintf("hotel-%d-2", seedFrom(location)),
			Name: fmt.Sprintf("Boutique Inn %s", location),
			Description:   fmt.Sprintf("Charming boutique hotel in %s.", location),
			Address:       fmt.Sprintf("456 Oak Avenue, %s", location),
			PricePerNight: 149.99, Currency: "USD",
			Rating: 4.3, ReviewsCount: 180,
			Amenities:  []string{"Free Breakfast", "Free WiFi", "Bar"},
			ImageURL:   "https://example.com/boutique_inn.jpg",
			BookingURL: "https://example.com/book/boutique_inn",
		},
		{
			ID:   fmt.Sprintf("hotel-%d-3", seedFrom(location)),
			Name: fmt.Sprintf("Budget Stay %s", location),
			Description:   fmt.Sprintf("Affordable accommodations in %s.", location),
			Address:       fmt.Sprintf("789 Pine Road, %s", location),
			PricePerNight: 89.99, Currency: "USD",
			Rating: 3.8, ReviewsCount: 250,
			Amenities:  []string{"Free WiFi", "Parking"},
			ImageURL:   "https://example.com/budget_stay.jpg",
			BookingURL: "https://example.com/book/budget_stay",
		},
		{
			ID:   fmt.Sprintf("hotel-%d-4", seedFrom(location)),
			Name: fmt.Sprintf("Resort & Spa %s", location),
			Description:   fmt.Sprintf("Relaxing resort experience in %s.", location),
			Address:       fmt.Sprintf("101 Beach Boulevard, %s", location),
			PricePerNight: 299.99, Currency: "USD",
			Rating: 4.7, ReviewsCount: 420,
			Amenities:  []string{"Pool", "Spa", "Restaurant", "Free WiFi", "Fitness Center", "Beach Access"},
			ImageURL:   "https://example.com/resort_spa.jpg",
			BookingURL: "https://example.com/book/resort_spa",
		},
		{
			ID:   fmt.Sprintf("hotel-%d-5", seedFrom(location)),
			Name: fmt.Sprintf("Business Hotel %s", location),
			Description:   fmt.Sprintf("Perfect for business travelers in %s.", location),
			Address:       fmt.Sprintf("202 Commerce Street, %s", location),
			PricePerNight: 179.99, Currency: "USD",
			Rating: 4.2, ReviewsCount: 290,
			Amenities:  []string{"Business Center", "Free WiFi", "Restaurant", "Fitness Center"},
			ImageURL:   "https://example.com/business_hotel.jpg",
			BookingURL: "https://example.com/book/business_hotel",
		},
	}
}

func placeholderHotelDetails(hotelID string) *HotelDetails {
	base := placeholderHotels("Sample City")[int(seedFrom(hotelID))%5]
	base.ID = hotelID
	return &HotelDetails{
		Hotel:               base,
		DetailedDescription: "Spacious rooms, exceptional service and world-class amenities in a central location.",
		RoomTypes: []HotelRoomType{
			{Name: "Standard Room", Price: base.PricePerNight, Description: "Comfortable room with queen bed", MaxOccupancy: 2},
			{Name: "Deluxe Room", Price: base.PricePerNight + 50, Description: "Spacious room with king bed and city view", MaxOccupancy: 2},
			{Name: "Suite", Price: base.PricePerNight + 150, Description: "Luxury suite with separate living area", MaxOccupancy: 4},
		},
		CheckIn:            "3:00 PM",
		CheckOut:           "11:00 AM",
		CancellationPolicy: "Free cancellation up to 48 hours before check-in",
		Note:               placeholderNote,
	}
}
