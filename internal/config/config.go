package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries all environment-backed settings. Third-party credentials may
// be empty; the adapters degrade to placeholder data when they are.
type Config struct {
	Port        string
	PostgresURL string

	JWTSecret      string
	AccessTokenTTL time.Duration

	WeatherAPIKey     string
	WeatherAPIBaseURL string

	MapsAPIKey     string
	MapsAPIBaseURL string

	ExpediaAPIKey     string
	ExpediaAPIBaseURL string

	OpenAIAPIKey string
	GeminiAPIKey string

	AWSRegion       string
	S3Bucket        string
	S3Endpoint      string
	S3AccessKey     string
	S3SecretKey     string
	StorageBaseURL  string
	StorageLocalDir string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	AppBaseURL   string

	MediaThumbnailPx     int
	TripPhotoThumbnailPx int
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func Load() *Config {
	accessTTL := 7 * 24 * time.Hour
	if minutes := getenvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 0); minutes > 0 {
		accessTTL = time.Duration(minutes) * time.Minute
	}

	return &Config{
		Port:        getenv("PORT", "8000"),
		PostgresURL: os.Getenv("POSTGRES_URL"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		AccessTokenTTL: accessTTL,

		WeatherAPIKey:     os.Getenv("WEATHER_API_KEY"),
		WeatherAPIBaseURL: getenv("WEATHER_API_BASE_URL", "https://api.weatherapi.com/v1"),

		MapsAPIKey:     os.Getenv("MAPS_API_KEY"),
		MapsAPIBaseURL: getenv("MAPS_API_BASE_URL", "https://maps-api.apple.com/v1"),

		ExpediaAPIKey:     os.Getenv("EXPEDIA_API_KEY"),
		ExpediaAPIBaseURL: getenv("EXPEDIA_API_BASE_URL", "https://api.expedia.com/v3"),

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),

		AWSRegion:       getenv("AWS_REGION", "us-east-1"),
		S3Bucket:        os.Getenv("S3_BUCKET"),
		S3Endpoint:      os.Getenv("S3_ENDPOINT"),
		S3AccessKey:     os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:     os.Getenv("S3_SECRET_KEY"),
		StorageBaseURL:  getenv("STORAGE_URL", "https://storage.sojourn.app"),
		StorageLocalDir: getenv("STORAGE_LOCAL_DIR", "./data/blobs"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getenvInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getenv("SMTP_FROM", "no-reply@sojourn.app"),
		AppBaseURL:   getenv("APP_BASE_URL", "http://localhost:8000"),

		MediaThumbnailPx:     getenvInt("MEDIA_THUMBNAIL_PX", 200),
		TripPhotoThumbnailPx: getenvInt("TRIP_PHOTO_THUMBNAIL_PX", 300),
	}
}
