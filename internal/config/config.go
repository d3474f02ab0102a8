package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	Environment         string
	AppId               string
	SkipAuth            bool
	SessionSecret       string
	CORSOrigins         string
	UpstreamBaseURL     string
	UpstreamTimeout     time.Duration
	LogMongoURI         string // Empty disables shipping logs to MongoDB
	LogDBName           string
	ReportCanonicalBlob bool
	CaseSearchDebounce  time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:                getEnv("PORT", "8080"),
		Environment:         getEnv("ENVIRONMENT", "development"),
		AppId:               getEnv("APP_ID", "crossroads-reports"),
		SkipAuth:            getEnv("SKIP_AUTH", "false") == "true",
		SessionSecret:       getEnv("SESSION_SECRET", "secret"),
		CORSOrigins:         getEnv("CORS_ORIGINS", "http://localhost:3000, http://localhost:5173"),
		UpstreamBaseURL:     strings.TrimRight(getEnv("UPSTREAM_BASE_URL", "http://localhost:5000/api"), "/"),
		UpstreamTimeout:     getDuration("UPSTREAM_TIMEOUT", 30*time.Second),
		LogMongoURI:         getEnv("LOG_MONGO_URI", ""),
		LogDBName:           getEnv("LOG_DB_NAME", "crossroads"),
		ReportCanonicalBlob: getEnv("REPORT_CANONICAL_BLOB", "false") == "true",
		CaseSearchDebounce:  getDuration("CASE_SEARCH_DEBOUNCE", 500*time.Millisecond),
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid duration for %s (%q), using %s", key, value, fallback)
		return fallback
	}
	return d
}
