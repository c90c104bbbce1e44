package config

import (
	"net/url"
	"os"
	"strconv"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string

	JWTSecret           string
	JWTExpiresInSeconds int64

	// Google Ads API settings. Publishing is optional; when the credentials
	// are absent the publish endpoint reports the API as not configured.
	GoogleAds GoogleAdsConfig
}

type GoogleAdsConfig struct {
	BaseURL        string
	DeveloperToken string
	ClientID       string
	ClientSecret   string
	RefreshToken   string
	CustomerID     string
}

func Load() *Config {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		host := getEnv("PSQL_HOST", "localhost")
		port := getEnv("PSQL_PORT", "5432")
		user := getEnv("PSQL_USER", "postgres")
		password := getEnv("PSQL_PASSWORD", "postgres")
		dbName := getEnv("PSQL_DB_NAME", "adcampaign")

		u := &url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(user, password),
			Host:   host + ":" + port,
			Path:   dbName,
		}
		q := u.Query()
		q.Set("sslmode", "disable")
		u.RawQuery = q.Encode()
		databaseURL = u.String()
	}

	expiresIn, _ := strconv.ParseInt(getEnv("JWT_EXPIRES_IN_SECONDS", "86400"), 10, 64)

	return &Config{
		Port:                getEnv("PORT", "8080"),
		Environment:         getEnv("ENVIRONMENT", "development"),
		DatabaseURL:         databaseURL,
		JWTSecret:           getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTExpiresInSeconds: expiresIn,
		GoogleAds: GoogleAdsConfig{
			BaseURL:        getEnv("GOOGLE_ADS_BASE_URL", "https://googleads.googleapis.com"),
			DeveloperToken: os.Getenv("GOOGLE_ADS_DEVELOPER_TOKEN"),
			ClientID:       os.Getenv("GOOGLE_ADS_CLIENT_ID"),
			ClientSecret:   os.Getenv("GOOGLE_ADS_CLIENT_SECRET"),
			RefreshToken:   os.Getenv("GOOGLE_ADS_REFRESH_TOKEN"),
			CustomerID:     os.Getenv("GOOGLE_ADS_CUSTOMER_ID"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
