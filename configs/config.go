package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type LinkedIn struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	AuthURL      string
	TokenURL     string
	APIURL       string
}

type Gemini struct {
	APIKey string
	Model  string
	RPM    int
}

type Config struct {
	LinkedIn          LinkedIn
	Gemini            Gemini
	PostgresURI       string
	RedisURI          string
	FrontendURL       string
	SecretKey         string
	CookieName        string
	Port              string
	GenerateCron      string
	TokenRefreshCron  string
	WorkerConcurrency int
}

func LoadConfig() *Config {
	return &Config{
		LinkedIn: LinkedIn{
			ClientID:     getEnv("LINKEDIN_CLIENT_ID", ""),
			ClientSecret: getEnv("LINKEDIN_CLIENT_SECRET", ""),
			RedirectURI:  getEnv("LINKEDIN_REDIRECT_URI", "http://localhost:3000/api/linkedin/callback"),
			AuthURL:      getEnv("LINKEDIN_AUTH_URL", "https://www.linkedin.com/oauth/v2/authorization"),
			TokenURL:     getEnv("LINKEDIN_TOKEN_URL", "https://www.linkedin.com/oauth/v2/accessToken"),
			APIURL:       getEnv("LINKEDIN_API_URL", "https://api.linkedin.com"),
		},
		Gemini: Gemini{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			RPM:    getEnvInt("GEMINI_RPM", 10),
		},
		PostgresURI:       getEnv("POSTGRES_URI", ""),
		RedisURI:          getEnv("REDIS_URI", "localhost:6379"),
		FrontendURL:       getEnv("FRONTEND_URL", "http://localhost:5173"),
		SecretKey:         getEnv("SECRET_KEY", ""),
		CookieName:        getEnv("COOKIE_NAME", "postpilot_session"),
		Port:              getEnv("PORT", "3000"),
		GenerateCron:      getEnv("GENERATE_CRON", "@hourly"),
		TokenRefreshCron:  getEnv("TOKEN_REFRESH_CRON", "@every 00h10m00s"),
		WorkerConcurrency: getEnvInt("WORKER_CONCURRENCY", 1),
	}
}

// Validate reports every required setting that is missing for the server to run.
// GEMINI_API_KEY is optional; without it generated content uses the fallback text.
func (c *Config) Validate() error {
	var missing []string
	if c.PostgresURI == "" {
		missing = append(missing, "POSTGRES_URI")
	}
	if c.LinkedIn.ClientID == "" {
		missing = append(missing, "LINKEDIN_CLIENT_ID")
	}
	if c.LinkedIn.ClientSecret == "" {
		missing = append(missing, "LINKEDIN_CLIENT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	// AES-256 key for token encryption
	if len(c.SecretKey) != 32 {
		return fmt.Errorf("SECRET_KEY must be 32 bytes, got %d", len(c.SecretKey))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
