package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

type Config struct {
	SiteOrigin     string
	LinksFile      string
	OutputFile     string
	UserAgent      string
	RequestTimeout time.Duration
	RequestDelay   time.Duration
	DatabaseURL    string
	RedisURL       string
	MetricsPort    string
}

func Load() *Config {
	// Loads .env from the working directory when present.
	_ = godotenv.Load()
	return &Config{
		SiteOrigin:     getEnv("SITE_ORIGIN", "https://www.papadontpreach.com"),
		LinksFile:      getEnv("LINKS_FILE", "links.txt"),
		OutputFile:     getEnv("OUTPUT_FILE", "Papa_Dont_Preach_output.csv"),
		UserAgent:      getEnv("USER_AGENT", defaultUserAgent),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 30*time.Second),
		RequestDelay:   getDuration("REQUEST_DELAY", time.Second),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		MetricsPort:    os.Getenv("METRICS_PORT"),
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getDuration(k string, d time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return d
}
