package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/emergencyai/emergency-assistant/internal/location"
)

// AppConfig holds the service configuration, read from the environment.
type AppConfig struct {
	Port string

	WeatherAPIKey  string
	NewsAPIKey     string
	GeocoderAPIKey string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// DefaultLocation scopes requests that carry no explicit location.
	DefaultLocation location.Location

	// RefreshInterval controls the background alert-refresh job.
	RefreshInterval time.Duration

	// ServerURL is where the companion CLI reaches the service.
	ServerURL string

	// DataDir is where the device-local key/value store lives.
	DataDir string

	// PublicDir holds the static assets served at /.
	PublicDir string

	// CacheVersion tags the offline asset cache generation.
	CacheVersion string

	// Redis, optional. Saved locations fall back to the in-memory store
	// when no address is configured.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads configuration from the environment with sensible defaults.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_KEY")
	cfg.NewsAPIKey = os.Getenv("NEWSAPI_KEY")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	timeout, err := parseDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	interval, err := parseDuration("REFRESH_INTERVAL", "15m")
	if err != nil {
		return nil, err
	}
	cfg.RefreshInterval = interval

	cfg.DefaultLocation = location.Location{
		City:    getenvDefault("DEFAULT_CITY", location.Default.City),
		Country: getenvDefault("DEFAULT_COUNTRY", location.Default.Country),
	}

	cfg.ServerURL = getenvDefault("SERVER_URL", "http://localhost:8080")
	cfg.DataDir = getenvDefault("DATA_DIR", "data")
	cfg.PublicDir = getenvDefault("PUBLIC_DIR", "public")
	cfg.CacheVersion = getenvDefault("CACHE_VERSION", "emergency-ai-cache-v1")

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisDB = getenvInt("REDIS_DB", 0)

	return cfg, nil
}

func parseDuration(key, def string) (time.Duration, error) {
	raw := getenvDefault(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
