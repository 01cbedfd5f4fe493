package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Cache backend names accepted in CACHE_BACKEND.
const (
	CacheBackendFile     = "file"
	CacheBackendRedis    = "redis"
	CacheBackendPostgres = "postgres"
)

// Geocoding provider names accepted in GEOCODER_PROVIDER.
const (
	GeocoderORS    = "ors"
	GeocoderGoogle = "google"
)

// Config carries all process configuration, read from the environment
// (godotenv loads .env in the cmd entrypoints before Load runs).
type Config struct {
	Port string

	ORSAPIKey        string
	GeocoderProvider string
	GoogleAPIKey     string

	// Warehouse doubles as depot coordinates and geocoding focus point.
	WarehouseLon float64
	WarehouseLat float64
	Country      string // geocoding country filter, e.g. "RU"
	Region       string // ccTLD region bias for google, e.g. "ru"

	CacheBackend string
	CachePath    string
	RedisAddr    string
	RedisKey     string
	DatabaseURL  string
	CacheMaxSize int
	CacheTTL     time.Duration

	AddressesPath string
	SheetName     string
	FleetPath     string
}

// Load reads configuration with defaults suited for local runs.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             Get("PORT", "8080"),
		ORSAPIKey:        os.Getenv("ORS_API_KEY"),
		GeocoderProvider: Get("GEOCODER_PROVIDER", GeocoderORS),
		GoogleAPIKey:     os.Getenv("GOOGLE_MAPS_API_KEY"),
		Country:          Get("GEOCODE_COUNTRY", "RU"),
		Region:           Get("GEOCODE_REGION", "ru"),
		CacheBackend:     Get("CACHE_BACKEND", CacheBackendFile),
		CachePath:        Get("CACHE_PATH", "data/geocode_cache.json"),
		RedisAddr:        Get("REDIS_ADDR", "localhost:6379"),
		RedisKey:         Get("REDIS_CACHE_KEY", "geocode_cache"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		AddressesPath:    Get("ADDRESSES_PATH", "data/addresses.xlsx"),
		SheetName:        Get("SHEET_NAME", "Лист1"),
		FleetPath:        Get("FLEET_PATH", "data/vehicles.json"),
	}

	var err error
	if cfg.WarehouseLon, err = getFloat("WAREHOUSE_LON", 30.3155); err != nil {
		return nil, err
	}
	if cfg.WarehouseLat, err = getFloat("WAREHOUSE_LAT", 59.9386); err != nil {
		return nil, err
	}
	if cfg.CacheMaxSize, err = getInt("CACHE_MAX_SIZE", 1000); err != nil {
		return nil, err
	}

	ttlSec, err := getInt("CACHE_EXPIRY_SECONDS", 3600)
	if err != nil {
		return nil, err
	}
	cfg.CacheTTL = time.Duration(ttlSec) * time.Second

	switch cfg.GeocoderProvider {
	case GeocoderORS, GeocoderGoogle:
	default:
		return nil, fmt.Errorf("config: unknown GEOCODER_PROVIDER %q", cfg.GeocoderProvider)
	}

	switch cfg.CacheBackend {
	case CacheBackendFile, CacheBackendRedis, CacheBackendPostgres:
	default:
		return nil, fmt.Errorf("config: unknown CACHE_BACKEND %q", cfg.CacheBackend)
	}

	if cfg.CacheMaxSize < 1 {
		return nil, fmt.Errorf("config: CACHE_MAX_SIZE must be positive, got %d", cfg.CacheMaxSize)
	}

	return cfg, nil
}

// Get returns an environment value or the fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s=%q: %w", key, raw, err)
	}
	return v, nil
}

func getInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s=%q: %w", key, raw, err)
	}
	return v, nil
}
