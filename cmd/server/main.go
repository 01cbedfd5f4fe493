package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"route-optimizer-service/internal/adapters/cache"
	"route-optimizer-service/internal/adapters/fleet"
	"route-optimizer-service/internal/adapters/gmaps"
	"route-optimizer-service/internal/adapters/ors"
	"route-optimizer-service/internal/adapters/spreadsheet"
	"route-optimizer-service/internal/api"
	"route-optimizer-service/internal/config"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/db"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if strings.TrimSpace(cfg.ORSAPIKey) == "" {
		log.Fatal("ORS_API_KEY is required")
	}

	warehouse := domain.Coordinates{Lon: cfg.WarehouseLon, Lat: cfg.WarehouseLat}

	ctx := context.Background()

	store, err := buildStore(cfg)
	if err != nil {
		log.Fatal(err)
	}

	geocodeCache := cache.NewGeocodeCache(cfg.CacheMaxSize, cfg.CacheTTL, store, nil)
	if err := geocodeCache.Load(ctx); err != nil {
		log.Printf("geocode cache load failed, starting empty: %v", err)
	} else {
		log.Printf("geocode cache loaded backend=%s entries=%d", cfg.CacheBackend, geocodeCache.Len())
	}

	orsClient, err := ors.NewClient(cfg.ORSAPIKey, warehouse, cfg.Country)
	if err != nil {
		log.Fatal(err)
	}

	var provider ports.GeocodingService = orsClient
	if cfg.GeocoderProvider == config.GeocoderGoogle {
		if strings.TrimSpace(cfg.GoogleAPIKey) == "" {
			log.Fatal("GOOGLE_MAPS_API_KEY is required when GEOCODER_PROVIDER=google")
		}
		provider, err = gmaps.NewGeocoder(cfg.GoogleAPIKey, cfg.Region, cfg.Country)
		if err != nil {
			log.Fatal(err)
		}
	}
	log.Printf("geocoder provider=%s country=%s", cfg.GeocoderProvider, cfg.Country)

	vehicles, err := fleet.LoadFromJSON(cfg.FleetPath)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("fleet loaded vehicles=%d", len(vehicles))

	geocoder := services.NewGeocoder(provider, geocodeCache)
	optimizer := services.NewOptimizer(geocoder, orsClient, vehicles, warehouse)
	source := spreadsheet.NewXLSXSource(cfg.AddressesPath, cfg.SheetName)

	router := api.NewRouter(source, optimizer, warehouse)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("listening on :%s", cfg.Port)
	log.Fatal(srv.ListenAndServe())
}

// buildStore selects the persistence backend for the geocode cache.
func buildStore(cfg *config.Config) (cache.Store, error) {
	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return cache.NewRedisStore(client, cfg.RedisKey), nil
	case config.CacheBackendPostgres:
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			log.Fatal("DATABASE_URL is required when CACHE_BACKEND=postgres")
		}
		sqlDB, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := cache.InitSchema(context.Background(), sqlDB); err != nil {
			return nil, err
		}
		return cache.NewPGStore(sqlDB), nil
	default:
		return cache.NewFileStore(cfg.CachePath), nil
	}
}
