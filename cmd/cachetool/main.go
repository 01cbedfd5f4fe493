package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"route-optimizer-service/internal/adapters/cache"
	"route-optimizer-service/internal/config"
	"route-optimizer-service/internal/platform/db"
)

// cachetool inspects and maintains the persisted geocode cache,
// whichever backend CACHE_BACKEND selects.
//
// Usage: cachetool <init|show|clear>
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	if len(os.Args) != 2 {
		log.Fatal("usage: cachetool <init|show|clear>")
	}
	cmd := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	if cmd == "init" {
		if err := initBackend(ctx, cfg); err != nil {
			log.Fatal(err)
		}
		return
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}

	switch cmd {
	case "show":
		err = show(ctx, store)
	case "clear":
		err = store.Save(ctx, map[string]cache.Entry{})
		if err == nil {
			log.Printf("cache cleared backend=%s", cfg.CacheBackend)
		}
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// initBackend prepares backend state. Only postgres has schema to
// create; the file and redis backends need nothing up front.
func initBackend(ctx context.Context, cfg *config.Config) error {
	if cfg.CacheBackend != config.CacheBackendPostgres {
		log.Printf("backend=%s needs no initialization", cfg.CacheBackend)
		return nil
	}
	sqlDB, err := openPostgres(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	log.Println("Initializing cache schema...")
	if err := cache.InitSchema(ctx, sqlDB); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")
	return nil
}

func show(ctx context.Context, store cache.Store) error {
	entries, err := store.Load(ctx)
	if err != nil {
		return err
	}

	addresses := make([]string, 0, len(entries))
	for addr := range entries {
		addresses = append(addresses, addr)
	}
	sort.Strings(addresses)

	for _, addr := range addresses {
		e := entries[addr]
		age := time.Since(e.CachedAt).Round(time.Second)
		fmt.Printf("%-60s lon=%.6f lat=%.6f age=%s\n", addr, e.Coords.Lon, e.Coords.Lat, age)
	}
	fmt.Printf("%d entries\n", len(entries))
	return nil
}

func buildStore(ctx context.Context, cfg *config.Config) (cache.Store, error) {
	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return cache.NewRedisStore(client, cfg.RedisKey), nil
	case config.CacheBackendPostgres:
		sqlDB, err := openPostgres(cfg)
		if err != nil {
			return nil, err
		}
		if err := cache.InitSchema(ctx, sqlDB); err != nil {
			return nil, err
		}
		return cache.NewPGStore(sqlDB), nil
	default:
		return cache.NewFileStore(cfg.CachePath), nil
	}
}

func openPostgres(cfg *config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when CACHE_BACKEND=postgres")
	}
	return db.Open(cfg.DatabaseURL)
}
