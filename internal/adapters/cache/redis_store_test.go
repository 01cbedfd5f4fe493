package cache

import (
	"context"
	"route-optimizer-service/internal/domain"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, "geocode_cache_test")
}

func TestRedisStoreRoundtrip(t *testing.T) {
	ctx := context.Background()
	s := newTestRedisStore(t)

	entries := map[string]Entry{
		"Лиговский пр., 10": {
			Coords:   domain.Coordinates{Lon: 30.3558, Lat: 59.9292},
			CachedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		"Садовая ул., 5": {
			Coords:   domain.Coordinates{Lon: 30.3345, Lat: 59.9352},
			CachedAt: time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC),
		},
	}

	if err := s.Save(ctx, entries); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for addr, want := range entries {
		e, ok := got[addr]
		if !ok {
			t.Fatalf("missing %q after roundtrip", addr)
		}
		if e.Coords != want.Coords {
			t.Fatalf("%q coords = %+v, want %+v", addr, e.Coords, want.Coords)
		}
	}
}

func TestRedisStoreMissingKeyIsEmpty(t *testing.T) {
	s := newTestRedisStore(t)

	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

func TestRedisStoreSaveReplacesState(t *testing.T) {
	ctx := context.Background()
	s := newTestRedisStore(t)

	first := map[string]Entry{"old": {Coords: domain.Coordinates{Lon: 1}}}
	if err := s.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := map[string]Entry{"new": {Coords: domain.Coordinates{Lon: 2}}}
	if err := s.Save(ctx, second); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := got["old"]; ok {
		t.Fatal("save must replace prior state wholesale")
	}
	if _, ok := got["new"]; !ok {
		t.Fatal("missing replacement entry")
	}
}
