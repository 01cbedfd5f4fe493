package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"route-optimizer-service/internal/domain"
	"strings"
	"time"
)

// PGStore persists the cache as rows in a Postgres table. Save replaces
// the table contents in one transaction so the persisted state always
// matches a single in-memory snapshot.
type PGStore struct {
	DB *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{DB: db}
}

// InitSchema creates the geocode cache table if missing.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("pg store: db is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lon DOUBLE PRECISION NOT NULL,
        lat DOUBLE PRECISION NOT NULL,
        cached_at TIMESTAMPTZ NOT NULL
    );
	`
	if _, err := db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("pg store: init schema: %w", err)
	}

	return nil
}

// Load reads all persisted entries.
func (s *PGStore) Load(ctx context.Context) (map[string]Entry, error) {
	if s.DB == nil {
		return nil, errors.New("pg store: db is nil")
	}

	q := `
	SELECT address, lon, lat, cached_at
    FROM geocode_cache;
	`

	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("pg store: query geocode_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]Entry)
	for rows.Next() {
		var addr string
		var lon, lat float64
		var cachedAt time.Time
		if err := rows.Scan(&addr, &lon, &lat, &cachedAt); err != nil {
			return nil, fmt.Errorf("pg store: scan rows: %w", err)
		}
		out[addr] = Entry{
			Coords:   domain.Coordinates{Lon: lon, Lat: lat},
			CachedAt: cachedAt,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pg store: row iteration: %w", err)
	}

	return out, nil
}

// Save replaces the persisted state with the given entries.
func (s *PGStore) Save(ctx context.Context, entries map[string]Entry) error {
	if s.DB == nil {
		return errors.New("pg store: db is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("pg store: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM geocode_cache;`); err != nil {
		return fmt.Errorf("pg store: clear geocode_cache table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO geocode_cache (address, lon, lat, cached_at)
    VALUES ($1, $2, $3, $4);
	`)
	if err != nil {
		return fmt.Errorf("pg store: db prepare: %w", err)
	}
	defer stmt.Close()

	for addr, e := range entries {
		if strings.TrimSpace(addr) == "" {
			return fmt.Errorf("pg store: empty address key")
		}

		if _, err := stmt.ExecContext(ctx, addr, e.Coords.Lon, e.Coords.Lat, e.CachedAt); err != nil {
			return fmt.Errorf("pg store: insert addr=%q: %w", addr, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("pg store: commit: %w", err)
	}

	return nil
}
