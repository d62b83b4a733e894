// Package store persists computed routes and caches route results.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/geo"
	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/routing"
)

var ErrNotSaved = errors.New("only successful routes are stored")

// RouteRecord is one stored route.
type RouteRecord struct {
	ID              int64            `json:"id"`
	Origin          geo.Coordinate   `json:"origin"`
	Destination     geo.Coordinate   `json:"destination"`
	Mode            routing.Mode     `json:"mode"`
	Path            []geo.Coordinate `json:"path"`
	DistanceKm      float64          `json:"distanceKm"`
	DurationMinutes int              `json:"durationMinutes"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// RecordFromResult copies the persisted fields of a successful result.
func RecordFromResult(res routing.RouteResult, at time.Time) (RouteRecord, error) {
	if !res.Success {
		return RouteRecord{}, ErrNotSaved
	}
	return RouteRecord{
		Origin:          res.Origin,
		Destination:     res.Destination,
		Mode:            res.Mode,
		Path:            res.Path,
		DistanceKm:      res.DistanceKm,
		DurationMinutes: res.DurationMinutes,
		CreatedAt:       at.UTC(),
	}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS routes (
	id               BIGSERIAL PRIMARY KEY,
	origin_lat       DOUBLE PRECISION NOT NULL,
	origin_lng       DOUBLE PRECISION NOT NULL,
	destination_lat  DOUBLE PRECISION NOT NULL,
	destination_lng  DOUBLE PRECISION NOT NULL,
	mode             TEXT NOT NULL,
	path             JSONB NOT NULL,
	distance_km      DOUBLE PRECISION NOT NULL,
	duration_minutes INTEGER NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS routes_created_at_idx ON routes (created_at DESC);
`

// Postgres stores route history in a routes table.
type Postgres struct {
	db *sql.DB
}

func AttachDB(db *sql.DB) *Postgres { return &Postgres{db: db} }

// OpenPostgres opens a pooled connection and checks it with a ping.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Close() error { return p.db.Close() }

func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create routes schema: %w", err)
	}
	return nil
}

// Save stores a successful result and returns the new record id.
func (p *Postgres) Save(ctx context.Context, res routing.RouteResult, at time.Time) (int64, error) {
	rec, err := RecordFromResult(res, at)
	if err != nil {
		return 0, err
	}
	path, err := json.Marshal(rec.Path)
	if err != nil {
		return 0, fmt.Errorf("encode path: %w", err)
	}

	var id int64
	err = p.db.QueryRowContext(ctx,
		`INSERT INTO routes (origin_lat, origin_lng, destination_lat, destination_lng, mode, path, distance_km, duration_minutes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		rec.Origin.Lat, rec.Origin.Lng, rec.Destination.Lat, rec.Destination.Lng,
		string(rec.Mode), path, rec.DistanceKm, rec.DurationMinutes, rec.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert route: %w", err)
	}
	return id, nil
}

// Recent returns up to limit records, newest first.
func (p *Postgres) Recent(ctx context.Context, limit int) ([]RouteRecord, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, origin_lat, origin_lng, destination_lat, destination_lng, mode, path, distance_km, duration_minutes, created_at
		 FROM routes ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query routes: %w", err)
	}
	defer rows.Close()

	var out []RouteRecord
	for rows.Next() {
		var (
			rec  RouteRecord
			mode string
			path []byte
		)
		if err := rows.Scan(&rec.ID, &rec.Origin.Lat, &rec.Origin.Lng, &rec.Destination.Lat, &rec.Destination.Lng,
			&mode, &path, &rec.DistanceKm, &rec.DurationMinutes, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan route: %w", err)
		}
		rec.Mode = routing.Mode(mode)
		if err := json.Unmarshal(path, &rec.Path); err != nil {
			return nil, fmt.Errorf("decode path of route %d: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
