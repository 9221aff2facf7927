package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/clustermap/internal/core/domain"
)

const markerColumns = `id, seq, title, lat, lon, created_at`

const insertMarker = `
	INSERT INTO markers (id, seq, title, lat, lon, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)`

// MarkerRepo persists markers and the camera with pgx. It implements
// ports.MapSurface, ports.MarkerReader and ports.Clearer.
type MarkerRepo struct {
	db *DB
}

// NewMarkerRepo creates a new MarkerRepo.
func NewMarkerRepo(db *DB) *MarkerRepo {
	return &MarkerRepo{db: db}
}

// MoveCamera stores the single camera row.
func (r *MarkerRepo) MoveCamera(ctx context.Context, cam domain.Camera) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO map_camera (id, lat, lon, zoom)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET lat = EXCLUDED.lat, lon = EXCLUDED.lon, zoom = EXCLUDED.zoom
	`, cam.Target.Lat, cam.Target.Lon, cam.Zoom)
	if err != nil {
		return fmt.Errorf("move camera: %w", err)
	}
	return nil
}

// AddMarker inserts one marker. The coordinate is stored unchanged, even
// when it lies outside WGS 84 ranges.
func (r *MarkerRepo) AddMarker(ctx context.Context, m domain.Marker) error {
	_, err := r.db.Pool.Exec(ctx, insertMarker, markerArgs(m)...)
	if err != nil {
		return fmt.Errorf("insert marker %s: %w", m.ID, err)
	}
	return nil
}

// AddBatch inserts many markers in one round trip using pgx.Batch.
func (r *MarkerRepo) AddBatch(ctx context.Context, markers []domain.Marker) error {
	batch := &pgx.Batch{}
	for _, m := range markers {
		batch.Queue(insertMarker, markerArgs(m)...)
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for range markers {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch exec: %w", err)
		}
	}
	return nil
}

// Clear deletes every marker.
func (r *MarkerRepo) Clear(ctx context.Context) error {
	if _, err := r.db.Pool.Exec(ctx, `TRUNCATE markers`); err != nil {
		return fmt.Errorf("clear markers: %w", err)
	}
	return nil
}

// Camera returns the stored camera.
func (r *MarkerRepo) Camera(ctx context.Context) (domain.Camera, error) {
	var cam domain.Camera
	err := r.db.Pool.QueryRow(ctx, `SELECT lat, lon, zoom FROM map_camera WHERE id = 1`).
		Scan(&cam.Target.Lat, &cam.Target.Lon, &cam.Zoom)
	if err != nil {
		return domain.Camera{}, fmt.Errorf("camera: %w", err)
	}
	return cam, nil
}

// List returns markers ordered by seq then created_at.
func (r *MarkerRepo) List(ctx context.Context, offset, limit int) ([]domain.Marker, int, error) {
	var total int
	if err := r.db.Pool.QueryRow(ctx, `SELECT count(*) FROM markers`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count markers: %w", err)
	}

	// LIMIT NULL means no limit.
	var lim *int
	if limit > 0 {
		lim = &limit
	}
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+markerColumns+`
		FROM markers
		ORDER BY created_at, seq
		OFFSET $1 LIMIT $2
	`, offset, lim)
	if err != nil {
		return nil, 0, err
	}
	markers, err := scanMarkers(rows)
	if err != nil {
		return nil, 0, err
	}
	return markers, total, nil
}

// InBounds returns the markers inside b using the PostGIS && operator.
func (r *MarkerRepo) InBounds(ctx context.Context, b domain.Bounds) ([]domain.Marker, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+markerColumns+`
		FROM markers
		WHERE location && ST_MakeEnvelope($1, $2, $3, $4, 4326)
		ORDER BY created_at, seq
	`, b.MinLon, b.MinLat, b.MaxLon, b.MaxLat)
	if err != nil {
		return nil, err
	}
	return scanMarkers(rows)
}

func markerArgs(m domain.Marker) []any {
	return []any{m.ID, m.Seq, m.Title, m.Position.Lat, m.Position.Lon, m.CreatedAt}
}

func scanMarkers(rows pgx.Rows) ([]domain.Marker, error) {
	defer rows.Close()

	markers := []domain.Marker{}
	for rows.Next() {
		var m domain.Marker
		if err := rows.Scan(&m.ID, &m.Seq, &m.Title, &m.Position.Lat, &m.Position.Lon, &m.CreatedAt); err != nil {
			return nil, err
		}
		markers = append(markers, m)
	}
	return markers, rows.Err()
}
