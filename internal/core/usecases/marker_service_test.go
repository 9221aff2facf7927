package usecases_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/samirrijal/clustermap/internal/core/domain"
	"github.com/samirrijal/clustermap/internal/core/usecases"
)

// --- Mock MarkerReader ---

type mockReader struct {
	cameraFn   func(ctx context.Context) (domain.Camera, error)
	listFn     func(ctx context.Context, offset, limit int) ([]domain.Marker, int, error)
	inBoundsFn func(ctx context.Context, b domain.Bounds) ([]domain.Marker, error)
}

func (m *mockReader) Camera(ctx context.Context) (domain.Camera, error) {
	if m.cameraFn != nil {
		return m.cameraFn(ctx)
	}
	return domain.Camera{Target: daNang, Zoom: 10}, nil
}

func (m *mockReader) List(ctx context.Context, offset, limit int) ([]domain.Marker, int, error) {
	if m.listFn != nil {
		return m.listFn(ctx, offset, limit)
	}
	return nil, 0, nil
}

func (m *mockReader) InBounds(ctx context.Context, b domain.Bounds) ([]domain.Marker, error) {
	if m.inBoundsFn != nil {
		return m.inBoundsFn(ctx, b)
	}
	return nil, nil
}

// --- Mock CacheService ---

type mockCache struct {
	data map[string][]byte
	sets int
}

func newMockCache() *mockCache { return &mockCache{data: map[string][]byte{}} }

func (c *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := c.data[key]; ok {
		return v, nil
	}
	return nil, errors.New("miss")
}

func (c *mockCache) Set(ctx context.Context, key string, value []byte, ttl int) error {
	c.sets++
	c.data[key] = value
	return nil
}

func (c *mockCache) Delete(ctx context.Context, key string) error {
	delete(c.data, key)
	return nil
}

// --- Tests ---

func TestMarkerService_List_ClampLimit(t *testing.T) {
	var gotLimit int
	reader := &mockReader{listFn: func(ctx context.Context, offset, limit int) ([]domain.Marker, int, error) {
		gotLimit = limit
		return nil, 0, nil
	}}
	svc := usecases.NewMarkerService(reader, nil)

	for _, tc := range []struct{ in, want int }{{0, 100}, {-3, 100}, {1000, 100}, {500, 500}, {25, 25}} {
		if _, _, err := svc.List(context.Background(), 0, tc.in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotLimit != tc.want {
			t.Errorf("limit %d: expected %d, got %d", tc.in, tc.want, gotLimit)
		}
	}
}

func TestMarkerService_List_Distance(t *testing.T) {
	reader := &mockReader{listFn: func(ctx context.Context, offset, limit int) ([]domain.Marker, int, error) {
		return []domain.Marker{
			{ID: "a", Position: daNang},
			{ID: "b", Position: domain.GeoPoint{Lat: daNang.Lat + 0.1, Lon: daNang.Lon}},
		}, 2, nil
	}}
	svc := usecases.NewMarkerService(reader, nil)

	markers, total, err := svc.List(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 {
		t.Errorf("expected total 2, got %d", total)
	}
	if markers[0].Distance == nil || *markers[0].Distance != 0 {
		t.Errorf("expected 0 distance at center, got %v", markers[0].Distance)
	}
	if d := *markers[1].Distance; d < 11000 || d > 11200 {
		t.Errorf("expected ~11.1km, got %.0f", d)
	}
}

func TestMarkerService_List_Error(t *testing.T) {
	boom := errors.New("db down")
	reader := &mockReader{listFn: func(ctx context.Context, offset, limit int) ([]domain.Marker, int, error) {
		return nil, 0, boom
	}}
	svc := usecases.NewMarkerService(reader, nil)

	if _, _, err := svc.List(context.Background(), 0, 10); !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
}

func TestMarkerService_VisibleRegion(t *testing.T) {
	var gotBounds domain.Bounds
	reader := &mockReader{inBoundsFn: func(ctx context.Context, b domain.Bounds) ([]domain.Marker, error) {
		gotBounds = b
		return []domain.Marker{{ID: "a", Position: daNang}}, nil
	}}
	svc := usecases.NewMarkerService(reader, nil)

	region, markers, err := svc.VisibleRegion(context.Background(), 400, 800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gotBounds.Contains(daNang) {
		t.Errorf("expected bounds %+v to contain the camera target", gotBounds)
	}
	if region.FarLeft.Lat <= region.NearLeft.Lat {
		t.Errorf("expected far edge north of near edge, got %+v", region)
	}
	if len(markers) != 1 || markers[0].Distance == nil {
		t.Errorf("expected one marker with distance, got %+v", markers)
	}
}

func TestMarkerService_VisibleRegion_InvalidViewport(t *testing.T) {
	svc := usecases.NewMarkerService(&mockReader{}, nil)

	for _, wh := range [][2]int{{0, 100}, {100, -1}, {10000, 10}} {
		if _, _, err := svc.VisibleRegion(context.Background(), wh[0], wh[1]); !errors.Is(err, domain.ErrInvalidViewport) {
			t.Errorf("%v: expected ErrInvalidViewport, got %v", wh, err)
		}
	}
}

func TestMarkerService_FeatureCollection_Cached(t *testing.T) {
	lists := 0
	reader := &mockReader{listFn: func(ctx context.Context, offset, limit int) ([]domain.Marker, int, error) {
		lists++
		return []domain.Marker{{ID: "a", Seq: 0, Title: "Marker 1", Position: daNang}}, 1, nil
	}}
	cache := newMockCache()
	svc := usecases.NewMarkerService(reader, cache)

	data, err := svc.FeatureCollection(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			ID       string `json:"id"`
			Geometry struct {
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal(data, &fc); err != nil {
		t.Fatalf("invalid geojson: %v", err)
	}
	if fc.Type != "FeatureCollection" || len(fc.Features) != 1 {
		t.Fatalf("unexpected collection: %s", data)
	}
	if c := fc.Features[0].Geometry.Coordinates; c[0] != daNang.Lon || c[1] != daNang.Lat {
		t.Errorf("expected [lon, lat] order, got %v", c)
	}
	if fc.Features[0].Properties["title"] != "Marker 1" {
		t.Errorf("expected title property, got %v", fc.Features[0].Properties)
	}

	if _, err := svc.FeatureCollection(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lists != 1 {
		t.Errorf("expected second call served from cache, got %d reads", lists)
	}

	if err := svc.Invalidate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.FeatureCollection(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lists != 2 {
		t.Errorf("expected read after invalidate, got %d reads", lists)
	}
}

func TestMarkerService_Invalidate_NoCache(t *testing.T) {
	svc := usecases.NewMarkerService(&mockReader{}, nil)
	if err := svc.Invalidate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
