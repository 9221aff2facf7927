package app_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/samirrijal/clustermap/internal/adapters/memory"
	"github.com/samirrijal/clustermap/internal/app"
	"github.com/samirrijal/clustermap/internal/core/domain"
	"github.com/samirrijal/clustermap/internal/core/usecases"
	"github.com/samirrijal/clustermap/internal/pkg/jitter"
)

var daNang = domain.Camera{Target: domain.GeoPoint{Lat: 16.073330, Lon: 108.225862}, Zoom: 10}

type orderSurface struct {
	events []string
}

func (o *orderSurface) MoveCamera(ctx context.Context, cam domain.Camera) error {
	o.events = append(o.events, "camera")
	return nil
}

func (o *orderSurface) AddMarker(ctx context.Context, m domain.Marker) error {
	o.events = append(o.events, "marker")
	return nil
}

type failingSeeder struct{}

func (failingSeeder) Seed(ctx context.Context, req domain.SeedRequest) ([]domain.Marker, error) {
	return nil, errors.New("boom")
}

type stubScreen struct{ title string }

func (s stubScreen) Title() string                  { return s.title }
func (s stubScreen) Load(ctx context.Context) error { return nil }

func newScreen(t *testing.T, layer *memory.Layer, count int) *app.MapScreen {
	t.Helper()
	seeder, err := usecases.NewSeederService(layer, jitter.NewGenerator(jitter.NewSource(42)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	screen, err := app.NewMapScreen(layer, seeder, daNang, count, 0.2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return screen
}

func TestMapScreen_CameraBeforeMarkers(t *testing.T) {
	surface := &orderSurface{}
	seeder, _ := usecases.NewSeederService(surface, nil)
	screen, err := app.NewMapScreen(surface, seeder, daNang, 3, 0.2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := screen.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"camera", "marker", "marker", "marker"}
	if len(surface.events) != len(want) {
		t.Fatalf("expected %v, got %v", want, surface.events)
	}
	for i := range want {
		if surface.events[i] != want[i] {
			t.Errorf("event %d: expected %s, got %s", i, want[i], surface.events[i])
		}
	}
}

func TestMapScreen_LoadOnce(t *testing.T) {
	layer := memory.NewLayer(domain.Camera{})
	screen := newScreen(t, layer, 200)

	for i := 0; i < 2; i++ {
		if err := screen.Load(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if layer.Len() != 200 {
		t.Errorf("expected 200 markers after two loads, got %d", layer.Len())
	}
	if len(screen.Markers()) != 200 {
		t.Errorf("expected 200 seeded markers, got %d", len(screen.Markers()))
	}
	cam, _ := layer.Camera(context.Background())
	if cam != daNang {
		t.Errorf("expected camera %+v, got %+v", daNang, cam)
	}
}

func TestNewMapScreen_Nil(t *testing.T) {
	if _, err := app.NewMapScreen(nil, failingSeeder{}, daNang, 1, 0.2); !errors.Is(err, domain.ErrNilSurface) {
		t.Errorf("expected ErrNilSurface, got %v", err)
	}
	if _, err := app.NewMapScreen(&orderSurface{}, nil, daNang, 1, 0.2); err == nil {
		t.Error("expected error for nil seeder")
	}
}

func TestNavigator(t *testing.T) {
	root := stubScreen{"root"}
	nav := app.NewNavigator(root)
	nav.Push(stubScreen{"detail"})

	if nav.Top().Title() != "detail" || nav.Depth() != 2 {
		t.Fatalf("unexpected top %s depth %d", nav.Top().Title(), nav.Depth())
	}
	if popped := nav.Pop(); popped == nil || popped.Title() != "detail" {
		t.Errorf("expected detail popped, got %v", popped)
	}
	if nav.Pop() != nil {
		t.Error("expected root not to be popped")
	}
	if nav.Root().Title() != "root" || nav.Top().Title() != "root" {
		t.Error("expected root to remain")
	}
}

func TestShell_Launch(t *testing.T) {
	layer := memory.NewLayer(domain.Camera{})
	shell := app.NewShell(func() (app.Screen, error) { return newScreen(t, layer, 200), nil }, nil)

	if !shell.Launch(context.Background(), nil) {
		t.Fatal("expected Launch to return true")
	}
	if !shell.Window.Visible() {
		t.Error("expected window visible")
	}
	if shell.Window.Root() == nil || shell.Window.Root().Root().Title() != "Clustering" {
		t.Error("expected map screen as navigator root")
	}
	if layer.Len() != 200 {
		t.Errorf("expected 200 markers, got %d", layer.Len())
	}
}

func TestShell_LaunchAlwaysTrue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	factories := []app.ScreenFactory{
		func() (app.Screen, error) { return nil, errors.New("no screen") },
		func() (app.Screen, error) {
			return app.NewMapScreen(&orderSurface{}, failingSeeder{}, daNang, 1, 0.2)
		},
	}
	options := []domain.LaunchOptions{nil, {"url": "clustermap://open", "debug": true}}

	for _, f := range factories {
		for _, opts := range options {
			if !app.NewShell(f, logger).Launch(context.Background(), opts) {
				t.Errorf("expected true for options %v", opts)
			}
		}
	}
	if buf.Len() == 0 {
		t.Error("expected failures to be logged")
	}
}
