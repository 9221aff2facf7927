package workflows_test

import (
	"context"
	"errors"
	"testing"

	"go.temporal.io/sdk/testsuite"

	"github.com/samirrijal/clustermap/internal/adapters/memory"
	"github.com/samirrijal/clustermap/internal/core/domain"
	"github.com/samirrijal/clustermap/internal/core/ports"
	"github.com/samirrijal/clustermap/internal/core/usecases"
	"github.com/samirrijal/clustermap/internal/pkg/jitter"
	"github.com/samirrijal/clustermap/internal/workflows"
)

var input = workflows.ReseedInput{CenterLat: 16.073330, CenterLon: 108.225862, Extent: 0.2, Count: 200}

type flakySurface struct {
	*memory.Layer
	failures int
}

func (f *flakySurface) AddMarker(ctx context.Context, m domain.Marker) error {
	if f.failures > 0 && m.Seq == 5 {
		f.failures--
		return errors.New("surface unavailable")
	}
	return f.Layer.AddMarker(ctx, m)
}

func newEnv(t *testing.T, surface ports.MapSurface) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	seeder, err := usecases.NewSeederService(surface, jitter.NewGenerator(jitter.NewSource(3)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(workflows.ReseedWorkflow)
	env.RegisterActivity(&workflows.ReseedActivities{Seeder: seeder})
	return env
}

func TestReseedWorkflow_ReplacesMarkers(t *testing.T) {
	layer := memory.NewLayer(domain.Camera{})
	_ = layer.AddMarker(context.Background(), domain.Marker{ID: "stale"})
	env := newEnv(t, layer)

	env.ExecuteWorkflow(workflows.ReseedWorkflow, input)

	if !env.IsWorkflowCompleted() {
		t.Fatal("expected workflow to complete")
	}
	if err := env.GetWorkflowError(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var res workflows.ReseedResult
	if err := env.GetWorkflowResult(&res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Seeded != 200 {
		t.Errorf("expected 200 seeded, got %d", res.Seeded)
	}
	if layer.Len() != 200 {
		t.Errorf("expected stale marker cleared and 200 left, got %d", layer.Len())
	}
}

func TestReseedWorkflow_RetryDoesNotDuplicate(t *testing.T) {
	surface := &flakySurface{Layer: memory.NewLayer(domain.Camera{}), failures: 1}
	env := newEnv(t, surface)

	env.ExecuteWorkflow(workflows.ReseedWorkflow, input)

	if err := env.GetWorkflowError(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if surface.Len() != 200 {
		t.Errorf("expected 200 markers after a retried attempt, got %d", surface.Len())
	}
}

func TestReseedWorkflow_InvalidInput(t *testing.T) {
	layer := memory.NewLayer(domain.Camera{})
	env := newEnv(t, layer)

	bad := input
	bad.Extent = -1
	env.ExecuteWorkflow(workflows.ReseedWorkflow, bad)

	if !env.IsWorkflowCompleted() {
		t.Fatal("expected workflow to complete")
	}
	if err := env.GetWorkflowError(); err == nil {
		t.Fatal("expected workflow error for a negative extent")
	}
}
