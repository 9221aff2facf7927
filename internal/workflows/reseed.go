package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// ReseedInput is the input for the reseed workflow.
type ReseedInput struct {
	CenterLat float64
	CenterLon float64
	Extent    float64
	Count     int
}

// ReseedResult reports how many markers the run placed.
type ReseedResult struct {
	Seeded int
}

// ReseedWorkflow wipes the markers and seeds a fresh set.
func ReseedWorkflow(ctx workflow.Context, input ReseedInput) (ReseedResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting reseed workflow", "count", input.Count, "extent", input.Extent)

	actOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts:        3,
			NonRetryableErrorTypes: []string{ErrTypeInvalidSeed},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, actOpts)

	if err := workflow.ExecuteActivity(ctx, "ClearMarkers").Get(ctx, nil); err != nil {
		return ReseedResult{}, err
	}

	var seeded int
	if err := workflow.ExecuteActivity(ctx, "SeedMarkers", input).Get(ctx, &seeded); err != nil {
		return ReseedResult{}, err
	}

	logger.Info("Reseed finished", "seeded", seeded)
	return ReseedResult{Seeded: seeded}, nil
}
