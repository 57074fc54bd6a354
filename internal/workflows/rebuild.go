package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// RebuildInput is the input for the profile rebuild workflow.
type RebuildInput struct {
	RouteID string
}

// ProfileRebuildWorkflow rebuilds a route's elevation profile after a
// geometry change: verify the route, rebuild the profile, warm the
// per-tier stage views, then announce the result to live sessions. The
// announcement is best-effort; a failed broadcast never rolls back a
// successful rebuild.
func ProfileRebuildWorkflow(ctx workflow.Context, input RebuildInput) error {
	logger := workflow.GetLogger(ctx)

	actOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 60 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, actOpts)

	var name string
	if err := workflow.ExecuteActivity(ctx, "LoadRoute", input.RouteID).Get(ctx, &name); err != nil {
		return err
	}
	logger.Info("rebuilding profile", "route", name)

	var synthetic bool
	if err := workflow.ExecuteActivity(ctx, "RebuildProfile", input.RouteID).Get(ctx, &synthetic); err != nil {
		return err
	}
	if synthetic {
		logger.Warn("rebuilt profile is synthetic", "route", name)
	}

	var stageCount int
	if err := workflow.ExecuteActivity(ctx, "RecountStages", input.RouteID).Get(ctx, &stageCount); err != nil {
		return err
	}

	if err := workflow.ExecuteActivity(ctx, "AnnounceRebuilt", input.RouteID).Get(ctx, nil); err != nil {
		logger.Warn("rebuild announcement failed", "error", err)
	}

	logger.Info("profile rebuilt", "route", name, "stages_warmed", stageCount)
	return nil
}
