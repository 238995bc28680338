package commands

import (
	"context"

	"github.com/motioncore/motioncore/internal/registry"
)

// ListResult carries the registry summary plus its catalog in slug order.
type ListResult struct {
	Summary    registry.Summary
	Components []registry.Component
}

// List fetches the registry catalog for display. Components come back sorted
// by slug.
func List(ctx context.Context, cctx *CommandContext) (ListResult, error) {
	summary, err := cctx.Registry().Summary(ctx)
	if err != nil {
		return ListResult{}, err
	}
	components, err := cctx.Registry().ListComponents(ctx)
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{Summary: summary, Components: components}, nil
}
