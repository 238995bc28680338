package commands

import (
	"context"

	command "github.com/goliatone/go-command"
	"github.com/motioncore/motioncore/internal/logging"
	"github.com/motioncore/motioncore/pkg/interfaces"
)

const (
	initOperation  = "workspace.init"
	addOperation   = "workspace.add"
	listOperation  = "registry.list"
	cacheOperation = "cache.inspect"
)

var (
	_ command.Commander[InitCommand]  = (*InitHandler)(nil)
	_ command.Commander[AddCommand]   = (*AddHandler)(nil)
	_ command.Commander[ListCommand]  = (*ListHandler)(nil)
	_ command.Commander[CacheCommand] = (*CacheHandler)(nil)
)

// AddReport pairs the resolved plan with what applying it did, delivered to
// the add result sink.
type AddReport struct {
	Plan    *AddPlan
	Outcome ApplyOutcome
}

// ConflictResolver runs between planning and applying an add so callers can
// inspect planned updates and flip PlannedFile.Apply off for files they want
// to keep. Returning an error aborts the run.
type ConflictResolver func(plan *AddPlan) error

// InitHandler executes workspace initialization through the shared command
// foundation.
type InitHandler struct {
	inner *Handler[InitCommand]
}

// NewInitHandler binds init execution to a command context. The sink, when
// non-nil, receives the result of every successful run.
func NewInitHandler(cctx *CommandContext, logger interfaces.Logger, sink func(InitResult), opts ...HandlerOption[InitCommand]) *InitHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg InitCommand) error {
		result, err := Init(ctx, cctx, InitOptions{DryRun: msg.DryRun})
		if err != nil {
			return err
		}
		if sink != nil {
			sink(result)
		}
		return nil
	}

	handlerOpts := []HandlerOption[InitCommand]{
		WithLogger[InitCommand](baseLogger),
		WithOperation[InitCommand](initOperation),
		WithMessageFields(func(msg InitCommand) map[string]any {
			fields := map[string]any{}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		WithTelemetry(DefaultTelemetry[InitCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &InitHandler{inner: NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[InitCommand].
func (h *InitHandler) Execute(ctx context.Context, msg InitCommand) error {
	return h.inner.Execute(ctx, msg)
}

// AddHandler executes component installation through the shared command
// foundation.
type AddHandler struct {
	inner *Handler[AddCommand]
}

// NewAddHandler binds add execution to a command context. The resolver, when
// non-nil, runs between planning and applying so interactive callers can
// deselect conflicting files. The sink receives the plan plus outcome of
// every successful run.
func NewAddHandler(cctx *CommandContext, logger interfaces.Logger, resolver ConflictResolver, sink func(AddReport), opts ...HandlerOption[AddCommand]) *AddHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg AddCommand) error {
		plan, err := PlanAdd(ctx, cctx, msg.Components)
		if err != nil {
			return err
		}
		if resolver != nil {
			if err := resolver(plan); err != nil {
				return err
			}
		}
		outcome, err := plan.Apply(ctx, msg.DryRun)
		if err != nil {
			return err
		}
		if sink != nil {
			sink(AddReport{Plan: plan, Outcome: outcome})
		}
		return nil
	}

	handlerOpts := []HandlerOption[AddCommand]{
		WithLogger[AddCommand](baseLogger),
		WithOperation[AddCommand](addOperation),
		WithMessageFields(func(msg AddCommand) map[string]any {
			fields := map[string]any{
				"components": msg.Components,
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		WithTelemetry(DefaultTelemetry[AddCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &AddHandler{inner: NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[AddCommand].
func (h *AddHandler) Execute(ctx context.Context, msg AddCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ListHandler executes registry listings through the shared command
// foundation.
type ListHandler struct {
	inner *Handler[ListCommand]
}

// NewListHandler binds list execution to a command context.
func NewListHandler(cctx *CommandContext, logger interfaces.Logger, sink func(ListResult), opts ...HandlerOption[ListCommand]) *ListHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, _ ListCommand) error {
		result, err := List(ctx, cctx)
		if err != nil {
			return err
		}
		if sink != nil {
			sink(result)
		}
		return nil
	}

	handlerOpts := []HandlerOption[ListCommand]{
		WithLogger[ListCommand](baseLogger),
		WithOperation[ListCommand](listOperation),
		WithTelemetry(DefaultTelemetry[ListCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ListHandler{inner: NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ListCommand].
func (h *ListHandler) Execute(ctx context.Context, msg ListCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CacheHandler executes cache inspection through the shared command
// foundation.
type CacheHandler struct {
	inner *Handler[CacheCommand]
}

// NewCacheHandler binds cache execution to a command context.
func NewCacheHandler(cctx *CommandContext, logger interfaces.Logger, sink func(CacheResult), opts ...HandlerOption[CacheCommand]) *CacheHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(_ context.Context, msg CacheCommand) error {
		result, err := Cache(cctx, CacheOptions{Clear: msg.Clear, Force: msg.Force})
		if err != nil {
			return err
		}
		if sink != nil {
			sink(result)
		}
		return nil
	}

	handlerOpts := []HandlerOption[CacheCommand]{
		WithLogger[CacheCommand](baseLogger),
		WithOperation[CacheCommand](cacheOperation),
		WithMessageFields(func(msg CacheCommand) map[string]any {
			fields := map[string]any{}
			if msg.Clear {
				fields["clear"] = true
			}
			return fields
		}),
		WithTelemetry(DefaultTelemetry[CacheCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CacheHandler{inner: NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[CacheCommand].
func (h *CacheHandler) Execute(ctx context.Context, msg CacheCommand) error {
	return h.inner.Execute(ctx, msg)
}
