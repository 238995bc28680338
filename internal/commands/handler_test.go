package commands

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

type testMessage struct{}

func (testMessage) Type() string { return "motioncore.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "motioncore.test.invalid" }

func (invalidMessage) Validate() error { return errors.New("invalid") }

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler[invalidMessage](func(ctx context.Context, msg invalidMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), invalidMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	execErr := errors.New("boom")
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return execErr
	})

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !errors.Is(err, execErr) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestAddCommandValidation(t *testing.T) {
	if err := (AddCommand{}).Validate(); err == nil {
		t.Fatal("empty component list must fail validation")
	}
	if err := (AddCommand{Components: []string{"Not A Slug!"}}).Validate(); err == nil {
		t.Fatal("malformed slug must fail validation")
	}
	if err := (AddCommand{Components: []string{"glass-pane"}}).Validate(); err != nil {
		t.Fatalf("valid slug rejected: %v", err)
	}
}

func TestInitHandlerDeliversResult(t *testing.T) {
	cctx := testInitContext(t, supportedPackageJSON)

	var got *InitResult
	handler := NewInitHandler(cctx, nil, func(result InitResult) {
		got = &result
	})

	if err := handler.Execute(context.Background(), InitCommand{DryRun: true}); err != nil {
		t.Fatalf("init handler failed: %v", err)
	}
	if got == nil {
		t.Fatal("sink was not invoked")
	}
	if got.ConfigState.Kind != ConfigWouldCreate {
		t.Fatalf("unexpected config state %v", got.ConfigState.Kind)
	}
}

func TestAddHandlerRunsResolverBetweenPlanAndApply(t *testing.T) {
	cctx := testAddContext(t)

	resolverRan := false
	var report *AddReport
	handler := NewAddHandler(cctx, nil,
		func(plan *AddPlan) error {
			resolverRan = true
			if len(plan.PlannedFiles) == 0 {
				t.Fatal("resolver saw an empty plan")
			}
			return nil
		},
		func(r AddReport) { report = &r },
	)

	if err := handler.Execute(context.Background(), AddCommand{Components: []string{"glass-pane"}, DryRun: true}); err != nil {
		t.Fatalf("add handler failed: %v", err)
	}
	if !resolverRan {
		t.Fatal("conflict resolver was not invoked")
	}
	if report == nil || len(report.Outcome.Files) == 0 {
		t.Fatal("sink did not receive the outcome")
	}
}

func TestListHandlerDeliversCatalog(t *testing.T) {
	cctx := testAddContext(t)

	var got *ListResult
	handler := NewListHandler(cctx, nil, func(result ListResult) {
		got = &result
	})

	if err := handler.Execute(context.Background(), ListCommand{}); err != nil {
		t.Fatalf("list handler failed: %v", err)
	}
	if got == nil || got.Summary.Name != "Motion Core" {
		t.Fatalf("unexpected list result %+v", got)
	}
	if len(got.Components) != 3 {
		t.Fatalf("expected 3 components, got %d", len(got.Components))
	}
}
