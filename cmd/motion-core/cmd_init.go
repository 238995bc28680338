package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/motioncore/motioncore/internal/commands"
	"github.com/motioncore/motioncore/internal/logging"
	"github.com/motioncore/motioncore/internal/workspace"
)

var initDryRun bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Prepare a SvelteKit workspace for Motion Core components",
	Long: `Checks the workspace framework, writes motion-core.json, scaffolds the
component and helper directories, syncs the Tailwind design tokens, and
installs the registry's base dependencies.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initDryRun, "dry-run", false, "Report what would change without writing anything")
}

func runInit(cmd *cobra.Command, args []string) error {
	cctx, err := newCommandContext()
	if err != nil {
		return err
	}

	var result commands.InitResult
	sink := func(r commands.InitResult) { result = r }

	handler := commands.NewInitHandler(cctx, logging.CommandsLogger(provider), sink)
	if err := handler.Execute(cmd.Context(), commands.InitCommand{DryRun: initDryRun}); err != nil {
		return err
	}

	renderInitResult(result)
	return nil
}

func renderInitResult(result commands.InitResult) {
	reporter.Heading("Motion Core init")
	reporter.Info(fmt.Sprintf("Detected %s with Svelte %s", result.Framework.Framework, result.Framework.SvelteVersion))
	reporter.Info(fmt.Sprintf("Package manager: %s", result.PackageManager))

	switch result.ConfigState.Kind {
	case commands.ConfigCreated:
		reporter.Success(fmt.Sprintf("Created %s", filepath.Base(result.ConfigState.Path)))
	case commands.ConfigWouldCreate:
		reporter.Info(fmt.Sprintf("Would create %s", filepath.Base(result.ConfigState.Path)))
	case commands.ConfigAlreadyExists:
		reporter.Detail(fmt.Sprintf("%s already exists", filepath.Base(result.ConfigState.Path)))
	}

	renderScaffold(result.Scaffold, result.Options.DryRun)
	renderTokens(result.TokensStatus)
	renderDependencyAction("Base dependencies", result.Dependencies.Runtime, result.Options.DryRun)
	renderDependencyAction("Base dev dependencies", result.Dependencies.Dev, result.Options.DryRun)

	for _, warning := range result.Warnings {
		reporter.Warn(warning.Detail)
	}

	reporter.Blank()
	switch {
	case result.Options.DryRun:
		reporter.Info("Dry run complete. Nothing was written.")
	case result.HasChanges():
		reporter.Success("Workspace ready. Run `motion-core add <component>` to install components.")
	default:
		reporter.Detail("Workspace already up to date.")
	}
}

func renderScaffold(report workspace.ScaffoldReport, dryRun bool) {
	if !report.Any() {
		return
	}
	verb := "Created"
	if dryRun {
		verb = "Would create"
	}
	for _, dir := range report.Directories {
		reporter.Info(fmt.Sprintf("%s %s%c", verb, dir, filepath.Separator))
	}
	for _, file := range report.Files {
		reporter.Info(fmt.Sprintf("%s %s", verb, file))
	}
}

func renderTokens(status workspace.TokenSyncStatus) {
	switch status.State {
	case workspace.TokenSyncUpdated:
		reporter.Success(fmt.Sprintf("Synced design tokens into %s", status.Target))
	case workspace.TokenSyncDryRun:
		reporter.Info(fmt.Sprintf("Would sync design tokens into %s", status.Target))
	case workspace.TokenSyncAlreadyPresent:
		reporter.Detail(fmt.Sprintf("Design tokens already present in %s", status.Target))
	case workspace.TokenSyncMissingFile:
		reporter.Warn(fmt.Sprintf("Tailwind stylesheet %s not found; skipping token sync", status.Target))
	case workspace.TokenSyncMissingConfig:
		reporter.Warn("No Tailwind stylesheet configured; skipping token sync")
	}
}
