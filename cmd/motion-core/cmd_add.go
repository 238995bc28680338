package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/motioncore/motioncore/internal/commands"
	"github.com/motioncore/motioncore/internal/logging"
)

var (
	addDryRun bool
	addYes    bool
)

var addCmd = &cobra.Command{
	Use:   "add [components...]",
	Short: "Install components from the registry into the workspace",
	Long: `Resolves the requested components plus their internal dependencies,
copies their files into the configured directories, regenerates the barrel
exports, and installs any missing npm packages.

Existing files that differ from the registry version are only overwritten
after confirmation. Pass --yes (or set MOTION_CORE_CLI_ASSUME_YES) to
overwrite without prompting.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().BoolVar(&addDryRun, "dry-run", false, "Report what would change without writing anything")
	addCmd.Flags().BoolVarP(&addYes, "yes", "y", false, "Overwrite conflicting files without prompting")
}

// interactionMode decides how add handles files that already exist with
// different contents.
type interactionMode int

const (
	modePrompt interactionMode = iota
	modeAssumeYes
	modeNonInteractive
)

func detectInteractionMode() interactionMode {
	if addYes || envTruthy(assumeYesEnv) {
		return modeAssumeYes
	}
	if envTruthy("CI") || !isTerminal(os.Stdin) {
		return modeNonInteractive
	}
	return modePrompt
}

func runAdd(cmd *cobra.Command, args []string) error {
	cctx, err := newCommandContext()
	if err != nil {
		return err
	}

	mode := detectInteractionMode()
	resolver := func(plan *commands.AddPlan) error {
		return resolveConflicts(plan, mode)
	}

	var report commands.AddReport
	sink := func(r commands.AddReport) { report = r }

	handler := commands.NewAddHandler(cctx, logging.CommandsLogger(provider), resolver, sink)
	msg := commands.AddCommand{Components: args, DryRun: addDryRun}
	if err := handler.Execute(cmd.Context(), msg); err != nil {
		return err
	}

	renderAddReport(report, addDryRun)
	return nil
}

// resolveConflicts flips Apply off for planned updates the user declines.
// Non-interactive runs keep existing files and warn instead of blocking on a
// prompt.
func resolveConflicts(plan *commands.AddPlan, mode interactionMode) error {
	if mode == modeAssumeYes {
		return nil
	}

	reader := bufio.NewReader(os.Stdin)
	for i := range plan.PlannedFiles {
		file := &plan.PlannedFiles[i]
		if file.Status != commands.PlannedUpdate {
			continue
		}
		display := relativeToWorkspace(plan.WorkspaceRoot, file.Destination)

		if mode == modeNonInteractive {
			file.Apply = false
			reporter.Warn(fmt.Sprintf("Keeping existing %s (rerun with --yes to overwrite)", display))
			continue
		}

		fmt.Printf("Overwrite %s? [y/N] ", display)
		answer, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
		default:
			file.Apply = false
		}
	}
	return nil
}

func renderAddReport(report commands.AddReport, dryRun bool) {
	plan := report.Plan
	reporter.Heading(fmt.Sprintf("Adding %s", strings.Join(plan.InstallOrder, ", ")))

	for _, file := range report.Outcome.Files {
		display := relativeToWorkspace(plan.WorkspaceRoot, file.Destination)
		switch file.Status {
		case commands.FileCreated:
			reporter.Success(fmt.Sprintf("%s %s", applyVerb("Created", dryRun), display))
		case commands.FileUpdated:
			reporter.Success(fmt.Sprintf("%s %s", applyVerb("Updated", dryRun), display))
		case commands.FileUnchanged:
			reporter.Detail(fmt.Sprintf("Unchanged %s", display))
		case commands.FileSkipped:
			reporter.Detail(fmt.Sprintf("Skipped %s", display))
		}
	}

	if report.Outcome.ExportsUpdated {
		display := relativeToWorkspace(plan.WorkspaceRoot, plan.BarrelPath)
		reporter.Success(fmt.Sprintf("%s %s", applyVerb("Updated", dryRun), display))
	}

	renderDependencyAction("Dependencies", report.Outcome.Runtime, dryRun)
	renderDependencyAction("Dev dependencies", report.Outcome.Dev, dryRun)

	for _, name := range plan.MissingEntryComponents {
		reporter.Warn(fmt.Sprintf("%s has no entry file; add its export to the barrel manually", name))
	}

	reporter.Blank()
	if dryRun {
		reporter.Info("Dry run complete. Nothing was written.")
	} else {
		reporter.Success("Done.")
	}
}

func renderDependencyAction(label string, action commands.DependencyAction, dryRun bool) {
	switch action.Kind {
	case commands.DependencyAlreadyInstalled:
		reporter.Detail(fmt.Sprintf("%s already satisfied", label))
	case commands.DependencyInstalled:
		reporter.Success(fmt.Sprintf("%s installed: %s", label, strings.Join(action.Packages, " ")))
	case commands.DependencyDryRun:
		reporter.Info(fmt.Sprintf("Would install %s: %s", strings.ToLower(label), strings.Join(action.Packages, " ")))
	case commands.DependencyManual:
		reporter.Warn(fmt.Sprintf("Unknown package manager. Install %s manually: %s",
			strings.ToLower(label), strings.Join(action.Packages, " ")))
	case commands.DependencySkipped:
		reporter.Warn(fmt.Sprintf("%s skipped: %s", label, action.Note))
	}
}

func applyVerb(verb string, dryRun bool) string {
	if !dryRun {
		return verb
	}
	switch verb {
	case "Created":
		return "Would create"
	case "Updated":
		return "Would update"
	}
	return "Would " + strings.ToLower(verb)
}

func relativeToWorkspace(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return path
}
