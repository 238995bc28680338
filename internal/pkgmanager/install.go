package pkgmanager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

var (
	ErrUnsupportedManager = errors.New("pkgmanager: package manager not supported")
	ErrExecution          = errors.New("pkgmanager: failed to run package manager")
)

// InstallPlan describes one package-manager install invocation.
type InstallPlan struct {
	Manager  Manager
	Packages []string
	Dev      bool
}

// NewInstallPlan starts an empty plan for the given manager.
func NewInstallPlan(manager Manager) *InstallPlan {
	return &InstallPlan{Manager: manager}
}

// AddPackages appends package specs to the plan.
func (p *InstallPlan) AddPackages(packages ...string) {
	p.Packages = append(p.Packages, packages...)
}

// IsEmpty reports whether the plan has nothing to install.
func (p *InstallPlan) IsEmpty() bool {
	return len(p.Packages) == 0
}

// CommandArgs returns the command name and arguments the plan will execute.
func (p *InstallPlan) CommandArgs() (string, []string, error) {
	var args []string
	switch p.Manager {
	case Npm:
		args = []string{"install"}
		if p.Dev {
			args = append(args, "--save-dev")
		}
	case Pnpm, Yarn:
		args = []string{"add"}
		if p.Dev {
			args = append(args, "-D")
		}
	case Bun:
		args = []string{"add"}
		if p.Dev {
			args = append(args, "-d")
		}
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedManager, p.Manager)
	}
	return p.Manager.String(), append(args, p.Packages...), nil
}

// Run executes the install in cwd with inherited stdio. An empty plan is a
// no-op.
func (p *InstallPlan) Run(ctx context.Context, cwd string) error {
	if p.IsEmpty() {
		return nil
	}
	name, args, err := p.CommandArgs()
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = cwd
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %v", ErrExecution, err)
	}
	return nil
}
