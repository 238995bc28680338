package commands

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingConfig means a command that needs motion-core.json ran in a
	// workspace without one.
	ErrMissingConfig = errors.New("commands: no motion-core.json found")

	// ErrComponentNotFound means a requested slug does not exist in the
	// registry catalog.
	ErrComponentNotFound = errors.New("commands: component not found in registry")

	// ErrUnsupportedSvelte means the workspace's Svelte version is below the
	// supported floor.
	ErrUnsupportedSvelte = errors.New("commands: svelte >=5 is required")

	// ErrClearConfirmation means cache clearing was requested without --force.
	ErrClearConfirmation = errors.New("commands: use --force to confirm cache clearing (files will be deleted from disk)")
)

// MissingConfigError reports the config path that was expected to exist.
type MissingConfigError struct {
	Path string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("no motion-core.json found at %s", e.Path)
}

func (e *MissingConfigError) Unwrap() error { return ErrMissingConfig }

// ComponentNotFoundError carries the slug that failed catalog lookup.
type ComponentNotFoundError struct {
	Slug string
}

func (e *ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component %q not found in registry", e.Slug)
}

func (e *ComponentNotFoundError) Unwrap() error { return ErrComponentNotFound }

// UnsupportedSvelteError carries the detected Svelte version, empty when the
// dependency is absent entirely.
type UnsupportedSvelteError struct {
	Found string
}

func (e *UnsupportedSvelteError) Error() string {
	if e.Found == "" {
		return "Svelte >=5 is required. No svelte dependency was found."
	}
	return fmt.Sprintf("Svelte >=5 is required. Found %q.", e.Found)
}

func (e *UnsupportedSvelteError) Unwrap() error { return ErrUnsupportedSvelte }
