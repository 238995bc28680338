package commands

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"
)

const (
	initMessageType  = "motioncore.init"
	addMessageType   = "motioncore.add"
	listMessageType  = "motioncore.list"
	cacheMessageType = "motioncore.cache"
)

// InitCommand prepares the current workspace for motion-core components.
type InitCommand struct {
	// DryRun previews every change without touching the filesystem.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (InitCommand) Type() string { return initMessageType }

// Validate implements command.Message. Init takes no required input.
func (InitCommand) Validate() error { return nil }

// AddCommand installs registry components into the workspace.
type AddCommand struct {
	// Components lists the slugs to install; internal dependencies are pulled
	// in automatically.
	Components []string `json:"components"`
	// DryRun previews the plan without writing files or installing packages.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (AddCommand) Type() string { return addMessageType }

// Validate ensures at least one well-formed slug was requested.
func (cmd AddCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Components,
			validation.Required.Error("at least one component is required"),
			validation.Each(validation.By(func(value any) error {
				name, _ := value.(string)
				if !slug.IsValid(name) {
					return validation.NewError("motioncore.add.invalid_slug", "component name must be a valid slug")
				}
				return nil
			})),
		),
	)
}

// ListCommand prints the registry catalog.
type ListCommand struct{}

// Type implements command.Message.
func (ListCommand) Type() string { return listMessageType }

// Validate implements command.Message.
func (ListCommand) Validate() error { return nil }

// CacheCommand inspects or clears the on-disk registry cache.
type CacheCommand struct {
	// Clear removes the cache directory instead of just reporting it.
	Clear bool `json:"clear,omitempty"`
	// Force acknowledges that clearing deletes files from disk.
	Force bool `json:"force,omitempty"`
}

// Type implements command.Message.
func (CacheCommand) Type() string { return cacheMessageType }

// Validate implements command.Message.
func (CacheCommand) Validate() error { return nil }
