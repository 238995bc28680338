package commands

import (
	"os"
	"path/filepath"

	"github.com/motioncore/motioncore/internal/cache"
	"github.com/motioncore/motioncore/internal/logging"
	"github.com/motioncore/motioncore/internal/registry"
	"github.com/motioncore/motioncore/internal/workspace"
	"github.com/motioncore/motioncore/pkg/interfaces"
)

// CommandContext bundles the workspace location with the registry client and
// cache store every operation needs. It is constructed once per CLI invocation.
type CommandContext struct {
	workspaceRoot string
	configPath    string
	registry      *registry.Client
	store         *cache.Store
	logger        interfaces.Logger
}

// ContextOption configures a CommandContext.
type ContextOption func(*CommandContext)

// WithContextLogger injects the logger used by operations for progress and
// warning output.
func WithContextLogger(logger interfaces.Logger) ContextOption {
	return func(c *CommandContext) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewContext builds a context rooted at an explicit workspace directory.
func NewContext(workspaceRoot, configPath string, client *registry.Client, store *cache.Store, opts ...ContextOption) *CommandContext {
	ctx := &CommandContext{
		workspaceRoot: workspaceRoot,
		configPath:    configPath,
		registry:      client,
		store:         store,
		logger:        logging.NoOp(),
	}
	for _, opt := range opts {
		opt(ctx)
	}
	return ctx
}

// DiscoverContext locates the workspace by walking up from the current
// directory until a motion-core.json is found. When no config exists the
// current directory becomes the workspace root so that `init` can create one.
func DiscoverContext(client *registry.Client, store *cache.Store, opts ...ContextOption) (*CommandContext, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	root, configPath := locateConfig(cwd)
	return NewContext(root, configPath, client, store, opts...), nil
}

// WorkspaceRoot returns the directory operations treat as the project root.
func (c *CommandContext) WorkspaceRoot() string { return c.workspaceRoot }

// ConfigPath returns the motion-core.json location, which may not exist yet.
func (c *CommandContext) ConfigPath() string { return c.configPath }

// Registry returns the shared registry client.
func (c *CommandContext) Registry() *registry.Client { return c.registry }

// CacheStore returns the shared on-disk cache.
func (c *CommandContext) CacheStore() *cache.Store { return c.store }

// Logger returns the context logger, never nil.
func (c *CommandContext) Logger() interfaces.Logger { return c.logger }

// LoadConfig reads the workspace config. The boolean reports whether the file
// exists; a missing config is not an error.
func (c *CommandContext) LoadConfig() (workspace.Config, bool, error) {
	return workspace.TryLoadConfig(c.configPath)
}

func locateConfig(start string) (string, string) {
	current := start
	if resolved, err := filepath.Abs(start); err == nil {
		current = resolved
	}
	for {
		candidate := filepath.Join(current, workspace.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return current, candidate
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	fallback := start
	if resolved, err := filepath.Abs(start); err == nil {
		fallback = resolved
	}
	return fallback, filepath.Join(fallback, workspace.ConfigFileName)
}
