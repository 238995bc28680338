// Command motion-core installs Motion Core components into SvelteKit
// workspaces and serves the documentation endpoints.
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/motioncore/motioncore/cmd/motion-core/ui"
	"github.com/motioncore/motioncore/internal/cache"
	"github.com/motioncore/motioncore/internal/commands"
	"github.com/motioncore/motioncore/internal/logging"
	"github.com/motioncore/motioncore/internal/logging/console"
	"github.com/motioncore/motioncore/internal/registry"
	"github.com/motioncore/motioncore/pkg/interfaces"
)

const (
	defaultRegistryURL = "https://motion-core.dev/registry"
	registryURLEnv     = "MOTION_CORE_REGISTRY_URL"
	assumeYesEnv       = "MOTION_CORE_CLI_ASSUME_YES"
)

var (
	// Global flags
	registryURL string
	verbose     bool

	provider interfaces.LoggerProvider
	reporter ui.Reporter
)

var rootCmd = &cobra.Command{
	Use:   "motion-core",
	Short: "Motion Core component toolkit",
	Long: `motion-core manages Motion Core components in a SvelteKit workspace.

It initializes the workspace configuration, copies components from the
component registry, keeps the barrel exports in sync, and serves the
documentation endpoints used by the docs site.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := console.LevelWarn
		if verbose {
			level = console.LevelDebug
		}
		provider = console.NewProvider(console.Options{MinLevel: &level})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&registryURL, "registry-url",
		envOrDefault(registryURLEnv, defaultRegistryURL),
		"Component registry base URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(serveCmd)
}

// newCommandContext wires the cache, registry client, and workspace discovery
// shared by every workspace-facing subcommand.
func newCommandContext() (*commands.CommandContext, error) {
	store := cache.NewStore(cache.WithLogger(logging.CacheLogger(provider)))
	client := registry.NewClient(registryURL,
		registry.WithCache(store.Scoped(registryURL)),
		registry.WithClientLogger(logging.RegistryLogger(provider)),
	)
	return commands.DiscoverContext(client, store,
		commands.WithContextLogger(logging.CommandsLogger(provider)))
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func envTruthy(key string) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch value {
	case "", "0", "false", "no":
		return false
	}
	return true
}

// isTerminal reports whether the file is attached to a character device.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reporter = ui.NewConsoleReporter()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reporter.Error(err.Error())
		os.Exit(1)
	}
}
