package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/motioncore/motioncore/internal/commands"
	"github.com/motioncore/motioncore/internal/logging"
)

var (
	cacheClear bool
	cacheForce bool
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the registry manifest cache",
	Long: `Shows where cached registry manifests live and how long they stay
fresh. Pass --clear together with --force to delete the cache directory.`,
	RunE: runCache,
}

func init() {
	cacheCmd.Flags().BoolVar(&cacheClear, "clear", false, "Delete the cache directory")
	cacheCmd.Flags().BoolVar(&cacheForce, "force", false, "Confirm destructive cache operations")
}

func runCache(cmd *cobra.Command, args []string) error {
	cctx, err := newCommandContext()
	if err != nil {
		return err
	}

	var result commands.CacheResult
	sink := func(r commands.CacheResult) { result = r }

	handler := commands.NewCacheHandler(cctx, logging.CommandsLogger(provider), sink)
	msg := commands.CacheCommand{Clear: cacheClear, Force: cacheForce}
	if err := handler.Execute(cmd.Context(), msg); err != nil {
		return err
	}

	reporter.Heading("Registry cache")
	reporter.Info(fmt.Sprintf("Location: %s", result.Info.Path))
	reporter.Detail(fmt.Sprintf("Registry manifests stay fresh for %s", result.Info.RegistryTTL))
	reporter.Detail(fmt.Sprintf("Component assets stay fresh for %s", result.Info.AssetTTL))
	if result.Cleared {
		reporter.Blank()
		reporter.Success("Cache cleared.")
	}
	return nil
}
