package commands

import (
	"fmt"

	"github.com/motioncore/motioncore/internal/cache"
)

// CacheOptions controls the cache command. Clear removes the cache root;
// Force acknowledges that files will be deleted from disk.
type CacheOptions struct {
	Clear bool
	Force bool
}

// CacheResult reports the cache location, TTLs, and whether it was cleared.
type CacheResult struct {
	Info    cache.Info
	Cleared bool
}

// Cache inspects the on-disk registry cache and optionally clears it.
// Clearing without Force fails so a plain `cache --clear` never deletes
// anything silently.
func Cache(cctx *CommandContext, options CacheOptions) (CacheResult, error) {
	info := cctx.CacheStore().Info()
	result := CacheResult{Info: info}

	if !options.Clear {
		return result, nil
	}
	if !options.Force {
		return result, ErrClearConfirmation
	}
	if err := cctx.CacheStore().Clear(); err != nil {
		return result, fmt.Errorf("failed to clear cache: %w", err)
	}
	result.Cleared = true
	return result, nil
}
