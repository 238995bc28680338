package motioncore

import "github.com/motioncore/motioncore/internal/runtimeconfig"

var (
	ErrRegistryURLRequired     = runtimeconfig.ErrRegistryURLRequired
	ErrRegistryURLInvalid      = runtimeconfig.ErrRegistryURLInvalid
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
	ErrServerManifestRequired  = runtimeconfig.ErrServerManifestRequired
	ErrServerBaseURLInvalid    = runtimeconfig.ErrServerBaseURLInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	RegistryConfig = runtimeconfig.RegistryConfig
	CacheConfig    = runtimeconfig.CacheConfig
	DocsConfig     = runtimeconfig.DocsConfig
	ServerConfig   = runtimeconfig.ServerConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	Features       = runtimeconfig.Features
)

// DefaultConfig returns the defaults used by the CLI and docs server.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
