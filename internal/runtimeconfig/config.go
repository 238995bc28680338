package runtimeconfig

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrRegistryURLRequired indicates the registry endpoint was left empty.
var ErrRegistryURLRequired = errors.New("motioncore config: registry URL is required")

// ErrRegistryURLInvalid indicates the registry endpoint is not an http(s) URL.
var ErrRegistryURLInvalid = errors.New("motioncore config: registry URL is invalid")

// ErrCacheTTLInvalid indicates a negative cache TTL.
var ErrCacheTTLInvalid = errors.New("motioncore config: cache TTL must be zero or positive")

// ErrServerManifestRequired ensures the docs server only starts with a manifest to publish.
var ErrServerManifestRequired = errors.New("motioncore config: docs manifest is required when the server is enabled")

// ErrServerBaseURLInvalid indicates the configured origin override is malformed.
var ErrServerBaseURLInvalid = errors.New("motioncore config: server base URL is invalid")

var ErrLoggingProviderRequired = errors.New("motioncore config: logging provider is required when logging is enabled")
var ErrLoggingProviderUnknown = errors.New("motioncore config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("motioncore config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("motioncore config: logging format is invalid")

// Config aggregates runtime settings for the toolkit module. Fields use simple
// types so host applications can populate them from any source.
type Config struct {
	Registry RegistryConfig
	Cache    CacheConfig
	Docs     DocsConfig
	Server   ServerConfig
	Logging  LoggingConfig
	Features Features
}

// RegistryConfig locates the component registry endpoint.
type RegistryConfig struct {
	URL string
}

// CacheConfig captures on-disk cache behaviour.
type CacheConfig struct {
	Enabled     bool
	Dir         string
	RegistryTTL time.Duration
	AssetTTL    time.Duration
}

// DocsConfig locates the documentation corpus served alongside the registry.
type DocsConfig struct {
	Dir          string
	ManifestPath string
}

// ServerConfig captures bind options for the docs server.
type ServerConfig struct {
	Enabled bool
	Addr    string
	BaseURL string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles module functionality.
type Features struct {
	Logger bool
}

// DefaultConfig returns the defaults used by the CLI and docs server.
func DefaultConfig() Config {
	return Config{
		Registry: RegistryConfig{
			URL: "https://motion-core.dev/registry",
		},
		Cache: CacheConfig{
			Enabled:     true,
			RegistryTTL: 10 * time.Minute,
			AssetTTL:    24 * time.Hour,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Features: Features{
			Logger: true,
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if err := validation.ValidateStruct(&cfg.Registry,
		validation.Field(&cfg.Registry.URL, validation.Required),
	); err != nil {
		return ErrRegistryURLRequired
	}
	if !isHTTPURL(cfg.Registry.URL) {
		return fmt.Errorf("%w: %s", ErrRegistryURLInvalid, cfg.Registry.URL)
	}
	if cfg.Cache.RegistryTTL < 0 {
		return fmt.Errorf("%w: registry", ErrCacheTTLInvalid)
	}
	if cfg.Cache.AssetTTL < 0 {
		return fmt.Errorf("%w: asset", ErrCacheTTLInvalid)
	}
	if cfg.Server.Enabled {
		if strings.TrimSpace(cfg.Docs.ManifestPath) == "" {
			return ErrServerManifestRequired
		}
		if base := strings.TrimSpace(cfg.Server.BaseURL); base != "" && !isHTTPURL(base) {
			return fmt.Errorf("%w: %s", ErrServerBaseURLInvalid, base)
		}
	}
	if cfg.Features.Logger {
		provider := strings.ToLower(strings.TrimSpace(cfg.Logging.Provider))
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func isHTTPURL(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
