package logging

import (
	"context"
	"strings"

	"github.com/motioncore/motioncore/pkg/interfaces"
)

const (
	rootModule      = "motioncore"
	registryModule  = "motioncore.registry"
	docsModule      = "motioncore.docs"
	serverModule    = "motioncore.server"
	commandsModule  = "motioncore.commands"
	cacheModule     = "motioncore.cache"
	workspaceModule = "motioncore.workspace"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// RegistryLogger returns the logger namespace reserved for the registry client.
func RegistryLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, registryModule)
}

// DocsLogger returns the logger namespace reserved for documentation rendering.
func DocsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, docsModule)
}

// ServerLogger returns the logger namespace reserved for the HTTP surface.
func ServerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, serverModule)
}

// CommandsLogger returns the logger namespace reserved for command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// CacheLogger returns the logger namespace reserved for the registry cache.
func CacheLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, cacheModule)
}

// WorkspaceLogger returns the logger namespace reserved for workspace writes.
func WorkspaceLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, workspaceModule)
}

// WithRegistryContext enriches the provided logger with common registry fields
// such as the endpoint URL and the asset path. Empty values are ignored.
func WithRegistryContext(logger interfaces.Logger, endpoint, asset string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(endpoint); trimmed != "" {
		fields["registry_url"] = trimmed
	}
	if trimmed := strings.TrimSpace(asset); trimmed != "" {
		fields["asset_path"] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry. Useful as a default when no
// provider has been configured.
func NoOp() interfaces.Logger {
	return noOpLogger{}
}

type noOpLogger struct{}

func (noOpLogger) Trace(string, ...any) {}
func (noOpLogger) Debug(string, ...any) {}
func (noOpLogger) Info(string, ...any)  {}
func (noOpLogger) Warn(string, ...any)  {}
func (noOpLogger) Error(string, ...any) {}
func (noOpLogger) Fatal(string, ...any) {}

func (l noOpLogger) WithContext(context.Context) interfaces.Logger { return l }
