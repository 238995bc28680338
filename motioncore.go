// Package motioncore assembles the component registry client, documentation
// pipeline, and docs server behind a single runtime configuration.
package motioncore

import (
	"context"
	"fmt"
	"strings"

	"github.com/motioncore/motioncore/internal/cache"
	"github.com/motioncore/motioncore/internal/commands"
	"github.com/motioncore/motioncore/internal/docs"
	"github.com/motioncore/motioncore/internal/logging"
	"github.com/motioncore/motioncore/internal/logging/console"
	"github.com/motioncore/motioncore/internal/logging/gologger"
	"github.com/motioncore/motioncore/internal/registry"
	"github.com/motioncore/motioncore/internal/server"
	"github.com/motioncore/motioncore/pkg/interfaces"
)

// Re-exported contracts so consumers can depend on the root package alone.
type (
	// Logger is the structured logging contract used across the module.
	Logger = interfaces.Logger
	// LoggerProvider hands out named loggers.
	LoggerProvider = interfaces.LoggerProvider

	// RegistryClient fetches and caches the component registry.
	RegistryClient = registry.Client
	// CacheStore owns the on-disk manifest cache.
	CacheStore = cache.Store

	// DocsManifest is the documentation catalog driving text generation.
	DocsManifest = docs.Manifest
	// DocsGenerator renders llms.txt, robots.txt, and sitemap.xml.
	DocsGenerator = docs.Generator
	// DocsLibrary serves raw and rendered Markdown documents.
	DocsLibrary = docs.Library

	// CommandContext bundles workspace, registry, and cache for operations.
	CommandContext = commands.CommandContext
)

// Module is the top level runtime facade.
type Module struct {
	config   Config
	provider interfaces.LoggerProvider
	store    *cache.Store
	client   *registry.Client

	manifest  docs.Manifest
	generator *docs.Generator
	library   *docs.Library
}

// New validates the configuration and wires the shared runtime pieces. Docs
// components are only built when a manifest path is configured.
func New(cfg Config) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{config: cfg}

	provider, err := buildLoggerProvider(cfg)
	if err != nil {
		return nil, err
	}
	m.provider = provider

	storeOpts := []cache.Option{
		cache.WithLogger(logging.CacheLogger(provider)),
		cache.WithTTLs(cfg.Cache.RegistryTTL, cfg.Cache.AssetTTL),
	}
	if cfg.Cache.Dir != "" {
		m.store = cache.FromPath(cfg.Cache.Dir, storeOpts...)
	} else {
		m.store = cache.NewStore(storeOpts...)
	}

	clientOpts := []registry.ClientOption{
		registry.WithClientLogger(logging.RegistryLogger(provider)),
	}
	if cfg.Cache.Enabled {
		clientOpts = append(clientOpts, registry.WithCache(m.store.Scoped(cfg.Registry.URL)))
	}
	m.client = registry.NewClient(cfg.Registry.URL, clientOpts...)

	if path := strings.TrimSpace(cfg.Docs.ManifestPath); path != "" {
		manifest, err := docs.LoadManifest(path)
		if err != nil {
			return nil, err
		}
		m.manifest = manifest

		generatorOpts := []docs.GeneratorOption{
			docs.WithGeneratorLogger(logging.DocsLogger(provider)),
		}
		if dir := strings.TrimSpace(cfg.Docs.Dir); dir != "" {
			metadata, err := docs.LoadSidecarMetadata(dir)
			if err != nil {
				return nil, err
			}
			generatorOpts = append(generatorOpts, docs.WithMetadataResolver(metadata))
			m.library = docs.NewLibrary(dir, manifest, nil)
		}
		m.generator = docs.NewGenerator(manifest, generatorOpts...)
	}

	return m, nil
}

// Logger returns a named logger from the configured provider.
func (m *Module) Logger(name string) interfaces.Logger {
	return logging.ModuleLogger(m.provider, name)
}

// LoggerProvider exposes the provider for components that scope their own
// loggers.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.provider
}

// Registry returns the shared registry client.
func (m *Module) Registry() *registry.Client {
	return m.client
}

// Cache returns the shared cache store.
func (m *Module) Cache() *cache.Store {
	return m.store
}

// Manifest returns the loaded documentation catalog. Zero value when no
// manifest is configured.
func (m *Module) Manifest() docs.Manifest {
	return m.manifest
}

// Generator returns the docs text generator, nil when docs are not configured.
func (m *Module) Generator() *docs.Generator {
	return m.generator
}

// Library returns the Markdown library, nil when no docs directory is
// configured.
func (m *Module) Library() *docs.Library {
	return m.library
}

// DiscoverCommandContext locates the workspace for CLI operations, walking up
// from the current directory.
func (m *Module) DiscoverCommandContext() (*commands.CommandContext, error) {
	return commands.DiscoverContext(m.client, m.store,
		commands.WithContextLogger(logging.CommandsLogger(m.provider)))
}

// Serve blocks running the docs server until the context is cancelled.
func (m *Module) Serve(ctx context.Context) error {
	if m.generator == nil {
		return ErrServerManifestRequired
	}

	published, err := m.publishedManifests(ctx)
	if err != nil {
		return err
	}

	apiOpts := []server.DocsAPIOption{
		server.WithServerLogger(logging.ServerLogger(m.provider)),
	}
	if base := strings.TrimSpace(m.config.Server.BaseURL); base != "" {
		apiOpts = append(apiOpts, server.WithBaseURL(base))
	}
	if m.library != nil {
		apiOpts = append(apiOpts, server.WithLibrary(m.library))
	}
	if published != nil {
		apiOpts = append(apiOpts, server.WithPublishedRegistry(published.registry, published.assets))
	}

	api := server.NewDocsAPI(m.generator, apiOpts...)
	srv := server.New(m.config.Server.Addr, api, logging.ServerLogger(m.provider))
	return srv.Run(ctx)
}

type publishedManifests struct {
	registry registry.Registry
	assets   map[string]string
}

// publishedManifests mirrors the upstream registry so the docs server can
// republish it. A registry that cannot be reached is not fatal; the docs
// endpoints still serve.
func (m *Module) publishedManifests(ctx context.Context) (*publishedManifests, error) {
	components, err := m.client.ListComponents(ctx)
	if err != nil {
		m.Logger("server").Warn("server.registry.unavailable", "error", err)
		return nil, nil
	}

	summary, err := m.client.Summary(ctx)
	if err != nil {
		return nil, err
	}
	base, err := m.client.BaseDependencies(ctx)
	if err != nil {
		return nil, err
	}
	assets, err := m.client.AssetManifest(ctx)
	if err != nil {
		return nil, err
	}

	reg := registry.Registry{
		Name:                summary.Name,
		Version:             summary.Version,
		Description:         summary.Description,
		BaseDependencies:    base.Dependencies,
		BaseDevDependencies: base.DevDependencies,
		Components:          make(map[string]registry.ComponentRecord, len(components)),
	}
	for _, component := range components {
		reg.Components[component.Slug] = component.Record
	}
	return &publishedManifests{registry: reg, assets: assets}, nil
}

func buildLoggerProvider(cfg Config) (interfaces.LoggerProvider, error) {
	if !cfg.Features.Logger {
		return noopProvider{}, nil
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, fmt.Errorf("motioncore: failed to build gologger provider: %w", err)
		}
		return provider, nil
	default:
		level := consoleLevel(cfg.Logging.Level)
		return console.NewProvider(console.Options{MinLevel: &level}), nil
	}
}

func consoleLevel(level string) console.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return console.LevelTrace
	case "debug":
		return console.LevelDebug
	case "warn", "warning":
		return console.LevelWarn
	case "error":
		return console.LevelError
	case "fatal":
		return console.LevelFatal
	default:
		return console.LevelInfo
	}
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }
