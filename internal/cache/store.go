package cache

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/motioncore/motioncore/internal/logging"
	"github.com/motioncore/motioncore/pkg/interfaces"
)

const (
	defaultRegistryTTL = 10 * time.Minute
	defaultAssetTTL    = 24 * time.Hour
	staleMaxAge        = 30 * 24 * time.Hour

	registryManifestFile   = "registry.json"
	componentsManifestFile = "components.json"

	cacheDirEnv    = "MOTION_CORE_CACHE_DIR"
	registryTTLEnv = "MOTION_CORE_CACHE_TTL_MS"
	assetTTLEnv    = "MOTION_CORE_ASSET_CACHE_TTL_MS"
)

// Store owns the on-disk cache root shared by every registry endpoint. Each
// endpoint receives its own namespaced directory via Scoped.
type Store struct {
	root        string
	registryTTL time.Duration
	assetTTL    time.Duration
	logger      interfaces.Logger
}

// RegistryCache reads and writes the cached manifests for a single registry
// endpoint.
type RegistryCache struct {
	root        string
	registryTTL time.Duration
	assetTTL    time.Duration
	logger      interfaces.Logger
}

// Info reports the cache location and effective TTLs.
type Info struct {
	Path        string
	RegistryTTL time.Duration
	AssetTTL    time.Duration
}

// Data carries cached bytes plus a freshness marker so callers can
// distinguish a fresh hit from a stale fallback read.
type Data struct {
	Bytes []byte
	Fresh bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger attaches a logger used for best-effort write warnings.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTTLs overrides the registry and asset freshness windows. Zero or
// negative values keep the environment or default TTL for that slot.
func WithTTLs(registryTTL, assetTTL time.Duration) Option {
	return func(s *Store) {
		if registryTTL > 0 {
			s.registryTTL = registryTTL
		}
		if assetTTL > 0 {
			s.assetTTL = assetTTL
		}
	}
}

// NewStore resolves the cache root from MOTION_CORE_CACHE_DIR, falling back to
// the user cache directory and finally the system temp directory.
func NewStore(opts ...Option) *Store {
	root := os.Getenv(cacheDirEnv)
	if root == "" {
		if base, err := os.UserCacheDir(); err == nil {
			root = filepath.Join(base, "motion-core")
		} else {
			root = filepath.Join(os.TempDir(), "motion-core")
		}
	}
	return FromPath(root, opts...)
}

// FromPath builds a Store rooted at the provided directory, reading TTL
// overrides from the environment.
func FromPath(root string, opts ...Option) *Store {
	store := &Store{
		root:        root,
		registryTTL: readDuration(registryTTLEnv, defaultRegistryTTL),
		assetTTL:    readDuration(assetTTLEnv, defaultAssetTTL),
		logger:      logging.NoOp(),
	}
	for _, opt := range opts {
		opt(store)
	}
	store.ensureRoot()
	return store
}

// Info reports the configured cache root and TTLs.
func (s *Store) Info() Info {
	return Info{
		Path:        s.root,
		RegistryTTL: s.registryTTL,
		AssetTTL:    s.assetTTL,
	}
}

// Scoped returns the per-endpoint cache for the given namespace. The namespace
// (typically a registry URL) is encoded so it is always filesystem safe.
func (s *Store) Scoped(namespace string) *RegistryCache {
	return &RegistryCache{
		root:        filepath.Join(s.root, sanitizeNamespace(namespace)),
		registryTTL: s.registryTTL,
		assetTTL:    s.assetTTL,
		logger:      s.logger,
	}
}

// Clear removes every cached entry and recreates the root directory.
func (s *Store) Clear() error {
	if _, err := os.Stat(s.root); err == nil {
		if err := os.RemoveAll(s.root); err != nil {
			return err
		}
	}
	s.ensureRoot()
	return nil
}

func (s *Store) ensureRoot() {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		s.logger.Warn("cache.root.create_failed", "path", s.root, "error", err)
	}
}

// RegistryManifest returns the cached registry manifest bytes, if present and
// within the registry TTL. When allowStale is set, entries older than the TTL
// but younger than the stale ceiling are returned with Fresh set to false.
func (c *RegistryCache) RegistryManifest(allowStale bool) (Data, bool) {
	return c.readFile(filepath.Join(c.root, registryManifestFile), c.registryTTL, allowStale)
}

// WriteRegistryManifest persists the registry manifest bytes. Failures are
// logged and swallowed; the cache is an optimization, never a requirement.
func (c *RegistryCache) WriteRegistryManifest(data []byte) {
	if err := c.writeFile(filepath.Join(c.root, registryManifestFile), data); err != nil {
		c.logger.Warn("cache.registry_manifest.write_failed", "error", err)
	}
}

// ComponentsManifest returns the cached component asset manifest, governed by
// the asset TTL.
func (c *RegistryCache) ComponentsManifest(allowStale bool) (Data, bool) {
	return c.readFile(filepath.Join(c.root, componentsManifestFile), c.assetTTL, allowStale)
}

// WriteComponentsManifest persists the component asset manifest bytes.
func (c *RegistryCache) WriteComponentsManifest(data []byte) {
	if err := c.writeFile(filepath.Join(c.root, componentsManifestFile), data); err != nil {
		c.logger.Warn("cache.components_manifest.write_failed", "error", err)
	}
}

func (c *RegistryCache) readFile(path string, ttl time.Duration, allowStale bool) (Data, bool) {
	stat, err := os.Stat(path)
	if err != nil {
		return Data{}, false
	}
	age := time.Since(stat.ModTime())
	if age < 0 {
		age = 0
	}

	if age <= ttl {
		payload, err := os.ReadFile(path)
		if err != nil {
			return Data{}, false
		}
		return Data{Bytes: payload, Fresh: true}, true
	}

	if allowStale && age <= staleMaxAge {
		payload, err := os.ReadFile(path)
		if err != nil {
			return Data{}, false
		}
		return Data{Bytes: payload, Fresh: false}, true
	}

	return Data{}, false
}

func (c *RegistryCache) writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func sanitizeNamespace(value string) string {
	encoded := base64.RawURLEncoding.EncodeToString([]byte(value))
	return "registry-" + encoded
}

func readDuration(env string, fallback time.Duration) time.Duration {
	raw := os.Getenv(env)
	if raw == "" {
		return fallback
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || ms <= 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}
