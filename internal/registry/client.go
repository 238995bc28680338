package registry

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/motioncore/motioncore/internal/cache"
	"github.com/motioncore/motioncore/internal/logging"
	"github.com/motioncore/motioncore/pkg/interfaces"
)

const (
	registryManifestPath   = "registry.json"
	componentsManifestPath = "components.json"

	requestTimeout = 15 * time.Second
)

// Client fetches registry manifests and component assets. It supports a remote
// HTTP backend with an optional on-disk cache, and a static backend used by
// the docs server and by tests.
type Client struct {
	httpClient *http.Client
	baseURL    string
	static     *Registry
	cache      *cache.RegistryCache
	logger     interfaces.Logger

	mu             sync.Mutex
	assetManifest  map[string]string
	manifestLoaded bool
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithCache attaches a scoped registry cache used for write-through caching
// and stale fallback when the network is unavailable.
func WithCache(scoped *cache.RegistryCache) ClientOption {
	return func(c *Client) {
		c.cache = scoped
	}
}

// WithClientLogger attaches a logger for cache-fallback warnings.
func WithClientLogger(logger interfaces.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewClient builds a client against a remote registry endpoint.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// NewStaticClient builds a client that serves the provided registry without
// any network access. Asset lookups hit the preloaded manifest only.
func NewStaticClient(reg Registry, opts ...ClientOption) *Client {
	client := &Client{
		static: &reg,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// BaseURL reports the remote endpoint, or "" for static clients.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListComponents returns the component catalog sorted by slug.
func (c *Client) ListComponents(ctx context.Context) ([]Component, error) {
	reg, err := c.loadRegistry(ctx)
	if err != nil {
		return nil, err
	}
	components := make([]Component, 0, len(reg.Components))
	for slug, record := range reg.Components {
		components = append(components, Component{Slug: slug, Record: record})
	}
	sort.Slice(components, func(i, j int) bool {
		return components[i].Slug < components[j].Slug
	})
	return components, nil
}

// Summary reports registry metadata for CLI listings.
func (c *Client) Summary(ctx context.Context) (Summary, error) {
	reg, err := c.loadRegistry(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Name:           reg.Name,
		Version:        reg.Version,
		Description:    reg.Description,
		ComponentCount: len(reg.Components),
	}, nil
}

// BaseDependencies returns the registry-wide dependency requirements.
func (c *Client) BaseDependencies(ctx context.Context) (BaseDependencies, error) {
	reg, err := c.loadRegistry(ctx)
	if err != nil {
		return BaseDependencies{}, err
	}
	return BaseDependencies{
		Dependencies:    reg.BaseDependencies,
		DevDependencies: reg.BaseDevDependencies,
	}, nil
}

// FetchComponentFile resolves a component asset path through the asset
// manifest and returns the decoded file contents.
func (c *Client) FetchComponentFile(ctx context.Context, path string) ([]byte, error) {
	manifest, err := c.loadAssetManifest(ctx)
	if err != nil {
		return nil, err
	}
	encoded, ok := manifest[path]
	if !ok {
		return nil, &AssetNotFoundError{Path: path}
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, &AssetDecodeError{Path: path, Cause: err}
	}
	return decoded, nil
}

// AssetManifest returns the full path to base64-content manifest, loading it
// from the cache or network on first use. Mirrors serving components.json use
// this to republish upstream assets.
func (c *Client) AssetManifest(ctx context.Context) (map[string]string, error) {
	return c.loadAssetManifest(ctx)
}

// PreloadAssetManifest seeds the in-memory asset manifest, bypassing the next
// network fetch. Used for cache recovery and in tests.
func (c *Client) PreloadAssetManifest(manifest map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.assetManifest = manifest
	c.manifestLoaded = manifest != nil
}

func (c *Client) loadRegistry(ctx context.Context) (Registry, error) {
	if c.static != nil {
		return *c.static, nil
	}

	if c.cache != nil {
		if entry, ok := c.cache.RegistryManifest(false); ok {
			var reg Registry
			if err := json.Unmarshal(entry.Bytes, &reg); err == nil {
				return reg, nil
			}
		}
	}

	payload, err := c.fetch(ctx, c.manifestURL())
	if err != nil {
		return Registry{}, err
	}
	if payload == nil {
		return c.registryFromStaleCache()
	}

	if err := ValidateManifest(payload); err != nil {
		return Registry{}, err
	}
	if c.cache != nil {
		c.cache.WriteRegistryManifest(payload)
	}
	var reg Registry
	if err := json.Unmarshal(payload, &reg); err != nil {
		return Registry{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return reg, nil
}

func (c *Client) registryFromStaleCache() (Registry, error) {
	if c.cache != nil {
		if entry, ok := c.cache.RegistryManifest(true); ok {
			c.logger.Warn("registry.manifest.stale_fallback", "url", c.manifestURL())
			var reg Registry
			if err := json.Unmarshal(entry.Bytes, &reg); err == nil {
				return reg, nil
			}
		}
	}
	return Registry{}, fmt.Errorf("%w: fetching %s", ErrNetwork, c.manifestURL())
}

func (c *Client) loadAssetManifest(ctx context.Context) (map[string]string, error) {
	c.mu.Lock()
	if c.manifestLoaded {
		manifest := c.assetManifest
		c.mu.Unlock()
		return manifest, nil
	}
	c.mu.Unlock()

	if c.static != nil {
		// Static clients start with an empty asset manifest; PreloadAssetManifest
		// fills it in.
		c.PreloadAssetManifest(map[string]string{})
		return map[string]string{}, nil
	}

	if c.cache != nil {
		if entry, ok := c.cache.ComponentsManifest(false); ok {
			if manifest, err := parseAssetManifest(entry.Bytes); err == nil {
				c.PreloadAssetManifest(manifest)
				return manifest, nil
			}
		}
	}

	payload, err := c.fetch(ctx, c.componentsURL())
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return c.assetManifestFromStaleCache()
	}

	if c.cache != nil {
		c.cache.WriteComponentsManifest(payload)
	}
	manifest, err := parseAssetManifest(payload)
	if err != nil {
		return nil, err
	}
	c.PreloadAssetManifest(manifest)
	return manifest, nil
}

func (c *Client) assetManifestFromStaleCache() (map[string]string, error) {
	if c.cache != nil {
		if entry, ok := c.cache.ComponentsManifest(true); ok {
			c.logger.Warn("registry.components.stale_fallback", "url", c.componentsURL())
			manifest, err := parseAssetManifest(entry.Bytes)
			if err == nil {
				c.PreloadAssetManifest(manifest)
				return manifest, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: fetching %s", ErrNetwork, c.componentsURL())
}

// fetch returns the response body, or a nil payload when the request failed
// in a way the stale cache may cover: a transport error or a non-2xx status
// other than 404.
func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("registry.request.failed", "url", url, "error", err)
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &NotFoundError{URL: url}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("registry.request.error_status", "url", url, "status", resp.StatusCode)
		return nil, nil
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return payload, nil
}

func (c *Client) manifestURL() string {
	return c.baseURL + "/" + registryManifestPath
}

func (c *Client) componentsURL() string {
	return c.baseURL + "/" + componentsManifestPath
}

func parseAssetManifest(raw []byte) (map[string]string, error) {
	var manifest map[string]string
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return manifest, nil
}
