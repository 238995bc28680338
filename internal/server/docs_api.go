package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/motioncore/motioncore/internal/docs"
	"github.com/motioncore/motioncore/internal/logging"
	"github.com/motioncore/motioncore/internal/registry"
	"github.com/motioncore/motioncore/pkg/interfaces"
)

// DocsAPI serves the documentation text endpoints plus the registry manifests
// consumed by the CLI. All state is immutable after construction, handlers
// recompute responses per request.
type DocsAPI struct {
	generator *docs.Generator
	library   *docs.Library
	baseURL   string
	logger    interfaces.Logger

	registryJSON   []byte
	componentsJSON []byte
}

// DocsAPIOption configures a DocsAPI.
type DocsAPIOption func(*DocsAPI)

// WithLibrary enables the /docs/{slug} page endpoints.
func WithLibrary(library *docs.Library) DocsAPIOption {
	return func(api *DocsAPI) {
		api.library = library
	}
}

// WithBaseURL pins the origin used for generated links instead of deriving it
// from each request.
func WithBaseURL(baseURL string) DocsAPIOption {
	return func(api *DocsAPI) {
		api.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	}
}

// WithServerLogger attaches a logger.
func WithServerLogger(logger interfaces.Logger) DocsAPIOption {
	return func(api *DocsAPI) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// WithPublishedRegistry serves the given catalog and asset manifest at
// /registry.json and /components.json.
func WithPublishedRegistry(reg registry.Registry, assets map[string]string) DocsAPIOption {
	return func(api *DocsAPI) {
		if encoded, err := json.Marshal(reg); err == nil {
			api.registryJSON = encoded
		}
		if assets == nil {
			assets = map[string]string{}
		}
		if encoded, err := json.Marshal(assets); err == nil {
			api.componentsJSON = encoded
		}
	}
}

// NewDocsAPI builds the HTTP surface over a document generator.
func NewDocsAPI(generator *docs.Generator, opts ...DocsAPIOption) *DocsAPI {
	api := &DocsAPI{
		generator: generator,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(api)
	}
	return api
}

// Register installs every route on the mux.
func (api *DocsAPI) Register(mux *http.ServeMux) {
	if mux == nil {
		return
	}
	mux.HandleFunc("GET /llms.txt", api.handleLLMS)
	mux.HandleFunc("GET /robots.txt", api.handleRobots)
	mux.HandleFunc("GET /sitemap.xml", api.handleSitemap)
	if api.registryJSON != nil {
		mux.HandleFunc("GET /registry.json", api.handleRegistryManifest)
		mux.HandleFunc("GET /components.json", api.handleComponentsManifest)
	}
	if api.library != nil {
		mux.HandleFunc("GET /docs/{slug}", api.handleDocPage)
		mux.HandleFunc("GET /docs/raw/{slug}", api.handleDocRaw)
	}
}

func (api *DocsAPI) handleLLMS(w http.ResponseWriter, r *http.Request) {
	document, err := api.generator.LLMSDocument(api.origin(r))
	if err != nil {
		api.logger.Error("docs.llms.failed", "error", err)
		writeError(w, err)
		return
	}
	writeText(w, "text/plain; charset=utf-8", document)
}

func (api *DocsAPI) handleRobots(w http.ResponseWriter, r *http.Request) {
	document, err := api.generator.RobotsDocument(api.origin(r))
	if err != nil {
		api.logger.Error("docs.robots.failed", "error", err)
		writeError(w, err)
		return
	}
	writeText(w, "text/plain; charset=utf-8", document)
}

func (api *DocsAPI) handleSitemap(w http.ResponseWriter, r *http.Request) {
	document, err := api.generator.SitemapDocument(api.origin(r))
	if err != nil {
		api.logger.Error("docs.sitemap.failed", "error", err)
		writeError(w, err)
		return
	}
	writeText(w, "application/xml; charset=utf-8", document)
}

func (api *DocsAPI) handleRegistryManifest(w http.ResponseWriter, r *http.Request) {
	writeRawJSON(w, http.StatusOK, api.registryJSON)
}

func (api *DocsAPI) handleComponentsManifest(w http.ResponseWriter, r *http.Request) {
	writeRawJSON(w, http.StatusOK, api.componentsJSON)
}

func (api *DocsAPI) handleDocPage(w http.ResponseWriter, r *http.Request) {
	rendered, err := api.library.Render(r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(rendered)
}

func (api *DocsAPI) handleDocRaw(w http.ResponseWriter, r *http.Request) {
	raw, err := api.library.Raw(r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeText(w, "text/plain; charset=utf-8", string(raw))
}

// origin prefers the configured base URL and otherwise reconstructs the
// request origin from the forwarded proto, TLS state and host header.
func (api *DocsAPI) origin(r *http.Request) string {
	if api.baseURL != "" {
		return api.baseURL
	}
	if r == nil {
		return ""
	}
	scheme := "http"
	if proto := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); proto != "" {
		scheme = proto
	} else if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
