package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/motioncore/motioncore"
)

var (
	serveAddr     string
	serveManifest string
	serveDocsDir  string
	serveBaseURL  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the documentation endpoints",
	Long: `Runs the HTTP server that publishes llms.txt, robots.txt, sitemap.xml,
the raw and rendered documentation pages, and a mirror of the component
registry manifests.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&serveManifest, "manifest", "", "Path to the docs manifest JSON (required)")
	serveCmd.Flags().StringVar(&serveDocsDir, "docs-dir", "", "Directory holding {slug}.md documentation files")
	serveCmd.Flags().StringVar(&serveBaseURL, "base-url", "", "Canonical origin used in generated documents")
	_ = serveCmd.MarkFlagRequired("manifest")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := motioncore.DefaultConfig()
	cfg.Registry.URL = registryURL
	cfg.Server.Enabled = true
	cfg.Server.Addr = serveAddr
	cfg.Server.BaseURL = serveBaseURL
	cfg.Docs.ManifestPath = serveManifest
	cfg.Docs.Dir = serveDocsDir
	if verbose {
		cfg.Logging.Level = "debug"
	}

	module, err := motioncore.New(cfg)
	if err != nil {
		return err
	}

	reporter.Heading("Motion Core docs server")
	reporter.Info(fmt.Sprintf("Listening on %s", serveAddr))

	return module.Serve(cmd.Context())
}
