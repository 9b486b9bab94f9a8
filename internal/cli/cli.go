// Package cli implements the margins command-line interface.
//
// The CLI renders scatter plots with marginal histograms from CSV, JSON or
// YAML datasets and from the built-in demo datasets. It is built with cobra;
// logging goes through charmbracelet/log and status output through lipgloss.
//
// # Commands
//
//   - render: Draw a dataset to PNG, JPEG, TIFF, SVG or PDF
//   - demo: Draw a built-in dataset (interactive picker without arguments)
//   - describe: Print summary statistics and the correlation
//   - layout: Write the layout document as JSON or BSON
//   - inspect: Render the region graph with Graphviz
//   - serve: Run the HTTP API
//   - cache: Manage the local render cache
//
// All commands accept --verbose (-v) for debug logging, --config for a TOML
// defaults file and --no-cache to bypass the render cache.
package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/margins/pkg/cache"
	"github.com/matzehuels/margins/pkg/pipeline"
)

const appName = "margins"

// Levels for [New] and [CLI.SetLogLevel].
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI is the state shared by every subcommand.
type CLI struct {
	Logger *log.Logger

	configPath string // --config
	noCache    bool   // --no-cache

	// Filled from the config file by the root pre-run.
	defaults pipeline.Options
	serve    serveConfig
}

// New returns a CLI logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

func (c *CLI) SetLogLevel(level log.Level) { c.Logger.SetLevel(level) }

// newRunner returns a runner over the local file cache, or over no cache
// with --no-cache. A cache that cannot be opened is logged and skipped.
func (c *CLI) newRunner() (*pipeline.Runner, error) {
	store, err := newCache(c.noCache)
	if err != nil {
		c.Logger.Warn("render cache unavailable", "err", err)
		store = cache.NewNullCache()
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(dir)
}

func cacheDir() (string, error) { return cache.DefaultDir() }

// parseFormats splits a comma-separated --format value. Entries are
// lowercased and trimmed; an empty value means PNG only.
func parseFormats(s string) []string {
	formats := make([]string, 0, 1)
	for f := range strings.SplitSeq(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		formats = append(formats, pipeline.FormatPNG)
	}
	return formats
}
