package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/margins/pkg/pipeline"
)

// fileConfig is the layout of the TOML config file:
//
//	[render]
//	title = "Study Hours vs Exam Scores"
//	bins = 30
//	formats = ["png", "svg"]
//	scatter_color = "#1f77b4"
//
//	[serve]
//	addr = ":9090"
//	redis = "redis://localhost:6379/0"
type fileConfig struct {
	Render pipeline.Options `toml:"render"`
	Serve  serveConfig      `toml:"serve"`
}

type serveConfig struct {
	Addr  string `toml:"addr"`
	Redis string `toml:"redis"`
}

// configPath returns the default config file location.
func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// readConfig decodes the TOML file at path. Unknown keys are returned so the
// caller can warn about them.
func readConfig(path string) (fileConfig, []string, error) {
	var cfg fileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return fileConfig{}, nil, err
	}
	var unknown []string
	for _, k := range md.Undecoded() {
		unknown = append(unknown, k.String())
	}
	return cfg, unknown, nil
}

// loadConfig reads the config file named by --config, or the default file if
// it exists, into c.defaults and c.serve.
func (c *CLI) loadConfig() error {
	path := c.configPath
	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return nil
		}
		path = p
	}

	cfg, unknown, err := readConfig(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load config %s: %w", path, err)
	}
	if len(unknown) > 0 {
		c.Logger.Warn("unknown config keys", "file", path, "keys", strings.Join(unknown, ", "))
	}
	if len(cfg.Render.Formats) > 0 {
		if err := pipeline.ValidateFormats(cfg.Render.Formats); err != nil {
			return fmt.Errorf("load config %s: %w", path, err)
		}
	}

	c.Logger.Debug("loaded config", "file", path)
	c.defaults = cfg.Render
	c.serve = cfg.Serve
	return nil
}

// figureFlags holds flag values that need post-processing before they map
// onto pipeline.Options.
type figureFlags struct {
	margin float64
}

// addFigureFlags registers the flags shared by every command that builds a
// figure.
func addFigureFlags(cmd *cobra.Command, opts *pipeline.Options, ff *figureFlags) {
	f := cmd.Flags()
	f.StringVar(&opts.Title, "title", "", `figure title (default: "Scatter Plot with Marginal Distributions")`)
	f.StringVar(&opts.XLabel, "x-label", "", "x axis label (default: column name)")
	f.StringVar(&opts.YLabel, "y-label", "", "y axis label (default: column name)")
	f.Float64Var(&opts.Width, "width", pipeline.DefaultWidth, "figure width in inches")
	f.Float64Var(&opts.Height, "height", pipeline.DefaultHeight, "figure height in inches")
	f.IntVar(&opts.Bins, "bins", pipeline.DefaultBins, "histogram bin count")
	f.Float64Var(&ff.margin, "margin", pipeline.DefaultMargin, "axis padding as a fraction of the data range")
	f.BoolVar(&opts.Correlation, "correlation", false, "append the Pearson correlation to the title")
	f.StringVar(&opts.ScatterColor, "scatter-color", "", "scatter point color (#rrggbb)")
	f.StringVar(&opts.XMarginalColor, "x-color", "", "top histogram color (#rrggbb)")
	f.StringVar(&opts.YMarginalColor, "y-color", "", "right histogram color (#rrggbb)")
	f.StringVar(&opts.EdgeColor, "edge-color", "", "point and bar outline color (#rrggbb)")
}

// applyDefaults fills every figure option the user did not set on the
// command line from the config file.
func (c *CLI) applyDefaults(cmd *cobra.Command, opts *pipeline.Options, ff *figureFlags) {
	d := c.defaults
	unset := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && !f.Changed
	}
	str := func(name string, dst *string, v string) {
		if v != "" && unset(name) {
			*dst = v
		}
	}

	str("title", &opts.Title, d.Title)
	str("x-label", &opts.XLabel, d.XLabel)
	str("y-label", &opts.YLabel, d.YLabel)
	str("scatter-color", &opts.ScatterColor, d.ScatterColor)
	str("x-color", &opts.XMarginalColor, d.XMarginalColor)
	str("y-color", &opts.YMarginalColor, d.YMarginalColor)
	str("edge-color", &opts.EdgeColor, d.EdgeColor)
	if d.Width > 0 && unset("width") {
		opts.Width = d.Width
	}
	if d.Height > 0 && unset("height") {
		opts.Height = d.Height
	}
	if d.Bins != 0 && unset("bins") {
		opts.Bins = d.Bins
	}
	if d.Correlation && unset("correlation") {
		opts.Correlation = true
	}
	if d.DPI != 0 && unset("dpi") {
		opts.DPI = d.DPI
	}
	if len(d.Formats) > 0 && unset("format") {
		opts.Formats = d.Formats
	}

	switch {
	case ff == nil:
	case !unset("margin"):
		m := ff.margin
		opts.Margin = &m
	case d.Margin != nil:
		opts.Margin = d.Margin
	}
	opts.Logger = c.Logger
}
