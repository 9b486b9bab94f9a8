package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/margins/pkg/dataset"
	"github.com/matzehuels/margins/pkg/pipeline"
	"github.com/matzehuels/margins/pkg/render"
)

// renderOpts holds the command-line flags for render-like commands.
type renderOpts struct {
	pipeline.Options
	figure  figureFlags
	input   inputFlags
	output  string
	formats string
}

// addRenderFlags registers figure and output flags on cmd.
func addRenderFlags(cmd *cobra.Command, o *renderOpts) {
	addFigureFlags(cmd, &o.Options, &o.figure)
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&o.formats, "format", "f", "", "output format(s): png (default), jpeg, tiff, svg, pdf, json, dot (comma-separated)")
	cmd.Flags().IntVar(&o.DPI, "dpi", pipeline.DefaultDPI, "raster resolution (png, jpeg, tiff)")
	cmd.Flags().BoolVar(&o.Refresh, "refresh", false, "ignore cached artifacts")
}

// resolve merges flags with config defaults and validates formats.
func (c *CLI) resolve(cmd *cobra.Command, o *renderOpts) (pipeline.Options, error) {
	opts := o.Options
	if cmd.Flags().Changed("format") {
		opts.Formats = parseFormats(o.formats)
	}
	c.applyDefaults(cmd, &opts, &o.figure)
	if len(opts.Formats) == 0 {
		opts.Formats = parseFormats("")
	}
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var o renderOpts

	cmd := &cobra.Command{
		Use:   "render [data.csv|data.json|data.yaml]",
		Short: "Draw a scatter plot with marginal histograms",
		Long: `Draw a scatter plot with marginal histograms from a dataset file.

CSV files need a header row; --x and --y pick the columns (default: the first
two). JSON and YAML files hold {"x": [...], "y": [...]} plus optional
x_label and y_label. The name of a built-in dataset (see 'demo') is accepted
as well.

Rendered artifacts are cached locally; use --refresh or --no-cache to redraw.`,
		Example: `  margins render scores.csv --x hours --y score -o scores.png
  margins render scores.csv -f png,svg,pdf --correlation --bins 30`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.resolve(cmd, &o)
			if err != nil {
				return err
			}
			ds, err := loadDataset(args[0], o.input)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), ds, args[0], o.output, opts)
		},
	}

	cmd.Flags().StringVar(&o.input.xcol, "x", "", "CSV column for x (default: first column)")
	cmd.Flags().StringVar(&o.input.ycol, "y", "", "CSV column for y (default: second column)")
	cmd.Flags().Uint64Var(&o.input.seed, "seed", dataset.DefaultSeed, "seed for built-in datasets")
	addRenderFlags(cmd, &o)

	return cmd
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, ds *dataset.Dataset, input, output string, opts pipeline.Options) error {
	runner, err := c.newRunner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	c.Logger.Debug("rendering", "input", input, "samples", ds.Len(), "formats", opts.Formats)
	prog := newProgress(c.Logger)

	spin := startSpinner(ctx, "Rendering figure...")

	result, err := runner.Execute(ctx, ds, opts)
	if err != nil {
		spin.fail("Render failed")
		return err
	}
	spin.stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths := outputPaths(output, input, opts.Formats)
	formats := make([]string, 0, len(paths))
	for f := range paths {
		formats = append(formats, f)
	}
	slices.Sort(formats)

	for _, f := range formats {
		if err := render.WriteArtifact(paths[f], result.Artifacts[f]); err != nil {
			return err
		}
	}
	prog.done("Rendered figure", "artifacts", len(formats))

	printSuccess("Render complete")
	for _, f := range formats {
		printFile(paths[f])
	}
	printStats(result.Stats.Samples, opts.Bins, result.Stats.Correlation, result.CacheInfo.RenderHit)
	return nil
}
