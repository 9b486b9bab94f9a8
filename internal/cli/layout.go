package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/margins/pkg/dataset"
	"github.com/matzehuels/margins/pkg/errors"
	"github.com/matzehuels/margins/pkg/marginal"
	"github.com/matzehuels/margins/pkg/pipeline"
	"github.com/matzehuels/margins/pkg/render"
)

// layoutCommand creates the layout command for writing layout documents.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		opts   pipeline.Options
		ff     figureFlags
		in     inputFlags
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "layout [data]",
		Short: "Write the figure layout as JSON or BSON",
		Long: `Compute the figure layout and write it as a document.

The layout document holds the region boxes, shared domains, axis decorations
and histogram bins, but not the scatter points. It is the same document the
HTTP API returns from /v1/layout and 'render -f json' writes.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "bson" {
				return errors.New(errors.ErrCodeInvalidFormat, "layout format must be json or bson, got %q", format)
			}
			c.applyDefaults(cmd, &opts, &ff)
			ds, err := loadDataset(args[0], in)
			if err != nil {
				return err
			}
			if output == "" {
				output = basePath("", args[0]) + ".layout." + format
			}
			return c.runLayout(cmd.Context(), ds, args[0], opts, output, format)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.<format>)")
	cmd.Flags().StringVar(&format, "format", "json", "document format: json, bson")
	cmd.Flags().StringVar(&in.xcol, "x", "", "CSV column for x (default: first column)")
	cmd.Flags().StringVar(&in.ycol, "y", "", "CSV column for y (default: second column)")
	cmd.Flags().Uint64Var(&in.seed, "seed", dataset.DefaultSeed, "seed for built-in datasets")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore the cached layout")
	addFigureFlags(cmd, &opts, &ff)

	return cmd
}

// runLayout computes the layout document and writes it.
func (c *CLI) runLayout(ctx context.Context, ds *dataset.Dataset, input string, opts pipeline.Options, output, format string) error {
	runner, err := c.newRunner()
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spin := startSpinner(ctx, "Computing layout...")

	doc, cacheHit, err := runner.LayoutDocument(ctx, ds, opts)
	if err != nil {
		spin.fail("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spin.stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	var data []byte
	if format == "bson" {
		data, err = marginal.MarshalLayoutBSON(doc)
	} else {
		data, err = marginal.MarshalLayout(doc)
	}
	if err != nil {
		return err
	}
	if err := render.WriteArtifact(output, data); err != nil {
		return err
	}

	main, _ := doc.Region(marginal.MainScatter)
	top, _ := doc.Region(marginal.TopMarginal)

	printSuccess("Layout complete")
	printFile(output)
	printStats(main.Points, len(top.Bins), dataset.Correlation(ds.X, ds.Y), cacheHit)
	printNewline()
	printNextStep("Render", appName+" render "+input)

	return nil
}
