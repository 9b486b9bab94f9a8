package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/margins/pkg/dataset"
	"github.com/matzehuels/margins/pkg/render"
)

// inspectCommand creates the inspect command, which draws the region graph
// of a figure with Graphviz.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		in     inputFlags
		bins   int
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "inspect [data]",
		Short: "Render the region graph with Graphviz",
		Long: `Render the figure's region graph: the scatter region and both marginal
histograms, with edges for the axes they share. Formats: svg (default), png,
jpeg, or dot for the Graphviz source.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			ds, err := loadDataset(args[0], in)
			if err != nil {
				return err
			}

			runner, err := c.newRunner()
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			opts := c.defaults
			opts.Logger = c.Logger
			if bins != 0 {
				opts.Bins = bins
			}
			fig, err := runner.Layout(cmd.Context(), ds, opts)
			if err != nil {
				return err
			}

			dot := render.ToDOT(fig)
			data := []byte(dot)
			if format != "dot" {
				if data, err = render.RenderDOT(cmd.Context(), dot, format); err != nil {
					return err
				}
			}

			if output == "" {
				output = basePath("", args[0]) + ".regions." + format
			}
			if output == "-" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := render.WriteArtifact(output, data); err != nil {
				return err
			}
			printSuccess("Region graph written")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, or - for stdout (default: <input>.regions.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg, png, jpeg, dot")
	cmd.Flags().IntVar(&bins, "bins", 0, "histogram bin count (default: from config or 20)")
	cmd.Flags().StringVar(&in.xcol, "x", "", "CSV column for x (default: first column)")
	cmd.Flags().StringVar(&in.ycol, "y", "", "CSV column for y (default: second column)")
	cmd.Flags().Uint64Var(&in.seed, "seed", dataset.DefaultSeed, "seed for built-in datasets")

	return cmd
}
