package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/margins/pkg/dataset"
)

// defaultDemo is used when no dataset is named and stdin is not a terminal.
const defaultDemo = "normal"

// demoCommand creates the demo command for the built-in datasets.
func (c *CLI) demoCommand() *cobra.Command {
	var o renderOpts
	var seed uint64

	cmd := &cobra.Command{
		Use:   "demo [" + joinNames() + "]",
		Short: "Draw a built-in dataset",
		Long: `Draw one of the built-in synthetic datasets.

  normal  500 samples of two correlated normal variables
  study   200 students: study hours against exam scores

Without an argument an interactive picker is shown when running in a
terminal; otherwise the normal dataset is drawn.`,
		Example: `  margins demo study --correlation -o study.png
  margins demo normal --seed 7 -f svg`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: dataset.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := c.pickDemo(args, seed)
			if err != nil || name == "" {
				return err
			}
			opts, err := c.resolve(cmd, &o)
			if err != nil {
				return err
			}
			ds, err := dataset.Builtin(name, seed)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), ds, name, o.output, opts)
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", dataset.DefaultSeed, "random seed")
	addRenderFlags(cmd, &o)

	return cmd
}

// joinNames lists the built-in datasets for usage lines, e.g. "normal|study".
func joinNames() string {
	return strings.Join(dataset.Names(), "|")
}

// pickDemo returns the dataset named in args, or asks the user to pick one.
// An empty name means the user quit the picker.
func (c *CLI) pickDemo(args []string, seed uint64) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
		c.Logger.Debug("no terminal, using default dataset", "dataset", defaultDemo)
		return defaultDemo, nil
	}

	final, err := tea.NewProgram(NewDatasetListModel(describeBuiltins(seed))).Run()
	if err != nil {
		return "", fmt.Errorf("dataset picker: %w", err)
	}
	m, ok := final.(DatasetListModel)
	if !ok || m.Selected == "" {
		printInfo("No dataset selected")
		return "", nil
	}
	return m.Selected, nil
}
