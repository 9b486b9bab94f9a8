package cli

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/margins/pkg/dataset"
)

// description is the machine-readable output of describe --json.
type description struct {
	Name        string          `json:"name"`
	X           dataset.Summary `json:"x"`
	Y           dataset.Summary `json:"y"`
	Correlation *float64        `json:"correlation"`
}

func describe(ds *dataset.Dataset) description {
	d := description{
		Name: ds.Name,
		X:    dataset.Describe(ds.X),
		Y:    dataset.Describe(ds.Y),
	}
	if r := dataset.Correlation(ds.X, ds.Y); !math.IsNaN(r) {
		d.Correlation = &r
	}
	return d
}

// describeCommand creates the describe command.
func (c *CLI) describeCommand() *cobra.Command {
	var (
		in     inputFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "describe [data|" + defaultDemo + "|...]",
		Short: "Print summary statistics and the correlation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(args[0], in)
			if err != nil {
				return err
			}
			if err := ds.Validate(); err != nil {
				return err
			}
			d := describe(ds)
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(d)
			}
			printDescription(ds, d)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.xcol, "x", "", "CSV column for x (default: first column)")
	cmd.Flags().StringVar(&in.ycol, "y", "", "CSV column for y (default: second column)")
	cmd.Flags().Uint64Var(&in.seed, "seed", dataset.DefaultSeed, "seed for built-in datasets")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	return cmd
}

func printDescription(ds *dataset.Dataset, d description) {
	fmt.Println(describeTable(ds, d))
	if d.Correlation != nil {
		printKeyValue("Correlation", StyleNumber.Render(fmt.Sprintf("%.4f", *d.Correlation)))
	} else {
		printKeyValue("Correlation", StyleDim.Render("n/a"))
	}
}

// describeTable renders the summary of both variables side by side.
func describeTable(ds *dataset.Dataset, d description) string {
	xName, yName := ds.XLabel, ds.YLabel
	if xName == "" {
		xName = "x"
	}
	if yName == "" {
		yName = "y"
	}

	row := func(stat string, x, y float64) []string {
		return []string{stat, formatStat(x), formatStat(y)}
	}
	rows := [][]string{
		{"count", fmt.Sprintf("%d", d.X.Count), fmt.Sprintf("%d", d.Y.Count)},
		row("mean", d.X.Mean, d.Y.Mean),
		row("std", d.X.Std, d.Y.Std),
		row("min", d.X.Min, d.Y.Min),
		row("25%", d.X.Q25, d.Y.Q25),
		row("50%", d.X.Q50, d.Y.Q50),
		row("75%", d.X.Q75, d.Y.Q75),
		row("max", d.X.Max, d.Y.Max),
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	statStyle := lipgloss.NewStyle().Foreground(colorGray)
	valueStyle := lipgloss.NewStyle().Foreground(colorWhite).Align(lipgloss.Right)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", xName, yName).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return statStyle.Padding(0, 1)
			default:
				return valueStyle.Padding(0, 1)
			}
		}).
		Render()
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.4f", v)
}
