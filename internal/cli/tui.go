package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/margins/pkg/dataset"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// datasetInfo is one row of the picker.
type datasetInfo struct {
	Name        string
	Samples     int
	XLabel      string
	YLabel      string
	Correlation float64
}

// describeBuiltins generates every built-in dataset once for the picker.
func describeBuiltins(seed uint64) []datasetInfo {
	names := dataset.Names()
	infos := make([]datasetInfo, 0, len(names))
	for _, name := range names {
		ds, err := dataset.Builtin(name, seed)
		if err != nil {
			continue
		}
		infos = append(infos, datasetInfo{
			Name:        name,
			Samples:     ds.Len(),
			XLabel:      ds.XLabel,
			YLabel:      ds.YLabel,
			Correlation: dataset.Correlation(ds.X, ds.Y),
		})
	}
	return infos
}

// DatasetListModel is the bubbletea model for interactive dataset selection.
type DatasetListModel struct {
	Datasets []datasetInfo
	Cursor   int
	Selected string
}

// NewDatasetListModel creates a new dataset list model.
func NewDatasetListModel(datasets []datasetInfo) DatasetListModel {
	return DatasetListModel{Datasets: datasets}
}

func (m DatasetListModel) Init() tea.Cmd {
	return nil
}

func (m DatasetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Datasets)-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = max(len(m.Datasets)-1, 0)
		case "enter":
			if len(m.Datasets) > 0 {
				m.Selected = m.Datasets[m.Cursor].Name
			}
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m DatasetListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Dataset"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  ⏎ select  q quit"))
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(m.Datasets))
	for i, d := range m.Datasets {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			d.Name,
			fmt.Sprintf("%d", d.Samples),
			d.XLabel,
			d.YLabel,
			fmt.Sprintf("%.2f", d.Correlation),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Dataset", "Samples", "X", "Y", "r").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case row == m.Cursor:
				return listSelectedStyle
			default:
				return listNormalStyle
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Datasets))))

	return b.String()
}
