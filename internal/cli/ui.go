package cli

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// stdout receives all human-facing output. Tests swap it for a buffer.
var stdout io.Writer = os.Stdout

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorBlue  = lipgloss.Color("75")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	StyleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleLink   = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim    = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue  = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// status icons, each with its color
var (
	iconSuccess = lipgloss.NewStyle().Foreground(colorGreen).Render("✓")
	iconError   = lipgloss.NewStyle().Foreground(colorRed).Render("✗")
	iconInfo    = lipgloss.NewStyle().Foreground(colorGray).Render("›")
	iconArrow   = StyleDim.Render("→")

	statusCached = lipgloss.NewStyle().Foreground(colorGreen).Render("cached")
	statusFresh  = lipgloss.NewStyle().Foreground(colorGray).Render("fresh")
	separator    = StyleDim.Render(" · ")
)

func emit(parts ...string) {
	fmt.Fprintln(stdout, strings.Join(parts, " "))
}

func printSuccess(format string, args ...any) { emit(iconSuccess, fmt.Sprintf(format, args...)) }
func printError(format string, args ...any)   { emit(iconError, fmt.Sprintf(format, args...)) }
func printInfo(format string, args ...any)    { emit(iconInfo, fmt.Sprintf(format, args...)) }

// printDetail prints a dimmed, indented line.
func printDetail(format string, args ...any) {
	emit(" ", StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints an indented "→ path" line for a written artifact.
func printFile(path string) { emit(" ", iconArrow, StyleValue.Render(path)) }

func printKeyValue(key, value string) { emit(styleKey.Render(key), StyleValue.Render(value)) }

// printStats prints one summary line such as
// "500 samples · 20 bins · r = 0.84 · cached". A NaN correlation is left out.
func printStats(samples, bins int, correlation float64, cached bool) {
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d samples", samples)),
		StyleDim.Render(fmt.Sprintf("%d bins", bins)),
	}
	if !math.IsNaN(correlation) {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("r = %.2f", correlation)))
	}
	status := statusFresh
	if cached {
		status = statusCached
	}
	parts = append(parts, status)
	fmt.Fprintln(stdout, "  "+strings.Join(parts, separator))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	emit(StyleDim.Render(description+":"), styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(stdout) }
