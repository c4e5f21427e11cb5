package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorDim   = lipgloss.Color("240")

	styleHighlight   = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim         = lipgloss.NewStyle().Foreground(colorDim)
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
)

const iconSuccess = "✓"

func printSuccess(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", styleIconSuccess.Render(iconSuccess), fmt.Sprintf(format, args...))
}

func printDetail(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s %s\n", styleDim.Render(label+":"), value)
}
