package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for the console run summary.
type Theme struct {
	Name    string
	Primary lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
}

// DefaultTheme returns the colored console theme.
func DefaultTheme() Theme {
	return Theme{
		Name:    "default",
		Primary: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),  // blue
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("34")),  // green
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // orange
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // red
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("242")), // gray
		Bold:    lipgloss.NewStyle().Bold(true),
	}
}

// MonoTheme returns an unstyled theme for NO_COLOR and piped output.
func MonoTheme() Theme {
	return Theme{
		Name:    "mono",
		Primary: lipgloss.NewStyle(),
		Success: lipgloss.NewStyle(),
		Warning: lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle(),
		Bold:    lipgloss.NewStyle(),
	}
}

// ThemeByName maps a theme flag value to a theme, defaulting to the
// colored theme for unknown names.
func ThemeByName(name string) Theme {
	if name == "mono" {
		return MonoTheme()
	}
	return DefaultTheme()
}

// Stats summarizes one aggregation run for console output.
type Stats struct {
	Branches    int // branches processed successfully
	Skipped     int // branches skipped after errors
	Teams       int
	Traces      int
	Interesting int
}

// RunSummary renders the end-of-run console block.
func (th Theme) RunSummary(s Stats) string {
	var b strings.Builder
	b.WriteString(th.Bold.Render("fuzzmerge summary"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  branches  %s", th.Primary.Render(fmt.Sprintf("%d", s.Branches)))
	if s.Skipped > 0 {
		fmt.Fprintf(&b, " %s", th.Warning.Render(fmt.Sprintf("(%d skipped)", s.Skipped)))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "  teams     %s\n", th.Primary.Render(fmt.Sprintf("%d", s.Teams)))
	fmt.Fprintf(&b, "  traces    %s", th.Primary.Render(fmt.Sprintf("%d", s.Traces)))
	if s.Interesting > 0 {
		fmt.Fprintf(&b, " %s", th.Error.Render(fmt.Sprintf("(%d failing)", s.Interesting)))
	} else if s.Traces > 0 {
		fmt.Fprintf(&b, " %s", th.Success.Render("(all passing)"))
	}
	b.WriteString("\n")
	return b.String()
}
