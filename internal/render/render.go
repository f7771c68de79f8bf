// Package render produces the merged Markdown report, the conformance
// table spliced into the README, and the styled console summary.
package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"fuzzmerge/internal/aggregate"
	"fuzzmerge/internal/summary"
)

// Context carries the inputs needed to build hyperlinks.
type Context struct {
	RepoURL       string
	ReportVersion string
}

// tracesURL is the browse URL of a branch's traces directory.
func (c Context) tracesURL(branch string) string {
	return fmt.Sprintf("%s/tree/%s/fuzz-reports/%s/traces", c.RepoURL, branch, c.ReportVersion)
}

// traceURL is the browse URL of one trace directory on a branch.
func (c Context) traceURL(branch, trace string) string {
	return c.tracesURL(branch) + "/" + trace
}

var titleCaser = cases.Title(language.English)

// TeamName returns the display form of a team identifier.
func TeamName(team string) string {
	return titleCaser.String(team)
}

// TeamReport is one team's normalized entries on one branch.
type TeamReport struct {
	Team    string
	Entries []summary.Entry
}

// BranchReport is everything one branch contributed.
type BranchReport struct {
	Branch string
	Teams  []TeamReport
}

// MergedReport renders the full Markdown report: a table of contents
// over branches and teams, then per branch and team a bullet list of
// normalized "glyph trace" lines and a link to the branch's traces
// directory.
func MergedReport(branches []BranchReport, c Context) string {
	var b strings.Builder
	b.WriteString("# Merged fuzz report\n\n")

	b.WriteString("## Contents\n\n")
	for _, br := range branches {
		fmt.Fprintf(&b, "- [%s](#%s)\n", br.Branch, anchor(br.Branch))
		for _, tr := range br.Teams {
			fmt.Fprintf(&b, "  - %s\n", TeamName(tr.Team))
		}
	}
	b.WriteString("\n")

	for _, br := range branches {
		fmt.Fprintf(&b, "## %s\n\n", br.Branch)
		fmt.Fprintf(&b, "[Traces](%s)\n\n", c.tracesURL(br.Branch))
		for _, tr := range br.Teams {
			fmt.Fprintf(&b, "### %s\n\n", TeamName(tr.Team))
			if len(tr.Entries) == 0 {
				b.WriteString("No results.\n\n")
				continue
			}
			for _, e := range tr.Entries {
				fmt.Fprintf(&b, "- %s %s\n", e.Status.Glyph(), e.Trace)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// anchor converts a heading into a GitHub-style anchor fragment.
func anchor(heading string) string {
	s := strings.ToLower(heading)
	s = strings.ReplaceAll(s, " ", "-")
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return -1
	}, s)
}

// ConformanceTable renders the Markdown table spliced into the
// README: one column per team, three summary rows with each team's
// fail/pass/unknown totals across all traces, then one row per
// interesting trace. Interesting trace identifiers link to the trace
// directory on the branch where the trace was first found.
func ConformanceTable(tbl *aggregate.Table, c Context) string {
	teams := tbl.Teams()
	interesting, _ := tbl.Partition()

	header := make([]string, 0, len(teams)+1)
	header = append(header, "Trace")
	for _, team := range teams {
		header = append(header, TeamName(team))
	}

	rows := [][]string{header}

	fails := []string{"Fails"}
	passes := []string{"Passes"}
	unknown := []string{"Unknown"}
	for _, team := range teams {
		f, p, u := tbl.Counts(team)
		fails = append(fails, fmt.Sprintf("%d", f))
		passes = append(passes, fmt.Sprintf("%d", p))
		unknown = append(unknown, fmt.Sprintf("%d", u))
	}
	rows = append(rows, fails, passes, unknown)

	for _, trace := range interesting {
		row := make([]string, 0, len(teams)+1)
		if branch, ok := tbl.FirstBranch(trace); ok {
			row = append(row, fmt.Sprintf("[%s](%s)", trace, c.traceURL(branch, trace)))
		} else {
			row = append(row, trace)
		}
		for _, team := range teams {
			if status, ok := tbl.Status(trace, team); ok {
				row = append(row, status.Glyph())
			} else {
				row = append(row, summary.GlyphUnknown)
			}
		}
		rows = append(rows, row)
	}

	return markdownTable(rows)
}

// markdownTable renders rows as a pipe table with cells padded to the
// column's display width. Glyph cells are double-width, so padding
// goes through runewidth rather than len.
func markdownTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	cols := len(rows[0])
	widths := make([]int, cols)
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	writeRow := func(row []string) {
		b.WriteString("|")
		for i, cell := range row {
			pad := widths[i] - runewidth.StringWidth(cell)
			b.WriteString(" " + cell + strings.Repeat(" ", pad) + " |")
		}
		b.WriteString("\n")
	}

	writeRow(rows[0])
	b.WriteString("|")
	for i := 0; i < cols; i++ {
		b.WriteString(" " + strings.Repeat("-", widths[i]) + " |")
	}
	b.WriteString("\n")
	for _, row := range rows[1:] {
		writeRow(row)
	}
	return b.String()
}
