// fuzzmerge aggregates per-branch fuzz summaries from a reports
// repository into a merged Markdown report and a conformance table
// spliced into a README.
//
// Usage:
//
//	fuzzmerge --repo https://example.com/org/fuzz-reports
//
// Configuration can also come from .fuzzmerge.yaml (current directory
// or the user config dir); flags win over the file.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"fuzzmerge/internal/config"
	"fuzzmerge/internal/gitrepo"
	"fuzzmerge/internal/render"
	"fuzzmerge/internal/run"
	"fuzzmerge/internal/ui"
	"fuzzmerge/internal/version"
)

func main() {
	os.Exit(runMain(os.Args[1:], os.Stdout, os.Stderr))
}

func runMain(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("fuzzmerge", flag.ContinueOnError)
	fs.SetOutput(stderr)
	repoFlag := fs.String("repo", "", "Reports repository URL (overrides config)")
	remoteFlag := fs.String("remote", "", "Git remote name (default origin)")
	workdirFlag := fs.String("workdir", "", "Working copy path")
	reportFlag := fs.String("report", "", "Merged report output path")
	readmeFlag := fs.String("readme", "", "README to splice the table into")
	reportVersionFlag := fs.String("report-version", "", "Report layout version under fuzz-reports/")
	priorityFlag := fs.String("priority-team", "", "Team listed first in rendered output")
	themeFlag := fs.String("theme", "default", "Console theme: default, mono")
	dryRun := fs.Bool("dry-run", false, "Print the table to stdout, write nothing")
	noUI := fs.Bool("no-ui", false, "Disable the live progress display")
	versionFlag := fs.Bool("version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *versionFlag {
		fmt.Fprintf(stdout, "fuzzmerge version %s\n", version.Version)
		fmt.Fprintf(stdout, "Commit: %s\n", version.CommitHash)
		fmt.Fprintf(stdout, "Built: %s\n", version.BuildDate)
		return 0
	}

	cfg, _, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "fuzzmerge: %v\n", err)
		return 2
	}
	cfg.Merge(config.Config{
		RepoURL:       *repoFlag,
		Remote:        *remoteFlag,
		Workdir:       *workdirFlag,
		ReportVersion: *reportVersionFlag,
		PriorityTeam:  *priorityFlag,
		ReportPath:    *reportFlag,
		ReadmePath:    *readmeFlag,
	})
	if cfg.RepoURL == "" {
		fmt.Fprintln(stderr, "fuzzmerge: no repository URL configured (set repo_url in .fuzzmerge.yaml or pass --repo)")
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	acc := gitrepo.NewCLI(cfg.RepoURL, cfg.Remote, cfg.Workdir)
	opts := run.Options{Config: cfg, DryRun: *dryRun, Stdout: stdout, Stderr: stderr}

	theme := render.ThemeByName(*themeFlag)
	if os.Getenv("NO_COLOR") != "" || !isTTYWriter(stdout) {
		theme = render.MonoTheme()
	}

	var stats render.Stats
	if !*noUI && !*dryRun && isTTYWriter(stdout) {
		stats, err = runWithUI(ctx, acc, opts, stderr)
	} else {
		opts.Progress = func(branch string, index, total int) {
			fmt.Fprintf(stderr, "fuzzmerge: processing %s (%d/%d)\n", branch, index, total)
		}
		stats, err = run.Run(ctx, acc, opts)
	}
	if err != nil {
		fmt.Fprintf(stderr, "fuzzmerge: %v\n", err)
		return 1
	}

	fmt.Fprint(stdout, theme.RunSummary(stats))
	return 0
}

// runWithUI runs the pipeline in a goroutine while a progress program
// owns the terminal. The pipeline stays strictly sequential; only the
// display is concurrent.
func runWithUI(ctx context.Context, acc gitrepo.Accessor, opts run.Options, uiOut io.Writer) (render.Stats, error) {
	p := tea.NewProgram(ui.New(), tea.WithOutput(uiOut), tea.WithContext(ctx))
	opts.Progress = func(branch string, index, total int) {
		p.Send(ui.BranchMsg{Name: branch, Index: index, Total: total})
	}

	type result struct {
		stats render.Stats
		err   error
	}
	done := make(chan result, 1)
	go func() {
		stats, err := run.Run(ctx, acc, opts)
		p.Send(ui.DoneMsg{})
		done <- result{stats, err}
	}()

	if _, err := p.Run(); err != nil {
		// Display failure only; the pipeline finishes regardless.
		fmt.Fprintf(opts.Stderr, "fuzzmerge: progress display: %v\n", err)
	}
	r := <-done
	return r.stats, r.err
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
