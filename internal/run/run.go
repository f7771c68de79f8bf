// Package run orchestrates one aggregation pass: working copy, branch
// loop, parsing, aggregation, rendering, and output files.
package run

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fuzzmerge/internal/aggregate"
	"fuzzmerge/internal/config"
	"fuzzmerge/internal/gitrepo"
	"fuzzmerge/internal/render"
	"fuzzmerge/internal/splice"
	"fuzzmerge/internal/summary"
)

// Options configures a run.
type Options struct {
	Config config.Config
	// DryRun skips all file writes and prints the conformance table
	// to Stdout instead.
	DryRun bool
	// Progress, if set, is called before each branch is processed.
	Progress func(branch string, index, total int)
	Stdout   io.Writer
	Stderr   io.Writer
}

// Run executes the whole pipeline against acc. The returned error is
// fatal (working copy could not be established or listed); per-branch
// and template failures are logged to Stderr and absorbed.
func Run(ctx context.Context, acc gitrepo.Accessor, opts Options) (render.Stats, error) {
	cfg := opts.Config
	var stats render.Stats

	if err := acc.EnsureWorkingCopy(ctx); err != nil {
		return stats, fmt.Errorf("establishing working copy: %w", err)
	}
	branches, err := acc.ListRemoteBranches(ctx)
	if err != nil {
		return stats, err
	}

	tbl := aggregate.New(cfg.PriorityTeam)
	var reports []render.BranchReport

	for i, branch := range branches {
		if opts.Progress != nil {
			opts.Progress(branch, i+1, len(branches))
		}
		report, err := processBranch(ctx, acc, cfg, branch, tbl)
		if err != nil {
			stats.Skipped++
			opts.logf("branch %s skipped: %v", branch, err)
			continue
		}
		stats.Branches++
		if report != nil {
			reports = append(reports, *report)
		}
	}

	stats.Teams = len(tbl.Teams())
	stats.Traces = len(tbl.Traces())
	interesting, _ := tbl.Partition()
	stats.Interesting = len(interesting)

	rctx := render.Context{RepoURL: cfg.RepoURL, ReportVersion: cfg.ReportVersion}
	merged := render.MergedReport(reports, rctx)
	table := render.ConformanceTable(tbl, rctx)

	if opts.DryRun {
		fmt.Fprint(opts.Stdout, table)
		return stats, nil
	}

	if err := os.WriteFile(cfg.ReportPath, []byte(merged), 0o644); err != nil {
		opts.logf("writing merged report: %v", err)
	}
	updateReadme(cfg, table, opts)
	return stats, nil
}

// processBranch checks out one branch and folds its summaries into
// the table. It returns nil without error when the branch has no
// summaries directory.
func processBranch(ctx context.Context, acc gitrepo.Accessor, cfg config.Config, branch string, tbl *aggregate.Table) (*render.BranchReport, error) {
	if err := acc.Checkout(ctx, branch); err != nil {
		return nil, err
	}

	reportDir := filepath.Join(acc.Dir(), "fuzz-reports", cfg.ReportVersion)
	files, err := summary.Locate(filepath.Join(reportDir, "summaries"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	report := render.BranchReport{Branch: branch}
	for _, f := range orderFiles(files, cfg.PriorityTeam) {
		entries, err := summary.ParseFile(f)
		if err != nil {
			return nil, err
		}
		report.Teams = append(report.Teams, render.TeamReport{Team: f.Team, Entries: entries})
	}

	// Fold into the table only once every file on the branch parsed,
	// so a skipped branch leaves no partial state behind.
	for _, tr := range report.Teams {
		tbl.AddTeam(tr.Team)
		tbl.RecordAll(tr.Entries)
		for _, e := range tr.Entries {
			if traceDirExists(reportDir, e.Trace) {
				tbl.AssociateBranch(e.Trace, branch)
			}
		}
	}
	return &report, nil
}

// orderFiles moves the priority team's summary to the front, keeping
// the rest in Locate's alphabetical order. Matches the team ordering
// of the conformance table.
func orderFiles(files []summary.File, priority string) []summary.File {
	for i, f := range files {
		if f.Team == priority && i > 0 {
			ordered := make([]summary.File, 0, len(files))
			ordered = append(ordered, f)
			ordered = append(ordered, files[:i]...)
			ordered = append(ordered, files[i+1:]...)
			return ordered
		}
	}
	return files
}

// traceDirExists reports whether the trace's directory is physically
// present on the currently checked-out branch.
func traceDirExists(reportDir, trace string) bool {
	info, err := os.Stat(filepath.Join(reportDir, "traces", trace))
	return err == nil && info.IsDir()
}

// updateReadme splices the conformance table between the configured
// markers. Marker or IO problems are logged; the README is left
// byte-identical and the run still succeeds.
func updateReadme(cfg config.Config, table string, opts Options) {
	doc, err := os.ReadFile(cfg.ReadmePath)
	if err != nil {
		opts.logf("reading %s: %v", cfg.ReadmePath, err)
		return
	}
	updated, err := splice.Replace(doc, cfg.MarkerStart, cfg.MarkerEnd, []byte("\n"+table))
	if err != nil {
		opts.logf("updating %s: %v", cfg.ReadmePath, err)
		return
	}
	if err := os.WriteFile(cfg.ReadmePath, updated, 0o644); err != nil {
		opts.logf("writing %s: %v", cfg.ReadmePath, err)
	}
}

func (o Options) logf(format string, args ...any) {
	if o.Stderr != nil {
		fmt.Fprintf(o.Stderr, "fuzzmerge: "+format+"\n", args...)
	}
}
