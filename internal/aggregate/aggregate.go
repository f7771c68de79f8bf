// Package aggregate folds parsed summary entries into the result
// table rendered by the report.
package aggregate

import (
	"sort"

	"fuzzmerge/internal/summary"
)

// Table is the two-level result mapping: trace -> team -> status.
//
// Entries are recorded in branch listing order, and for a fixed
// (trace, team) pair the last recorded status wins. The table also
// remembers, per trace, the first branch on which the trace directory
// was physically found; that association is set once and never
// overwritten.
type Table struct {
	statuses    map[string]map[string]summary.Status
	teams       map[string]struct{}
	traceOrder  []string
	firstBranch map[string]string
	priority    string
}

// New returns an empty table. priorityTeam, if non-empty, always
// sorts first in Teams regardless of alphabetical order.
func New(priorityTeam string) *Table {
	return &Table{
		statuses:    make(map[string]map[string]summary.Status),
		teams:       make(map[string]struct{}),
		firstBranch: make(map[string]string),
		priority:    priorityTeam,
	}
}

// Record folds one entry into the table, overwriting any earlier
// status for the same (trace, team) pair.
func (t *Table) Record(e summary.Entry) {
	t.teams[e.Team] = struct{}{}
	byTeam, ok := t.statuses[e.Trace]
	if !ok {
		byTeam = make(map[string]summary.Status)
		t.statuses[e.Trace] = byTeam
		t.traceOrder = append(t.traceOrder, e.Trace)
	}
	byTeam[e.Team] = e.Status
}

// RecordAll folds entries in order.
func (t *Table) RecordAll(entries []summary.Entry) {
	for _, e := range entries {
		t.Record(e)
	}
}

// AddTeam registers a team even if it contributed no parseable lines,
// so it still gets a column and an unknown count.
func (t *Table) AddTeam(team string) {
	t.teams[team] = struct{}{}
}

// AssociateBranch records branch as the location of trace's directory
// unless an earlier branch already claimed it.
func (t *Table) AssociateBranch(trace, branch string) {
	if _, ok := t.firstBranch[trace]; !ok {
		t.firstBranch[trace] = branch
	}
}

// FirstBranch reports the first branch on which trace's directory was
// found, if any branch was.
func (t *Table) FirstBranch(trace string) (string, bool) {
	b, ok := t.firstBranch[trace]
	return b, ok
}

// Status reports the recorded status for (trace, team).
func (t *Table) Status(trace, team string) (summary.Status, bool) {
	s, ok := t.statuses[trace][team]
	return s, ok
}

// Teams returns all known team names: the priority team first when
// present, the rest alphabetical.
func (t *Table) Teams() []string {
	names := make([]string, 0, len(t.teams))
	hasPriority := false
	for name := range t.teams {
		if name == t.priority {
			hasPriority = true
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	if hasPriority {
		names = append([]string{t.priority}, names...)
	}
	return names
}

// Traces returns all trace identifiers in first-seen order.
func (t *Table) Traces() []string {
	out := make([]string, len(t.traceOrder))
	copy(out, t.traceOrder)
	return out
}

// Partition splits traces, preserving first-seen order, into those
// with at least one failing team and those whose recorded statuses
// all pass. A trace with no recorded statuses lands in the passing
// group: absence of evidence is not a failure.
func (t *Table) Partition() (interesting, passing []string) {
	for _, trace := range t.traceOrder {
		failed := false
		for _, status := range t.statuses[trace] {
			if status == summary.StatusFail {
				failed = true
				break
			}
		}
		if failed {
			interesting = append(interesting, trace)
		} else {
			passing = append(passing, trace)
		}
	}
	return interesting, passing
}

// Counts reports team's fail, pass, and unknown totals across all
// traces the table has seen, interesting or not.
func (t *Table) Counts(team string) (fails, passes, unknown int) {
	for _, trace := range t.traceOrder {
		switch status, ok := t.statuses[trace][team]; {
		case !ok:
			unknown++
		case status == summary.StatusFail:
			fails++
		default:
			passes++
		}
	}
	return fails, passes, unknown
}
